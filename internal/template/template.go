package template

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/ksyq12/vhostsync/internal/config"
	"github.com/ksyq12/vhostsync/internal/errors"
)

// DefaultUpstream is the backend host every generated vhost forwards to
const DefaultUpstream = "localhost"

// TemplateData contains data for rendering the proxy template
type TemplateData struct {
	ServerName string
	Upstream   string
	Port       int
}

var proxy = template.Must(template.ParseFS(nginxTemplates, proxyTemplate))

// Render produces the canonical vhost text for a record
func Render(rec config.Record) (string, error) {
	if strings.TrimSpace(rec.ServerName) == "" {
		return "", errors.Validation("server_name cannot be empty")
	}
	if rec.Port <= 0 {
		return "", errors.Validation(fmt.Sprintf("invalid port: %d", rec.Port))
	}

	data := TemplateData{
		ServerName: rec.ServerName,
		Upstream:   DefaultUpstream,
		Port:       rec.Port,
	}

	var buf bytes.Buffer
	if err := proxy.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}

	return buf.String(), nil
}
