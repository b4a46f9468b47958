package template

import (
	"embed"
)

//go:embed nginx/*.tmpl
var nginxTemplates embed.FS

// proxyTemplate is the canonical reverse-proxy vhost
const proxyTemplate = "nginx/proxy.tmpl"
