package template

import (
	"strings"
	"testing"

	"github.com/ksyq12/vhostsync/internal/config"
	"github.com/ksyq12/vhostsync/internal/errors"
	"github.com/ksyq12/vhostsync/internal/vhost"
)

func TestRender(t *testing.T) {
	rec := config.Record{Filename: "a.example.com.conf", ServerName: "a.example.com", Port: 8123}

	content, err := Render(rec)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	for _, want := range []string{
		"listen 80;",
		"listen [::]:80;",
		"server_name a.example.com;",
		"proxy_pass http://localhost:8123;",
		"proxy_http_version 1.1;",
		"proxy_set_header Upgrade $http_upgrade;",
		"proxy_set_header Connection 'upgrade';",
		"proxy_set_header Host $host;",
		"proxy_cache_bypass $http_upgrade;",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("rendered vhost missing %q:\n%s", want, content)
		}
	}

	if strings.Contains(content, "443") {
		t.Error("generated vhost should not listen on 443")
	}
}

func TestRenderParsesBack(t *testing.T) {
	records := []config.Record{
		{ServerName: "jobsdone.hkit.cc", Port: 8123},
		{ServerName: "a.com, www.a.com", Port: 20080},
	}

	for _, rec := range records {
		t.Run(rec.ServerName, func(t *testing.T) {
			content, err := Render(rec)
			if err != nil {
				t.Fatalf("Render failed: %v", err)
			}
			got, err := vhost.Parse(content)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if got.ServerName != rec.ServerName || got.Port != rec.Port {
				t.Errorf("round trip = %+v, want %+v", got, rec)
			}
		})
	}
}

func TestRenderInvalid(t *testing.T) {
	tests := []struct {
		name string
		rec  config.Record
	}{
		{"empty server name", config.Record{ServerName: " ", Port: 80}},
		{"zero port", config.Record{ServerName: "a.com", Port: 0}},
		{"negative port", config.Record{ServerName: "a.com", Port: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Render(tt.rec)
			if !errors.Is(err, errors.ErrValidation) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}
