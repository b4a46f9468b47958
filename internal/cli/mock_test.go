package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/ksyq12/vhostsync/internal/config"
	"github.com/ksyq12/vhostsync/internal/logger"
	"github.com/spf13/cobra"
)

func init() {
	color.NoColor = true
}

// MockConfigLoader is a test double for ConfigLoader
type MockConfigLoader struct {
	Cfg       *config.Config
	LoadErr   error
	SaveErr   error
	SaveCalls int
	SavePath  string
}

func (m *MockConfigLoader) Load(path string) (*config.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.Cfg == nil {
		m.Cfg = config.New()
	}
	c := *m.Cfg
	return &c, nil
}

func (m *MockConfigLoader) Save(cfg *config.Config, path string) error {
	m.SaveCalls++
	m.SavePath = path
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Cfg = cfg
	return nil
}

var testNow = time.Date(2026, 5, 1, 12, 0, 0, 0, time.Local)

type testEnv struct {
	cfg    *config.Config
	loader *MockConfigLoader
	cmd    *cobra.Command
	out    *bytes.Buffer
}

// setupTest points every location at a temp dir and swaps in test
// dependencies, restoring everything when the test ends
func setupTest(t *testing.T) *testEnv {
	t.Helper()
	base := t.TempDir()

	cfg := config.New()
	cfg.LiveDir = filepath.Join(base, "live")
	cfg.DraftDir = filepath.Join(base, "draft", "conf.d")
	cfg.Manifest = filepath.Join(base, "nginx.md")
	cfg.Script = filepath.Join(base, "draft", "apply.sh")
	if err := os.MkdirAll(cfg.LiveDir, 0755); err != nil {
		t.Fatal(err)
	}

	loader := &MockConfigLoader{Cfg: cfg}
	old := GetDeps()
	SetDeps(&Dependencies{
		ConfigLoader: loader,
		Clock:        func() time.Time { return testNow },
	})
	logger.SetOutput(io.Discard)

	t.Cleanup(func() {
		SetDeps(old)
		logger.SetOutput(nil)
		configPath, liveDir, draftDir, manifestPath, scriptPath = "", "", "", "", ""
		jsonOutput, applyDiff, configSave = false, false, false
	})

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	return &testEnv{cfg: cfg, loader: loader, cmd: cmd, out: &out}
}

func (e *testEnv) writeLive(t *testing.T, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(e.cfg.LiveDir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func (e *testEnv) writeManifest(t *testing.T, content string) {
	t.Helper()
	if err := os.WriteFile(e.cfg.Manifest, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

const plainVhost = `server {
    listen 80;

    server_name a.example.com;

    location / {
        proxy_pass http://localhost:8123;
    }
}
`

const sslVhost = `server {
    listen 80;
    listen 443 ssl; # managed by Certbot

    server_name a.example.com;

    location / {
        proxy_pass http://localhost:8123;
    }
}
`

const manifestA = "|  port | server_name | filename |\n" +
	"|-------|-------------|----------|\n" +
	"|  8123 | a.example.com | - |\n"
