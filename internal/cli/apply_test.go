package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ksyq12/vhostsync/internal/errors"
)

func TestRunApplyScenarios(t *testing.T) {
	e := setupTest(t)
	draft := filepath.Join(e.cfg.DraftDir, "a.example.com.conf")
	live := filepath.Join(e.cfg.LiveDir, "a.example.com.conf")

	// no certificate yet: draft mirrors live, certbot is scheduled
	e.writeLive(t, "a.example.com.conf", plainVhost)
	if err := runScan(e.cmd, nil); err != nil {
		t.Fatalf("runScan() error = %v", err)
	}
	if got := readFile(t, e.cfg.Manifest); got != manifestA {
		t.Fatalf("manifest = %q", got)
	}
	if err := runApply(e.cmd, nil); err != nil {
		t.Fatalf("runApply() error = %v", err)
	}

	if got := readFile(t, draft); got != plainVhost {
		t.Errorf("draft = %q, want live content", got)
	}
	script := readFile(t, e.cfg.Script)
	for _, want := range []string{"sudo nginx -t", "sudo systemctl restart nginx", "sudo certbot --nginx -d a.example.com"} {
		if !strings.Contains(script, want) {
			t.Errorf("script missing %q:\n%s", want, script)
		}
	}
	if strings.Contains(script, "sudo cp") {
		t.Errorf("script must not copy back:\n%s", script)
	}

	// certbot added listen 443 ssl: draft is upgraded and copied back
	e.writeLive(t, "a.example.com.conf", sslVhost)
	e.out.Reset()
	if err := runApply(e.cmd, nil); err != nil {
		t.Fatalf("runApply() error = %v", err)
	}

	if got := readFile(t, draft); !strings.Contains(got, "    listen 443 ssl http2; # managed by Certbot\n") {
		t.Errorf("draft not upgraded:\n%s", got)
	}
	script = readFile(t, e.cfg.Script)
	wantCp := "sudo cp '" + draft + "' '" + live + "'"
	for _, want := range []string{wantCp, "sudo nginx -t", "sudo systemctl restart nginx"} {
		if !strings.Contains(script, want) {
			t.Errorf("script missing %q:\n%s", want, script)
		}
	}
	if strings.Contains(script, "certbot") {
		t.Errorf("script must not issue certificates:\n%s", script)
	}
	if got := readFile(t, live); got != sslVhost {
		t.Error("live file must never be written")
	}

	// both the draft and the script were replaced, so both were backed up
	for _, path := range []string{draft, e.cfg.Script} {
		if _, err := os.Stat(path + ".bk_2026-05-01_120000"); err != nil {
			t.Errorf("expected backup of %s: %v", path, err)
		}
	}
	if !strings.Contains(e.out.String(), "upgraded-pending-copy") {
		t.Errorf("expected state in output, got:\n%s", e.out.String())
	}
}

func TestRunApplyGeneratesMissingVhost(t *testing.T) {
	e := setupTest(t)
	e.writeManifest(t, "|  port | server_name | filename |\n"+
		"|-------|-------------|----------|\n"+
		"|  9000 | new.example.com | - |\n")

	if err := runApply(e.cmd, nil); err != nil {
		t.Fatalf("runApply() error = %v", err)
	}

	draft := readFile(t, filepath.Join(e.cfg.DraftDir, "new.example.com.conf"))
	if !strings.Contains(draft, "proxy_pass http://localhost:9000;") {
		t.Errorf("generated draft:\n%s", draft)
	}
	script := readFile(t, e.cfg.Script)
	if !strings.Contains(script, "# nothing to do") || !strings.Contains(script, "# new draft ") {
		t.Errorf("script:\n%s", script)
	}
	if !strings.Contains(e.out.String(), "# new draft ") {
		t.Errorf("notes not printed:\n%s", e.out.String())
	}
	if _, err := os.Stat(filepath.Join(e.cfg.LiveDir, "new.example.com.conf")); !os.IsNotExist(err) {
		t.Error("generated vhost must not be placed in the live directory")
	}
}

func TestRunApplyDiff(t *testing.T) {
	e := setupTest(t)
	e.writeLive(t, "a.example.com.conf", sslVhost)
	e.writeManifest(t, manifestA)
	applyDiff = true

	if err := runApply(e.cmd, nil); err != nil {
		t.Fatalf("runApply() error = %v", err)
	}

	out := e.out.String()
	for _, want := range []string{"-    listen 443 ssl; # managed by Certbot", "+    listen 443 ssl http2; # managed by Certbot"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunApplyJSON(t *testing.T) {
	e := setupTest(t)
	e.writeLive(t, "a.example.com.conf", plainVhost)
	e.writeManifest(t, manifestA)
	jsonOutput = true

	if err := runApply(e.cmd, nil); err != nil {
		t.Fatalf("runApply() error = %v", err)
	}

	var got struct {
		Results []struct {
			State string `json:"state"`
			SSL   string `json:"ssl"`
		} `json:"results"`
		Commands []string `json:"commands"`
	}
	if err := json.Unmarshal(e.out.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, e.out.String())
	}
	if len(got.Results) != 1 || got.Results[0].State != "awaiting-cert" || got.Results[0].SSL != "no-ssl" {
		t.Errorf("results = %+v", got.Results)
	}
	if len(got.Commands) != 4 {
		t.Errorf("commands = %v", got.Commands)
	}
}

func TestRunApplyErrors(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(*testing.T, *testEnv)
		wantCode error
		wantMsg  string
	}{
		{
			name:     "missing manifest",
			setup:    func(t *testing.T, e *testEnv) {},
			wantCode: errors.ErrIO,
			wantMsg:  "failed to read manifest",
		},
		{
			name: "malformed manifest names file and line",
			setup: func(t *testing.T, e *testEnv) {
				e.writeManifest(t, "|  port | server_name | filename |\n|  abc | a.example.com | - |\n")
			},
			wantCode: errors.ErrParse,
			wantMsg:  "nginx.md:2",
		},
		{
			name: "unknown service",
			setup: func(t *testing.T, e *testEnv) {
				e.writeManifest(t, manifestA)
				e.loader.Cfg.Service = "lighttpd"
			},
			wantMsg: "lighttpd",
		},
		{
			name: "draft dir equals live dir",
			setup: func(t *testing.T, e *testEnv) {
				draftDir = e.cfg.LiveDir
			},
			wantCode: errors.ErrConfigInvalid,
			wantMsg:  "draft_dir must differ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := setupTest(t)
			tt.setup(t, e)

			err := runApply(e.cmd, nil)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantCode != nil && !errors.Is(err, tt.wantCode) {
				t.Errorf("error %v does not match %v", err, tt.wantCode)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantMsg)
			}
			if _, statErr := os.Stat(e.cfg.Script); !os.IsNotExist(statErr) {
				t.Error("no script may be written when apply aborts")
			}
		})
	}
}

func TestRunApplyReportsFailedRecords(t *testing.T) {
	e := setupTest(t)
	e.writeLive(t, "a.example.com.conf", sslVhost)
	e.writeLive(t, "b.conf", sslVhost)
	e.writeManifest(t, manifestA+"|  8123 | a.example.com | b.conf |\n")
	if err := os.MkdirAll(filepath.Join(e.cfg.DraftDir, "b.conf"), 0755); err != nil {
		t.Fatal(err)
	}

	err := runApply(e.cmd, nil)
	if err == nil || !strings.Contains(err.Error(), "1 of 2 records failed") {
		t.Fatalf("runApply() error = %v", err)
	}

	script := readFile(t, e.cfg.Script)
	if !strings.Contains(script, "a.example.com.conf") || strings.Contains(script, "b.conf") {
		t.Errorf("script should only promote the healthy record:\n%s", script)
	}
}
