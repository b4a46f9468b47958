package script

import (
	"testing"

	"github.com/ksyq12/vhostsync/internal/config"
	"github.com/ksyq12/vhostsync/internal/driver"
	"github.com/ksyq12/vhostsync/internal/reconcile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func result(state reconcile.State, filename, serverName string) reconcile.RecordResult {
	return reconcile.RecordResult{
		Record:    config.Record{Filename: filename, ServerName: serverName, Port: 8123},
		State:     state,
		LivePath:  "/etc/nginx/conf.d/" + filename,
		DraftPath: "draft/conf.d/" + filename,
	}
}

func newGenerator(email string) *Generator {
	return New(driver.NewNginx(), email, "vhostsync apply")
}

func TestGenerateAwaitingCert(t *testing.T) {
	report := &reconcile.Report{Results: []reconcile.RecordResult{
		result(reconcile.AwaitingCert, "a.example.com.conf", "a.example.com"),
	}}

	s, err := newGenerator("").Generate(report)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"sudo nginx -t",
		"sudo systemctl restart nginx",
		"sudo certbot --nginx -d a.example.com",
		`echo 'certificates issued; re-run "vhostsync apply" to enable HTTP/2'`,
	}, s.Commands)
	assert.Equal(t, []string{
		"certificate for a.example.com will be stored at /etc/letsencrypt/live/a.example.com/fullchain.pem (key /etc/letsencrypt/live/a.example.com/privkey.pem)",
	}, s.Notes)
}

func TestGeneratePendingCopy(t *testing.T) {
	report := &reconcile.Report{Results: []reconcile.RecordResult{
		result(reconcile.PendingCopy, "a.example.com.conf", "a.example.com"),
		result(reconcile.Unchanged, "b.example.com.conf", "b.example.com"),
	}}

	s, err := newGenerator("").Generate(report)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"sudo cp 'draft/conf.d/a.example.com.conf' '/etc/nginx/conf.d/a.example.com.conf'",
		"sudo nginx -t",
		"sudo systemctl restart nginx",
	}, s.Commands)
}

func TestGenerateMixed(t *testing.T) {
	report := &reconcile.Report{Results: []reconcile.RecordResult{
		result(reconcile.AwaitingCert, "a.conf", "a.example.com www.a.example.com"),
		result(reconcile.PendingCopy, "b.conf", "b.example.com"),
		result(reconcile.AwaitingCert, "c.conf", "a.example.com,c.example.com"),
		result(reconcile.Failed, "d.conf", "d.example.com"),
	}}

	s, err := newGenerator("ops@example.com").Generate(report)
	require.NoError(t, err)

	require.Len(t, s.Commands, 5)
	assert.Equal(t, "sudo cp 'draft/conf.d/b.conf' '/etc/nginx/conf.d/b.conf'", s.Commands[0])
	assert.Equal(t,
		"sudo certbot --nginx -d a.example.com -d www.a.example.com -d c.example.com --email ops@example.com --agree-tos --non-interactive",
		s.Commands[3])
	assert.NotContains(t, s.String(), "d.conf")
	assert.Equal(t, []string{
		"certificate for a.example.com, www.a.example.com, c.example.com will be stored at /etc/letsencrypt/live/a.example.com/fullchain.pem (key /etc/letsencrypt/live/a.example.com/privkey.pem)",
	}, s.Notes)
}

func TestGenerateNothingToDo(t *testing.T) {
	report := &reconcile.Report{Results: []reconcile.RecordResult{
		result(reconcile.Unchanged, "a.conf", "a.example.com"),
	}}

	s, err := newGenerator("").Generate(report)
	require.NoError(t, err)

	assert.True(t, s.Empty())
	assert.Equal(t, "#!/bin/sh\nset -e\n# nothing to do\n", s.String())
}

func TestGenerateNotesGeneratedDrafts(t *testing.T) {
	report := &reconcile.Report{Results: []reconcile.RecordResult{
		result(reconcile.Generated, "new.conf", "new.example.com"),
	}}

	s, err := newGenerator("").Generate(report)
	require.NoError(t, err)

	assert.True(t, s.Empty(), "generated drafts are never copied automatically")
	require.Len(t, s.Notes, 1)
	assert.Contains(t, s.String(), "# new draft draft/conf.d/new.conf, review and copy to /etc/nginx/conf.d/new.conf manually\n")
}

func TestGenerateUsesDriverCommands(t *testing.T) {
	report := &reconcile.Report{Results: []reconcile.RecordResult{
		result(reconcile.PendingCopy, "a.conf", "a.example.com"),
	}}

	s, err := New(driver.NewNginxFlavor("openresty", "openresty", "openresty"), "", "vhostsync apply").Generate(report)
	require.NoError(t, err)
	assert.Empty(t, s.Notes, "no certificate note without awaiting records")

	assert.Contains(t, s.Commands, "sudo openresty -t")
	assert.Contains(t, s.Commands, "sudo systemctl restart openresty")
}

func TestScriptString(t *testing.T) {
	s := &Script{
		Notes:    []string{"note"},
		Commands: []string{"sudo nginx -t"},
	}
	assert.Equal(t, "#!/bin/sh\nset -e\n# note\nsudo nginx -t\n", s.String())
}

func TestQuote(t *testing.T) {
	tests := []struct {
		in     string
		quote  string
		ifNeed string
	}{
		{"plain", "'plain'", "plain"},
		{"a.example.com", "'a.example.com'", "a.example.com"},
		{"with space", "'with space'", "'with space'"},
		{"it's", `'it'\''s'`, `'it'\''s'`},
		{"", "''", "''"},
		{"$HOME", "'$HOME'", "'$HOME'"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.quote, Quote(tt.in))
			assert.Equal(t, tt.ifNeed, QuoteIfNeeded(tt.in))
		})
	}
}
