// Package script turns a reconciliation report into the shell commands an
// operator runs, with root, to promote drafts and finish HTTP/2 upgrades.
// The script is written to disk for review; it is never executed here.
package script

import (
	"fmt"
	"strings"

	"github.com/ksyq12/vhostsync/internal/driver"
	"github.com/ksyq12/vhostsync/internal/reconcile"
	"github.com/ksyq12/vhostsync/internal/ssl"
)

// Sudo prefixes every privileged command
const Sudo = "sudo"

const header = "#!/bin/sh\nset -e"

// Script is the ordered remediation plan
type Script struct {
	// Notes are comment lines placed before the commands
	Notes    []string `json:"notes,omitempty"`
	Commands []string `json:"commands"`
}

// Empty reports whether the script has no commands
func (s *Script) Empty() bool {
	return len(s.Commands) == 0
}

// String renders the script as a POSIX shell file
func (s *Script) String() string {
	lines := []string{header}
	for _, n := range s.Notes {
		lines = append(lines, "# "+n)
	}
	if s.Empty() {
		lines = append(lines, "# nothing to do")
	}
	lines = append(lines, s.Commands...)
	return strings.Join(lines, "\n") + "\n"
}

// Generator builds scripts for one web server
type Generator struct {
	drv          driver.Driver
	certbotEmail string
	rerun        string
}

// New creates a Generator. rerun is the command line the operator repeats
// after certificates are issued, e.g. "vhostsync apply".
func New(drv driver.Driver, certbotEmail, rerun string) *Generator {
	return &Generator{drv: drv, certbotEmail: certbotEmail, rerun: rerun}
}

// Generate plans the commands for report: one copy per pending record, then
// config test and restart, then certificate issuance for records still
// without ssl.
func (g *Generator) Generate(report *reconcile.Report) (*Script, error) {
	s := &Script{Commands: []string{}}

	for _, res := range report.InState(reconcile.Generated) {
		s.Notes = append(s.Notes, fmt.Sprintf("new draft %s, review and copy to %s manually", res.DraftPath, res.LivePath))
	}

	pending := report.InState(reconcile.PendingCopy)
	for _, res := range pending {
		s.Commands = append(s.Commands, join(Sudo, "cp", Quote(res.DraftPath), Quote(res.LivePath)))
	}

	awaiting := report.InState(reconcile.AwaitingCert)
	if len(pending) == 0 && len(awaiting) == 0 {
		return s, nil
	}

	s.Commands = append(s.Commands,
		privileged(g.drv.TestCommand()),
		privileged(g.drv.RestartCommand()),
	)

	if len(awaiting) == 0 {
		return s, nil
	}

	var domains []string
	seen := make(map[string]bool)
	for _, res := range awaiting {
		for _, name := range res.Record.Names() {
			if !seen[name] {
				seen[name] = true
				domains = append(domains, name)
			}
		}
	}
	args, err := ssl.IssueArgs(domains, g.certbotEmail)
	if err != nil {
		return nil, err
	}
	// certbot names the certificate after the first -d
	cert := ssl.GetCertPaths(domains[0])
	s.Notes = append(s.Notes, fmt.Sprintf("certificate for %s will be stored at %s (key %s)",
		strings.Join(domains, ", "), cert.CertPath, cert.KeyPath))
	s.Commands = append(s.Commands,
		privileged(append([]string{"certbot"}, args...)),
		"echo "+Quote(fmt.Sprintf("certificates issued; re-run %q to enable HTTP/2", g.rerun)),
	)
	return s, nil
}

func privileged(argv []string) string {
	quoted := make([]string, 0, len(argv)+1)
	quoted = append(quoted, Sudo)
	for _, a := range argv {
		quoted = append(quoted, QuoteIfNeeded(a))
	}
	return join(quoted...)
}

func join(parts ...string) string {
	return strings.Join(parts, " ")
}

// Quote wraps s in single quotes for a POSIX shell
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// QuoteIfNeeded quotes s only when it contains characters the shell treats
// specially
func QuoteIfNeeded(s string) string {
	if s == "" {
		return "''"
	}
	for _, c := range s {
		if !safeRune(c) {
			return Quote(s)
		}
	}
	return s
}

func safeRune(c rune) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	return strings.ContainsRune("@%+=:,./_-", c)
}
