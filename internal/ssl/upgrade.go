package ssl

import (
	"strings"

	"github.com/ksyq12/vhostsync/internal/directive"
)

// Outcome tags the result of an HTTP/2 upgrade attempt
type Outcome string

// Outcomes of Upgrade
const (
	AlreadyUpgraded Outcome = "already-upgraded" // listen 443 ssl http2 present
	Upgraded        Outcome = "upgraded"         // bare listen 443 ssl rewritten
	NoSSL           Outcome = "no-ssl"           // no certificate installed yet
)

// Result is the possibly patched vhost text
type Result struct {
	Text    string  `json:"-"`
	Outcome Outcome `json:"outcome"`
	// Lines lists the 1-based lines of Text that were rewritten
	Lines []int `json:"lines,omitempty"`
}

// maxBlankRun is the longest run of blank lines kept by Normalize
const maxBlankRun = 2

// Normalize drops carriage returns and collapses runs of more than two
// blank lines down to two.
func Normalize(text string) string {
	lines := strings.Split(strings.ReplaceAll(text, "\r", ""), "\n")
	out := make([]string, 0, len(lines))
	blank := 0
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			blank++
			if blank > maxBlankRun {
				continue
			}
		} else {
			blank = 0
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// listen443 classifies one statement as a listen directive on port 443
func listen443(stmt string) (ssl, http2 bool, ok bool) {
	tokens := directive.Tokens(stmt)
	if len(tokens) < 2 || tokens[0] != "listen" {
		return false, false, false
	}
	if addr := tokens[1]; addr != "443" && !strings.HasSuffix(addr, ":443") {
		return false, false, false
	}
	for _, tok := range tokens[2:] {
		switch tok {
		case "ssl":
			ssl = true
		case "http2":
			http2 = true
		}
	}
	return ssl, http2, true
}

// statements splits the code part of an uncommented line after each
// terminator. The last element holds anything past the final terminator.
func statements(line string) []string {
	code, _, _ := strings.Cut(line, "#")
	return strings.SplitAfter(code, directive.Terminator)
}

// Upgrade enables HTTP/2 on the uncommented `listen 443 ssl;` directives of
// a vhost. Text that already has an ssl+http2 listener is only normalized;
// text without any ssl listener is returned unmodified with NoSSL.
func Upgrade(text string) Result {
	normalized := Normalize(text)
	lines := strings.Split(normalized, "\n")

	var bare []int
	for i, line := range lines {
		if directive.IsCommented(line) {
			continue
		}
		found := false
		for _, stmt := range statements(line) {
			ssl, http2, ok := listen443(stmt)
			if !ok || !ssl {
				continue
			}
			if http2 {
				return Result{Text: normalized, Outcome: AlreadyUpgraded}
			}
			found = true
		}
		if found {
			bare = append(bare, i)
		}
	}

	if len(bare) == 0 {
		return Result{Text: text, Outcome: NoSSL}
	}

	changed := make([]int, 0, len(bare))
	for _, i := range bare {
		lines[i] = enableHTTP2(lines[i])
		changed = append(changed, i+1)
	}
	return Result{Text: strings.Join(lines, "\n"), Outcome: Upgraded, Lines: changed}
}

// enableHTTP2 inserts http2 after the ssl parameter of every bare 443 ssl
// listener on line, keeping indentation, other statements and anything after
// the comment marker (usually "# managed by Certbot").
func enableHTTP2(line string) string {
	parts := statements(line)
	var b strings.Builder
	for _, stmt := range parts {
		if ssl, http2, ok := listen443(stmt); ok && ssl && !http2 {
			stmt = patchStatement(stmt)
		}
		b.WriteString(stmt)
	}
	code, _, _ := strings.Cut(line, "#")
	return b.String() + line[len(code):]
}

// patchStatement rewrites one listen statement, keeping the whitespace
// around it and its terminator
func patchStatement(stmt string) string {
	body := strings.TrimLeft(stmt, " \t")
	lead := stmt[:len(stmt)-len(body)]

	suffix := ""
	if end := strings.Index(body, directive.Terminator); end >= 0 {
		body, suffix = body[:end], body[end:]
	}
	trimmed := strings.TrimRight(body, " \t")
	suffix = body[len(trimmed):] + suffix

	tokens := strings.Fields(trimmed)
	patched := make([]string, 0, len(tokens)+1)
	for _, tok := range tokens {
		patched = append(patched, tok)
		if tok == "ssl" {
			patched = append(patched, "http2")
		}
	}
	return lead + strings.Join(patched, " ") + suffix
}
