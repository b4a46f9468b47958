// Package directive extracts simple nginx directives from vhost text.
//
// It is not an nginx parser. Text is reduced to its uncommented, non-blank
// lines; a directive is found by its leading keyword and its value ends at
// the first ';'. Block structure is ignored, so the first matching line in
// the file wins.
package directive

import (
	"strings"
)

// Terminator ends every directive value
const Terminator = ";"

// Lines removes comments ('#' to end of line), trims every line and drops the
// blank ones.
func Lines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line, _, _ = strings.Cut(line, "#")
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// Find returns the value of the first line whose keyword is name, up to the
// terminator and trimmed. The keyword must be followed by whitespace.
func Find(lines []string, name string) (string, bool) {
	for _, line := range lines {
		rest, ok := strings.CutPrefix(line, name)
		if !ok || rest == "" || (rest[0] != ' ' && rest[0] != '\t') {
			continue
		}
		value, _, _ := strings.Cut(rest, Terminator)
		return strings.TrimSpace(value), true
	}
	return "", false
}

// Lookup is Lines followed by Find.
func Lookup(text, name string) (string, bool) {
	return Find(Lines(text), name)
}

// IsCommented reports whether the first non-whitespace character of line is '#'.
func IsCommented(line string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, " \t"), "#")
}

// Tokens splits an uncommented directive line into its whitespace-separated
// words, without the terminator and anything after it.
func Tokens(line string) []string {
	stmt, _, _ := strings.Cut(line, "#")
	stmt, _, _ = strings.Cut(stmt, Terminator)
	return strings.Fields(stmt)
}
