// Package output renders command results for humans (colored text, tables,
// diffs) or machines (indented JSON).
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
	warnColor    = color.New(color.FgYellow)
	infoColor    = color.New(color.FgCyan)
	hunkColor    = color.New(color.FgCyan)
	addColor     = color.New(color.FgGreen)
	delColor     = color.New(color.FgRed)
	headerColor  = color.New(color.Bold)
)

// Printer writes command output to w
type Printer struct {
	w io.Writer
}

// New creates a Printer writing to w
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// JSON outputs data as JSON
func (p *Printer) JSON(data interface{}) error {
	encoder := json.NewEncoder(p.w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// Table outputs data as a formatted table
func (p *Printer) Table(headers []string, rows [][]string) {
	if len(headers) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	p.row(widths, headers)

	sep := make([]string, len(widths))
	for i, w := range widths {
		sep[i] = strings.Repeat("-", w)
	}
	p.row(widths, sep)

	for _, row := range rows {
		p.row(widths, row)
	}
}

func (p *Printer) row(widths []int, cells []string) {
	line := make([]string, len(widths))
	for i := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		line[i] = fmt.Sprintf("%-*s", widths[i], cell)
	}
	_, _ = fmt.Fprintln(p.w, strings.TrimRight(strings.Join(line, "  "), " "))
}

// Diff prints a unified diff, coloring hunks and changed lines
func (p *Printer) Diff(diff string) {
	for _, line := range strings.SplitAfter(diff, "\n") {
		if line == "" {
			continue
		}
		c := colorFor(line)
		if c == nil {
			_, _ = fmt.Fprint(p.w, line)
			continue
		}
		_, _ = c.Fprint(p.w, line)
	}
}

func colorFor(line string) *color.Color {
	switch {
	case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		return headerColor
	case strings.HasPrefix(line, "@@"):
		return hunkColor
	case strings.HasPrefix(line, "+"):
		return addColor
	case strings.HasPrefix(line, "-"):
		return delColor
	}
	return nil
}

// Success prints a success message
func (p *Printer) Success(format string, args ...interface{}) {
	_, _ = successColor.Fprintf(p.w, "✓ "+format+"\n", args...)
}

// Error prints an error message
func (p *Printer) Error(format string, args ...interface{}) {
	_, _ = errorColor.Fprintf(p.w, "✗ "+format+"\n", args...)
}

// Warn prints a warning message
func (p *Printer) Warn(format string, args ...interface{}) {
	_, _ = warnColor.Fprintf(p.w, "! "+format+"\n", args...)
}

// Info prints an info message
func (p *Printer) Info(format string, args ...interface{}) {
	_, _ = infoColor.Fprintf(p.w, "→ "+format+"\n", args...)
}

// Print prints a plain message
func (p *Printer) Print(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(p.w, format+"\n", args...)
}

// Raw writes s unchanged
func (p *Printer) Raw(s string) {
	_, _ = io.WriteString(p.w, s)
}
