// Package manifest reads and writes the operator-curated markdown table of
// vhost records.
//
//	|  port | server_name | filename |
//	|-------|-------------|----------|
//	|  8123 | jobsdone.hkit.cc | - |
//	| 20080 | talent.hkit.cc | legacy.conf |
//
// A filename of "-" stands for config.DefaultFilename(server_name).
package manifest

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/ksyq12/vhostsync/internal/config"
	"github.com/ksyq12/vhostsync/internal/errors"
)

const (
	headerRow    = "|  port | server_name | filename |"
	separatorRow = "|-------|-------------|----------|"

	// DefaultMarker in the filename column selects the derived filename
	DefaultMarker = "-"
)

var columns = []string{"port", "server_name", "filename"}

// Format renders records as a markdown table sorted ascending by port.
// The input slice is not reordered.
func Format(records []config.Record) string {
	sorted := make([]config.Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Port < sorted[j].Port
	})

	lines := make([]string, 0, len(sorted)+2)
	lines = append(lines, headerRow, separatorRow)
	for _, rec := range sorted {
		filename := rec.Filename
		if rec.HasDefaultFilename() {
			filename = DefaultMarker
		}
		lines = append(lines, fmt.Sprintf("| %5d | %s | %s |", rec.Port, rec.ServerName, filename))
	}
	return strings.Join(lines, "\n") + "\n"
}

// row is one table line split into its non-empty cells
type row struct {
	line  int
	cells []string
}

func splitRows(text string) []row {
	var rows []row
	for i, line := range strings.Split(text, "\n") {
		var cells []string
		for _, cell := range strings.Split(line, "|") {
			if cell = strings.TrimSpace(cell); cell != "" {
				cells = append(cells, cell)
			}
		}
		if len(cells) > 0 {
			rows = append(rows, row{line: i + 1, cells: cells})
		}
	}
	return rows
}

// Parse reads a manifest table. Any malformed row fails the whole parse.
func Parse(text string) ([]config.Record, error) {
	rows := splitRows(text)
	if len(rows) == 0 {
		return nil, errors.Parse("missing header line")
	}

	header := rows[0]
	if !isHeader(header.cells) {
		return nil, errors.ParseLine(header.line, "invalid header, expect: %q", "| port | server_name | filename |")
	}
	rows = rows[1:]

	if len(rows) > 0 && isSeparator(rows[0].cells) {
		rows = rows[1:]
	}

	records := make([]config.Record, 0, len(rows))
	seen := make(map[string]int, len(rows))
	for _, r := range rows {
		rec, err := parseRow(r)
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[rec.Filename]; dup {
			return nil, errors.ParseLine(r.line, "duplicate filename %q, first used on line %d", rec.Filename, prev)
		}
		seen[rec.Filename] = r.line
		records = append(records, rec)
	}
	return records, nil
}

func isHeader(cells []string) bool {
	if len(cells) != len(columns) {
		return false
	}
	for i, name := range columns {
		if !strings.EqualFold(cells[i], name) {
			return false
		}
	}
	return true
}

func isSeparator(cells []string) bool {
	if len(cells) != len(columns) {
		return false
	}
	for _, c := range cells {
		if !strings.HasPrefix(c, "-") {
			return false
		}
	}
	return true
}

func parseRow(r row) (config.Record, error) {
	port, err := strconv.Atoi(r.cells[0])
	if err != nil || port <= 0 {
		return config.Record{}, errors.ParseLine(r.line, "invalid port, got: %q", r.cells[0])
	}

	if len(r.cells) < 2 {
		return config.Record{}, errors.ParseLine(r.line, "missing server_name, port: %d", port)
	}
	serverName := r.cells[1]

	if len(r.cells) < 3 {
		// "| 8080 | | - |" collapses to two cells
		if serverName == DefaultMarker {
			return config.Record{}, errors.ParseLine(r.line, "missing server_name, port: %d", port)
		}
		return config.Record{}, errors.ParseLine(r.line, "missing filename, port: %d", port)
	}
	if len(r.cells) > 3 {
		return config.Record{}, errors.ParseLine(r.line, "unexpected column %q, port: %d", r.cells[3], port)
	}

	filename := r.cells[2]
	if filename == DefaultMarker {
		filename = config.DefaultFilename(serverName)
	}
	if !validFilename(filename) {
		return config.Record{}, errors.ParseLine(r.line, "invalid filename %q, port: %d", filename, port)
	}

	return config.Record{Filename: filename, ServerName: serverName, Port: port}, nil
}

// validFilename rejects names that would escape the live or draft directory
func validFilename(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return filepath.Base(name) == name && !strings.ContainsAny(name, `/\`)
}
