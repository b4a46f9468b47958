// Package scanner builds records from every vhost file in a directory.
package scanner

import (
	"os"
	"path/filepath"

	"github.com/ksyq12/vhostsync/internal/config"
	"github.com/ksyq12/vhostsync/internal/errors"
	"github.com/ksyq12/vhostsync/internal/logger"
	"github.com/ksyq12/vhostsync/internal/vhost"
	"github.com/ksyq12/vhostsync/internal/writer"
)

// Diagnostic describes one entry that could not be scanned
type Diagnostic struct {
	Path string `json:"path"`
	Err  error  `json:"-"`
	Msg  string `json:"error"`
}

// Result is the outcome of scanning a directory
type Result struct {
	Dir         string          `json:"dir"`
	Records     []config.Record `json:"records"`
	Skipped     []string        `json:"skipped,omitempty"`
	Diagnostics []Diagnostic    `json:"diagnostics,omitempty"`
}

func (r *Result) diagnose(path string, err error) {
	logger.WarnFields("skip file", logger.Fields{"file": path, "error": err})
	r.Diagnostics = append(r.Diagnostics, Diagnostic{Path: path, Err: err, Msg: err.Error()})
}

// Scan parses every regular file in dir except writer backups. Files without
// server_name or a proxy port are skipped silently and other failures become
// diagnostics. A missing directory yields one diagnostic and no records.
func Scan(dir string) *Result {
	result := &Result{Dir: dir, Records: []config.Record{}}

	entries, err := os.ReadDir(dir)
	if err != nil {
		result.diagnose(dir, errors.IO("failed to read directory", dir, err))
		return result
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			logger.Debug("skip directory: %s", path)
			continue
		}
		if writer.IsBackup(entry.Name()) {
			logger.Debug("skip backup: %s", path)
			continue
		}

		rec, err := vhost.ParseFile(path)
		if err != nil {
			if errors.Is(err, errors.ErrDirectiveMissing) {
				logger.Debug("skip file: %v", err)
				result.Skipped = append(result.Skipped, entry.Name())
				continue
			}
			result.diagnose(path, err)
			continue
		}
		result.Records = append(result.Records, rec)
	}

	return result
}
