// Package writer saves text files without ever losing the content they
// replace.
//
// Before a file is overwritten with different content it is renamed to
// "{path}.bk_{YYYY-MM-DD}_{HHMMSS}" (local time). Writing content equal to
// what is on disk is a no-op. An existing backup is never replaced: a second
// change to the same path within one second fails instead. The rename strictly
// precedes the write, so a crash between the two leaves the target absent
// until the next run.
package writer

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ksyq12/vhostsync/internal/errors"
	"github.com/ksyq12/vhostsync/internal/logger"
)

// BackupLayout is the time layout of the backup suffix
const BackupLayout = "2006-01-02_150405"

// backupMarker separates the original name from the timestamp
const backupMarker = ".bk_"

// Action is what Write did to the destination
type Action string

// Write actions
const (
	Created   Action = "created"
	Unchanged Action = "unchanged"
	Updated   Action = "updated"
)

// Result describes one Write
type Result struct {
	Path   string `json:"path"`
	Action Action `json:"action"`
	Backup string `json:"backup,omitempty"`
}

// Writer writes files with backup-on-change semantics
type Writer struct {
	now  func() time.Time
	perm os.FileMode
}

// New creates a Writer using the local wall clock
func New() *Writer {
	return &Writer{now: time.Now, perm: 0644}
}

// NewWithClock creates a Writer whose backup names use now (for testing)
func NewWithClock(now func() time.Time) *Writer {
	return &Writer{now: now, perm: 0644}
}

// Canonical trims surrounding whitespace and ends text with one newline.
func Canonical(text string) string {
	return strings.TrimSpace(text) + "\n"
}

// Equal reports whether a and b are the same after canonicalization.
func Equal(a, b string) bool {
	return Canonical(a) == Canonical(b)
}

// BackupPath returns the name path is renamed to at time t
func BackupPath(path string, t time.Time) string {
	return path + backupMarker + t.Local().Format(BackupLayout)
}

// IsBackup reports whether name looks like a backup produced by Writer
func IsBackup(name string) bool {
	i := strings.LastIndex(name, backupMarker)
	if i < 0 {
		return false
	}
	_, err := time.Parse(BackupLayout, name[i+len(backupMarker):])
	return err == nil
}

// Write saves text to path. An existing file with different content is
// renamed to its backup name first.
func (w *Writer) Write(path, text string) (Result, error) {
	content := Canonical(text)
	result := Result{Path: path, Action: Created}

	existing, err := os.ReadFile(path)
	switch {
	case err == nil:
		if Canonical(string(existing)) == content {
			logger.Info("unchanged: %s", path)
			return Result{Path: path, Action: Unchanged}, nil
		}
		backup := BackupPath(path, w.now())
		// rename would replace a same-second backup
		if _, err := os.Lstat(backup); err == nil {
			return result, errors.IO("backup already exists", backup, os.ErrExist)
		}
		if err := os.Rename(path, backup); err != nil {
			return result, errors.IO("failed to back up file", path, err)
		}
		logger.InfoFields("backup file", logger.Fields{"from": path, "to": backup})
		result.Action = Updated
		result.Backup = backup
	case os.IsNotExist(err):
	default:
		return result, errors.IO("failed to read existing file", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return result, errors.IO("failed to create directory", filepath.Dir(path), err)
	}

	logger.Info("save file: %s", path)
	if err := os.WriteFile(path, []byte(content), w.perm); err != nil {
		return result, errors.IO("failed to write file", path, err)
	}
	return result, nil
}
