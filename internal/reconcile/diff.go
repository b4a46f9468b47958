package reconcile

import (
	"fmt"
	"os"

	"github.com/ksyq12/vhostsync/internal/config"
	"github.com/ksyq12/vhostsync/internal/errors"
	"github.com/ksyq12/vhostsync/internal/writer"
	"github.com/pmezard/go-difflib/difflib"
)

// UnifiedDiff returns the diff from live to draft content, or "" when they
// are equal after canonicalization
func UnifiedDiff(livePath, draftPath, live, draft string) (string, error) {
	if writer.Equal(live, draft) {
		return "", nil
	}
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(writer.Canonical(live)),
		B:        difflib.SplitLines(writer.Canonical(draft)),
		FromFile: livePath,
		ToFile:   draftPath,
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", fmt.Errorf("failed to generate diff: %w", err)
	}
	return text, nil
}

// Diff returns the live-to-draft diff of a result
func (r RecordResult) Diff() (string, error) {
	return UnifiedDiff(r.LivePath, r.DraftPath, r.Live, r.Draft)
}

// FileDiff is the on-disk difference between a live file and its draft
type FileDiff struct {
	Record config.Record `json:"record"`
	// Missing names the side without a file: "live", "draft", "both" or ""
	Missing string `json:"missing,omitempty"`
	Diff    string `json:"diff,omitempty"`
}

// DiffFiles compares live and draft files for every record without writing
// anything
func DiffFiles(cfg *config.Config, records []config.Record) ([]FileDiff, error) {
	out := make([]FileDiff, 0, len(records))
	for _, rec := range records {
		fd := FileDiff{Record: rec}
		live, liveErr := readOptional(cfg.LivePath(rec.Filename))
		draft, draftErr := readOptional(cfg.DraftPath(rec.Filename))
		if err := errors.Join(liveErr, draftErr); err != nil {
			return nil, err
		}

		switch {
		case live == nil && draft == nil:
			fd.Missing = "both"
		case live == nil:
			fd.Missing = "live"
		case draft == nil:
			fd.Missing = "draft"
		default:
			d, err := UnifiedDiff(cfg.LivePath(rec.Filename), cfg.DraftPath(rec.Filename), *live, *draft)
			if err != nil {
				return nil, err
			}
			fd.Diff = d
		}
		out = append(out, fd)
	}
	return out, nil
}

// readOptional returns nil content for a missing file
func readOptional(path string) (*string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.IO("failed to read file", path, err)
	}
	s := string(data)
	return &s, nil
}
