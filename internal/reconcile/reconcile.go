// Package reconcile compares manifest records with the live vhost directory
// and stages patched copies in the draft directory.
//
// For every record the engine re-reads the live file, so running it again
// after a partial failure or after the operator promoted drafts is safe.
//
//	NEW      -> GENERATED                 canonical vhost written to draft
//	EXISTING -> UNCHANGED                 draft equals live
//	         -> UPGRADED-PENDING-COPY     draft differs, copy-back scheduled
//	         -> AWAITING-CERT             no ssl listener yet
//
// The live directory is only read.
package reconcile

import (
	"fmt"
	"os"

	"github.com/ksyq12/vhostsync/internal/config"
	"github.com/ksyq12/vhostsync/internal/errors"
	"github.com/ksyq12/vhostsync/internal/logger"
	"github.com/ksyq12/vhostsync/internal/ssl"
	"github.com/ksyq12/vhostsync/internal/template"
	"github.com/ksyq12/vhostsync/internal/vhost"
	"github.com/ksyq12/vhostsync/internal/writer"
)

// State is the terminal state of a record for one run
type State string

// Record states
const (
	Generated    State = "generated"
	Unchanged    State = "unchanged"
	PendingCopy  State = "upgraded-pending-copy"
	AwaitingCert State = "awaiting-cert"
	Failed       State = "failed"
)

// RecordResult is what the engine did for one manifest record
type RecordResult struct {
	Record    config.Record `json:"record"`
	State     State         `json:"state"`
	LivePath  string        `json:"live_path"`
	DraftPath string        `json:"draft_path"`
	SSL       ssl.Outcome   `json:"ssl,omitempty"`
	Write     writer.Result `json:"write"`
	// Drift lists differences between the live file and the manifest record
	Drift []string `json:"drift,omitempty"`
	Error string   `json:"error,omitempty"`

	Live  string `json:"-"`
	Draft string `json:"-"`
	Err   error  `json:"-"`
}

// Report collects the results of one run in manifest order
type Report struct {
	Results []RecordResult `json:"results"`
}

// InState returns the results in state s
func (r *Report) InState(s State) []RecordResult {
	var out []RecordResult
	for _, res := range r.Results {
		if res.State == s {
			out = append(out, res)
		}
	}
	return out
}

// Err joins the errors of all failed records, or returns nil
func (r *Report) Err() error {
	var errs []error
	for _, res := range r.Results {
		if res.Err != nil {
			errs = append(errs, res.Err)
		}
	}
	return errors.Join(errs...)
}

// Engine stages drafts for manifest records
type Engine struct {
	cfg    *config.Config
	writer *writer.Writer
}

// New creates an Engine reading cfg.LiveDir and writing cfg.DraftDir
func New(cfg *config.Config, w *writer.Writer) *Engine {
	return &Engine{cfg: cfg, writer: w}
}

// Reconcile processes records in order. A failing record is reported and
// does not stop the others.
func (e *Engine) Reconcile(records []config.Record) *Report {
	report := &Report{Results: make([]RecordResult, 0, len(records))}
	for _, rec := range records {
		res := e.reconcile(rec)
		if res.Err != nil {
			res.State = Failed
			res.Error = res.Err.Error()
			logger.ErrorFields("record failed", logger.Fields{"file": rec.Filename, "error": res.Err})
		} else {
			logger.InfoFields("record reconciled", logger.Fields{"file": rec.Filename, "state": res.State})
		}
		report.Results = append(report.Results, res)
	}
	return report
}

func (e *Engine) reconcile(rec config.Record) RecordResult {
	res := RecordResult{
		Record:    rec,
		LivePath:  e.cfg.LivePath(rec.Filename),
		DraftPath: e.cfg.DraftPath(rec.Filename),
	}

	logger.Info("load file: %s", res.LivePath)
	data, err := os.ReadFile(res.LivePath)
	if os.IsNotExist(err) {
		return e.generate(res)
	}
	if err != nil {
		res.Err = errors.IO("failed to read live file", res.LivePath, err)
		return res
	}
	res.Live = string(data)
	res.Drift = drift(rec, res.Live)

	patch := ssl.Upgrade(res.Live)
	res.SSL = patch.Outcome
	res.Draft = patch.Text

	res.Write, err = e.writer.Write(res.DraftPath, patch.Text)
	if err != nil {
		res.Err = err
		return res
	}

	switch {
	case patch.Outcome == ssl.NoSSL:
		res.State = AwaitingCert
	case writer.Equal(res.Draft, res.Live):
		res.State = Unchanged
	default:
		res.State = PendingCopy
	}
	return res
}

func (e *Engine) generate(res RecordResult) RecordResult {
	text, err := template.Render(res.Record)
	if err != nil {
		res.Err = errors.WithFile(err, res.DraftPath)
		return res
	}
	res.Draft = text
	res.Write, err = e.writer.Write(res.DraftPath, text)
	if err != nil {
		res.Err = err
		return res
	}
	res.State = Generated
	return res
}

// drift compares the live file's directives with the manifest record.
// Differences are reported, never patched.
func drift(rec config.Record, live string) []string {
	got, err := vhost.Parse(live)
	if err != nil {
		return []string{err.Error()}
	}
	var out []string
	if got.ServerName != rec.ServerName {
		out = append(out, fmt.Sprintf("server_name %q, manifest has %q", got.ServerName, rec.ServerName))
	}
	if got.Port != rec.Port {
		out = append(out, fmt.Sprintf("port %d, manifest has %d", got.Port, rec.Port))
	}
	return out
}
