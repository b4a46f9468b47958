package cli

import (
	"fmt"

	"github.com/ksyq12/vhostsync/internal/driver"
	"github.com/ksyq12/vhostsync/internal/output"
	"github.com/ksyq12/vhostsync/internal/reconcile"
	"github.com/ksyq12/vhostsync/internal/script"
	"github.com/ksyq12/vhostsync/internal/writer"
	"github.com/spf13/cobra"
)

var applyDiff bool

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Stage drafts from the manifest and write the remediation script",
	Long: `Reconcile every manifest record with the live directory.

Existing vhosts are copied to the draft directory with bare "listen 443 ssl"
directives upgraded to HTTP/2. Vhosts missing from the live directory are
generated from the proxy template. The commands that promote drafts, reload
the server and issue certificates are written to the script file for manual
review. The live directory is never written.

Examples:
  vhostsync apply
  vhostsync apply --diff
  vhostsync apply --json`,
	Args: cobra.NoArgs,
	RunE: runApply,
}

func init() {
	applyCmd.Flags().BoolVar(&applyDiff, "diff", false, "Show the diff of drafts pending copy-back")
	rootCmd.AddCommand(applyCmd)
}

type applyResult struct {
	*reconcile.Report
	Script   writer.Result     `json:"script"`
	Commands []string          `json:"commands"`
	Notes    []string          `json:"notes,omitempty"`
	Diffs    map[string]string `json:"diffs,omitempty"`
}

func runApply(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	records, err := readManifest(cfg)
	if err != nil {
		return err
	}

	drv, err := driver.Get(cfg.Service)
	if err != nil {
		return err
	}

	w := newWriter()
	report := reconcile.New(cfg, w).Reconcile(records)

	plan, err := script.New(drv, cfg.CertbotEmail, rerunCommand).Generate(report)
	if err != nil {
		return err
	}
	saved, err := w.Write(cfg.Script, plan.String())
	if err != nil {
		return err
	}

	diffs, err := pendingDiffs(report)
	if err != nil {
		return err
	}

	p := printer(cmd)
	if jsonOutput {
		if err := p.JSON(applyResult{
			Report:   report,
			Script:   saved,
			Commands: plan.Commands,
			Notes:    plan.Notes,
			Diffs:    diffs,
		}); err != nil {
			return err
		}
		return failedErr(report)
	}

	printReport(p, report)
	for _, n := range plan.Notes {
		p.Print("# %s", n)
	}
	if applyDiff {
		for _, res := range report.InState(reconcile.PendingCopy) {
			p.Diff(diffs[res.Record.Filename])
		}
	}

	if plan.Empty() {
		p.Success("Nothing to do, %s", describeWrite(saved))
	} else {
		p.Success("%s (%d commands), review and run it with root", describeWrite(saved), len(plan.Commands))
	}
	return failedErr(report)
}

// pendingDiffs returns the live-to-draft diff of every record pending
// copy-back when --diff is set
func pendingDiffs(report *reconcile.Report) (map[string]string, error) {
	if !applyDiff {
		return nil, nil
	}
	diffs := make(map[string]string)
	for _, res := range report.InState(reconcile.PendingCopy) {
		d, err := res.Diff()
		if err != nil {
			return nil, err
		}
		diffs[res.Record.Filename] = d
	}
	return diffs, nil
}

func printReport(p *output.Printer, report *reconcile.Report) {
	rows := make([][]string, 0, len(report.Results))
	for _, res := range report.Results {
		detail := string(res.SSL)
		if res.Error != "" {
			detail = res.Error
		}
		rows = append(rows, []string{res.Record.Filename, string(res.State), detail})
	}
	p.Table([]string{"FILENAME", "STATE", "DETAIL"}, rows)

	for _, res := range report.Results {
		for _, d := range res.Drift {
			p.Warn("%s: live file has %s", res.Record.Filename, d)
		}
	}
}

func failedErr(report *reconcile.Report) error {
	failed := report.InState(reconcile.Failed)
	if len(failed) == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d records failed: %w", len(failed), len(report.Results), report.Err())
}
