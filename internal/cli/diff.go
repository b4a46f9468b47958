package cli

import (
	"github.com/ksyq12/vhostsync/internal/reconcile"
	"github.com/spf13/cobra"
)

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Show differences between live and draft files",
	Long: `Print a unified diff from each live vhost to its draft for every
manifest record. Nothing is written.

Examples:
  vhostsync diff
  vhostsync diff --json`,
	Args: cobra.NoArgs,
	RunE: runDiff,
}

func init() {
	rootCmd.AddCommand(diffCmd)
}

func runDiff(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	records, err := readManifest(cfg)
	if err != nil {
		return err
	}

	diffs, err := reconcile.DiffFiles(cfg, records)
	if err != nil {
		return err
	}

	p := printer(cmd)
	if jsonOutput {
		return p.JSON(diffs)
	}

	changed := 0
	for _, fd := range diffs {
		switch {
		case fd.Missing == "both":
			p.Warn("%s: no live file and no draft", fd.Record.Filename)
		case fd.Missing == "live":
			p.Info("%s: new draft, no live file", fd.Record.Filename)
		case fd.Missing == "draft":
			p.Info("%s: no draft yet, run apply", fd.Record.Filename)
		case fd.Diff != "":
			changed++
			p.Diff(fd.Diff)
		}
	}

	if changed == 0 {
		p.Success("Drafts match the live directory")
	}
	return nil
}
