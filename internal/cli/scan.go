package cli

import (
	"strconv"

	"github.com/ksyq12/vhostsync/internal/config"
	"github.com/ksyq12/vhostsync/internal/manifest"
	"github.com/ksyq12/vhostsync/internal/scanner"
	"github.com/ksyq12/vhostsync/internal/writer"
	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Write the manifest from the live vhost directory",
	Long: `Parse every vhost in the live directory and write the manifest table.

Files without server_name or a proxy_pass port are skipped. Other unreadable
files are reported and skipped. An existing manifest with different content is
backed up first.

Examples:
  vhostsync scan
  vhostsync scan --live-dir /etc/nginx/conf.d --manifest nginx.md`,
	Args: cobra.NoArgs,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

type scanResult struct {
	*scanner.Result
	Manifest writer.Result `json:"manifest"`
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	scan := scanner.Scan(cfg.LiveDir)
	res, err := newWriter().Write(cfg.Manifest, manifest.Format(scan.Records))
	if err != nil {
		return err
	}

	p := printer(cmd)
	if jsonOutput {
		return p.JSON(scanResult{Result: scan, Manifest: res})
	}

	if len(scan.Records) == 0 {
		p.Info("No vhosts found in %s", cfg.LiveDir)
	} else {
		p.Table([]string{"PORT", "SERVER_NAME", "FILENAME"}, recordRows(scan.Records))
	}
	for _, d := range scan.Diagnostics {
		p.Warn("%s", d.Msg)
	}
	p.Success("%s (%d vhosts)", describeWrite(res), len(scan.Records))
	return nil
}

func recordRows(records []config.Record) [][]string {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{strconv.Itoa(rec.Port), rec.ServerName, rec.Filename})
	}
	return rows
}
