package cli

import (
	"os"

	"github.com/ksyq12/vhostsync/internal/logger"
	"github.com/spf13/cobra"
)

var (
	configPath   string
	liveDir      string
	draftDir     string
	manifestPath string
	scriptPath   string
	jsonOutput   bool
	verbose      bool
	version      = "dev"
)

// rerunCommand is what the generated script tells the operator to run once
// certificates are issued
const rerunCommand = "vhostsync apply"

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "vhostsync",
	Short: "Reconcile nginx vhost files with a manifest",
	Long: `vhostsync keeps a directory of nginx reverse-proxy vhosts in line with a
markdown manifest.

It scans the live directory into the manifest, stages patched copies in a
draft directory (backing up anything it replaces), and writes a shell script
of the privileged commands an operator runs to promote drafts, reload nginx
and issue certificates. It never writes the live directory and never runs
the script itself.`,
}

// Execute runs the root command
func Execute() {
	cobra.OnInitialize(func() {
		logger.Init(verbose)
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Config file (default ~/.config/vhostsync/config.yaml)")
	flags.StringVar(&liveDir, "live-dir", "", "Live vhost directory (read only)")
	flags.StringVar(&draftDir, "draft-dir", "", "Draft directory for patched copies")
	flags.StringVar(&manifestPath, "manifest", "", "Manifest file")
	flags.StringVar(&scriptPath, "script", "", "Generated remediation script")
	flags.BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging for debugging")
}
