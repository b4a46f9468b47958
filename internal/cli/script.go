package cli

import (
	"os"

	"github.com/ksyq12/vhostsync/internal/errors"
	"github.com/spf13/cobra"
)

var scriptCmd = &cobra.Command{
	Use:   "script",
	Short: "Print the last generated remediation script",
	Long: `Print the script written by the last apply run.

The script is printed for review only. Run it yourself, with root:
  sudo sh draft/apply.sh

Examples:
  vhostsync script
  vhostsync script --script draft/apply.sh`,
	Args: cobra.NoArgs,
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(scriptCmd)
}

type scriptResult struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

func runScript(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(cfg.Script)
	if os.IsNotExist(err) {
		return errors.IO("no script yet, run apply first", cfg.Script, err)
	}
	if err != nil {
		return errors.IO("failed to read script", cfg.Script, err)
	}

	p := printer(cmd)
	if jsonOutput {
		return p.JSON(scriptResult{Path: cfg.Script, Content: string(data)})
	}
	p.Raw(string(data))
	return nil
}
