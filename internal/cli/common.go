package cli

import (
	"fmt"
	"os"

	"github.com/ksyq12/vhostsync/internal/config"
	"github.com/ksyq12/vhostsync/internal/errors"
	"github.com/ksyq12/vhostsync/internal/manifest"
	"github.com/ksyq12/vhostsync/internal/output"
	"github.com/ksyq12/vhostsync/internal/writer"
	"github.com/spf13/cobra"
)

// loadConfig loads the config file and applies flag overrides
func loadConfig() (*config.Config, error) {
	cfg, err := deps.ConfigLoader.Load(configPath)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfig, "failed to load config", err)
	}

	applyOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfig, "invalid config", err)
	}
	return cfg, nil
}

func applyOverrides(cfg *config.Config) {
	if liveDir != "" {
		cfg.LiveDir = liveDir
	}
	if draftDir != "" {
		cfg.DraftDir = draftDir
	}
	if manifestPath != "" {
		cfg.Manifest = manifestPath
	}
	if scriptPath != "" {
		cfg.Script = scriptPath
	}
}

// readManifest parses the manifest file. Any malformed row is fatal.
func readManifest(cfg *config.Config) ([]config.Record, error) {
	data, err := os.ReadFile(cfg.Manifest)
	if err != nil {
		return nil, errors.IO("failed to read manifest", cfg.Manifest, err)
	}
	records, err := manifest.Parse(string(data))
	if err != nil {
		return nil, errors.WithFile(err, cfg.Manifest)
	}
	return records, nil
}

func newWriter() *writer.Writer {
	return writer.NewWithClock(deps.Clock)
}

func printer(cmd *cobra.Command) *output.Printer {
	return output.New(cmd.OutOrStdout())
}

// outputResult handles JSON or human-readable output
func outputResult(p *output.Printer, data interface{}, successMsg string, args ...interface{}) error {
	if jsonOutput {
		return p.JSON(data)
	}
	p.Success(successMsg, args...)
	return nil
}

// describeWrite is the human form of a writer result
func describeWrite(res writer.Result) string {
	switch res.Action {
	case writer.Updated:
		return fmt.Sprintf("updated %s (backup %s)", res.Path, res.Backup)
	case writer.Unchanged:
		return fmt.Sprintf("%s unchanged", res.Path)
	default:
		return fmt.Sprintf("created %s", res.Path)
	}
}
