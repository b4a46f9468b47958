package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ksyq12/vhostsync/internal/platform"
	"gopkg.in/yaml.v3"
)

// Config holds the locations and service settings every operation works with.
// It is resolved once and passed explicitly into scan and apply.
type Config struct {
	LiveDir      string `yaml:"live_dir" json:"live_dir"`
	DraftDir     string `yaml:"draft_dir" json:"draft_dir"`
	Manifest     string `yaml:"manifest" json:"manifest"`
	Script       string `yaml:"script" json:"script"`
	Service      string `yaml:"service" json:"service"`
	CertbotEmail string `yaml:"certbot_email,omitempty" json:"certbot_email,omitempty"`
}

// configDir is the default config directory
const configDir = ".config/vhostsync"
const configFile = "config.yaml"

// Defaults used when neither the config file nor flags set a value
const (
	DefaultDraftDir = "draft/conf.d"
	DefaultManifest = "nginx.md"
	DefaultScript   = "draft/apply.sh"
	DefaultService  = "nginx"
)

// New creates a new Config with default values
func New() *Config {
	return &Config{
		LiveDir:  platform.DetectLiveDir(),
		DraftDir: DefaultDraftDir,
		Manifest: DefaultManifest,
		Script:   DefaultScript,
		Service:  DefaultService,
	}
}

// ConfigPath returns the default config file path
func ConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, configDir, configFile), nil
}

// Load reads the config from path, or from ConfigPath when path is empty.
// A missing file yields the defaults. The result is not validated; callers
// apply flag overrides first and then call Validate.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return New(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := New()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to path, or to ConfigPath when path is empty
func (c *Config) Save(path string) error {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return err
		}
		path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks that every required location is set
func (c *Config) Validate() error {
	switch {
	case c.LiveDir == "":
		return fmt.Errorf("live_dir cannot be empty")
	case c.DraftDir == "":
		return fmt.Errorf("draft_dir cannot be empty")
	case c.Manifest == "":
		return fmt.Errorf("manifest cannot be empty")
	case c.Script == "":
		return fmt.Errorf("script cannot be empty")
	case c.Service == "":
		return fmt.Errorf("service cannot be empty")
	}
	if filepath.Clean(c.LiveDir) == filepath.Clean(c.DraftDir) {
		return fmt.Errorf("draft_dir must differ from live_dir")
	}
	return nil
}

// LivePath returns the live location of a vhost file
func (c *Config) LivePath(filename string) string {
	return filepath.Join(c.LiveDir, filename)
}

// DraftPath returns the staging location of a vhost file
func (c *Config) DraftPath(filename string) string {
	return filepath.Join(c.DraftDir, filename)
}
