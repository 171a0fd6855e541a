package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	Backend  string `yaml:"backend"`
	DataDir  string `yaml:"data_dir,omitempty"`
	Addr     string `yaml:"addr"`
	LogLevel string `yaml:"log_level"`
	Env      string `yaml:"env"`
}

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize shoppr storage",
		Long:  "Create the configuration and data directories, write a default\nconfig.yaml and bring the database schema up to date.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInit(cmd)
		},
	}
}

func (a *app) runInit(cmd *cobra.Command) error {
	s := a.settings
	if err := os.MkdirAll(s.ConfigDir, 0o755); err != nil {
		return sysError(fmt.Errorf("create config directory: %w", err))
	}
	if err := writeConfigIfMissing(configPath(s.ConfigDir), s); err != nil {
		return sysError(fmt.Errorf("write config: %w", err))
	}

	b, err := a.attach()
	if err != nil {
		return err
	}
	if err := b.Detach(); err != nil {
		return sysError(fmt.Errorf("finalize storage: %w", err))
	}

	fmt.Fprintln(cmd.OutOrStdout(), "shoppr initialized in", s.ConfigDir)
	return nil
}

// writeConfigIfMissing creates config.yaml from s. An existing file is left
// untouched.
func writeConfigIfMissing(path string, s *settings) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	cfg := configFile{
		Backend:  s.Store.Backend,
		DataDir:  s.Store.DataDir,
		Addr:     s.Addr,
		LogLevel: s.LogLevel,
		Env:      s.Env,
	}
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
