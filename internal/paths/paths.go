// Package paths resolves the configuration and data directories.
//
// Both directories default to dot-directories in the working directory so a
// checkout carries its own database. Flags and SHOPPR_* environment
// variables override the defaults.
package paths

import (
	"os"
	"path/filepath"
)

// Working-directory-relative defaults.
const (
	DefaultConfigDirName = ".shoppr"
	DefaultDataDirName   = ".shoppr-db"
)

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "SHOPPR_CONFIG_DIR"
	EnvDataDir   = "SHOPPR_DATA_DIR"
)

// getwd is replaced in tests.
var getwd = os.Getwd

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > SHOPPR_CONFIG_DIR env > $(CWD)/.shoppr.
// The result is always absolute.
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return inWorkingDir(DefaultConfigDirName)
}

// ResolveDataDir returns the data directory following the precedence chain:
// flag > config.yaml data_dir > SHOPPR_DATA_DIR env > $(CWD)/.shoppr-db.
// The result is always absolute.
func ResolveDataDir(flag, configYAMLValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return filepath.Abs(env)
	}
	return inWorkingDir(DefaultDataDirName)
}

func inWorkingDir(name string) (string, error) {
	cwd, err := getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, name), nil
}
