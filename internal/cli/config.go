package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/shoppr/internal/logging"
	"github.com/mesh-intelligence/shoppr/internal/paths"
	"github.com/mesh-intelligence/shoppr/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"
	envPrefix      = "SHOPPR"
)

// Config keys.
const (
	cfgKeyBackend     = "backend"
	cfgKeyDataDir     = "data_dir"
	cfgKeyDatabaseURL = "database_url"
	cfgKeyAddr        = "addr"
	cfgKeyLogLevel    = "log_level"
	cfgKeyEnv         = "env"
	cfgKeyCORSOrigins = "cors_origins"
)

// Defaults for keys missing from config.yaml and the environment.
const (
	defaultBackend  = types.BackendSQLite
	defaultAddr     = ":8080"
	defaultLogLevel = "info"
	defaultEnv      = logging.EnvDevelopment
)

// envKeys are bound to SHOPPR_<KEY>. data_dir is resolved by the paths
// package, which gives config.yaml precedence over SHOPPR_DATA_DIR.
var envKeys = []string{
	cfgKeyBackend,
	cfgKeyDatabaseURL,
	cfgKeyAddr,
	cfgKeyLogLevel,
	cfgKeyEnv,
	cfgKeyCORSOrigins,
}

// settings is the resolved configuration of one invocation.
type settings struct {
	ConfigDir   string
	Store       types.Config
	Addr        string
	LogLevel    string
	Env         string
	CORSOrigins []string
}

// setup resolves settings and builds the logger.
func (a *app) setup() error {
	s, err := loadSettings(a.flags.configDir, a.flags.dataDir)
	if err != nil {
		return userError(err)
	}
	log, err := logging.New(s.Env, s.LogLevel)
	if err != nil {
		return userError(err)
	}
	a.settings = s
	a.log = log
	return nil
}

// loadSettings reads .env, then config.yaml from the resolved config
// directory, then SHOPPR_* variables. A missing .env or config.yaml is not
// an error.
func loadSettings(configDirFlag, dataDirFlag string) (*settings, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	configDir, err := paths.ResolveConfigDir(configDirFlag)
	if err != nil {
		return nil, fmt.Errorf("resolve config dir: %w", err)
	}

	v, err := loadConfig(configDir)
	if err != nil {
		return nil, err
	}

	dataDir, err := paths.ResolveDataDir(dataDirFlag, v.GetString(cfgKeyDataDir))
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	s := &settings{
		ConfigDir: configDir,
		Store: types.Config{
			Backend:     v.GetString(cfgKeyBackend),
			DataDir:     dataDir,
			DatabaseURL: v.GetString(cfgKeyDatabaseURL),
		},
		Addr:        v.GetString(cfgKeyAddr),
		LogLevel:    v.GetString(cfgKeyLogLevel),
		Env:         v.GetString(cfgKeyEnv),
		CORSOrigins: splitList(v.GetStringSlice(cfgKeyCORSOrigins)),
	}
	if err := s.Store.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return s, nil
}

// loadConfig reads config.yaml from configDir using Viper.
func loadConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyBackend, defaultBackend)
	v.SetDefault(cfgKeyAddr, defaultAddr)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	v.SetDefault(cfgKeyEnv, defaultEnv)

	v.SetEnvPrefix(envPrefix)
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// splitList accepts both YAML lists and a comma separated env value.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func configPath(configDir string) string {
	return filepath.Join(configDir, configFileExt)
}
