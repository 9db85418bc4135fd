// Package config layers flags, PARNASO_* environment variables, the
// config.toml file and defaults into one viper instance.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ZhugeBane/parnaso-v6/internal/logging"
	"github.com/spf13/viper"
)

const (
	KeyDataDir        = "data.dir"
	KeyStorageDriver  = "storage.driver"
	KeySecretsBackend = "secrets.backend"
	KeyTokenTTL       = "auth.token_ttl"
	KeyLogLevel       = "log.level"
	KeyLogFile        = "log.file"

	EnvPrefix      = "PARNASO"
	ConfigFileName = "config.toml"
	LogFileName    = "parnaso.log"
	defaultDirName = ".parnaso"

	DriverTOML   = "toml"
	DriverSQLite = "sqlite"
)

var (
	ErrUnknownDriver = errors.New("unknown storage driver")
	ErrInvalidTTL    = errors.New("auth.token_ttl must be positive")
)

type Config struct {
	DataDir        string
	StorageDriver  string
	SecretsBackend string
	TokenTTL       time.Duration
	LogLevel       slog.Level
	LogFile        string
	// ConfigFile is the file that was read, empty when none existed.
	ConfigFile string
}

// SecretsDir is where the file secret backend keeps its entries.
func (c Config) SecretsDir() string {
	return filepath.Join(c.DataDir, "secrets")
}

// NewViper returns a viper instance with defaults and environment binding in place.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyStorageDriver, DriverTOML)
	v.SetDefault(KeySecretsBackend, "chain")
	v.SetDefault(KeyTokenTTL, "720h")
	v.SetDefault(KeyLogLevel, "info")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// LogLevelSet reports whether the log level comes from the environment or
// the config file instead of the default. Call it after Load.
func LogLevelSet(v *viper.Viper) bool {
	if os.Getenv(EnvPrefix+"_LOG_LEVEL") != "" {
		return true
	}
	return v.InConfig(KeyLogLevel)
}

// Load reads configFile (or <data dir>/config.toml when empty) into v and
// resolves the effective configuration. The resolved data dir is written
// back into v so adapters reading data.dir see the same path.
func Load(v *viper.Viper, configFile string) (Config, error) {
	dataDir, err := resolveDataDir(v.GetString(KeyDataDir))
	if err != nil {
		return Config{}, err
	}

	explicit := configFile != ""
	if !explicit {
		configFile = filepath.Join(dataDir, ConfigFileName)
	}
	v.SetConfigFile(configFile)
	v.SetConfigType("toml")

	readFile := configFile
	if err := v.ReadInConfig(); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config %s: %w", configFile, err)
		}
		readFile = ""
	}

	// The file may itself move the data directory.
	if dataDir, err = resolveDataDir(v.GetString(KeyDataDir)); err != nil {
		return Config{}, err
	}
	v.Set(KeyDataDir, dataDir)

	cfg := Config{
		DataDir:        dataDir,
		StorageDriver:  strings.ToLower(strings.TrimSpace(v.GetString(KeyStorageDriver))),
		SecretsBackend: strings.ToLower(strings.TrimSpace(v.GetString(KeySecretsBackend))),
		TokenTTL:       v.GetDuration(KeyTokenTTL),
		LogFile:        v.GetString(KeyLogFile),
		ConfigFile:     readFile,
	}

	switch cfg.StorageDriver {
	case DriverTOML, DriverSQLite:
	default:
		return Config{}, fmt.Errorf("%w %q (want %s or %s)", ErrUnknownDriver, cfg.StorageDriver, DriverTOML, DriverSQLite)
	}

	if cfg.TokenTTL <= 0 {
		return Config{}, ErrInvalidTTL
	}

	if cfg.LogLevel, err = logging.ParseLevel(v.GetString(KeyLogLevel)); err != nil {
		return Config{}, err
	}

	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(dataDir, LogFileName)
	}

	return cfg, nil
}

func resolveDataDir(dir string) (string, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" || dir == "~" || strings.HasPrefix(dir, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		switch {
		case dir == "":
			dir = filepath.Join(homeDir, defaultDirName)
		case dir == "~":
			dir = homeDir
		default:
			dir = filepath.Join(homeDir, dir[2:])
		}
	}

	absPath, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve data directory: %w", err)
	}

	return filepath.Clean(absPath), nil
}
