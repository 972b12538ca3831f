package config

import (
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

type Config struct {
	DatabaseBusyTimeout       time.Duration `koanf:"database_busy_timeout"`
	DatabaseConnectRetryCount int           `koanf:"database_connect_retry_count"`
	DatabaseConnectRetryDelay time.Duration `koanf:"database_connect_retry_delay"`
	DatabaseDebug             bool          `koanf:"database_debug"`
	DatabaseFilePath          string        `koanf:"database_file_path"`
	DatabaseMaxRetries        int           `koanf:"database_max_retries"`
	Environment               string        `koanf:"environment"`
	FrontendURL               string        `koanf:"frontend_url"`
	Hostname                  string        `koanf:"-"`
	JWTSecret                 string        `koanf:"jwt_secret"`
	ServerHost                string        `koanf:"server_host"`
	ServerPort                int           `koanf:"server_port"`
}

const defaultConfigFile = "./config.yaml"

// New loads configuration from an optional YAML config file and the
// environment. Environment variables override file values; the variable name
// is the uppercased form of the file key (e.g. DATABASE_FILE_PATH for
// database_file_path).
func New() (*Config, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	cfg := &Config{
		DatabaseBusyTimeout:       5 * time.Second,
		DatabaseConnectRetryCount: 5,
		DatabaseConnectRetryDelay: 2 * time.Second,
		DatabaseMaxRetries:        3,
		Environment:               "development",
		FrontendURL:               "http://localhost:5173",
		Hostname:                  hostname,
		ServerHost:                "127.0.0.1",
		ServerPort:                3799,
	}

	k := koanf.New(".")

	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = defaultConfigFile
	}
	if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil && !os.IsNotExist(errors.Cause(err)) {
		// A missing config file is fine; everything can come from the
		// environment. Anything else (unreadable file, bad YAML) is fatal.
		if _, statErr := os.Stat(configFile); statErr == nil {
			return nil, errors.Wrapf(err, "failed to load config file %s", configFile)
		}
	}

	// Empty environment variables are treated as unset so a file value isn't
	// clobbered by e.g. `DATABASE_FILE_PATH= ./server`.
	err = k.Load(env.ProviderWithValue("", ".", func(key, value string) (string, interface{}) {
		if value == "" {
			return "", nil
		}
		return strings.ToLower(key), value
	}), nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.WithStack(err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (cfg *Config) validate() error {
	missing := []string{}
	if cfg.DatabaseFilePath == "" {
		missing = append(missing, "DATABASE_FILE_PATH (database_file_path)")
	}
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET (jwt_secret)")
	}
	if len(missing) > 0 {
		return errors.Errorf("missing required config: %s", strings.Join(missing, ", "))
	}
	return nil
}

// NewForTest returns a config suitable for unit tests: in-memory database,
// fixed JWT secret, and no connect-retry waiting.
func NewForTest() *Config {
	return &Config{
		DatabaseBusyTimeout:       5 * time.Second,
		DatabaseConnectRetryCount: 1,
		DatabaseConnectRetryDelay: 0,
		DatabaseFilePath:          ":memory:",
		DatabaseMaxRetries:        3,
		Environment:               "test",
		Hostname:                  "test",
		JWTSecret:                 "test-secret",
		ServerHost:                "127.0.0.1",
		ServerPort:                0,
	}
}

// IsTest reports whether the server is running under the test environment.
// Test-only fixture routes are registered only when this is true.
func (cfg *Config) IsTest() bool {
	return cfg.Environment == "test"
}
