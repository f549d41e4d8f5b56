package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cast"
)

type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Log       LogConfig       `koanf:"log"`
	Artifacts ArtifactsConfig `koanf:"artifacts"`
	Training  TrainingConfig  `koanf:"training"`
	Database  DatabaseConfig  `koanf:"database"`
}

type ServerConfig struct {
	Host string `koanf:"host"`
	Port string `koanf:"port"`
}

// Addr is the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, s.Port)
}

type LogConfig struct {
	Level   string `koanf:"level"`
	Verbose bool   `koanf:"verbose"`
}

type ArtifactsConfig struct {
	Dir              string `koanf:"dir"`
	PreprocessorFile string `koanf:"preprocessor_file"`
	ModelFile        string `koanf:"model_file"`
	RawFile          string `koanf:"raw_file"`
	TrainFile        string `koanf:"train_file"`
	TestFile         string `koanf:"test_file"`
}

type TrainingConfig struct {
	OnStartup   bool    `koanf:"on_startup"`
	DatasetPath string  `koanf:"dataset_path"`
	TestRatio   float64 `koanf:"test_ratio"`
	Seed        uint64  `koanf:"seed"`
	MinScore    float64 `koanf:"min_score"`
	Threshold   float64 `koanf:"threshold"`
}

type DatabaseConfig struct {
	Enabled        bool          `koanf:"enabled"`
	Address        string        `koanf:"address"`
	Port           string        `koanf:"port"`
	DB             string        `koanf:"db"`
	Username       string        `koanf:"username"`
	Password       string        `koanf:"password"`
	Workers        int           `koanf:"workers"`
	ConnectTimeout time.Duration `koanf:"connect_timeout"`
}

// ConnectionString is the lib/pq DSN for the configured database.
func (d DatabaseConfig) ConnectionString() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.Username, d.Password),
		Host:     net.JoinHostPort(d.Address, d.Port),
		Path:     "/" + d.DB,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// In all cases the default behavior should be a standalone server on
// localhost with the docker compose database settings.
func defaults() map[string]interface{} {
	return map[string]interface{}{
		"server.host": "127.0.0.1",
		"server.port": "8080",

		"log.level":   "info",
		"log.verbose": false,

		"artifacts.dir":               "artifacts",
		"artifacts.preprocessor_file": "preprocessor.json",
		"artifacts.model_file":        "model.json",
		"artifacts.raw_file":          "raw.csv",
		"artifacts.train_file":        "train.csv",
		"artifacts.test_file":         "test.csv",

		"training.on_startup":   true,
		"training.dataset_path": "data/transactions.csv",
		"training.test_ratio":   0.2,
		"training.seed":         42,
		"training.min_score":    0.6,
		"training.threshold":    0.5,

		"database.enabled":         false,
		"database.address":         "localhost",
		"database.port":            "5433",
		"database.db":              "postgres",
		"database.username":        "postgres",
		"database.password":        "testpassword",
		"database.workers":         2,
		"database.connect_timeout": "30s",
	}
}

// envKeys maps the environment variables the server honours to config keys.
var envKeys = map[string]string{
	"HOST":              "server.host",
	"PORT":              "server.port",
	"LOG_LEVEL":         "log.level",
	"ARTIFACTS_DIR":     "artifacts.dir",
	"DATASET_PATH":      "training.dataset_path",
	"TRAIN_ON_STARTUP":  "training.on_startup",
	"DATABASE_ENABLED":  "database.enabled",
	"DATABASE_WORKERS":  "database.workers",
	"POSTGRES_ADDRESS":  "database.address",
	"POSTGRES_PORT":     "database.port",
	"POSTGRES_DB":       "database.db",
	"POSTGRES_USERNAME": "database.username",
	"POSTGRES_PASSWORD": "database.password",
}

// Load builds the configuration from defaults, then the optional YAML file
// at path, then environment variables.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("config: defaults: %w", err)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: %s: %w", path, err)
		}
	}
	err := k.Load(env.Provider("", ".", func(s string) string {
		return envKeys[s]
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("config: environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ProcessEnvironmentVariables loads configuration from defaults and the
// environment only.
func ProcessEnvironmentVariables() (*Config, error) {
	return Load("")
}

func (c *Config) Validate() error {
	var errs []error

	port, err := cast.ToIntE(strings.TrimSpace(c.Server.Port))
	if err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %q is not a valid port", c.Server.Port))
	}
	if c.Artifacts.Dir == "" || c.Artifacts.PreprocessorFile == "" || c.Artifacts.ModelFile == "" {
		errs = append(errs, errors.New("artifacts.dir, artifacts.preprocessor_file and artifacts.model_file are required"))
	}
	if c.Training.OnStartup && c.Training.DatasetPath == "" {
		errs = append(errs, errors.New("training.dataset_path is required when training.on_startup is set"))
	}
	if c.Training.TestRatio <= 0 || c.Training.TestRatio >= 1 {
		errs = append(errs, fmt.Errorf("training.test_ratio %v must be between 0 and 1", c.Training.TestRatio))
	}
	if c.Training.MinScore < 0 || c.Training.MinScore > 1 {
		errs = append(errs, fmt.Errorf("training.min_score %v must be between 0 and 1", c.Training.MinScore))
	}
	if c.Training.Threshold <= 0 || c.Training.Threshold >= 1 {
		errs = append(errs, fmt.Errorf("training.threshold %v must be between 0 and 1", c.Training.Threshold))
	}
	if c.Database.Enabled && c.Database.Workers < 1 {
		errs = append(errs, errors.New("database.workers must be at least 1"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
