package database

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/tmeire/nifty/database/sqlite"
)

// DefaultEnvironment is the database.yml section used when none is requested.
const DefaultEnvironment = "development"

// ErrUnsupportedAdapter is returned for adapters other than sqlite3.
var ErrUnsupportedAdapter = errors.New("unsupported database adapter")

// Config is one environment section of config/database.yml.
type Config struct {
	Adapter  string `yaml:"adapter"`
	Database string `yaml:"database"`
}

// LoadConfig reads the given environment from <root>/config/database.yml.
// Relative database paths are resolved against root.
func LoadConfig(root, env string) (Config, error) {
	if env == "" {
		env = DefaultEnvironment
	}

	path := filepath.Join(root, "config", "database.yml")
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read database config: %w", err)
	}

	var envs map[string]Config
	if err := yaml.Unmarshal(data, &envs); err != nil {
		return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	conf, ok := envs[env]
	if !ok {
		return Config{}, fmt.Errorf("no %q environment in %s", env, path)
	}
	if conf.Database != "" && !filepath.IsAbs(conf.Database) {
		conf.Database = filepath.Join(root, conf.Database)
	}
	return conf, nil
}

// Open connects to the configured database without modifying it.
func (c Config) Open() (Database, error) {
	switch c.Adapter {
	case "sqlite3":
		return sqlite.Config{Path: c.Database}.OpenReadOnly()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAdapter, c.Adapter)
	}
}
