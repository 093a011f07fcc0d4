package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const (
	DefaultPort      = "3000"
	DefaultDBDriver  = "sqlite3"
	DefaultDBDSN     = "file:/tmp/test.db?_foreign_keys=on"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

type Config struct {
	Port      string `yaml:"port"`
	DBDriver  string `yaml:"db_driver"`
	DBDSN     string `yaml:"db_dsn"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

func Default() *Config {
	return &Config{
		Port:      DefaultPort,
		DBDriver:  DefaultDBDriver,
		DBDSN:     DefaultDBDSN,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
	}
}

// Load reads filename on top of the defaults. Keys absent from the file keep
// their default value.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}

	return config, nil
}

// LoadDotEnv loads KEY=VALUE pairs from path into the process environment.
// A missing file is not an error. Variables already set are left alone.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// ApplyEnv overrides fields from DATABASE_URL, PORT, LOG_LEVEL and LOG_FORMAT.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if url, ok := lookup("DATABASE_URL"); ok && url != "" {
		c.DBDriver, c.DBDSN = ParseDatabaseURL(url)
	}
	if port, ok := lookup("PORT"); ok && port != "" {
		c.Port = port
	}
	if level, ok := lookup("LOG_LEVEL"); ok && level != "" {
		c.LogLevel = level
	}
	if format, ok := lookup("LOG_FORMAT"); ok && format != "" {
		c.LogFormat = format
	}
}

// ParseDatabaseURL picks the driver for a connection string. postgres:// and
// postgresql:// URLs go to lib/pq unchanged; anything else is a sqlite DSN.
// A sqlite:// URL is reduced to its path the way SQLAlchemy reads it
// (sqlite:////tmp/x.db is /tmp/x.db, sqlite:///x.db is x.db), and foreign
// keys are switched on unless the DSN already sets them.
func ParseDatabaseURL(url string) (driver, dsn string) {
	if strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://") {
		return "postgres", url
	}
	dsn = url
	if rest, ok := strings.CutPrefix(dsn, "sqlite://"); ok {
		dsn = strings.TrimPrefix(rest, "/")
		if dsn == "" || strings.HasPrefix(dsn, "?") {
			dsn = ":memory:" + dsn
		}
	}
	return "sqlite3", withForeignKeys(dsn)
}

func withForeignKeys(dsn string) string {
	_, query, _ := strings.Cut(dsn, "?")
	for _, opt := range strings.Split(query, "&") {
		if strings.HasPrefix(opt, "_foreign_keys=") || strings.HasPrefix(opt, "_fk=") {
			return dsn
		}
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=on"
	}
	return dsn + "?_foreign_keys=on"
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case "sqlite3", "postgres":
	default:
		return fmt.Errorf("unsupported db_driver %q", c.DBDriver)
	}
	if c.DBDSN == "" {
		return errors.New("db_dsn is required")
	}
	if c.Port == "" {
		return errors.New("port is required")
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("unsupported log_format %q", c.LogFormat)
	}
	return nil
}

func (c *Config) Addr() string {
	return ":" + c.Port
}
