package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/abiiranathan/recordroom/database"
)

// ConfigFileName is read from the working directory when no config file
// is named explicitly.
const ConfigFileName = "recordroom.yaml"

// EnvPrefix prefixes configuration environment variables. A double
// underscore separates nested keys: RECORDROOM_MYSQL__HOST -> mysql.host.
const EnvPrefix = "RECORDROOM_"

// MySQLConfig holds the connection settings of the production database.
type MySQLConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Database string `koanf:"database"`
	Username string `koanf:"username"`
	Password string `koanf:"password"`
	Charset  string `koanf:"charset"`
}

// Config holds the configuration for the CLI.
type Config struct {
	// server port. default is 8080
	Port int `koanf:"port"`

	// database/sql driver: mysql or sqlite3.
	Driver string `koanf:"driver"`

	// Data source name. When empty and the driver is mysql,
	// it is built from the MySQL section.
	DSN string `koanf:"dsn"`

	MySQL MySQLConfig `koanf:"mysql"`

	// Base URL of the API used by the terminal browser.
	APIURL string `koanf:"api_url"`

	// Directory of JSON record files loaded by initdb.
	SeedDir string `koanf:"seed_dir"`

	// Max files decoded at a time during an import.
	Workers int `koanf:"workers"`
}

var DefaultConfig = Config{
	Port:   8080,
	Driver: "mysql",
	MySQL: MySQLConfig{
		Host:     "localhost",
		Port:     3306,
		Database: "recordroom",
		Username: "root",
		Charset:  "utf8mb4",
	},
	APIURL:  "http://localhost:8080",
	Workers: 4,
}

func defaultsMap() map[string]any {
	d := DefaultConfig
	return map[string]any{
		"port":           d.Port,
		"driver":         d.Driver,
		"dsn":            d.DSN,
		"mysql.host":     d.MySQL.Host,
		"mysql.port":     d.MySQL.Port,
		"mysql.database": d.MySQL.Database,
		"mysql.username": d.MySQL.Username,
		"mysql.password": d.MySQL.Password,
		"mysql.charset":  d.MySQL.Charset,
		"api_url":        d.APIURL,
		"seed_dir":       d.SeedDir,
		"workers":        d.Workers,
	}
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// LoadConfig layers the defaults, the YAML file at path and the
// environment. An empty path reads ConfigFileName if it exists.
func LoadConfig(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaultsMap(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path == "" {
		if _, err := os.Stat(ConfigFileName); err == nil {
			path = ConfigFileName
		}
	} else if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config file %s does not exist", path)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// DataSource returns the DSN handed to the driver.
func (c *Config) DataSource() string {
	if c.DSN != "" || c.Driver != "mysql" {
		return c.DSN
	}
	m := c.MySQL
	return database.MySQLDSN(m.Host, m.Port, m.Username, m.Password, m.Database, m.Charset)
}
