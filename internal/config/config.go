// Package config loads the remote keyword server's YAML configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/robotcql/robotcql/internal/cassandra"
)

// defaultListen is the conventional remote-library port.
const defaultListen = ":8270"

// Duration is a time.Duration that unmarshals from YAML strings like "60s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Config is the server's full configuration.
type Config struct {
	// Listen is the address the HTTP server binds to.
	Listen string `yaml:"listen"`

	Log       LogConfig       `yaml:"log"`
	Cassandra CassandraConfig `yaml:"cassandra"`
}

// LogConfig controls the server's structured logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// CassandraConfig holds connection defaults applied to every connect
// request that omits them. Hosts and credentials always come from the
// request itself.
type CassandraConfig struct {
	Port                     int      `yaml:"port"`
	Consistency              string   `yaml:"consistency"`
	ConnectTimeout           Duration `yaml:"connect_timeout"`
	RequestTimeout           Duration `yaml:"request_timeout"`
	DisableInitialHostLookup bool     `yaml:"disable_initial_host_lookup"`
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	return &Config{
		Listen: defaultListen,
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Cassandra: CassandraConfig{
			Port:           cassandra.DefaultPort,
			ConnectTimeout: Duration(10 * time.Second),
			RequestTimeout: Duration(60 * time.Second),
		},
	}
}

// Load reads and validates a YAML config file. Unset fields fall back to
// the defaults from Default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Listen == "" {
		c.Listen = defaultListen
	}
	if c.Cassandra.Port <= 0 || c.Cassandra.Port > 65535 {
		return fmt.Errorf("invalid cassandra port %d", c.Cassandra.Port)
	}
	switch c.Log.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("invalid log format %q", c.Log.Format)
	}
	return nil
}

// SessionConfig builds a cassandra.Config from the configured defaults
// and the per-request connection parameters.
func (c *CassandraConfig) SessionConfig(hosts []string, port int, keyspace, username, password string) *cassandra.Config {
	if port == 0 {
		port = c.Port
	}
	return &cassandra.Config{
		Hosts:                    hosts,
		Port:                     port,
		Keyspace:                 keyspace,
		Username:                 username,
		Password:                 password,
		Consistency:              c.Consistency,
		ConnectTimeout:           time.Duration(c.ConnectTimeout),
		RequestTimeout:           time.Duration(c.RequestTimeout),
		DisableInitialHostLookup: c.DisableInitialHostLookup,
	}
}
