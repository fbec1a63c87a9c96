package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server   ServerConfig    `yaml:"server" json:"server" jsonschema:"description=Backend server configuration"`
	Database DatabaseConfig  `yaml:"database" json:"database" jsonschema:"description=Database configuration"`
	Profiles []ProfileConfig `yaml:"profiles" json:"profiles" jsonschema:"description=User profiles provisioned on server start"`
	Client   ClientConfig    `yaml:"client" json:"client" jsonschema:"description=Remote backend client configuration"`
}

// ServerConfig holds backend HTTP server settings
type ServerConfig struct {
	Listen      string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,minLength=1,description=HTTP server listen address"`
	Timeout     time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	APIKey      string        `yaml:"api_key" json:"api_key" jsonschema:"description=Shared api key required on every API request (optional)"`
	MaxPageSize int           `yaml:"max_page_size" json:"max_page_size" jsonschema:"default=100,minimum=20,description=Largest page the posts endpoint returns"`
}

// DatabaseConfig holds SQLite connection settings
type DatabaseConfig struct {
	DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:pronos.db?cache=shared&mode=rwc,minLength=1,description=Database connection string"`
	MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,minimum=1,description=Maximum number of open connections"`
	MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,minimum=1,description=Maximum number of idle connections"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,minimum=1,description=Connection maximum lifetime in seconds"`
}

// ProfileConfig defines a user identity provisioned by the server
type ProfileConfig struct {
	Username  string `yaml:"username" json:"username" jsonschema:"required,minLength=1,description=Unique user name"`
	AvatarURL string `yaml:"avatar_url" json:"avatar_url" jsonschema:"description=Public avatar URL"`
	Token     string `yaml:"token" json:"token" jsonschema:"required,minLength=1,description=Bearer token identifying the user (can use environment variable)"`
}

// ClientConfig holds settings used by CLI commands talking to a backend
type ClientConfig struct {
	URL     string        `yaml:"url" json:"url" jsonschema:"default=http://localhost:8080,description=Backend base URL"`
	APIKey  string        `yaml:"api_key" json:"api_key" jsonschema:"description=Shared api key, defaults to server.api_key"`
	Token   string        `yaml:"token" json:"token" jsonschema:"description=Bearer token of the acting user (can use environment variable)"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Request timeout"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		return nil, fmt.Errorf("verify config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) setDefaults() {
	// server
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 30 * time.Second
	}
	if c.Server.MaxPageSize == 0 {
		c.Server.MaxPageSize = 100
	}

	// database
	if c.Database.DSN == "" {
		c.Database.DSN = "file:pronos.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 3600
	}

	// client
	if c.Client.URL == "" {
		c.Client.URL = "http://localhost:8080"
	}
	if c.Client.APIKey == "" {
		c.Client.APIKey = c.Server.APIKey
	}
	if c.Client.Timeout == 0 {
		c.Client.Timeout = 30 * time.Second
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Server.Timeout < time.Second {
		return errors.New("server timeout must be at least 1 second")
	}
	if cfg.Server.MaxPageSize < 20 {
		return errors.New("server.max_page_size must be at least 20")
	}
	if cfg.Client.Timeout < time.Second {
		return errors.New("client timeout must be at least 1 second")
	}

	usernames := map[string]bool{}
	tokens := map[string]bool{}
	for i, p := range cfg.Profiles {
		if p.Username == "" {
			return fmt.Errorf("profiles[%d].username is required", i)
		}
		if p.Token == "" {
			return fmt.Errorf("profiles[%d].token is required", i)
		}
		if usernames[p.Username] {
			return fmt.Errorf("profiles[%d]: duplicate username %q", i, p.Username)
		}
		if tokens[p.Token] {
			return fmt.Errorf("profiles[%d]: token is already used by another profile", i)
		}
		usernames[p.Username] = true
		tokens[p.Token] = true
	}
	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetAPIConfig returns the api key required from clients and the largest page size served
func (c *Config) GetAPIConfig() (apiKey string, maxPageSize int) {
	return c.Server.APIKey, c.Server.MaxPageSize
}

// Secrets returns all configured secret values, used to mask them in logs
func (c *Config) Secrets() []string {
	var res []string
	for _, s := range []string{c.Server.APIKey, c.Client.APIKey, c.Client.Token} {
		if s != "" {
			res = append(res, s)
		}
	}
	for _, p := range c.Profiles {
		res = append(res, p.Token)
	}
	return res
}
