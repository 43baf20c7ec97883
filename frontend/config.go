package frontend

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the frontend configuration.
type Config struct {
	// Listen is the HTTP listen address.
	Listen string `yaml:"listen"`

	// WikiRoot is the directory holding the wiki content store; the
	// credential database (users.db) lives inside it.
	WikiRoot string `yaml:"wiki_root"`

	// ContentDB is the path of the SQLite content engine database.
	ContentDB string `yaml:"content_db"`

	// SessionSecret signs session cookies. Must be at least 32 bytes.
	SessionSecret string `yaml:"session_secret"`

	// SessionTTL is the session cookie lifetime.
	SessionTTL time.Duration `yaml:"session_ttl"`

	// AuthScheme selects the password digest scheme: "legacy" (SHA-1 of
	// email-password, compatible with existing stored digests) or "bcrypt".
	AuthScheme string `yaml:"auth_scheme"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

func (c *Config) defaults() {
	if c.Listen == "" {
		c.Listen = ":4567"
	}
	if c.WikiRoot == "" {
		c.WikiRoot = "."
	}
	if c.ContentDB == "" {
		c.ContentDB = "wiki.db"
	}
	if c.SessionTTL <= 0 {
		c.SessionTTL = 24 * time.Hour
	}
	if c.AuthScheme == "" {
		c.AuthScheme = "legacy"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// LoadConfigFile reads a YAML config file and applies defaults.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.defaults()
	return cfg, nil
}
