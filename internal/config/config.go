package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds application configuration loaded from a YAML file.
// Secrets (database credentials, the Anthropic API key, the RabbitMQ URL)
// come from the environment, never from the file.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	BasicAuth BasicAuthConfig `yaml:"basic_auth"`
	LLM       LLMConfig       `yaml:"llm"`

	// DisplayTimezone is the IANA zone used for the "created today"
	// duplicate-order cutoff and for timestamps shown to users.
	DisplayTimezone string `yaml:"display_timezone"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// BasicAuthConfig configures the HTTP Basic Authentication gate in front
// of all routes. When Enabled is false the gate passes everything through.
type BasicAuthConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Realm    string `yaml:"realm"`
}

type LLMConfig struct {
	Model       string  `yaml:"model"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}

// Default returns the configuration used when no config file is present.
func Default() Config {
	return Config{
		Server: ServerConfig{Addr: ":8080"},
		BasicAuth: BasicAuthConfig{
			Enabled: false,
			Realm:   "Care Plan Generator - Lamar Health",
		},
		LLM: LLMConfig{
			Model:       "claude-sonnet-4-20250514",
			MaxTokens:   4096,
			Temperature: 0.7,
		},
		DisplayTimezone: "America/Los_Angeles",
	}
}

// Load reads config from path, applying defaults for anything unset.
// A missing file is not an error; defaults are returned.
// You can override the path with CONFIG_PATH.
func Load(path string) (Config, error) {
	cfg := Default()

	if env := os.Getenv("CONFIG_PATH"); env != "" {
		path = env
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if cfg.BasicAuth.Enabled && (cfg.BasicAuth.Username == "" || cfg.BasicAuth.Password == "") {
		return cfg, fmt.Errorf("basic_auth is enabled but username or password is missing")
	}

	return cfg, nil
}

// Location resolves the configured display timezone, falling back to UTC
// if the zone name is unknown.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.DisplayTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
