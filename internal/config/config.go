package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the client settings. Zero fields fall back to the
// environment table.
type Config struct {
	Environment string        `yaml:"environment"`
	APIBaseURL  string        `yaml:"api_base_url,omitempty"`
	Timeout     string        `yaml:"timeout,omitempty"`
	PageSize    int           `yaml:"page_size,omitempty"`
	Theme       string        `yaml:"theme,omitempty"`
	Logging     LoggingConfig `yaml:"logging"`

	// Home is the state directory; never written to the file.
	Home string `yaml:"-"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file,omitempty"`
}

const (
	configFileName = "config.yaml"
	logFileName    = "orderup.log"
)

// DefaultHome is ~/.orderup unless ORDERUP_HOME says otherwise.
func DefaultHome() (string, error) {
	if h := strings.TrimSpace(os.Getenv("ORDERUP_HOME")); h != "" {
		return h, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, ".orderup"), nil
}

// DefaultConfig returns a development configuration rooted at home.
func DefaultConfig(home string) *Config {
	return &Config{
		Environment: string(Development),
		PageSize:    DefaultPageSize,
		Theme:       "classic",
		Logging:     LoggingConfig{Level: "info"},
		Home:        home,
	}
}

// Path is the default config file location under home.
func Path(home string) string { return filepath.Join(home, configFileName) }

// Load reads the YAML file at path (defaults when missing), then .env in the
// working directory, then ORDERUP_* overrides.
func Load(path, home string) (*Config, error) {
	cfg, err := LoadFile(path, home)
	if err != nil {
		return nil, err
	}

	// A missing .env is the normal case.
	_ = godotenv.Load()
	cfg.applyEnvOverrides()

	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	return cfg, nil
}

// LoadFile reads only the YAML file at path, so that saving it back never
// persists environment overrides.
func LoadFile(path, home string) (*Config, error) {
	cfg := DefaultConfig(home)
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("ORDERUP_ENV"); v != "" {
		c.Environment = v
	}
	if v := os.Getenv("ORDERUP_API_URL"); v != "" {
		c.APIBaseURL = v
	}
	if v := os.Getenv("ORDERUP_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Save writes the configuration as YAML, creating the directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Env resolves the configured release channel.
func (c *Config) Env() EnvConfig { return For(ResolveEnvironment(c.Environment)) }

// BaseURL is the explicit override or the environment's API base URL.
func (c *Config) BaseURL() string {
	if c.APIBaseURL != "" {
		return strings.TrimRight(c.APIBaseURL, "/")
	}
	return c.Env().APIBaseURL
}

// RequestTimeout parses Timeout, defaulting to 30s on empty or bad input.
func (c *Config) RequestTimeout() time.Duration {
	if c.Timeout == "" {
		return DefaultTimeout
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return DefaultTimeout
	}
	return d
}

// LogFile is where the interactive UI writes its log.
func (c *Config) LogFile() string {
	if c.Logging.File != "" {
		return c.Logging.File
	}
	return filepath.Join(c.Home, logFileName)
}
