package env

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"go.uber.org/multierr"
)

const (
	DefaultHost     = "localhost"
	DefaultPort     = 5000
	DefaultEndpoint = "generate_docs"
)

// DefaultLanguages gates the no-selection path of docs.write.
var DefaultLanguages = []string{"python", "javascript"}

// Config is the contents of config.toml.
type Config struct {
	Service ServiceConfig `toml:"service"`
	Editor  EditorConfig  `toml:"editor"`
}

// ServiceConfig locates the generate_docs backend.
type ServiceConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Endpoint string `toml:"endpoint"`
	// Zero leaves the request unbounded.
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// EditorConfig controls how docs.write treats the editor state.
type EditorConfig struct {
	Languages    []string `toml:"languages"`
	SingleFlight bool     `toml:"single_flight"`
}

func DefaultConfig() *Config {
	return &Config{
		Service: ServiceConfig{
			Host:     DefaultHost,
			Port:     DefaultPort,
			Endpoint: DefaultEndpoint,
		},
		Editor: EditorConfig{
			Languages: append([]string(nil), DefaultLanguages...),
		},
	}
}

// LoadConfig reads path, falling back to defaults when the file does not
// exist. Missing fields take their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Service.Host == "" {
		c.Service.Host = defaults.Service.Host
	}
	if c.Service.Port == 0 {
		c.Service.Port = defaults.Service.Port
	}
	if c.Service.Endpoint == "" {
		c.Service.Endpoint = defaults.Service.Endpoint
	}
	if c.Editor.Languages == nil {
		c.Editor.Languages = defaults.Editor.Languages
	}
}

// Validate reports every problem with the config at once.
func (c *Config) Validate() error {
	var errs error
	if c.Service.Port < 1 || c.Service.Port > 65535 {
		errs = multierr.Append(errs, fmt.Errorf("service.port %d out of range", c.Service.Port))
	}
	if c.Service.TimeoutSeconds < 0 {
		errs = multierr.Append(errs, fmt.Errorf("service.timeout_seconds must not be negative"))
	}
	for i, lang := range c.Editor.Languages {
		if lang == "" {
			errs = multierr.Append(errs, fmt.Errorf("editor.languages[%d] is empty", i))
		}
	}
	return errs
}

// URL is the full generate_docs endpoint.
func (c *Config) URL() string {
	return fmt.Sprintf("http://%s:%d/%s", c.Service.Host, c.Service.Port, c.Service.Endpoint)
}

func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Service.TimeoutSeconds) * time.Second
}
