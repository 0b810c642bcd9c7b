package config

import (
	"encoding/json"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	DefaultBackendURL = "http://localhost:11434"
	DefaultTimeout    = 10 * time.Second
	DefaultLogLevel   = "warn"
	DefaultShell      = "posix"

	// DefaultBackendPort is assumed for a bare host with no port.
	DefaultBackendPort = "11434"
)

// Config holds runtime parameters for one invocation.
// Zero values mean "unspecified"; Merge and Defaults fill them in.
type Config struct {
	BackendURL     string `json:"backend_url" yaml:"backend_url" toml:"backend_url"`
	TimeoutSeconds int    `json:"timeout_seconds" yaml:"timeout_seconds" toml:"timeout_seconds"`
	LogLevel       string `json:"log_level" yaml:"log_level" toml:"log_level"`
	Shell          string `json:"shell" yaml:"shell" toml:"shell"`
	MetricsFile    string `json:"metrics_file" yaml:"metrics_file" toml:"metrics_file"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		BackendURL:     DefaultBackendURL,
		TimeoutSeconds: int(DefaultTimeout / time.Second),
		LogLevel:       DefaultLogLevel,
		Shell:          DefaultShell,
	}
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	p, err := ExpandHome(path)
	if err != nil {
		return cfg, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(p)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", p, err)
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", p, err)
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", p, err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// FromEnv reads the environment variables modelswitch understands.
// OLLAMA_URL wins over OLLAMA_HOST.
func FromEnv(getenv func(string) string) Config {
	var cfg Config
	if v := getenv("OLLAMA_URL"); v != "" {
		cfg.BackendURL = v
	} else if v := getenv("OLLAMA_HOST"); v != "" {
		cfg.BackendURL = v
	}
	cfg.LogLevel = getenv("MODELSWITCH_LOG_LEVEL")
	cfg.Shell = getenv("MODELSWITCH_SHELL")
	cfg.MetricsFile = getenv("MODELSWITCH_METRICS_FILE")
	return cfg
}

// Merge returns c with every non-zero field of over applied on top.
func (c Config) Merge(over Config) Config {
	if over.BackendURL != "" {
		c.BackendURL = over.BackendURL
	}
	if over.TimeoutSeconds != 0 {
		c.TimeoutSeconds = over.TimeoutSeconds
	}
	if over.LogLevel != "" {
		c.LogLevel = over.LogLevel
	}
	if over.Shell != "" {
		c.Shell = over.Shell
	}
	if over.MetricsFile != "" {
		c.MetricsFile = over.MetricsFile
	}
	return c
}

// Timeout is the catalog fetch timeout; non-positive values fall back to DefaultTimeout.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return DefaultTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Validate checks fields with a closed set of values.
func (c Config) Validate() error {
	switch c.Shell {
	case "", "posix", "fish":
	default:
		return fmt.Errorf("unsupported shell %q (want posix or fish)", c.Shell)
	}
	if _, err := NormalizeBackendURL(c.BackendURL); err != nil {
		return err
	}
	return nil
}

// NormalizeBackendURL accepts either a full URL or a bare host[:port] as
// OLLAMA_HOST allows, and returns a base URL without a trailing slash.
// A bare host without a port gets DefaultBackendPort; an explicit scheme
// keeps its own default port.
func NormalizeBackendURL(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultBackendURL, nil
	}
	bare := !strings.Contains(s, "://")
	if bare {
		s = "http://" + s
	}
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		return "", fmt.Errorf("backend url %q: only http and https are supported", s)
	}
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("backend url %q: invalid host", s)
	}
	if bare && u.Port() == "" {
		u.Host = net.JoinHostPort(u.Hostname(), DefaultBackendPort)
	}
	return strings.TrimRight(u.String(), "/"), nil
}
