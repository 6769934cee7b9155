package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	boxerrors "github.com/alvmarrod/boxmon/internal/errors"
)

// Mode selects what an invocation prints
type Mode int

const (
	// ModeValues fetches the router pages and prints the current sample
	ModeValues Mode = iota
	// ModeDefinitions prints the static graph definitions
	ModeDefinitions
)

// Config holds the plugin inputs munin-node injects into the environment
type Config struct {
	RouterURL string
	Username  string
	Password  string
	Hostname  string
	Timeout   time.Duration
	LogLevel  logrus.Level
}

// Environment keys, as set in the plugin's [box_*] section
const (
	EnvIP       = "ip"
	EnvPassword = "password"
	EnvHostname = "hostname"
	EnvUsername = "username"
	EnvTimeout  = "timeout"
	EnvLogLevel = "log_level"
)

const (
	defaultUsername = "admin"
	defaultTimeout  = 10 * time.Second
	defaultLogLevel = logrus.WarnLevel
)

// Load reads configuration through getenv (os.Getenv in production)
func Load(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Username: strings.TrimSpace(getenv(EnvUsername)),
		Password: getenv(EnvPassword),
		Hostname: strings.TrimSpace(getenv(EnvHostname)),
	}

	if ip := strings.TrimSpace(getenv(EnvIP)); ip != "" {
		routerURL, err := NormalizeHost(ip)
		if err != nil {
			return nil, boxerrors.NewConfigError("invalid ip", err)
		}
		cfg.RouterURL = routerURL
	}

	if raw := strings.TrimSpace(getenv(EnvTimeout)); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return nil, boxerrors.NewConfigError("invalid timeout", err)
		}
		cfg.Timeout = timeout
	}

	if raw := strings.TrimSpace(getenv(EnvLogLevel)); raw != "" {
		level, err := logrus.ParseLevel(raw)
		if err != nil {
			return nil, boxerrors.NewConfigError("invalid log_level", err)
		}
		cfg.LogLevel = level
	} else {
		cfg.LogLevel = defaultLogLevel
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, boxerrors.NewConfigError("invalid configuration", err)
	}

	return cfg, nil
}

// applyDefaults sets default values for unspecified fields
func applyDefaults(cfg *Config) {
	if cfg.Username == "" {
		cfg.Username = defaultUsername
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
}

// validate checks values that are wrong in every mode
func validate(cfg *Config) error {
	if cfg.Timeout < 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}

// ValidateFor checks the inputs the given mode needs
func (c *Config) ValidateFor(mode Mode) error {
	switch mode {
	case ModeDefinitions:
		if c.Hostname == "" {
			return boxerrors.New(boxerrors.ErrCodeConfig, EnvHostname+" is required")
		}
	default:
		if c.RouterURL == "" {
			return boxerrors.New(boxerrors.ErrCodeConfig, EnvIP+" is required")
		}
		if c.Password == "" {
			return boxerrors.New(boxerrors.ErrCodeConfig, EnvPassword+" is required")
		}
	}
	return nil
}

// NormalizeHost turns a bare address or a URL into the router's base URL
// (scheme and host only)
// Example: 192.168.1.1 -> http://192.168.1.1
func NormalizeHost(raw string) (string, error) {
	if strings.HasPrefix(raw, "//") {
		raw = "http:" + raw
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("no host in %q", raw)
	}

	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q", parsed.Scheme)
	}

	return scheme + "://" + strings.ToLower(parsed.Host), nil
}
