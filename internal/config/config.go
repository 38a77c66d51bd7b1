// Package config loads the service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	// ErrParsingConfig wraps failures of the env parser.
	ErrParsingConfig = errors.New("failed to parse config")
	// ErrInvalidConfig is returned when a value parses but is not allowed.
	ErrInvalidConfig = errors.New("invalid config")
)

// Session backends.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config is the full service configuration.
type Config struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	GinMode         string        `env:"GIN_MODE" envDefault:"release"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"text"`
	QREngine        string        `env:"QR_ENGINE" envDefault:"yeqown"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`

	Session Session
	Redis   Redis
}

// Session configures per-visitor settings storage.
type Session struct {
	Backend         string        `env:"SESSION_BACKEND" envDefault:"memory"`
	CookieName      string        `env:"SESSION_COOKIE" envDefault:"qr_session"`
	TTL             time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"10m"`
	SecureCookie    bool          `env:"SESSION_SECURE_COOKIE" envDefault:"false"`
}

// Redis configures the redis session backend.
type Redis struct {
	URL            string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"2s"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"10s"`
	KeyPrefix      string        `env:"REDIS_KEY_PREFIX" envDefault:"qrstudio:session:"`
}

// Load reads .env files (the default ".env" when none is given; missing
// files are ignored) and then parses the environment.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		_ = godotenv.Load()
	} else {
		for _, f := range files {
			if err := godotenv.Load(f); err != nil {
				return Config{}, errors.Join(ErrParsingConfig, err)
			}
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Addr is the listen address for Port.
func (c Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

// SlogLevel maps LogLevel to a slog level.
func (c Config) SlogLevel() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}

func (c *Config) validate() error {
	var errs []error
	invalid := func(name, value string, allowed ...string) {
		errs = append(errs, fmt.Errorf("%w: %s=%q, want one of %s", ErrInvalidConfig, name, value, strings.Join(allowed, ", ")))
	}

	c.GinMode = strings.ToLower(c.GinMode)
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		invalid("GIN_MODE", c.GinMode, "debug", "release", "test")
	}

	c.LogLevel = strings.ToLower(c.LogLevel)
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		invalid("LOG_LEVEL", c.LogLevel, "debug", "info", "warn", "error")
	}

	c.LogFormat = strings.ToLower(c.LogFormat)
	switch c.LogFormat {
	case "text", "json":
	default:
		invalid("LOG_FORMAT", c.LogFormat, "text", "json")
	}

	c.QREngine = strings.ToLower(c.QREngine)
	switch c.QREngine {
	case "yeqown", "skip2", "boombuler":
	default:
		invalid("QR_ENGINE", c.QREngine, "yeqown", "skip2", "boombuler")
	}

	c.Session.Backend = strings.ToLower(c.Session.Backend)
	switch c.Session.Backend {
	case BackendMemory, BackendRedis:
	default:
		invalid("SESSION_BACKEND", c.Session.Backend, BackendMemory, BackendRedis)
	}

	if c.Port == "" {
		errs = append(errs, fmt.Errorf("%w: PORT is empty", ErrInvalidConfig))
	}
	if c.Session.CookieName == "" {
		errs = append(errs, fmt.Errorf("%w: SESSION_COOKIE is empty", ErrInvalidConfig))
	}
	if c.Session.TTL <= 0 {
		errs = append(errs, fmt.Errorf("%w: SESSION_TTL must be positive", ErrInvalidConfig))
	}
	return errors.Join(errs...)
}
