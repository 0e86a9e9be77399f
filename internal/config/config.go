package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
)

var (
	// ErrInvalidLogLevel is returned when the log level is not a logrus level.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidLocale is returned when the collation locale is not a BCP 47 tag.
	ErrInvalidLocale = errors.New("invalid locale")
	// ErrInvalidDuration is returned when a timeout or TTL is not positive.
	ErrInvalidDuration = errors.New("duration must be positive")
	// ErrInvalidSchedule is returned when the sweep schedule is not a cron spec.
	ErrInvalidSchedule = errors.New("invalid sweep schedule")
)

const (
	defaultServerPort = "8080"
	defaultUserAgent  = "m3ugroups/1.0"
	defaultTimeout    = 30 * time.Second
	defaultSessionTTL = 24 * time.Hour
	defaultLogLevel   = "info"
	defaultLocale     = "und"
	defaultSweep      = "@every 10m"
)

// Config holds application configuration.
type Config struct {
	ServerPort string        `yaml:"server_port" env:"SERVER_PORT"`
	RedisURL   string        `yaml:"redis_url" env:"REDIS_URL"`
	UserAgent  string        `yaml:"user_agent" env:"FETCHER_USER_AGENT"`
	Timeout    time.Duration `yaml:"timeout" env:"FETCHER_TIMEOUT"`
	SessionTTL time.Duration `yaml:"session_ttl" env:"SESSION_TTL"`
	LogLevel   string        `yaml:"log_level" env:"LOG_LEVEL"`
	Locale     string        `yaml:"locale" env:"COLLATE_LOCALE"`
	// SweepSchedule is the cron spec for dropping expired in-memory sessions.
	SweepSchedule string `yaml:"sweep_schedule" env:"SESSION_SWEEP_SCHEDULE"`
}

// Default returns a Config with every field at its default.
func Default() *Config {
	return &Config{
		ServerPort: defaultServerPort,
		UserAgent:  defaultUserAgent,
		Timeout:    defaultTimeout,
		SessionTTL: defaultSessionTTL,
		LogLevel:   defaultLogLevel,
		Locale:     defaultLocale,

		SweepSchedule: defaultSweep,
	}
}

// Load builds config from environment variables. Variables that are unset are
// first looked up in .env.local and .env; anything still missing keeps its default.
// REDIS_URL is optional: without it sessions are kept in memory.
func Load() (*Config, error) {
	loadEnvFiles()

	c := Default()
	setString(&c.ServerPort, "SERVER_PORT")
	setString(&c.RedisURL, "REDIS_URL")
	setString(&c.UserAgent, "FETCHER_USER_AGENT")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.Locale, "COLLATE_LOCALE")
	setString(&c.SweepSchedule, "SESSION_SWEEP_SCHEDULE")
	if err := setDuration(&c.Timeout, "FETCHER_TIMEOUT"); err != nil {
		return nil, err
	}
	if err := setDuration(&c.SessionTTL, "SESSION_TTL"); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks field values that cannot be defaulted.
func (c *Config) Validate() error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
	if _, err := language.Parse(c.Locale); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLocale, c.Locale)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout: %w", ErrInvalidDuration)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session_ttl: %w", ErrInvalidDuration)
	}
	if _, err := cron.ParseStandard(c.SweepSchedule); err != nil {
		return fmt.Errorf("%w: %q: %w", ErrInvalidSchedule, c.SweepSchedule, err)
	}
	return nil
}

// Level returns the parsed log level. Call Validate first.
func (c *Config) Level() logrus.Level {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

// Tag returns the parsed collation locale. Call Validate first.
func (c *Config) Tag() language.Tag {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.Und
	}
	return tag
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) error {
	s := os.Getenv(key)
	if s == "" {
		return nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}
