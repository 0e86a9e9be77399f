package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type fileConfig struct {
	ServerPort string `yaml:"server_port"`
	RedisURL   string `yaml:"redis_url"`
	UserAgent  string `yaml:"user_agent"`
	Timeout    string `yaml:"timeout"`
	SessionTTL string `yaml:"session_ttl"`
	LogLevel   string `yaml:"log_level"`
	Locale     string `yaml:"locale"`

	SweepSchedule string `yaml:"sweep_schedule"`
}

// LoadFromFile loads config from a YAML file. Omitted keys keep their defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f fileConfig
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	c := Default()
	for dst, v := range map[*string]string{
		&c.ServerPort: f.ServerPort,
		&c.RedisURL:   f.RedisURL,
		&c.UserAgent:  f.UserAgent,
		&c.LogLevel:   f.LogLevel,
		&c.Locale:     f.Locale,

		&c.SweepSchedule: f.SweepSchedule,
	} {
		if v != "" {
			*dst = v
		}
	}
	if f.Timeout != "" {
		d, err := time.ParseDuration(f.Timeout)
		if err != nil {
			return nil, fmt.Errorf("timeout: %w", err)
		}
		c.Timeout = d
	}
	if f.SessionTTL != "" {
		d, err := time.ParseDuration(f.SessionTTL)
		if err != nil {
			return nil, fmt.Errorf("session_ttl: %w", err)
		}
		c.SessionTTL = d
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}
