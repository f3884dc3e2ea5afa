package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port           string   `yaml:"port"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"server"`
	Auth struct {
		Secret   string `yaml:"secret"`
		TokenTTL string `yaml:"token_ttl"`
	} `yaml:"auth"`
	SQLite struct {
		DSN       string `yaml:"dsn"`
		KeySecret string `yaml:"key_secret"`
	} `yaml:"sqlite"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Quiz struct {
		TTL     string `yaml:"ttl"`
		Shuffle bool   `yaml:"shuffle"`
	} `yaml:"quiz"`
	AI struct {
		OpenAIBaseURL    string `yaml:"openai_base_url"`
		AnthropicBaseURL string `yaml:"anthropic_base_url"`
		GoogleBaseURL    string `yaml:"google_base_url"`
		OllamaBaseURL    string `yaml:"ollama_base_url"`
	} `yaml:"ai"`
}

// Load reads YAML config from path. Secrets may be overridden through the
// environment so they stay out of checked-in config files.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if v := os.Getenv("AUTH_SECRET"); v != "" {
		cfg.Auth.Secret = v
	}
	if v := os.Getenv("KEY_SECRET"); v != "" {
		cfg.SQLite.KeySecret = v
	}
	return cfg, nil
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
