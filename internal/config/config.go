package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files, environment variables and flags.
// It is built once by Load and must not be modified afterwards.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	BaseURL          string        `mapstructure:"base_url"`
	ContentType      string        `mapstructure:"content_type"`
	RequestTimeoutMs int64         `mapstructure:"request_timeout_ms"`
	RequestTimeout   time.Duration `mapstructure:"-"`
	BodyLogLimit     int           `mapstructure:"body_log_limit"`

	SlowResponseMs    int64         `mapstructure:"slow_response_ms"`
	SequentialTotalMs int64         `mapstructure:"sequential_total_ms"`
	SequentialAvgMs   int64         `mapstructure:"sequential_avg_ms"`
	SlowResponse      time.Duration `mapstructure:"-"`
	SequentialTotal   time.Duration `mapstructure:"-"`
	SequentialAvg     time.Duration `mapstructure:"-"`

	PublishersFile     string        `mapstructure:"publishers_file"`
	RunIntervalSeconds int64         `mapstructure:"run_interval_seconds"`
	RunInterval        time.Duration `mapstructure:"-"`
	Suites             []string      `mapstructure:"suites"`
}

// flagKeys maps command line flag names onto config keys.
var flagKeys = map[string]string{
	"log-level":       "log_level",
	"base-url":        "base_url",
	"publishers-file": "publishers_file",
	"interval":        "run_interval_seconds",
	"suite":           "suites",
}

// Load reads configuration from environment variables, the optional .env file and flags.
// flags may be nil.
func Load(flags *pflag.FlagSet) (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "dogceo-checker")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("base_url", DefaultBaseURL)
	v.SetDefault("content_type", DefaultContentType)
	v.SetDefault("request_timeout_ms", 0) // client default
	v.SetDefault("body_log_limit", 500)
	v.SetDefault("slow_response_ms", 3000)
	v.SetDefault("sequential_total_ms", 15000)
	v.SetDefault("sequential_avg_ms", 5000)
	v.SetDefault("publishers_file", "")
	v.SetDefault("run_interval_seconds", 0)
	v.SetDefault("suites", []string{})

	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

const (
	DefaultBaseURL     = "https://dog.ceo/api"
	DefaultContentType = "application/json"
)

func (cfg *Config) normalize() error {
	cfg.BaseURL = strings.TrimSuffix(strings.TrimSpace(cfg.BaseURL), "/")
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid base_url %q (must be an absolute URL)", cfg.BaseURL)
	}

	cfg.ContentType = strings.TrimSpace(cfg.ContentType)
	if cfg.ContentType == "" {
		cfg.ContentType = DefaultContentType
	}

	if cfg.RequestTimeoutMs < 0 {
		return fmt.Errorf("invalid request_timeout_ms (must not be negative)")
	}
	cfg.RequestTimeout = time.Duration(cfg.RequestTimeoutMs) * time.Millisecond

	if cfg.BodyLogLimit < 0 {
		return fmt.Errorf("invalid body_log_limit (must not be negative)")
	}

	if cfg.SlowResponseMs <= 0 || cfg.SequentialTotalMs <= 0 || cfg.SequentialAvgMs <= 0 {
		return fmt.Errorf("invalid response thresholds (must be positive milliseconds)")
	}
	cfg.SlowResponse = time.Duration(cfg.SlowResponseMs) * time.Millisecond
	cfg.SequentialTotal = time.Duration(cfg.SequentialTotalMs) * time.Millisecond
	cfg.SequentialAvg = time.Duration(cfg.SequentialAvgMs) * time.Millisecond

	if cfg.RunIntervalSeconds < 0 {
		return fmt.Errorf("invalid run_interval_seconds (must not be negative)")
	}
	cfg.RunInterval = time.Duration(cfg.RunIntervalSeconds) * time.Second

	cfg.PublishersFile = strings.TrimSpace(cfg.PublishersFile)
	cfg.Suites = normalizeSuites(cfg.Suites)
	return nil
}

// normalizeSuites lowercases names and splits comma separated env values.
func normalizeSuites(in []string) []string {
	var out []string
	for _, raw := range in {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
