package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port int // HTTP server port

	// Analyzer configuration
	RequestTimeout     time.Duration // Primary page fetch timeout
	ProbeTimeout       time.Duration // Per-probe HEAD timeout
	UserAgent          string        // User-Agent header on every outbound request
	DetectionThreshold int           // Minimum score for a technology to be reported
	ScoreConcurrency   int           // Signatures scored in parallel
	ProbeRate          float64       // Probes per second per analysis, 0 is unlimited
	MaxBodyBytes       int64         // Cap on the decoded page body

	// Logging configuration
	LogLevel  string // debug, info, warn, error
	LogFormat string // text or json
	LogFile   string // rotated log file, stdout when empty
}

// keys maps every config key to the environment variable it is read from.
// Durations are given in milliseconds.
var keys = map[string]string{
	"port":                "PORT",
	"request_timeout":     "REQUEST_TIMEOUT",
	"probe_timeout":       "PROBE_TIMEOUT",
	"user_agent":          "USER_AGENT",
	"detection_threshold": "DETECTION_THRESHOLD",
	"score_concurrency":   "SCORE_CONCURRENCY",
	"probe_rate":          "PROBE_RATE",
	"max_body_bytes":      "MAX_BODY_BYTES",
	"log_level":           "LOG_LEVEL",
	"log_format":          "LOG_FORMAT",
	"log_file":            "LOG_FILE",
}

// Load reads configuration from defaults, an optional YAML file named by
// CONFIG_FILE, and environment variables, in increasing precedence.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	for key, env := range keys {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	cfg := &Config{
		Port:               v.GetInt("port"),
		RequestTimeout:     time.Duration(v.GetInt64("request_timeout")) * time.Millisecond,
		ProbeTimeout:       time.Duration(v.GetInt64("probe_timeout")) * time.Millisecond,
		UserAgent:          v.GetString("user_agent"),
		DetectionThreshold: v.GetInt("detection_threshold"),
		ScoreConcurrency:   v.GetInt("score_concurrency"),
		ProbeRate:          v.GetFloat64("probe_rate"),
		MaxBodyBytes:       v.GetInt64("max_body_bytes"),
		LogLevel:           v.GetString("log_level"),
		LogFormat:          v.GetString("log_format"),
		LogFile:            v.GetString("log_file"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 8080)
	v.SetDefault("request_timeout", 10000)
	v.SetDefault("probe_timeout", 5000)
	v.SetDefault("user_agent", "TechStack-Analyzer/1.0")
	v.SetDefault("detection_threshold", 30)
	v.SetDefault("score_concurrency", 8)
	v.SetDefault("probe_rate", 0)
	v.SetDefault("max_body_bytes", 5<<20)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("log_file", "")
}

// Validate rejects values the server cannot run with.
func (c *Config) Validate() error {
	var errs []error

	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port must be between 1 and 65535, got %d", c.Port))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("request timeout must be positive"))
	}
	if c.ProbeTimeout <= 0 {
		errs = append(errs, errors.New("probe timeout must be positive"))
	}
	if c.DetectionThreshold <= 0 {
		errs = append(errs, errors.New("detection threshold must be positive"))
	}
	if c.ScoreConcurrency <= 0 {
		errs = append(errs, errors.New("score concurrency must be positive"))
	}
	if c.ProbeRate < 0 {
		errs = append(errs, errors.New("probe rate must not be negative"))
	}
	if c.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("max body bytes must be positive"))
	}

	return errors.Join(errs...)
}
