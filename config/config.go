// Package config holds run configuration with documented defaults.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aviguptakonda/yc-demoday-batch/scroll"
)

// ScrollConfig mirrors the scroller tunables in file form.
type ScrollConfig struct {
	MaxAttempts     int `yaml:"max_attempts"`
	AttemptTimeout  int `yaml:"attempt_timeout_seconds"`
	StabilityWindow int `yaml:"stability_window"`
	ScrollDelayMS   int `yaml:"scroll_delay_ms"`
	ViewportStep    int `yaml:"viewport_step"`
	StepCount       int `yaml:"step_count"`
}

// Config is the top-level run configuration.
type Config struct {
	DirectoryURL  string `yaml:"directory_url"`
	Batch         string `yaml:"batch"`
	EntrySelector string `yaml:"entry_selector"`
	OutputDir     string `yaml:"output_dir"`
	DatabasePath  string `yaml:"database_path"`
	RedisAddr     string `yaml:"redis_addr"`
	PoolSize      int    `yaml:"pool_size"`
	// SessionRetries bounds whole-session retries on recoverable failure.
	SessionRetries int `yaml:"session_retries"`
	// EnrichLimit caps how many detail pages one run visits; 0 means all.
	EnrichLimit int `yaml:"enrich_limit"`
	// RequestsPerSecond and Burst feed the per-host rate limiter.
	RequestsPerSecond float64      `yaml:"requests_per_second"`
	Burst             int          `yaml:"burst"`
	Scroll            ScrollConfig `yaml:"scroll"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		DirectoryURL:      "https://www.ycombinator.com/companies?batch=Summer%202025",
		Batch:             "Summer 2025",
		EntrySelector:     `a[href*="/companies/"]`,
		OutputDir:         ".",
		DatabasePath:      "yc_companies.db",
		RedisAddr:         "localhost:6379",
		PoolSize:          2,
		SessionRetries:    3,
		EnrichLimit:       0,
		RequestsPerSecond: 1,
		Burst:             2,
		Scroll: ScrollConfig{
			MaxAttempts:     5,
			AttemptTimeout:  45,
			StabilityWindow: 3,
			ScrollDelayMS:   2000,
			ViewportStep:    1080,
			StepCount:       4,
		},
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %v", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %v", err)
	}
	return cfg, nil
}

// ScrollerConfig converts the file form into the scroller's config type.
func (c Config) ScrollerConfig() scroll.Config {
	return scroll.Config{
		MaxAttempts:     c.Scroll.MaxAttempts,
		AttemptTimeout:  time.Duration(c.Scroll.AttemptTimeout) * time.Second,
		StabilityWindow: c.Scroll.StabilityWindow,
		ScrollDelay:     time.Duration(c.Scroll.ScrollDelayMS) * time.Millisecond,
		ViewportStep:    c.Scroll.ViewportStep,
		StepCount:       c.Scroll.StepCount,
	}
}
