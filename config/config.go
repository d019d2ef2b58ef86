// Package config loads the engine's YAML configuration with defaults and
// environment overrides.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/certivault/pdp-engine/pkg/logtrace"
)

// Config represents the YAML configuration structure
type Config struct {
	LogLevel string `yaml:"log_level"`

	Engine struct {
		ChallengeCount int `yaml:"challenge_count"`
	} `yaml:"engine"`

	Store struct {
		Path string `yaml:"path"`
	} `yaml:"store"`

	Retrieval struct {
		Dir            string `yaml:"dir"`
		CacheMaxBytes  int64  `yaml:"cache_max_bytes"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"retrieval"`

	Scheduler struct {
		IntervalSeconds     int `yaml:"interval_seconds"`
		CooldownSeconds     int `yaml:"cooldown_seconds"`
		MaxConcurrent       int `yaml:"max_concurrent"`
		RetrievalsPerSecond int `yaml:"retrievals_per_second"`
	} `yaml:"scheduler"`
}

// LoadConfig loads the configuration from a file, fills unset values with
// defaults and applies PDP_* environment overrides.
func LoadConfig(filename string) (*Config, error) {
	ctx := context.Background()

	absPath, err := filepath.Abs(filename)
	if err != nil {
		return nil, fmt.Errorf("error getting absolute path for config file: %w", err)
	}

	logtrace.Info(ctx, "Loading configuration", logtrace.Fields{
		"path": absPath,
	})

	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file %s does not exist", absPath)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	applyDefaults(ctx, &config)
	applyEnvOverrides(&config)

	return &config, nil
}

func applyDefaults(ctx context.Context, config *Config) {
	if config.LogLevel == "" {
		config.LogLevel = DefaultLogLevel
	}
	if config.Engine.ChallengeCount <= 0 {
		config.Engine.ChallengeCount = DefaultChallengeCount
	}
	if config.Store.Path == "" {
		config.Store.Path = DefaultStorePath
		logtrace.Info(ctx, "Using default store path", logtrace.Fields{
			"path": config.Store.Path,
		})
	}
	if config.Retrieval.Dir == "" {
		config.Retrieval.Dir = DefaultRetrievalDir
		logtrace.Info(ctx, "Using default content directory", logtrace.Fields{
			"dir": config.Retrieval.Dir,
		})
	}
	if config.Retrieval.CacheMaxBytes <= 0 {
		config.Retrieval.CacheMaxBytes = DefaultCacheMaxBytes
	}
	if config.Retrieval.TimeoutSeconds <= 0 {
		config.Retrieval.TimeoutSeconds = DefaultRetrievalTimeoutSeconds
	}
	if config.Scheduler.IntervalSeconds <= 0 {
		config.Scheduler.IntervalSeconds = DefaultSchedulerIntervalSeconds
	}
	if config.Scheduler.CooldownSeconds <= 0 {
		config.Scheduler.CooldownSeconds = DefaultSchedulerCooldownSeconds
	}
	if config.Scheduler.MaxConcurrent <= 0 {
		config.Scheduler.MaxConcurrent = DefaultSchedulerMaxConcurrent
	}
	if config.Scheduler.RetrievalsPerSecond < 0 {
		config.Scheduler.RetrievalsPerSecond = 0
	}
}

// applyEnvOverrides lets deployments override file settings without
// editing the file: PDP_LOG_LEVEL, PDP_STORE_PATH, PDP_RETRIEVAL_DIR.
func applyEnvOverrides(config *Config) {
	v := viper.New()
	v.SetEnvPrefix("PDP")
	v.AutomaticEnv()

	if s := v.GetString("LOG_LEVEL"); s != "" {
		config.LogLevel = s
	}
	if s := v.GetString("STORE_PATH"); s != "" {
		config.Store.Path = s
	}
	if s := v.GetString("RETRIEVAL_DIR"); s != "" {
		config.Retrieval.Dir = s
	}
}

// SaveConfig writes the configuration as YAML.
func SaveConfig(config *Config, filename string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("error serializing config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0o700); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o600); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return nil
}
