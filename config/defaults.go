package config

// Default configuration values
const (
	DefaultLogLevel = "info"

	DefaultChallengeCount = 10

	DefaultStorePath    = "data/verification.db"
	DefaultRetrievalDir = "data/content"

	DefaultCacheMaxBytes           = 256 << 20
	DefaultRetrievalTimeoutSeconds = 30

	DefaultSchedulerIntervalSeconds = 60
	DefaultSchedulerCooldownSeconds = 300
	DefaultSchedulerMaxConcurrent   = 4
)

// DefaultConfig returns a configuration populated entirely with defaults,
// suitable for writing an initial config file.
func DefaultConfig() *Config {
	var config Config
	config.LogLevel = DefaultLogLevel
	config.Engine.ChallengeCount = DefaultChallengeCount
	config.Store.Path = DefaultStorePath
	config.Retrieval.Dir = DefaultRetrievalDir
	config.Retrieval.CacheMaxBytes = DefaultCacheMaxBytes
	config.Retrieval.TimeoutSeconds = DefaultRetrievalTimeoutSeconds
	config.Scheduler.IntervalSeconds = DefaultSchedulerIntervalSeconds
	config.Scheduler.CooldownSeconds = DefaultSchedulerCooldownSeconds
	config.Scheduler.MaxConcurrent = DefaultSchedulerMaxConcurrent
	config.Scheduler.RetrievalsPerSecond = 0
	return &config
}
