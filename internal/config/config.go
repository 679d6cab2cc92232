package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/rohmanhakim/robots-directives/pkg/fileutil"
	"github.com/rohmanhakim/robots-directives/pkg/hashutil"
	"gopkg.in/yaml.v3"
)

// Environment variables read as defaults. Config files and flags override them.
const (
	EnvRedisURL    = "ROBOTS_REDIS_URL"
	EnvDatabaseURL = "ROBOTS_DATABASE_URL"
	EnvStorePath   = "ROBOTS_STORE_PATH"
)

var storeBackends = map[string]struct{}{
	"file":     {},
	"redis":    {},
	"postgres": {},
	"memory":   {},
}

type Config struct {
	//===============
	// Editing
	//===============
	// Whether directives keep their crawler scope. Meta robots fields turn it off.
	enableBotNames bool
	// Reject saves containing unknown directives or missing/unexpected values
	strictValidation bool
	// Maximum number of directives in one working set. 0 means unlimited
	maxTags int

	//===============
	// Store
	//===============
	// One of file, redis, postgres, memory
	storeBackend string
	// Root directory of the file backend
	storePath string
	redisURL  string
	// Postgres connection string
	databaseURL string
	// Algorithm used to fingerprint stored values
	hashAlgo hashutil.HashAlgo

	//===============
	// Retry
	//===============
	// Randomized variation added on top of each backoff delay
	jitter time.Duration
	// Controls the random number generator
	randomSeed int64
	// maximum attempt during retry
	maxAttempt int
	// initial delay for backoff
	backoffInitialDuration time.Duration
	// multiplier during exponential backoff
	backoffMultiplier float64
	// capped maximum delay for backoff to stop exponential multiplication
	backoffMaxDuration time.Duration

	//===============
	// Logging
	//===============
	logLevel slog.Level
}

type configDTO struct {
	EnableBotNames         *bool         `json:"enableBotNames,omitempty" yaml:"enableBotNames,omitempty"`
	StrictValidation       bool          `json:"strictValidation,omitempty" yaml:"strictValidation,omitempty"`
	MaxTags                int           `json:"maxTags,omitempty" yaml:"maxTags,omitempty"`
	StoreBackend           string        `json:"storeBackend,omitempty" yaml:"storeBackend,omitempty"`
	StorePath              string        `json:"storePath,omitempty" yaml:"storePath,omitempty"`
	RedisURL               string        `json:"redisUrl,omitempty" yaml:"redisUrl,omitempty"`
	DatabaseURL            string        `json:"databaseUrl,omitempty" yaml:"databaseUrl,omitempty"`
	HashAlgo               string        `json:"hashAlgo,omitempty" yaml:"hashAlgo,omitempty"`
	Jitter                 time.Duration `json:"jitter,omitempty" yaml:"jitter,omitempty"`
	RandomSeed             int64         `json:"randomSeed,omitempty" yaml:"randomSeed,omitempty"`
	MaxAttempt             int           `json:"maxAttempt,omitempty" yaml:"maxAttempt,omitempty"`
	BackoffInitialDuration time.Duration `json:"backoffInitialDuration,omitempty" yaml:"backoffInitialDuration,omitempty"`
	BackoffMultiplier      float64       `json:"backoffMultiplier,omitempty" yaml:"backoffMultiplier,omitempty"`
	BackoffMaxDuration     time.Duration `json:"backoffMaxDuration,omitempty" yaml:"backoffMaxDuration,omitempty"`
	LogLevel               string        `json:"logLevel,omitempty" yaml:"logLevel,omitempty"`
}

func newConfigFromDTO(dto configDTO) (Config, error) {
	cfg := WithDefault()

	// EnableBotNames defaults to true, so only an explicit value overrides it
	if dto.EnableBotNames != nil {
		cfg.enableBotNames = *dto.EnableBotNames
	}
	cfg.strictValidation = dto.StrictValidation

	// For other fields, only override if non-zero value is provided
	if dto.MaxTags != 0 {
		cfg.maxTags = dto.MaxTags
	}
	if dto.StoreBackend != "" {
		cfg.storeBackend = dto.StoreBackend
	}
	if dto.StorePath != "" {
		cfg.storePath = dto.StorePath
	}
	if dto.RedisURL != "" {
		cfg.redisURL = dto.RedisURL
	}
	if dto.DatabaseURL != "" {
		cfg.databaseURL = dto.DatabaseURL
	}
	if dto.HashAlgo != "" {
		algo, err := hashutil.ParseHashAlgo(dto.HashAlgo)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s", ErrInvalidConfig, err.Error())
		}
		cfg.hashAlgo = algo
	}
	if dto.Jitter != 0 {
		cfg.jitter = dto.Jitter
	}
	if dto.RandomSeed != 0 {
		cfg.randomSeed = dto.RandomSeed
	}
	if dto.MaxAttempt != 0 {
		cfg.maxAttempt = dto.MaxAttempt
	}
	if dto.BackoffInitialDuration != 0 {
		cfg.backoffInitialDuration = dto.BackoffInitialDuration
	}
	if dto.BackoffMultiplier != 0 {
		cfg.backoffMultiplier = dto.BackoffMultiplier
	}
	if dto.BackoffMaxDuration != 0 {
		cfg.backoffMaxDuration = dto.BackoffMaxDuration
	}
	if dto.LogLevel != "" {
		level, err := ParseLogLevel(dto.LogLevel)
		if err != nil {
			return Config{}, err
		}
		cfg.logLevel = level
	}

	return cfg.Build()
}

// WithConfigFile loads a JSON config file, or YAML when the extension is
// .yaml or .yml. Durations are nanoseconds in JSON and "250ms" style strings
// in YAML.
func WithConfigFile(path string) (Config, error) {
	_, err := os.Stat(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrFileDoesNotExist, err.Error())
	}
	configContent, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrReadConfigFail, err.Error())
	}
	cfgDTO := configDTO{}

	switch fileutil.GetFileExtension(path) {
	case "yaml", "yml":
		err = yaml.Unmarshal(configContent, &cfgDTO)
	default:
		err = json.Unmarshal(configContent, &cfgDTO)
	}
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrConfigParsingFail, err.Error())
	}

	cfg, err := newConfigFromDTO(cfgDTO)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// WithDefault creates a new Config with default values. Store locations fall
// back to the ROBOTS_* environment variables when they are set.
func WithDefault() *Config {
	defaultConfig := Config{
		enableBotNames:         true,
		strictValidation:       false,
		maxTags:                0,
		storeBackend:           "file",
		storePath:              getEnv(EnvStorePath, "var/robots"),
		redisURL:               getEnv(EnvRedisURL, "redis://localhost:6379/0"),
		databaseURL:            getEnv(EnvDatabaseURL, "postgres://localhost:5432/robots?sslmode=disable"),
		hashAlgo:               hashutil.HashAlgoBLAKE3,
		jitter:                 50 * time.Millisecond,
		randomSeed:             time.Now().UnixNano(),
		maxAttempt:             3,
		backoffInitialDuration: 100 * time.Millisecond,
		backoffMultiplier:      2.0,
		backoffMaxDuration:     2 * time.Second,
		logLevel:               slog.LevelWarn,
	}
	return &defaultConfig
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// ParseLogLevel accepts debug, info, warn and error in any case.
func ParseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("%w: log level %q", ErrInvalidConfig, s)
	}
	return level, nil
}

func (c *Config) WithEnableBotNames(enable bool) *Config {
	c.enableBotNames = enable
	return c
}

func (c *Config) WithStrictValidation(strict bool) *Config {
	c.strictValidation = strict
	return c
}

func (c *Config) WithMaxTags(max int) *Config {
	c.maxTags = max
	return c
}

func (c *Config) WithStoreBackend(backend string) *Config {
	c.storeBackend = backend
	return c
}

func (c *Config) WithStorePath(path string) *Config {
	c.storePath = path
	return c
}

func (c *Config) WithRedisURL(url string) *Config {
	c.redisURL = url
	return c
}

func (c *Config) WithDatabaseURL(url string) *Config {
	c.databaseURL = url
	return c
}

func (c *Config) WithHashAlgo(algo hashutil.HashAlgo) *Config {
	c.hashAlgo = algo
	return c
}

func (c *Config) WithJitter(jitter time.Duration) *Config {
	c.jitter = jitter
	return c
}

func (c *Config) WithRandomSeed(seed int64) *Config {
	c.randomSeed = seed
	return c
}

func (c *Config) WithMaxAttempt(attempts int) *Config {
	c.maxAttempt = attempts
	return c
}

func (c *Config) WithBackoffInitialDuration(duration time.Duration) *Config {
	c.backoffInitialDuration = duration
	return c
}

func (c *Config) WithBackoffMultiplier(multiplier float64) *Config {
	c.backoffMultiplier = multiplier
	return c
}

func (c *Config) WithBackoffMaxDuration(duration time.Duration) *Config {
	c.backoffMaxDuration = duration
	return c
}

func (c *Config) WithLogLevel(level slog.Level) *Config {
	c.logLevel = level
	return c
}

func (c *Config) Build() (Config, error) {
	if c.maxTags < 0 {
		return Config{}, fmt.Errorf("%w: maxTags cannot be negative", ErrInvalidConfig)
	}
	if _, ok := storeBackends[c.storeBackend]; !ok {
		return Config{}, fmt.Errorf("%w: unknown storeBackend %q", ErrInvalidConfig, c.storeBackend)
	}
	switch c.storeBackend {
	case "file":
		if c.storePath == "" {
			return Config{}, fmt.Errorf("%w: storePath cannot be empty", ErrInvalidConfig)
		}
	case "redis":
		if c.redisURL == "" {
			return Config{}, fmt.Errorf("%w: redisUrl cannot be empty", ErrInvalidConfig)
		}
	case "postgres":
		if c.databaseURL == "" {
			return Config{}, fmt.Errorf("%w: databaseUrl cannot be empty", ErrInvalidConfig)
		}
	}
	if _, err := hashutil.ParseHashAlgo(string(c.hashAlgo)); err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrInvalidConfig, err.Error())
	}
	if c.maxAttempt < 1 {
		return Config{}, fmt.Errorf("%w: maxAttempt must be at least 1", ErrInvalidConfig)
	}
	if c.backoffMultiplier < 1 {
		return Config{}, fmt.Errorf("%w: backoffMultiplier must be at least 1", ErrInvalidConfig)
	}
	return *c, nil
}

func (c Config) EnableBotNames() bool {
	return c.enableBotNames
}

func (c Config) StrictValidation() bool {
	return c.strictValidation
}

func (c Config) MaxTags() int {
	return c.maxTags
}

func (c Config) StoreBackend() string {
	return c.storeBackend
}

func (c Config) StorePath() string {
	return c.storePath
}

func (c Config) RedisURL() string {
	return c.redisURL
}

func (c Config) DatabaseURL() string {
	return c.databaseURL
}

func (c Config) HashAlgo() hashutil.HashAlgo {
	return c.hashAlgo
}

func (c Config) Jitter() time.Duration {
	return c.jitter
}

func (c Config) RandomSeed() int64 {
	return c.randomSeed
}

func (c Config) MaxAttempt() int {
	return c.maxAttempt
}

func (c Config) BackoffInitialDuration() time.Duration {
	return c.backoffInitialDuration
}

func (c Config) BackoffMultiplier() float64 {
	return c.backoffMultiplier
}

func (c Config) BackoffMaxDuration() time.Duration {
	return c.backoffMaxDuration
}

func (c Config) LogLevel() slog.Level {
	return c.logLevel
}
