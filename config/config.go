package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"partyboard/database"
)

// Config holds all application configuration
type Config struct {
	// Database configuration
	DatabaseURL  string
	DatabaseName string

	// NATS configuration
	NATSServers string // NATS server addresses (comma-separated)

	// Stats provider configuration
	TrackerAPIURL string // Base URL of the third-party stats tracker API
	TrackerAPIKey string

	// Push delivery configuration
	PushAPIURL       string // Base URL of the push delivery service
	PushAPIKey       string
	PushMaxBatchSize int // Largest batch the push provider accepts

	// Stats cache freshness windows
	LoLStatsTTL      time.Duration
	ValorantStatsTTL time.Duration

	// Environment
	Environment string // "development" or "production"
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	// If instance is already set (e.g., by tests), return it
	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			// In test environment, use a default test config instead of panicking
			if os.Getenv("GO_TEST") == "1" || os.Getenv("ENVIRONMENT") == "test" {
				instance = NewTestConfig()
			} else {
				panic(fmt.Sprintf("failed to load config: %v", err))
			}
		}
	})
	return instance
}

// GetDatabaseURL constructs the full database URL by combining base URL and database name
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		// Database
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DatabaseName: os.Getenv("DATABASE_NAME"),

		// NATS
		NATSServers: getEnvWithDefault("NATS_SERVERS", "nats://nats:4222"),

		// Stats provider
		TrackerAPIURL: getEnvWithDefault("TRACKER_API_URL", "https://api.tracker.partyboard.gg"),
		TrackerAPIKey: os.Getenv("TRACKER_API_KEY"),

		// Push delivery
		PushAPIURL:       getEnvWithDefault("PUSH_API_URL", "https://push.partyboard.gg"),
		PushAPIKey:       os.Getenv("PUSH_API_KEY"),
		PushMaxBatchSize: 500,

		// Cache freshness defaults
		LoLStatsTTL:      10 * time.Minute,
		ValorantStatsTTL: 15 * time.Minute,

		// Environment
		Environment: os.Getenv("ENVIRONMENT"),
	}

	// Override defaults if environment variables are set
	if batchSize := os.Getenv("PUSH_MAX_BATCH_SIZE"); batchSize != "" {
		if parsed, err := strconv.Atoi(batchSize); err == nil && parsed > 0 {
			config.PushMaxBatchSize = parsed
		}
	}
	if ttl := os.Getenv("LOL_STATS_TTL"); ttl != "" {
		if parsed, err := time.ParseDuration(ttl); err == nil {
			config.LoLStatsTTL = parsed
		}
	}
	if ttl := os.Getenv("VALORANT_STATS_TTL"); ttl != "" {
		if parsed, err := time.ParseDuration(ttl); err == nil {
			config.ValorantStatsTTL = parsed
		}
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
		if config.TrackerAPIKey == "" {
			return nil, fmt.Errorf("TRACKER_API_KEY is required")
		}
	}

	return config, nil
}

// getEnvWithDefault returns the environment variable value or a default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
// This should only be called from test files
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
// This should only be called from test files
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		Environment:      "test",
		PushMaxBatchSize: 10,
		LoLStatsTTL:      10 * time.Minute,
		ValorantStatsTTL: 15 * time.Minute,
	}
}
