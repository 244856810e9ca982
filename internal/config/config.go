// Package config assembles the runtime settings. Sources are layered:
// built-in defaults, then an optional JSON file, then environment
// variables (a .env file is honoured). Later sources win.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/OMEGA178/faktury/internal/flagx"
)

const envPrefix = "faktury"

// Config holds the runtime settings.
type Config struct {
	// DatabasePath is the sqlite file backing the local store.
	DatabasePath string `envconfig:"DATABASE_PATH"`

	LogLevel  string `envconfig:"LOG_LEVEL"`
	LogPretty bool   `envconfig:"LOG_PRETTY"`

	// SyncDebounce is the quiet period between a local mutation and
	// the outbound write. SyncWriteTimeout bounds one outbound write.
	// OnlineCheckInterval is how often the remote is pinged for
	// connectivity.
	SyncDebounce        time.Duration `envconfig:"SYNC_DEBOUNCE"`
	SyncWriteTimeout    time.Duration `envconfig:"SYNC_WRITE_TIMEOUT"`
	OnlineCheckInterval time.Duration `envconfig:"ONLINE_CHECK_INTERVAL"`

	// Origin tags this machine's writes in the remote sync metadata;
	// empty falls back to the hostname.
	Origin string `envconfig:"ORIGIN"`

	// Firebase settings; sync stays local-only when the project id is
	// empty.
	FirebaseProjectID       string `envconfig:"FIREBASE_PROJECT_ID"`
	FirebaseCredentialsFile string `envconfig:"FIREBASE_CREDENTIALS_FILE"`

	// DistanceEndpoint is the routing service used to estimate trip
	// distances; empty disables estimation.
	DistanceEndpoint string `envconfig:"DISTANCE_ENDPOINT"`

	// S3-compatible image storage; empty endpoint disables it.
	S3Region    string `envconfig:"S3_REGION"`
	S3Endpoint  string `envconfig:"S3_ENDPOINT"`
	S3Bucket    string `envconfig:"S3_BUCKET"`
	S3AccessKey string `envconfig:"S3_ACCESS_KEY"`
	S3SecretKey string `envconfig:"S3_SECRET_KEY"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "faktury.db"
	c.LogLevel = "info"
	c.SyncDebounce = 2 * time.Second
	c.SyncWriteTimeout = 30 * time.Second
	c.OnlineCheckInterval = 30 * time.Second
	c.S3Region = "eu-central-1"
	c.S3Bucket = "faktury-images"
}

// Load constructs a Config. jsonPath points at an optional JSON file;
// when empty the -c/-config command-line flags are consulted.
func Load(jsonPath string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if jsonPath == "" {
		jsonPath = flagx.JsonConfigFlags()
	}
	if err := parseJson(cfg, jsonPath); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}

	// a missing .env file is fine
	_ = godotenv.Load()

	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	return cfg, nil
}
