package config

import (
	"encoding/json"
	"os"

	"github.com/OMEGA178/faktury/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It
// relies on timex.Duration so intervals can be written as "2s"-style
// strings. Only fields present in the file overlay the config.
type JsonConfig struct {
	DatabasePath *string `json:"database_path"`
	LogLevel     *string `json:"log_level"`
	LogPretty    *bool   `json:"log_pretty"`

	SyncDebounce        *timex.Duration `json:"sync_debounce"`
	SyncWriteTimeout    *timex.Duration `json:"sync_write_timeout"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`

	Origin *string `json:"origin"`

	FirebaseProjectID       *string `json:"firebase_project_id"`
	FirebaseCredentialsFile *string `json:"firebase_credentials_file"`

	DistanceEndpoint *string `json:"distance_endpoint"`

	S3Region    *string `json:"s3_region"`
	S3Endpoint  *string `json:"s3_endpoint"`
	S3Bucket    *string `json:"s3_bucket"`
	S3AccessKey *string `json:"s3_access_key"`
	S3SecretKey *string `json:"s3_secret_key"`
}

func parseJson(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return err
	}

	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.LogLevel, jc.LogLevel)
	if jc.LogPretty != nil {
		cfg.LogPretty = *jc.LogPretty
	}
	if jc.SyncDebounce != nil {
		cfg.SyncDebounce = jc.SyncDebounce.Duration
	}
	if jc.SyncWriteTimeout != nil {
		cfg.SyncWriteTimeout = jc.SyncWriteTimeout.Duration
	}
	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	setString(&cfg.Origin, jc.Origin)
	setString(&cfg.FirebaseProjectID, jc.FirebaseProjectID)
	setString(&cfg.FirebaseCredentialsFile, jc.FirebaseCredentialsFile)
	setString(&cfg.DistanceEndpoint, jc.DistanceEndpoint)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3Endpoint, jc.S3Endpoint)
	setString(&cfg.S3Bucket, jc.S3Bucket)
	setString(&cfg.S3AccessKey, jc.S3AccessKey)
	setString(&cfg.S3SecretKey, jc.S3SecretKey)
	return nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
