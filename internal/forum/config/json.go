package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/forumdesign/internal/flagx"
	"github.com/dmitrijs2005/forumdesign/internal/timex"
)

// JsonConfig is the on-disk form of Config. Pointer fields distinguish an
// absent key from a zero value; absent keys keep the value already in Config.
// QueryTimeout accepts "5s" style strings or integer nanoseconds.
type JsonConfig struct {
	DatabaseDSN    *string         `json:"database_dsn"`
	MigrateOnStart *bool           `json:"migrate_on_start"`
	QueryTimeout   *timex.Duration `json:"query_timeout"`
	LogLevel       *string         `json:"log_level"`
	S3RootUser     *string         `json:"s3_root_user"`
	S3RootPassword *string         `json:"s3_root_password"`
	S3Bucket       *string         `json:"s3_bucket"`
	S3Region       *string         `json:"s3_region"`
	S3BaseEndpoint *string         `json:"s3_base_endpoint"`
}

// parseJson overlays the file named by -c or -config onto config. Without
// either flag nothing is loaded. An unreadable file or invalid JSON panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.DatabaseDSN, c.DatabaseDSN)
	if c.MigrateOnStart != nil {
		config.MigrateOnStart = *c.MigrateOnStart
	}
	if c.QueryTimeout != nil {
		config.QueryTimeout = c.QueryTimeout.Duration
	}
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
