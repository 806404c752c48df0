package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "DOCSPACE_"

// parseEnv loads ./.env if it exists (variables already set in the process
// win) and overlays DOCSPACE_* variables. Malformed values panic.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()
	applyEnv(cfg, os.LookupEnv)
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) {
	get := func(name string, dst *string) {
		if v, ok := lookup(envPrefix + name); ok && v != "" {
			*dst = v
		}
	}

	get("SERVER_URL", &cfg.ServerURL)
	get("DB_PATH", &cfg.DBPath)
	get("EXPORT_DIR", &cfg.ExportDir)
	get("LOG_LEVEL", &cfg.LogLevel)
	get("S3_BUCKET", &cfg.S3Bucket)
	get("S3_REGION", &cfg.S3Region)
	get("S3_ENDPOINT", &cfg.S3Endpoint)
	get("S3_ACCESS_KEY", &cfg.S3AccessKey)
	get("S3_SECRET_KEY", &cfg.S3SecretKey)

	if v, ok := lookup(envPrefix + "EPHEMERAL"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			panic(fmt.Errorf("%sEPHEMERAL: %w", envPrefix, err))
		}
		cfg.Ephemeral = b
	}

	if v, ok := lookup(envPrefix + "REQUEST_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(fmt.Errorf("%sREQUEST_TIMEOUT: %w", envPrefix, err))
		}
		cfg.RequestTimeout = d
	}
}
