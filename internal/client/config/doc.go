// Package config loads runtime configuration for the docspace CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment: DOCSPACE_* variables, with ./.env loaded through godotenv.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the service API
//	-d string   SQLite database path
//	-t int      request timeout (seconds)
//	-o string   export directory
//	-l string   log level
//	-ephemeral  in-memory credential only
//
// # JSON schema
//
//	{
//	  "server_url": "http://127.0.0.1:5000/api",
//	  "db_path": "docspace.db",
//	  "request_timeout": "30s",
//	  "export_dir": "exports",
//	  "log_level": "info",
//	  "s3_bucket": "exports",
//	  "s3_endpoint": "http://127.0.0.1:9000"
//	}
//
// # Environment
//
// DOCSPACE_SERVER_URL, DOCSPACE_DB_PATH, DOCSPACE_EPHEMERAL,
// DOCSPACE_REQUEST_TIMEOUT (a duration such as "45s"), DOCSPACE_EXPORT_DIR,
// DOCSPACE_LOG_LEVEL, DOCSPACE_S3_BUCKET, DOCSPACE_S3_REGION,
// DOCSPACE_S3_ENDPOINT, DOCSPACE_S3_ACCESS_KEY, DOCSPACE_S3_SECRET_KEY.
//
// Invalid values in any source panic.
package config
