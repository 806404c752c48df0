package config

import "time"

// Config holds runtime settings for the docspace CLI.
//
// Fields:
//   - ServerURL: base URL of the document service API, e.g. http://127.0.0.1:5000/api.
//   - DBPath: SQLite file holding the stored credential.
//   - Ephemeral: keep the credential in memory only; DBPath is not opened.
//   - RequestTimeout: upper bound for a single HTTP request.
//   - ExportDir: directory that receives local text exports.
//   - LogLevel: debug, info, warn or error.
//   - S3*: optional object storage target for "export <id> s3".
type Config struct {
	ServerURL      string
	DBPath         string
	Ephemeral      bool
	RequestTimeout time.Duration
	ExportDir      string
	LogLevel       string

	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:5000/api"
	c.DBPath = "docspace.db"
	c.Ephemeral = false
	c.RequestTimeout = 30 * time.Second
	c.ExportDir = "exports"
	c.LogLevel = "warn"
	c.S3Region = "us-east-1"
}

// S3Enabled reports whether a bucket is configured.
func (c *Config) S3Enabled() bool { return c.S3Bucket != "" }

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment (including a .env file) and
// command-line flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
