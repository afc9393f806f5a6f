package config

import "time"

// Config holds all application configuration.
type Config struct {
	Database      Database      `mapstructure:"database"`
	Server        Server        `mapstructure:"server"`
	Credits       Credits       `mapstructure:"credits"`
	Elasticsearch Elasticsearch `mapstructure:"elasticsearch"`
	Storage       Storage       `mapstructure:"storage"`
	MCP           MCP           `mapstructure:"mcp"`
}

// Database holds SQLite configuration.
type Database struct {
	Path string `mapstructure:"path"`
}

// Server holds HTTP server configuration.
type Server struct {
	Addr           string        `mapstructure:"addr"`
	MaxUploadBytes int64         `mapstructure:"max_upload_bytes"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
}

// Credits holds credit bookkeeping configuration.
type Credits struct {
	DefaultBalance int           `mapstructure:"default_balance"`
	ResetInterval  time.Duration `mapstructure:"reset_interval"`
}

// Elasticsearch holds ES connection configuration.
type Elasticsearch struct {
	Enabled   bool     `mapstructure:"enabled"`
	Addresses []string `mapstructure:"addresses"`
	Index     string   `mapstructure:"index"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
}

// Storage holds S3/MinIO storage configuration.
type Storage struct {
	Enabled         bool   `mapstructure:"enabled"`
	Endpoint        string `mapstructure:"endpoint"`
	Bucket          string `mapstructure:"bucket"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// MCP holds MCP server configuration.
type MCP struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Database: Database{
			Path: "./data/docscan.db",
		},
		Server: Server{
			Addr:           ":3000",
			MaxUploadBytes: 5 << 20,
			ReadTimeout:    30 * time.Second,
			WriteTimeout:   60 * time.Second,
		},
		Credits: Credits{
			DefaultBalance: 20,
			ResetInterval:  24 * time.Hour,
		},
		Elasticsearch: Elasticsearch{
			Enabled:   false, // Disabled by default, requires a running cluster
			Addresses: []string{"http://localhost:9200"},
			Index:     "docscan-documents",
		},
		Storage: Storage{
			Enabled:         false, // Disabled by default, requires MinIO
			Endpoint:        "localhost:9002",
			Bucket:          "docscan",
			AccessKeyID:     "minioadmin",
			SecretAccessKey: "minioadmin",
			UseSSL:          false,
		},
		MCP: MCP{
			Name:    "docscan",
			Version: "1.0.0",
		},
	}
}
