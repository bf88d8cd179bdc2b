// Package config loads application settings from environment variables.
// Every setting has a default, so an empty environment is a valid one.
package config

import (
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Upload  UploadConfig
	Export  ExportConfig
	Logging LoggingConfig
}

// ServerConfig holds HTTP server settings for the serve command.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// UploadConfig limits what the server accepts.
type UploadConfig struct {
	// MaxFileSize caps the whole multipart body in bytes (default: 32MiB)
	MaxFileSize int64 `env:"UPLOAD_MAX_FILE_SIZE" default:"33554432"`
}

// ExportConfig holds export defaults shared by the TUI and the server.
type ExportConfig struct {
	// DefaultName is the export base name offered to the user (default: slimmed)
	DefaultName string `env:"EXPORT_DEFAULT_NAME" default:"slimmed"`

	// DefaultFormat is CSV or Excel (default: CSV)
	DefaultFormat string `env:"EXPORT_DEFAULT_FORMAT" default:"CSV"`

	// Dir is where the TUI saves exports (default: current directory)
	Dir string `env:"EXPORT_DIR" default:"."`

	// PreviewRows is how many rows previews show (default: 10)
	PreviewRows int `env:"PREVIEW_ROWS" default:"10"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`

	// File receives TUI logs; empty discards them
	File string `env:"LOG_FILE"`

	// SeqURL enables shipping logs to a Seq server when set
	SeqURL string `env:"SEQ_URL"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
