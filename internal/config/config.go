// Package config provides centralized configuration for the csvmap CLI
// and validation server. Settings come from environment variables with
// sensible defaults and are validated on startup to fail fast on
// misconfiguration.
package config

import "time"

// Config holds all tool configuration.
type Config struct {
	Server   ServerConfig
	Codec    CodecConfig
	Database DatabaseConfig
	Logging  LoggingConfig
}

// ServerConfig holds settings for the validation HTTP server.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"CSVMAP_SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"CSVMAP_SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading a request body (default: 15s)
	ReadTimeout time.Duration `env:"CSVMAP_SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing a response (default: 30s)
	WriteTimeout time.Duration `env:"CSVMAP_SERVER_WRITE_TIMEOUT" default:"30s"`

	// ShutdownTimeout is how long graceful shutdown may take (default: 30s)
	ShutdownTimeout time.Duration `env:"CSVMAP_SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// MaxBodySize is the maximum accepted upload size in bytes (default: 100MB)
	MaxBodySize int64 `env:"CSVMAP_SERVER_MAX_BODY_SIZE" default:"104857600"`
}

// CodecConfig holds defaults for codecs built by the CLI and server.
type CodecConfig struct {
	// Separator is the field separator (default: ",")
	Separator string `env:"CSVMAP_SEPARATOR" default:","`

	// RowNumberTitle is the title of the synthetic row-number column (default: RowNumber)
	RowNumberTitle string `env:"CSVMAP_ROW_NUMBER_TITLE" default:"RowNumber"`

	// EmitEOF appends the EOF sentinel row when encoding (default: false)
	EmitEOF bool `env:"CSVMAP_EMIT_EOF" default:"false"`

	// ForceSequential disables concurrent line decoding (default: false)
	ForceSequential bool `env:"CSVMAP_FORCE_SEQUENTIAL" default:"false"`

	// Workers caps concurrent line decodes; 0 means GOMAXPROCS (default: 0)
	Workers int `env:"CSVMAP_WORKERS" default:"0"`
}

// DatabaseConfig holds Postgres settings for the load command.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string. Only required by `csvmap load`.
	// Supports both DATABASE_URL and DB_URL env vars for compatibility.
	URL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	// MaxConns is the maximum number of pooled connections (default: 10)
	MaxConns int `env:"DB_MAX_CONNS" default:"10"`

	// BatchSize is rows per progress batch during loads (default: 1000)
	BatchSize int `env:"DB_BATCH_SIZE" default:"1000"`

	// Timeout is the maximum duration for a single load (default: 10m)
	Timeout time.Duration `env:"DB_LOAD_TIMEOUT" default:"10m"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	if c.Host == "" {
		return ":" + itoa(c.Port)
	}
	return c.Host + ":" + itoa(c.Port)
}

// itoa converts an int to string without importing strconv in this file.
func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	var b [20]byte
	n := len(b)
	neg := i < 0
	if neg {
		i = -i
	}
	for i > 0 {
		n--
		b[n] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		n--
		b[n] = '-'
	}
	return string(b[n:])
}
