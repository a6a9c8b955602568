// Package config defines the service configuration and how it is loaded.
//
// Values are layered, lowest precedence first: the defaults from New, an
// optional YAML file, and MORALREPORT_* environment variables.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/benjaminschreck/moralreport/pkg/logging"
	"github.com/benjaminschreck/moralreport/pkg/report"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error, off.
	LogLevel string `koanf:"log_level"`

	// LogFormat is "text" or "json".
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8000".
	Addr string `koanf:"addr"`

	// CORSOrigins lists the origins allowed to call the API; "*" allows any.
	CORSOrigins []string `koanf:"cors_origins"`

	// MaxBodyBytes caps the size of an export request body.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`

	ReadHeaderTimeout time.Duration `koanf:"read_header_timeout"`
	ShutdownTimeout   time.Duration `koanf:"shutdown_timeout"`

	// SpoolDir holds the temporary files documents are served from. Empty
	// means the OS temp directory.
	SpoolDir string `koanf:"spool_dir"`

	// Timezone names the IANA zone used for the report date and filename.
	// Empty means the process local zone.
	Timezone string `koanf:"timezone"`

	// AspectLabelCase is "capitalize" or "title".
	AspectLabelCase string `koanf:"aspect_label_case"`
}

// New returns a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         string(logging.FormatText),
		Addr:              ":8000",
		CORSOrigins:       []string{"*"},
		MaxBodyBytes:      1 << 20,
		ReadHeaderTimeout: 10 * time.Second,
		ShutdownTimeout:   15 * time.Second,
		AspectLabelCase:   report.LabelCapitalize.String(),
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	switch logging.Format(c.LogFormat) {
	case logging.FormatText, logging.FormatJSON:
	default:
		return fmt.Errorf("%w: invalid log format %q", ErrInvalidConfig, c.LogFormat)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("%w: max_body_bytes must be positive", ErrInvalidConfig)
	}
	if c.ReadHeaderTimeout < 0 {
		return fmt.Errorf("%w: read_header_timeout cannot be negative", ErrInvalidConfig)
	}
	if c.ShutdownTimeout < 0 {
		return fmt.Errorf("%w: shutdown_timeout cannot be negative", ErrInvalidConfig)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := report.ParseLabelCase(c.AspectLabelCase); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.SpoolDir != "" {
		info, err := os.Stat(c.SpoolDir)
		if err != nil {
			return fmt.Errorf("%w: spool_dir: %v", ErrInvalidConfig, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("%w: spool_dir %s is not a directory", ErrInvalidConfig, c.SpoolDir)
		}
	}
	return nil
}

// Location resolves Timezone
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone: %w", err)
	}
	return loc, nil
}

// LabelCase resolves AspectLabelCase, falling back to capitalize
func (c *Config) LabelCase() report.LabelCase {
	lc, _ := report.ParseLabelCase(c.AspectLabelCase)
	return lc
}

// Logger builds the logger described by LogLevel and LogFormat
func (c *Config) Logger() *logging.Logger {
	level, _ := logging.ParseLevel(c.LogLevel)
	return logging.New(os.Stderr, level, logging.Format(c.LogFormat))
}
