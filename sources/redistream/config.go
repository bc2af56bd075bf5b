package redistream

import (
	"fmt"
	"time"

	"github.com/kbukum/seqkit/validation"
)

// Config holds Redis connection and stream reading configuration.
type Config struct {
	// Addr is the Redis server address (host:port).
	Addr string `mapstructure:"addr" validate:"required"`

	// Password is the Redis server password.
	Password string `mapstructure:"password"`

	// DB is the Redis database number.
	DB int `mapstructure:"db"`

	// Stream is the stream key to read.
	Stream string `mapstructure:"stream" validate:"required"`

	// Start is the first entry ID to read ("-" reads from the beginning).
	Start string `mapstructure:"start"`

	// End is the last entry ID to read ("+" reads to the end of the stream).
	End string `mapstructure:"end"`

	// BatchSize is the page size for XRANGE calls.
	BatchSize int `mapstructure:"batch_size" validate:"min=1"`

	// MaxGap is the idle gap between entry timestamps that closes a
	// session (e.g. "30s"). "0" disables sessionization.
	MaxGap string `mapstructure:"max_gap"`

	// MaxRetries is the number of attempts per page read before the
	// stream gives up and exhausts.
	MaxRetries int `mapstructure:"max_retries" validate:"min=1"`

	// MinRetryBackoff is the initial backoff between retries (e.g. "8ms").
	MinRetryBackoff string `mapstructure:"min_retry_backoff"`

	// MaxRetryBackoff is the maximum backoff between retries (e.g. "512ms").
	MaxRetryBackoff string `mapstructure:"max_retry_backoff"`

	// DialTimeout is the timeout for establishing new connections (e.g. "5s").
	DialTimeout string `mapstructure:"dial_timeout"`

	// ReadTimeout is the timeout for socket reads (e.g. "3s").
	ReadTimeout string `mapstructure:"read_timeout"`

	// WriteTimeout is the timeout for socket writes (e.g. "3s").
	WriteTimeout string `mapstructure:"write_timeout"`
}

// ApplyDefaults sets sensible defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Start == "" {
		c.Start = "-"
	}
	if c.End == "" {
		c.End = "+"
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 100
	}
	if c.MaxGap == "" {
		c.MaxGap = "30s"
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = 3
	}
	if c.MinRetryBackoff == "" {
		c.MinRetryBackoff = "8ms"
	}
	if c.MaxRetryBackoff == "" {
		c.MaxRetryBackoff = "512ms"
	}
	if c.DialTimeout == "" {
		c.DialTimeout = "5s"
	}
	if c.ReadTimeout == "" {
		c.ReadTimeout = "3s"
	}
	if c.WriteTimeout == "" {
		c.WriteTimeout = "3s"
	}
}

// Validate checks that required fields are present and parseable.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	for _, d := range []struct {
		name, val string
	}{
		{"max_gap", c.MaxGap},
		{"min_retry_backoff", c.MinRetryBackoff},
		{"max_retry_backoff", c.MaxRetryBackoff},
		{"dial_timeout", c.DialTimeout},
		{"read_timeout", c.ReadTimeout},
		{"write_timeout", c.WriteTimeout},
	} {
		if d.val == "" {
			continue
		}
		if _, err := time.ParseDuration(d.val); err != nil {
			return fmt.Errorf("invalid %s %q: %w", d.name, d.val, err)
		}
	}
	return nil
}
