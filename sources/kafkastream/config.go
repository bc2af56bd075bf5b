package kafkastream

import (
	"fmt"
	"time"

	"github.com/kbukum/seqkit/validation"
)

// Config holds Kafka connection and topic reading configuration.
type Config struct {
	// Brokers is the list of Kafka broker addresses.
	Brokers []string `mapstructure:"brokers" validate:"required"`

	// Topic is the topic to consume from.
	Topic string `mapstructure:"topic" validate:"required"`

	// GroupID is the consumer group identifier. Left empty, New derives
	// an ephemeral group so the source reads the topic from the start.
	GroupID string `mapstructure:"group_id"`

	// DialTimeout is the timeout for establishing new connections (e.g. "10s").
	DialTimeout string `mapstructure:"dial_timeout"`

	// ReadTimeout is the broker poll interval for new records (e.g. "10s").
	ReadTimeout string `mapstructure:"read_timeout"`

	// MaxRetries is the number of attempts per fetch before the stream
	// gives up and exhausts.
	MaxRetries int `mapstructure:"max_retries" validate:"min=1"`

	// MinRetryBackoff is the initial backoff between retries (e.g. "100ms").
	MinRetryBackoff string `mapstructure:"min_retry_backoff"`

	// MaxRetryBackoff is the maximum backoff between retries (e.g. "1s").
	MaxRetryBackoff string `mapstructure:"max_retry_backoff"`
}

// ApplyDefaults sets sensible defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if len(c.Brokers) == 0 {
		c.Brokers = []string{"localhost:9092"}
	}
	if c.DialTimeout == "" {
		c.DialTimeout = "10s"
	}
	if c.ReadTimeout == "" {
		c.ReadTimeout = "10s"
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = 3
	}
	if c.MinRetryBackoff == "" {
		c.MinRetryBackoff = "100ms"
	}
	if c.MaxRetryBackoff == "" {
		c.MaxRetryBackoff = "1s"
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
		{"dial_timeout", c.DialTimeout},
		{"read_timeout", c.ReadTimeout},
		{"min_retry_backoff", c.MinRetryBackoff},
		{"max_retry_backoff", c.MaxRetryBackoff},
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
