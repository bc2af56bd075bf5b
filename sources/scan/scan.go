package scan

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/kbukum/seqkit/frayed"
	"github.com/kbukum/seqkit/logger"
	"github.com/kbukum/seqkit/util"
	"github.com/kbukum/seqkit/validation"
)

const defaultMaxRecordSize = 1024 * 1024

// Config controls how an input is framed into records.
type Config struct {
	// Separator is the exact line that ends a subsequence. Empty means
	// a blank line.
	Separator string `yaml:"separator" mapstructure:"separator"`
	// MaxRecordSize caps a single record, e.g. "64KB" or "1MB".
	MaxRecordSize string `yaml:"max_record_size" mapstructure:"max_record_size" validate:"required"`
	// TrimSpace strips surrounding whitespace before the separator
	// comparison, so an indented separator still splits.
	TrimSpace bool `yaml:"trim_space" mapstructure:"trim_space"`
}

// ApplyDefaults fills in defaults for unset fields.
func (c *Config) ApplyDefaults() {
	if c.MaxRecordSize == "" {
		c.MaxRecordSize = "1MB"
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	if util.ParseSize(c.MaxRecordSize, -1) <= 0 {
		return fmt.Errorf("invalid max_record_size %q", c.MaxRecordSize)
	}
	return nil
}

// Source frames lines read from an input into a frayed stream of
// records. Separator lines become subsequence boundaries. Runs of
// separators collapse into one boundary, so the stream never signals
// exhaustion before the input actually ends.
type Source struct {
	sc   *bufio.Scanner
	sep  string
	trim bool
	log  *logger.Logger

	emitted bool // a record was delivered since the last boundary
	done    bool
	err     error
}

// New creates a Source reading from r.
func New(r io.Reader, cfg Config, log *logger.Logger) (*Source, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("scan config: %w", err)
	}
	if log == nil {
		log = logger.GetGlobalLogger()
	}

	max := int(util.ParseSize(cfg.MaxRecordSize, defaultMaxRecordSize))
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, min(64*1024, max)), max)

	return &Source{sc: sc, sep: cfg.Separator, trim: cfg.TrimSpace, log: log}, nil
}

// Next returns the next record. A separator line reports false once;
// the end of the input reports false forever.
func (s *Source) Next() (string, bool) {
	if s.done {
		return "", false
	}

	for s.sc.Scan() {
		line := s.sc.Text()
		if s.isSeparator(line) {
			if s.emitted {
				s.emitted = false
				return "", false
			}
			continue
		}
		s.emitted = true
		return line, true
	}

	s.done = true
	if err := s.sc.Err(); err != nil {
		s.err = err
		s.log.Error("scan source failed", logger.ErrorFields("scan", err))
	}
	return "", false
}

func (s *Source) isSeparator(line string) bool {
	if s.trim {
		line = strings.TrimSpace(line)
	}
	return line == s.sep
}

// Err reports a read failure once the stream is exhausted, like
// bufio.Scanner. A failed source exhausts early rather than emitting
// partial records.
func (s *Source) Err() error { return s.err }

// Frayed returns the source as a frayed stream.
func (s *Source) Frayed() frayed.Frayed[string] {
	return frayed.Mark[string](s)
}
