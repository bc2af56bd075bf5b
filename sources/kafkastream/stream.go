package kafkastream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/kbukum/seqkit/frayed"
	"github.com/kbukum/seqkit/logger"
	"github.com/kbukum/seqkit/resilience"
)

// Fetcher pulls raw records from a topic. *kafkago.Reader implements it.
type Fetcher interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
}

// Source reads a topic where the producer framed its subsequences on the
// wire: a record with an empty value is a boundary marker, and two
// consecutive markers end the stream. Next blocks until a record
// arrives, the context given to New ends, or the reader is closed.
type Source struct {
	fetcher Fetcher
	ctx     context.Context
	log     *logger.Logger

	topic string
	group string
	retry resilience.RetryConfig

	prevMarker bool
	done       bool
	err        error
	closer     io.Closer
}

// New connects a reader to cfg.Topic and prepares a Source over it. The
// returned Source owns the reader; Close releases it.
func New(ctx context.Context, cfg Config, log *logger.Logger) (*Source, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("kafkastream config: %w", err)
	}
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	clog := log.WithComponent("kafkastream")

	groupID := cfg.GroupID
	if groupID == "" {
		// An ephemeral group keeps replays independent of any existing
		// consumer group's committed offsets.
		groupID = "seqkit-" + uuid.NewString()
	}

	dialTimeout, _ := time.ParseDuration(cfg.DialTimeout)
	readTimeout, _ := time.ParseDuration(cfg.ReadTimeout)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers: cfg.Brokers,
		Topic:   cfg.Topic,
		GroupID: groupID,
		Dialer: &kafkago.Dialer{
			Timeout:   dialTimeout,
			DualStack: true,
		},
		StartOffset: kafkago.FirstOffset,
		MinBytes:    1,
		MaxBytes:    10e6,
		MaxWait:     readTimeout,
		ErrorLogger: kafkago.LoggerFunc(func(msg string, args ...interface{}) {
			clog.Error("reader: "+msg, logger.Fields(
				logger.FieldTopic, cfg.Topic,
				logger.FieldGroup, groupID,
				"args", fmt.Sprintf("%v", args),
			))
		}),
	})

	src := NewWithFetcher(ctx, reader, cfg, clog)
	src.group = groupID
	src.closer = reader

	clog.Info("kafka stream source ready", logger.Fields(
		logger.FieldTopic, cfg.Topic,
		logger.FieldGroup, groupID,
		"brokers", cfg.Brokers,
	))

	return src, nil
}

// NewWithFetcher prepares a Source on an existing fetcher, typically for
// tests. The caller keeps ownership of whatever backs the fetcher.
func NewWithFetcher(ctx context.Context, f Fetcher, cfg Config, log *logger.Logger) *Source {
	cfg.ApplyDefaults()
	if log == nil {
		log = logger.GetGlobalLogger()
	}

	minBackoff, _ := time.ParseDuration(cfg.MinRetryBackoff)
	maxBackoff, _ := time.ParseDuration(cfg.MaxRetryBackoff)

	return &Source{
		fetcher: f,
		ctx:     ctx,
		log:     log,
		topic:   cfg.Topic,
		group:   cfg.GroupID,
		retry: resilience.RetryConfig{
			MaxAttempts:    cfg.MaxRetries,
			InitialBackoff: minBackoff,
			MaxBackoff:     maxBackoff,
			BackoffFactor:  2.0,
			RetryIf: func(err error) bool {
				// A closed reader reports io.EOF; that is the end of
				// the stream, not a transient fault.
				return resilience.DefaultRetryIf(err) && !errors.Is(err, io.EOF)
			},
			OnRetry: func(attempt int, err error, backoff time.Duration) {
				log.Warn("fetch failed, retrying", logger.Fields(
					logger.FieldTopic, cfg.Topic,
					logger.FieldAttempt, attempt,
					logger.FieldError, err.Error(),
				))
			},
		},
	}
}

// Next returns the next record. A boundary marker reports false once;
// a second consecutive marker, a closed reader, or a fetch failure
// reports false forever.
func (s *Source) Next() (kafkago.Message, bool) {
	var zero kafkago.Message
	if s.done {
		return zero, false
	}

	msg, err := resilience.Retry(s.ctx, s.retry, func() (kafkago.Message, error) {
		return s.fetcher.FetchMessage(s.ctx)
	})
	if err != nil {
		if !errors.Is(err, io.EOF) {
			s.err = fmt.Errorf("reading topic %s: %w", s.topic, err)
			s.log.Error("kafka stream source failed", logger.ErrorFields("fetch", err))
		}
		s.finish()
		return zero, false
	}

	if len(msg.Value) == 0 {
		if s.prevMarker {
			s.finish()
			return zero, false
		}
		s.prevMarker = true
		return zero, false
	}

	s.prevMarker = false
	return msg, true
}

func (s *Source) finish() {
	s.done = true
	if s.closer != nil {
		if cerr := s.closer.Close(); cerr != nil && s.err == nil {
			s.err = cerr
		}
		s.closer = nil
	}
}

// Close releases the reader (when owned) without draining the topic.
// Next reports exhaustion afterwards.
func (s *Source) Close() error {
	if s.done {
		return nil
	}
	s.done = true
	if s.closer != nil {
		err := s.closer.Close()
		s.closer = nil
		return err
	}
	return nil
}

// Err reports a fetch failure once the stream is exhausted. A failed
// source exhausts early; cancellation of the construction context
// surfaces here as well.
func (s *Source) Err() error { return s.err }

// GroupID returns the consumer group the source reads under, including
// a derived ephemeral group.
func (s *Source) GroupID() string { return s.group }

// Frayed returns the source as a frayed stream.
func (s *Source) Frayed() frayed.Frayed[kafkago.Message] {
	return frayed.Mark[kafkago.Message](s)
}
