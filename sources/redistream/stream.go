package redistream

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/kbukum/seqkit/frayed"
	"github.com/kbukum/seqkit/logger"
	"github.com/kbukum/seqkit/resilience"
	"github.com/kbukum/seqkit/util"
)

// Source reads a bounded range of a Redis stream and sessionizes it by
// entry timestamp: whenever the gap between consecutive entry IDs
// exceeds MaxGap, the source emits a subsequence boundary. The range is
// paged with XRANGE, so Next may block on the network; the context
// given to New bounds those reads.
type Source struct {
	rdb *goredis.Client
	ctx context.Context
	log *logger.Logger

	stream string
	from   string
	end    string
	batch  int64
	maxGap time.Duration
	retry  resilience.RetryConfig

	buf        []goredis.XMessage
	pos        int
	lastMillis int64
	inSession  bool
	done       bool
	err        error
	ownsClient bool
}

// New connects to Redis and prepares a Source for cfg.Stream. The
// returned Source owns its client; Close releases it.
func New(ctx context.Context, cfg Config, log *logger.Logger) (*Source, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("redistream config: %w", err)
	}

	dialTimeout, _ := time.ParseDuration(cfg.DialTimeout)
	readTimeout, _ := time.ParseDuration(cfg.ReadTimeout)
	writeTimeout, _ := time.ParseDuration(cfg.WriteTimeout)

	// Page reads carry their own retry policy, so the client's
	// protocol-level retries are disabled.
	rdb := goredis.NewClient(&goredis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   -1,
		DialTimeout:  dialTimeout,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	})

	src := NewWithClient(ctx, rdb, cfg, log)
	src.ownsClient = true

	fields := logger.Fields(
		logger.FieldStream, cfg.Stream,
		"addr", cfg.Addr,
		"db", cfg.DB,
	)
	if cfg.Password != "" {
		fields["auth"] = util.MaskSecret(cfg.Password, 2)
	}
	src.log.Info("redis stream source ready", fields)

	return src, nil
}

// NewWithClient prepares a Source on an existing client. The caller
// keeps ownership of the client.
func NewWithClient(ctx context.Context, rdb *goredis.Client, cfg Config, log *logger.Logger) *Source {
	cfg.ApplyDefaults()
	if log == nil {
		log = logger.GetGlobalLogger()
	}

	maxGap, _ := time.ParseDuration(cfg.MaxGap)
	minBackoff, _ := time.ParseDuration(cfg.MinRetryBackoff)
	maxBackoff, _ := time.ParseDuration(cfg.MaxRetryBackoff)

	return &Source{
		rdb:    rdb,
		ctx:    ctx,
		log:    log,
		stream: cfg.Stream,
		from:   cfg.Start,
		end:    cfg.End,
		batch:  int64(cfg.BatchSize),
		maxGap: maxGap,
		retry: resilience.RetryConfig{
			MaxAttempts:    cfg.MaxRetries,
			InitialBackoff: minBackoff,
			MaxBackoff:     maxBackoff,
			BackoffFactor:  2.0,
			OnRetry: func(attempt int, err error, backoff time.Duration) {
				log.Warn("stream read failed, retrying", logger.Fields(
					logger.FieldStream, cfg.Stream,
					logger.FieldAttempt, attempt,
					logger.FieldError, err.Error(),
				))
			},
		},
	}
}

// Next returns the next stream entry. A session gap reports false once;
// the end of the range (or a read failure) reports false forever.
func (s *Source) Next() (goredis.XMessage, bool) {
	var zero goredis.XMessage
	if s.done {
		return zero, false
	}

	if s.pos >= len(s.buf) && !s.fetch() {
		s.finish()
		return zero, false
	}

	msg := s.buf[s.pos]
	millis, err := entryMillis(msg.ID)
	if err != nil {
		s.err = err
		s.finish()
		return zero, false
	}

	if s.inSession && s.maxGap > 0 && millis-s.lastMillis > s.maxGap.Milliseconds() {
		// The entry stays buffered and opens the next session.
		s.inSession = false
		return zero, false
	}

	s.pos++
	s.lastMillis = millis
	s.inSession = true
	return msg, true
}

// fetch pages the next batch into the buffer, reporting false once the
// range is drained or the read has failed past its retry budget.
func (s *Source) fetch() bool {
	page, err := resilience.Retry(s.ctx, s.retry, func() ([]goredis.XMessage, error) {
		return s.rdb.XRangeN(s.ctx, s.stream, s.from, s.end, s.batch).Result()
	})
	if err != nil {
		s.err = fmt.Errorf("reading stream %s: %w", s.stream, err)
		s.log.Error("redis stream source failed", logger.ErrorFields("xrange", err))
		return false
	}
	if len(page) == 0 {
		return false
	}

	s.buf = page
	s.pos = 0
	s.from = nextEntryID(page[len(page)-1].ID)
	return true
}

func (s *Source) finish() {
	s.done = true
	s.buf = nil
	if s.ownsClient && s.rdb != nil {
		if cerr := s.rdb.Close(); cerr != nil && s.err == nil {
			s.err = cerr
		}
		s.rdb = nil
	}
}

// Close releases the client (when owned) without draining the stream.
// Next reports exhaustion afterwards.
func (s *Source) Close() error {
	if s.done {
		return nil
	}
	s.done = true
	s.buf = nil
	if s.ownsClient && s.rdb != nil {
		err := s.rdb.Close()
		s.rdb = nil
		return err
	}
	return nil
}

// Err reports a read failure once the stream is exhausted. A failed
// source exhausts early rather than emitting a partial session.
func (s *Source) Err() error { return s.err }

// Frayed returns the source as a frayed stream.
func (s *Source) Frayed() frayed.Frayed[goredis.XMessage] {
	return frayed.Mark[goredis.XMessage](s)
}

// entryMillis extracts the millisecond timestamp from a stream entry ID
// of the form "millis-seq".
func entryMillis(id string) (int64, error) {
	millisStr, _, _ := strings.Cut(id, "-")
	millis, err := strconv.ParseInt(millisStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed entry ID %q: %w", id, err)
	}
	return millis, nil
}

// nextEntryID returns the smallest ID strictly greater than id, used as
// the inclusive start of the next XRANGE page.
func nextEntryID(id string) string {
	millisStr, seqStr, ok := strings.Cut(id, "-")
	if !ok {
		return id
	}
	seq, err := strconv.ParseUint(seqStr, 10, 64)
	if err != nil {
		return id
	}
	if seq == math.MaxUint64 {
		millis, _ := strconv.ParseUint(millisStr, 10, 64)
		return fmt.Sprintf("%d-0", millis+1)
	}
	return fmt.Sprintf("%s-%d", millisStr, seq+1)
}
