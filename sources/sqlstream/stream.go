package sqlstream

import (
	"context"
	"database/sql"
	"fmt"

	"gorm.io/gorm"

	"github.com/kbukum/seqkit/frayed"
	"github.com/kbukum/seqkit/logger"
)

// RowFunc scans the current row into a value.
type RowFunc[T any] func(rows *sql.Rows) (T, error)

// KeyFunc extracts the grouping key from a value.
type KeyFunc[T any] func(v T) string

// Source streams query rows as a frayed stream, emitting a subsequence
// boundary whenever the grouping key changes. The query must be ordered
// by that key or groups will fragment.
//
// A Source holds one buffered row of lookahead: the row that revealed a
// key change is delivered as the first element of the next subsequence.
type Source[T any] struct {
	rows  *sql.Rows
	rowFn RowFunc[T]
	keyFn KeyFunc[T]
	log   *logger.Logger

	next    T
	nextKey string
	hasNext bool
	curKey  string
	inGroup bool
	done    bool
	err     error
}

// New wraps an already-executed query. Most callers use Query instead.
func New[T any](rows *sql.Rows, rowFn RowFunc[T], keyFn KeyFunc[T], log *logger.Logger) *Source[T] {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Source[T]{rows: rows, rowFn: rowFn, keyFn: keyFn, log: log}
}

// Query executes query on db and streams the result grouped by keyFn.
func Query[T any](ctx context.Context, db *gorm.DB, query string, rowFn RowFunc[T], keyFn KeyFunc[T], log *logger.Logger, args ...interface{}) (*Source[T], error) {
	rows, err := db.WithContext(ctx).Raw(query, args...).Rows()
	if err != nil {
		return nil, fmt.Errorf("executing query: %w", err)
	}
	return New(rows, rowFn, keyFn, log), nil
}

// Next returns the next row value. A key change reports false once; the
// end of the result set (or a scan failure) reports false forever.
func (s *Source[T]) Next() (T, bool) {
	var zero T
	if s.done {
		return zero, false
	}

	if !s.hasNext && !s.advance() {
		s.finish()
		return zero, false
	}

	if s.inGroup && s.nextKey != s.curKey {
		s.inGroup = false
		return zero, false
	}

	v := s.next
	s.curKey = s.nextKey
	s.inGroup = true
	s.hasNext = false
	s.next = zero
	return v, true
}

// advance buffers the next row, reporting false at the end of the
// result set or on error.
func (s *Source[T]) advance() bool {
	if s.rows == nil {
		return false
	}
	if !s.rows.Next() {
		if err := s.rows.Err(); err != nil {
			s.err = fmt.Errorf("reading rows: %w", err)
			s.log.Error("sql source failed", logger.ErrorFields("read", err))
		}
		return false
	}

	v, err := s.rowFn(s.rows)
	if err != nil {
		s.err = fmt.Errorf("scanning row: %w", err)
		s.log.Error("sql source failed", logger.ErrorFields("scan", err))
		return false
	}

	s.next = v
	s.nextKey = s.keyFn(v)
	s.hasNext = true
	return true
}

func (s *Source[T]) finish() {
	s.done = true
	if s.rows != nil {
		if cerr := s.rows.Close(); cerr != nil && s.err == nil {
			s.err = cerr
		}
		s.rows = nil
	}
}

// Close releases the underlying rows without draining the stream.
// Next reports exhaustion afterwards.
func (s *Source[T]) Close() error {
	if s.done {
		return nil
	}
	s.done = true
	if s.rows != nil {
		err := s.rows.Close()
		s.rows = nil
		return err
	}
	return nil
}

// Err reports a query or scan failure once the stream is exhausted. A
// failed source exhausts early rather than emitting partial groups.
func (s *Source[T]) Err() error { return s.err }

// Frayed returns the source as a frayed stream.
func (s *Source[T]) Frayed() frayed.Frayed[T] {
	return frayed.Mark[T](s)
}
