package redistream_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/kbukum/seqkit/sources/redistream"
)

func seed(t *testing.T, m *miniredis.Miniredis, id, value string) {
	t.Helper()
	if _, err := m.XAdd("events", id, []string{"n", value}); err != nil {
		t.Fatalf("failed to seed %s: %v", id, err)
	}
}

func newSource(t *testing.T, m *miniredis.Miniredis, cfg redistream.Config) *redistream.Source {
	t.Helper()
	cfg.Addr = m.Addr()
	if cfg.Stream == "" {
		cfg.Stream = "events"
	}
	src, err := redistream.New(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { src.Close() })
	return src
}

func collectValues(t *testing.T, src *redistream.Source) [][]string {
	t.Helper()
	var got [][]string
	for sub := range src.Frayed().Defray().All() {
		var vals []string
		for _, msg := range sub.Collect() {
			vals = append(vals, msg.Values["n"].(string))
		}
		got = append(got, vals)
	}
	return got
}

func assertSessions(t *testing.T, got, want [][]string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d sessions, got %v", len(want), got)
	}
	for i := range want {
		if strings.Join(got[i], ",") != strings.Join(want[i], ",") {
			t.Fatalf("session %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestSessionizesByGap(t *testing.T) {
	m := miniredis.RunT(t)
	seed(t, m, "1000-0", "a")
	seed(t, m, "2000-0", "b")
	seed(t, m, "50000-0", "c")

	src := newSource(t, m, redistream.Config{MaxGap: "30s"})

	assertSessions(t, collectValues(t, src), [][]string{{"a", "b"}, {"c"}})
	if err := src.Err(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRawBoundarySteps(t *testing.T) {
	m := miniredis.RunT(t)
	seed(t, m, "1000-0", "a")
	seed(t, m, "2000-0", "b")
	seed(t, m, "50000-0", "c")

	src := newSource(t, m, redistream.Config{MaxGap: "30s"})

	want := []struct {
		value string
		ok    bool
	}{
		{"a", true},
		{"b", true},
		{"", false}, // 48s gap closes the session
		{"c", true},
		{"", false}, // end of range
		{"", false}, // exhaustion
	}
	for i, step := range want {
		msg, ok := src.Next()
		if ok != step.ok {
			t.Fatalf("step %d: expected ok=%v, got %v", i, step.ok, ok)
		}
		if step.ok && msg.Values["n"].(string) != step.value {
			t.Fatalf("step %d: expected %q, got %v", i, step.value, msg.Values)
		}
	}
}

func TestGapAtLimitStaysOpen(t *testing.T) {
	m := miniredis.RunT(t)
	seed(t, m, "1000-0", "a")
	seed(t, m, "31000-0", "b")

	src := newSource(t, m, redistream.Config{MaxGap: "30s"})

	assertSessions(t, collectValues(t, src), [][]string{{"a", "b"}})
}

func TestZeroGapDisablesSessionization(t *testing.T) {
	m := miniredis.RunT(t)
	seed(t, m, "1000-0", "a")
	seed(t, m, "99999000-0", "b")

	src := newSource(t, m, redistream.Config{MaxGap: "0s"})

	assertSessions(t, collectValues(t, src), [][]string{{"a", "b"}})
}

func TestPagingAcrossBatches(t *testing.T) {
	m := miniredis.RunT(t)
	var want []string
	for i := 0; i < 5; i++ {
		v := fmt.Sprintf("e%d", i)
		seed(t, m, fmt.Sprintf("1000-%d", i), v)
		want = append(want, v)
	}

	src := newSource(t, m, redistream.Config{MaxGap: "30s", BatchSize: 2})

	assertSessions(t, collectValues(t, src), [][]string{want})
}

func TestBoundedRange(t *testing.T) {
	m := miniredis.RunT(t)
	seed(t, m, "1000-0", "a")
	seed(t, m, "2000-0", "b")
	seed(t, m, "3000-0", "c")
	seed(t, m, "4000-0", "d")

	src := newSource(t, m, redistream.Config{Start: "2000-0", End: "3000-0", MaxGap: "30s"})

	assertSessions(t, collectValues(t, src), [][]string{{"b", "c"}})
}

func TestEmptyStreamExhausts(t *testing.T) {
	m := miniredis.RunT(t)

	src := newSource(t, m, redistream.Config{})

	if got := collectValues(t, src); len(got) != 0 {
		t.Fatalf("expected no sessions, got %v", got)
	}
	if err := src.Err(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestServerGoneExhaustsWithErr(t *testing.T) {
	m := miniredis.RunT(t)
	src := newSource(t, m, redistream.Config{MaxRetries: 1, MinRetryBackoff: "1ms"})
	m.Close()

	if got := collectValues(t, src); len(got) != 0 {
		t.Fatalf("expected no sessions, got %v", got)
	}
	if src.Err() == nil || !strings.Contains(src.Err().Error(), "reading stream") {
		t.Errorf("expected read error, got %v", src.Err())
	}

	// Exhaustion stays monotonic after a failure.
	if _, ok := src.Next(); ok {
		t.Error("expected failed source to stay exhausted")
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	_, err := redistream.New(context.Background(), redistream.Config{Addr: "localhost:6379"}, nil)
	if err == nil || !strings.Contains(err.Error(), "stream is required") {
		t.Fatalf("expected config error, got %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*redistream.Config)
		wantErr bool
	}{
		{"defaults with addr and stream", func(c *redistream.Config) {}, false},
		{"missing addr", func(c *redistream.Config) { c.Addr = "" }, true},
		{"missing stream", func(c *redistream.Config) { c.Stream = "" }, true},
		{"bad max gap", func(c *redistream.Config) { c.MaxGap = "wide" }, true},
		{"bad dial timeout", func(c *redistream.Config) { c.DialTimeout = "never" }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := redistream.Config{Addr: "localhost:6379", Stream: "events"}
			cfg.ApplyDefaults()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
