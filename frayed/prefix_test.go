package frayed_test

import (
	"slices"
	"testing"

	"github.com/kbukum/seqkit/frayed"
	"github.com/kbukum/seqkit/frayed/fraytest"
)

func collectAll[T any](f frayed.Frayed[T]) [][]T {
	var got [][]T
	for sub := range f.Defray().All() {
		got = append(got, sub.Collect())
	}
	return got
}

func TestPrefixReplayedBeforeEachSubsequence(t *testing.T) {
	p := fraytest.New([]int{1, 2}, []int{4})
	got := collectAll(p.Frayed().Prefix([]int{9, 8}))

	want := [][]int{{9, 8, 1, 2}, {9, 8, 4}}
	if !slices.EqualFunc(got, want, slices.Equal) {
		t.Fatalf("subsequences = %v, want %v", got, want)
	}
}

func TestPrefixRawStreamKeepsBoundaries(t *testing.T) {
	p := fraytest.New([]int{1}, []int{2})
	f := p.Frayed().Prefix([]int{9})

	want := []struct {
		val int
		ok  bool
	}{
		{9, true}, {1, true}, {0, false},
		{9, true}, {2, true}, {0, false},
		{0, false}, {0, false},
	}
	for i, w := range want {
		v, ok := f.Next()
		if v != w.val || ok != w.ok {
			t.Fatalf("step %d: got (%d, %v), want (%d, %v)", i, v, ok, w.val, w.ok)
		}
	}
}

func TestPrefixExhaustedProducerStaysEmpty(t *testing.T) {
	p := fraytest.New[int]()
	got := collectAll(p.Frayed().Prefix([]int{9}))
	if got != nil {
		t.Fatalf("subsequences = %v, want none", got)
	}
}

func TestPrefixAlwaysEmitsPrefixOnExhausted(t *testing.T) {
	p := fraytest.New[int]()
	got := collectAll(p.Frayed().PrefixAlways([]int{9, 8}))

	want := [][]int{{9, 8}}
	if !slices.EqualFunc(got, want, slices.Equal) {
		t.Fatalf("subsequences = %v, want %v", got, want)
	}
}

func TestPrefixLeadingBoundary(t *testing.T) {
	// Stream: boundary, 1, boundary, boundary.
	src := func() *fraytest.Producer[int] { return fraytest.New([]int{}, []int{1}) }

	got := collectAll(src().Frayed().Prefix([]int{9}))
	want := [][]int{{9, 1}}
	if !slices.EqualFunc(got, want, slices.Equal) {
		t.Fatalf("Prefix: subsequences = %v, want %v", got, want)
	}

	// PrefixAlways arms at construction too, so the leading boundary
	// closes a prefix-only subsequence first.
	got = collectAll(src().Frayed().PrefixAlways([]int{9}))
	want = [][]int{{9}, {9, 1}}
	if !slices.EqualFunc(got, want, slices.Equal) {
		t.Fatalf("PrefixAlways: subsequences = %v, want %v", got, want)
	}
}

func TestPrefixEmptySliceIsIdentity(t *testing.T) {
	p := fraytest.New([]int{1, 2}, []int{4})
	got := collectAll(p.Frayed().Prefix(nil))

	want := [][]int{{1, 2}, {4}}
	if !slices.EqualFunc(got, want, slices.Equal) {
		t.Fatalf("subsequences = %v, want %v", got, want)
	}
}
