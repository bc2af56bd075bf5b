package frayed

// prefixed replays a fixed prefix in front of every subsequence of a
// frayed source. The prefix is armed only while an element is known to
// follow (checked through a Peeker), so no subsequence is fabricated
// after the source is exhausted: the stream stays a valid frayed stream
// with the same boundaries, each subsequence simply longer by the
// prefix.
type prefixed[T any] struct {
	prefix []T
	src    *Peeker[T]
	pos    int
	armed  bool
}

func newPrefixed[T any](src Producer[T], prefix []T, always bool) *prefixed[T] {
	p := &prefixed[T]{prefix: prefix, src: NewPeeker(src)}
	_, upcoming := p.src.Peek()
	p.armed = upcoming || always
	return p
}

func (p *prefixed[T]) Next() (T, bool) {
	if p.armed {
		if p.pos < len(p.prefix) {
			v := p.prefix[p.pos]
			p.pos++
			return v, true
		}
		p.armed = false
	}
	return p.step()
}

// step pulls from the source; at a boundary it re-arms the prefix only
// when the stream continues with an element.
func (p *prefixed[T]) step() (T, bool) {
	v, ok := p.src.Next()
	if !ok {
		_, upcoming := p.src.Peek()
		p.armed = upcoming
		p.pos = 0
	}
	return v, ok
}

// Prefix returns a marked producer that replays prefix before every
// subsequence of f. An exhausted source stays exhausted: with no element
// upcoming the prefix is not emitted, so defraying the result yields
// exactly as many subsequences as f had.
func (f Frayed[T]) Prefix(prefix []T) Frayed[T] {
	return Frayed[T]{src: newPrefixed(f.src, prefix, false)}
}

// PrefixAlways is Prefix, except the prefix is also armed at
// construction when no element is upcoming. A producer that starts at
// its final boundary therefore still yields one prefix-only
// subsequence.
func (f Frayed[T]) PrefixAlways(prefix []T) Frayed[T] {
	return Frayed[T]{src: newPrefixed(f.src, prefix, true)}
}
