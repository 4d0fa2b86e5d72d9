// Package combinator provides the small set of parser combinators the
// Gura grammar is built from: sequence, ordered choice, optional,
// repetition, a literal keyword matcher, a single-rune class matcher,
// and negative lookahead. All of them operate on a shared
// *cursor.Cursor and report failures through the cursor's own
// furthest-error tracking (internal/perr), per spec.md section 4.1.
//
// Grammar rules are plain functions over *cursor.Cursor, not an object
// hierarchy (spec.md section 9's "recursive grammar as data" note);
// the matcher shapes here are grounded on the generated-parser runtime
// matchers in the pack's 32bitkid-pigeon/vm package (read-only
// reference, not the teacher), generalized from unexported types
// tailored to one generated grammar into exported generic functions
// reusable across Gura's.
package combinator

import (
	"fmt"

	"github.com/gura-conf/gura-go/internal/cursor"
	"github.com/gura-conf/gura-go/internal/perr"
)

// Parser matches some syntax at the cursor's current position. On
// success it returns the matched value and true, leaving the cursor
// advanced past the match. On failure it returns the zero value and
// false, having restored the cursor to its entry position and
// recorded an error via cursor.Fail (or a sub-parser having done so).
type Parser[T any] func(c *cursor.Cursor) (T, bool)

// Pair is the result of Seq2: both sub-results in order.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Keyword matches the literal string s rune-by-rune. On mismatch it
// restores the cursor and records an expected-token error at the
// attempt position.
func Keyword(s string) Parser[string] {
	return func(c *cursor.Cursor) (string, bool) {
		snap := c.Snapshot()
		for _, want := range s {
			got, ok := c.Next()
			if !ok || got != want {
				c.Restore(snap)
				c.Fail(perr.ParseError, fmt.Sprintf("expected %q", s))
				return "", false
			}
		}
		return s, true
	}
}

// CharClass matches a single code point satisfying pred. name is used
// only to render a useful error message on mismatch.
func CharClass(name string, pred func(rune) bool) Parser[rune] {
	return func(c *cursor.Cursor) (rune, bool) {
		r, w := c.PeekRune()
		if w == 0 || !pred(r) {
			c.Fail(perr.ParseError, "expected "+name)
			return 0, false
		}
		_, _ = c.Next()
		return r, true
	}
}

// Seq2 matches pa then pb in order. If either fails the cursor is
// restored to the sequence's entry position.
func Seq2[A, B any](pa Parser[A], pb Parser[B]) Parser[Pair[A, B]] {
	return func(c *cursor.Cursor) (Pair[A, B], bool) {
		snap := c.Snapshot()
		a, ok := pa(c)
		if !ok {
			c.Restore(snap)
			return Pair[A, B]{}, false
		}
		b, ok := pb(c)
		if !ok {
			c.Restore(snap)
			return Pair[A, B]{}, false
		}
		return Pair[A, B]{First: a, Second: b}, true
	}
}

// Seq3 matches pa, pb, pc in order, restoring on any failure.
func Seq3[A, B, C any](pa Parser[A], pb Parser[B], pc Parser[C]) Parser[struct {
	First  A
	Second B
	Third  C
}] {
	type Triple = struct {
		First  A
		Second B
		Third  C
	}
	return func(c *cursor.Cursor) (Triple, bool) {
		snap := c.Snapshot()
		a, ok := pa(c)
		if !ok {
			c.Restore(snap)
			return Triple{}, false
		}
		b, ok := pb(c)
		if !ok {
			c.Restore(snap)
			return Triple{}, false
		}
		ce, ok := pc(c)
		if !ok {
			c.Restore(snap)
			return Triple{}, false
		}
		return Triple{First: a, Second: b, Third: ce}, true
	}
}

// Choice tries each parser in order and returns the first success. If
// all fail, the cursor is restored to the entry position and the
// rightmost (furthest-parse) child error is what remains recorded on
// the cursor. A successful alternative resolves the choice outright,
// so any error left behind by earlier, abandoned alternatives is
// discarded rather than allowed to linger and outrank a genuine error
// raised later at a shallower position (e.g. a semantic check run
// after a successful parse).
func Choice[T any](ps ...Parser[T]) Parser[T] {
	return func(c *cursor.Cursor) (T, bool) {
		snap := c.Snapshot()
		for _, p := range ps {
			if v, ok := p(c); ok {
				c.Err = snap.Err
				return v, true
			}
			c.Restore(snap)
		}
		var zero T
		return zero, false
	}
}

// Maybe is the result of Optional: Present is false when p did not
// match, in which case Value is the zero value of T.
type Maybe[T any] struct {
	Value   T
	Present bool
}

// Optional always succeeds. Absence of a match yields a Maybe with
// Present == false and leaves the cursor untouched. Optional never
// fails, so whatever error p left behind on a non-match is not a real
// diagnostic and is discarded rather than left to outrank a later,
// genuine error at an earlier position.
func Optional[T any](p Parser[T]) Parser[Maybe[T]] {
	return func(c *cursor.Cursor) (Maybe[T], bool) {
		snap := c.Snapshot()
		v, ok := p(c)
		if !ok {
			c.Restore(snap)
			c.Err = snap.Err
			return Maybe[T]{}, true
		}
		c.Err = snap.Err
		return Maybe[T]{Value: v, Present: true}, true
	}
}

// Many matches p zero or more times, greedily, always succeeding. The
// failed final attempt that ends the run is expected, not a real
// diagnostic, so the error it left behind is discarded along with any
// left by earlier, successful iterations.
func Many[T any](p Parser[T]) Parser[[]T] {
	return func(c *cursor.Cursor) ([]T, bool) {
		var out []T
		preErr := c.Err
		for {
			snap := c.Snapshot()
			v, ok := p(c)
			if !ok {
				c.Restore(snap)
				c.Err = preErr
				return out, true
			}
			out = append(out, v)
		}
	}
}

// Many1 matches p one or more times, failing if zero matches occur.
func Many1[T any](p Parser[T]) Parser[[]T] {
	many := Many(p)
	return func(c *cursor.Cursor) ([]T, bool) {
		snap := c.Snapshot()
		out, _ := many(c)
		if len(out) == 0 {
			c.Restore(snap)
			c.Fail(perr.ParseError, "expected at least one match")
			return nil, false
		}
		return out, true
	}
}

// Not is a negative lookahead: it succeeds iff p would fail, and never
// consumes input either way. On success, p's own failure (the reason
// Not matched) is expected, not a real diagnostic, and is discarded.
func Not[T any](p Parser[T]) Parser[struct{}] {
	return func(c *cursor.Cursor) (struct{}, bool) {
		snap := c.Snapshot()
		_, ok := p(c)
		c.Restore(snap)
		if ok {
			c.Fail(perr.ParseError, "unexpected match")
			return struct{}{}, false
		}
		c.Err = snap.Err
		return struct{}{}, true
	}
}
