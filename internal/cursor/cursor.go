// Package cursor implements the value-typed cursor the parser engine
// backtracks over. It is grounded on sqlparser.Scanner's bookkeeping
// (startIndex/curIndex/startLine/stopLine/indexAtStartLine/
// indexAtStopLine) and its Clone()-based backtracking, but per
// spec.md's design notes it is a plain struct cheap to copy by value —
// there is no interior mutability to clone away from.
package cursor

import (
	"strings"
	"unicode/utf8"

	"github.com/gura-conf/gura-go/internal/perr"
)

// bom is the UTF-8 encoding of U+FEFF, accepted and discarded at the
// start of input per spec.md section 6.2.
const bom = "\xef\xbb\xbf"

// Cursor is a position within a single source text, together with the
// freshest (furthest) error observed while scanning that text.
//
// It is intentionally a value type: combinators take a Snapshot before
// attempting an alternative and Restore on failure, rather than
// mutating shared state in place.
type Cursor struct {
	File  string // empty for the root text of a gura.Parse/ParseWith call
	Input string
	Offset int
	Line   int // 1-based
	Col    int // 1-based

	Err *perr.Error // rightmost error encountered so far
}

// New returns a Cursor positioned at the start of input, with any
// leading BOM stripped.
func New(file, input string) *Cursor {
	input = strings.TrimPrefix(input, bom)
	return &Cursor{File: file, Input: input, Line: 1, Col: 1}
}

// Snapshot returns a cheap value copy of the cursor's position. The
// Err field is also copied, but Restore reconciles it against the
// cursor's error at the time of the restore so that failed
// alternatives still contribute to the furthest-parse heuristic.
func (c *Cursor) Snapshot() Cursor {
	return *c
}

// Restore rewinds the cursor to a previously taken Snapshot, keeping
// whichever of the cursor's current error and the snapshot's error is
// furthest into the input.
func (c *Cursor) Restore(snap Cursor) {
	furthest := perr.Furthest(c.Err, snap.Err)
	*c = snap
	c.Err = furthest
}

// AtEnd reports whether the cursor has consumed all input.
func (c *Cursor) AtEnd() bool {
	return c.Offset >= len(c.Input)
}

// PeekRune returns the rune at the current offset without consuming
// it, and its encoded width in bytes. At end of input it returns
// utf8.RuneError with width 0.
func (c *Cursor) PeekRune() (rune, int) {
	if c.AtEnd() {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(c.Input[c.Offset:])
}

// PeekAt returns the rune `ahead` runes past the current offset,
// without consuming anything. Used for small fixed lookahead (e.g.
// distinguishing "'''" from "'").
func (c *Cursor) PeekAt(ahead int) (rune, int) {
	off := c.Offset
	var r rune
	var w int
	for i := 0; i <= ahead; i++ {
		if off >= len(c.Input) {
			return utf8.RuneError, 0
		}
		r, w = utf8.DecodeRuneInString(c.Input[off:])
		if i < ahead {
			off += w
		}
	}
	return r, w
}

// Rest returns the unconsumed remainder of the input.
func (c *Cursor) Rest() string {
	return c.Input[c.Offset:]
}

// Next consumes and returns one rune, advancing line/column tracking.
// A CRLF pair is consumed as a single unit and counts as one newline,
// matching spec.md section 4.1. It reports false at end of input.
func (c *Cursor) Next() (rune, bool) {
	if c.AtEnd() {
		return utf8.RuneError, false
	}
	r, w := utf8.DecodeRuneInString(c.Input[c.Offset:])
	c.Offset += w

	if r == '\r' {
		if nr, nw := utf8.DecodeRuneInString(c.Input[c.Offset:]); nr == '\n' {
			c.Offset += nw
		}
		c.Line++
		c.Col = 1
		return '\n', true
	}
	if r == '\n' {
		c.Line++
		c.Col = 1
		return r, true
	}
	c.Col++
	return r, true
}

// AdvanceBytes consumes n raw bytes without rune/newline accounting.
// Only safe for spans already known to contain no newlines (e.g. a
// literal ASCII keyword match) — callers needing newline-aware
// advancement should use Next in a loop instead.
func (c *Cursor) AdvanceBytes(n int) {
	c.Offset += n
	c.Col += n
}

// Pos returns the cursor's current position as a perr.Pos.
func (c *Cursor) Pos() perr.Pos {
	return perr.Pos{File: c.File, Line: c.Line, Col: c.Col}
}

// Record merges err into the cursor's tracked rightmost error via
// perr.Furthest. A nil err is a no-op.
func (c *Cursor) Record(err *perr.Error) {
	c.Err = perr.Furthest(c.Err, err)
}

// Fail records and returns a new *perr.Error positioned at the
// cursor's current location.
func (c *Cursor) Fail(kind perr.Kind, message string) *perr.Error {
	e := &perr.Error{Pos: c.Pos(), Kind: kind, Message: message}
	c.Record(e)
	return e
}
