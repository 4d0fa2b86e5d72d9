// Package gura is the public façade over the parser and serializer:
// Parse, ParseWith, and Dump, per spec.md section 6.1. It is grounded
// on sqlparser.Parse's thin wrapper shape (construct a Scanner/Document,
// run the grammar, surface SQLCodeParseErrors on failure).
package gura

import (
	"fmt"

	"github.com/gura-conf/gura-go/env"
	"github.com/gura-conf/gura-go/internal/cursor"
	"github.com/gura-conf/gura-go/internal/perr"
	"github.com/gura-conf/gura-go/parser"
	"github.com/gura-conf/gura-go/serializer"
	"github.com/gura-conf/gura-go/value"
)

// ParseError wraps the furthest perr.Error produced by a failed parse,
// giving callers a stable, documented error type (mirroring
// sqlcode.SQLCodeParseErrors's shape of hiding the parser's internal
// error behind the package's own public type, narrowed here to one
// element: the furthest-match heuristic in internal/perr never leaves
// more than one candidate error standing).
type ParseError struct {
	inner *perr.Error
}

func (e *ParseError) Error() string {
	if e.inner == nil {
		return "gura: parse error"
	}
	return e.inner.Error()
}

// Line and Col return the 1-based source location of the failure.
func (e *ParseError) Line() int { return e.inner.Pos.Line }
func (e *ParseError) Col() int  { return e.inner.Pos.Col }

// Kind returns the error taxonomy entry of spec.md section 7, rendered
// as its name (e.g. "DuplicateKey").
func (e *ParseError) Kind() string { return e.inner.Kind.String() }

// Parse parses text as a top-level Gura document with an empty base
// directory; relative imports will fail with FileError since there is
// nowhere to resolve them against. Use ParseWith to supply one.
func Parse(text string) (value.Value, error) {
	return ParseWith(text, "")
}

// ParseWith parses text as a top-level Gura document, resolving
// `import` statements relative to baseDir.
func ParseWith(text, baseDir string) (value.Value, error) {
	c := cursor.New("", text)
	e := env.New(baseDir)
	v, ok := parser.Parse(c, e)
	if !ok {
		return value.Value{}, &ParseError{inner: c.Err}
	}
	return v, nil
}

// Dump renders v as canonical Gura source text.
func Dump(v value.Value) string {
	return serializer.Dump(v)
}

// MustParse is a test/CLI convenience that panics on parse failure.
func MustParse(text string) value.Value {
	v, err := Parse(text)
	if err != nil {
		panic(fmt.Sprintf("gura: %v", err))
	}
	return v
}
