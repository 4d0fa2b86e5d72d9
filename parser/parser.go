// Package parser implements the Gura grammar (expressions, strings,
// numbers, and the indentation-sensitive document structure) over the
// cursor and combinator engine in internal/cursor and
// internal/combinator, evaluating as it goes per spec.md section 4.5:
// variables resolve at the point of reference and imports are
// expanded inline, rather than being deferred to a later pass.
package parser

import (
	"github.com/gura-conf/gura-go/env"
	"github.com/gura-conf/gura-go/internal/cursor"
	"github.com/gura-conf/gura-go/internal/perr"
	"github.com/gura-conf/gura-go/value"
)

// Parse runs the document grammar over c using e, returning the
// top-level Object as a Value. The caller is expected to construct c
// with cursor.New and e with env.New (or env.New followed by
// WithLogger); Parse performs no I/O beyond what resolving `import`
// statements requires. On failure, the caller inspects c.Err for the
// furthest-parse diagnostic.
func Parse(c *cursor.Cursor, e *env.ParseEnv) (value.Value, bool) {
	obj, ok := parseDocument(c, e)
	if !ok {
		return value.Value{}, false
	}
	if !c.AtEnd() {
		c.Fail(perr.ParseError, "unexpected trailing content")
		return value.Value{}, false
	}
	return value.NewObject(obj), true
}
