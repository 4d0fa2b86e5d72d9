// Document-level grammar: the three top-level statement kinds of
// spec.md section 4.4 (variable declaration, import, key-value pair)
// and the indentation protocol that turns a run of deeper-indented
// lines into a nested object.
//
// The indentation state machine is grounded on sqlparser/document.go's
// Document.parse dispatch loop (a flat scan that builds up a Document
// by repeatedly recognizing one statement kind and appending it), here
// made recursive so that a key's body can itself contain further
// nested bodies.
package parser

import (
	"os"
	"path/filepath"

	"github.com/gura-conf/gura-go/env"
	"github.com/gura-conf/gura-go/internal/cursor"
	"github.com/gura-conf/gura-go/internal/perr"
	"github.com/gura-conf/gura-go/value"
)

// parseDocument parses an entire file into its top-level Object.
func parseDocument(c *cursor.Cursor, e *env.ParseEnv) (*value.Object, bool) {
	return parseObjectBody(c, e, -1, true)
}

// parseObjectBody parses a run of sibling statements sharing one
// indentation level, stopping at end of input or at a dedent below
// that level (the dedented line is left unconsumed for the caller).
// parentIndent is the enclosing level's indentation (-1 at the top
// level, since column 0 is itself a valid indentation there).
// topLevel additionally permits variable declarations and imports,
// which section 4.4 restricts to the document's outermost level.
func parseObjectBody(c *cursor.Cursor, e *env.ParseEnv, parentIndent int, topLevel bool) (*value.Object, bool) {
	obj := value.NewEmptyObject()
	bodyIndent := -1

	for {
		skipBlankAndCommentLines(c)
		if c.AtEnd() {
			return obj, true
		}

		lineStart := c.Snapshot()
		indent, ierr := measureIndent(c)
		if ierr != nil {
			return nil, false
		}

		if bodyIndent == -1 {
			if indent <= parentIndent {
				c.Restore(lineStart)
				return obj, true
			}
			if topLevel && indent != 0 {
				c.Restore(lineStart)
				c.Fail(perr.InvalidIndent, "top-level statements must not be indented")
				return nil, false
			}
			bodyIndent = indent
		} else if indent != bodyIndent {
			c.Restore(lineStart)
			if indent > bodyIndent {
				c.Fail(perr.InvalidIndent, "inconsistent indentation among sibling statements")
				return nil, false
			}
			return obj, true
		}

		if ok := parseStatement(c, e, obj, bodyIndent, topLevel); !ok {
			return nil, false
		}
	}
}

func parseStatement(c *cursor.Cursor, e *env.ParseEnv, obj *value.Object, indent int, topLevel bool) bool {
	if r, _ := c.PeekRune(); r == '$' {
		if !topLevel {
			c.Fail(perr.ParseError, "variable declarations are only allowed at the top level")
			return false
		}
		return parseVariableDecl(c, e)
	}
	if looksLikeImport(c) {
		if !topLevel {
			c.Fail(perr.ParseError, "import is only allowed at the top level")
			return false
		}
		return parseImportStatement(c, e, obj)
	}
	return parseKeyValue(c, e, obj, indent)
}

func parseVariableDecl(c *cursor.Cursor, e *env.ParseEnv) bool {
	start := c.Snapshot()
	_, _ = c.Next() // '$'
	name, ok := scanIdentifier(c)
	if !ok {
		c.Restore(start)
		c.Fail(perr.ParseError, "expected variable name after '$'")
		return false
	}
	skipInline(c)
	if r, _ := c.PeekRune(); r != ':' {
		c.Restore(start)
		c.Fail(perr.ParseError, "expected ':' after variable name")
		return false
	}
	_, _ = c.Next()
	skipInline(c)

	v, ok := parseExpr(c, e)
	if !ok {
		return false
	}
	if !consumeLineEnd(c) {
		return false
	}
	if !e.DeclareVariable(name, v) {
		c.Restore(start)
		c.Fail(perr.DuplicateVariable, "variable already defined: $"+name)
		return false
	}
	return true
}

// looksLikeImport reports whether the cursor sits at an import
// statement, without consuming anything. "import" is also a valid key
// name (spec.md section 9's resolution for "empty" applies equally
// here), so the keyword only counts as the import statement when
// followed by a string literal.
func looksLikeImport(c *cursor.Cursor) bool {
	snap := c.Snapshot()
	defer c.Restore(snap)

	if _, matched := tryKeyword(c, "import"); !matched {
		return false
	}
	skipInline(c)
	r, _ := c.PeekRune()
	return r == '"' || r == '\''
}

func parseImportStatement(c *cursor.Cursor, e *env.ParseEnv, obj *value.Object) bool {
	start := c.Snapshot()
	_, _ = tryKeyword(c, "import")
	skipInline(c)

	path, ok := scanStringLiteral(c, e)
	if !ok {
		return false
	}
	if !consumeLineEnd(c) {
		return false
	}

	imported, ierr := resolveImport(e, path, start.Pos())
	if ierr != nil {
		c.Record(ierr)
		return false
	}

	var dupKey string
	clean := true
	imported.Each(func(key string, val value.Value) bool {
		if !obj.Set(key, val) {
			dupKey = key
			clean = false
			return false
		}
		return true
	})
	if !clean {
		c.Restore(start)
		c.Fail(perr.DuplicateKey, "duplicate key from import: "+dupKey)
		return false
	}
	return true
}

// resolveImport reads and parses the file at relPath (resolved against
// e.BaseDir), sharing e's variable bindings and import stack per
// spec.md section 4.5. It temporarily repoints e.BaseDir at the
// imported file's own directory for the duration of its parse, so that
// transitive imports resolve relative to where they are declared.
func resolveImport(e *env.ParseEnv, relPath string, pos perr.Pos) (*value.Object, *perr.Error) {
	fullPath := relPath
	if !filepath.IsAbs(fullPath) {
		if e.BaseDir == "" {
			return nil, &perr.Error{Pos: pos, Kind: perr.FileError, Message: "cannot resolve relative import without a base directory: " + relPath}
		}
		fullPath = filepath.Join(e.BaseDir, relPath)
	}
	canon, absErr := filepath.Abs(fullPath)
	if absErr != nil {
		return nil, &perr.Error{Pos: pos, Kind: perr.FileError, Message: "cannot resolve import path: " + relPath}
	}

	ok, cycle := e.PushImport(canon)
	if cycle {
		return nil, &perr.Error{Pos: pos, Kind: perr.DuplicateImport, Message: "file already being imported: " + relPath}
	}
	if !ok {
		return nil, &perr.Error{Pos: pos, Kind: perr.ImportDepthExceeded, Message: "import depth exceeded: " + relPath}
	}
	defer e.PopImport()

	data, readErr := os.ReadFile(canon)
	if readErr != nil {
		return nil, &perr.Error{Pos: pos, Kind: perr.FileError, Message: "cannot read import " + relPath + ": " + readErr.Error()}
	}

	savedBaseDir := e.BaseDir
	e.BaseDir = filepath.Dir(canon)
	defer func() { e.BaseDir = savedBaseDir }()

	e.Log().WithField("import", canon).Debug("entering import")
	sub := cursor.New(canon, string(data))
	obj, ok2 := parseDocument(sub, e)
	if !ok2 {
		return nil, sub.Err
	}
	return obj, nil
}

func parseKeyValue(c *cursor.Cursor, e *env.ParseEnv, obj *value.Object, indent int) bool {
	keyStart := c.Snapshot()
	key, ok := scanIdentifier(c)
	if !ok {
		return false
	}
	skipInline(c)
	if r, _ := c.PeekRune(); r != ':' {
		c.Restore(keyStart)
		c.Fail(perr.ParseError, "expected ':' after key '"+key+"'")
		return false
	}
	_, _ = c.Next()
	skipInline(c)

	var v value.Value
	switch {
	case matchesKeyword(c, "empty"):
		_, _ = tryKeyword(c, "empty")
		if !consumeLineEnd(c) {
			return false
		}
		v = value.NewObject(value.NewEmptyObject())

	case atLineEnd(c):
		if !consumeLineEnd(c) {
			return false
		}
		nextIndent, atEnd := peekNextLineIndent(c)
		if atEnd || nextIndent <= indent {
			c.Fail(perr.ParseError, "expected a value, 'empty', or an indented nested object for key '"+key+"'")
			return false
		}
		nested, ok := parseObjectBody(c, e, indent, false)
		if !ok {
			return false
		}
		v = value.NewObject(nested)

	default:
		ev, ok := parseExpr(c, e)
		if !ok {
			return false
		}
		if !consumeLineEnd(c) {
			return false
		}
		v = ev
	}

	if !obj.Set(key, v) {
		c.Restore(keyStart)
		c.Fail(perr.DuplicateKey, "duplicate key: "+key)
		return false
	}
	return true
}

func matchesKeyword(c *cursor.Cursor, kw string) bool {
	snap := c.Snapshot()
	defer c.Restore(snap)
	_, matched := tryKeyword(c, kw)
	if !matched {
		return false
	}
	return atLineEnd(c)
}

// peekNextLineIndent looks ahead past any blank/comment lines to the
// indentation of the next line carrying real content, without
// consuming anything. atEnd is true if input ends first.
func peekNextLineIndent(c *cursor.Cursor) (indent int, atEnd bool) {
	snap := c.Snapshot()
	defer c.Restore(snap)

	skipBlankAndCommentLines(c)
	if c.AtEnd() {
		return 0, true
	}
	n, _ := measureIndent(c)
	return n, false
}
