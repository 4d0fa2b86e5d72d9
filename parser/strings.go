package parser

import (
	"strconv"
	"strings"

	"github.com/gura-conf/gura-go/env"
	"github.com/gura-conf/gura-go/internal/cursor"
	"github.com/gura-conf/gura-go/internal/perr"
	"github.com/gura-conf/gura-go/value"
)

// stringKind distinguishes the four string forms of spec.md section 4.2.
type stringKind int

const (
	basicString stringKind = iota
	literalString
	multilineBasicString
	multilineLiteralString
)

// scanStringLiteral dispatches on the opening delimiter and decodes
// the string's content into a Go string, resolving escapes and
// variable interpolation as required by kind. On failure it returns
// ok == false with the diagnostic recorded on c.Err.
func scanStringLiteral(c *cursor.Cursor, e *env.ParseEnv) (string, bool) {
	switch {
	case matchesLiteral(c, `"""`):
		return scanDelimited(c, e, `"""`, true, true)
	case matchesLiteral(c, `'''`):
		return scanDelimited(c, e, `'''`, false, true)
	case matchesLiteral(c, `"`):
		return scanDelimited(c, e, `"`, true, false)
	case matchesLiteral(c, `'`):
		return scanDelimited(c, e, `'`, false, false)
	default:
		c.Fail(perr.ParseError, "expected string")
		return "", false
	}
}

func matchesLiteral(c *cursor.Cursor, s string) bool {
	for i, want := range s {
		r, w := c.PeekAt(i)
		if w == 0 || r != want {
			return false
		}
	}
	return true
}

// scanDelimited scans a string body between matching `delim` markers
// (already confirmed present at the cursor by the caller), decoding
// escapes and $var/${var} interpolation when escapesOn (basic and
// multiline-basic strings both interpolate per spec.md's table;
// literal strings pass escapesOn == false and are never interpolated
// — interpolation is gated on escapesOn since the two kinds that
// support it are exactly the two that support escapes).
func scanDelimited(c *cursor.Cursor, e *env.ParseEnv, delim string, escapesOn, multiline bool) (string, bool) {
	start := c.Snapshot()
	for i := 0; i < len(delim); i++ {
		_, _ = c.Next()
	}

	if multiline {
		// strip a single leading newline right after the opening delimiter
		if r, _ := c.PeekRune(); r == '\n' || r == '\r' {
			_, _ = c.Next()
		}
	}

	var out strings.Builder
	for {
		if c.AtEnd() {
			c.Restore(start)
			c.Fail(perr.ParseError, "unterminated string")
			return "", false
		}
		if matchesLiteral(c, delim) {
			for i := 0; i < len(delim); i++ {
				_, _ = c.Next()
			}
			return out.String(), true
		}
		if !multiline {
			if r, _ := c.PeekRune(); r == '\n' || r == '\r' {
				c.Restore(start)
				c.Fail(perr.ParseError, "unterminated string")
				return "", false
			}
		}

		if escapesOn {
			if r, _ := c.PeekRune(); r == '\\' {
				decoded, ok := decodeEscape(c)
				if !ok {
					return "", false
				}
				out.WriteString(decoded)
				continue
			}
			if r, _ := c.PeekRune(); r == '$' {
				interp, ok := scanInterpolation(c, e)
				if !ok {
					return "", false
				}
				out.WriteString(interp)
				continue
			}
		}

		r, _ := c.Next()
		out.WriteRune(r)
	}
}

// decodeEscape handles the escape table of spec.md section 4.2,
// assuming the cursor is positioned at the leading backslash.
func decodeEscape(c *cursor.Cursor) (string, bool) {
	start := c.Snapshot()
	_, _ = c.Next() // consume '\\'
	r, w := c.PeekRune()
	if w == 0 {
		c.Restore(start)
		c.Fail(perr.InvalidEscape, "unterminated escape sequence")
		return "", false
	}
	switch r {
	case 'n':
		_, _ = c.Next()
		return "\n", true
	case 't':
		_, _ = c.Next()
		return "\t", true
	case 'r':
		_, _ = c.Next()
		return "\r", true
	case 'b':
		_, _ = c.Next()
		return "\b", true
	case 'f':
		_, _ = c.Next()
		return "\f", true
	case '"':
		_, _ = c.Next()
		return "\"", true
	case '\'':
		_, _ = c.Next()
		return "'", true
	case '\\':
		_, _ = c.Next()
		return "\\", true
	case '$':
		_, _ = c.Next()
		return "$", true
	case 'u':
		_, _ = c.Next()
		hex := make([]rune, 0, 4)
		for i := 0; i < 4; i++ {
			hr, hw := c.PeekRune()
			if hw == 0 || !isHexDigit(hr) {
				c.Restore(start)
				c.Fail(perr.InvalidEscape, "invalid \\u escape: expected 4 hex digits")
				return "", false
			}
			hex = append(hex, hr)
			_, _ = c.Next()
		}
		code, err := strconv.ParseUint(string(hex), 16, 32)
		if err != nil {
			c.Restore(start)
			c.Fail(perr.InvalidEscape, "invalid \\u escape")
			return "", false
		}
		return string(rune(code)), true
	default:
		c.Restore(start)
		c.Fail(perr.InvalidEscape, "unknown escape sequence")
		return "", false
	}
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// scanInterpolation handles $name and ${name}, assuming the cursor is
// positioned at the leading '$'. It resolves the variable immediately
// against e, formatting scalars per value.Value.InterpolationString
// and raising InvalidVariableType for arrays/objects/null.
func scanInterpolation(c *cursor.Cursor, e *env.ParseEnv) (string, bool) {
	start := c.Snapshot()
	_, _ = c.Next() // consume '$'

	braced := false
	if r, _ := c.PeekRune(); r == '{' {
		braced = true
		_, _ = c.Next()
	}

	name, ok := scanIdentifier(c)
	if !ok {
		c.Restore(start)
		c.Fail(perr.ParseError, "expected variable name after '$'")
		return "", false
	}

	if braced {
		if r, _ := c.PeekRune(); r != '}' {
			c.Restore(start)
			c.Fail(perr.ParseError, "expected '}' to close ${"+name)
			return "", false
		}
		_, _ = c.Next()
	}

	v, bound := e.LookupVariable(name)
	if !bound {
		c.Restore(start)
		c.Fail(perr.VariableNotDefined, "variable not defined: $"+name)
		return "", false
	}
	switch v.Kind() {
	case value.Array, value.ObjectKind, value.Null:
		c.Restore(start)
		c.Fail(perr.InvalidVariableType, "cannot interpolate a "+v.Kind().String()+" value into a string")
		return "", false
	}
	return v.InterpolationString(), true
}
