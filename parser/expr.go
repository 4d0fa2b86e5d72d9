package parser

import (
	"math"

	"github.com/gura-conf/gura-go/env"
	"github.com/gura-conf/gura-go/internal/cursor"
	"github.com/gura-conf/gura-go/internal/perr"
	"github.com/gura-conf/gura-go/value"
)

// parseExpr parses one of spec.md section 4.3's expr alternatives:
// array, string, number, bool, null, or a $variable reference.
func parseExpr(c *cursor.Cursor, e *env.ParseEnv) (value.Value, bool) {
	r, w := c.PeekRune()
	if w == 0 {
		c.Fail(perr.ParseError, "expected a value")
		return value.Value{}, false
	}

	switch {
	case r == '[':
		return parseArray(c, e)
	case r == '"' || r == '\'':
		s, ok := scanStringLiteral(c, e)
		if !ok {
			return value.Value{}, false
		}
		return value.NewString(s), true
	case r == '$':
		return parseVarRefExpr(c, e)
	}

	if tok, matched := tryKeyword(c, "true"); matched {
		_ = tok
		return value.NewBool(true), true
	}
	if tok, matched := tryKeyword(c, "false"); matched {
		_ = tok
		return value.NewBool(false), true
	}
	if tok, matched := tryKeyword(c, "null"); matched {
		_ = tok
		return value.NewNull(), true
	}
	// "inf" and "nan" are valid unsigned float tokens (scanNumber only
	// reaches the "-inf" form through the signed-prefix dispatch below).
	if tok, matched := tryKeyword(c, "inf"); matched {
		_ = tok
		return value.NewFloat(math.Inf(1)), true
	}
	if tok, matched := tryKeyword(c, "nan"); matched {
		_ = tok
		return value.NewFloat(math.NaN()), true
	}

	if r == '+' || r == '-' || isDigit(r) {
		return parseNumber(c)
	}

	c.Fail(perr.ParseError, "expected array, string, number, bool, null, or $variable")
	return value.Value{}, false
}

func parseNumber(c *cursor.Cursor) (value.Value, bool) {
	text, isFloat, ok := scanNumber(c)
	if !ok {
		return value.Value{}, false
	}
	if isFloat {
		f, err := parseFloatLiteral(text)
		if err != nil {
			c.Fail(perr.ParseError, err.Error())
			return value.Value{}, false
		}
		return value.NewFloat(f), true
	}
	i, err := parseIntegerLiteral(text)
	if err != nil {
		c.Fail(perr.ParseError, err.Error())
		return value.Value{}, false
	}
	return value.NewInteger(i), true
}

// parseVarRefExpr resolves a bare $name reference in value position to
// the variable's bound Value directly (not a string).
func parseVarRefExpr(c *cursor.Cursor, e *env.ParseEnv) (value.Value, bool) {
	start := c.Snapshot()
	_, _ = c.Next() // '$'
	name, ok := scanIdentifier(c)
	if !ok {
		c.Restore(start)
		c.Fail(perr.ParseError, "expected variable name after '$'")
		return value.Value{}, false
	}
	v, bound := e.LookupVariable(name)
	if !bound {
		c.Restore(start)
		c.Fail(perr.VariableNotDefined, "variable not defined: $"+name)
		return value.Value{}, false
	}
	return v, true
}

// parseArray parses spec.md section 4.3's array grammar: elements may
// span multiple lines, with a trailing comma permitted before ']'.
func parseArray(c *cursor.Cursor, e *env.ParseEnv) (value.Value, bool) {
	start := c.Snapshot()
	_, _ = c.Next() // '['

	var items []value.Value
	skipArrayWhitespace(c)

	if r, _ := c.PeekRune(); r == ']' {
		_, _ = c.Next()
		return value.NewArray(items), true
	}

	for {
		skipArrayWhitespace(c)
		v, ok := parseExpr(c, e)
		if !ok {
			c.Restore(start)
			return value.Value{}, false
		}
		items = append(items, v)
		skipArrayWhitespace(c)

		r, w := c.PeekRune()
		if w == 0 {
			c.Restore(start)
			c.Fail(perr.ParseError, "unterminated array")
			return value.Value{}, false
		}
		if r == ',' {
			_, _ = c.Next()
			skipArrayWhitespace(c)
			if r2, _ := c.PeekRune(); r2 == ']' {
				_, _ = c.Next()
				return value.NewArray(items), true
			}
			continue
		}
		if r == ']' {
			_, _ = c.Next()
			return value.NewArray(items), true
		}
		c.Restore(start)
		c.Fail(perr.ParseError, "expected ',' or ']' in array")
		return value.Value{}, false
	}
}

// skipArrayWhitespace skips inline whitespace, newlines, and full-line
// or trailing comments, all of which are permitted between array
// elements per spec.md section 4.3.
func skipArrayWhitespace(c *cursor.Cursor) {
	for {
		r, w := c.PeekRune()
		if w == 0 {
			return
		}
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			_, _ = c.Next()
			continue
		}
		if r == '#' {
			skipComment(c)
			continue
		}
		return
	}
}
