package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gura-conf/gura-go/env"
	"github.com/gura-conf/gura-go/internal/cursor"
	"github.com/gura-conf/gura-go/value"
)

func TestParseArrayTrailingCommaAndNewlines(t *testing.T) {
	c := cursor.New("", "[\n  1,\n  2,\n  3,\n]")
	e := env.New("")
	v, ok := parseExpr(c, e)
	require.True(t, ok)
	require.Equal(t, value.Array, v.Kind())
	items := v.Items()
	require.Len(t, items, 3)
	assert.Equal(t, int64(1), items[0].Int())
	assert.Equal(t, int64(3), items[2].Int())
}

func TestParseArrayEmpty(t *testing.T) {
	c := cursor.New("", "[]")
	e := env.New("")
	v, ok := parseExpr(c, e)
	require.True(t, ok)
	assert.Empty(t, v.Items())
}

func TestParseNestedArray(t *testing.T) {
	c := cursor.New("", "[[1, 2], [3]]")
	e := env.New("")
	v, ok := parseExpr(c, e)
	require.True(t, ok)
	items := v.Items()
	require.Len(t, items, 2)
	assert.Len(t, items[0].Items(), 2)
	assert.Len(t, items[1].Items(), 1)
}

func TestParseVarRefExprResolvesBoundValue(t *testing.T) {
	e := env.New("")
	require.True(t, e.DeclareVariable("port", value.NewInteger(8080)))
	c := cursor.New("", "$port")
	v, ok := parseExpr(c, e)
	require.True(t, ok)
	assert.Equal(t, int64(8080), v.Int())
}

func TestParseVarRefExprUndefinedFails(t *testing.T) {
	e := env.New("")
	c := cursor.New("", "$missing")
	_, ok := parseExpr(c, e)
	assert.False(t, ok)
	require.NotNil(t, c.Err)
	assert.Equal(t, "VariableNotDefined", c.Err.Kind.String())
}

func TestInterpolationRejectsArrayVariable(t *testing.T) {
	e := env.New("")
	require.True(t, e.DeclareVariable("xs", value.NewArray([]value.Value{value.NewInteger(1)})))
	c := cursor.New("", `"list is $xs"`)
	_, ok := scanStringLiteral(c, e)
	assert.False(t, ok)
	require.NotNil(t, c.Err)
	assert.Equal(t, "InvalidVariableType", c.Err.Kind.String())
}

func TestUnterminatedStringFails(t *testing.T) {
	e := env.New("")
	c := cursor.New("", `"no closing quote`)
	_, ok := scanStringLiteral(c, e)
	assert.False(t, ok)
	require.NotNil(t, c.Err)
	assert.Equal(t, "ParseError", c.Err.Kind.String())
}

func TestUnknownEscapeFails(t *testing.T) {
	e := env.New("")
	c := cursor.New("", `"bad \q escape"`)
	_, ok := scanStringLiteral(c, e)
	assert.False(t, ok)
	require.NotNil(t, c.Err)
	assert.Equal(t, "InvalidEscape", c.Err.Kind.String())
}
