package cursor

import (
	"testing"

	"github.com/gura-conf/gura-go/internal/perr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStripsBOM(t *testing.T) {
	c := New("", bom+"abc")
	assert.Equal(t, "abc", c.Input)
}

func TestNextTracksLineAndColumn(t *testing.T) {
	c := New("f.ura", "ab\ncd")

	r, ok := c.Next()
	require.True(t, ok)
	assert.Equal(t, 'a', r)
	assert.Equal(t, 1, c.Line)
	assert.Equal(t, 2, c.Col)

	_, _ = c.Next() // 'b'
	assert.Equal(t, 1, c.Line)
	assert.Equal(t, 3, c.Col)

	r, ok = c.Next() // '\n'
	require.True(t, ok)
	assert.Equal(t, '\n', r)
	assert.Equal(t, 2, c.Line)
	assert.Equal(t, 1, c.Col)

	r, ok = c.Next() // 'c'
	require.True(t, ok)
	assert.Equal(t, 'c', r)
	assert.Equal(t, 2, c.Line)
	assert.Equal(t, 2, c.Col)
}

func TestNextCollapsesCRLFToOneNewline(t *testing.T) {
	c := New("", "a\r\nb")
	_, _ = c.Next() // 'a'
	r, ok := c.Next()
	require.True(t, ok)
	assert.Equal(t, '\n', r)
	assert.Equal(t, 2, c.Line)
	assert.Equal(t, 1, c.Col)
}

func TestAtEnd(t *testing.T) {
	c := New("", "a")
	assert.False(t, c.AtEnd())
	_, _ = c.Next()
	assert.True(t, c.AtEnd())
	_, ok := c.Next()
	assert.False(t, ok)
}

func TestSnapshotRestoreRewindsPosition(t *testing.T) {
	c := New("", "hello")
	snap := c.Snapshot()
	_, _ = c.Next()
	_, _ = c.Next()
	assert.Equal(t, 2, c.Offset)

	c.Restore(snap)
	assert.Equal(t, 0, c.Offset)
	assert.Equal(t, 1, c.Line)
	assert.Equal(t, 1, c.Col)
}

func TestRestoreKeepsFurthestError(t *testing.T) {
	c := New("", "hello world")
	snap := c.Snapshot()

	_, _ = c.Next()
	_, _ = c.Next()
	near := c.Fail(perr.ParseError, "near failure")

	c.Restore(snap)
	// the error recorded before restoring is further than anything in snap
	assert.Same(t, near, c.Err)
}

func TestPeekRuneDoesNotConsume(t *testing.T) {
	c := New("", "xy")
	r, w := c.PeekRune()
	assert.Equal(t, 'x', r)
	assert.Equal(t, 1, w)
	assert.Equal(t, 0, c.Offset)
}

func TestPeekAtLooksAhead(t *testing.T) {
	c := New("", "abc")
	r, _ := c.PeekAt(2)
	assert.Equal(t, 'c', r)
	assert.Equal(t, 0, c.Offset)
}
