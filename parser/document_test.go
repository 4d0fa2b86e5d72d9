package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gura-conf/gura-go/env"
	"github.com/gura-conf/gura-go/internal/cursor"
	"github.com/gura-conf/gura-go/value"
)

func TestNestedObjectRejectsVariableDeclaration(t *testing.T) {
	c := cursor.New("", "a:\n  $x: 1\n")
	e := env.New("")
	_, ok := parseDocument(c, e)
	assert.False(t, ok)
	require.NotNil(t, c.Err)
	assert.Equal(t, "ParseError", c.Err.Kind.String())
}

func TestNestedObjectRejectsImport(t *testing.T) {
	c := cursor.New("", "a:\n  import \"x.ura\"\n")
	e := env.New("")
	_, ok := parseDocument(c, e)
	assert.False(t, ok)
	require.NotNil(t, c.Err)
	assert.Equal(t, "ParseError", c.Err.Kind.String())
}

func TestImportFileErrorOnMissingFile(t *testing.T) {
	dir := t.TempDir()
	c := cursor.New("", `import "missing.ura"`+"\n")
	e := env.New(dir)
	_, ok := parseDocument(c, e)
	assert.False(t, ok)
	require.NotNil(t, c.Err)
	assert.Equal(t, "FileError", c.Err.Kind.String())
}

func TestImportDepthExceeded(t *testing.T) {
	dir := t.TempDir()
	const n = 70
	for i := 0; i < n; i++ {
		name := filepath.Join(dir, depthFileName(i))
		var content string
		if i == n-1 {
			content = "leaf: 1\n"
		} else {
			content = "import \"" + depthFileName(i+1) + "\"\n"
		}
		require.NoError(t, os.WriteFile(name, []byte(content), 0o644))
	}

	rootContent, err := os.ReadFile(filepath.Join(dir, depthFileName(0)))
	require.NoError(t, err)
	c := cursor.New("", string(rootContent))
	e := env.New(dir)
	_, ok := parseDocument(c, e)
	assert.False(t, ok)
	require.NotNil(t, c.Err)
	assert.Equal(t, "ImportDepthExceeded", c.Err.Kind.String())
}

func depthFileName(i int) string {
	return "depth-" + string(rune('a'+i/26)) + string(rune('a'+i%26)) + ".ura"
}

func TestDuplicateKeyAcrossNestedSiblings(t *testing.T) {
	c := cursor.New("", "a:\n  x: 1\n  x: 2\n")
	e := env.New("")
	_, ok := parseDocument(c, e)
	assert.False(t, ok)
	require.NotNil(t, c.Err)
	assert.Equal(t, "DuplicateKey", c.Err.Kind.String())
}

func TestKeyWithEmptyKeywordYieldsEmptyObjectValue(t *testing.T) {
	c := cursor.New("", "a: empty\n")
	e := env.New("")
	obj, ok := parseDocument(c, e)
	require.True(t, ok)
	a, found := obj.Get("a")
	require.True(t, found)
	assert.Equal(t, value.ObjectKind, a.Kind())
	assert.Equal(t, 0, a.Object().Len())
}
