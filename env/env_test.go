package env

import (
	"testing"

	"github.com/gura-conf/gura-go/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeclareVariableRejectsDuplicate(t *testing.T) {
	e := New("")
	require.True(t, e.DeclareVariable("host", value.NewString("example.com")))
	assert.False(t, e.DeclareVariable("host", value.NewString("other.com")))

	v, ok := e.LookupVariable("host")
	require.True(t, ok)
	assert.Equal(t, "example.com", v.Str())
}

func TestLookupVariableMissing(t *testing.T) {
	e := New("")
	_, ok := e.LookupVariable("missing")
	assert.False(t, ok)
}

func TestPushPopImportTracksDepth(t *testing.T) {
	e := New("")
	ok, cycle := e.PushImport("/a.ura")
	require.True(t, ok)
	require.False(t, cycle)
	assert.Equal(t, 1, e.ImportDepth())

	e.PopImport()
	assert.Equal(t, 0, e.ImportDepth())
}

func TestPushImportDetectsCycle(t *testing.T) {
	e := New("")
	ok, _ := e.PushImport("/a.ura")
	require.True(t, ok)
	ok, cycle := e.PushImport("/a.ura")
	assert.False(t, ok)
	assert.True(t, cycle)
}

func TestPushImportDepthGuard(t *testing.T) {
	e := New("")
	for i := 0; i < maxImportDepth; i++ {
		ok, cycle := e.PushImport(pathFor(i))
		require.True(t, ok)
		require.False(t, cycle)
	}
	ok, cycle := e.PushImport("/one-too-many.ura")
	assert.False(t, ok)
	assert.False(t, cycle)
}

func pathFor(i int) string {
	return "/file-" + string(rune('a'+i/26)) + string(rune('a'+i%26)) + ".ura"
}

func TestTraceIDStableAcrossCalls(t *testing.T) {
	e := New("")
	id1 := e.TraceID()
	id2 := e.TraceID()
	assert.Equal(t, id1, id2)
	assert.NotEmpty(t, id1)
}
