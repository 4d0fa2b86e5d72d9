package gura

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gura-conf/gura-go/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestS1BasicScalarsAndArray(t *testing.T) {
	src := "title: \"Gura\"\ncount: 3\npi: 3.14\nok: true\nhosts: [\"a\", \"b\"]\n"
	v, err := Parse(src)
	require.NoError(t, err)

	obj := v.Object()
	title, _ := obj.Get("title")
	assert.Equal(t, "Gura", title.Str())
	count, _ := obj.Get("count")
	assert.Equal(t, int64(3), count.Int())
	pi, _ := obj.Get("pi")
	assert.Equal(t, 3.14, pi.Float64())
	ok, _ := obj.Get("ok")
	assert.True(t, ok.Bool())
	hosts, _ := obj.Get("hosts")
	require.Len(t, hosts.Items(), 2)
	assert.Equal(t, "a", hosts.Items()[0].Str())
	assert.Equal(t, "b", hosts.Items()[1].Str())
}

func TestS2NestedObjectViaIndentation(t *testing.T) {
	src := "user:\n  name: \"Ada\"\n  age: 36\n"
	v, err := Parse(src)
	require.NoError(t, err)

	user, ok := v.Object().Get("user")
	require.True(t, ok)
	name, _ := user.Object().Get("name")
	assert.Equal(t, "Ada", name.Str())
	age, _ := user.Object().Get("age")
	assert.Equal(t, int64(36), age.Int())
}

func TestS3VariableAndInterpolation(t *testing.T) {
	src := "$host: \"example.com\"\nurl: \"https://$host/api\"\n"
	v, err := Parse(src)
	require.NoError(t, err)

	url, ok := v.Object().Get("url")
	require.True(t, ok)
	assert.Equal(t, "https://example.com/api", url.Str())

	_, hasHost := v.Object().Get("host")
	assert.False(t, hasHost)
}

func TestS4DuplicateKeyRejected(t *testing.T) {
	src := "a: 1\na: 2\n"
	_, err := Parse(src)
	require.Error(t, err)
	pe := err.(*ParseError)
	assert.Equal(t, "DuplicateKey", pe.Kind())
	assert.Equal(t, 2, pe.Line())
}

func TestS5ImportWithSharedVariables(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vars.ura"), []byte("$host: \"h\"\n$port: 80\n"), 0o644))
	mainSrc := "import \"vars.ura\"\nurl: \"$host:$port\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.ura"), []byte(mainSrc), 0o644))

	v, err := ParseWith(mainSrc, dir)
	require.NoError(t, err)
	url, ok := v.Object().Get("url")
	require.True(t, ok)
	assert.Equal(t, "h:80", url.Str())
}

func TestImportCycleIsDuplicateImport(t *testing.T) {
	dir := t.TempDir()
	aSrc := "import \"b.ura\"\n"
	bSrc := "import \"a.ura\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.ura"), []byte(aSrc), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.ura"), []byte(bSrc), 0o644))

	_, err := ParseWith(aSrc, dir)
	require.Error(t, err)
	pe := err.(*ParseError)
	assert.Equal(t, "DuplicateImport", pe.Kind())
}

func TestS6HexIntegerWithUnderscores(t *testing.T) {
	v, err := Parse("n: 0xFF_FF\n")
	require.NoError(t, err)
	n, _ := v.Object().Get("n")
	assert.Equal(t, int64(65535), n.Int())
}

func TestS7IndentErrorOnSiblingMismatch(t *testing.T) {
	src := "a:\n  b: 1\n   c: 2\n"
	_, err := Parse(src)
	require.Error(t, err)
	pe := err.(*ParseError)
	assert.Equal(t, "InvalidIndent", pe.Kind())
	assert.Equal(t, 3, pe.Line())
}

func TestEmptyInputProducesEmptyObject(t *testing.T) {
	v, err := Parse("")
	require.NoError(t, err)
	assert.Equal(t, 0, v.Object().Len())
}

func TestCommentOnlyInputProducesEmptyObject(t *testing.T) {
	v, err := Parse("# just a comment\n\n# another\n")
	require.NoError(t, err)
	assert.Equal(t, 0, v.Object().Len())
}

func TestTrailingNewlineOptional(t *testing.T) {
	v, err := Parse("a: 1")
	require.NoError(t, err)
	a, _ := v.Object().Get("a")
	assert.Equal(t, int64(1), a.Int())
}

func TestRoundTripAtValueLevel(t *testing.T) {
	src := "title: \"Gura\"\nuser:\n  name: \"Ada\"\n  tags: [1, 2, 3]\n"
	v1, err := Parse(src)
	require.NoError(t, err)

	dumped := Dump(v1)
	v2, err := Parse(dumped)
	require.NoError(t, err)

	assert.True(t, value.Equal(v1, v2))
}

func TestKeyNamedImportAndEmptyAreValid(t *testing.T) {
	v, err := Parse("import: 5\nempty: 9\n")
	require.NoError(t, err)
	imp, _ := v.Object().Get("import")
	assert.Equal(t, int64(5), imp.Int())
	e, _ := v.Object().Get("empty")
	assert.Equal(t, int64(9), e.Int())
}

func TestEmptyKeywordProducesEmptyObject(t *testing.T) {
	v, err := Parse("settings: empty\n")
	require.NoError(t, err)
	settings, ok := v.Object().Get("settings")
	require.True(t, ok)
	assert.Equal(t, 0, settings.Object().Len())
}

func TestUnknownVariableIsHardError(t *testing.T) {
	_, err := Parse("url: \"$missing\"\n")
	require.Error(t, err)
	pe := err.(*ParseError)
	assert.Equal(t, "VariableNotDefined", pe.Kind())
}
