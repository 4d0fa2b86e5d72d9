// Package guratest loads YAML-described parse fixtures, which this
// package's own tests run through the gura façade, and formats
// failures with repr-based value dumps for readable diffs.
//
// Grounded on sqltest/fixture.go's shape (a small struct assembled
// once per test file and handed to each test) and
// sqltest/querydump.go's use of github.com/alecthomas/repr to render
// structured values for debug output; here there is no database to
// connect to, so the fixture is just the parsed case list.
package guratest

import (
	"fmt"
	"os"

	"github.com/alecthomas/repr"
	"github.com/gura-conf/gura-go/value"
	"gopkg.in/yaml.v3"
)

// Case is one entry in a fixture file: a Gura source snippet and
// either the error kind it must raise, or the document it must
// produce (as a plain YAML-decoded tree, compared structurally).
type Case struct {
	Name      string `yaml:"name"`
	Input     string `yaml:"input"`
	ErrorKind string `yaml:"error,omitempty"`
	Expect    any    `yaml:"expect,omitempty"`
}

// LoadCases reads a fixture file containing a YAML list of Cases.
func LoadCases(path string) ([]Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("guratest: reading %s: %w", path, err)
	}
	var cases []Case
	if err := yaml.Unmarshal(data, &cases); err != nil {
		return nil, fmt.Errorf("guratest: parsing %s: %w", path, err)
	}
	return cases, nil
}

// DumpValue renders v with repr for inclusion in a test failure
// message — more legible than %#v for the Value tagged union, since it
// prints field names alongside values.
func DumpValue(v value.Value) string {
	return repr.String(v)
}

// ToPlain converts a value.Value into built-in Go types (map, slice,
// string, float64, int64, bool, nil) close to what yaml.Unmarshal
// produces for an `expect:` block, so fixture expectations can be
// compared with assert.Equal without a bespoke Value literal syntax in
// the YAML. Integers come out as int64 while yaml.Unmarshal yields int,
// so the expected side needs its ints widened before comparing.
func ToPlain(v value.Value) any {
	switch v.Kind() {
	case value.Null:
		return nil
	case value.Bool:
		return v.Bool()
	case value.Integer:
		return v.Int()
	case value.Float:
		return v.Float64()
	case value.String:
		return v.Str()
	case value.Array:
		items := v.Items()
		out := make([]any, len(items))
		for i, it := range items {
			out[i] = ToPlain(it)
		}
		return out
	case value.ObjectKind:
		out := make(map[string]any)
		v.Object().Each(func(key string, val value.Value) bool {
			out[key] = ToPlain(val)
			return true
		})
		return out
	default:
		return nil
	}
}
