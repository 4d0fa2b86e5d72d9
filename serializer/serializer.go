// Package serializer implements dump(value), the canonical Gura
// pretty-printer of spec.md section 4.6: a recursive formatter writing
// into a strings.Builder, grounded on sqlparser/create.go's
// Create.Serialize(io.StringWriter)/String() accumulation style.
package serializer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/gura-conf/gura-go/value"
)

const indentUnit = "  "

// Dump renders v as canonical Gura source text. v must be an Object —
// the document model's top level is always Value::Object (spec.md
// section 4.5) and Dump is infallible for any well-formed tree.
func Dump(v value.Value) string {
	var b strings.Builder
	writeObjectBody(&b, v.Object(), 0)
	return b.String()
}

func writeObjectBody(b *strings.Builder, obj *value.Object, depth int) {
	prefix := strings.Repeat(indentUnit, depth)
	for _, key := range obj.Keys() {
		val, _ := obj.Get(key)
		b.WriteString(prefix)
		b.WriteString(key)
		b.WriteString(":")
		writeValueAfterColon(b, val, depth)
	}
}

// writeValueAfterColon writes the portion of a `key:` line (and any
// further lines) that follows the colon already written by the
// caller.
func writeValueAfterColon(b *strings.Builder, v value.Value, depth int) {
	if v.Kind() == value.ObjectKind {
		if v.Object().Len() == 0 {
			b.WriteString(" empty\n")
			return
		}
		b.WriteString("\n")
		writeObjectBody(b, v.Object(), depth+1)
		return
	}
	b.WriteString(" ")
	writeInlineValue(b, v, depth)
	b.WriteString("\n")
}

// writeInlineValue writes a scalar or array value with no trailing
// newline. Per spec.md section 9's resolved Open Question, scalars in
// an array are always inlined and nested containers are always
// written one per line.
func writeInlineValue(b *strings.Builder, v value.Value, depth int) {
	switch v.Kind() {
	case value.Null:
		b.WriteString("null")
	case value.Bool:
		if v.Bool() {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case value.Integer:
		b.WriteString(strconv.FormatInt(v.Int(), 10))
	case value.Float:
		b.WriteString(value.FormatFloat(v.Float64()))
	case value.String:
		writeQuotedString(b, v.Str())
	case value.Array:
		writeArray(b, v.Items(), depth)
	case value.ObjectKind:
		writeInlineObject(b, v.Object(), depth)
	}
}

func writeArray(b *strings.Builder, items []value.Value, depth int) {
	if len(items) == 0 {
		b.WriteString("[]")
		return
	}
	if allScalars(items) {
		b.WriteString("[")
		for i, item := range items {
			if i > 0 {
				b.WriteString(", ")
			}
			writeInlineValue(b, item, depth)
		}
		b.WriteString("]")
		return
	}

	inner := strings.Repeat(indentUnit, depth+1)
	b.WriteString("[\n")
	for _, item := range items {
		if item.Kind() == value.ObjectKind {
			writeArrayObjectItem(b, item.Object(), depth+1)
			continue
		}
		b.WriteString(inner)
		writeInlineValue(b, item, depth+1)
		b.WriteString(",\n")
	}
	b.WriteString(strings.Repeat(indentUnit, depth))
	b.WriteString("]")
}

func allScalars(items []value.Value) bool {
	for _, it := range items {
		switch it.Kind() {
		case value.Array, value.ObjectKind:
			return false
		}
	}
	return true
}

// writeInlineObject handles an Object value written inline after a
// colon that is itself being rendered by writeInlineValue; callers
// inside an array use writeArrayObjectItem instead, which controls the
// comma placement that follows each array element.
func writeInlineObject(b *strings.Builder, obj *value.Object, depth int) {
	if obj.Len() == 0 {
		b.WriteString("empty")
		return
	}
	b.WriteString("\n")
	writeObjectBody(b, obj, depth+1)
}

// writeArrayObjectItem renders an Object value occupying one array
// element as its own indented key block, followed by a comma on its
// own line at the element's indentation.
func writeArrayObjectItem(b *strings.Builder, obj *value.Object, depth int) {
	indent := strings.Repeat(indentUnit, depth)
	if obj.Len() == 0 {
		b.WriteString(indent)
		b.WriteString("empty,\n")
		return
	}
	writeObjectBody(b, obj, depth)
	b.WriteString(indent)
	b.WriteString(",\n")
}

// writeQuotedString emits s as a basic string with minimal escaping,
// per spec.md section 4.6.
func writeQuotedString(b *strings.Builder, s string) {
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			if unicode.IsPrint(r) {
				b.WriteRune(r)
			} else {
				fmt.Fprintf(b, `\u%04x`, r)
			}
		}
	}
	b.WriteByte('"')
}
