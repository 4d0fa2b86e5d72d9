package value

import (
	"math"
	"strconv"
	"strings"
)

// FormatFloat renders f the way Gura numbers serialize: the special
// keywords inf, -inf, nan for non-finite values, and Go's shortest
// round-trip decimal form otherwise, always with a '.' or exponent so
// re-parsing the text yields a Float rather than an Integer (spec.md
// section 4.6, section 8's round-trip invariant).
func FormatFloat(f float64) string {
	return formatFloat(f)
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	default:
		s := strconv.FormatFloat(f, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return s
	}
}
