// Lexical rules shared by the grammar: whitespace/comment skipping,
// identifier scanning, and the four string kinds and four numeric
// forms of spec.md section 4.2.
//
// Comment scanning is grounded on sqlparser/scanner.go's
// scanSinglelineComment (there triggered by "--", here by "#");
// identifier classification is grounded on Scanner.nextToken's
// xid.Start(r) dispatch, reused directly via github.com/smasher164/xid
// and narrowed to the ASCII-only key/variable syntax Gura requires.
package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/gura-conf/gura-go/internal/combinator"
	"github.com/gura-conf/gura-go/internal/cursor"
	"github.com/gura-conf/gura-go/internal/perr"
	"github.com/smasher164/xid"
)

func isIdentStart(r rune) bool {
	return r == '_' || (r < unicode.MaxASCII && xid.Start(r))
}

func isIdentCont(r rune) bool {
	return r == '_' || (r < unicode.MaxASCII && (xid.Continue(r) || unicode.IsDigit(r)))
}

// skipInline consumes horizontal whitespace (space, tab) only; it
// never crosses a newline, per spec.md section 4.2.
func skipInline(c *cursor.Cursor) {
	for {
		r, w := c.PeekRune()
		if w == 0 || (r != ' ' && r != '\t') {
			return
		}
		_, _ = c.Next()
	}
}

// skipComment consumes a '#'-to-end-of-line comment if one starts at
// the cursor, not including the terminating newline. Reports whether
// a comment was consumed.
func skipComment(c *cursor.Cursor) bool {
	r, _ := c.PeekRune()
	if r != '#' {
		return false
	}
	for {
		r, w := c.PeekRune()
		if w == 0 || r == '\n' || r == '\r' {
			return true
		}
		_, _ = c.Next()
	}
}

// atLineEnd reports whether, after skipping inline whitespace and an
// optional comment, the cursor sits at a newline or end of input.
func atLineEnd(c *cursor.Cursor) bool {
	snap := c.Snapshot()
	skipInline(c)
	skipComment(c)
	r, w := c.PeekRune()
	atEnd := w == 0 || r == '\n' || r == '\r'
	c.Restore(snap)
	return atEnd
}

// consumeLineEnd skips inline whitespace, an optional comment, and
// then a single newline (or end of input). It fails if there is
// unconsumed, non-comment content before the newline.
func consumeLineEnd(c *cursor.Cursor) bool {
	skipInline(c)
	skipComment(c)
	if c.AtEnd() {
		return true
	}
	r, _ := c.PeekRune()
	if r != '\n' && r != '\r' {
		c.Fail(perr.ParseError, "expected end of line")
		return false
	}
	_, _ = c.Next()
	return true
}

// skipBlankAndCommentLines advances past any run of lines that are
// blank or contain only a comment, per spec.md section 9's resolved
// Open Question: such lines are transparent to indentation tracking.
// It leaves the cursor at the start of the next line with real
// content, or at end of input.
func skipBlankAndCommentLines(c *cursor.Cursor) {
	for {
		snap := c.Snapshot()
		skipInline(c)
		skipComment(c)
		if c.AtEnd() {
			return
		}
		r, _ := c.PeekRune()
		if r == '\n' || r == '\r' {
			_, _ = c.Next()
			continue
		}
		c.Restore(snap)
		return
	}
}

// measureIndent counts the leading run of space/tab characters at the
// cursor (assumed to be at the start of a line) and consumes them.
// Mixing tabs and spaces within one indentation prefix is
// InvalidIndent per spec.md section 4.4.
func measureIndent(c *cursor.Cursor) (int, *perr.Error) {
	sawSpace, sawTab := false, false
	n := 0
	for {
		r, w := c.PeekRune()
		if w == 0 {
			break
		}
		switch r {
		case ' ':
			sawSpace = true
		case '\t':
			sawTab = true
		default:
			w = 0
		}
		if w == 0 {
			break
		}
		_, _ = c.Next()
		n++
	}
	if sawSpace && sawTab {
		return n, c.Fail(perr.InvalidIndent, "indentation mixes tabs and spaces")
	}
	return n, nil
}

// scanIdentifier matches [A-Za-z_][A-Za-z0-9_]* at the cursor and
// returns the matched text. Used for both object keys and the
// identifier half of a $variable reference. The mandatory start
// character is matched directly (a single, uncommitted attempt here
// would be pointless); the open-ended continuation run is genuinely
// optional-length, so it is built on the combinator engine's Many.
func scanIdentifier(c *cursor.Cursor) (string, bool) {
	start := c.Snapshot()
	r, w := c.PeekRune()
	if w == 0 || !isIdentStart(r) {
		c.Fail(perr.ParseError, "expected identifier")
		return "", false
	}
	_, _ = c.Next()
	_, _ = combinator.Many(combinator.CharClass("identifier continuation", isIdentCont))(c)
	return c.Input[start.Offset:c.Offset], true
}

// --- numbers ---

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isSign(r rune) bool { return r == '+' || r == '-' }

// scanNumber matches spec.md section 4.2's integer and float forms,
// including 0x/0o/0b prefixes, '_' digit separators, and the special
// float tokens inf/-inf/nan. It returns the raw matched text and
// whether the value is a float.
func scanNumber(c *cursor.Cursor) (text string, isFloat bool, ok bool) {
	start := c.Snapshot()

	if t, matched := tryKeyword(c, "-inf"); matched {
		return t, true, true
	}
	if t, matched := tryKeyword(c, "inf"); matched {
		return t, true, true
	}
	if t, matched := tryKeyword(c, "nan"); matched {
		return t, true, true
	}

	_, _ = combinator.Optional(combinator.CharClass("sign", isSign))(c)

	if r, _ := c.PeekRune(); r == '0' {
		if r2, w2 := c.PeekAt(1); w2 != 0 && (r2 == 'x' || r2 == 'X') {
			return scanRadixInt(c, start, "0123456789abcdefABCDEF", 2)
		}
		if r2, w2 := c.PeekAt(1); w2 != 0 && (r2 == 'o' || r2 == 'O') {
			return scanRadixInt(c, start, "01234567", 2)
		}
		if r2, w2 := c.PeekAt(1); w2 != 0 && (r2 == 'b' || r2 == 'B') {
			return scanRadixInt(c, start, "01", 2)
		}
	}

	digits := scanDigitRun(c)
	if digits == "" {
		c.Restore(start)
		c.Fail(perr.ParseError, "expected number")
		return "", false, false
	}

	isF := false
	if r, _ := c.PeekRune(); r == '.' {
		if r2, _ := c.PeekAt(1); isDigit(r2) {
			isF = true
			_, _ = c.Next()
			scanDigitRun(c)
		}
	}
	if r, _ := c.PeekRune(); r == 'e' || r == 'E' {
		snap := c.Snapshot()
		_, _ = c.Next()
		if r2, _ := c.PeekRune(); r2 == '+' || r2 == '-' {
			_, _ = c.Next()
		}
		if exp := scanDigitRun(c); exp != "" {
			isF = true
		} else {
			c.Restore(snap)
		}
	}

	return c.Input[start.Offset:c.Offset], isF, true
}

// tryKeyword matches kw as a whole word (not followed by another
// identifier-ish character, so "infinity" doesn't half-match "inf"),
// built on the combinator engine's Keyword/Seq2/Not/CharClass. It is a
// soft, non-committal probe used throughout the grammar to try one
// alternative among several (a keyword literal, an import statement,
// the special float tokens, ...); a mismatch here is never
// itself a diagnostic, so the cursor and its error state are both
// restored to the entry snapshot on failure, discarding whatever the
// combinator engine recorded internally while probing.
func tryKeyword(c *cursor.Cursor, kw string) (string, bool) {
	snap := c.Snapshot()
	boundary := combinator.Not(combinator.CharClass("identifier continuation", isIdentCont))
	pair, ok := combinator.Seq2(combinator.Keyword(kw), boundary)(c)
	if !ok {
		c.Restore(snap)
		c.Err = snap.Err
		return "", false
	}
	return pair.First, true
}

func scanDigitRun(c *cursor.Cursor) string {
	start := c.Snapshot()
	lastWasDigit := false
	for {
		r, w := c.PeekRune()
		if w == 0 {
			break
		}
		if isDigit(r) {
			_, _ = c.Next()
			lastWasDigit = true
			continue
		}
		if r == '_' {
			if !lastWasDigit {
				break
			}
			// only consume if followed by another digit (no trailing/double underscore)
			if r2, w2 := c.PeekAt(1); w2 == 0 || !isDigit(r2) {
				break
			}
			_, _ = c.Next()
			lastWasDigit = false
			continue
		}
		break
	}
	return c.Input[start.Offset:c.Offset]
}

// scanRadixInt consumes the prefixLen radix marker ("0x"/"0o"/"0b")
// then a run of digits drawn from alphabet, applying the same
// leading/trailing/doubled '_' separator rule as scanDigitRun (spec.md
// section 4.2 applies that rule to every integer base, not just
// decimal).
func scanRadixInt(c *cursor.Cursor, start cursor.Cursor, alphabet string, prefixLen int) (string, bool, bool) {
	for i := 0; i < prefixLen; i++ {
		_, _ = c.Next()
	}
	n := 0
	lastWasDigit := false
	for {
		r, w := c.PeekRune()
		if w == 0 {
			break
		}
		if strings.ContainsRune(alphabet, r) {
			_, _ = c.Next()
			n++
			lastWasDigit = true
			continue
		}
		if r == '_' {
			if !lastWasDigit {
				break
			}
			if r2, w2 := c.PeekAt(1); w2 == 0 || !strings.ContainsRune(alphabet, r2) {
				break
			}
			_, _ = c.Next()
			lastWasDigit = false
			continue
		}
		break
	}
	if n == 0 {
		c.Restore(start)
		c.Fail(perr.ParseError, "expected digits after radix prefix")
		return "", false, false
	}
	return c.Input[start.Offset:c.Offset], false, true
}

// parseIntegerLiteral converts text (as returned by scanNumber when
// isFloat is false) to an int64, stripping '_' separators and
// dispatching on radix prefix.
func parseIntegerLiteral(text string) (int64, error) {
	sign := int64(1)
	rest := text
	if strings.HasPrefix(rest, "-") {
		sign = -1
		rest = rest[1:]
	} else if strings.HasPrefix(rest, "+") {
		rest = rest[1:]
	}
	rest = strings.ReplaceAll(rest, "_", "")

	base := 10
	switch {
	case strings.HasPrefix(rest, "0x") || strings.HasPrefix(rest, "0X"):
		base = 16
		rest = rest[2:]
	case strings.HasPrefix(rest, "0o") || strings.HasPrefix(rest, "0O"):
		base = 8
		rest = rest[2:]
	case strings.HasPrefix(rest, "0b") || strings.HasPrefix(rest, "0B"):
		base = 2
		rest = rest[2:]
	}
	v, err := strconv.ParseInt(rest, base, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid integer literal %q: %w", text, err)
	}
	return sign * v, nil
}

// parseFloatLiteral converts text (as returned by scanNumber when
// isFloat is true) to a float64, handling the inf/-inf/nan keywords.
func parseFloatLiteral(text string) (float64, error) {
	switch text {
	case "inf":
		return math.Inf(1), nil
	case "-inf":
		return math.Inf(-1), nil
	case "nan":
		return math.NaN(), nil
	}
	clean := strings.ReplaceAll(text, "_", "")
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float literal %q: %w", text, err)
	}
	return v, nil
}
