package translate

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/runenames"

	"sketchc/internal/diag"
)

var (
	tokenLocationRe  = regexp.MustCompile(`^line (\d+):(\d+):\s`)
	unexpectedCharRe = regexp.MustCompile(`unexpected char: (.*)`)
	curlyQuotes      = map[rune]bool{'“': true, '”': true, '‘': true, '’': true}
)

func (t *Translator) tokenization(f Tokenization) diag.Diagnostic {
	code := diag.LexUnexpectedChar
	msg := f.Message
	if m := unexpectedCharRe.FindStringSubmatch(f.Rendering); m != nil {
		if r, ok := OffendingRune(m[1]); ok {
			if curlyQuotes[r] {
				code = diag.LexCurlyQuote
				msg = t.printer().Sprintf(BadCurlyQuoteKey, r)
			} else {
				msg = "Not expecting symbol " + m[1] + ", which is " + runenames.Name(r) + "."
			}
		}
	}

	m := tokenLocationRe.FindStringSubmatch(f.Rendering)
	if m == nil {
		return diag.Unresolved(diag.LexUnlocated, f.Rendering)
	}
	line, err1 := strconv.Atoi(m[1])
	col, err2 := strconv.Atoi(m[2])
	if err1 != nil || err2 != nil {
		return diag.Unresolved(diag.LexUnlocated, f.Rendering)
	}
	loc := t.Mapper.MapTokenizerLine(line - 1)
	return diag.New(code, loc.Unit, loc.Line, col, msg)
}

// OffendingRune decodes the tokenizer's rendering of a character: a hex
// code ("0x201C"), a quoted character ("'#'") or the bare character.
func OffendingRune(s string) (rune, bool) {
	if hex, ok := strings.CutPrefix(s, "0x"); ok {
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil || v == 0 || !utf8.ValidRune(rune(v)) {
			return 0, false
		}
		return rune(v), true
	}
	runes := []rune(s)
	switch len(runes) {
	case 3:
		return runes[1], true
	case 1:
		return runes[0], true
	}
	return 0, false
}
