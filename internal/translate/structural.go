package translate

import (
	"fmt"
	"regexp"
	"strings"

	"sketchc/internal/braces"
	"sketchc/internal/diag"
)

var placeholderRe = regexp.MustCompile(`\b(LCURLY|RCURLY|LPAREN|RPAREN|LBRACK|RBRACK|SEMI|COMMA|DOT|ASSIGN|COLON)\b`)

var placeholders = map[string]string{
	"LCURLY": "{",
	"RCURLY": "}",
	"LPAREN": "(",
	"RPAREN": ")",
	"LBRACK": "[",
	"RBRACK": "]",
	"SEMI":   ";",
	"COMMA":  ",",
	"DOT":    ".",
	"ASSIGN": "=",
	"COLON":  ":",
}

// ReplacePlaceholders swaps grammar token names for the characters they stand for.
func ReplacePlaceholders(msg string) string {
	return placeholderRe.ReplaceAllStringFunc(msg, func(tok string) string {
		return placeholders[tok]
	})
}

var structuralTemplates = []struct {
	trigger string
	code    diag.Code
	message string
}{
	{"expecting RBRACK", diag.SynMissingBracket, "Syntax error, maybe a missing ] character?"},
	{"expecting SEMI", diag.SynMissingSemicolon, "Syntax error, maybe a missing semicolon?"},
	{"expecting RPAREN", diag.SynMissingParen, "Syntax error, maybe a missing right parenthesis?"},
}

func (t *Translator) structural(f Structural) diag.Diagnostic {
	loc := t.Mapper.MapParserLine(f.Line)
	msg := f.Message

	if strings.Contains(msg, "expecting RCURLY") || strings.Contains(msg, "expecting LCURLY") {
		// The grammar usually notices a missing brace far from where it
		// belongs, so a real imbalance anywhere takes over the location.
		if m, ok := braces.ScanUnits(t.Sketch.Translatable()); ok {
			code := diag.SynExtraOpenBrace
			if m.Kind == braces.ExtraClose {
				code = diag.SynExtraCloseBrace
			}
			return diag.New(code, m.Unit, m.Line, m.Column, m.Kind.Message())
		}
		return diag.New(diag.SynRecognition, loc.Unit, loc.Line, f.Column, ReplacePlaceholders(msg))
	}

	for _, tpl := range structuralTemplates {
		if strings.Contains(msg, tpl.trigger) {
			fmt.Fprintln(t.console(), msg)
			return diag.New(tpl.code, loc.Unit, loc.Line, f.Column, tpl.message)
		}
	}
	if strings.Contains(msg, "preproc.web_colors") {
		return diag.New(diag.SynBadWebColor, loc.Unit, loc.Line, f.Column, "A web color (such as #ffcc00) must be six digits.")
	}
	return diag.New(diag.SynRecognition, loc.Unit, loc.Line, f.Column, ReplacePlaceholders(msg))
}
