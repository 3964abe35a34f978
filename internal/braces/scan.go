// Package braces detects an unmatched '{' or '}' in sketch code.
package braces

import (
	"unicode/utf8"

	"sketchc/internal/source"
)

// Kind is the mismatch variant.
type Kind uint8

const (
	// ExtraOpen is a '{' still open at the end of the text. The mismatch
	// points at the last one opened.
	ExtraOpen Kind = iota + 1
	// ExtraClose is a '}' with nothing open, reported where it occurs.
	ExtraClose
)

func (k Kind) String() string {
	switch k {
	case ExtraOpen:
		return "extra-open"
	case ExtraClose:
		return "extra-close"
	}
	return "none"
}

// Message is the user-facing text for the mismatch.
func (k Kind) Message() string {
	switch k {
	case ExtraOpen:
		return "Found an extra { character without a } to match it."
	case ExtraClose:
		return "Found an extra } character without a { to match it."
	}
	return ""
}

// Mismatch is a brace imbalance at a byte offset of the scanned text.
type Mismatch struct {
	Kind   Kind
	Offset int
}

// Scan walks already scrubbed text and reports the first imbalance: a '}'
// taking the depth below zero, or the last '{' left open at the end.
func Scan(scrubbed string) (Mismatch, bool) {
	var open []int
	for i := 0; i < len(scrubbed); i++ {
		switch scrubbed[i] {
		case '{':
			open = append(open, i)
		case '}':
			if len(open) == 0 {
				return Mismatch{Kind: ExtraClose, Offset: i}, true
			}
			open = open[:len(open)-1]
		}
	}
	if len(open) > 0 {
		return Mismatch{Kind: ExtraOpen, Offset: open[len(open)-1]}, true
	}
	return Mismatch{}, false
}

// Position converts a byte offset into a 0-based line and a 0-based column
// counted in runes.
func Position(text string, offset int) (line, col int) {
	if offset > len(text) {
		offset = len(text)
	}
	lineStart := 0
	for i := 0; i < offset; i++ {
		if text[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	return line, utf8.RuneCountInString(text[lineStart:offset])
}

// UnitMismatch locates a mismatch inside a sketch unit.
type UnitMismatch struct {
	Mismatch
	Unit   int
	Line   int
	Column int
}

// ScanUnits scans translatable units in order and returns the first mismatch.
func ScanUnits(units []source.Unit) (UnitMismatch, bool) {
	for _, u := range units {
		if u.Kind != source.Translatable {
			continue
		}
		m, ok := Scan(Scrub(u.Text))
		if !ok {
			continue
		}
		line, col := Position(u.Text, m.Offset)
		return UnitMismatch{Mismatch: m, Unit: u.Index, Line: line, Column: col}, true
	}
	return UnitMismatch{}, false
}
