// Package posmap translates line numbers reported against the generated or
// concatenated source back to a (unit, line) pair in the original sketch.
//
// Three consumers report lines differently, so the mapper exposes three
// policies:
//
//   - MapCompilerLine takes a 0-based line of the generated compilation unit,
//     which carries a header of HeaderOffset lines before the user code.
//   - MapParserLine takes a 1-based line of the concatenated text as reported
//     by the preprocessor's grammar errors.
//   - MapTokenizerLine takes a 0-based line of the concatenated text as
//     reported by the preprocessor's tokenizer.
//
// All policies are pure and return Unresolved when no unit can be chosen.
package posmap

import (
	"fmt"

	"sketchc/internal/source"
)

// Location is a 0-based line inside a unit. Line -1 means unknown.
type Location struct {
	Unit int
	Line int
}

// Unresolved is returned when a line precedes all user code.
var Unresolved = Location{Unit: 0, Line: -1}

// Known reports whether the line is meaningful.
func (l Location) Known() bool { return l.Line >= 0 }

func (l Location) String() string {
	return fmt.Sprintf("unit %d line %d", l.Unit, l.Line)
}

// Mapper holds the offsets produced by assembly plus the header offset
// reported by the preprocessor.
type Mapper struct {
	offsets source.OffsetTable
	header  int
}

// New creates a mapper.
func New(offsets source.OffsetTable, header int) Mapper {
	return Mapper{offsets: offsets, header: header}
}

// HeaderOffset returns the number of generated lines preceding user code.
func (m Mapper) HeaderOffset() int { return m.header }

// MapCompilerLine maps a 0-based line of the generated unit.
// The unit with the greatest offset not exceeding the corrected line wins.
func (m Mapper) MapCompilerLine(generated int) Location {
	c := generated - m.header
	if c < 0 {
		return Unresolved
	}
	loc := Location{Unit: 0, Line: c}
	for i := 0; i < m.offsets.Len(); i++ {
		unit, off := m.offsets.Entry(i)
		if off <= c {
			loc = Location{Unit: unit, Line: c - off}
		}
	}
	return loc
}

// MapParserLine maps a 1-based line of the concatenated text. Entries are
// scanned from the last one down to the second; the first whose offset does
// not exceed the line wins. Otherwise the line belongs to the main unit.
func (m Mapper) MapParserLine(reported int) Location {
	c := reported - 1
	for i := m.offsets.Len() - 1; i > 0; i-- {
		unit, off := m.offsets.Entry(i)
		if off <= c {
			return Location{Unit: unit, Line: c - off}
		}
	}
	return Location{Unit: 0, Line: c}
}

// MapTokenizerLine maps a 0-based line of the concatenated text. Only entries
// after the first are candidates, and an entry matches when its offset is
// strictly less than the line; the last match wins.
func (m Mapper) MapTokenizerLine(line int) Location {
	loc := Location{Unit: 0, Line: line}
	for i := 1; i < m.offsets.Len(); i++ {
		unit, off := m.offsets.Entry(i)
		if off < line {
			loc = Location{Unit: unit, Line: line - off}
		}
	}
	return loc
}
