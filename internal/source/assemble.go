package source

import (
	"fmt"
	"strings"
)

// OffsetTable maps a translatable unit's index to the 0-based line at which
// its text starts in the concatenated buffer. Entries are ordered by unit
// index and offsets never decrease.
type OffsetTable struct {
	units   []int
	offsets []int
}

// NewOffsetTable builds a table from parallel unit/offset slices.
// It panics if the slices disagree in length or are not ordered.
func NewOffsetTable(units, offsets []int) OffsetTable {
	if len(units) != len(offsets) {
		panic(fmt.Errorf("offset table: %d units, %d offsets", len(units), len(offsets)))
	}
	for i := 1; i < len(units); i++ {
		if units[i] <= units[i-1] || offsets[i] < offsets[i-1] {
			panic(fmt.Errorf("offset table: entry %d out of order", i))
		}
	}
	return OffsetTable{
		units:   append([]int(nil), units...),
		offsets: append([]int(nil), offsets...),
	}
}

// Len returns the number of entries.
func (t OffsetTable) Len() int { return len(t.units) }

// Entry returns the i-th entry in unit order.
func (t OffsetTable) Entry(i int) (unit, offset int) {
	return t.units[i], t.offsets[i]
}

// Offset returns the offset of the given unit, if it is in the table.
func (t OffsetTable) Offset(unit int) (int, bool) {
	for i, u := range t.units {
		if u == unit {
			return t.offsets[i], true
		}
	}
	return 0, false
}

// Units returns a copy of the unit indices in table order.
func (t OffsetTable) Units() []int {
	return append([]int(nil), t.units...)
}

// Assembly is the output of Assemble: the concatenated text and its offsets.
type Assembly struct {
	Text    string
	Offsets OffsetTable
}

// Assemble concatenates the translatable units in order, each followed by a
// newline, and records the line at which each one starts. Pass-through units
// are skipped.
func Assemble(units []Unit) Assembly {
	var (
		b       strings.Builder
		total   int
		idx     = make([]int, 0, len(units))
		offsets = make([]int, 0, len(units))
	)
	for _, u := range units {
		if u.Kind != Translatable {
			continue
		}
		idx = append(idx, u.Index)
		offsets = append(offsets, total)
		b.WriteString(u.Text)
		b.WriteByte('\n')
		lines := u.Lines
		if lines == 0 {
			lines = LineCount(u.Text)
		}
		total += lines
	}
	return Assembly{
		Text:    b.String(),
		Offsets: NewOffsetTable(idx, offsets),
	}
}

// AssembleSketch assembles the sketch's translatable units.
func AssembleSketch(s *Sketch) Assembly {
	if s == nil {
		return Assembly{}
	}
	return Assemble(s.Units)
}
