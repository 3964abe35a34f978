package posmap

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"

	"sketchc/internal/source"
)

func threeTabs() source.Assembly {
	return source.Assemble([]source.Unit{
		source.NewUnit(0, "A.pde", source.Translatable, "a0\na1\na2"),
		source.NewUnit(1, "B.pde", source.Translatable, "b0\nb1"),
		source.NewUnit(2, "C.pde", source.Translatable, "c0\nc1\nc2\nc3"),
	})
}

func TestMapCompilerLine(t *testing.T) {
	asm := threeTabs() // offsets 0, 3, 5
	m := New(asm.Offsets, 4)

	tests := []struct {
		gen  int
		want Location
	}{
		{0, Unresolved},
		{3, Unresolved},
		{4, Location{0, 0}},
		{6, Location{0, 2}},
		{7, Location{1, 0}},
		{9, Location{2, 0}},
		{12, Location{2, 3}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, m.MapCompilerLine(tt.gen), "generated line %d", tt.gen)
	}
}

func TestMapCompilerLineBelowHeaderIsUnknown(t *testing.T) {
	m := New(threeTabs().Offsets, 10)
	for g := 0; g < 10; g++ {
		loc := m.MapCompilerLine(g)
		assert.False(t, loc.Known())
		assert.Equal(t, Unresolved, loc)
	}
}

// Mapping an assembled line shifted by the header gives back the unit line.
func TestMapCompilerLineLeftInverse(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 11))
	for iter := 0; iter < 100; iter++ {
		n := 1 + rng.IntN(5)
		units := make([]source.Unit, n)
		for i := range units {
			lines := 1 + rng.IntN(6)
			text := ""
			for l := 0; l < lines; l++ {
				if l > 0 {
					text += "\n"
				}
				text += "x"
			}
			units[i] = source.NewUnit(i, "u.pde", source.Translatable, text)
		}
		asm := source.Assemble(units)
		header := rng.IntN(20)
		m := New(asm.Offsets, header)

		for _, u := range units {
			off, _ := asm.Offsets.Offset(u.Index)
			for l := 0; l < u.Lines; l++ {
				got := m.MapCompilerLine(off + l + header)
				assert.Equal(t, Location{u.Index, l}, got, "iter %d", iter)
			}
		}
	}
}

func TestMapParserLine(t *testing.T) {
	m := New(threeTabs().Offsets, 0) // offsets 0, 3, 5

	assert.Equal(t, Location{0, 0}, m.MapParserLine(1))
	assert.Equal(t, Location{0, 2}, m.MapParserLine(3))
	assert.Equal(t, Location{1, 0}, m.MapParserLine(4))
	assert.Equal(t, Location{2, 1}, m.MapParserLine(7))
	// Nothing precedes the concatenation; the main unit absorbs it.
	assert.Equal(t, Location{0, -1}, m.MapParserLine(0))
}

func TestMapTokenizerLine(t *testing.T) {
	m := New(threeTabs().Offsets, 0) // offsets 0, 3, 5

	assert.Equal(t, Location{0, 0}, m.MapTokenizerLine(0))
	// Strict comparison: the first line of a unit is still attributed to the
	// preceding one.
	assert.Equal(t, Location{0, 3}, m.MapTokenizerLine(3))
	assert.Equal(t, Location{1, 1}, m.MapTokenizerLine(4))
	assert.Equal(t, Location{1, 2}, m.MapTokenizerLine(5))
	assert.Equal(t, Location{2, 1}, m.MapTokenizerLine(6))
}

func TestEmptyTable(t *testing.T) {
	m := New(source.OffsetTable{}, 2)
	assert.Equal(t, Location{0, 3}, m.MapCompilerLine(5))
	assert.Equal(t, Location{0, 4}, m.MapParserLine(5))
	assert.Equal(t, Location{0, 5}, m.MapTokenizerLine(5))
	assert.Equal(t, 2, m.HeaderOffset())
}
