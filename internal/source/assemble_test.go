package source

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembleSkipsPassThrough(t *testing.T) {
	units := []Unit{
		NewUnit(0, "Main.pde", Translatable, "void setup() {\n}"),
		NewUnit(1, "Helper.java", PassThrough, "class Helper {}"),
		NewUnit(2, "Draw.pde", Translatable, "void draw() {}"),
	}
	asm := Assemble(units)

	assert.Equal(t, "void setup() {\n}\nvoid draw() {}\n", asm.Text)
	assert.Equal(t, 2, asm.Offsets.Len())
	assert.Equal(t, []int{0, 2}, asm.Offsets.Units())

	off, ok := asm.Offsets.Offset(2)
	require.True(t, ok)
	assert.Equal(t, 2, off)

	_, ok = asm.Offsets.Offset(1)
	assert.False(t, ok, "pass-through unit must not have an offset")
	assert.Equal(t, 3, LineCount(asm.Text)-1)
}

func TestAssembleEmpty(t *testing.T) {
	asm := Assemble(nil)
	assert.Empty(t, asm.Text)
	assert.Zero(t, asm.Offsets.Len())
}

func TestNewOffsetTablePanicsOnDisorder(t *testing.T) {
	assert.Panics(t, func() { NewOffsetTable([]int{0, 1}, []int{3, 1}) })
	assert.Panics(t, func() { NewOffsetTable([]int{0}, []int{0, 1}) })
}

// Each unit's text begins exactly at its recorded offset and the units
// appear in order.
func TestAssembleOffsetProperty(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	for iter := 0; iter < 200; iter++ {
		n := 1 + rng.IntN(6)
		units := make([]Unit, n)
		for i := range units {
			kind := Translatable
			if i > 0 && rng.IntN(4) == 0 {
				kind = PassThrough
			}
			units[i] = NewUnit(i, "t.pde", kind, randomText(rng))
		}
		asm := Assemble(units)
		lines := strings.Split(asm.Text, "\n")

		var want []int
		for _, u := range units {
			if u.Kind != Translatable {
				continue
			}
			want = append(want, u.Index)
			off, ok := asm.Offsets.Offset(u.Index)
			require.True(t, ok)
			unitLines := strings.Split(u.Text, "\n")
			got := lines[off : off+len(unitLines)]
			if diff := cmp.Diff(unitLines, got); diff != "" {
				t.Fatalf("iter %d unit %d mismatch (-want +got):\n%s", iter, u.Index, diff)
			}
		}
		assert.Equal(t, want, asm.Offsets.Units())
	}
}

func randomText(rng *rand.Rand) string {
	const alphabet = "ab{}();\n "
	n := rng.IntN(40)
	var b strings.Builder
	for range n {
		b.WriteByte(alphabet[rng.IntN(len(alphabet))])
	}
	return b.String()
}
