package braces

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sketchc/internal/source"
)

func TestScan(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   Mismatch
		wantOK bool
	}{
		{"empty", "", Mismatch{}, false},
		{"balanced", "void f() { if (x) { y(); } }", Mismatch{}, false},
		{"lone open", "{", Mismatch{ExtraOpen, 0}, true},
		{"lone close", "}", Mismatch{ExtraClose, 0}, true},
		{"last unmatched open", "{ { } {", Mismatch{ExtraOpen, 6}, true},
		{"close before open", "a } {", Mismatch{ExtraClose, 2}, true},
		{"nested open", "{ {\n}", Mismatch{ExtraOpen, 0}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Scan(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScrubIgnoresLiteralsAndComments(t *testing.T) {
	inputs := []string{
		`String s = "{"; char c = '}';`,
		"// }\nint x;",
		"/* { { */ int y;",
		`String q = "\"{";`,
		"String b = \"\"\"\n  }\n\"\"\";",
	}
	for _, in := range inputs {
		out := Scrub(in)
		assert.Len(t, out, len(in), "length of %q", in)
		_, ok := Scan(out)
		assert.False(t, ok, "unexpected mismatch in %q", in)
	}
}

func TestScrubKeepsNewlines(t *testing.T) {
	in := "/* a\nb */ x\n\"s\""
	out := Scrub(in)
	assert.Equal(t, "    \n     x\n\" \"", out)
}

func TestScrubUnterminatedString(t *testing.T) {
	out := Scrub("\"abc\n}")
	m, ok := Scan(out)
	require.True(t, ok)
	assert.Equal(t, ExtraClose, m.Kind)
}

func TestPosition(t *testing.T) {
	text := "ab\nçd{\n"
	line, col := Position(text, 6)
	assert.Equal(t, 1, line)
	assert.Equal(t, 2, col)

	line, col = Position(text, 100)
	assert.Equal(t, 2, line)
	assert.Equal(t, 0, col)
}

func TestScanUnitsFirstWins(t *testing.T) {
	units := []source.Unit{
		source.NewUnit(0, "A.pde", source.Translatable, "void setup() {\n}\n"),
		source.NewUnit(1, "B.java", source.PassThrough, "class B {"),
		source.NewUnit(2, "C.pde", source.Translatable, "void draw() {\n  if (x) {\n}\n"),
		source.NewUnit(3, "D.pde", source.Translatable, "}"),
	}
	m, ok := ScanUnits(units)
	require.True(t, ok)
	assert.Equal(t, 2, m.Unit)
	assert.Equal(t, ExtraOpen, m.Kind)
	assert.Equal(t, 0, m.Line)
	assert.Equal(t, 12, m.Column)
	assert.Equal(t, "Found an extra { character without a } to match it.", m.Kind.Message())
}
