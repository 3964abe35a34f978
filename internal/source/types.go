package source

import "strings"

type (
	// Kind tells how a unit reaches the compiler.
	Kind uint8
	// Flags encodes metadata about how a unit's text was loaded.
	Flags uint8
)

const (
	// Translatable units are concatenated and run through the preprocessor.
	Translatable Kind = iota
	// PassThrough units are handed to the compiler as-is.
	PassThrough
)

const (
	// FlagHadBOM marks text that started with a UTF-8 byte order mark.
	FlagHadBOM Flags = 1 << iota
	// FlagNormalizedCRLF marks text whose CRLF line endings were rewritten
	// to LF, so line numbers count LF only.
	FlagNormalizedCRLF
)

func (k Kind) String() string {
	switch k {
	case Translatable:
		return "translatable"
	case PassThrough:
		return "pass-through"
	}
	return "unknown"
}

// Unit is one ordered source fragment (a tab) of a sketch.
type Unit struct {
	Index int
	Name  string // file name, e.g. "Particles.pde"
	Kind  Kind
	Text  string
	Lines int
	Flags Flags
}

// NewUnit builds a unit and computes its line count.
func NewUnit(index int, name string, kind Kind, text string) Unit {
	return Unit{
		Index: index,
		Name:  name,
		Kind:  kind,
		Text:  text,
		Lines: LineCount(text),
	}
}

// LineCount returns the number of lines the text occupies once a trailing
// newline is appended: every '\n' starts a new line.
func LineCount(text string) int {
	return strings.Count(text, "\n") + 1
}
