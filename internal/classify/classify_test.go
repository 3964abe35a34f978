package classify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sketchc/internal/diag"
)

const advice = "This code needs to be updated for this version of Processing, please read the Changes page on the Wiki."

func TestClassify(t *testing.T) {
	c := Default()

	tests := []struct {
		name string
		msg  string
		want Classification
	}{
		{
			name: "missing package",
			msg:  "The import foo.bar cannot be resolved",
			want: Classification{
				Category: UnresolvedImport,
				Code:     diag.CmpMissingPackage,
				Message:  `The package "foo.bar" does not exist. You might be missing a library.`,
				Hints: []string{
					"Libraries must be installed in a folder named 'libraries' inside the sketchbook folder (see the Preferences window).",
				},
			},
		},
		{
			name: "deprecated package",
			msg:  "The import processing.xml cannot be resolved",
			want: Classification{
				Category: UnresolvedImport,
				Code:     diag.CmpLegacyAPI,
				Message:  "processing.xml no longer exists, this code needs to be updated for 2.0.",
				Hints:    []string{"The processing.xml library has been replaced with a new 'XML' class that's built-in."},
				Notice:   &Notice{Token: "processing.xml", Message: advice},
			},
		},
		{
			name: "deprecated type",
			msg:  "BImage cannot be resolved to a type",
			want: Classification{
				Category: UnresolvedType,
				Code:     diag.CmpLegacyAPI,
				Message:  "BImage has been replaced with PImage",
				Notice:   &Notice{Token: "BImage", Message: advice},
			},
		},
		{
			name: "unknown type with suggestion",
			msg:  "Arrays cannot be resolved to a type",
			want: Classification{
				Category: UnresolvedType,
				Code:     diag.CmpUnknownType,
				Message:  `Cannot find a class or type named "Arrays"`,
				Hints: []string{
					`You may need to add "import java.util.Arrays;" to the top of your sketch.`,
					"To make sketches more portable, imports that are not part of the Processing API were removed in Processing 2.",
					"See the changes page for more information: https://github.com/processing/processing/wiki/Changes",
				},
			},
		},
		{
			name: "renamed identifier",
			msg:  "framerate cannot be resolved",
			want: Classification{
				Category: UnresolvedSymbol,
				Code:     diag.CmpLegacyAPI,
				Message:  "framerate should be changed to frameRate.",
				Notice:   &Notice{Token: "framerate", Message: advice},
			},
		},
		{
			name: "unknown identifier",
			msg:  "foo cannot be resolved",
			want: Classification{
				Category: UnresolvedSymbol,
				Code:     diag.CmpUnknownSymbol,
				Message:  `Cannot find anything named "foo"`,
			},
		},
		{
			name: "duplicate",
			msg:  "Duplicate local variable x",
			want: Classification{
				Category:   DuplicateDeclaration,
				Code:       diag.CmpDuplicate,
				Message:    "Duplicate local variable x",
				Suppressed: true,
			},
		},
		{
			name: "int literal",
			msg:  "The literal 99999999999 of type int is out of range",
			want: Classification{
				Category: LiteralOutOfRange,
				Code:     diag.CmpLiteralRange,
				Message:  "The type int can't handle numbers that big. Try 99999999999L to upgrade to long.",
			},
		},
		{
			name: "long literal",
			msg:  "The literal 999999999999999999999L of type long is out of range",
			want: Classification{
				Category: LiteralOutOfRange,
				Code:     diag.CmpLiteralRange,
				Message:  "Even the type long can't handle 999999999999999999999L. Research big numbers in Java.",
			},
		},
		{
			name: "renamed method",
			msg:  "The method push() is undefined for the type Sketch",
			want: Classification{
				Category: UndefinedMethod,
				Code:     diag.CmpLegacyAPI,
				Message:  "push() no longer exists, use pushMatrix() instead.",
				Notice:   &Notice{Token: "push()", Message: advice},
			},
		},
		{
			name: "undefined method",
			msg:  "The method wobble(String, int) is undefined for the type Sketch",
			want: Classification{
				Category: UndefinedMethod,
				Code:     diag.CmpUndefinedMethod,
				Message:  "The function wobble(String, int) does not exist.",
			},
		},
		{
			name: "fallback",
			msg:  "Syntax error on token \"else\", delete this token",
			want: Classification{
				Category: Fallback,
				Code:     diag.CmpError,
				Message:  "Syntax error on token \"else\", delete this token",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.msg)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Classify(%q) mismatch (-want +got):\n%s", tt.msg, diff)
			}
		})
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	c := Default()
	msgs := []string{
		"The import processing.xml cannot be resolved",
		"screenWidth cannot be resolved",
		"The method framerate(int) is undefined for the type X",
		"whatever",
	}
	for _, m := range msgs {
		first := c.Classify(m)
		for range 5 {
			assert.Equal(t, first, c.Classify(m))
		}
		assert.Equal(t, first, Default().Classify(m), "fresh classifier over the same tables")
	}
}

func TestImportPrecedesSymbol(t *testing.T) {
	// Both the import and the bare-symbol patterns match; the import wins.
	got := Default().Classify("The import a.b cannot be resolved")
	assert.Equal(t, UnresolvedImport, got.Category)
}

func TestNewCopiesTables(t *testing.T) {
	tables := DefaultTables()
	c := New(tables)
	tables.Suggestions.Imports["Arrays"] = "mutated.Arrays"
	tables.Symbols[0].Message = "mutated"

	got := c.Classify("Arrays cannot be resolved to a type")
	assert.Contains(t, got.Hints[0], "java.util.Arrays")
	assert.Equal(t, "LINE_LOOP and LINE_STRIP are not available, please update your code.",
		c.Classify("LINE_STRIP cannot be resolved").Message)
}

func TestRulesOrder(t *testing.T) {
	var cats []Category
	for _, r := range Default().Rules() {
		cats = append(cats, r.Category)
	}
	assert.Equal(t, []Category{
		UnresolvedImport, UnresolvedType, UnresolvedSymbol,
		DuplicateDeclaration, LiteralOutOfRange, UndefinedMethod,
	}, cats)
}

func TestLoadTables(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "rules.toml")
	require.NoError(t, os.WriteFile(good, []byte(`
[literals]
int_type = "int"
long_suffix = "L"

[[symbols]]
names = ["wobble"]
message = "wobble is gone."
`), 0o644))
	tables, err := LoadTables(good)
	require.NoError(t, err)
	got := New(tables).Classify("wobble cannot be resolved")
	assert.Equal(t, "wobble is gone.", got.Message)
	require.NotNil(t, got.Notice)
	assert.Equal(t, "wobble", got.Notice.Token)

	unknown := filepath.Join(dir, "unknown.toml")
	require.NoError(t, os.WriteFile(unknown, []byte("[literals]\nint_type = \"int\"\nbogus = 1\n"), 0o644))
	_, err = LoadTables(unknown)
	assert.ErrorContains(t, err, "unknown keys: literals.bogus")

	missing := filepath.Join(dir, "missing.toml")
	require.NoError(t, os.WriteFile(missing, []byte("legacy_advice = \"x\"\n"), 0o644))
	_, err = LoadTables(missing)
	assert.ErrorContains(t, err, "int_type")
}
