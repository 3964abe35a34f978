package classify

import (
	_ "embed"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

//go:embed rules.toml
var defaultRules string

// Tables is the lookup data behind the rewrite rules.
type Tables struct {
	LegacyAdvice string          `toml:"legacy_advice"`
	Imports      ImportTable     `toml:"imports"`
	Types        TypeTable       `toml:"types"`
	Symbols      []Renamed       `toml:"symbols"`
	Methods      []Renamed       `toml:"methods"`
	Literals     LiteralTable    `toml:"literals"`
	Suggestions  SuggestionTable `toml:"suggestions"`
}

type ImportTable struct {
	MissingHint string             `toml:"missing_hint"`
	Deprecated  []DeprecatedImport `toml:"deprecated"`
}

type DeprecatedImport struct {
	Package string `toml:"package"`
	Message string `toml:"message"`
	Hint    string `toml:"hint"`
}

type TypeTable struct {
	Deprecated        []string `toml:"deprecated"`
	ReplacementPrefix string   `toml:"replacement_prefix"`
}

// Renamed maps identifiers (or method signatures) that no longer exist onto
// a fixed message.
type Renamed struct {
	Names   []string `toml:"names"`
	Message string   `toml:"message"`
}

type LiteralTable struct {
	IntType    string `toml:"int_type"`
	LongSuffix string `toml:"long_suffix"`
}

// SuggestionTable maps a simple class name to its qualified import. Hints
// may reference the qualified name as {import}.
type SuggestionTable struct {
	Hints   []string          `toml:"hints"`
	Imports map[string]string `toml:"imports"`
}

// DefaultTables decodes the built-in tables.
func DefaultTables() Tables {
	t, err := ParseTables(defaultRules)
	if err != nil {
		panic(fmt.Errorf("built-in rule tables: %w", err))
	}
	return t
}

// ParseTables decodes tables from TOML text and validates them.
func ParseTables(data string) (Tables, error) {
	var t Tables
	meta, err := toml.Decode(data, &t)
	if err != nil {
		return Tables{}, err
	}
	return t, validate(meta, t)
}

// LoadTables reads tables from a TOML file.
func LoadTables(path string) (Tables, error) {
	var t Tables
	meta, err := toml.DecodeFile(path, &t)
	if err != nil {
		return Tables{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := validate(meta, t); err != nil {
		return Tables{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

func validate(meta toml.MetaData, t Tables) error {
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	if !meta.IsDefined("literals", "int_type") || strings.TrimSpace(t.Literals.IntType) == "" {
		return errors.New("missing [literals].int_type")
	}
	for i, d := range t.Imports.Deprecated {
		if d.Package == "" || d.Message == "" {
			return fmt.Errorf("imports.deprecated[%d]: package and message are required", i)
		}
	}
	for i, r := range slices.Concat(t.Symbols, t.Methods) {
		if len(r.Names) == 0 || r.Message == "" {
			return fmt.Errorf("renamed entry %d: names and message are required", i)
		}
	}
	return nil
}

// clone returns a deep copy so the classifier never shares state with callers.
func (t Tables) clone() Tables {
	out := t
	out.Imports.Deprecated = slices.Clone(t.Imports.Deprecated)
	out.Types.Deprecated = slices.Clone(t.Types.Deprecated)
	out.Symbols = cloneRenamed(t.Symbols)
	out.Methods = cloneRenamed(t.Methods)
	out.Suggestions.Hints = slices.Clone(t.Suggestions.Hints)
	out.Suggestions.Imports = maps.Clone(t.Suggestions.Imports)
	return out
}

func cloneRenamed(in []Renamed) []Renamed {
	if in == nil {
		return nil
	}
	out := make([]Renamed, len(in))
	for i, r := range in {
		out[i] = Renamed{Names: slices.Clone(r.Names), Message: r.Message}
	}
	return out
}

func renamedIndex(rs []Renamed) map[string]string {
	idx := make(map[string]string)
	for _, r := range rs {
		for _, n := range r.Names {
			idx[n] = r.Message
		}
	}
	return idx
}
