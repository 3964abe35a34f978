// Package classify rewrites raw compiler messages into sketch-oriented ones.
//
// A Classifier holds an ordered list of rules built once from Tables. The
// first rule whose pattern matches the message wins; a message nothing
// matches passes through unchanged. Some rewrites flag code written against
// an older API, reported as a Notice for the UI to show.
package classify

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"sketchc/internal/diag"
)

type Category uint8

const (
	Fallback Category = iota
	UnresolvedImport
	UnresolvedType
	UnresolvedSymbol
	DuplicateDeclaration
	LiteralOutOfRange
	UndefinedMethod
)

func (c Category) String() string {
	switch c {
	case UnresolvedImport:
		return "unresolved-import"
	case UnresolvedType:
		return "unresolved-type"
	case UnresolvedSymbol:
		return "unresolved-symbol"
	case DuplicateDeclaration:
		return "duplicate-declaration"
	case LiteralOutOfRange:
		return "numeric-literal-out-of-range"
	case UndefinedMethod:
		return "undefined-method"
	}
	return "fallback"
}

// Notice flags code that uses a removed API. Token is the offending name.
type Notice struct {
	Token   string
	Message string
}

// Classification is the outcome of running a message through the rules.
type Classification struct {
	Category   Category
	Code       diag.Code
	Message    string
	Suppressed bool
	Hints      []string
	Notice     *Notice
}

// Rule is one entry of the ordered table.
type Rule struct {
	Category Category
	Pattern  *regexp.Regexp
	rewrite  func(m []string) Classification
}

// Classifier is immutable after New and safe for concurrent use.
type Classifier struct {
	rules  []Rule
	tables Tables
}

// New builds the rule list from a private copy of t.
func New(t Tables) *Classifier {
	t = t.clone()
	c := &Classifier{tables: t}
	c.rules = c.buildRules()
	return c
}

// Default returns a classifier over the built-in tables.
func Default() *Classifier { return New(DefaultTables()) }

// Rules returns the rules in precedence order.
func (c *Classifier) Rules() []Rule { return slices.Clone(c.rules) }

// Classify rewrites msg. It only looks at the message text, never at the
// surrounding log line.
func (c *Classifier) Classify(msg string) Classification {
	for _, r := range c.rules {
		if m := r.Pattern.FindStringSubmatch(msg); m != nil {
			out := r.rewrite(m)
			out.Category = r.Category
			return out
		}
	}
	return Classification{Category: Fallback, Code: diag.CmpError, Message: msg}
}

func (c *Classifier) buildRules() []Rule {
	t := c.tables
	deprecatedTypes := make(map[string]bool, len(t.Types.Deprecated))
	for _, name := range t.Types.Deprecated {
		deprecatedTypes[name] = true
	}
	symbols := renamedIndex(t.Symbols)
	methods := renamedIndex(t.Methods)

	return []Rule{
		{
			Category: UnresolvedImport,
			Pattern:  regexp.MustCompile(`^The import (.+) cannot be resolved$`),
			rewrite: func(m []string) Classification {
				pkg := m[1]
				for _, d := range t.Imports.Deprecated {
					if d.Package == pkg {
						return c.legacy(pkg, d.Message, d.Hint)
					}
				}
				hints := []string{t.Imports.MissingHint}
				hints = append(hints, c.suggest(lastSegment(pkg))...)
				return Classification{
					Code:    diag.CmpMissingPackage,
					Message: fmt.Sprintf("The package \"%s\" does not exist. You might be missing a library.", pkg),
					Hints:   nonEmpty(hints),
				}
			},
		},
		{
			Category: UnresolvedType,
			Pattern:  regexp.MustCompile(`^(\S+)\s.*cannot be resolved to a type$`),
			rewrite: func(m []string) Classification {
				what := m[1]
				if deprecatedTypes[what] {
					msg := what + " has been replaced with " + t.Types.ReplacementPrefix + what[1:]
					return c.legacy(what, msg)
				}
				return Classification{
					Code:    diag.CmpUnknownType,
					Message: fmt.Sprintf("Cannot find a class or type named \"%s\"", what),
					Hints:   c.suggest(what),
				}
			},
		},
		{
			Category: UnresolvedSymbol,
			Pattern:  regexp.MustCompile(`^(\S+)\s.*cannot be resolved$`),
			rewrite: func(m []string) Classification {
				what := m[1]
				if msg, ok := symbols[what]; ok {
					return c.legacy(what, msg)
				}
				return Classification{
					Code:    diag.CmpUnknownSymbol,
					Message: fmt.Sprintf("Cannot find anything named \"%s\"", what),
				}
			},
		},
		{
			Category: DuplicateDeclaration,
			Pattern:  regexp.MustCompile(`^Duplicate.*`),
			rewrite: func(m []string) Classification {
				return Classification{Code: diag.CmpDuplicate, Message: m[0], Suppressed: true}
			},
		},
		{
			Category: LiteralOutOfRange,
			Pattern:  regexp.MustCompile(`literal (\S*) of type (\S*) is out of range`),
			rewrite: func(m []string) Classification {
				lit, typ := m[1], m[2]
				if typ == t.Literals.IntType {
					return Classification{
						Code: diag.CmpLiteralRange,
						Message: fmt.Sprintf("The type %s can't handle numbers that big. Try %s%s to upgrade to long.",
							typ, lit, t.Literals.LongSuffix),
					}
				}
				return Classification{
					Code:    diag.CmpLiteralRange,
					Message: fmt.Sprintf("Even the type %s can't handle %s. Research big numbers in Java.", typ, lit),
				}
			},
		},
		{
			Category: UndefinedMethod,
			Pattern:  regexp.MustCompile(`The method (\S+\(.*\)) is undefined for the type (.*)`),
			rewrite: func(m []string) Classification {
				sig := m[1]
				if msg, ok := methods[sig]; ok {
					return c.legacy(sig, msg)
				}
				return Classification{
					Code:    diag.CmpUndefinedMethod,
					Message: "The function " + sig + " does not exist.",
				}
			},
		},
	}
}

func (c *Classifier) legacy(token, msg string, hints ...string) Classification {
	return Classification{
		Code:    diag.CmpLegacyAPI,
		Message: msg,
		Hints:   nonEmpty(hints),
		Notice:  &Notice{Token: token, Message: c.tables.LegacyAdvice},
	}
}

func (c *Classifier) suggest(name string) []string {
	qualified, ok := c.tables.Suggestions.Imports[name]
	if !ok {
		return nil
	}
	hints := make([]string, 0, len(c.tables.Suggestions.Hints))
	for _, h := range c.tables.Suggestions.Hints {
		hints = append(hints, strings.ReplaceAll(h, "{import}", qualified))
	}
	return hints
}

func lastSegment(pkg string) string {
	if i := strings.LastIndexByte(pkg, '.'); i >= 0 {
		return pkg[i+1:]
	}
	return pkg
}

func nonEmpty(in []string) []string {
	var out []string
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
