package compilelog

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Pattern recognizes the first line of a compiler diagnostic:
//
//	[dir/]Name.java:LINE: category: message
//
// The category is greedy, so with several colons the message is the text
// after the last one. Directory prefixes may carry a drive letter but no
// other colon.
type Pattern struct {
	parser *participle.Parser[recordLine]
	exts   []string
}

// recordLine is the grammar of a record's first line. Rest keeps every token
// after the line number, colons included, so the category/message split can
// be made on the last colon.
type recordLine struct {
	Path string   `parser:"@Path"`
	Line string   `parser:"':' @Number"`
	Rest []string `parser:"':' (@Colon | @Seg)+"`
}

// DefaultPattern accepts .java file names.
var DefaultPattern = NewPattern("java")

// NewPattern builds a pattern for the given source extensions (without dot).
func NewPattern(exts ...string) *Pattern {
	if len(exts) == 0 {
		exts = []string{"java"}
	}
	quoted := make([]string, len(exts))
	for i, e := range exts {
		quoted[i] = regexp.QuoteMeta(strings.TrimPrefix(e, "."))
	}
	path := fmt.Sprintf(`(?:[A-Za-z]:)?(?:[^:\n]*[/\\])?\w+\.(?:%s)`, strings.Join(quoted, "|"))

	def := lexer.MustStateful(lexer.Rules{
		"Root": {
			{Name: "Path", Pattern: path, Action: lexer.Push("Head")},
		},
		"Head": {
			{Name: "Colon", Pattern: `:`},
			{Name: "Number", Pattern: `[1-9]\d*`, Action: lexer.Push("Tail")},
		},
		"Tail": {
			{Name: "Colon", Pattern: `:`},
			{Name: "Seg", Pattern: `[^:\n]+`},
		},
	})
	return &Pattern{
		parser: participle.MustBuild[recordLine](participle.Lexer(def)),
		exts:   append([]string(nil), exts...),
	}
}

// Extensions returns the accepted extensions.
func (p *Pattern) Extensions() []string {
	return append([]string(nil), p.exts...)
}

type match struct {
	file     string
	line     string
	category string
	message  string
}

func (p *Pattern) match(line string) (match, bool) {
	rec, err := p.parser.ParseString("", line)
	if err != nil {
		return match{}, false
	}
	rest := strings.Join(rec.Rest, "")
	cut := strings.LastIndexByte(rest, ':')
	if cut < 0 {
		return match{}, false
	}
	file := rec.Path
	if i := strings.LastIndexAny(file, `/\`); i >= 0 {
		file = file[i+1:]
	}
	return match{
		file:     file,
		line:     rec.Line,
		category: strings.TrimLeft(rest[:cut], " \t\f\r"),
		message:  strings.TrimSpace(rest[cut+1:]),
	}, true
}
