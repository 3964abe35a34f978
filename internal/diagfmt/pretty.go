package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"sketchc/internal/diag"
	"sketchc/internal/source"
)

const tabWidth = 4

type palette struct {
	err, warn, info, note, gutter, caret *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgGreen),
		gutter: color.New(color.FgBlue, color.Bold),
		caret:  color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.gutter, p.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty prints each diagnostic of bag in the form
//
//	error[CMP3003]: The variable "x" does not exist
//	  --> Draw.pde:3:5
//	   |
//	 3 |   x = 1;
//	   |   ^
//	   = note: ...
//
// Unresolved diagnostics print no location. Bag order is kept; call
// bag.Sort() first for a stable listing.
func Pretty(w io.Writer, bag *diag.Bag, sk *source.Sketch, opts PrettyOpts) error {
	pal := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := prettyOne(w, d, sk, opts, pal); err != nil {
			return err
		}
	}
	return nil
}

func prettyOne(w io.Writer, d diag.Diagnostic, sk *source.Sketch, opts PrettyOpts, pal palette) error {
	var b strings.Builder
	sev := strings.ToLower(d.Severity.String())
	b.WriteString(pal.severity(d.Severity).Sprintf("%s[%s]", sev, d.Code.ID()))
	b.WriteString(": ")
	b.WriteString(d.Message)
	b.WriteByte('\n')

	var lines []numberedLine
	if d.Known() {
		for l := max(d.Line-opts.Context, 0); l <= d.Line; l++ {
			if text, ok := sourceLine(sk, d.Unit, l); ok {
				lines = append(lines, numberedLine{no: l + 1, text: expandTabs(text)})
			}
		}
	}
	gutterWidth := 1
	if n := len(lines); n > 0 {
		gutterWidth = len(strconv.Itoa(lines[n-1].no))
	}
	pad := strings.Repeat(" ", gutterWidth)

	if d.Known() {
		loc := fmt.Sprintf("%s:%d", unitPath(sk, d.Unit, opts.PathMode, opts.BaseDir), d.Line+1)
		if d.Column >= 0 {
			loc += ":" + strconv.Itoa(d.Column+1)
		}
		fmt.Fprintf(&b, "%s%s %s\n", pad, pal.gutter.Sprint("-->"), loc)
	}

	if len(lines) > 0 {
		bar := pal.gutter.Sprint("|")
		fmt.Fprintf(&b, "%s %s\n", pad, bar)
		for _, ln := range lines {
			fmt.Fprintf(&b, "%s %s %s\n", pal.gutter.Sprintf("%*d", gutterWidth, ln.no), bar, ln.text)
		}
		if d.Column >= 0 {
			raw, _ := sourceLine(sk, d.Unit, d.Line)
			fmt.Fprintf(&b, "%s %s %s%s\n", pad, bar, strings.Repeat(" ", caretOffset(raw, d.Column)), pal.caret.Sprint("^"))
		}
	}

	if opts.ShowNotes {
		for _, n := range d.Notes {
			fmt.Fprintf(&b, "%s %s %s %s\n", pad, pal.gutter.Sprint("="), pal.note.Sprint("note:"), n.Msg)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

type numberedLine struct {
	no   int
	text string
}

// caretOffset is the display width of the first col runes of line.
func caretOffset(line string, col int) int {
	runes := []rune(line)
	if col > len(runes) {
		col = len(runes)
	}
	return runewidth.StringWidth(expandTabs(string(runes[:col])))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}
