// Package translate turns every kind of build failure into the single
// Diagnostic shown to the user.
package translate

import (
	"fmt"
	"io"

	"golang.org/x/text/message"

	"sketchc/internal/classify"
	"sketchc/internal/compilelog"
	"sketchc/internal/diag"
	"sketchc/internal/posmap"
	"sketchc/internal/source"
)

// Translator carries the per-build context needed to locate and rewrite
// failures. It is created fresh for every build.
type Translator struct {
	Sketch        *source.Sketch
	Mapper        posmap.Mapper
	GeneratedFile string
	Classifier    *classify.Classifier
	Pattern       *compilelog.Pattern
	// Console receives unparsed log text, hints and notices verbatim.
	Console io.Writer
	Printer *message.Printer
	// OnNotice is called when code uses a removed API. Without it the
	// notice is printed to Console.
	OnNotice func(classify.Notice)
}

// Translate returns the diagnostic for f. ok is false when f carries nothing
// actionable, e.g. a compile log with only suppressed records.
func (t *Translator) Translate(f Failure) (d diag.Diagnostic, ok bool) {
	switch f := f.(type) {
	case Structural:
		d = t.structural(f)
	case Tokenization:
		d = t.tokenization(f)
	case CompileLog:
		return t.compileLog(f)
	case WriteFailure:
		code := diag.IOWriteFailed
		if f.Copy {
			code = diag.IOCopyFailed
		}
		msg := f.Message
		if msg == "" {
			msg = "Could not write " + f.Path
		}
		d = diag.Unresolved(code, msg)
	default:
		return diag.Diagnostic{}, false
	}
	d.StackTraceVisible = false
	return d, true
}

func (t *Translator) console() io.Writer {
	if t.Console == nil {
		return io.Discard
	}
	return t.Console
}

func (t *Translator) printer() *message.Printer {
	if t.Printer == nil {
		return NewPrinter("en")
	}
	return t.Printer
}

func (t *Translator) classifier() *classify.Classifier {
	if t.Classifier == nil {
		t.Classifier = classify.Default()
	}
	return t.Classifier
}

// notice hands n to OnNotice, or prints it to the console when no hook is
// set. It is shown once either way.
func (t *Translator) notice(n classify.Notice) {
	if t.OnNotice != nil {
		t.OnNotice(n)
		return
	}
	fmt.Fprintln(t.console(), n.Message)
}
