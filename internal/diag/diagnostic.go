package diag

import "fmt"

type Note struct {
	Msg string
}

type Diagnostic struct {
	Severity          Severity
	Code              Code
	Message           string
	Unit              int
	Line              int
	Column            int
	StackTraceVisible bool
	Notes             []Note
}

// New creates an error diagnostic at the given location.
func New(code Code, unit, line, col int, msg string) Diagnostic {
	return Diagnostic{
		Severity: SevError,
		Code:     code,
		Message:  msg,
		Unit:     unit,
		Line:     line,
		Column:   col,
	}
}

// Unresolved creates an error diagnostic attributed to unit 0 with no line.
func Unresolved(code Code, msg string) Diagnostic {
	return New(code, 0, -1, -1, msg)
}

// Known reports whether the diagnostic carries a line.
func (d Diagnostic) Known() bool { return d.Line >= 0 }

func (d Diagnostic) WithNote(msg string) Diagnostic {
	d.Notes = append(append([]Note(nil), d.Notes...), Note{Msg: msg})
	return d
}

func (d Diagnostic) WithSeverity(sev Severity) Diagnostic {
	d.Severity = sev
	return d
}

// Kind returns the taxonomy bucket of the diagnostic's code.
func (d Diagnostic) Kind() Kind { return d.Code.Kind() }

func (d Diagnostic) String() string {
	if !d.Known() {
		return fmt.Sprintf("%s unit %d: %s", d.Code.ID(), d.Unit, d.Message)
	}
	return fmt.Sprintf("%s unit %d:%d:%d: %s", d.Code.ID(), d.Unit, d.Line+1, d.Column+1, d.Message)
}
