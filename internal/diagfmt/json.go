package diagfmt

import (
	"encoding/json"
	"io"

	"sketchc/internal/diag"
	"sketchc/internal/source"
)

// LocationJSON is the position of a diagnostic. Line and Column are 1-based;
// Column is omitted when unknown.
type LocationJSON struct {
	File   string `json:"file" msgpack:"file"`
	Unit   int    `json:"unit" msgpack:"unit"`
	Line   int    `json:"line" msgpack:"line"`
	Column int    `json:"column,omitempty" msgpack:"column,omitempty"`
}

// DiagnosticJSON is the wire form of a diagnostic.
type DiagnosticJSON struct {
	Severity string        `json:"severity" msgpack:"severity"`
	Code     string        `json:"code" msgpack:"code"`
	Kind     string        `json:"kind" msgpack:"kind"`
	Title    string        `json:"title" msgpack:"title"`
	Message  string        `json:"message" msgpack:"message"`
	Location *LocationJSON `json:"location,omitempty" msgpack:"location,omitempty"`
	Notes    []string      `json:"notes,omitempty" msgpack:"notes,omitempty"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics" msgpack:"diagnostics"`
	Count       int              `json:"count" msgpack:"count"`
}

// BuildDiagnosticsOutput формирует структуру вывода без сериализации.
func BuildDiagnosticsOutput(bag *diag.Bag, sk *source.Sketch, opts JSONOpts) DiagnosticsOutput {
	items := bag.Items()
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}
	out := DiagnosticsOutput{Diagnostics: make([]DiagnosticJSON, 0, len(items))}
	for _, d := range items {
		dj := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Kind:     d.Kind().String(),
			Title:    d.Code.Title(),
			Message:  d.Message,
		}
		if d.Known() {
			dj.Location = &LocationJSON{
				File:   unitPath(sk, d.Unit, opts.PathMode, opts.BaseDir),
				Unit:   d.Unit,
				Line:   d.Line + 1,
				Column: max(d.Column, -1) + 1,
			}
		}
		if opts.IncludeNotes {
			for _, n := range d.Notes {
				dj.Notes = append(dj.Notes, n.Msg)
			}
		}
		out.Diagnostics = append(out.Diagnostics, dj)
	}
	out.Count = len(out.Diagnostics)
	return out
}

// JSON writes the diagnostics of bag as indented JSON.
func JSON(w io.Writer, bag *diag.Bag, sk *source.Sketch, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildDiagnosticsOutput(bag, sk, opts))
}
