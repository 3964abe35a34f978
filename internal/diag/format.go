package diag

import (
	"fmt"
	"strings"
)

// UnitNamer resolves a unit index to a display name. *source.Sketch implements it.
type UnitNamer interface {
	UnitName(i int) string
}

// FormatShort renders diagnostics one per line in a stable form:
//
//	error CMP3003 Particles.pde:12:5 Cannot find anything named "foo"
//
// Line and column are printed 1-based; unknown positions print as 0.
// Notes follow on their own "note" lines when includeNotes is set.
func FormatShort(diags []Diagnostic, names UnitNamer, includeNotes bool) string {
	var b strings.Builder
	for i, d := range diags {
		if i > 0 {
			b.WriteByte('\n')
		}
		path := unitPath(names, d.Unit)
		fmt.Fprintf(&b, "%s %s %s:%d:%d %s",
			severityLabel(d.Severity), d.Code.ID(), path, d.Line+1, max(d.Column, -1)+1, sanitizeMessage(d.Message))
		if includeNotes {
			for _, n := range d.Notes {
				fmt.Fprintf(&b, "\nnote %s %s %s", d.Code.ID(), path, sanitizeMessage(n.Msg))
			}
		}
	}
	return b.String()
}

func unitPath(names UnitNamer, unit int) string {
	if names != nil {
		if name := names.UnitName(unit); name != "" {
			return name
		}
	}
	return fmt.Sprintf("unit%d", unit)
}

func severityLabel(sev Severity) string {
	switch sev {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	default:
		return "info"
	}
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
