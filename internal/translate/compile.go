package translate

import (
	"errors"
	"fmt"

	"sketchc/internal/compilelog"
	"sketchc/internal/diag"
)

// compileLog reports the first actionable record of the log. Suppressed
// records are skipped so a later one, or nothing, can surface instead.
func (t *Translator) compileLog(f CompileLog) (diag.Diagnostic, bool) {
	s := compilelog.NewScanner(f.Raw, t.Pattern, t.console())
	locator := compilelog.Locator{Sketch: t.Sketch, GeneratedFile: t.GeneratedFile, Mapper: t.Mapper}

	for s.Scan() {
		rec := s.Record()
		cls := t.classifier().Classify(rec.Message)
		if cls.Suppressed {
			continue
		}
		for _, h := range cls.Hints {
			fmt.Fprintln(t.console(), h)
		}
		if cls.Notice != nil {
			t.notice(*cls.Notice)
		}

		loc, _ := locator.Locate(rec)
		d := diag.New(cls.Code, loc.Unit, loc.Line, -1, cls.Message)
		for _, h := range cls.Hints {
			d = d.WithNote(h)
		}
		s.Drain()
		return d, true
	}

	if err := s.Err(); err != nil {
		var ue *compilelog.UnrecoverableError
		if errors.As(err, &ue) {
			return diag.Unresolved(diag.LogUnrecoverable, ue.Error()), true
		}
		return diag.Unresolved(diag.LogUnrecoverable, err.Error()), true
	}
	return diag.Diagnostic{}, false
}
