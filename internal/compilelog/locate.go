package compilelog

import (
	"sketchc/internal/posmap"
	"sketchc/internal/source"
)

// Locator resolves a record's file and line to a sketch location.
type Locator struct {
	Sketch        *source.Sketch
	GeneratedFile string
	Mapper        posmap.Mapper
}

// Locate returns the sketch location of r. A pass-through file keeps its line,
// the generated file goes through the compiler-line mapping, and any other
// file is unresolved with ok=false.
func (l Locator) Locate(r Record) (loc posmap.Location, ok bool) {
	if u, found := l.Sketch.LookupPassThrough(r.File); found {
		return posmap.Location{Unit: u.Index, Line: r.Line}, true
	}
	if r.File == l.GeneratedFile {
		return l.Mapper.MapCompilerLine(r.Line), true
	}
	return posmap.Unresolved, false
}
