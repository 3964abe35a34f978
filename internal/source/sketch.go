package source

import "path/filepath"

// Sketch is the ordered set of units a build works on. Index 0 is the main unit.
type Sketch struct {
	Name  string
	Dir   string
	Units []Unit
}

// NewSketch renumbers units by position so Index always equals the slice index.
func NewSketch(name, dir string, units []Unit) *Sketch {
	out := make([]Unit, len(units))
	for i, u := range units {
		u.Index = i
		out[i] = u
	}
	return &Sketch{Name: name, Dir: dir, Units: out}
}

// Len returns the number of units.
func (s *Sketch) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Units)
}

// Unit returns the unit at index i.
func (s *Sketch) Unit(i int) (Unit, bool) {
	if s == nil || i < 0 || i >= len(s.Units) {
		return Unit{}, false
	}
	return s.Units[i], true
}

// UnitName returns the display name of unit i, or "" if out of range.
func (s *Sketch) UnitName(i int) string {
	u, ok := s.Unit(i)
	if !ok {
		return ""
	}
	return u.Name
}

// Translatable returns the units that go through the preprocessor, in order.
func (s *Sketch) Translatable() []Unit {
	return s.ofKind(Translatable)
}

// PassThrough returns the units compiled as-is, in order.
func (s *Sketch) PassThrough() []Unit {
	return s.ofKind(PassThrough)
}

func (s *Sketch) ofKind(k Kind) []Unit {
	if s == nil {
		return nil
	}
	out := make([]Unit, 0, len(s.Units))
	for _, u := range s.Units {
		if u.Kind == k {
			out = append(out, u)
		}
	}
	return out
}

// LookupPassThrough finds a pass-through unit by file name.
func (s *Sketch) LookupPassThrough(filename string) (Unit, bool) {
	if s == nil {
		return Unit{}, false
	}
	base := filepath.Base(normalizePath(filename))
	for _, u := range s.Units {
		if u.Kind == PassThrough && u.Name == base {
			return u, true
		}
	}
	return Unit{}, false
}

// GeneratedFilename is the name of the compilable unit the preprocessor writes.
func (s *Sketch) GeneratedFilename() string {
	if s == nil {
		return ""
	}
	return s.Name + ".java"
}
