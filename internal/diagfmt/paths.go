package diagfmt

import (
	"fmt"
	"path/filepath"
	"strings"

	"sketchc/internal/source"
)

// unitPath formats the path of a tab according to mode.
func unitPath(sk *source.Sketch, unit int, mode PathMode, base string) string {
	name := sk.UnitName(unit)
	if name == "" {
		return fmt.Sprintf("unit%d", unit)
	}
	if sk.Dir == "" {
		return name
	}
	abs := filepath.Join(sk.Dir, name)
	switch mode {
	case PathModeAbsolute:
		return abs
	case PathModeBasename:
		return name
	case PathModeRelative, PathModeAuto:
		if base == "" {
			if mode == PathModeAuto {
				return name
			}
			return abs
		}
		if rel, err := filepath.Rel(base, abs); err == nil && !strings.HasPrefix(rel, "..") {
			return filepath.ToSlash(rel)
		}
		return abs
	}
	return name
}

// sourceLine returns the 0-based line of a tab.
func sourceLine(sk *source.Sketch, unit, line int) (string, bool) {
	u, ok := sk.Unit(unit)
	if !ok || line < 0 {
		return "", false
	}
	for i := 0; i < line; i++ {
		nl := strings.IndexByte(u.Text, '\n')
		if nl < 0 {
			return "", false
		}
		u.Text = u.Text[nl+1:]
	}
	if nl := strings.IndexByte(u.Text, '\n'); nl >= 0 {
		return u.Text[:nl], true
	}
	return u.Text, true
}
