package library

import "strings"

// ignorablePrefixes are packages that never come from a contributed library.
var ignorablePrefixes = []string{
	"java.",
	"javax.",
	"javafx.",
	"processing.core.",
	"processing.data.",
	"processing.event.",
	"processing.opengl.",
}

// ImportEntry reduces an import to the package it needs: the last segment is
// dropped ("processing.video.*" → "processing.video") and static imports lose
// their keyword ("static a.b.C.max" → "a.b.C").
func ImportEntry(item string) string {
	entry := item
	if dot := strings.LastIndexByte(item, '.'); dot >= 0 {
		entry = item[:dot]
	}
	if rest, ok := strings.CutPrefix(entry, "static "); ok {
		entry = strings.TrimSpace(rest)
	}
	return entry
}

// Ignorable reports whether entry belongs to the platform or the core library.
func Ignorable(entry string) bool {
	pkg := entry + "."
	for _, p := range ignorablePrefixes {
		if strings.HasPrefix(pkg, p) {
			return true
		}
	}
	return false
}
