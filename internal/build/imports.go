package build

import (
	"fmt"
	"io"
	"os"
	"strings"

	"sketchc/internal/library"
)

type importSet struct {
	libs []*library.Library
	seen map[*library.Library]struct{}
}

// resolveImports maps each extra import to the library exporting its
// package. Unknown packages that are neither ignorable nor supplied by the
// code folder are reported on console.
func resolveImports(imports []string, r library.Resolver, code *library.CodeFolder, console io.Writer) []*library.Library {
	set := importSet{seen: make(map[*library.Library]struct{})}
	for _, item := range imports {
		entry := library.ImportEntry(item)
		if entry == "" {
			continue
		}
		if r != nil {
			if lib, ok := r.Resolve(entry); ok {
				set.add(lib)
				continue
			}
		}
		if code.Provides(entry) || library.Ignorable(entry) {
			continue
		}
		_, _ = fmt.Fprintf(console, "No library found for %s\n", entry)
	}
	return set.libs
}

func (s *importSet) add(lib *library.Library) {
	if _, ok := s.seen[lib]; ok {
		return
	}
	s.seen[lib] = struct{}{}
	s.libs = append(s.libs, lib)
}

// classPath orders the fragments: code folder, imported libraries, core
// library, host class path.
func classPath(code *library.CodeFolder, libs []*library.Library, core *library.Library, host string) string {
	parts := []string{code.ClassPath()}
	for _, lib := range libs {
		parts = append(parts, lib.ClassPath())
	}
	if core != nil {
		parts = append(parts, core.ClassPath())
	}
	parts = append(parts, host)
	return joinPath(parts)
}

func nativePath(libs []*library.Library, core *library.Library) string {
	parts := make([]string, 0, len(libs)+1)
	if core != nil {
		parts = append(parts, core.NativePath())
	}
	for _, lib := range libs {
		parts = append(parts, lib.NativePath())
	}
	return joinPath(parts)
}

func joinPath(parts []string) string {
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, string(os.PathListSeparator))
}
