package build

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"sketchc/internal/source"
)

var packageRe = regexp.MustCompile(`(?:^|\s|;)package\s+(\S+);`)

// declaredPackage returns the package named in code, if any.
func declaredPackage(code string) (string, bool) {
	m := packageRe.FindStringSubmatch(code)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// withPackage injects def when code declares no package. It returns the
// resulting text and the effective package.
func withPackage(code, def string) (string, string) {
	if pkg, ok := declaredPackage(code); ok {
		return code, pkg
	}
	if def == "" {
		return code, ""
	}
	return "package " + def + ";" + code, def
}

// packageDir is the folder below root that holds files of pkg.
func packageDir(root, pkg string) string {
	if pkg == "" {
		return root
	}
	return filepath.Join(root, filepath.FromSlash(strings.ReplaceAll(pkg, ".", "/")))
}

func writeSource(root, pkg, name, code string) (string, error) {
	dir := packageDir(root, pkg)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return filepath.Join(dir, name), err
	}
	path := filepath.Join(dir, name)
	return path, os.WriteFile(path, []byte(code), 0o600)
}

// copyUnit writes a pass-through tab into root, honouring its package.
func copyUnit(root, def string, u source.Unit) (string, error) {
	code, pkg := withPackage(u.Text, def)
	return writeSource(root, pkg, u.Name, code)
}
