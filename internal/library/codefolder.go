package library

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// CodeFolder is a sketch's code/ folder: jars added to the class path whose
// packages can be imported without a library.
type CodeFolder struct {
	Dir      string
	Jars     []string
	Packages []string
}

// LoadCodeFolder scans dir. A missing folder yields nil without error.
func LoadCodeFolder(dir string) (*CodeFolder, error) {
	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, nil
	}

	matches, err := doublestar.Glob(os.DirFS(dir), "**/*.{jar,zip}")
	if err != nil {
		return nil, err
	}
	jars := make([]string, 0, len(matches))
	for _, m := range matches {
		jars = append(jars, filepath.Join(dir, filepath.FromSlash(m)))
	}
	slices.Sort(jars)

	pkgs, err := packagesFromJars(jars)
	if err != nil {
		return nil, err
	}
	return &CodeFolder{Dir: dir, Jars: jars, Packages: pkgs}, nil
}

// ClassPath joins the folder's jars with the OS list separator.
func (c *CodeFolder) ClassPath() string {
	if c == nil {
		return ""
	}
	return strings.Join(c.Jars, string(os.PathListSeparator))
}

// Provides reports whether the folder supplies pkg.
func (c *CodeFolder) Provides(pkg string) bool {
	return c != nil && slices.Contains(c.Packages, pkg)
}
