// Package library resolves sketch imports to contributed libraries and
// collects the class path they add to a build.
package library

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Library is an installed library folder.
type Library struct {
	Name      string
	Dir       string
	Jars      []string
	NativeDir string
	Packages  []string
}

// ClassPath joins the library's jars with the OS list separator.
func (l *Library) ClassPath() string {
	return strings.Join(l.Jars, string(os.PathListSeparator))
}

// NativePath is the folder holding native libraries, or the jar folder.
func (l *Library) NativePath() string {
	if l.NativeDir != "" {
		return l.NativeDir
	}
	return filepath.Join(l.Dir, "library")
}

// Resolver finds the library exporting a package.
type Resolver interface {
	Resolve(pkg string) (*Library, bool)
}

// Index is a Resolver over a fixed set of libraries.
type Index struct {
	libs  []*Library
	byPkg map[string]*Library
}

func NewIndex(libs ...*Library) *Index {
	idx := &Index{byPkg: make(map[string]*Library)}
	for _, l := range libs {
		idx.Add(l)
	}
	return idx
}

// Add registers l. A package already claimed by an earlier library keeps its owner.
func (i *Index) Add(l *Library) {
	i.libs = append(i.libs, l)
	for _, p := range l.Packages {
		if _, taken := i.byPkg[p]; !taken {
			i.byPkg[p] = l
		}
	}
}

func (i *Index) Resolve(pkg string) (*Library, bool) {
	if i == nil {
		return nil, false
	}
	l, ok := i.byPkg[pkg]
	return l, ok
}

// Libraries returns the registered libraries in insertion order.
func (i *Index) Libraries() []*Library {
	if i == nil {
		return nil
	}
	return slices.Clone(i.libs)
}
