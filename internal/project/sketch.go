package project

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"sketchc/internal/diag"
	"sketchc/internal/library"
	"sketchc/internal/source"
)

// Project is a loaded sketch folder.
type Project struct {
	Dir        string
	Manifest   *Manifest
	Sketch     *source.Sketch
	CodeFolder *library.CodeFolder
}

// Package returns the default package from the manifest, or "".
func (p *Project) Package() string {
	if p == nil || p.Manifest == nil {
		return ""
	}
	return p.Manifest.Config.Sketch.Package
}

// LoadSketch reads the sketch in dir. The main tab comes first; other .pde
// and .java tabs follow in case-insensitive name order.
func LoadSketch(ctx context.Context, dir string) (*Project, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve sketch directory: %w", err)
	}
	proj := &Project{Dir: abs}

	mpath := filepath.Join(abs, ManifestName)
	if _, err := os.Stat(mpath); err == nil {
		if proj.Manifest, err = LoadManifest(mpath); err != nil {
			return nil, diag.NewErr(diag.Unresolved(diag.ProjManifest, err.Error()), err)
		}
	}

	name := filepath.Base(abs)
	mainTab := ""
	if proj.Manifest != nil {
		if n := proj.Manifest.Config.Sketch.Name; n != "" {
			name = n
		}
		mainTab = proj.Manifest.Config.Sketch.Main
	}
	if mainTab == "" {
		mainTab = name + ".pde"
	}

	tabs, err := doublestar.Glob(os.DirFS(abs), "*.{pde,java}")
	if err != nil {
		return nil, err
	}
	if !slices.Contains(tabs, mainTab) {
		msg := fmt.Sprintf("The main tab %s is missing from %s", mainTab, abs)
		return nil, diag.NewErr(diag.Unresolved(diag.ProjMissingMain, msg), fs.ErrNotExist)
	}
	tabs = orderTabs(tabs, mainTab)

	units, err := readUnits(ctx, abs, tabs)
	if err != nil {
		return nil, err
	}
	proj.Sketch = source.NewSketch(name, abs, units)

	if proj.CodeFolder, err = library.LoadCodeFolder(filepath.Join(abs, "code")); err != nil {
		return nil, fmt.Errorf("code folder: %w", err)
	}
	return proj, nil
}

func orderTabs(tabs []string, mainTab string) []string {
	rest := make([]string, 0, len(tabs))
	for _, t := range tabs {
		if t != mainTab {
			rest = append(rest, t)
		}
	}
	slices.SortFunc(rest, func(a, b string) int {
		if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	return append([]string{mainTab}, rest...)
}

func readUnits(ctx context.Context, dir string, tabs []string) ([]source.Unit, error) {
	// индексы уникальны для каждой горутины, мьютекс не нужен
	units := make([]source.Unit, len(tabs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(runtime.GOMAXPROCS(0), max(len(tabs), 1)))
	for i, tab := range tabs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			path := filepath.Join(dir, tab)
			data, err := os.ReadFile(path)
			if err != nil {
				msg := "Could not read " + path
				return diag.NewErr(diag.Unresolved(diag.IOReadFailed, msg), err)
			}
			text, flags := source.Normalize(data)
			kind := source.Translatable
			if strings.EqualFold(filepath.Ext(tab), ".java") {
				kind = source.PassThrough
			}
			u := source.NewUnit(i, tab, kind, string(text))
			u.Flags = flags
			units[i] = u
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return units, nil
}
