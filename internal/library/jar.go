package library

import (
	"archive/zip"
	"fmt"
	"path"
	"slices"
	"strings"
)

// PackagesFromJar lists the packages that have class files in the archive.
func PackagesFromJar(file string) ([]string, error) {
	r, err := zip.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", file, err)
	}
	defer r.Close()

	seen := make(map[string]struct{})
	for _, f := range r.File {
		name := f.Name
		if !strings.HasSuffix(name, ".class") || strings.HasPrefix(name, "META-INF/") {
			continue
		}
		dir := path.Dir(name)
		if dir == "." {
			continue
		}
		seen[strings.ReplaceAll(dir, "/", ".")] = struct{}{}
	}
	pkgs := make([]string, 0, len(seen))
	for p := range seen {
		pkgs = append(pkgs, p)
	}
	slices.Sort(pkgs)
	return pkgs, nil
}

func packagesFromJars(jars []string) ([]string, error) {
	var all []string
	for _, j := range jars {
		pkgs, err := PackagesFromJar(j)
		if err != nil {
			return nil, err
		}
		all = append(all, pkgs...)
	}
	slices.Sort(all)
	return slices.Compact(all), nil
}
