package library

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"
)

// ManifestName is the optional per-library metadata file.
const ManifestName = "library.toml"

type manifest struct {
	Library struct {
		Name     string   `toml:"name"`
		Packages []string `toml:"packages"`
		Native   string   `toml:"native"`
	} `toml:"library"`
}

// LoadDir indexes every library below root. A library is a folder whose
// library/ subfolder holds jars. Exported packages come from library.toml when
// present, otherwise from the jars' contents.
func LoadDir(root string) (*Index, error) {
	idx := NewIndex()
	if root == "" {
		return idx, nil
	}
	if _, err := os.Stat(root); errors.Is(err, fs.ErrNotExist) {
		return idx, nil
	}

	matches, err := doublestar.Glob(os.DirFS(root), "*/library/*.jar")
	if err != nil {
		return nil, err
	}
	byLib := make(map[string][]string)
	for _, m := range matches {
		name := strings.SplitN(m, "/", 2)[0]
		byLib[name] = append(byLib[name], filepath.Join(root, filepath.FromSlash(m)))
	}
	names := make([]string, 0, len(byLib))
	for n := range byLib {
		names = append(names, n)
	}
	slices.Sort(names)

	for _, n := range names {
		lib, err := loadLibrary(filepath.Join(root, n), n, byLib[n])
		if err != nil {
			return nil, err
		}
		idx.Add(lib)
	}
	return idx, nil
}

func loadLibrary(dir, name string, jars []string) (*Library, error) {
	slices.Sort(jars)
	lib := &Library{Name: name, Dir: dir, Jars: jars}

	mpath := filepath.Join(dir, ManifestName)
	if _, err := os.Stat(mpath); err == nil {
		var m manifest
		meta, err := toml.DecodeFile(mpath, &m)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", mpath, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("%s: unknown key %s", mpath, undecoded[0])
		}
		if m.Library.Name != "" {
			lib.Name = m.Library.Name
		}
		if m.Library.Native != "" {
			lib.NativeDir = filepath.Join(dir, filepath.FromSlash(m.Library.Native))
		}
		if meta.IsDefined("library", "packages") {
			lib.Packages = slices.Clone(m.Library.Packages)
			return lib, nil
		}
	}

	pkgs, err := packagesFromJars(jars)
	if err != nil {
		return nil, err
	}
	lib.Packages = pkgs
	return lib, nil
}
