package catalogfile

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/andrescamacho/complex-planner/internal/domain/catalog"
)

//go:embed data/*.yaml
var builtinData embed.FS

// Parse decodes one catalog file. Unknown keys are rejected.
func Parse(data []byte) (*catalog.Catalog, error) {
	var f catalogFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return catalog.New(f.toDefinition())
}

// LoadFile reads and parses one catalog file
func LoadFile(path string) (*catalog.Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	c, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return c, nil
}

// LoadDir reads every *.yaml file in a directory
func LoadDir(dir string) ([]*catalog.Catalog, error) {
	return loadFS(os.DirFS(dir), ".")
}

// Builtin returns the catalogs shipped with the binary
func Builtin() ([]*catalog.Catalog, error) {
	return loadFS(builtinData, "data")
}

// NewRegistry loads catalogs from path (a file or a directory) or, when path
// is empty, the builtin catalogs
func NewRegistry(path string, defaultGame string) (*catalog.Registry, error) {
	var (
		catalogs []*catalog.Catalog
		err      error
	)

	switch {
	case path == "":
		catalogs, err = Builtin()
	default:
		info, statErr := os.Stat(path)
		if statErr != nil {
			return nil, fmt.Errorf("failed to stat catalog path: %w", statErr)
		}
		if info.IsDir() {
			catalogs, err = LoadDir(path)
		} else {
			var c *catalog.Catalog
			c, err = LoadFile(path)
			catalogs = []*catalog.Catalog{c}
		}
	}
	if err != nil {
		return nil, err
	}

	if defaultGame == "" && len(catalogs) > 0 {
		defaultGame = catalogs[0].Game().ID()
	}
	return catalog.NewRegistry(defaultGame, catalogs...)
}

func loadFS(fsys fs.FS, dir string) ([]*catalog.Catalog, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog files: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".yaml") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	if len(names) == 0 {
		return nil, fmt.Errorf("no catalog files found in %s", dir)
	}

	catalogs := make([]*catalog.Catalog, 0, len(names))
	for _, name := range names {
		raw, err := fs.ReadFile(fsys, filepath.ToSlash(filepath.Join(dir, name)))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		c, err := Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		catalogs = append(catalogs, c)
	}
	sort.Slice(catalogs, func(i, j int) bool { return catalogs[i].Game().NID() < catalogs[j].Game().NID() })
	return catalogs, nil
}
