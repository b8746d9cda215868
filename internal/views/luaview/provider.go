package luaview

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dshills/regionav/internal/navigation"
)

// Factory returns a view factory that loads the script at path on
// every resolution, so each navigation gets a fresh instance and
// script edits take effect on the next materialization. The view
// doubles as its own controller.
func Factory(name, path string) navigation.Factory {
	return func() (navigation.View, navigation.Controller, error) {
		v, err := newView(name, path)
		if err != nil {
			return nil, nil, err
		}
		return v, v, nil
	}
}

// LoadDir registers every *.lua file under dir as a view named after
// the file stem, replacing any existing registration so the function
// also serves live reloads. Returns the registered names, sorted.
func LoadDir(reg *navigation.Registry, dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.lua"))
	if err != nil {
		return nil, fmt.Errorf("scanning views dir %s: %w", dir, err)
	}
	sort.Strings(matches)

	names := make([]string, 0, len(matches))
	for _, path := range matches {
		name := ViewName(path)
		if err := reg.Replace(name, Factory(name, path)); err != nil {
			return names, err
		}
		names = append(names, name)
	}
	return names, nil
}

// Reload re-registers the single script at path, replacing its
// factory. Already materialized instances are unaffected.
func Reload(reg *navigation.Registry, path string) (string, error) {
	name := ViewName(path)
	if err := reg.Replace(name, Factory(name, path)); err != nil {
		return "", err
	}
	return name, nil
}

// ViewName derives the logical view name from a script path: the file
// name without its extension.
func ViewName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
