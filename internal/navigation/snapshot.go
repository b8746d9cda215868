package navigation

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Snapshot renders the region tree rooted at root as a JSON document:
// region name, stack entry names, current index, and a children object
// keyed by nested region name. The snapshot is a diagnostic dump only;
// navigation history is never restored from it.
func Snapshot(root *Region) (string, error) {
	return snapshotRegion("{}", "", root)
}

func snapshotRegion(doc, prefix string, r *Region) (string, error) {
	var err error
	if doc, err = sjson.Set(doc, prefix+"name", r.name); err != nil {
		return "", fmt.Errorf("snapshot region %s: %w", r.name, err)
	}
	if doc, err = sjson.Set(doc, prefix+"current", r.current); err != nil {
		return "", fmt.Errorf("snapshot region %s: %w", r.name, err)
	}
	if doc, err = sjson.Set(doc, prefix+"stack", r.StackNames()); err != nil {
		return "", fmt.Errorf("snapshot region %s: %w", r.name, err)
	}

	for _, e := range r.stack {
		for _, child := range r.manager.ChildRegionsOf(e.view) {
			childPrefix := prefix + "children." + escapeJSONPath(child.name) + "."
			if doc, err = snapshotRegion(doc, childPrefix, child); err != nil {
				return "", err
			}
		}
	}
	return doc, nil
}

// SnapshotCurrent reads the current view name at the given dot path
// inside a snapshot document. An empty path addresses the root region.
// Returns "" when the region at path has no current view.
func SnapshotCurrent(snapshot, path string) string {
	if path != "" {
		path += "."
	}
	cur := gjson.Get(snapshot, path+"current")
	if !cur.Exists() || cur.Int() < 0 {
		return ""
	}
	return gjson.Get(snapshot, fmt.Sprintf("%sstack.%d", path, cur.Int())).String()
}

// SnapshotStack reads the stack entry names at the given dot path
// inside a snapshot document.
func SnapshotStack(snapshot, path string) []string {
	if path != "" {
		path += "."
	}
	var names []string
	for _, v := range gjson.Get(snapshot, path+"stack").Array() {
		names = append(names, v.String())
	}
	return names
}
