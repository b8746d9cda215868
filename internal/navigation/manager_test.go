package navigation

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestManager_AddDuplicateName(t *testing.T) {
	rg := newRig()
	if _, err := rg.manager.Add("main", nil); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	_, err := rg.manager.Add("main", nil)
	if !errors.Is(err, ErrRegionExists) {
		t.Errorf("err = %v, want ErrRegionExists", err)
	}
}

func TestManager_AddEmptyName(t *testing.T) {
	rg := newRig()
	if _, err := rg.manager.Add("", nil); err == nil {
		t.Error("expected error for empty region name")
	}
}

func TestManager_AddAnonymous(t *testing.T) {
	rg := newRig()
	host := &testView{name: "host", j: rg.j}

	r1 := rg.manager.AddAnonymous(host)
	r2 := rg.manager.AddAnonymous(host)

	if r1.Name() == r2.Name() {
		t.Errorf("anonymous names collide: %q", r1.Name())
	}
	if !strings.HasPrefix(r1.Name(), "region-") {
		t.Errorf("anonymous name = %q, want region- prefix", r1.Name())
	}
}

func TestManager_ChildRegionsOfStableOrder(t *testing.T) {
	rg := newRig()
	host := &testView{name: "host", j: rg.j}

	for _, name := range []string{"zeta", "alpha", "mid"} {
		if _, err := rg.manager.Add(name, host); err != nil {
			t.Fatalf("Add(%s) failed: %v", name, err)
		}
	}
	// A region under a different host must not be discovered.
	other := &testView{name: "other", j: rg.j}
	if _, err := rg.manager.Add("elsewhere", other); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	var got []string
	for _, r := range rg.manager.ChildRegionsOf(host) {
		got = append(got, r.Name())
	}
	want := []string{"alpha", "mid", "zeta"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("children = %v, want %v", got, want)
	}

	if children := rg.manager.ChildRegionsOf(nil); children != nil {
		t.Errorf("nil host children = %v, want nil", children)
	}
}

func TestManager_RemoveHolder(t *testing.T) {
	rg := newRig()
	if _, err := rg.manager.Add("main", nil); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if !rg.manager.RemoveHolder("main") {
		t.Error("expected removal of registered region")
	}
	if rg.manager.Region("main") != nil {
		t.Error("region still resolvable after RemoveHolder")
	}
	if rg.manager.RemoveHolder("main") {
		t.Error("second RemoveHolder should report false")
	}
}

func TestManager_NestedNavigatedOrdering(t *testing.T) {
	rg := newRig("parent", "child", "next")
	root := rg.root()

	mustNavigate(t, root.Push("parent", nil))
	parentView := rg.last("parent")

	inner, err := rg.manager.Add("inner", parentView)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	mustNavigate(t, inner.Push("child", nil))

	// Navigating the root away from parent must notify the nested
	// region first (post-order on navigated-from), then the parent
	// content itself, then the new content (pre-order on navigated-to).
	rg.j.entries = nil
	mustNavigate(t, root.Push("next", nil))

	want := []string{
		"next:init",
		"child:from:new",
		"parent:from:new",
		"next:to:new",
	}
	if !reflect.DeepEqual(rg.j.entries, want) {
		t.Errorf("journal = %v, want %v", rg.j.entries, want)
	}
}

func TestManager_NestedDestroyOrdering(t *testing.T) {
	rg := newRig("parent", "child", "next")
	root := rg.root()

	mustNavigate(t, root.Push("parent", nil))
	parentView := rg.last("parent")

	inner, err := rg.manager.Add("inner", parentView)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	mustNavigate(t, inner.Push("child", nil))

	// Replacing the root stack destroys parent, which must first tear
	// down the nested region (child before parent teardown hook).
	rg.j.entries = nil
	mustNavigate(t, root.ReplaceAll("next", nil))

	var destroys []string
	for _, e := range rg.j.entries {
		if strings.HasSuffix(e, ":destroy") {
			destroys = append(destroys, e)
		}
	}
	want := []string{"child:destroy", "parent:destroy"}
	if !reflect.DeepEqual(destroys, want) {
		t.Errorf("destroy order = %v, want %v", destroys, want)
	}

	// The nested region deregistered itself during its DestroyAll.
	if rg.manager.Region("inner") != nil {
		t.Error("nested region still registered after parent destruction")
	}
}

func TestManager_NestedWindowLifecycle(t *testing.T) {
	rg := newRig("parent", "child")
	root := rg.root()

	mustNavigate(t, root.Push("parent", nil))
	inner, err := rg.manager.Add("inner", rg.last("parent"))
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	mustNavigate(t, inner.Push("child", nil))

	rg.j.entries = nil
	root.OnWindowLifecycleRecursively(true)

	want := []string{"parent:resume", "child:resume"}
	if !reflect.DeepEqual(rg.j.entries, want) {
		t.Errorf("journal = %v, want %v", rg.j.entries, want)
	}
}

func TestManager_NestedPageLifecycle(t *testing.T) {
	rg := newRig("parent", "child")
	root := rg.root()

	mustNavigate(t, root.Push("parent", nil))
	inner, err := rg.manager.Add("inner", rg.last("parent"))
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	mustNavigate(t, inner.Push("child", nil))

	rg.j.entries = nil
	root.OnPageLifecycleRecursively(true)
	want := []string{"parent:appearing", "child:appearing"}
	if !reflect.DeepEqual(rg.j.entries, want) {
		t.Errorf("appearing journal = %v, want %v", rg.j.entries, want)
	}

	rg.j.entries = nil
	root.OnPageLifecycleRecursively(false)
	want = []string{"child:disappearing", "parent:disappearing"}
	if !reflect.DeepEqual(rg.j.entries, want) {
		t.Errorf("disappearing journal = %v, want %v", rg.j.entries, want)
	}
}
