package luaview

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/regionav/internal/navigation"
)

// Hook names a view script may define.
const (
	hookInit         = "on_init"
	hookNavigatedTo  = "on_navigated_to"
	hookNavigatedFro = "on_navigated_from"
	hookDestroy      = "on_destroy"
	hookResume       = "on_resume"
	hookSuspend      = "on_suspend"
	hookAppearing    = "on_appearing"
	hookDisappearing = "on_disappearing"
)

var hookNames = []string{
	hookInit, hookNavigatedTo, hookNavigatedFro, hookDestroy,
	hookResume, hookSuspend, hookAppearing, hookDisappearing,
}

// View is a Lua-scripted view. It implements the engine's full
// capability set plus the shell's render contract (Title/Lines). Each
// View owns its own Lua state, created at materialization and closed
// at destruction.
type View struct {
	name  string
	title string
	lines []string

	L      *lua.LState
	hooks  map[string]*lua.LFunction
	closed bool

	binding   any
	behaviors []navigation.Behavior
}

// newView loads the script at path into a fresh state.
func newView(name, path string) (*View, error) {
	L := newState()
	if err := L.DoFile(path); err != nil {
		L.Close()
		return nil, fmt.Errorf("loading view %s: %w", name, err)
	}

	ret := L.Get(-1)
	L.Pop(1)
	tbl, ok := ret.(*lua.LTable)
	if !ok {
		L.Close()
		return nil, fmt.Errorf("%w: %s returned %s", ErrNotATable, name, ret.Type())
	}

	v := &View{
		name:  name,
		title: name,
		L:     L,
		hooks: make(map[string]*lua.LFunction),
	}

	if title, ok := tbl.RawGetString("title").(lua.LString); ok {
		v.title = string(title)
	}
	if lines, ok := tbl.RawGetString("lines").(*lua.LTable); ok {
		for i := 1; i <= lines.Len(); i++ {
			v.lines = append(v.lines, lua.LVAsString(lines.RawGetInt(i)))
		}
	}
	for _, hook := range hookNames {
		if fn, ok := tbl.RawGetString(hook).(*lua.LFunction); ok {
			v.hooks[hook] = fn
		}
	}

	return v, nil
}

// Name returns the logical view name.
func (v *View) Name() string { return v.name }

// Title returns the script's title, falling back to the view name.
func (v *View) Title() string { return v.title }

// Lines returns the render payload declared by the script.
func (v *View) Lines() []string {
	out := make([]string, len(v.lines))
	copy(out, v.lines)
	return out
}

// Initialize runs the script's on_init hook.
func (v *View) Initialize(params *navigation.Parameters) error {
	return v.callHook(hookInit, params)
}

// OnNavigatedTo runs the script's on_navigated_to hook.
func (v *View) OnNavigatedTo(params *navigation.Parameters) error {
	return v.callHook(hookNavigatedTo, params)
}

// OnNavigatedFrom runs the script's on_navigated_from hook.
func (v *View) OnNavigatedFrom(params *navigation.Parameters) error {
	return v.callHook(hookNavigatedFro, params)
}

// Destroy runs the script's on_destroy hook and closes the Lua state.
func (v *View) Destroy() error {
	if v.closed {
		return nil
	}
	err := v.callHook(hookDestroy, nil)
	v.closed = true
	v.L.Close()
	return err
}

// OnResume runs the script's on_resume hook. Lifecycle broadcasts
// cannot fail; hook errors are discarded.
func (v *View) OnResume() { _ = v.callHook(hookResume, nil) }

// OnSuspend runs the script's on_suspend hook.
func (v *View) OnSuspend() { _ = v.callHook(hookSuspend, nil) }

// OnAppearing runs the script's on_appearing hook.
func (v *View) OnAppearing() { _ = v.callHook(hookAppearing, nil) }

// OnDisappearing runs the script's on_disappearing hook.
func (v *View) OnDisappearing() { _ = v.callHook(hookDisappearing, nil) }

// SetBindingContext stores the data-binding context.
func (v *View) SetBindingContext(ctx any) { v.binding = ctx }

// BindingContext returns the data-binding context.
func (v *View) BindingContext() any { return v.binding }

// AddBehavior attaches a behavior object.
func (v *View) AddBehavior(b navigation.Behavior) {
	v.behaviors = append(v.behaviors, b)
}

// Behaviors returns attached behaviors.
func (v *View) Behaviors() []navigation.Behavior { return v.behaviors }

// ClearBehaviors drops all attached behaviors.
func (v *View) ClearBehaviors() { v.behaviors = nil }

// callHook invokes a named hook with the parameter bag as a table
// argument. Missing hooks are a no-op.
func (v *View) callHook(hook string, params *navigation.Parameters) error {
	fn, ok := v.hooks[hook]
	if !ok {
		return nil
	}
	if v.closed {
		return &HookError{View: v.name, Hook: hook, Err: ErrViewClosed}
	}

	v.L.Push(fn)
	v.L.Push(paramsTable(v.L, params))
	if err := v.L.PCall(1, 0, nil); err != nil {
		return &HookError{View: v.name, Hook: hook, Err: err}
	}
	return nil
}

// paramsTable converts a parameter bag to a Lua table, walking keys in
// insertion order.
func paramsTable(L *lua.LState, params *navigation.Parameters) *lua.LTable {
	tbl := L.NewTable()
	for _, key := range params.Keys() {
		val, _ := params.Get(key)
		tbl.RawSetString(key, toLuaValue(L, val))
	}
	return tbl
}

// toLuaValue converts a Go parameter value to a Lua value. Unhandled
// types degrade to their string form.
func toLuaValue(L *lua.LState, val any) lua.LValue {
	switch v := val.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(v)
	case int:
		return lua.LNumber(v)
	case int64:
		return lua.LNumber(v)
	case float64:
		return lua.LNumber(v)
	case string:
		return lua.LString(v)
	default:
		return lua.LString(fmt.Sprintf("%v", v))
	}
}
