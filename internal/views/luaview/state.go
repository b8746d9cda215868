package luaview

import (
	lua "github.com/yuin/gopher-lua"
)

// newState creates a Lua state with only safe standard libraries.
func newState() *lua.LState {
	L := lua.NewState(lua.Options{
		SkipOpenLibs: true,
	})

	// Base library (print, type, pairs, ipairs, ...).
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// Intentionally not opened:
	// - io (file system access)
	// - os (system calls)
	// - debug (can reach engine internals)
	// - package (can load arbitrary modules)

	return L
}
