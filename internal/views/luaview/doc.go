// Package luaview implements views authored as Lua scripts.
//
// A view script runs in a sandboxed Lua state (no io, os, debug, or
// package libraries) and returns a table describing the view:
//
//	return {
//	    title = "Home",
//	    lines = { "welcome", "press 1 for settings" },
//	    on_navigated_to = function(params) ... end,
//	    on_destroy = function() ... end,
//	}
//
// Every resolved instance owns a fresh Lua state, matching the
// engine's rule that each navigation materializes a new view. Hook
// errors surface as Go errors into the navigation pipeline.
package luaview
