// Package navigation implements the region-based navigation engine.
//
// A Region owns an ordered stack of views and a single current pointer
// into it. Callers navigate with ReplaceAll, Push, PushBackwards,
// GoBack, and GoForward; every operation returns a Result and never
// propagates an error or panic across its public boundary.
//
// Views navigated to may themselves host nested regions. The Manager
// discovers those child regions on demand, so a navigation or
// lifecycle signal on one region propagates through the whole implicit
// region tree below it. The engine is single-threaded by design: one
// logical call at a time per region, with no internal locking around
// stack state.
package navigation
