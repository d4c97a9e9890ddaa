package simulation

import "github.com/sarchlab/cachesim/cache"

// HookPos defines the enum of possible hooking positions
type HookPos struct {
	Name string
}

// HookPosAccess triggers after a reference is read into the cache.
var HookPosAccess = &HookPos{Name: "Access"}

// HookPosRunEnd triggers after the last reference of a run.
var HookPosRunEnd = &HookPos{Name: "RunEnd"}

// HookCtx is the context that holds all the information about the site that a
// hook is triggered
type HookCtx struct {
	Domain *Simulator
	Pos    *HookPos
	Item   any
	Detail any
}

// AccessDetail comes with HookPosAccess. The item of the hook is the
// reference itself.
type AccessDetail struct {
	Position int
	Cache    *cache.Store
}

// Hook is a short piece of program that can be invoked by a simulator.
type Hook interface {
	// Func determines what to do if hook is invoked.
	Func(ctx HookCtx)
}

// A HookableBase keeps the hooks of a simulator. Hooks are invoked from every
// run, so a hook used by concurrent runs must be safe for concurrent use.
type HookableBase struct {
	Hooks []Hook
}

// AcceptHook registers a hook. Hooks must be registered before the first run.
func (h *HookableBase) AcceptHook(hook Hook) {
	h.Hooks = append(h.Hooks, hook)
}

// InvokeHook triggers the registered hooks
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.Hooks {
		hook.Func(ctx)
	}
}
