// Package dkctx defines Context, the per-call state threaded through
// equality, delta computation, and delta application. It depends only on
// value, so both the registry and the comparison/delta packages can depend
// on it without an import cycle.
package dkctx

import "github.com/joshuapare/deltakit/value"

// identityPair is an ordered pair of reference identities. Order matters:
// (L,R) is tracked independently of (R,L), since a right-to-left and a
// left-to-right traversal of the same pair are distinct recursion edges.
type identityPair struct {
	l, r any
}

// Context carries comparison options plus optional cycle tracking for a
// single compare/compute-delta/apply-delta call tree. A Context is not safe
// for concurrent use; construct one per call.
type Context struct {
	Options value.Options

	cycleTracking bool
	visited       map[identityPair]struct{}
	stack         []identityPair
}

// New builds a Context with cycle tracking enabled, the default mode for
// graphs that might contain cycles.
func New(opt value.Options) *Context {
	return &Context{
		Options:       opt,
		cycleTracking: true,
		visited:       make(map[identityPair]struct{}),
	}
}

// NoTracking builds a Context with cycle tracking disabled. Faster for
// graphs known to be acyclic; an actual cycle will recurse until the Go
// runtime stack overflows.
func NoTracking(opt value.Options) *Context {
	return &Context{Options: opt, cycleTracking: false}
}

// CycleTrackingEnabled reports whether this context tracks visited pairs.
func (c *Context) CycleTrackingEnabled() bool {
	return c.cycleTracking
}

// Enter records (l, r) as being visited. It returns false if the identical
// ordered pair is already on the stack (a cycle), in which case the caller
// must treat the pair as equal and not recurse further. When cycle tracking
// is disabled, Enter always returns true and never tracks.
func (c *Context) Enter(l, r any) bool {
	if !c.cycleTracking {
		return true
	}
	key := identityPair{l: l, r: r}
	if _, seen := c.visited[key]; seen {
		return false
	}
	c.visited[key] = struct{}{}
	c.stack = append(c.stack, key)
	return true
}

// Exit pops the most recently entered (l, r) pair. It is a no-op when cycle
// tracking is disabled.
func (c *Context) Exit(l, r any) {
	if !c.cycleTracking {
		return
	}
	key := identityPair{l: l, r: r}
	delete(c.visited, key)
	if n := len(c.stack); n > 0 && c.stack[n-1] == key {
		c.stack = c.stack[:n-1]
	}
}

// Depth returns the current recursion depth (number of entered pairs still
// on the stack). Used by callers that want to cap recursion independent of
// cycle tracking.
func (c *Context) Depth() int {
	return len(c.stack)
}
