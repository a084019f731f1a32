// Package registry holds the process-wide, type-keyed table of helper
// functions (comparer, delta computer, delta applier, optional diff getter)
// that let compare/apply/delta recurse into user object graphs without
// those packages ever importing the user's types.
package registry

import (
	"reflect"

	"github.com/joshuapare/deltakit/dkctx"
	"github.com/joshuapare/deltakit/delta"
)

// CompareFunc reports whether two values of the same registered type are
// deeply equal under ctx's options.
type CompareFunc func(ctx *dkctx.Context, left, right any) bool

// DeltaFunc writes the structural difference from left to right into w, as
// ops scoped to the enclosing member. It must not write anything when left
// and right are equal.
type DeltaFunc func(ctx *dkctx.Context, w *delta.Writer, left, right any) error

// ApplyFunc applies r, positioned at a document produced against target's
// type, to target, returning the (possibly new) resulting value.
type ApplyFunc func(target any, r *delta.Reader) (any, error)

// DiffFunc is an optional convenience that directly returns a populated
// delta.Document for (left, right), without the caller driving a Writer
// itself. Descriptors without one fall back to DeltaFunc via a fresh Writer.
type DiffFunc func(ctx *dkctx.Context, left, right any) (*delta.Document, error)

// Descriptor bundles the per-type helper triple (plus an optional Diff
// shortcut) under the reflect.Type the helpers were registered for.
type Descriptor struct {
	Type    reflect.Type
	Compare CompareFunc
	Delta   DeltaFunc
	Apply   ApplyFunc
	Diff    DiffFunc
}

func (d Descriptor) hasDelta() bool   { return d.Delta != nil }
func (d Descriptor) hasApply() bool   { return d.Apply != nil }
func (d Descriptor) hasCompare() bool { return d.Compare != nil }
