package compare

import (
	"reflect"

	"github.com/joshuapare/deltakit/dkctx"
	"github.com/joshuapare/deltakit/dkerr"
	"github.com/joshuapare/deltakit/registry"
)

// Deep reports whether two registered objects of the same concrete type are
// equal, dispatching through reg and tracking cycles in ctx. Pointer values
// that have already been entered on ctx's active stack as the same ordered
// pair are treated as equal without recursing further; non-pointer values
// carry no reference identity and are not tracked.
func Deep(ctx *dkctx.Context, reg *registry.Registry, left, right any) (bool, error) {
	if left == nil && right == nil {
		return true, nil
	}
	if left == nil || right == nil {
		return false, nil
	}

	lt := reflect.TypeOf(left)
	rt := reflect.TypeOf(right)
	if lt != rt {
		return false, nil
	}

	// Only pointers are tracked: a struct value holding a slice or map is
	// not a valid map key for ctx's visited set, and cannot close a cycle
	// without passing through a pointer anyway.
	if lt.Kind() == reflect.Pointer {
		if !ctx.Enter(left, right) {
			return true, nil // cycle: assume equal, let the caller unwind
		}
		defer ctx.Exit(left, right)
	}

	d, ok := reg.Lookup(lt)
	if !ok || d.Compare == nil {
		return false, dkerr.Wrap(dkerr.KindResolution, dkerr.ErrNoDescriptor, "no comparer registered for %s", lt)
	}
	return d.Compare(ctx, left, right), nil
}
