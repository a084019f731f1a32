// Package deltakit is the programmatic surface over the registry, compare,
// and delta packages: register a type once with Register, then use
// AreDeepEqual, ComputeDelta/TryGetDiff, and ApplyDelta against
// registry.Default. The registered functions themselves build on compare,
// delta/diffseq, delta/diffmap and apply, and documents are encoded and
// decoded with the codec package directly.
package deltakit

import (
	"fmt"
	"reflect"

	"github.com/joshuapare/deltakit/compare"
	"github.com/joshuapare/deltakit/delta"
	"github.com/joshuapare/deltakit/dkctx"
	"github.com/joshuapare/deltakit/dkerr"
	"github.com/joshuapare/deltakit/registry"
	"github.com/joshuapare/deltakit/value"
)

// Error, ErrKind, and the package-level sentinels re-export dkerr's typed
// error taxonomy under the names a caller of this facade sees — the lower
// packages keep their own dkerr import so none of them need to depend on
// this one.
type Error = dkerr.Error
type ErrKind = dkerr.Kind

const (
	ErrKindContract   = dkerr.KindContract
	ErrKindDecode     = dkerr.KindDecode
	ErrKindCapacity   = dkerr.KindCapacity
	ErrKindResolution = dkerr.KindResolution
)

var (
	ErrSeqRemoveMismatch = dkerr.ErrSeqRemoveMismatch
	ErrBadMagic          = dkerr.ErrBadMagic
	ErrUnknownVersion    = dkerr.ErrUnknownVersion
	ErrMaxOpsExceeded    = dkerr.ErrMaxOpsExceeded
	ErrNoDescriptor      = dkerr.ErrNoDescriptor
)

// Options is value.Options under the name this facade's callers use.
type Options = value.Options

// DefaultOptions returns the default comparison/delta-computation options.
func DefaultOptions() Options { return value.DefaultOptions() }

// Register installs the comparer, delta computer, and applier for T against
// registry.Default in one call, the common case for a program with one
// process-wide registry. Programs that need isolated registries (tests,
// multi-tenant hosts) should call the registry package's RegisterComparer /
// RegisterDelta / RegisterApply against their own *registry.Registry
// instead.
func Register[T any](
	cmp func(ctx *dkctx.Context, left, right T) bool,
	diff func(ctx *dkctx.Context, w *delta.Writer, left, right T) error,
	apply func(target T, r *delta.Reader) (T, error),
) {
	registry.RegisterComparer(registry.Default, cmp)
	registry.RegisterDelta(registry.Default, diff)
	registry.RegisterApply(registry.Default, apply)
}

// AreDeepEqual reports whether left and right are structurally equal under
// opt, recursing through registry.Default for any nested registered type.
// Both values must share the same registered concrete type; mismatched or
// unregistered types report false, or an error for the latter.
func AreDeepEqual[T any](opt Options, left, right T) (bool, error) {
	ctx := dkctx.New(opt)
	eq, err := compare.Deep(ctx, registry.Default, left, right)
	if err != nil {
		return false, fmt.Errorf("deltakit: AreDeepEqual: %w", err)
	}
	return eq, nil
}

// ComputeDelta computes the structural delta from left to right as a fresh
// *delta.Document, which is empty (IsEmpty reports true) when the two are
// equal. It prefers a registered
// Diff shortcut when present, falling back to a Writer-driven Delta call.
func ComputeDelta[T any](opt Options, left, right T) (*delta.Document, error) {
	ctx := dkctx.New(opt)
	t := reflect.TypeOf((*T)(nil)).Elem()
	d, ok := registry.Default.Lookup(t)
	if !ok {
		return nil, fmt.Errorf("deltakit: ComputeDelta: %w", dkerr.Wrap(dkerr.KindResolution, dkerr.ErrNoDescriptor, "no descriptor registered for %s", t))
	}

	if d.Diff != nil {
		doc, err := d.Diff(ctx, left, right)
		if err != nil {
			return nil, fmt.Errorf("deltakit: ComputeDelta: %w", err)
		}
		return doc, nil
	}

	if d.Delta == nil {
		return nil, fmt.Errorf("deltakit: ComputeDelta: %w", dkerr.New(dkerr.KindResolution, "no delta computer registered for %s", t))
	}
	doc := delta.NewDocument(0)
	w := delta.NewWriter(doc, nil)
	if err := d.Delta(ctx, w, left, right); err != nil {
		return nil, fmt.Errorf("deltakit: ComputeDelta: %w", err)
	}
	return doc, nil
}

// TryGetDiff is ComputeDelta with the "nothing changed" case folded into a
// bool: (doc, true, nil) when left and right differ, (nil, false, nil) when
// they don't, and a non-nil error otherwise.
func TryGetDiff[T any](opt Options, left, right T) (*delta.Document, bool, error) {
	doc, err := ComputeDelta(opt, left, right)
	if err != nil {
		return nil, false, err
	}
	if doc.IsEmpty() {
		return nil, false, nil
	}
	return doc, true, nil
}

// ApplyDelta folds doc onto target using target's registered applier,
// returning the (possibly new) resulting value. Applying an empty document
// is a no-op that returns target unchanged.
func ApplyDelta[T any](target T, doc *delta.Document) (T, error) {
	if doc.IsEmpty() {
		return target, nil
	}
	t := reflect.TypeOf((*T)(nil)).Elem()
	d, ok := registry.Default.Lookup(t)
	if !ok || d.Apply == nil {
		var zero T
		return zero, fmt.Errorf("deltakit: ApplyDelta: %w", dkerr.Wrap(dkerr.KindResolution, dkerr.ErrNoDescriptor, "no applier registered for %s", t))
	}
	r := delta.NewReader(doc)
	out, err := d.Apply(target, r)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("deltakit: ApplyDelta: %w", err)
	}
	return out.(T), nil
}
