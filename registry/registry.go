package registry

import (
	"reflect"
	"sync"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/joshuapare/deltakit/dkctx"
	"github.com/joshuapare/deltakit/delta"
)

// negativeCacheSize bounds the LRU cache of types known NOT to resolve to a
// descriptor, so a hot path that repeatedly probes an unregistered type
// doesn't keep re-walking the interface fallback list.
const negativeCacheSize = 4096

// ifaceEntry pairs an interface reflect.Type with the descriptor to use for
// any concrete type implementing it, checked only after an exact miss.
type ifaceEntry struct {
	iface reflect.Type
	desc  Descriptor
}

// Registry is the process-wide (or test-local) table of type descriptors.
// It is safe for concurrent registration and lookup.
type Registry struct {
	exact   sync.Map // reflect.Type -> Descriptor
	ifaceMu sync.RWMutex
	ifaces  []ifaceEntry

	negative *lru.Cache[reflect.Type, struct{}]

	version atomic.Uint64

	warmMu sync.Mutex
	warm   map[reflect.Type]func() error
}

// New builds an empty Registry.
func New() *Registry {
	neg, err := lru.New[reflect.Type, struct{}](negativeCacheSize)
	if err != nil {
		// Only returns an error for a non-positive size, which
		// negativeCacheSize never is.
		panic(err)
	}
	return &Registry{
		negative: neg,
		warm:     make(map[reflect.Type]func() error),
	}
}

// Default is the process-wide registry used by callers that don't construct
// their own. Most programs register their types here once at init time.
var Default = New()

// Version returns a counter that increments on every successful
// registration, letting callers invalidate their own derived caches (e.g. a
// reflection-based field-offset cache keyed by type) when the registry
// shape changes underneath them.
func (r *Registry) Version() uint64 {
	return r.version.Load()
}

func (r *Registry) bumpVersion() {
	r.version.Add(1)
	r.negative.Purge()
}

// RegisterComparer installs a type-safe comparer for T, wrapping it into
// the any-erased Descriptor.Compare stored in the registry.
func RegisterComparer[T any](r *Registry, fn func(ctx *dkctx.Context, left, right T) bool) {
	t := typeOf[T]()
	r.merge(t, Descriptor{Compare: func(ctx *dkctx.Context, left, right any) bool {
		return fn(ctx, left.(T), right.(T))
	}})
}

// RegisterDelta installs a type-safe delta computer for T.
func RegisterDelta[T any](r *Registry, fn func(ctx *dkctx.Context, w *delta.Writer, left, right T) error) {
	t := typeOf[T]()
	r.merge(t, Descriptor{Delta: func(ctx *dkctx.Context, w *delta.Writer, left, right any) error {
		return fn(ctx, w, left.(T), right.(T))
	}})
}

// RegisterApply installs a type-safe delta applier for T.
func RegisterApply[T any](r *Registry, fn func(target T, reader *delta.Reader) (T, error)) {
	t := typeOf[T]()
	r.merge(t, Descriptor{Apply: func(target any, reader *delta.Reader) (any, error) {
		return fn(target.(T), reader)
	}})
}

// RegisterDiff installs an optional type-safe diff shortcut for T.
func RegisterDiff[T any](r *Registry, fn func(ctx *dkctx.Context, left, right T) (*delta.Document, error)) {
	t := typeOf[T]()
	r.merge(t, Descriptor{Diff: func(ctx *dkctx.Context, left, right any) (*delta.Document, error) {
		return fn(ctx, left.(T), right.(T))
	}})
}

// RegisterInterface installs a Descriptor that applies to every concrete
// type implementing iface (a pointer to an interface value, e.g.
// (*MyInterface)(nil)), consulted only when an exact reflect.Type match is
// not found. Interface descriptors are checked in registration order; the
// first match wins.
func RegisterInterface(r *Registry, iface reflect.Type, desc Descriptor) {
	if iface.Kind() != reflect.Interface {
		panic("registry: RegisterInterface requires an interface reflect.Type")
	}
	r.ifaceMu.Lock()
	r.ifaces = append(r.ifaces, ifaceEntry{iface: iface, desc: desc})
	r.ifaceMu.Unlock()
	r.bumpVersion()
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// merge upserts the fields of patch into the existing descriptor for t (or
// creates a fresh one), so RegisterComparer/RegisterDelta/RegisterApply for
// the same T can be called independently and in any order.
func (r *Registry) merge(t reflect.Type, patch Descriptor) {
	existing, _ := r.exact.Load(t)
	d, _ := existing.(Descriptor)
	d.Type = t
	if patch.Compare != nil {
		d.Compare = patch.Compare
	}
	if patch.Delta != nil {
		d.Delta = patch.Delta
	}
	if patch.Apply != nil {
		d.Apply = patch.Apply
	}
	if patch.Diff != nil {
		d.Diff = patch.Diff
	}
	r.exact.Store(t, d)
	r.bumpVersion()
}

// Lookup resolves the Descriptor registered for t. It tries an exact
// reflect.Type match first, then falls back to any registered interface
// descriptor t satisfies, in registration order. A prior negative result is
// cached so repeated misses for the same type stay cheap.
func (r *Registry) Lookup(t reflect.Type) (Descriptor, bool) {
	if v, ok := r.exact.Load(t); ok {
		return v.(Descriptor), true
	}
	if _, known := r.negative.Get(t); known {
		return Descriptor{}, false
	}

	r.ifaceMu.RLock()
	defer r.ifaceMu.RUnlock()
	for _, e := range r.ifaces {
		if t.Implements(e.iface) {
			return e.desc, true
		}
	}
	r.negative.Add(t, struct{}{})
	return Descriptor{}, false
}

// MustLookup is Lookup but panics on a miss; useful in tests and in
// internal call sites that already validated the type is registered.
func (r *Registry) MustLookup(t reflect.Type) Descriptor {
	d, ok := r.Lookup(t)
	if !ok {
		panic("registry: no descriptor for " + t.String())
	}
	return d
}

// RegisterWarmUp records fn as the warm-up routine for t, run the first
// time WarmUp(t) is called (and never again, regardless of outcome).
func (r *Registry) RegisterWarmUp(t reflect.Type, fn func() error) {
	r.warmMu.Lock()
	r.warm[t] = fn
	r.warmMu.Unlock()
}

// WarmUp runs and clears the warm-up routine registered for t, if any. It
// is a no-op (returning nil) when no warm-up was registered. Typical use is
// forcing a descriptor's lazy reflection caches to build outside a request
// path, e.g. at process startup for latency-sensitive types.
func (r *Registry) WarmUp(t reflect.Type) error {
	r.warmMu.Lock()
	fn, ok := r.warm[t]
	if ok {
		delete(r.warm, t)
	}
	r.warmMu.Unlock()
	if !ok {
		return nil
	}
	return fn()
}
