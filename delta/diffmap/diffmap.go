// Package diffmap computes delta ops for map-shaped members: upserts,
// removals, and (when a value-level diff function is supplied) nested
// recursion into an existing entry's value.
package diffmap

import (
	"sort"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/joshuapare/deltakit/compare"
	"github.com/joshuapare/deltakit/delta"
	"github.com/joshuapare/deltakit/dkctx"
	"github.com/joshuapare/deltakit/value"
)

// Entry is one key/value pair of a map-shaped member.
type Entry = compare.MapEntry

// ValueDiff recurses into two unequal values sharing a key, writing ops
// into the nested scope w. Returning it as nil from the caller makes Map
// always emit a flat DictSet replacement instead of ever opening a
// DictNested scope.
type ValueDiff func(ctx *dkctx.Context, w *delta.Writer, left, right value.Value) error

// Map computes the delta from left to right, a map-shaped member, writing
// DictRemove/DictSet/DictNested ops scoped to memberIndex into w.
//
//   - a key present in left but not right emits DictRemove
//   - a key present in right but not left emits DictSet
//   - a key in both with an unequal scalar value emits DictSet (full
//     replacement) — DictNested is reserved for keys whose value is itself
//     a registered object, where valueDiff opens a nested recursive scope
//     instead of flattening a potentially large sub-object into one op
func Map(ctx *dkctx.Context, w *delta.Writer, memberIndex int32, left, right []Entry, valueDiff ValueDiff) error {
	opt := ctx.Options

	leftByKey := make(map[string]Entry, len(left))
	leftOrder := make(map[string]int, len(left))
	leftKeys := mapset.NewThreadUnsafeSet[string]()
	for i, e := range left {
		k := compare.CanonicalMapKey(opt, e.Key)
		leftByKey[k] = e
		leftOrder[k] = i
		leftKeys.Add(k)
	}

	rightByKey := make(map[string]Entry, len(right))
	rightOrder := make(map[string]int, len(right))
	rightKeys := mapset.NewThreadUnsafeSet[string]()
	for i, e := range right {
		k := compare.CanonicalMapKey(opt, e.Key)
		rightByKey[k] = e
		rightOrder[k] = i
		rightKeys.Add(k)
	}

	// mapset's backing map iterates in a non-deterministic order; ToSlice
	// results are re-sorted by each key's original position so removals
	// come out in left order and adds/common keys in right order, matching
	// how the slice-indexed keyed-sequence diff (diffseq.Keyed) already
	// orders its ops.
	removed := leftKeys.Difference(rightKeys).ToSlice()
	sort.Slice(removed, func(i, j int) bool { return leftOrder[removed[i]] < leftOrder[removed[j]] })
	for _, k := range removed {
		if err := w.WriteDictRemove(memberIndex, leftByKey[k].Key); err != nil {
			return err
		}
	}

	added := rightKeys.Difference(leftKeys).ToSlice()
	sort.Slice(added, func(i, j int) bool { return rightOrder[added[i]] < rightOrder[added[j]] })
	for _, k := range added {
		if err := w.WriteDictSet(memberIndex, rightByKey[k].Key, rightByKey[k].Value); err != nil {
			return err
		}
	}

	common := leftKeys.Intersect(rightKeys).ToSlice()
	sort.Slice(common, func(i, j int) bool { return rightOrder[common[i]] < rightOrder[common[j]] })
	for _, k := range common {
		lv := leftByKey[k].Value
		rv := rightByKey[k].Value
		// Object-kind values never compare equal via Scalar — they carry no
		// scalar payload, so equality can only be established by recursing
		// through valueDiff/the registry.
		if lv.Kind() != value.KindObject && rv.Kind() != value.KindObject && compare.Scalar(opt, lv, rv) {
			continue
		}
		if valueDiff != nil && lv.Kind() == value.KindObject && rv.Kind() == value.KindObject {
			scope, err := w.BeginDictNested(memberIndex, rightByKey[k].Key)
			if err != nil {
				return err
			}
			if err := valueDiff(ctx, scope.Writer(), lv, rv); err != nil {
				return err
			}
			if err := scope.Close(); err != nil {
				return err
			}
			continue
		}
		if err := w.WriteDictSet(memberIndex, rightByKey[k].Key, rv); err != nil {
			return err
		}
	}
	return nil
}
