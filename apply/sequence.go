// Package apply supplies the primitives a registered type's delta applier
// uses to fold a delta.Document back onto a target value: ordered-sequence
// patching, map patching, and member-level dispatch. It stays free of any
// dependency on the registry itself — a generated/hand-written Apply
// function drives these primitives and recurses through the registry on
// its own when a member's value is itself a registered object.
package apply

import (
	"github.com/joshuapare/deltakit/delta"
	"github.com/joshuapare/deltakit/dkerr"
	"github.com/joshuapare/deltakit/value"
)

// ElementApply recurses a SeqNestedAt op's sub-document into an existing
// element, returning the element's new value.
type ElementApply func(target value.Value, r *delta.Reader) (value.Value, error)

// Sequence applies ops — already filtered to one member's Seq* ops, in
// document order — to target, an ordered sequence, returning the result.
// target is never mutated: Sequence clones before the first write.
//
// Every op kind carries a replay guard so re-applying a document that was
// already (wholly or partially) applied is a no-op rather than an error:
//   - SeqRemoveAt skips when the index is out of range or the element
//     there no longer matches the expected value the op carries
//   - SeqReplaceAt skips the write when the element already holds the new
//     value
//   - SeqAddAt skips the insertion under five conditions (replay at the
//     target index, a would-be duplicate triple either side of the target
//     index, append-after-append, and old-length replay — see
//     applySeqOp) and clamps to the end, rather than erroring, when the
//     index lands beyond the current length
//
// A contiguous run of SeqAddAt ops with strictly increasing Index, and
// nothing else, takes a single left-to-right merge pass instead of paying
// an O(n) shift per insertion — but only once isAscendingAddRun has
// confirmed against target that none of the run's insertion points are
// already present; any such collision aborts the fast lane so the guarded
// per-op path below can decide instead.
func Sequence(ops []delta.Op, target []value.Value, elemApply ElementApply) ([]value.Value, error) {
	if isAscendingAddRun(ops, target) {
		return mergeAscendingAdds(ops, target), nil
	}

	out := append([]value.Value(nil), target...)
	for _, op := range ops {
		var err error
		out, err = applySeqOp(op, out, elemApply)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func applySeqOp(op delta.Op, out []value.Value, elemApply ElementApply) ([]value.Value, error) {
	switch op.Kind {
	case delta.SeqAddAt:
		idx := int(op.Index)
		if idx < 0 {
			return nil, dkerr.New(dkerr.KindContract, "SeqAddAt index %d out of range for length %d", idx, len(out))
		}
		count := len(out)
		if idx > count {
			// Beyond the end: clamp to the tail unless the append already
			// happened (replay).
			if count > 0 && addGuardMatch(out[count-1], *op.Value) {
				return out, nil
			}
			return append(out, *op.Value), nil
		}

		switch {
		case idx < count && addGuardMatch(out[idx], *op.Value):
			return out, nil // replay at the target index
		case idx+1 < count && addGuardMatch(out[idx], *op.Value) && addGuardMatch(out[idx+1], *op.Value):
			return out, nil // would create a duplicate triple
		case idx == count && count > 0 && addGuardMatch(out[count-1], *op.Value):
			return out, nil // append-after-append
		case idx == count-1 && addGuardMatch(out[idx], *op.Value):
			return out, nil // old-length replay
		case idx > 0 && idx < count && addGuardMatch(out[idx-1], *op.Value) && addGuardMatch(out[idx], *op.Value):
			return out, nil // no-triples guard
		}

		out = append(out, value.Value{})
		copy(out[idx+1:], out[idx:])
		out[idx] = *op.Value
		return out, nil

	case delta.SeqRemoveAt:
		if op.Value == nil {
			return nil, dkerr.Wrap(dkerr.KindContract, dkerr.ErrSeqRemoveMismatch, "SeqRemoveAt op missing its expected value")
		}
		idx := int(op.Index)
		if idx < 0 || idx >= len(out) || !bitsEqual(out[idx], *op.Value) {
			return out, nil
		}
		return append(out[:idx], out[idx+1:]...), nil

	case delta.SeqReplaceAt:
		idx := int(op.Index)
		if idx < 0 || idx >= len(out) {
			return nil, dkerr.New(dkerr.KindContract, "SeqReplaceAt index %d out of range for length %d", idx, len(out))
		}
		if bitsEqual(out[idx], *op.Value) {
			return out, nil
		}
		out[idx] = *op.Value
		return out, nil

	case delta.SeqNestedAt:
		idx := int(op.Index)
		if idx < 0 || idx >= len(out) {
			return nil, dkerr.New(dkerr.KindContract, "SeqNestedAt index %d out of range for length %d", idx, len(out))
		}
		if elemApply == nil {
			return nil, dkerr.New(dkerr.KindContract, "SeqNestedAt op without an element applier")
		}
		nv, err := elemApply(out[idx], delta.NewReader(op.Nested))
		if err != nil {
			return nil, err
		}
		out[idx] = nv
		return out, nil

	default:
		return nil, dkerr.New(dkerr.KindContract, "op kind %s is not a sequence op", op.Kind)
	}
}

// bitsEqual is a cheap, exact identity check used by the SeqRemoveAt and
// SeqReplaceAt guards above — it is not Scalar equality (no string-mode/
// epsilon semantics) because the guard only needs to recognize "this op's
// expected value matches what's there," not fuzzy domain equality. A
// registered object's Value carries no scalar payload, so every
// KindObject Value shares the same zero Bits(): the guard treats that as
// a match, since for these two ops the alternative (never matching) would
// silently skip the write instead of performing the caller's intended
// removal or replacement.
func bitsEqual(a, b value.Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	return a.Bits() == b.Bits()
}

// addGuardMatch is bitsEqual's counterpart for the SeqAddAt no-op guards:
// there, Bits() is consulted to detect "this insertion already happened,"
// and for KindObject a zero-Bits() match would be a false positive —
// silently dropping a genuine insert of a second, distinct object. So
// unlike bitsEqual, KindObject never matches here; the guards simply
// never fire for object elements, and a replayed SeqAddAt of an object
// element re-inserts rather than risk skipping a real one.
func addGuardMatch(a, b value.Value) bool {
	if a.Kind() != b.Kind() || a.Kind() == value.KindObject {
		return false
	}
	return a.Bits() == b.Bits()
}

// isAscendingAddRun reports whether ops is a non-empty run of SeqAddAt ops
// with strictly increasing Index and, walking target alongside the same
// left-to-right merge mergeAscendingAdds performs, none of them land on an
// index that already holds the value being inserted. That collision is the
// signature of a document (or part of one) already applied to target —
// mergeAscendingAdds has no per-op guard, so any such collision must fall
// back to the generic, guarded path in Sequence instead.
func isAscendingAddRun(ops []delta.Op, target []value.Value) bool {
	if len(ops) == 0 {
		return false
	}
	last := int32(-1)
	ti := 0
	for _, op := range ops {
		if op.Kind != delta.SeqAddAt || op.Index <= last {
			return false
		}
		last = op.Index
		for ti < int(op.Index) && ti < len(target) {
			ti++
		}
		if ti < len(target) && addGuardMatch(target[ti], *op.Value) {
			return false
		}
	}
	return true
}

// mergeAscendingAdds interleaves ops (validated ascending SeqAddAt) into
// target in one pass: each op.Index is the element's final position in the
// result, so everything from target not yet consumed is copied through
// until the next insertion point is reached.
func mergeAscendingAdds(ops []delta.Op, target []value.Value) []value.Value {
	out := make([]value.Value, 0, len(target)+len(ops))
	ti := 0
	for _, op := range ops {
		for int32(len(out)) < op.Index && ti < len(target) {
			out = append(out, target[ti])
			ti++
		}
		out = append(out, *op.Value)
	}
	out = append(out, target[ti:]...)
	return out
}
