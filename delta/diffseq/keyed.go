package diffseq

import (
	"github.com/joshuapare/deltakit/compare"
	"github.com/joshuapare/deltakit/delta"
	"github.com/joshuapare/deltakit/dkctx"
	"github.com/joshuapare/deltakit/value"
)

// KeyFunc extracts the stable identity key of a keyed-sequence element.
type KeyFunc func(element value.Value) value.Value

type keyedLeftEntry struct {
	index int32
	value value.Value
}

// Keyed computes the delta between two keyed sequences — ordered
// collections whose elements carry a stable identity key independent of
// position, e.g. a list of objects keyed by an ID field. Unlike Ordered, a
// pure reorder with no other change emits no ops: position is addressed
// through each element's original index, not through where it sits in
// left/right.
//
// Removals (keys in left but absent from right) are written first, in left
// order, each carrying the removed element so apply's expected-value guard
// can no-op a stale replay. Adds and edits follow, in right order: a key
// absent from left emits SeqAddAt at its right-side index; a key present on
// both sides opens a SeqNestedAt scope at its left-side index when elemDiff
// can recurse into it, or emits SeqReplaceAt otherwise.
func Keyed(ctx *dkctx.Context, w *delta.Writer, memberIndex int32, left, right []value.Value, key KeyFunc, elemDiff ElementDiff) error {
	opt := ctx.Options

	leftByKey := make(map[string]keyedLeftEntry, len(left))
	for i, e := range left {
		leftByKey[compare.CanonicalMapKey(opt, key(e))] = keyedLeftEntry{index: int32(i), value: e}
	}
	rightKeys := make(map[string]struct{}, len(right))
	for _, e := range right {
		rightKeys[compare.CanonicalMapKey(opt, key(e))] = struct{}{}
	}

	for i, e := range left {
		if _, ok := rightKeys[compare.CanonicalMapKey(opt, key(e))]; !ok {
			if err := w.WriteSeqRemoveAt(memberIndex, int32(i), e); err != nil {
				return err
			}
		}
	}

	for i, re := range right {
		k := compare.CanonicalMapKey(opt, key(re))
		le, ok := leftByKey[k]
		if !ok {
			if err := w.WriteSeqAddAt(memberIndex, int32(i), re); err != nil {
				return err
			}
			continue
		}
		if elementsEqual(opt, le.value, re) {
			continue
		}
		if elemDiff != nil && le.value.Kind() == value.KindObject && re.Kind() == value.KindObject {
			scope, err := w.BeginSeqNestedAt(memberIndex, le.index)
			if err != nil {
				return err
			}
			if err := elemDiff(ctx, scope.Writer(), le.value, re); err != nil {
				return err
			}
			if err := scope.Close(); err != nil {
				return err
			}
			continue
		}
		if err := w.WriteSeqReplaceAt(memberIndex, le.index, re); err != nil {
			return err
		}
	}
	return nil
}
