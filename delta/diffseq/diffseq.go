// Package diffseq computes delta ops for ordered and keyed sequences,
// writing through a delta.Writer scoped to one member.
package diffseq

import (
	"github.com/joshuapare/deltakit/compare"
	"github.com/joshuapare/deltakit/delta"
	"github.com/joshuapare/deltakit/dkctx"
	"github.com/joshuapare/deltakit/value"
)

// ElementDiff recurses into two unequal elements at the same index,
// writing ops into the nested scope w. Scalar elements typically call
// w.WriteSeqReplaceAt/WriteSeqAddAt/WriteSeqRemoveAt directly instead of
// using ElementDiff; ElementDiff exists for registered user-object
// elements that need a NestedMember-style recursive scope.
type ElementDiff func(ctx *dkctx.Context, w *delta.Writer, left, right value.Value) error

// elementsEqual reports scalar equality, except Object-kind elements are
// never considered equal here: Value carries no scalar payload for them, so
// the only way to establish equality is recursing through elemDiff/the
// registry, not a bit comparison.
func elementsEqual(opt value.Options, left, right value.Value) bool {
	if left.Kind() == value.KindObject || right.Kind() == value.KindObject {
		return false
	}
	return compare.Scalar(opt, left, right)
}

// Ordered computes the delta from left to right, an order-significant
// sequence, writing SeqReplaceAt/SeqAddAt/SeqRemoveAt/SeqNestedAt ops
// scoped to memberIndex into w.
//
// The algorithm trims a common prefix and suffix first, then resolves the
// remaining middle window:
//   - both sides empty after trimming: no-op
//   - only removals remain (right window empty): emit SeqRemoveAt in
//     descending index order, so earlier removals don't shift the index of
//     a later one
//   - only insertions remain (left window empty): emit SeqAddAt in
//     ascending index order, so each insertion lands at its final position
//   - both windows non-empty and equal length: emit SeqReplaceAt
//     (recursing via elemDiff for unequal registered-object elements)
//     pairwise
//   - both windows non-empty, unequal length: replace the overlapping
//     prefix pairwise, then insert or remove the remainder
func Ordered(ctx *dkctx.Context, w *delta.Writer, memberIndex int32, left, right []value.Value, elemDiff ElementDiff) error {
	opt := ctx.Options

	start := 0
	for start < len(left) && start < len(right) && elementsEqual(opt, left[start], right[start]) {
		start++
	}

	endL, endR := len(left), len(right)
	for endL > start && endR > start && elementsEqual(opt, left[endL-1], right[endR-1]) {
		endL--
		endR--
	}

	midLeft := left[start:endL]
	midRight := right[start:endR]

	switch {
	case len(midLeft) == 0 && len(midRight) == 0:
		return nil
	case len(midRight) == 0:
		// Only removals remain; remove from the back so earlier removals
		// never shift an index still to be removed.
		for i := len(midLeft) - 1; i >= 0; i-- {
			if err := w.WriteSeqRemoveAt(memberIndex, int32(start+i), midLeft[i]); err != nil {
				return err
			}
		}
		return nil
	case len(midLeft) == 0:
		for i, v := range midRight {
			if err := w.WriteSeqAddAt(memberIndex, int32(start+i), v); err != nil {
				return err
			}
		}
		return nil
	}

	overlap := len(midLeft)
	if len(midRight) < overlap {
		overlap = len(midRight)
	}
	for i := 0; i < overlap; i++ {
		if elementsEqual(opt, midLeft[i], midRight[i]) {
			continue
		}
		if elemDiff != nil && midLeft[i].Kind() == value.KindObject && midRight[i].Kind() == value.KindObject {
			scope, err := w.BeginSeqNestedAt(memberIndex, int32(start+i))
			if err != nil {
				return err
			}
			if err := elemDiff(ctx, scope.Writer(), midLeft[i], midRight[i]); err != nil {
				return err
			}
			if err := scope.Close(); err != nil {
				return err
			}
			continue
		}
		if err := w.WriteSeqReplaceAt(memberIndex, int32(start+i), midRight[i]); err != nil {
			return err
		}
	}

	switch {
	case len(midLeft) > overlap:
		for i := len(midLeft) - 1; i >= overlap; i-- {
			if err := w.WriteSeqRemoveAt(memberIndex, int32(start+i), midLeft[i]); err != nil {
				return err
			}
		}
	case len(midRight) > overlap:
		for i := overlap; i < len(midRight); i++ {
			if err := w.WriteSeqAddAt(memberIndex, int32(start+i), midRight[i]); err != nil {
				return err
			}
		}
	}
	return nil
}
