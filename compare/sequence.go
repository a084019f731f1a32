package compare

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/joshuapare/deltakit/value"
)

// ElementEqual reports equality of two sequence/map elements, which may be
// scalar Values (typically compared via Scalar) or registered user objects
// (typically compared through a registry.Registry, e.g. via Deep).
type ElementEqual func(left, right value.Value) bool

// OrderedSequence reports whether two same-length, position-significant
// sequences are element-wise equal, short-circuiting on the first length
// mismatch or unequal element.
func OrderedSequence(left, right []value.Value, eq ElementEqual) bool {
	if len(left) != len(right) {
		return false
	}
	for i := range left {
		if !eq(left[i], right[i]) {
			return false
		}
	}
	return true
}

// UnorderedSequence reports whether two sequences contain the same
// multiset of elements, ignoring order. When every element Kind present is
// hash-friendly AND opt requests exact (non-epsilon) scalar equality, it
// takes an O(n) path via per-element frequency counting on a canonical key;
// otherwise it falls back to an O(n^2) greedy matching that calls eq
// directly. The fallback is required whenever Decimal epsilon tolerance is
// in play, since an epsilon-fuzzy equality cannot be reduced to an exact
// hash key.
func UnorderedSequence(opt value.Options, left, right []value.Value, eq ElementEqual) bool {
	if len(left) != len(right) {
		return false
	}
	if opt.DecimalEpsilon.IsZero() && allHashFriendly(left) && allHashFriendly(right) {
		return unorderedHashFriendly(left, right)
	}
	return unorderedQuadratic(left, right, eq)
}

func allHashFriendly(vs []value.Value) bool {
	for _, v := range vs {
		if !v.Kind().IsHashFriendly() {
			return false
		}
	}
	return true
}

// hashKey is a comparable Go value standing in for a hash-friendly Value.
// Kind is folded in so distinct kinds with colliding payloads (e.g.
// Int32(1) and Uint32(1)) never compare equal; every other field only
// carries a meaningful value for the kinds that actually use it.
type hashKey struct {
	kind value.Kind
	bits uint64
	str  string
	guid uuid.UUID
}

func rawKey(v value.Value) hashKey {
	k := hashKey{kind: v.Kind(), bits: v.Bits()}
	switch v.Kind() {
	case value.KindString:
		k.str, _ = v.AsString()
	case value.KindGUID:
		k.guid, _ = v.AsGUID()
	case value.KindDecimal:
		d, _ := v.AsDecimal()
		// Rat() reduces to a canonical lowest-terms fraction, so 1.0 and
		// 1.00 (different Lo/Mid/Hi/Flags, same numeric value) hash equal.
		k.str = d.Rat().RatString()
	case value.KindEnum:
		_, k.str, _ = v.AsEnum()
	case value.KindDateTimeOffset:
		// Bits alone only carries the ticks; fold the UTC offset into str
		// since two identical ticks at different offsets are not equal.
		_, offset, _ := v.AsDateTimeOffset()
		k.str = strconv.Itoa(int(offset))
	case value.KindDateTime:
		// Bits alone only carries the ticks; fold in the provenance kind
		// (UTC/Local/Unspecified), which Scalar also requires to match.
		_, dtKind, _ := v.AsDateTime()
		k.str = strconv.Itoa(int(dtKind))
	}
	return k
}

// unorderedHashFriendly compares multisets by per-element frequency, not
// just set membership — [1,1,2] and [1,2,2] share the same distinct
// elements but are not equal multisets.
func unorderedHashFriendly(left, right []value.Value) bool {
	counts := make(map[hashKey]int, len(left))
	for _, v := range left {
		counts[rawKey(v)]++
	}
	for _, v := range right {
		k := rawKey(v)
		counts[k]--
		if counts[k] < 0 {
			return false
		}
	}
	for _, c := range counts {
		if c != 0 {
			return false
		}
	}
	return true
}

func unorderedQuadratic(left, right []value.Value, eq ElementEqual) bool {
	used := make([]bool, len(right))
	for _, l := range left {
		matched := false
		for j, r := range right {
			if used[j] {
				continue
			}
			if eq(l, r) {
				used[j] = true
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}
