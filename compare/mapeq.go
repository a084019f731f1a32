package compare

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/text/cases"

	"github.com/joshuapare/deltakit/value"
)

// MapEntry is one key/value pair of a map-shaped container. Aliased from
// value so the same representation serves comparison, delta computation,
// application, and the codec without any of them needing to convert.
type MapEntry = value.MapEntry

// Map reports whether two maps (given as ordered entry slices, order
// irrelevant to the result) hold the same set of keys with pairwise-equal
// values under valueEq. Keys are compared with Scalar semantics (string
// comparison mode, etc. from opt); values are compared via valueEq so a
// caller can plug in registry-dispatched deep equality for container-typed
// values.
func Map(opt value.Options, left, right []MapEntry, valueEq ElementEqual) bool {
	if len(left) != len(right) {
		return false
	}

	leftKeys := mapset.NewThreadUnsafeSet[string]()
	rightKeys := mapset.NewThreadUnsafeSet[string]()
	leftByKey := make(map[string]value.Value, len(left))
	rightByKey := make(map[string]value.Value, len(right))

	for _, e := range left {
		k := CanonicalMapKey(opt, e.Key)
		leftKeys.Add(k)
		leftByKey[k] = e.Value
	}
	for _, e := range right {
		k := CanonicalMapKey(opt, e.Key)
		rightKeys.Add(k)
		rightByKey[k] = e.Value
	}

	if !leftKeys.Equal(rightKeys) {
		return false
	}
	for k, lv := range leftByKey {
		if !valueEq(lv, rightByKey[k]) {
			return false
		}
	}
	return true
}

// MissingKeys returns the keys present in left but absent from right, under
// opt's key comparison semantics. Used by map delta computation to decide
// which DictRemove ops to emit.
func MissingKeys(opt value.Options, left, right []MapEntry) []value.Value {
	rightKeys := mapset.NewThreadUnsafeSet[string]()
	for _, e := range right {
		rightKeys.Add(CanonicalMapKey(opt, e.Key))
	}
	var missing []value.Value
	seen := mapset.NewThreadUnsafeSet[string]()
	for _, e := range left {
		k := CanonicalMapKey(opt, e.Key)
		if !rightKeys.Contains(k) && !seen.Contains(k) {
			missing = append(missing, e.Key)
			seen.Add(k)
		}
	}
	return missing
}

func CanonicalMapKey(opt value.Options, k value.Value) string {
	switch k.Kind() {
	case value.KindString:
		s, _ := k.AsString()
		if opt.StringComparison.IgnoresCase() {
			s = cases.Fold().String(s)
		}
		return "s:" + s
	case value.KindGUID:
		g, _ := k.AsGUID()
		return "g:" + g.String()
	case value.KindDecimal:
		d, _ := k.AsDecimal()
		return "d:" + d.Rat().RatString()
	case value.KindEnum:
		_, typ, _ := k.AsEnum()
		return fmt.Sprintf("e:%s:%d", typ, k.Bits())
	default:
		return fmt.Sprintf("%d:%d", k.Kind(), k.Bits())
	}
}
