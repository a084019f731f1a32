// Package compare implements equality over value.Value scalars, ordered and
// unordered sequences, maps, and user objects dispatched through a
// registry.Registry.
package compare

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/joshuapare/deltakit/value"
)

// Scalar reports whether two same-kind Values are equal under opt. Callers
// comparing Values of different Kind should treat them as unequal without
// calling Scalar — a Kind mismatch is never equal regardless of payload.
func Scalar(opt value.Options, left, right value.Value) bool {
	if left.Kind() != right.Kind() {
		return false
	}
	switch left.Kind() {
	case value.KindNull:
		return true
	case value.KindString:
		l, _ := left.AsString()
		r, _ := right.AsString()
		return stringsEqual(opt.StringComparison, l, r)
	case value.KindFloat32:
		l, _ := left.AsFloat32()
		r, _ := right.AsFloat32()
		return float32Equal(l, r, opt.FloatEpsilon, opt.TreatNaNEqual)
	case value.KindFloat64:
		l, _ := left.AsFloat64()
		r, _ := right.AsFloat64()
		return float64Equal(l, r, opt.DoubleEpsilon, opt.TreatNaNEqual)
	case value.KindDecimal:
		l, _ := left.AsDecimal()
		r, _ := right.AsDecimal()
		return value.EqualDecimal(l, r, opt.DecimalEpsilon)
	case value.KindByteArray:
		l, _ := left.AsByteArray()
		r, _ := right.AsByteArray()
		return bytesEqual(l, r)
	case value.KindEnum:
		lu, lt, _ := left.AsEnum()
		ru, rt, _ := right.AsEnum()
		return lu == ru && lt == rt
	case value.KindDateTime:
		lt, lk, _ := left.AsDateTime()
		rt, rk, _ := right.AsDateTime()
		return lt == rt && lk == rk
	case value.KindDateTimeOffset:
		lt, lo, _ := left.AsDateTimeOffset()
		rt, ro, _ := right.AsDateTimeOffset()
		return lt == rt && lo == ro
	case value.KindGUID:
		l, _ := left.AsGUID()
		r, _ := right.AsGUID()
		return l == r
	case value.KindTimeSpan:
		l, _ := left.AsTimeSpan()
		r, _ := right.AsTimeSpan()
		return l == r
	default:
		// Bool/Int*/Uint*/Char16 all store their entire payload in the raw
		// bits word, so equality of the Kind (already checked above) plus
		// bits is exact.
		return left.Bits() == right.Bits()
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func float32Equal(a, b, epsilon float32, nanEqual bool) bool {
	if a != a || b != b { // either is NaN
		if a != a && b != b {
			return nanEqual
		}
		return false
	}
	if epsilon <= 0 {
		return a == b
	}
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff <= epsilon
}

func float64Equal(a, b, epsilon float64, nanEqual bool) bool {
	if a != a || b != b {
		if a != a && b != b {
			return nanEqual
		}
		return false
	}
	if epsilon <= 0 {
		return a == b
	}
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff <= epsilon
}

func stringsEqual(mode value.StringComparison, a, b string) bool {
	switch mode {
	case value.Ordinal:
		return a == b
	case value.OrdinalIgnoreCase:
		return cases.Fold().String(a) == cases.Fold().String(b)
	case value.Invariant:
		return collate.New(language.Und).CompareString(a, b) == 0
	case value.InvariantIgnoreCase:
		return collate.New(language.Und, collate.IgnoreCase).CompareString(a, b) == 0
	case value.Current:
		return collate.New(language.English).CompareString(a, b) == 0
	case value.CurrentIgnoreCase:
		return collate.New(language.English, collate.IgnoreCase).CompareString(a, b) == 0
	default:
		return a == b
	}
}
