package value

import "math/big"

// Decimal is a bit-exact 128-bit decimal, laid out the way the codec writes
// it on the wire: four little-endian uint32 words matching the
// well-known in-memory layout of a 96-bit unsigned mantissa (Lo/Mid/Hi) plus
// a Flags word whose bits 16-23 hold the scale (0-28) and bit 31 holds the
// sign. Deltakit never needs arithmetic beyond equality, so Decimal carries
// no arithmetic methods beyond what comparison and the codec require.
type Decimal struct {
	Lo    uint32
	Mid   uint32
	Hi    uint32
	Flags uint32
}

const (
	decimalSignMask  = 0x8000_0000
	decimalScaleMask = 0x00FF_0000
	decimalScaleShift = 16
)

// NewDecimal builds a Decimal from an unscaled 96-bit mantissa, a scale
// (number of digits right of the decimal point, 0-28) and a sign (true means
// negative).
func NewDecimal(lo, mid, hi uint32, scale uint8, negative bool) Decimal {
	flags := uint32(scale) << decimalScaleShift
	if negative {
		flags |= decimalSignMask
	}
	return Decimal{Lo: lo, Mid: mid, Hi: hi, Flags: flags}
}

// Negative reports whether the decimal is negative.
func (d Decimal) Negative() bool {
	return d.Flags&decimalSignMask != 0
}

// Scale returns the number of digits to the right of the decimal point.
func (d Decimal) Scale() uint8 {
	return uint8((d.Flags & decimalScaleMask) >> decimalScaleShift)
}

// mantissa returns the unsigned 96-bit integer Hi:Mid:Lo as a big.Int.
func (d Decimal) mantissa() *big.Int {
	m := new(big.Int).SetUint64(uint64(d.Hi))
	m.Lsh(m, 64)
	lowPart := new(big.Int).SetUint64(uint64(d.Mid)<<32 | uint64(d.Lo))
	m.Or(m, lowPart)
	return m
}

// Rat returns the exact rational value of the decimal: ±mantissa / 10^scale.
func (d Decimal) Rat() *big.Rat {
	m := d.mantissa()
	r := new(big.Rat).SetInt(m)
	if d.Negative() {
		r.Neg(r)
	}
	denom := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(d.Scale())), nil)
	r.Quo(r, new(big.Rat).SetInt(denom))
	return r
}

// Cmp returns -1, 0, or 1 comparing the numeric value of d against other,
// regardless of differing scale (1.0 and 1.00 compare equal).
func (d Decimal) Cmp(other Decimal) int {
	return d.Rat().Cmp(other.Rat())
}

// IsZero reports whether the decimal's numeric value is zero.
func (d Decimal) IsZero() bool {
	return d.mantissa().Sign() == 0
}

// EqualDecimal reports decimal equality: epsilon == 0 means exact numeric
// equality (scale-insensitive); epsilon > 0 means the absolute numeric
// difference must not exceed epsilon.
func EqualDecimal(a, b Decimal, epsilon Decimal) bool {
	if epsilon.IsZero() {
		return a.Cmp(b) == 0
	}
	diff := new(big.Rat).Sub(a.Rat(), b.Rat())
	diff.Abs(diff)
	return diff.Cmp(epsilon.Rat()) <= 0
}
