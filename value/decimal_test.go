package value

import "testing"

func TestDecimalCmpScaleInsensitive(t *testing.T) {
	// 1.0 and 1.00 should compare equal despite differing scale.
	one := NewDecimal(10, 0, 0, 1, false)   // 10 / 10^1 = 1.0
	oneOO := NewDecimal(100, 0, 0, 2, false) // 100 / 10^2 = 1.00
	if one.Cmp(oneOO) != 0 {
		t.Fatalf("expected 1.0 == 1.00, cmp=%d", one.Cmp(oneOO))
	}
}

func TestDecimalSign(t *testing.T) {
	neg := NewDecimal(5, 0, 0, 0, true)
	if !neg.Negative() {
		t.Fatalf("expected negative decimal")
	}
	if neg.Rat().Sign() >= 0 {
		t.Fatalf("expected negative rational value")
	}
}

func TestEqualDecimalExact(t *testing.T) {
	a := NewDecimal(150, 0, 0, 2, false) // 1.50
	b := NewDecimal(15, 0, 0, 1, false)  // 1.5
	if !EqualDecimal(a, b, Decimal{}) {
		t.Fatalf("expected exact numeric equality across scales")
	}

	c := NewDecimal(151, 0, 0, 2, false) // 1.51
	if EqualDecimal(a, c, Decimal{}) {
		t.Fatalf("expected inequality")
	}
}

func TestEqualDecimalEpsilon(t *testing.T) {
	a := NewDecimal(100, 0, 0, 2, false) // 1.00
	b := NewDecimal(101, 0, 0, 2, false) // 1.01
	epsilon := NewDecimal(2, 0, 0, 2, false) // 0.02
	if !EqualDecimal(a, b, epsilon) {
		t.Fatalf("expected equality within epsilon")
	}

	tooSmall := NewDecimal(0, 0, 0, 3, false) // 0.000
	if EqualDecimal(a, b, tooSmall) {
		t.Fatalf("expected inequality when epsilon is zero and values differ")
	}
}

func TestDecimalIsZero(t *testing.T) {
	if !(Decimal{}).IsZero() {
		t.Fatalf("zero-value Decimal should be zero")
	}
	if NewDecimal(1, 0, 0, 0, false).IsZero() {
		t.Fatalf("non-zero mantissa should not be zero")
	}
}
