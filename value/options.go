package value

// StringComparison selects how two strings are compared for equality.
type StringComparison uint8

const (
	// Ordinal compares UTF-16 code units directly.
	Ordinal StringComparison = iota
	// OrdinalIgnoreCase compares UTF-16 code units after ASCII/simple case folding.
	OrdinalIgnoreCase
	// Invariant compares using locale-independent (root) collation rules.
	Invariant
	// InvariantIgnoreCase is Invariant with case folding applied first.
	InvariantIgnoreCase
	// Current compares using English ("en") collation rules; the process
	// locale is not consulted.
	Current
	// CurrentIgnoreCase is Current with case folding applied first.
	CurrentIgnoreCase
)

func (s StringComparison) IgnoresCase() bool {
	switch s {
	case OrdinalIgnoreCase, InvariantIgnoreCase, CurrentIgnoreCase:
		return true
	default:
		return false
	}
}

// Default option values.
const (
	DefaultTreatNaNEqual = true
	DefaultFloatEpsilon  = float32(0)
	DefaultDoubleEpsilon = float64(0)
)

// Options tunes equality and delta-computation semantics. The zero value is
// NOT valid for TreatNaNEqual (Go's zero bool is false, but the intended
// default is true) — always obtain an Options via DefaultOptions.
type Options struct {
	StringComparison StringComparison

	// TreatNaNEqual controls float/double equality when either operand is
	// NaN: true means two NaNs compare equal.
	TreatNaNEqual bool

	FloatEpsilon  float32
	DoubleEpsilon float64
	DecimalEpsilon Decimal

	// ValidateDirtyOnEmit asks compute_delta implementations to assert, as a
	// debug aid, that every member they emit an op for was actually unequal
	// (catches a comparator/compute_delta pair that has drifted out of
	// sync). Has no effect on apply.
	ValidateDirtyOnEmit bool
}

// DefaultOptions returns the default comparison options: ordinal string
// comparison, NaN-equal true, zero epsilons (exact comparison).
func DefaultOptions() Options {
	return Options{
		StringComparison: Ordinal,
		TreatNaNEqual:    DefaultTreatNaNEqual,
		FloatEpsilon:     DefaultFloatEpsilon,
		DoubleEpsilon:    DefaultDoubleEpsilon,
	}
}
