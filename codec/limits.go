package codec

// Limits bounds the worst-case work a single Decode call will perform,
// independently configurable per call so a server fronting untrusted input
// can run tighter than an internal RPC path.
type Limits struct {
	MaxOps         int
	MaxStringBytes int
	MaxNesting     int
}

// DefaultLimits returns the wire format's documented defaults.
func DefaultLimits() Limits {
	return Limits{
		MaxOps:         1_000_000,
		MaxStringBytes: 16 * 1024 * 1024,
		MaxNesting:     256,
	}
}

// Options configures both profiles of the codec.
type Options struct {
	// IncludeHeader selects the headerful profile: magic, version,
	// fingerprint, and a flags byte. false emits just the op count and ops.
	IncludeHeader bool

	// StableTypeFingerprint is an opaque caller-supplied value written into
	// the header (typically a hash of the root type's shape), letting a
	// reader reject a document encoded against an incompatible schema
	// before it ever inspects an op.
	StableTypeFingerprint uint64

	// UseStringTable interns strings per the header string-table rule
	// (occurs >= 2 times, or length >= 8) instead of inlining every string.
	UseStringTable bool

	// UseEnumTypeTable interns enum type identities into a table instead of
	// writing the identity string inline on every Enum value.
	UseEnumTypeTable bool

	// IncludeEnumTypeIdentity controls whether Enum values carry their type
	// identity string at all; false assumes the reader already knows it
	// from context (a fixed, single-enum-type schema) and can shave it off
	// every occurrence.
	IncludeEnumTypeIdentity bool

	Limits Limits
}

// DefaultOptions returns the headerful profile with both interning tables
// enabled and the default safety caps — the profile a long-lived wire
// format (persisted, not just exchanged between trusting peers in one
// process) should use.
func DefaultOptions() Options {
	return Options{
		IncludeHeader:           true,
		UseStringTable:          true,
		UseEnumTypeTable:        true,
		IncludeEnumTypeIdentity: true,
		Limits:                  DefaultLimits(),
	}
}

// Headerless returns the minimal profile: no framing, no tables, strings
// and enum identities always inlined. Suited to trusted, same-process,
// short-lived exchanges where the framing overhead buys nothing.
func Headerless() Options {
	return Options{
		IncludeEnumTypeIdentity: true,
		Limits:                  DefaultLimits(),
	}
}
