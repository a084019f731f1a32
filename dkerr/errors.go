// Package dkerr defines the typed error taxonomy shared across deltakit:
// contract errors, decode errors, capacity errors, and
// resolution errors. It has no dependencies so every other package —
// value, registry, compare, delta, apply, codec, and the root deltakit
// package — can return a *dkerr.Error without an import cycle.
package dkerr

import "fmt"

// Kind classifies an Error so callers can branch on intent rather than text.
type Kind int

const (
	// KindContract marks a programming-bug-class error: SeqRemoveAt missing
	// its expected element, a writer reused after transfer, a nested scope
	// closed out of order.
	KindContract Kind = iota
	// KindDecode marks a wire-format error: bad magic, unsupported version,
	// unknown tag/kind, unexpected EOF.
	KindDecode
	// KindCapacity marks a safety-cap violation: MaxOps, MaxStringBytes, or
	// MaxNesting exceeded on encode or decode.
	KindCapacity
	// KindResolution marks a registry miss for a required same-type helper
	// during nested apply.
	KindResolution
)

func (k Kind) String() string {
	switch k {
	case KindContract:
		return "contract"
	case KindDecode:
		return "decode"
	case KindCapacity:
		return "capacity"
	case KindResolution:
		return "resolution"
	default:
		return "unknown"
	}
}

// Error is deltakit's single typed error, carrying a Kind, a human message,
// and an optional wrapped cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an Error of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap builds an Error of the given kind wrapping cause, with a formatted message.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: cause}
}

// Sentinel errors for common contract/decode violations.
var (
	ErrSeqRemoveMismatch = &Error{Kind: KindContract, Msg: "SeqRemoveAt: expected element missing or unequal"}
	ErrWriterReused       = &Error{Kind: KindContract, Msg: "writer scope reused after transfer"}
	ErrScopeOutOfOrder    = &Error{Kind: KindContract, Msg: "nested scope closed out of order"}

	ErrBadMagic          = &Error{Kind: KindDecode, Msg: "bad magic"}
	ErrUnknownVersion    = &Error{Kind: KindDecode, Msg: "unknown version"}
	ErrUnknownValueTag   = &Error{Kind: KindDecode, Msg: "unknown value tag"}
	ErrUnknownOpKind     = &Error{Kind: KindDecode, Msg: "unknown op kind"}
	ErrUnexpectedEOF     = &Error{Kind: KindDecode, Msg: "unexpected EOF"}
	ErrUnresolvedEnum    = &Error{Kind: KindDecode, Msg: "unresolvable enum type"}

	ErrMaxOpsExceeded     = &Error{Kind: KindCapacity, Msg: "MaxOps exceeded"}
	ErrMaxStringExceeded  = &Error{Kind: KindCapacity, Msg: "MaxStringBytes exceeded"}
	ErrMaxNestingExceeded = &Error{Kind: KindCapacity, Msg: "MaxNesting exceeded"}

	ErrNoDescriptor = &Error{Kind: KindResolution, Msg: "no registered descriptor for type"}
)
