package value

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// DateTimeKind distinguishes the three temporal provenances a DateTime can
// carry. Equality requires both Kind and ticks to match; a UTC and a Local
// DateTime with identical ticks are not equal.
type DateTimeKind uint8

const (
	DateTimeUnspecified DateTimeKind = iota
	DateTimeUTC
	DateTimeLocal
)

// Value is a tagged scalar/blob value. Containers (Array/List/Map) and user
// Objects are carried opaquely in obj; Value itself only looks at the Kind
// tag. Array/List/Map containers are inlined by the codec, while user
// Objects are compared/diffed through the registry and never inlined.
type Value struct {
	kind Kind

	// bits holds the raw payload for every fixed-width kind: signed/unsigned
	// integers (sign-extended or zero-extended into 64 bits), Char16,
	// Float32 (via math.Float32bits widened), Float64 (via math.Float64bits),
	// DateTime/TimeSpan/DateTimeOffset ticks (as int64 reinterpreted).
	bits uint64

	str   string
	bytes []byte
	guid  uuid.UUID
	dec   Decimal

	dtKind        DateTimeKind
	offsetMinutes int16

	enumType string // stable type identity for Kind == KindEnum

	obj any // payload for Array/List/Map/Object: the live Go container/object
}

// Kind returns the value's tag.
func (v Value) Kind() Kind { return v.kind }

// Bits returns the raw 64-bit payload word backing any fixed-width scalar
// kind (Bool, Int*, Uint*, Char16, Float32/64, DateTime/TimeSpan/
// DateTimeOffset ticks, Enum's underlying value). It is meaningless for
// String/GUID/Decimal/ByteArray/container kinds.
func (v Value) Bits() uint64 { return v.bits }

// Null returns the null Value.
func Null() Value { return Value{kind: KindNull} }

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool builds a bool Value.
func Bool(b bool) Value {
	var bits uint64
	if b {
		bits = 1
	}
	return Value{kind: KindBool, bits: bits}
}

// AsBool returns the bool payload; ok is false if Kind() != KindBool.
func (v Value) AsBool() (b, ok bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.bits != 0, true
}

func intValue(k Kind, i int64) Value  { return Value{kind: k, bits: uint64(i)} }
func uintValue(k Kind, u uint64) Value { return Value{kind: k, bits: u} }

func Int8(i int8) Value   { return intValue(KindInt8, int64(i)) }
func Int16(i int16) Value { return intValue(KindInt16, int64(i)) }
func Int32(i int32) Value { return intValue(KindInt32, int64(i)) }
func Int64(i int64) Value { return intValue(KindInt64, i) }

func Uint8(u uint8) Value   { return uintValue(KindUint8, uint64(u)) }
func Uint16(u uint16) Value { return uintValue(KindUint16, uint64(u)) }
func Uint32(u uint32) Value { return uintValue(KindUint32, uint64(u)) }
func Uint64(u uint64) Value { return uintValue(KindUint64, u) }

func Char16(c uint16) Value { return uintValue(KindChar16, uint64(c)) }

// AsInt64 widens any signed or unsigned integer kind (including Char16) to
// int64; ok is false for any other Kind.
func (v Value) AsInt64() (i int64, ok bool) {
	switch v.kind {
	case KindInt8:
		return int64(int8(v.bits)), true
	case KindInt16:
		return int64(int16(v.bits)), true
	case KindInt32:
		return int64(int32(v.bits)), true
	case KindInt64:
		return int64(v.bits), true
	case KindUint8, KindUint16, KindUint32, KindUint64, KindChar16:
		return int64(v.bits), true
	default:
		return 0, false
	}
}

// AsUint64 widens any unsigned kind (including Char16) to uint64.
func (v Value) AsUint64() (u uint64, ok bool) {
	switch v.kind {
	case KindUint8, KindUint16, KindUint32, KindUint64, KindChar16:
		return v.bits, true
	default:
		return 0, false
	}
}

// Float32 builds a float32 Value, preserving the exact bit pattern (so -0.0
// and NaN payloads survive unchanged through comparison and the codec).
func Float32(f float32) Value {
	return Value{kind: KindFloat32, bits: uint64(math.Float32bits(f))}
}

// AsFloat32 returns the float32 payload.
func (v Value) AsFloat32() (f float32, ok bool) {
	if v.kind != KindFloat32 {
		return 0, false
	}
	return math.Float32frombits(uint32(v.bits)), true
}

// Float64 builds a float64 Value, preserving the exact bit pattern.
func Float64(f float64) Value {
	return Value{kind: KindFloat64, bits: math.Float64bits(f)}
}

// AsFloat64 returns the float64 payload.
func (v Value) AsFloat64() (f float64, ok bool) {
	if v.kind != KindFloat64 {
		return 0, false
	}
	return math.Float64frombits(v.bits), true
}

// DecimalValue builds a Decimal-kind Value.
func DecimalValue(d Decimal) Value { return Value{kind: KindDecimal, dec: d} }

// AsDecimal returns the Decimal payload.
func (v Value) AsDecimal() (d Decimal, ok bool) {
	if v.kind != KindDecimal {
		return Decimal{}, false
	}
	return v.dec, true
}

// String builds a string Value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// AsString returns the string payload.
func (v Value) AsString() (s string, ok bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// GUID builds a GUID Value from a 16-byte UUID.
func GUID(g uuid.UUID) Value { return Value{kind: KindGUID, guid: g} }

// AsGUID returns the GUID payload.
func (v Value) AsGUID() (g uuid.UUID, ok bool) {
	if v.kind != KindGUID {
		return uuid.UUID{}, false
	}
	return v.guid, true
}

// DateTime builds a DateTime Value from ticks (100ns units since year 1,
// matching the .NET tick epoch the wire format inherits) and its kind.
func DateTime(ticks int64, kind DateTimeKind) Value {
	return Value{kind: KindDateTime, bits: uint64(ticks), dtKind: kind}
}

// AsDateTime returns the ticks and DateTimeKind payload.
func (v Value) AsDateTime() (ticks int64, kind DateTimeKind, ok bool) {
	if v.kind != KindDateTime {
		return 0, 0, false
	}
	return int64(v.bits), v.dtKind, true
}

// TimeSpan builds a TimeSpan Value from ticks.
func TimeSpan(ticks int64) Value { return Value{kind: KindTimeSpan, bits: uint64(ticks)} }

// AsTimeSpan returns the ticks payload.
func (v Value) AsTimeSpan() (ticks int64, ok bool) {
	if v.kind != KindTimeSpan {
		return 0, false
	}
	return int64(v.bits), true
}

// DateTimeOffset builds a DateTimeOffset Value from ticks and an offset in
// minutes from UTC.
func DateTimeOffset(ticks int64, offsetMinutes int16) Value {
	return Value{kind: KindDateTimeOffset, bits: uint64(ticks), offsetMinutes: offsetMinutes}
}

// AsDateTimeOffset returns the ticks and UTC offset (minutes) payload.
func (v Value) AsDateTimeOffset() (ticks int64, offsetMinutes int16, ok bool) {
	if v.kind != KindDateTimeOffset {
		return 0, 0, false
	}
	return int64(v.bits), v.offsetMinutes, true
}

// Enum builds an Enum Value from its underlying signed representation and a
// stable type identity string. deltakit resolves enum identity through a
// single opaque identity string supplied by the caller, such as a stable
// type name, rather than assembly/mvid metadata.
func Enum(underlying int64, typeIdentity string) Value {
	return Value{kind: KindEnum, bits: uint64(underlying), enumType: typeIdentity}
}

// AsEnum returns the underlying value and type identity.
func (v Value) AsEnum() (underlying int64, typeIdentity string, ok bool) {
	if v.kind != KindEnum {
		return 0, "", false
	}
	return int64(v.bits), v.enumType, true
}

// ByteArray builds a ByteArray Value. The slice is retained, not copied.
func ByteArray(b []byte) Value { return Value{kind: KindByteArray, bytes: b} }

// AsByteArray returns the byte payload.
func (v Value) AsByteArray() (b []byte, ok bool) {
	if v.kind != KindByteArray {
		return nil, false
	}
	return v.bytes, true
}

// Container builds an Array/List/Map/Object Value wrapping an opaque Go
// value. Object containers are never inlined on the wire (the encoder
// rejects them); they let a live registered object travel inside a Value,
// e.g. as a keyed-sequence element, and be compared, diffed or applied
// through the registry. Array/List containers wrap a []Value; Map containers wrap a
// []MapEntry — both of these ARE wire-safe and round-trip through the
// codec, unlike Object.
func Container(kind Kind, obj any) Value {
	return Value{kind: kind, obj: obj}
}

// MapEntry is one key/value pair of a map-shaped container, expressed in
// the Value universe so comparison, delta computation, application, and
// the codec all agree on one representation for "a map" without any of
// them needing to know the caller's concrete map type.
type MapEntry struct {
	Key   Value
	Value Value
}

// AsContainer returns the wrapped container/object payload.
func (v Value) AsContainer() (obj any, ok bool) {
	switch v.kind {
	case KindArray, KindList, KindMap, KindObject:
		return v.obj, true
	default:
		return nil, false
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindString:
		return fmt.Sprintf("%q", v.str)
	case KindBool:
		b, _ := v.AsBool()
		return fmt.Sprintf("%v", b)
	default:
		return fmt.Sprintf("%s(%v)", v.kind, v.bits)
	}
}
