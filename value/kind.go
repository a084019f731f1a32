// Package value defines the tagged value universe that delta documents and
// the binary codec traffic in, plus the comparison options that
// tune equality semantics across the rest of deltakit.
//
// A Value of KindObject can hold a live reference to a registered user
// object (see Container), for example as an element of a keyed sequence;
// such a Value is compared, diffed and applied through the registry and is
// never written to the wire. Every other kind is wire-safe, and is the
// universe everything else bottoms out to.
package value

// Kind tags the payload carried by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindChar16
	KindFloat32
	KindFloat64
	KindDecimal
	KindString
	KindGUID
	KindDateTime
	KindTimeSpan
	KindDateTimeOffset
	KindEnum
	KindByteArray
	KindArray
	KindList
	KindMap
	KindObject
)

// String renders the Kind for diagnostics and error messages.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindBool:
		return "Bool"
	case KindInt8:
		return "Int8"
	case KindInt16:
		return "Int16"
	case KindInt32:
		return "Int32"
	case KindInt64:
		return "Int64"
	case KindUint8:
		return "UInt8"
	case KindUint16:
		return "UInt16"
	case KindUint32:
		return "UInt32"
	case KindUint64:
		return "UInt64"
	case KindChar16:
		return "Char16"
	case KindFloat32:
		return "Float32"
	case KindFloat64:
		return "Float64"
	case KindDecimal:
		return "Decimal"
	case KindString:
		return "String"
	case KindGUID:
		return "Guid"
	case KindDateTime:
		return "DateTime"
	case KindTimeSpan:
		return "TimeSpan"
	case KindDateTimeOffset:
		return "DateTimeOffset"
	case KindEnum:
		return "Enum"
	case KindByteArray:
		return "ByteArray"
	case KindArray:
		return "Array"
	case KindList:
		return "List"
	case KindMap:
		return "Map"
	case KindObject:
		return "Object"
	default:
		return "Unknown"
	}
}

// IsHashFriendly reports whether values of this kind have stable, fast
// equality and hashing, making them eligible for the unordered-sequence
// multiset fast path.
func (k Kind) IsHashFriendly() bool {
	switch k {
	case KindBool, KindInt8, KindInt16, KindInt32, KindInt64,
		KindUint8, KindUint16, KindUint32, KindUint64, KindChar16,
		KindDecimal, KindString, KindGUID, KindDateTime, KindTimeSpan,
		KindDateTimeOffset, KindEnum:
		return true
	default:
		return false
	}
}
