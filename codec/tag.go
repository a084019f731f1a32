// Package codec implements the lossless, self-describing binary wire
// format for a delta.Document: a headerless profile (just an op count and
// the ops) and a headerful profile that adds magic/version/fingerprint
// framing plus optional string and enum-type interning tables.
package codec

import (
	"github.com/joshuapare/deltakit/dkerr"
	"github.com/joshuapare/deltakit/value"
)

// Tag is the one-byte discriminator prefixing every encoded value.
type Tag byte

const (
	TagNull Tag = iota
	TagBoolFalse
	TagBoolTrue
	TagInt8
	TagInt16
	TagInt32
	TagInt64
	TagUint8
	TagUint16
	TagUint32
	TagUint64
	TagChar16
	TagSingle
	TagDouble
	TagDecimal
	TagStringInline
	TagStringRef
	TagGuid16
	TagDateTimeBin64
	TagTimeSpanTicks
	TagDateTimeOffset
	TagEnum
	TagByteArray
	TagArray
	TagList
	TagDictionary
)

func tagForKind(k value.Kind) (Tag, error) {
	switch k {
	case value.KindNull:
		return TagNull, nil
	case value.KindBool:
		return TagBoolFalse, nil // caller picks False/True by payload
	case value.KindInt8:
		return TagInt8, nil
	case value.KindInt16:
		return TagInt16, nil
	case value.KindInt32:
		return TagInt32, nil
	case value.KindInt64:
		return TagInt64, nil
	case value.KindUint8:
		return TagUint8, nil
	case value.KindUint16:
		return TagUint16, nil
	case value.KindUint32:
		return TagUint32, nil
	case value.KindUint64:
		return TagUint64, nil
	case value.KindChar16:
		return TagChar16, nil
	case value.KindFloat32:
		return TagSingle, nil
	case value.KindFloat64:
		return TagDouble, nil
	case value.KindDecimal:
		return TagDecimal, nil
	case value.KindString:
		return TagStringInline, nil // StringRef is chosen by the encoder, not here
	case value.KindGUID:
		return TagGuid16, nil
	case value.KindDateTime:
		return TagDateTimeBin64, nil
	case value.KindTimeSpan:
		return TagTimeSpanTicks, nil
	case value.KindDateTimeOffset:
		return TagDateTimeOffset, nil
	case value.KindEnum:
		return TagEnum, nil
	case value.KindByteArray:
		return TagByteArray, nil
	case value.KindArray:
		return TagArray, nil
	case value.KindList:
		return TagList, nil
	case value.KindMap:
		return TagDictionary, nil
	default:
		return 0, dkerr.New(dkerr.KindDecode, "value kind %s has no wire tag (Object is never inlined)", k)
	}
}
