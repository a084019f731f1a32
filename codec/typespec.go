package codec

import (
	"github.com/joshuapare/deltakit/dkerr"
	"github.com/joshuapare/deltakit/internal/buf"
	"github.com/joshuapare/deltakit/value"
)

// TypeSpecKind classifies how a container's element type is described on
// the wire: a known built-in tag, an enum (carrying its own type identity),
// or an opaque registered object (Object-kind containers are rejected by
// the encoder — see tagForKind — so this case only ever appears as a
// decode-side possibility on input produced by a future writer).
type TypeSpecKind byte

const (
	TypeSpecPrimitiveOrKnown TypeSpecKind = iota
	TypeSpecEnum
	TypeSpecObject
)

func (e *encoder) encodeEnumIdentity(b []byte, typ string) ([]byte, error) {
	if !e.opt.IncludeEnumTypeIdentity {
		return b, nil
	}
	if e.opt.UseEnumTypeTable {
		idx, ok := e.enumIndex[typ]
		if !ok {
			return nil, dkerr.New(dkerr.KindDecode, "enum type %q missing from enum-type table", typ)
		}
		return buf.PutVarUint64(b, uint64(idx)), nil
	}
	return encodeRawString(b, typ), nil
}

func decodeEnumIdentity(b []byte, off int, opt Options, enumTable []string) (string, int, error) {
	if !opt.IncludeEnumTypeIdentity {
		return "", off, nil
	}
	if opt.UseEnumTypeTable {
		idx, next, err := decodeTableIndex(b, off, len(enumTable))
		if err != nil {
			// decodeTypeSpec treats this as an unresolved type and falls
			// back to "object" rather than aborting the whole decode;
			// values of enums must still resolve, so decodeValue does not
			// take that fallback.
			return "", 0, err
		}
		return enumTable[idx], next, nil
	}
	return decodeRawString(b, off, opt.Limits)
}

// encodeTypeSpec describes the static element type of a container (Array/
// List: one type-spec; Dictionary: a key and a value type-spec).
func (e *encoder) encodeTypeSpec(b []byte, k value.Kind, enumType string) ([]byte, error) {
	switch k {
	case value.KindObject:
		return append(b, byte(TypeSpecObject)), nil
	case value.KindEnum:
		b = append(b, byte(TypeSpecEnum))
		return e.encodeEnumIdentity(b, enumType)
	default:
		tag, err := tagForKind(k)
		if err != nil {
			return nil, err
		}
		b = append(b, byte(TypeSpecPrimitiveOrKnown))
		return append(b, byte(tag)), nil
	}
}

// decodeTypeSpec consumes a type-spec without needing its result: every
// element is still self-describing via its own value tag, so the type-spec
// only needs to be skipped correctly on read, not resolved into a Go type.
func decodeTypeSpec(b []byte, off int, opt Options, enumTable []string) (next int, err error) {
	if !buf.Has(b, off, 1) {
		return 0, dkerr.Wrap(dkerr.KindDecode, dkerr.ErrUnexpectedEOF, "type-spec truncated")
	}
	kind := TypeSpecKind(b[off])
	off++
	switch kind {
	case TypeSpecPrimitiveOrKnown:
		if !buf.Has(b, off, 1) {
			return 0, dkerr.Wrap(dkerr.KindDecode, dkerr.ErrUnexpectedEOF, "type-spec truncated")
		}
		return off + 1, nil
	case TypeSpecEnum:
		_, next, err := decodeEnumIdentity(b, off, opt, enumTable)
		if err != nil && opt.IncludeEnumTypeIdentity && opt.UseEnumTypeTable {
			// Unresolved enum-type table reference: fall back to "object"
			// by skipping the index; elements still carry their own tags.
			_, next, err = buf.ReadVarUint64(b, off)
		}
		return next, err
	case TypeSpecObject:
		return off, nil
	default:
		return 0, dkerr.Wrap(dkerr.KindDecode, dkerr.ErrUnknownValueTag, "unknown type-spec kind %d", kind)
	}
}
