package codec

import (
	"math"

	"github.com/joshuapare/deltakit/dkerr"
	"github.com/joshuapare/deltakit/internal/buf"
	"github.com/joshuapare/deltakit/value"
)

// encoder carries the per-document state a value encode needs: the
// resolved options plus the string/enum table indexes built by the
// pre-walk (nil when the corresponding table is disabled).
type encoder struct {
	opt       Options
	strIndex  map[string]int
	enumIndex map[string]int
}

func (e *encoder) encodeValue(b []byte, v value.Value) ([]byte, error) {
	switch v.Kind() {
	case value.KindNull:
		return append(b, byte(TagNull)), nil

	case value.KindBool:
		bb, _ := v.AsBool()
		if bb {
			return append(b, byte(TagBoolTrue)), nil
		}
		return append(b, byte(TagBoolFalse)), nil

	case value.KindInt8, value.KindInt16, value.KindInt32, value.KindInt64:
		tag, _ := tagForKind(v.Kind())
		i, _ := v.AsInt64()
		b = append(b, byte(tag))
		return buf.PutZigzagVarInt64(b, i), nil

	case value.KindUint8, value.KindUint16, value.KindUint32, value.KindUint64:
		tag, _ := tagForKind(v.Kind())
		u, _ := v.AsUint64()
		b = append(b, byte(tag))
		return buf.PutVarUint64(b, u), nil

	case value.KindChar16:
		u, _ := v.AsUint64()
		b = append(b, byte(TagChar16))
		return buf.PutU16LE(b, uint16(u)), nil

	case value.KindFloat32:
		f, _ := v.AsFloat32()
		b = append(b, byte(TagSingle))
		return buf.PutU32LE(b, math.Float32bits(f)), nil

	case value.KindFloat64:
		f, _ := v.AsFloat64()
		b = append(b, byte(TagDouble))
		return buf.PutU64LE(b, math.Float64bits(f)), nil

	case value.KindDecimal:
		d, _ := v.AsDecimal()
		b = append(b, byte(TagDecimal))
		b = buf.PutU32LE(b, d.Lo)
		b = buf.PutU32LE(b, d.Mid)
		b = buf.PutU32LE(b, d.Hi)
		return buf.PutU32LE(b, d.Flags), nil

	case value.KindString:
		s, _ := v.AsString()
		if e.opt.UseStringTable {
			if idx, ok := e.strIndex[s]; ok {
				b = append(b, byte(TagStringRef))
				return buf.PutVarUint64(b, uint64(idx)), nil
			}
		}
		b = append(b, byte(TagStringInline))
		return encodeRawString(b, s), nil

	case value.KindGUID:
		g, _ := v.AsGUID()
		b = append(b, byte(TagGuid16))
		return append(b, g[:]...), nil

	case value.KindDateTime:
		ticks, kind, _ := v.AsDateTime()
		b = append(b, byte(TagDateTimeBin64))
		return buf.PutU64LE(b, packDateTimeBin64(ticks, kind)), nil

	case value.KindTimeSpan:
		ticks, _ := v.AsTimeSpan()
		b = append(b, byte(TagTimeSpanTicks))
		return buf.PutZigzagVarInt64(b, ticks), nil

	case value.KindDateTimeOffset:
		ticks, offset, _ := v.AsDateTimeOffset()
		b = append(b, byte(TagDateTimeOffset))
		b = buf.PutZigzagVarInt64(b, ticks)
		return buf.PutZigzagVarInt64(b, int64(offset)), nil

	case value.KindEnum:
		underlying, typ, _ := v.AsEnum()
		b = append(b, byte(TagEnum))
		b, err := e.encodeEnumIdentity(b, typ)
		if err != nil {
			return nil, err
		}
		return buf.PutZigzagVarInt64(b, underlying), nil

	case value.KindByteArray:
		bs, _ := v.AsByteArray()
		b = append(b, byte(TagByteArray))
		b = buf.PutVarUint64(b, uint64(len(bs)))
		return append(b, bs...), nil

	case value.KindArray, value.KindList:
		return e.encodeSequenceContainer(b, v)

	case value.KindMap:
		return e.encodeMapContainer(b, v)

	default:
		return nil, dkerr.New(dkerr.KindDecode, "cannot encode value of kind %s", v.Kind())
	}
}

func (e *encoder) encodeSequenceContainer(b []byte, v value.Value) ([]byte, error) {
	tag, _ := tagForKind(v.Kind())
	obj, _ := v.AsContainer()
	elems := obj.([]value.Value)

	elemKind, elemEnum := value.KindNull, ""
	if len(elems) > 0 {
		elemKind = elems[0].Kind()
		if elemKind == value.KindEnum {
			_, elemEnum, _ = elems[0].AsEnum()
		}
	}

	b = append(b, byte(tag))
	b, err := e.encodeTypeSpec(b, elemKind, elemEnum)
	if err != nil {
		return nil, err
	}
	b = buf.PutVarUint64(b, uint64(len(elems)))
	for _, el := range elems {
		b, err = e.encodeValue(b, el)
		if err != nil {
			return nil, err
		}
	}
	return b, nil
}

func (e *encoder) encodeMapContainer(b []byte, v value.Value) ([]byte, error) {
	obj, _ := v.AsContainer()
	entries := obj.([]value.MapEntry)

	keyKind, keyEnum := value.KindString, ""
	valKind, valEnum := value.KindNull, ""
	if len(entries) > 0 {
		keyKind = entries[0].Key.Kind()
		if keyKind == value.KindEnum {
			_, keyEnum, _ = entries[0].Key.AsEnum()
		}
		valKind = entries[0].Value.Kind()
		if valKind == value.KindEnum {
			_, valEnum, _ = entries[0].Value.AsEnum()
		}
	}

	b = append(b, byte(TagDictionary))
	b, err := e.encodeTypeSpec(b, keyKind, keyEnum)
	if err != nil {
		return nil, err
	}
	b, err = e.encodeTypeSpec(b, valKind, valEnum)
	if err != nil {
		return nil, err
	}
	b = buf.PutVarUint64(b, uint64(len(entries)))
	for _, en := range entries {
		if b, err = e.encodeValue(b, en.Key); err != nil {
			return nil, err
		}
		if b, err = e.encodeValue(b, en.Value); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// packDateTimeBin64 folds DateTimeKind into the top 2 bits of the 62-bit
// tick count's spare range, matching the single-i64 framing the wire
// format uses for DateTimeBin64: kind occupies bits 62-63, ticks the rest.
func packDateTimeBin64(ticks int64, kind value.DateTimeKind) uint64 {
	return uint64(ticks)&0x3FFF_FFFF_FFFF_FFFF | (uint64(kind) << 62)
}

func unpackDateTimeBin64(packed uint64) (ticks int64, kind value.DateTimeKind) {
	kind = value.DateTimeKind(packed >> 62)
	ticks = int64(packed & 0x3FFF_FFFF_FFFF_FFFF)
	return ticks, kind
}
