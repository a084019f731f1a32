package codec

import (
	"math"

	"github.com/google/uuid"

	"github.com/joshuapare/deltakit/dkerr"
	"github.com/joshuapare/deltakit/internal/buf"
	"github.com/joshuapare/deltakit/value"
)

// decoder carries the per-document state a value decode needs: the
// resolved options plus the string/enum tables read from the header (nil
// slices when the corresponding table is absent), and the current nesting
// depth against opt.Limits.MaxNesting.
type decoder struct {
	opt       Options
	strTable  []string
	enumTable []string
	depth     int
}

func (d *decoder) decodeValue(b []byte, off int) (value.Value, int, error) {
	if !buf.Has(b, off, 1) {
		return value.Value{}, 0, dkerr.Wrap(dkerr.KindDecode, dkerr.ErrUnexpectedEOF, "value tag truncated")
	}
	tag := Tag(b[off])
	off++

	switch tag {
	case TagNull:
		return value.Null(), off, nil
	case TagBoolFalse:
		return value.Bool(false), off, nil
	case TagBoolTrue:
		return value.Bool(true), off, nil

	case TagInt8:
		i, next, err := buf.ReadZigzagVarInt64(b, off)
		return value.Int8(int8(i)), next, err
	case TagInt16:
		i, next, err := buf.ReadZigzagVarInt64(b, off)
		return value.Int16(int16(i)), next, err
	case TagInt32:
		i, next, err := buf.ReadZigzagVarInt64(b, off)
		return value.Int32(int32(i)), next, err
	case TagInt64:
		i, next, err := buf.ReadZigzagVarInt64(b, off)
		return value.Int64(i), next, err

	case TagUint8:
		u, next, err := buf.ReadVarUint64(b, off)
		return value.Uint8(uint8(u)), next, err
	case TagUint16:
		u, next, err := buf.ReadVarUint64(b, off)
		return value.Uint16(uint16(u)), next, err
	case TagUint32:
		u, next, err := buf.ReadVarUint64(b, off)
		return value.Uint32(uint32(u)), next, err
	case TagUint64:
		u, next, err := buf.ReadVarUint64(b, off)
		return value.Uint64(u), next, err

	case TagChar16:
		cb, ok := buf.Slice(b, off, 2)
		if !ok {
			return value.Value{}, 0, dkerr.Wrap(dkerr.KindDecode, dkerr.ErrUnexpectedEOF, "Char16 truncated")
		}
		return value.Char16(buf.U16LE(cb)), off + 2, nil

	case TagSingle:
		fb, ok := buf.Slice(b, off, 4)
		if !ok {
			return value.Value{}, 0, dkerr.Wrap(dkerr.KindDecode, dkerr.ErrUnexpectedEOF, "Single truncated")
		}
		return value.Float32(math.Float32frombits(buf.U32LE(fb))), off + 4, nil

	case TagDouble:
		fb, ok := buf.Slice(b, off, 8)
		if !ok {
			return value.Value{}, 0, dkerr.Wrap(dkerr.KindDecode, dkerr.ErrUnexpectedEOF, "Double truncated")
		}
		return value.Float64(math.Float64frombits(buf.U64LE(fb))), off + 8, nil

	case TagDecimal:
		db, ok := buf.Slice(b, off, 16)
		if !ok {
			return value.Value{}, 0, dkerr.Wrap(dkerr.KindDecode, dkerr.ErrUnexpectedEOF, "Decimal truncated")
		}
		dec := value.Decimal{
			Lo:    buf.U32LE(db[0:4]),
			Mid:   buf.U32LE(db[4:8]),
			Hi:    buf.U32LE(db[8:12]),
			Flags: buf.U32LE(db[12:16]),
		}
		return value.DecimalValue(dec), off + 16, nil

	case TagStringInline:
		s, next, err := decodeRawString(b, off, d.opt.Limits)
		return value.String(s), next, err

	case TagStringRef:
		idx, next, err := decodeTableIndex(b, off, len(d.strTable))
		if err != nil {
			return value.Value{}, 0, err
		}
		return value.String(d.strTable[idx]), next, nil

	case TagGuid16:
		gb, ok := buf.Slice(b, off, 16)
		if !ok {
			return value.Value{}, 0, dkerr.Wrap(dkerr.KindDecode, dkerr.ErrUnexpectedEOF, "Guid truncated")
		}
		var g uuid.UUID
		copy(g[:], gb)
		return value.GUID(g), off + 16, nil

	case TagDateTimeBin64:
		db, ok := buf.Slice(b, off, 8)
		if !ok {
			return value.Value{}, 0, dkerr.Wrap(dkerr.KindDecode, dkerr.ErrUnexpectedEOF, "DateTime truncated")
		}
		ticks, kind := unpackDateTimeBin64(buf.U64LE(db))
		return value.DateTime(ticks, kind), off + 8, nil

	case TagTimeSpanTicks:
		ticks, next, err := buf.ReadZigzagVarInt64(b, off)
		return value.TimeSpan(ticks), next, err

	case TagDateTimeOffset:
		ticks, next, err := buf.ReadZigzagVarInt64(b, off)
		if err != nil {
			return value.Value{}, 0, err
		}
		offsetMin, next2, err := buf.ReadZigzagVarInt64(b, next)
		if err != nil {
			return value.Value{}, 0, err
		}
		return value.DateTimeOffset(ticks, int16(offsetMin)), next2, nil

	case TagEnum:
		typ, next, err := decodeEnumIdentity(b, off, d.opt, d.enumTable)
		if err != nil {
			return value.Value{}, 0, dkerr.Wrap(dkerr.KindDecode, dkerr.ErrUnresolvedEnum, "enum value type identity unresolved: %v", err)
		}
		underlying, next2, err := buf.ReadZigzagVarInt64(b, next)
		if err != nil {
			return value.Value{}, 0, err
		}
		return value.Enum(underlying, typ), next2, nil

	case TagByteArray:
		n, next, err := buf.ReadVarUintChecked(b, off, d.opt.Limits.MaxStringBytes)
		if err != nil {
			return value.Value{}, 0, err
		}
		bs, ok := buf.Slice(b, next, n)
		if !ok {
			return value.Value{}, 0, dkerr.Wrap(dkerr.KindDecode, dkerr.ErrUnexpectedEOF, "ByteArray truncated")
		}
		cp := append([]byte(nil), bs...)
		return value.ByteArray(cp), next + n, nil

	case TagArray, TagList:
		return d.decodeSequenceContainer(b, off, tag)

	case TagDictionary:
		return d.decodeMapContainer(b, off)

	default:
		return value.Value{}, 0, dkerr.Wrap(dkerr.KindDecode, dkerr.ErrUnknownValueTag, "unknown value tag %d", tag)
	}
}

func (d *decoder) enterNesting() error {
	d.depth++
	if !buf.WithinCap(d.depth, d.opt.Limits.MaxNesting) {
		return dkerr.Wrap(dkerr.KindCapacity, dkerr.ErrMaxNestingExceeded, "nesting depth %d exceeds MaxNesting %d", d.depth, d.opt.Limits.MaxNesting)
	}
	return nil
}

func (d *decoder) exitNesting() {
	d.depth--
}

func (d *decoder) decodeSequenceContainer(b []byte, off int, tag Tag) (value.Value, int, error) {
	if err := d.enterNesting(); err != nil {
		return value.Value{}, 0, err
	}
	defer d.exitNesting()

	next, err := decodeTypeSpec(b, off, d.opt, d.enumTable)
	if err != nil {
		return value.Value{}, 0, err
	}
	n, next, err := buf.ReadVarUintChecked(b, next, d.opt.Limits.MaxOps)
	if err != nil {
		return value.Value{}, 0, err
	}
	elems := make([]value.Value, 0, n)
	for i := 0; i < n; i++ {
		var el value.Value
		el, next, err = d.decodeValue(b, next)
		if err != nil {
			return value.Value{}, 0, err
		}
		elems = append(elems, el)
	}
	kind := value.KindArray
	if tag == TagList {
		kind = value.KindList
	}
	return value.Container(kind, elems), next, nil
}

func (d *decoder) decodeMapContainer(b []byte, off int) (value.Value, int, error) {
	if err := d.enterNesting(); err != nil {
		return value.Value{}, 0, err
	}
	defer d.exitNesting()

	next, err := decodeTypeSpec(b, off, d.opt, d.enumTable)
	if err != nil {
		return value.Value{}, 0, err
	}
	next, err = decodeTypeSpec(b, next, d.opt, d.enumTable)
	if err != nil {
		return value.Value{}, 0, err
	}
	n, next, err := buf.ReadVarUintChecked(b, next, d.opt.Limits.MaxOps)
	if err != nil {
		return value.Value{}, 0, err
	}
	entries := make([]value.MapEntry, 0, n)
	for i := 0; i < n; i++ {
		var k, v value.Value
		k, next, err = d.decodeValue(b, next)
		if err != nil {
			return value.Value{}, 0, err
		}
		v, next, err = d.decodeValue(b, next)
		if err != nil {
			return value.Value{}, 0, err
		}
		entries = append(entries, value.MapEntry{Key: k, Value: v})
	}
	return value.Container(value.KindMap, entries), next, nil
}
