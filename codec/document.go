package codec

import (
	"github.com/joshuapare/deltakit/delta"
	"github.com/joshuapare/deltakit/dkerr"
	"github.com/joshuapare/deltakit/internal/buf"
)

var wireMagic = [4]byte{'B', 'D', 'C', '1'}

const wireVersion = 1

const (
	flagStringTable byte = 1 << 0
	flagEnumTable   byte = 1 << 1
)

// Encode serializes doc per opt's profile: headerless (just an op count
// and the ops) or headerful (magic/version/fingerprint framing plus
// optional string and enum-type tables).
func Encode(doc *delta.Document, opt Options) ([]byte, error) {
	if !buf.WithinCap(doc.Len(), opt.Limits.MaxOps) {
		return nil, dkerr.Wrap(dkerr.KindCapacity, dkerr.ErrMaxOpsExceeded,
			"document has %d ops, exceeds MaxOps %d", doc.Len(), opt.Limits.MaxOps)
	}

	var strTable []string
	var strIndex map[string]int
	if opt.UseStringTable {
		strTable, strIndex = buildStringTable(doc)
	}
	var enumTable []string
	var enumIndex map[string]int
	if opt.UseEnumTypeTable {
		enumTable = collectEnumTypes(doc)
		enumIndex = indexOf(enumTable)
	}

	b := make([]byte, 0, 256)
	if opt.IncludeHeader {
		b = append(b, wireMagic[:]...)
		b = buf.PutVarUint64(b, wireVersion)
		b = buf.PutVarUint64(b, opt.StableTypeFingerprint)

		var flags byte
		if opt.UseStringTable {
			flags |= flagStringTable
		}
		if opt.UseEnumTypeTable {
			flags |= flagEnumTable
		}
		b = append(b, flags)

		if opt.UseStringTable {
			b = buf.PutVarUint64(b, uint64(len(strTable)))
			for _, s := range strTable {
				b = encodeRawString(b, s)
			}
		}
		if opt.UseEnumTypeTable {
			b = buf.PutVarUint64(b, uint64(len(enumTable)))
			for _, s := range enumTable {
				b = encodeRawString(b, s)
			}
		}
	}

	enc := &encoder{opt: opt, strIndex: strIndex, enumIndex: enumIndex}
	ops := delta.NewReader(doc).AsSpan()
	b = buf.PutVarUint64(b, uint64(len(ops)))
	for _, op := range ops {
		var err error
		b, err = enc.encodeOp(b, op)
		if err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Decode parses a byte stream produced by Encode under the same profile as
// opt (IncludeHeader/UseStringTable/UseEnumTypeTable must match how it was
// encoded — the flags byte in a headerful stream is authoritative and
// overrides opt's table flags, but a headerless stream carries no such
// signal and must be decoded with the same Options it was encoded with).
func Decode(data []byte, opt Options) (*delta.Document, error) {
	off := 0
	if opt.IncludeHeader {
		magic, ok := buf.Slice(data, 0, 4)
		if !ok || magic[0] != wireMagic[0] || magic[1] != wireMagic[1] || magic[2] != wireMagic[2] || magic[3] != wireMagic[3] {
			return nil, dkerr.Wrap(dkerr.KindDecode, dkerr.ErrBadMagic, "bad magic")
		}
		off = 4

		version, next, err := buf.ReadVarUint64(data, off)
		if err != nil {
			return nil, err
		}
		if version != wireVersion {
			return nil, dkerr.Wrap(dkerr.KindDecode, dkerr.ErrUnknownVersion, "unknown version %d", version)
		}
		off = next

		_, next, err = buf.ReadVarUint64(data, off) // stable_type_fingerprint, caller validates separately
		if err != nil {
			return nil, err
		}
		off = next

		if !buf.Has(data, off, 1) {
			return nil, dkerr.Wrap(dkerr.KindDecode, dkerr.ErrUnexpectedEOF, "flags byte truncated")
		}
		flags := data[off]
		off++
		opt.UseStringTable = flags&flagStringTable != 0
		opt.UseEnumTypeTable = flags&flagEnumTable != 0

		var strTable []string
		if opt.UseStringTable {
			n, next, err := buf.ReadVarUintChecked(data, off, opt.Limits.MaxOps)
			if err != nil {
				return nil, err
			}
			off = next
			strTable = make([]string, n)
			for i := 0; i < n; i++ {
				strTable[i], off, err = decodeRawString(data, off, opt.Limits)
				if err != nil {
					return nil, err
				}
			}
		}
		var enumTable []string
		if opt.UseEnumTypeTable {
			n, next, err := buf.ReadVarUintChecked(data, off, opt.Limits.MaxOps)
			if err != nil {
				return nil, err
			}
			off = next
			enumTable = make([]string, n)
			for i := 0; i < n; i++ {
				enumTable[i], off, err = decodeRawString(data, off, opt.Limits)
				if err != nil {
					return nil, err
				}
			}
		}

		return decodeBody(data, off, opt, strTable, enumTable)
	}

	return decodeBody(data, off, opt, nil, nil)
}

func decodeBody(data []byte, off int, opt Options, strTable, enumTable []string) (*delta.Document, error) {
	n, off, err := buf.ReadVarUintChecked(data, off, opt.Limits.MaxOps)
	if err != nil {
		return nil, err
	}
	dec := &decoder{opt: opt, strTable: strTable, enumTable: enumTable}
	ops := make([]delta.Op, 0, n)
	for i := 0; i < n; i++ {
		var op delta.Op
		op, off, err = dec.decodeOp(data, off)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return delta.FromOps(ops), nil
}
