package buf

import "github.com/joshuapare/deltakit/dkerr"

// maxVarintBytes bounds how many continuation bytes ReadVarUint64 will
// consume before giving up: 10 bytes covers the full 64-bit range with
// LEB128's 7-bits-per-byte encoding, so anything longer is malformed input,
// not merely a large value.
const maxVarintBytes = 10

// PutVarUint64 appends v to b as unsigned LEB128.
func PutVarUint64(b []byte, v uint64) []byte {
	for v >= 0x80 {
		b = append(b, byte(v)|0x80)
		v >>= 7
	}
	return append(b, byte(v))
}

// ReadVarUint64 decodes an unsigned LEB128 varint starting at off, returning
// the value and the offset just past it.
func ReadVarUint64(b []byte, off int) (v uint64, next int, err error) {
	var shift uint
	for i := 0; i < maxVarintBytes; i++ {
		if off+i >= len(b) {
			return 0, 0, dkerr.Wrap(dkerr.KindDecode, dkerr.ErrUnexpectedEOF, "varint truncated")
		}
		c := b[off+i]
		v |= uint64(c&0x7f) << shift
		if c&0x80 == 0 {
			return v, off + i + 1, nil
		}
		shift += 7
	}
	return 0, 0, dkerr.Wrap(dkerr.KindDecode, dkerr.ErrUnexpectedEOF, "varint exceeds 64 bits")
}

// PutZigzagVarInt64 zigzag-encodes v, then appends it as an unsigned varint.
func PutZigzagVarInt64(b []byte, v int64) []byte {
	return PutVarUint64(b, ZigzagEncode64(v))
}

// ReadZigzagVarInt64 inverts PutZigzagVarInt64.
func ReadZigzagVarInt64(b []byte, off int) (v int64, next int, err error) {
	u, next, err := ReadVarUint64(b, off)
	if err != nil {
		return 0, 0, err
	}
	return ZigzagDecode64(u), next, nil
}

// ReadVarUintChecked decodes a varuint and additionally rejects it once it
// exceeds limit (limit <= 0 means unlimited), the pattern every counted
// length (op count, string length, byte-array length) in the wire format
// goes through so a truncated or adversarial count fails fast
// with a capacity error instead of driving an oversized allocation.
func ReadVarUintChecked(b []byte, off int, limit int) (v int, next int, err error) {
	u, next, err := ReadVarUint64(b, off)
	if err != nil {
		return 0, 0, err
	}
	if u > uint64(^uint(0)>>1) {
		return 0, 0, dkerr.New(dkerr.KindCapacity, "counted length overflows int")
	}
	n := int(u)
	if !WithinCap(n, limit) {
		return 0, 0, dkerr.New(dkerr.KindCapacity, "counted length %d exceeds limit %d", n, limit)
	}
	return n, next, nil
}
