package codec

import (
	"github.com/joshuapare/deltakit/dkerr"
	"github.com/joshuapare/deltakit/internal/buf"
)

func encodeRawString(b []byte, s string) []byte {
	b = buf.PutVarUint64(b, uint64(len(s)))
	return append(b, s...)
}

func decodeRawString(b []byte, off int, limits Limits) (string, int, error) {
	n, next, err := buf.ReadVarUintChecked(b, off, limits.MaxStringBytes)
	if err != nil {
		return "", 0, err
	}
	sb, ok := buf.Slice(b, next, n)
	if !ok {
		return "", 0, dkerr.Wrap(dkerr.KindDecode, dkerr.ErrUnexpectedEOF, "string truncated")
	}
	return string(sb), next + n, nil
}

// decodeTableIndex reads a varuint and checks it indexes into a table of
// size tableLen.
func decodeTableIndex(b []byte, off int, tableLen int) (int, int, error) {
	u, next, err := buf.ReadVarUint64(b, off)
	if err != nil {
		return 0, 0, err
	}
	idx := int(u)
	if idx < 0 || idx >= tableLen {
		return 0, 0, dkerr.Wrap(dkerr.KindDecode, dkerr.ErrUnknownValueTag, "table index %d out of range (size %d)", idx, tableLen)
	}
	return idx, next, nil
}
