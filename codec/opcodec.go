package codec

import (
	"github.com/joshuapare/deltakit/delta"
	"github.com/joshuapare/deltakit/dkerr"
	"github.com/joshuapare/deltakit/internal/buf"
)

// opKindWire maps delta.Kind to its wire-stable varuint, independent of
// the Go iota order so a future reordering of the Kind constants (e.g. to
// group sequence/dict ops differently) never changes the wire format.
var opKindWire = map[delta.Kind]uint64{
	delta.ReplaceObject: 0,
	delta.SetMember:     1,
	delta.NestedMember:  2,
	delta.SeqReplaceAt:  3,
	delta.SeqAddAt:      4,
	delta.SeqRemoveAt:   5,
	delta.SeqNestedAt:   6,
	delta.DictSet:       7,
	delta.DictRemove:    8,
	delta.DictNested:    9,
}

var wireToOpKind = func() map[uint64]delta.Kind {
	m := make(map[uint64]delta.Kind, len(opKindWire))
	for k, w := range opKindWire {
		m[w] = k
	}
	return m
}()

// hasValuePayload reports whether kind's Op.Value is populated — every
// kind except the three that instead carry a nested sub-document
// (NestedMember, SeqNestedAt, DictNested) and DictRemove, which needs only
// its key.
func hasValuePayload(k delta.Kind) bool {
	switch k {
	case delta.ReplaceObject, delta.SetMember, delta.SeqReplaceAt, delta.SeqAddAt, delta.SeqRemoveAt, delta.DictSet:
		return true
	default:
		return false
	}
}

func (e *encoder) encodeOp(b []byte, op delta.Op) ([]byte, error) {
	wire, ok := opKindWire[op.Kind]
	if !ok {
		return nil, dkerr.New(dkerr.KindDecode, "unknown op kind %s", op.Kind)
	}
	b = buf.PutVarUint64(b, wire)
	b = buf.PutZigzagVarInt64(b, int64(op.MemberIndex))

	if op.Kind.IsSequenceOp() {
		b = buf.PutVarUint64(b, uint64(op.Index))
	}
	if op.Kind.IsDictOp() {
		var err error
		if op.Key == nil {
			return nil, dkerr.New(dkerr.KindDecode, "%s op missing its key", op.Kind)
		}
		b, err = e.encodeValue(b, *op.Key)
		if err != nil {
			return nil, err
		}
	}
	if hasValuePayload(op.Kind) {
		if op.Value == nil {
			return nil, dkerr.New(dkerr.KindDecode, "%s op missing its value payload", op.Kind)
		}
		var err error
		b, err = e.encodeValue(b, *op.Value)
		if err != nil {
			return nil, err
		}
	}
	if op.Kind.IsNestedOp() {
		var err error
		b, err = e.encodeNested(b, op.Nested)
		if err != nil {
			return nil, err
		}
	}
	return b, nil
}

func (e *encoder) encodeNested(b []byte, doc *delta.Document) ([]byte, error) {
	ops := delta.NewReader(doc).AsSpan()
	b = buf.PutVarUint64(b, uint64(len(ops)))
	for _, op := range ops {
		var err error
		b, err = e.encodeOp(b, op)
		if err != nil {
			return nil, err
		}
	}
	return b, nil
}

func (d *decoder) decodeOp(b []byte, off int) (delta.Op, int, error) {
	wire, next, err := buf.ReadVarUint64(b, off)
	if err != nil {
		return delta.Op{}, 0, err
	}
	kind, ok := wireToOpKind[wire]
	if !ok {
		return delta.Op{}, 0, dkerr.Wrap(dkerr.KindDecode, dkerr.ErrUnknownOpKind, "unknown op kind wire value %d", wire)
	}

	member, next, err := buf.ReadZigzagVarInt64(b, next)
	if err != nil {
		return delta.Op{}, 0, err
	}
	op := delta.Op{Kind: kind, MemberIndex: int32(member), Index: delta.NoIndex}

	if kind.IsSequenceOp() {
		idx, n, err := buf.ReadVarUintChecked(b, next, d.opt.Limits.MaxOps)
		if err != nil {
			return delta.Op{}, 0, err
		}
		op.Index = int32(idx)
		next = n
	}
	if kind.IsDictOp() {
		k, n, err := d.decodeValue(b, next)
		if err != nil {
			return delta.Op{}, 0, err
		}
		op.Key = &k
		next = n
	}
	if hasValuePayload(kind) {
		v, n, err := d.decodeValue(b, next)
		if err != nil {
			return delta.Op{}, 0, err
		}
		op.Value = &v
		next = n
	}
	if kind.IsNestedOp() {
		nested, n, err := d.decodeNested(b, next)
		if err != nil {
			return delta.Op{}, 0, err
		}
		op.Nested = nested
		next = n
	}
	return op, next, nil
}

func (d *decoder) decodeNested(b []byte, off int) (*delta.Document, int, error) {
	if err := d.enterNesting(); err != nil {
		return nil, 0, err
	}
	defer d.exitNesting()

	n, next, err := buf.ReadVarUintChecked(b, off, d.opt.Limits.MaxOps)
	if err != nil {
		return nil, 0, err
	}
	ops := make([]delta.Op, 0, n)
	for i := 0; i < n; i++ {
		var op delta.Op
		op, next, err = d.decodeOp(b, next)
		if err != nil {
			return nil, 0, err
		}
		ops = append(ops, op)
	}
	return delta.FromOps(ops), next, nil
}
