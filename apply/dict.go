package apply

import (
	"github.com/joshuapare/deltakit/compare"
	"github.com/joshuapare/deltakit/delta"
	"github.com/joshuapare/deltakit/dkerr"
	"github.com/joshuapare/deltakit/value"
)

// MapEntry is one key/value pair of a map-shaped member, reusing the same
// shape compare/diffmap key off of so a caller can round-trip entries
// between computing and applying a delta without reformatting them.
type MapEntry = compare.MapEntry

// ValueApply recurses a DictNested op's sub-document into an existing map
// entry's value, returning the entry's new value.
type ValueApply func(target value.Value, r *delta.Reader) (value.Value, error)

// Map applies ops — already filtered to one member's Dict* ops, in
// document order — to target, a map-shaped member, returning the result.
// target is never mutated: Map clones before the first write.
//
// DictRemove of an already-absent key and DictSet of a key already holding
// the new value are both treated as no-ops, making replay of an
// at-least-once-delivered document safe. DictNested never materializes a
// missing key: recursing into "the value currently at this key" assumes
// the key is there, so a DictNested against an absent key is a contract
// error, not an upsert.
func Map(opt value.Options, ops []delta.Op, target []MapEntry, valueApply ValueApply) ([]MapEntry, error) {
	out := append([]MapEntry(nil), target...)
	index := make(map[string]int, len(out))
	for i, e := range out {
		index[compare.CanonicalMapKey(opt, e.Key)] = i
	}

	for _, op := range ops {
		if op.Key == nil {
			return nil, dkerr.New(dkerr.KindContract, "%s op missing its key", op.Kind)
		}
		k := compare.CanonicalMapKey(opt, *op.Key)

		switch op.Kind {
		case delta.DictRemove:
			idx, ok := index[k]
			if !ok {
				continue
			}
			out = append(out[:idx], out[idx+1:]...)
			delete(index, k)
			for kk, vv := range index {
				if vv > idx {
					index[kk] = vv - 1
				}
			}

		case delta.DictSet:
			if idx, ok := index[k]; ok {
				if bitsEqual(out[idx].Value, *op.Value) {
					continue
				}
				out[idx].Value = *op.Value
				continue
			}
			index[k] = len(out)
			out = append(out, MapEntry{Key: *op.Key, Value: *op.Value})

		case delta.DictNested:
			idx, ok := index[k]
			if !ok {
				return nil, dkerr.New(dkerr.KindContract, "DictNested target key not present")
			}
			if valueApply == nil {
				return nil, dkerr.New(dkerr.KindContract, "DictNested op without a value applier")
			}
			nv, err := valueApply(out[idx].Value, delta.NewReader(op.Nested))
			if err != nil {
				return nil, err
			}
			out[idx].Value = nv

		default:
			return nil, dkerr.New(dkerr.KindContract, "op kind %s is not a dict op", op.Kind)
		}
	}
	return out, nil
}
