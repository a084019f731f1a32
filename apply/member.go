package apply

import (
	"github.com/joshuapare/deltakit/delta"
	"github.com/joshuapare/deltakit/dkerr"
	"github.com/joshuapare/deltakit/value"
)

// Member applies ops — already filtered to one member's SetMember/
// NestedMember ops via Reader.EnumerateMember, in document order — to
// target, the member's current value, returning its new value.
func Member(ops []delta.Op, target value.Value, valueApply ValueApply) (value.Value, error) {
	out := target
	for _, op := range ops {
		switch op.Kind {
		case delta.SetMember:
			if bitsEqual(out, *op.Value) {
				continue
			}
			out = *op.Value

		case delta.NestedMember:
			if valueApply == nil {
				return value.Value{}, dkerr.New(dkerr.KindContract, "NestedMember op without a value applier")
			}
			nv, err := valueApply(out, delta.NewReader(op.Nested))
			if err != nil {
				return value.Value{}, err
			}
			out = nv

		default:
			return value.Value{}, dkerr.New(dkerr.KindContract, "op kind %s is not a member op", op.Kind)
		}
	}
	return out, nil
}

// RootReplacement reports whether r's document carries a document-level
// ReplaceObject op and, if so, returns its payload. ReplaceObject always
// stands alone at the root — a caller that finds one should use its value
// directly instead of walking per-member ops at all.
func RootReplacement(r *delta.Reader) (value.Value, bool) {
	for _, op := range r.AsSpan() {
		if op.Kind == delta.ReplaceObject {
			return *op.Value, true
		}
	}
	return value.Value{}, false
}
