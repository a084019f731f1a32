package codec

import (
	"github.com/joshuapare/deltakit/delta"
	"github.com/joshuapare/deltakit/value"
)

// buildStringTable pre-walks doc and interns every string that occurs at
// least twice or is at least 8 bytes long — short, one-off strings cost
// more as a table entry (index + table slot) than inlined. Enum type
// identities are candidates for the same table. Returns the interned list
// in first-occurrence order and an index from string to table slot.
func buildStringTable(doc *delta.Document) ([]string, map[string]int) {
	counts := make(map[string]int)
	var order []string
	add := func(s string) {
		if _, seen := counts[s]; !seen {
			order = append(order, s)
		}
		counts[s]++
	}

	collect := func(v value.Value) {
		if s, ok := v.AsString(); ok {
			add(s)
		}
		if _, typ, ok := v.AsEnum(); ok {
			add(typ)
		}
	}

	walkDocument(doc, func(op delta.Op) {
		if op.Key != nil {
			walkScalars(*op.Key, collect)
		}
		if op.Value != nil {
			walkScalars(*op.Value, collect)
		}
	})

	var interned []string
	index := make(map[string]int)
	for _, s := range order {
		if counts[s] >= 2 || len(s) >= 8 {
			index[s] = len(interned)
			interned = append(interned, s)
		}
	}
	return interned, index
}

// collectEnumTypes pre-walks doc for the distinct enum type identities
// referenced by any value, in first-occurrence order.
func collectEnumTypes(doc *delta.Document) []string {
	seen := make(map[string]bool)
	var out []string
	collect := func(v value.Value) {
		if _, typ, ok := v.AsEnum(); ok && !seen[typ] {
			seen[typ] = true
			out = append(out, typ)
		}
	}
	walkDocument(doc, func(op delta.Op) {
		if op.Key != nil {
			walkScalars(*op.Key, collect)
		}
		if op.Value != nil {
			walkScalars(*op.Value, collect)
		}
	})
	return out
}

func indexOf(list []string) map[string]int {
	m := make(map[string]int, len(list))
	for i, s := range list {
		m[s] = i
	}
	return m
}
