package codec

import (
	"github.com/joshuapare/deltakit/delta"
	"github.com/joshuapare/deltakit/value"
)

// walkDocument visits every op in doc and, recursively, every op in any
// nested sub-document it carries — the traversal the string-table and
// enum-type-table pre-walk both ride on.
func walkDocument(doc *delta.Document, visit func(op delta.Op)) {
	if doc == nil {
		return
	}
	for _, op := range delta.NewReader(doc).AsSpan() {
		visit(op)
		if op.Kind.IsNestedOp() && op.Nested != nil {
			walkDocument(op.Nested, visit)
		}
	}
}

// walkScalars visits v and, if v is a container, every scalar value nested
// within it — the level the string table and enum-type table intern at,
// since a string or enum buried inside an Array/List/Map element is just
// as worth interning as one held directly by an op.
func walkScalars(v value.Value, visit func(value.Value)) {
	switch v.Kind() {
	case value.KindArray, value.KindList:
		elems, _ := v.AsContainer()
		for _, e := range elems.([]value.Value) {
			walkScalars(e, visit)
		}
	case value.KindMap:
		obj, _ := v.AsContainer()
		for _, e := range obj.([]value.MapEntry) {
			walkScalars(e.Key, visit)
			walkScalars(e.Value, visit)
		}
	default:
		visit(v)
	}
}
