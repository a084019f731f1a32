package delta

import "github.com/joshuapare/deltakit/value"

// Op is a single entry in a Document. Ops are normally constructed by a
// Writer (the codec's decode path builds them directly and wraps them with
// FromOps) and are treated as immutable once appended; nothing in this
// package mutates an Op after Document.append.
type Op struct {
	// MemberIndex identifies a member on the enclosing object, or NoMember
	// for document-level ops.
	MemberIndex int32

	Kind Kind

	// Index is the sequence position for Seq* ops, or NoIndex otherwise.
	Index int32

	// Key is the map key for Dict* ops, nil otherwise.
	Key *value.Value

	// Value is the payload: new element / new member value / removed
	// expected element. Nil when the op carries no scalar payload (e.g.
	// DictRemove, or any *Nested op whose payload lives in Nested instead).
	Value *value.Value

	// Nested is the sub-document for NestedMember, DictNested, SeqNestedAt.
	Nested *Document
}
