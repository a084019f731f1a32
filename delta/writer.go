package delta

import (
	"github.com/joshuapare/deltakit/dkerr"
	"github.com/joshuapare/deltakit/value"
)

// Writer appends Ops to a single Document it owns exclusively. A Writer is
// not safe for concurrent use, and nested scopes must be
// closed in strict LIFO order — opening a second nested scope before
// closing the first is a contract error.
type Writer struct {
	doc    *Document
	pool   *Pool
	open   *NestedScope // the innermost currently-open child scope, if any
	closed bool
}

// NewWriter creates a Writer appending to doc, renting nested scopes from
// pool (Default if nil).
func NewWriter(doc *Document, pool *Pool) *Writer {
	if pool == nil {
		pool = Default
	}
	return &Writer{doc: doc, pool: pool}
}

// Document returns the document this writer appends to.
func (w *Writer) Document() *Document { return w.doc }

func (w *Writer) mustBeIdle() error {
	if w.closed {
		return dkerr.ErrWriterReused
	}
	if w.open != nil {
		return dkerr.Wrap(dkerr.KindContract, dkerr.ErrScopeOutOfOrder,
			"writer has an open nested scope that must be closed first")
	}
	return nil
}

// WriteReplaceObject appends a document-level ReplaceObject op.
func (w *Writer) WriteReplaceObject(v value.Value) error {
	if err := w.mustBeIdle(); err != nil {
		return err
	}
	w.doc.append(Op{MemberIndex: NoMember, Kind: ReplaceObject, Index: NoIndex, Value: &v})
	return nil
}

// WriteSetMember appends a shallow member replacement.
func (w *Writer) WriteSetMember(memberIndex int32, v value.Value) error {
	if err := w.mustBeIdle(); err != nil {
		return err
	}
	w.doc.append(Op{MemberIndex: memberIndex, Kind: SetMember, Index: NoIndex, Value: &v})
	return nil
}

// WriteSeqReplaceAt appends a sequence element replacement.
func (w *Writer) WriteSeqReplaceAt(memberIndex, index int32, v value.Value) error {
	if err := w.mustBeIdle(); err != nil {
		return err
	}
	w.doc.append(Op{MemberIndex: memberIndex, Kind: SeqReplaceAt, Index: index, Value: &v})
	return nil
}

// WriteSeqAddAt appends a sequence insertion.
func (w *Writer) WriteSeqAddAt(memberIndex, index int32, v value.Value) error {
	if err := w.mustBeIdle(); err != nil {
		return err
	}
	w.doc.append(Op{MemberIndex: memberIndex, Kind: SeqAddAt, Index: index, Value: &v})
	return nil
}

// WriteSeqRemoveAt appends a sequence removal. expected is the element
// value the target must currently hold for the removal to take effect on
// apply.
func (w *Writer) WriteSeqRemoveAt(memberIndex, index int32, expected value.Value) error {
	if err := w.mustBeIdle(); err != nil {
		return err
	}
	w.doc.append(Op{MemberIndex: memberIndex, Kind: SeqRemoveAt, Index: index, Value: &expected})
	return nil
}

// WriteDictSet appends a map upsert.
func (w *Writer) WriteDictSet(memberIndex int32, key, v value.Value) error {
	if err := w.mustBeIdle(); err != nil {
		return err
	}
	w.doc.append(Op{MemberIndex: memberIndex, Kind: DictSet, Index: NoIndex, Key: &key, Value: &v})
	return nil
}

// WriteDictRemove appends a map removal.
func (w *Writer) WriteDictRemove(memberIndex int32, key value.Value) error {
	if err := w.mustBeIdle(); err != nil {
		return err
	}
	w.doc.append(Op{MemberIndex: memberIndex, Kind: DictRemove, Index: NoIndex, Key: &key})
	return nil
}

// NestedScope is a sub-document opened by BeginNestedMember/BeginDictNested/
// BeginSeqNestedAt. The caller must recurse compute_delta into Scope.Writer()
// and then call Close exactly once, in LIFO order relative to any other open
// scope on the same parent.
//
// On Close, if the sub-document is empty it is returned to the pool and no
// op is appended to the parent; otherwise exactly one op (NestedMember,
// DictNested, or SeqNestedAt) is appended to the parent and ownership of the
// sub-document transfers to that op — the pool must not also reclaim it.
type NestedScope struct {
	parent      *Writer
	child       *Writer
	memberIndex int32
	kind        Kind
	index       int32
	key         *value.Value
	closed      bool
}

// Writer returns the scope's child writer; recurse compute_delta into it.
func (s *NestedScope) Writer() *Writer { return s.child }

// Close finalizes the scope per the rules in the NestedScope doc comment.
// Calling Close twice is a contract error.
func (s *NestedScope) Close() error {
	if s.closed {
		return dkerr.ErrWriterReused
	}
	s.closed = true
	s.child.closed = true
	if s.parent.open != s {
		return dkerr.Wrap(dkerr.KindContract, dkerr.ErrScopeOutOfOrder,
			"nested scopes must be closed in LIFO order")
	}
	s.parent.open = nil

	if s.child.doc.IsEmpty() {
		s.parent.pool.Return(s.child.doc)
		return nil
	}
	op := Op{MemberIndex: s.memberIndex, Kind: s.kind, Index: s.index, Key: s.key, Nested: s.child.doc}
	s.parent.doc.append(op)
	return nil
}

func (w *Writer) beginNested(memberIndex int32, kind Kind, index int32, key *value.Value) (*NestedScope, error) {
	if err := w.mustBeIdle(); err != nil {
		return nil, err
	}
	childDoc := w.pool.Rent(0)
	scope := &NestedScope{
		parent:      w,
		child:       NewWriter(childDoc, w.pool),
		memberIndex: memberIndex,
		kind:        kind,
		index:       index,
		key:         key,
	}
	w.open = scope
	return scope, nil
}

// BeginNestedMember opens a scope to recurse into a user-object member.
func (w *Writer) BeginNestedMember(memberIndex int32) (*NestedScope, error) {
	return w.beginNested(memberIndex, NestedMember, NoIndex, nil)
}

// BeginDictNested opens a scope to recurse into an existing map entry's value.
func (w *Writer) BeginDictNested(memberIndex int32, key value.Value) (*NestedScope, error) {
	return w.beginNested(memberIndex, DictNested, NoIndex, &key)
}

// BeginSeqNestedAt opens a scope to recurse into a sequence element.
func (w *Writer) BeginSeqNestedAt(memberIndex, index int32) (*NestedScope, error) {
	return w.beginNested(memberIndex, SeqNestedAt, index, nil)
}
