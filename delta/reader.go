package delta

// Reader provides random-access and streaming access over a Document.
// Multiple independent Readers may read the same Document
// concurrently; each Reader owns only its own cursor.
type Reader struct {
	doc    *Document
	cursor int
}

// NewReader builds a Reader positioned at the start of doc.
func NewReader(doc *Document) *Reader {
	return &Reader{doc: doc}
}

// Reset rewinds the streaming cursor to the start.
func (r *Reader) Reset() {
	r.cursor = 0
}

// Len returns the number of ops in the underlying document.
func (r *Reader) Len() int {
	return r.doc.Len()
}

// AsSpan returns every op in the document, in order. The returned slice
// must not be mutated.
func (r *Reader) AsSpan() []Op {
	if r.doc == nil {
		return nil
	}
	return r.doc.ops
}

// EnumerateAll is an alias of AsSpan kept for readability at call sites that
// don't care about the "span" framing.
func (r *Reader) EnumerateAll() []Op {
	return r.AsSpan()
}

// EnumerateMember returns every op whose MemberIndex matches memberIndex, in
// document order.
func (r *Reader) EnumerateMember(memberIndex int32) []Op {
	all := r.AsSpan()
	out := make([]Op, 0, len(all))
	for _, op := range all {
		if op.MemberIndex == memberIndex {
			out = append(out, op)
		}
	}
	return out
}

// TryRead advances the streaming cursor and returns the next op, or
// (Op{}, false) once the document is exhausted.
func (r *Reader) TryRead() (Op, bool) {
	if r.cursor >= r.doc.Len() {
		return Op{}, false
	}
	op, ok := r.doc.At(r.cursor)
	if ok {
		r.cursor++
	}
	return op, ok
}
