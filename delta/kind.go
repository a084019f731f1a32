// Package delta implements the delta document model: the operation
// vocabulary, the pooled append-only Document, the scoped Writer, and the
// random-access/streaming Reader. It has no dependency on the registry or
// comparison packages — registered compute_delta/apply_delta functions take
// a *Writer or *Reader as a parameter, so delta must stay a leaf package.
package delta

// Kind enumerates the operation vocabulary a Document can hold.
type Kind uint8

const (
	// ReplaceObject replaces the whole object at the document root.
	ReplaceObject Kind = iota
	// SetMember shallow-replaces a member's value.
	SetMember
	// NestedMember recurses into a member via a nested Document.
	NestedMember
	// SeqReplaceAt replaces the sequence element at Index.
	SeqReplaceAt
	// SeqAddAt inserts an element at Index.
	SeqAddAt
	// SeqRemoveAt removes the element at Index, carrying the expected
	// element so apply can no-op on a stale replay.
	SeqRemoveAt
	// SeqNestedAt recurses into the sequence element at Index.
	SeqNestedAt
	// DictSet upserts a map entry.
	DictSet
	// DictRemove removes a map entry by key.
	DictRemove
	// DictNested recurses into an existing map entry's value.
	DictNested
)

// String renders the Kind for diagnostics.
func (k Kind) String() string {
	switch k {
	case ReplaceObject:
		return "ReplaceObject"
	case SetMember:
		return "SetMember"
	case NestedMember:
		return "NestedMember"
	case SeqReplaceAt:
		return "SeqReplaceAt"
	case SeqAddAt:
		return "SeqAddAt"
	case SeqRemoveAt:
		return "SeqRemoveAt"
	case SeqNestedAt:
		return "SeqNestedAt"
	case DictSet:
		return "DictSet"
	case DictRemove:
		return "DictRemove"
	case DictNested:
		return "DictNested"
	default:
		return "Unknown"
	}
}

// IsSequenceOp reports whether the kind carries a sequence Index.
func (k Kind) IsSequenceOp() bool {
	switch k {
	case SeqReplaceAt, SeqAddAt, SeqRemoveAt, SeqNestedAt:
		return true
	default:
		return false
	}
}

// IsDictOp reports whether the kind carries a map Key.
func (k Kind) IsDictOp() bool {
	switch k {
	case DictSet, DictRemove, DictNested:
		return true
	default:
		return false
	}
}

// IsNestedOp reports whether the kind carries a nested Document.
func (k Kind) IsNestedOp() bool {
	switch k {
	case NestedMember, DictNested, SeqNestedAt:
		return true
	default:
		return false
	}
}

// NoIndex is the sentinel Index value for ops that don't target a sequence
// position.
const NoIndex int32 = -1

// NoMember is the sentinel MemberIndex for document-level ops like
// ReplaceObject.
const NoMember int32 = -1
