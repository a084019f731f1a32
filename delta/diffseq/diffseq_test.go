package diffseq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/deltakit/delta"
	"github.com/joshuapare/deltakit/dkctx"
	"github.com/joshuapare/deltakit/value"
)

func vals(xs ...int32) []value.Value {
	out := make([]value.Value, len(xs))
	for i, x := range xs {
		out[i] = value.Int32(x)
	}
	return out
}

func newCtx() *dkctx.Context {
	return dkctx.New(value.DefaultOptions())
}

func TestOrderedNoChange(t *testing.T) {
	doc := delta.NewDocument(0)
	w := delta.NewWriter(doc, nil)
	require.NoError(t, Ordered(newCtx(), w, 0, vals(1, 2, 3), vals(1, 2, 3), nil))
	assert.True(t, doc.IsEmpty())
}

func TestOrderedSingleInsert(t *testing.T) {
	doc := delta.NewDocument(0)
	w := delta.NewWriter(doc, nil)
	require.NoError(t, Ordered(newCtx(), w, 0, vals(1, 2, 3), vals(1, 9, 2, 3), nil))

	require.Equal(t, 1, doc.Len())
	op, _ := doc.At(0)
	assert.Equal(t, delta.SeqAddAt, op.Kind)
	assert.Equal(t, int32(1), op.Index)
}

func TestOrderedSingleRemove(t *testing.T) {
	doc := delta.NewDocument(0)
	w := delta.NewWriter(doc, nil)
	require.NoError(t, Ordered(newCtx(), w, 0, vals(1, 2, 3), vals(1, 3), nil))

	require.Equal(t, 1, doc.Len())
	op, _ := doc.At(0)
	assert.Equal(t, delta.SeqRemoveAt, op.Kind)
	assert.Equal(t, int32(1), op.Index)
}

func TestOrderedTrailingRemoves(t *testing.T) {
	doc := delta.NewDocument(0)
	w := delta.NewWriter(doc, nil)
	require.NoError(t, Ordered(newCtx(), w, 0, vals(1, 2, 3, 4), vals(1, 2), nil))

	require.Equal(t, 2, doc.Len())
	op0, _ := doc.At(0)
	op1, _ := doc.At(1)
	assert.Equal(t, int32(3), op0.Index, "removes descend so earlier removals don't shift later indices")
	assert.Equal(t, int32(2), op1.Index)
}

func TestOrderedTrailingAdds(t *testing.T) {
	doc := delta.NewDocument(0)
	w := delta.NewWriter(doc, nil)
	require.NoError(t, Ordered(newCtx(), w, 0, vals(1, 2), vals(1, 2, 3, 4), nil))

	require.Equal(t, 2, doc.Len())
	op0, _ := doc.At(0)
	op1, _ := doc.At(1)
	assert.Equal(t, int32(2), op0.Index)
	assert.Equal(t, int32(3), op1.Index)
}

func TestOrderedReplaceMiddle(t *testing.T) {
	doc := delta.NewDocument(0)
	w := delta.NewWriter(doc, nil)
	require.NoError(t, Ordered(newCtx(), w, 0, vals(1, 2, 3), vals(1, 9, 3), nil))

	require.Equal(t, 1, doc.Len())
	op, _ := doc.At(0)
	assert.Equal(t, delta.SeqReplaceAt, op.Kind)
	assert.Equal(t, int32(1), op.Index)
}

func TestOrderedBothEmpty(t *testing.T) {
	doc := delta.NewDocument(0)
	w := delta.NewWriter(doc, nil)
	require.NoError(t, Ordered(newCtx(), w, 0, nil, nil, nil))
	assert.True(t, doc.IsEmpty())
}
