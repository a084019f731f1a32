package delta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/joshuapare/deltakit/value"
)

func TestDocumentEmpty(t *testing.T) {
	var d *Document
	assert.True(t, d.IsEmpty())
	assert.Equal(t, 0, d.Len())

	d2 := NewDocument(4)
	assert.True(t, d2.IsEmpty())
}

func TestDocumentAppendAndAt(t *testing.T) {
	d := NewDocument(2)
	v := value.Int32(5)
	d.append(Op{MemberIndex: 1, Kind: SetMember, Index: NoIndex, Value: &v})

	assert.False(t, d.IsEmpty())
	require.Equal(t, 1, d.Len())
	op, ok := d.At(0)
	require.True(t, ok)
	assert.Equal(t, SetMember, op.Kind)

	_, ok = d.At(1)
	assert.False(t, ok)
	_, ok = d.At(-1)
	assert.False(t, ok)
}

func TestComputeStatsNested(t *testing.T) {
	root := NewDocument(0)
	w := NewWriter(root, nil)

	v := value.Int32(1)
	require.NoError(t, w.WriteSetMember(0, v))

	scope, err := w.BeginNestedMember(1)
	require.NoError(t, err)
	require.NoError(t, scope.Writer().WriteSetMember(2, v))
	require.NoError(t, scope.Close())

	stats := ComputeStats(root)
	assert.Equal(t, 3, stats.Ops) // SetMember(0) + NestedMember(1) + nested SetMember(2)
	assert.Equal(t, 1, stats.NestedOps)
	assert.Equal(t, 2, stats.MaxDepth)
}
