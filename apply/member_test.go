package apply

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/deltakit/delta"
	"github.com/joshuapare/deltakit/value"
)

func TestMemberSetReplacesValue(t *testing.T) {
	v := value.Int32(9)
	op := delta.Op{Kind: delta.SetMember, Value: &v}
	out, err := Member([]delta.Op{op}, value.Int32(1), nil)
	require.NoError(t, err)
	n, _ := out.AsInt64()
	assert.Equal(t, int64(9), n)
}

func TestMemberSetReplayOfIdenticalValueIsNoOp(t *testing.T) {
	v := value.Int32(9)
	op := delta.Op{Kind: delta.SetMember, Value: &v}
	out, err := Member([]delta.Op{op}, value.Int32(9), nil)
	require.NoError(t, err)
	n, _ := out.AsInt64()
	assert.Equal(t, int64(9), n)
}

func TestMemberNestedRecurses(t *testing.T) {
	doc := delta.NewDocument(0)
	w := delta.NewWriter(doc, nil)
	scope, err := w.BeginNestedMember(0)
	require.NoError(t, err)
	require.NoError(t, scope.Writer().WriteSetMember(0, value.Int32(5)))
	require.NoError(t, scope.Close())
	op, _ := doc.At(0)

	called := false
	valueApply := func(target value.Value, r *delta.Reader) (value.Value, error) {
		called = true
		return value.Int32(5), nil
	}
	out, err := Member([]delta.Op{op}, value.Int32(1), valueApply)
	require.NoError(t, err)
	assert.True(t, called)
	n, _ := out.AsInt64()
	assert.Equal(t, int64(5), n)
}

func TestMemberNestedWithoutApplierErrors(t *testing.T) {
	doc := delta.NewDocument(0)
	w := delta.NewWriter(doc, nil)
	scope, err := w.BeginNestedMember(0)
	require.NoError(t, err)
	require.NoError(t, scope.Writer().WriteSetMember(0, value.Int32(5)))
	require.NoError(t, scope.Close())
	op, _ := doc.At(0)

	_, err = Member([]delta.Op{op}, value.Int32(1), nil)
	require.Error(t, err)
}

func TestRootReplacementFound(t *testing.T) {
	doc := delta.NewDocument(0)
	w := delta.NewWriter(doc, nil)
	require.NoError(t, w.WriteReplaceObject(value.Int32(42)))

	v, ok := RootReplacement(delta.NewReader(doc))
	require.True(t, ok)
	n, _ := v.AsInt64()
	assert.Equal(t, int64(42), n)
}

func TestRootReplacementAbsent(t *testing.T) {
	doc := delta.NewDocument(0)
	w := delta.NewWriter(doc, nil)
	require.NoError(t, w.WriteSetMember(0, value.Int32(1)))

	_, ok := RootReplacement(delta.NewReader(doc))
	assert.False(t, ok)
}
