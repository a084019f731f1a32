package apply

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/deltakit/delta"
	"github.com/joshuapare/deltakit/value"
)

func vals(xs ...int32) []value.Value {
	out := make([]value.Value, len(xs))
	for i, x := range xs {
		out[i] = value.Int32(x)
	}
	return out
}

func addOp(index int32, v int32) delta.Op {
	vv := value.Int32(v)
	return delta.Op{Kind: delta.SeqAddAt, Index: index, Value: &vv}
}

func removeOp(index int32, expected int32) delta.Op {
	vv := value.Int32(expected)
	return delta.Op{Kind: delta.SeqRemoveAt, Index: index, Value: &vv}
}

func replaceOp(index int32, v int32) delta.Op {
	vv := value.Int32(v)
	return delta.Op{Kind: delta.SeqReplaceAt, Index: index, Value: &vv}
}

func TestSequenceSingleInsert(t *testing.T) {
	out, err := Sequence([]delta.Op{addOp(1, 9)}, vals(1, 2, 3), nil)
	require.NoError(t, err)
	assertInts(t, []int32{1, 9, 2, 3}, out)
}

func TestSequenceSingleRemove(t *testing.T) {
	out, err := Sequence([]delta.Op{removeOp(1, 2)}, vals(1, 2, 3), nil)
	require.NoError(t, err)
	assertInts(t, []int32{1, 3}, out)
}

func TestSequenceReplace(t *testing.T) {
	out, err := Sequence([]delta.Op{replaceOp(1, 9)}, vals(1, 2, 3), nil)
	require.NoError(t, err)
	assertInts(t, []int32{1, 9, 3}, out)
}

func TestSequenceDescendingRemovesDoNotShift(t *testing.T) {
	ops := []delta.Op{removeOp(3, 4), removeOp(2, 3)}
	out, err := Sequence(ops, vals(1, 2, 3, 4), nil)
	require.NoError(t, err)
	assertInts(t, []int32{1, 2}, out)
}

func TestSequenceAscendingAddsFastLane(t *testing.T) {
	ops := []delta.Op{addOp(2, 3), addOp(3, 4)}
	target := vals(1, 2)
	require.True(t, isAscendingAddRun(ops, target))
	out, err := Sequence(ops, target, nil)
	require.NoError(t, err)
	assertInts(t, []int32{1, 2, 3, 4}, out)
}

func TestSequenceAscendingAddsReplayIsNoOp(t *testing.T) {
	// Replaying the same ascending-add run against an already-patched
	// target must leave it unchanged, not duplicate the inserted values.
	ops := []delta.Op{addOp(3, 9), addOp(4, 9)}
	target := vals(9, 9, 9, 9, 9)
	require.False(t, isAscendingAddRun(ops, target), "fast lane must abort on an already-applied run")
	out, err := Sequence(ops, target, nil)
	require.NoError(t, err)
	assertInts(t, []int32{9, 9, 9, 9, 9}, out)
}

func TestSequenceAddAppendAfterAppendIsNoOp(t *testing.T) {
	ops := []delta.Op{replaceOp(0, 1), addOp(3, 9)}
	target := vals(1, 2, 3, 9)
	out, err := Sequence(ops, target, nil)
	require.NoError(t, err)
	assertInts(t, []int32{1, 2, 3, 9}, out)
}

func TestSequenceAddNoTriplesGuardIsNoOp(t *testing.T) {
	ops := []delta.Op{replaceOp(0, 1), addOp(2, 9)}
	target := vals(1, 9, 9, 3)
	out, err := Sequence(ops, target, nil)
	require.NoError(t, err)
	assertInts(t, []int32{1, 9, 9, 3}, out)
}

func TestSequenceAddBeyondEndClamps(t *testing.T) {
	out, err := Sequence([]delta.Op{addOp(9, 5)}, vals(1, 2), nil)
	require.NoError(t, err)
	assertInts(t, []int32{1, 2, 5}, out)
}

func TestSequenceRemoveReplayIsNoOp(t *testing.T) {
	// Applying the same removal twice: the second replay finds a mismatched
	// element at the index (shifted by the first removal already happening
	// upstream) and must not error or mutate further.
	target := vals(1, 2, 3)
	first, err := Sequence([]delta.Op{removeOp(1, 2)}, target, nil)
	require.NoError(t, err)
	second, err := Sequence([]delta.Op{removeOp(1, 2)}, first, nil)
	require.NoError(t, err)
	assertInts(t, []int32{1, 3}, second)
}

func TestSequenceRemoveOutOfRangeIsNoOp(t *testing.T) {
	out, err := Sequence([]delta.Op{removeOp(5, 1)}, vals(1, 2), nil)
	require.NoError(t, err)
	assertInts(t, []int32{1, 2}, out)
}

func TestSequenceReplayReplaceIsNoOp(t *testing.T) {
	target := vals(1, 2, 3)
	out, err := Sequence([]delta.Op{replaceOp(1, 9)}, target, nil)
	require.NoError(t, err)
	out2, err := Sequence([]delta.Op{replaceOp(1, 9)}, out, nil)
	require.NoError(t, err)
	assertInts(t, []int32{1, 9, 3}, out2)
}

func TestSequenceReplaceOutOfRangeErrors(t *testing.T) {
	_, err := Sequence([]delta.Op{replaceOp(9, 1)}, vals(1, 2), nil)
	require.Error(t, err)
}

func TestSequenceNestedRecurses(t *testing.T) {
	doc := delta.NewDocument(0)
	w := delta.NewWriter(doc, nil)
	scope, err := w.BeginSeqNestedAt(0, 0)
	require.NoError(t, err)
	require.NoError(t, scope.Writer().WriteSetMember(0, value.Int32(42)))
	require.NoError(t, scope.Close())

	op, _ := doc.At(0)
	called := false
	elemApply := func(target value.Value, r *delta.Reader) (value.Value, error) {
		called = true
		return value.Int32(42), nil
	}
	out, err := Sequence([]delta.Op{op}, vals(1), elemApply)
	require.NoError(t, err)
	assert.True(t, called)
	assertInts(t, []int32{42}, out)
}

func TestSequenceDoesNotMutateInput(t *testing.T) {
	target := vals(1, 2, 3)
	_, err := Sequence([]delta.Op{replaceOp(0, 9)}, target, nil)
	require.NoError(t, err)
	assertInts(t, []int32{1, 2, 3}, target)
}

func assertInts(t *testing.T, want []int32, got []value.Value) {
	t.Helper()
	require.Equal(t, len(want), len(got))
	for i, v := range got {
		n, ok := v.AsInt64()
		require.True(t, ok)
		assert.Equal(t, int64(want[i]), n)
	}
}
