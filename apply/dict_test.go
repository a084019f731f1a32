package apply

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/deltakit/delta"
	"github.com/joshuapare/deltakit/value"
)

func entry(k string, v int32) MapEntry {
	return MapEntry{Key: value.String(k), Value: value.Int32(v)}
}

func dictSetOp(k string, v int32) delta.Op {
	kv, vv := value.String(k), value.Int32(v)
	return delta.Op{Kind: delta.DictSet, Key: &kv, Value: &vv}
}

func dictRemoveOp(k string) delta.Op {
	kv := value.String(k)
	return delta.Op{Kind: delta.DictRemove, Key: &kv}
}

func findEntry(t *testing.T, entries []MapEntry, key string) MapEntry {
	t.Helper()
	for _, e := range entries {
		if s, _ := e.Key.AsString(); s == key {
			return e
		}
	}
	t.Fatalf("key %q not found", key)
	return MapEntry{}
}

func TestMapAddsNewKey(t *testing.T) {
	out, err := Map(value.DefaultOptions(), []delta.Op{dictSetOp("b", 2)}, []MapEntry{entry("a", 1)}, nil)
	require.NoError(t, err)
	require.Len(t, out, 2)
	got := findEntry(t, out, "b")
	n, _ := got.Value.AsInt64()
	assert.Equal(t, int64(2), n)
}

func TestMapRemovesKey(t *testing.T) {
	out, err := Map(value.DefaultOptions(), []delta.Op{dictRemoveOp("a")}, []MapEntry{entry("a", 1), entry("b", 2)}, nil)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "b", mustKey(t, out[0]))
}

func TestMapRemoveOfAbsentKeyIsNoOp(t *testing.T) {
	out, err := Map(value.DefaultOptions(), []delta.Op{dictRemoveOp("missing")}, []MapEntry{entry("a", 1)}, nil)
	require.NoError(t, err)
	require.Len(t, out, 1)
}

func TestMapSetReplayOfIdenticalValueIsNoOp(t *testing.T) {
	target := []MapEntry{entry("a", 1)}
	out, err := Map(value.DefaultOptions(), []delta.Op{dictSetOp("a", 1)}, target, nil)
	require.NoError(t, err)
	require.Len(t, out, 1)
	n, _ := out[0].Value.AsInt64()
	assert.Equal(t, int64(1), n)
}

func TestMapSetOverwritesExistingKey(t *testing.T) {
	out, err := Map(value.DefaultOptions(), []delta.Op{dictSetOp("a", 9)}, []MapEntry{entry("a", 1)}, nil)
	require.NoError(t, err)
	n, _ := out[0].Value.AsInt64()
	assert.Equal(t, int64(9), n)
}

func TestMapDictNestedRecurses(t *testing.T) {
	doc := delta.NewDocument(0)
	w := delta.NewWriter(doc, nil)
	key := value.String("a")
	scope, err := w.BeginDictNested(0, key)
	require.NoError(t, err)
	require.NoError(t, scope.Writer().WriteSetMember(0, value.Int32(99)))
	require.NoError(t, scope.Close())
	op, _ := doc.At(0)

	called := false
	valueApply := func(target value.Value, r *delta.Reader) (value.Value, error) {
		called = true
		return value.Int32(99), nil
	}
	out, err := Map(value.DefaultOptions(), []delta.Op{op}, []MapEntry{entry("a", 1)}, valueApply)
	require.NoError(t, err)
	assert.True(t, called)
	n, _ := out[0].Value.AsInt64()
	assert.Equal(t, int64(99), n)
}

func TestMapDictNestedAgainstMissingKeyErrors(t *testing.T) {
	doc := delta.NewDocument(0)
	w := delta.NewWriter(doc, nil)
	key := value.String("missing")
	scope, err := w.BeginDictNested(0, key)
	require.NoError(t, err)
	require.NoError(t, scope.Writer().WriteSetMember(0, value.Int32(1)))
	require.NoError(t, scope.Close())
	op, _ := doc.At(0)

	_, err = Map(value.DefaultOptions(), []delta.Op{op}, nil, func(value.Value, *delta.Reader) (value.Value, error) {
		return value.Value{}, nil
	})
	require.Error(t, err)
}

func TestMapDoesNotMutateInput(t *testing.T) {
	target := []MapEntry{entry("a", 1)}
	_, err := Map(value.DefaultOptions(), []delta.Op{dictSetOp("a", 9)}, target, nil)
	require.NoError(t, err)
	n, _ := target[0].Value.AsInt64()
	assert.Equal(t, int64(1), n)
}

func mustKey(t *testing.T, e MapEntry) string {
	t.Helper()
	s, ok := e.Key.AsString()
	require.True(t, ok)
	return s
}
