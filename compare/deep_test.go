package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/deltakit/dkctx"
	"github.com/joshuapare/deltakit/registry"
	"github.com/joshuapare/deltakit/value"
)

type node struct {
	Name string
	Next *node
}

func TestDeepDispatchesThroughRegistry(t *testing.T) {
	reg := registry.New()
	registry.RegisterComparer(reg, func(ctx *dkctx.Context, a, b *node) bool {
		if a == nil || b == nil {
			return a == b
		}
		if a.Name != b.Name {
			return false
		}
		eq, err := Deep(ctx, reg, a.Next, b.Next)
		return err == nil && eq
	})

	a := &node{Name: "root", Next: &node{Name: "child"}}
	b := &node{Name: "root", Next: &node{Name: "child"}}
	ctx := dkctx.New(value.DefaultOptions())

	eq, err := Deep(ctx, reg, a, b)
	require.NoError(t, err)
	assert.True(t, eq)
}

func TestDeepNilHandling(t *testing.T) {
	reg := registry.New()
	ctx := dkctx.New(value.DefaultOptions())

	eq, err := Deep(ctx, reg, nil, nil)
	require.NoError(t, err)
	assert.True(t, eq)

	eq, err = Deep(ctx, reg, &node{}, nil)
	require.NoError(t, err)
	assert.False(t, eq)
}

func TestDeepUnregisteredTypeErrors(t *testing.T) {
	reg := registry.New()
	ctx := dkctx.New(value.DefaultOptions())

	_, err := Deep(ctx, reg, &node{}, &node{})
	assert.Error(t, err)
}

func TestDeepCycleTreatedAsEqual(t *testing.T) {
	reg := registry.New()
	registry.RegisterComparer(reg, func(ctx *dkctx.Context, a, b *node) bool {
		eq, err := Deep(ctx, reg, a.Next, b.Next)
		return err == nil && eq
	})

	a := &node{Name: "self"}
	a.Next = a
	b := &node{Name: "self"}
	b.Next = b

	ctx := dkctx.New(value.DefaultOptions())
	eq, err := Deep(ctx, reg, a, b)
	require.NoError(t, err)
	assert.True(t, eq)
}
