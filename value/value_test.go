package value

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalarRoundTrips(t *testing.T) {
	t.Run("bool", func(t *testing.T) {
		v := Bool(true)
		b, ok := v.AsBool()
		require.True(t, ok)
		assert.True(t, b)
	})

	t.Run("signed integers", func(t *testing.T) {
		assert.Equal(t, KindInt8, Int8(-5).Kind())
		i, ok := Int8(-5).AsInt64()
		require.True(t, ok)
		assert.EqualValues(t, -5, i)

		i, ok = Int64(-1 << 40).AsInt64()
		require.True(t, ok)
		assert.EqualValues(t, -1<<40, i)
	})

	t.Run("unsigned integers", func(t *testing.T) {
		u, ok := Uint32(4294967295).AsUint64()
		require.True(t, ok)
		assert.EqualValues(t, 4294967295, u)
	})

	t.Run("char16", func(t *testing.T) {
		u, ok := Char16(0x4e2d).AsUint64()
		require.True(t, ok)
		assert.EqualValues(t, 0x4e2d, u)
	})

	t.Run("float32 preserves bit pattern", func(t *testing.T) {
		nan := math.Float32frombits(0x7fc00001)
		f, ok := Float32(nan).AsFloat32()
		require.True(t, ok)
		assert.Equal(t, math.Float32bits(nan), math.Float32bits(f))
	})

	t.Run("float64 preserves negative zero", func(t *testing.T) {
		negZero := math.Copysign(0, -1)
		f, ok := Float64(negZero).AsFloat64()
		require.True(t, ok)
		assert.Equal(t, math.Float64bits(negZero), math.Float64bits(f))
	})

	t.Run("string", func(t *testing.T) {
		s, ok := String("hello").AsString()
		require.True(t, ok)
		assert.Equal(t, "hello", s)
	})

	t.Run("guid", func(t *testing.T) {
		id := uuid.New()
		g, ok := GUID(id).AsGUID()
		require.True(t, ok)
		assert.Equal(t, id, g)
	})

	t.Run("datetime", func(t *testing.T) {
		ticks, kind, ok := DateTime(123456789, DateTimeUTC).AsDateTime()
		require.True(t, ok)
		assert.EqualValues(t, 123456789, ticks)
		assert.Equal(t, DateTimeUTC, kind)
	})

	t.Run("timespan", func(t *testing.T) {
		ticks, ok := TimeSpan(-500).AsTimeSpan()
		require.True(t, ok)
		assert.EqualValues(t, -500, ticks)
	})

	t.Run("datetimeoffset", func(t *testing.T) {
		ticks, off, ok := DateTimeOffset(42, -420).AsDateTimeOffset()
		require.True(t, ok)
		assert.EqualValues(t, 42, ticks)
		assert.EqualValues(t, -420, off)
	})

	t.Run("enum", func(t *testing.T) {
		underlying, typ, ok := Enum(7, "Color").AsEnum()
		require.True(t, ok)
		assert.EqualValues(t, 7, underlying)
		assert.Equal(t, "Color", typ)
	})

	t.Run("byte array", func(t *testing.T) {
		b, ok := ByteArray([]byte{1, 2, 3}).AsByteArray()
		require.True(t, ok)
		assert.Equal(t, []byte{1, 2, 3}, b)
	})
}

func TestWrongKindAccessorsFail(t *testing.T) {
	v := String("x")
	_, ok := v.AsBool()
	assert.False(t, ok)
	_, ok = v.AsInt64()
	assert.False(t, ok)
	_, _, ok = v.AsDateTime()
	assert.False(t, ok)
}

func TestNull(t *testing.T) {
	assert.True(t, Null().IsNull())
	assert.False(t, String("").IsNull())
}

func TestKindIsHashFriendly(t *testing.T) {
	assert.True(t, KindInt32.IsHashFriendly())
	assert.True(t, KindString.IsHashFriendly())
	assert.True(t, KindGUID.IsHashFriendly())
	assert.False(t, KindObject.IsHashFriendly())
	assert.False(t, KindMap.IsHashFriendly())
}

func TestContainer(t *testing.T) {
	m := map[string]int{"a": 1}
	v := Container(KindMap, m)
	obj, ok := v.AsContainer()
	require.True(t, ok)
	assert.Equal(t, m, obj)

	_, ok = String("x").AsContainer()
	assert.False(t, ok)
}
