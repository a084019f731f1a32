package buf

import "testing"

func TestVarUintRoundTrip(t *testing.T) {
	for _, v := range []uint64{0, 1, 127, 128, 300, 1 << 20, 1 << 40, ^uint64(0)} {
		b := PutVarUint64(nil, v)
		got, next, err := ReadVarUint64(b, 0)
		if err != nil {
			t.Fatalf("ReadVarUint64(%d): %v", v, err)
		}
		if got != v || next != len(b) {
			t.Fatalf("roundtrip(%d) = %d, %d; want %d, %d", v, got, next, v, len(b))
		}
	}
}

func TestZigzagVarIntRoundTrip(t *testing.T) {
	for _, v := range []int64{0, -1, 1, -128, 128, 1 << 30, -(1 << 30)} {
		b := PutZigzagVarInt64(nil, v)
		got, next, err := ReadZigzagVarInt64(b, 0)
		if err != nil {
			t.Fatalf("ReadZigzagVarInt64(%d): %v", v, err)
		}
		if got != v || next != len(b) {
			t.Fatalf("roundtrip(%d) = %d, %d; want %d, %d", v, got, next, v, len(b))
		}
	}
}

func TestReadVarUintTruncated(t *testing.T) {
	if _, _, err := ReadVarUint64([]byte{0x80, 0x80}, 0); err == nil {
		t.Fatalf("expected error on truncated continuation byte")
	}
}

func TestReadVarUintCheckedRejectsOverLimit(t *testing.T) {
	b := PutVarUint64(nil, 1000)
	if _, _, err := ReadVarUintChecked(b, 0, 10); err == nil {
		t.Fatalf("expected capacity error")
	}
	if n, _, err := ReadVarUintChecked(b, 0, 0); err != nil || n != 1000 {
		t.Fatalf("limit<=0 should mean unlimited: got %d, %v", n, err)
	}
}
