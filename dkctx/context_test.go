package dkctx

import (
	"testing"

	"github.com/joshuapare/deltakit/value"
)

func TestEnterExitCycle(t *testing.T) {
	ctx := New(value.DefaultOptions())
	a, b := new(int), new(int)

	if !ctx.Enter(a, b) {
		t.Fatalf("first Enter(a,b) should succeed")
	}
	if ctx.Enter(a, b) {
		t.Fatalf("second Enter(a,b) should report a cycle")
	}
	ctx.Exit(a, b)
	if !ctx.Enter(a, b) {
		t.Fatalf("Enter after Exit should succeed again")
	}
}

func TestEnterOrderSensitive(t *testing.T) {
	ctx := New(value.DefaultOptions())
	a, b := new(int), new(int)

	if !ctx.Enter(a, b) {
		t.Fatalf("Enter(a,b) should succeed")
	}
	// (b,a) is a distinct ordered pair from (a,b).
	if !ctx.Enter(b, a) {
		t.Fatalf("Enter(b,a) should succeed even though Enter(a,b) is active")
	}
}

func TestNoTrackingNeverCycles(t *testing.T) {
	ctx := NoTracking(value.DefaultOptions())
	a, b := new(int), new(int)

	if !ctx.Enter(a, b) {
		t.Fatalf("NoTracking Enter should always succeed")
	}
	if !ctx.Enter(a, b) {
		t.Fatalf("NoTracking Enter should always succeed, even repeated")
	}
	if ctx.CycleTrackingEnabled() {
		t.Fatalf("NoTracking context should report tracking disabled")
	}
}

func TestDepth(t *testing.T) {
	ctx := New(value.DefaultOptions())
	a, b, c, d := new(int), new(int), new(int), new(int)

	if ctx.Depth() != 0 {
		t.Fatalf("initial depth should be 0")
	}
	ctx.Enter(a, b)
	ctx.Enter(c, d)
	if ctx.Depth() != 2 {
		t.Fatalf("depth = %d, want 2", ctx.Depth())
	}
	ctx.Exit(c, d)
	if ctx.Depth() != 1 {
		t.Fatalf("depth = %d, want 1", ctx.Depth())
	}
}
