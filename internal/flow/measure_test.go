package flow

import "testing"

func TestHeightLockReleasesBelowWideBreakpoint(t *testing.T) {
	if got := HeightLockMinHeight(480, WideBreakpointPx-1); got != 0 {
		t.Fatalf("expected released lock on narrow viewport, got %v", got)
	}
	if got := HeightLockMinHeight(480, 375); got != 0 {
		t.Fatalf("expected released lock on mobile viewport, got %v", got)
	}
}

func TestHeightLockAddsHangAllowance(t *testing.T) {
	got := HeightLockMinHeight(480, WideBreakpointPx)
	if got != 480+HangAllowancePx {
		t.Fatalf("expected %v, got %v", 480+HangAllowancePx, got)
	}
}

func TestAspectMeasurer(t *testing.T) {
	m := AspectMeasurer{}

	slot := ImageSlot{Src: "x", AspectRatio: 2}
	if got := m.MeasureImageHeight(slot, 600); got != 300 {
		t.Fatalf("expected 300, got %v", got)
	}

	// Empty slots still measure: the placeholder box has a height too.
	empty := ImageSlot{}
	if got := m.MeasureImageHeight(empty, 400); got != 300 {
		t.Fatalf("expected placeholder height 300, got %v", got)
	}
}
