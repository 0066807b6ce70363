package flow

import "testing"

func TestResetIsIdempotent(t *testing.T) {
	a := Assignments{}
	key := MakeSlotKey("tpl", 0, "img")
	a.Pick(key, "img", ImageSlot{Src: "https://cdn/x.jpg", Alt: "x", Caption: "c", GalleryCaption: "g", AspectRatio: 1.5, Href: "https://x"})

	a.Reset(key)
	once := a[key]
	a.Reset(key)
	twice := a[key]

	if once != twice {
		t.Fatalf("reset not idempotent: %+v vs %+v", once, twice)
	}
	if once.SlotID != "img" {
		t.Fatalf("reset must preserve slot id, got %q", once.SlotID)
	}
	if once.Src != "" || once.Alt != "" || once.Caption != "" || once.GalleryCaption != "" || once.Href != "" || once.AspectRatio != 0 {
		t.Fatalf("reset left content behind: %+v", once)
	}
}

func TestCaptionPrecedence(t *testing.T) {
	slot := ImageSlot{Caption: "Override", GalleryCaption: "Fallback"}
	if got := slot.EffectiveCaption(); got != "Override" {
		t.Fatalf("expected override to win, got %q", got)
	}

	slot.Caption = "   "
	if got := slot.EffectiveCaption(); got != "Fallback" {
		t.Fatalf("expected whitespace override to defer to fallback, got %q", got)
	}

	slot.GalleryCaption = ""
	if got := slot.EffectiveCaption(); got != "" {
		t.Fatalf("expected no caption, got %q", got)
	}
}

func TestSetAndRevertCaptionBySlotID(t *testing.T) {
	a := Assignments{}
	a.Pick(MakeSlotKey("tpl", 0, "img"), "img", ImageSlot{Src: "s", GalleryCaption: "Fallback"})
	a.Pick(MakeSlotKey("tpl", 2, "other"), "other", ImageSlot{Src: "s2", GalleryCaption: "Other"})

	if n := a.SetCaptionBySlotID("img", "Override"); n != 1 {
		t.Fatalf("expected 1 patched, got %d", n)
	}
	if got := a[MakeSlotKey("tpl", 0, "img")].EffectiveCaption(); got != "Override" {
		t.Fatalf("expected Override, got %q", got)
	}
	if got := a[MakeSlotKey("tpl", 2, "other")].EffectiveCaption(); got != "Other" {
		t.Fatalf("unrelated slot patched: %q", got)
	}

	if n := a.RevertCaptionBySlotID("img"); n != 1 {
		t.Fatalf("expected 1 reverted, got %d", n)
	}
	if got := a[MakeSlotKey("tpl", 0, "img")].EffectiveCaption(); got != "Fallback" {
		t.Fatalf("expected fallback after revert, got %q", got)
	}
}

func TestSharedSlotIDPatchesAllMatches(t *testing.T) {
	// Sections sharing a slot id is not expected in normal operation, but
	// when it happens every match is patched identically.
	a := Assignments{}
	a.Pick(MakeSlotKey("tpl", 0, "img"), "img", ImageSlot{Src: "a"})
	a.Pick(MakeSlotKey("tpl", 1, "img"), "img", ImageSlot{Src: "b"})

	if n := a.SetCaptionBySlotID("img", "Shared"); n != 2 {
		t.Fatalf("expected both assignments patched, got %d", n)
	}
	for key, slot := range a {
		if slot.Caption != "Shared" {
			t.Fatalf("assignment %s missed: %+v", key, slot)
		}
	}
}
