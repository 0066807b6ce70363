package openai

import (
	"testing"
)

func TestParseCaptionJSON(t *testing.T) {
	raw := `Here is the caption you asked for:
{"caption":"A ruined watchtower at dusk.","alt_text":"Ruined stone watchtower","subjects":["tower","coast"]}`
	got, err := parseCaptionJSON(raw)
	if err != nil {
		t.Fatalf("parseCaptionJSON: %v", err)
	}
	if got.Caption != "A ruined watchtower at dusk." {
		t.Fatalf("unexpected caption: %q", got.Caption)
	}
	if got.AltText != "Ruined stone watchtower" {
		t.Fatalf("unexpected alt text: %q", got.AltText)
	}
	if len(got.Subjects) != 2 {
		t.Fatalf("unexpected subjects: %v", got.Subjects)
	}
}

func TestParseCaptionJSONAltFallsBackToCaption(t *testing.T) {
	got, err := parseCaptionJSON(`{"caption":"Mosaic floor detail."}`)
	if err != nil {
		t.Fatalf("parseCaptionJSON: %v", err)
	}
	if got.AltText != "Mosaic floor detail." {
		t.Fatalf("alt text should fall back to caption, got %q", got.AltText)
	}
	if got.Subjects == nil {
		t.Fatalf("subjects should be non-nil")
	}
}

func TestParseCaptionJSONErrors(t *testing.T) {
	if _, err := parseCaptionJSON(""); err == nil {
		t.Fatalf("expected error for empty input")
	}
	if _, err := parseCaptionJSON("no json here"); err == nil {
		t.Fatalf("expected error for non-JSON input")
	}
	if _, err := parseCaptionJSON(`{"alt_text":"only alt"}`); err == nil {
		t.Fatalf("expected error for missing caption")
	}
}
