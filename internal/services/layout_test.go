package services

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/vostrano/heritage-backend/internal/flow"
	"github.com/vostrano/heritage-backend/internal/types"
)

func TestAssignmentsRoundTrip(t *testing.T) {
	imageID := uuid.New()
	caption := "Override caption"
	stored := map[flow.SlotKey]storedAssignment{
		"tpl:0:img": {SlotID: "img", ImageID: &imageID, CaptionOverride: &caption},
		"tpl:2:img": {SlotID: "img"},
	}

	raw, err := encodeAssignments(stored)
	if err != nil {
		t.Fatalf("encodeAssignments: %v", err)
	}

	article := &types.Article{SlotAssignments: raw}
	decoded, err := decodeAssignments(article)
	if err != nil {
		t.Fatalf("decodeAssignments: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("expected 2 assignments, got %d", len(decoded))
	}
	got := decoded["tpl:0:img"]
	if got.ImageID == nil || *got.ImageID != imageID {
		t.Fatalf("image id lost in round trip: %+v", got)
	}
	if got.CaptionOverride == nil || *got.CaptionOverride != caption {
		t.Fatalf("caption override lost in round trip: %+v", got)
	}
	if decoded["tpl:2:img"].ImageID != nil {
		t.Fatalf("empty assignment grew an image id")
	}
}

func TestDecodeAssignmentsEmpty(t *testing.T) {
	decoded, err := decodeAssignments(&types.Article{})
	if err != nil {
		t.Fatalf("decodeAssignments: %v", err)
	}
	if len(decoded) != 0 {
		t.Fatalf("expected empty map, got %d entries", len(decoded))
	}
}

func TestDecodeAssignmentsBadJSON(t *testing.T) {
	article := &types.Article{SlotAssignments: datatypes.JSON([]byte("{broken"))}
	if _, err := decodeAssignments(article); err == nil {
		t.Fatalf("expected error for malformed JSON")
	}
}

func TestSlotIDFromKey(t *testing.T) {
	slotID, err := slotIDFromKey("a1b2:3:img-a")
	if err != nil {
		t.Fatalf("slotIDFromKey: %v", err)
	}
	if slotID != "img-a" {
		t.Fatalf("slotIDFromKey = %q, want %q", slotID, "img-a")
	}

	for _, bad := range []flow.SlotKey{"", "no-colons", "a:b", "a:b:", "a:b:c:d"} {
		if _, err := slotIDFromKey(bad); err == nil {
			t.Fatalf("expected error for key %q", bad)
		}
	}
}
