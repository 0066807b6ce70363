package flow

import (
	"fmt"
	"strings"
)

// ImageSlot is the picked content of one image block within one section
// instance. Caption is the per-article override; GalleryCaption is the
// gallery-level fallback captured once at pick time.
type ImageSlot struct {
	SlotID         string  `json:"slot_id"`
	Src            string  `json:"src,omitempty"`
	Alt            string  `json:"alt,omitempty"`
	Caption        string  `json:"caption,omitempty"`
	GalleryCaption string  `json:"gallery_caption,omitempty"`
	AspectRatio    float64 `json:"aspect_ratio,omitempty"`
	Href           string  `json:"href,omitempty"`
}

// Empty reports whether the slot is still a placeholder.
func (s ImageSlot) Empty() bool { return strings.TrimSpace(s.Src) == "" }

// EffectiveCaption resolves caption precedence: the trimmed per-article
// override wins, then the trimmed gallery fallback, then nothing.
func (s ImageSlot) EffectiveCaption() string {
	if c := strings.TrimSpace(s.Caption); c != "" {
		return c
	}
	return strings.TrimSpace(s.GalleryCaption)
}

// SlotKey is the composite id addressing one image slot within one template
// instance: "templateID:sectionIndex:imageSlotID".
type SlotKey string

func MakeSlotKey(templateID string, sectionIndex int, imageSlotID string) SlotKey {
	return SlotKey(fmt.Sprintf("%s:%d:%s", templateID, sectionIndex, imageSlotID))
}

// Assignments maps composite slot keys to picked images. It is plain data
// passed into Flow; mutation happens only through the explicit operations
// below, never inside the composer.
type Assignments map[SlotKey]ImageSlot

func (a Assignments) Clone() Assignments {
	out := make(Assignments, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Pick stores the picked image under the composite key. The slot id of the
// key's block wins over whatever the picker payload carried.
func (a Assignments) Pick(key SlotKey, imageSlotID string, slot ImageSlot) {
	slot.SlotID = imageSlotID
	a[key] = slot
}

// Reset clears the slot's content while preserving its id. Resetting an
// already-empty or absent slot is a no-op with the same resulting state.
func (a Assignments) Reset(key SlotKey) {
	slot, ok := a[key]
	if !ok {
		return
	}
	a[key] = ImageSlot{SlotID: slot.SlotID}
}

// SetCaptionBySlotID patches the per-article caption override on every
// assignment whose slot id matches. Multiple sections sharing a slot id are
// all patched identically; slot-id uniqueness is not enforced anywhere.
func (a Assignments) SetCaptionBySlotID(slotID, caption string) int {
	patched := 0
	for key, slot := range a {
		if slot.SlotID != slotID {
			continue
		}
		slot.Caption = caption
		a[key] = slot
		patched++
	}
	return patched
}

// RevertCaptionBySlotID clears the override so the gallery fallback shows
// again. Same scan-all-matches behavior as SetCaptionBySlotID.
func (a Assignments) RevertCaptionBySlotID(slotID string) int {
	patched := 0
	for key, slot := range a {
		if slot.SlotID != slotID {
			continue
		}
		slot.Caption = ""
		a[key] = slot
		patched++
	}
	return patched
}
