package flow

type Archetype string

const (
	ArchetypeFullWidthImage     Archetype = "full-width-image"
	ArchetypeFullWidthText      Archetype = "full-width-text"
	ArchetypeImageLeftTextRight Archetype = "image-left-text-right"
	ArchetypeImageRightTextLeft Archetype = "image-right-text-left"
	ArchetypeTwoImages          Archetype = "two-images"
	ArchetypeThreeImages        Archetype = "three-images"
)

// Classify derives a section's archetype from the multiset of its block
// kinds. For the one-image-one-text shapes, whichever block appears first in
// catalog order decides the side the image lands on.
//
// Unclassifiable combinations fall back to full-width-text rendering of
// whatever text exists. The fallback is reported explicitly (ok=false) so
// callers can surface malformed catalog entries instead of mis-rendering
// silently.
func Classify(blocks []BlockDef) (arch Archetype, ok bool) {
	images, texts := 0, 0
	firstImage := -1
	firstText := -1
	for i, b := range blocks {
		switch b.Kind {
		case BlockImage:
			images++
			if firstImage < 0 {
				firstImage = i
			}
		case BlockText:
			texts++
			if firstText < 0 {
				firstText = i
			}
		default:
			return ArchetypeFullWidthText, false
		}
	}

	switch {
	case images == 1 && texts == 0:
		return ArchetypeFullWidthImage, true
	case images == 0 && texts == 1:
		return ArchetypeFullWidthText, true
	case images == 2 && texts == 0:
		return ArchetypeTwoImages, true
	case images == 3 && texts == 0:
		return ArchetypeThreeImages, true
	case images == 1 && texts == 1:
		if firstImage < firstText {
			return ArchetypeImageLeftTextRight, true
		}
		return ArchetypeImageRightTextLeft, true
	}
	return ArchetypeFullWidthText, false
}

// TwoColumn reports whether the archetype pairs an image column with a text
// column, which is the precondition for the height lock.
func (a Archetype) TwoColumn() bool {
	return a == ArchetypeImageLeftTextRight || a == ArchetypeImageRightTextLeft
}
