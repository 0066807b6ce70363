package flow

import (
	"strings"
	"testing"
)

func textTemplate(id string, targets ...int) (Template, Catalog) {
	cat := Catalog{}
	tpl := Template{ID: id}
	for i, target := range targets {
		typeID := "text-" + string(rune('a'+i))
		cat[typeID] = SectionDef{
			SectionTypeID: typeID,
			Blocks: []BlockDef{
				{ID: "text", Kind: BlockText, AcceptsTextFlow: true, TextPolicy: &TextPolicy{TargetWords: target}},
			},
		}
		tpl.Sections = append(tpl.Sections, TemplateSection{SectionTypeID: typeID})
	}
	return tpl, cat
}

func sectionTexts(li *LayoutInstance) []string {
	var out []string
	for _, sec := range li.Sections {
		for _, b := range sec.Blocks {
			if b.Kind == BlockText {
				out = append(out, b.Text)
			}
		}
	}
	return out
}

func TestFlowExampleScenario(t *testing.T) {
	tpl, cat := textTemplate("tpl", 3, 0)

	li, err := Flow("A B C D E F", tpl, cat, nil)
	if err != nil {
		t.Fatalf("flow failed: %v", err)
	}

	texts := sectionTexts(li)
	if len(texts) != 2 {
		t.Fatalf("expected 2 text blocks, got %d", len(texts))
	}
	if texts[0] != "A B C" {
		t.Fatalf("section 1 text = %q", texts[0])
	}
	if texts[1] != "D E F" {
		t.Fatalf("section 2 text = %q", texts[1])
	}
	if li.ConsumedWords != 6 || li.TotalWords != 6 {
		t.Fatalf("expected full consumption, consumed=%d total=%d", li.ConsumedWords, li.TotalWords)
	}
	if li.LeftoverOffset != len("A B C D E F") {
		t.Fatalf("expected no leftover, offset=%d", li.LeftoverOffset)
	}
}

func TestFlowPartitionProperty(t *testing.T) {
	master := "The fortress crowns the hill above the old town and its walls survive almost intact along the eastern side"
	tpl, cat := textTemplate("tpl", 4, 7, 2, 0)

	li, err := Flow(master, tpl, cat, nil)
	if err != nil {
		t.Fatalf("flow failed: %v", err)
	}

	tokens := Tokenize(master)
	var joined []string
	prevEnd := 0
	for _, sec := range li.Sections {
		for _, b := range sec.Blocks {
			if b.Kind != BlockText || b.Text == "" {
				continue
			}
			if b.StartWord != prevEnd {
				t.Fatalf("gap or overlap: block starts at word %d, previous ended at %d", b.StartWord, prevEnd)
			}
			prevEnd = b.EndWord
			joined = append(joined, b.Text)
		}
	}

	prefix := JoinTokens(tokens[:li.ConsumedWords])
	if got := strings.Join(joined, " "); got != prefix {
		t.Fatalf("concatenated ranges do not reconstruct prefix:\n got %q\nwant %q", got, prefix)
	}
}

func TestFlowDeterministic(t *testing.T) {
	master := "one two three four five six seven eight"
	tpl, cat := textTemplate("tpl", 3, 3, 0)

	first, err := Flow(master, tpl, cat, nil)
	if err != nil {
		t.Fatalf("flow failed: %v", err)
	}
	second, err := Flow(master, tpl, cat, nil)
	if err != nil {
		t.Fatalf("flow failed: %v", err)
	}

	a := sectionTexts(first)
	b := sectionTexts(second)
	if strings.Join(a, "|") != strings.Join(b, "|") {
		t.Fatalf("re-render differs: %v vs %v", a, b)
	}
}

func TestFlowExhaustedTextRendersEmptySections(t *testing.T) {
	tpl, cat := textTemplate("tpl", 2, 2, 2)

	li, err := Flow("only three words", tpl, cat, nil)
	if err != nil {
		t.Fatalf("flow failed: %v", err)
	}

	texts := sectionTexts(li)
	if len(texts) != 3 {
		t.Fatalf("expected all 3 sections kept, got %d", len(texts))
	}
	if texts[0] != "only three" || texts[1] != "words" || texts[2] != "" {
		t.Fatalf("unexpected allocation: %q", texts)
	}
}

func TestFlowLeftoverOffset(t *testing.T) {
	master := "A B C D"
	tpl, cat := textTemplate("tpl", 2)

	li, err := Flow(master, tpl, cat, nil)
	if err != nil {
		t.Fatalf("flow failed: %v", err)
	}
	if li.ConsumedWords != 2 {
		t.Fatalf("expected 2 consumed, got %d", li.ConsumedWords)
	}
	// First unconsumed word is "C" at offset 4.
	if li.LeftoverOffset != 4 {
		t.Fatalf("expected leftover offset 4, got %d", li.LeftoverOffset)
	}
}

func TestFlowHeightLockOnTwoColumnSections(t *testing.T) {
	cat := DefaultCatalog()
	tpl := Template{ID: "tpl", Sections: []TemplateSection{{SectionTypeID: "image-left-text-right"}}}

	picked := Assignments{}
	picked.Pick(MakeSlotKey("tpl", 0, "img"), "img", ImageSlot{Src: "x.jpg", AspectRatio: 1.5})

	li, err := Flow("words go here", tpl, cat, picked,
		WithMeasurer(FixedMeasurer{HeightPx: 420}),
		WithViewportWidth(1280),
	)
	if err != nil {
		t.Fatalf("flow failed: %v", err)
	}

	var textBlock *BlockInstance
	for i, b := range li.Sections[0].Blocks {
		if b.Kind == BlockText {
			textBlock = &li.Sections[0].Blocks[i]
		}
	}
	if textBlock == nil {
		t.Fatalf("no text block in two-column section")
	}
	if textBlock.MinHeightPx != 420+HangAllowancePx {
		t.Fatalf("expected lock %v, got %v", 420+HangAllowancePx, textBlock.MinHeightPx)
	}
}

func TestFlowHeightLockReleasedOnNarrowViewport(t *testing.T) {
	cat := DefaultCatalog()
	tpl := Template{ID: "tpl", Sections: []TemplateSection{{SectionTypeID: "image-left-text-right"}}}

	li, err := Flow("words go here", tpl, cat, nil,
		WithMeasurer(FixedMeasurer{HeightPx: 420}),
		WithViewportWidth(390),
	)
	if err != nil {
		t.Fatalf("flow failed: %v", err)
	}
	for _, b := range li.Sections[0].Blocks {
		if b.Kind == BlockText && b.MinHeightPx != 0 {
			t.Fatalf("expected unset min-height on narrow viewport, got %v", b.MinHeightPx)
		}
	}
}

func TestFlowUnknownSectionTypeSkippedWithWarning(t *testing.T) {
	tpl := Template{ID: "tpl", Sections: []TemplateSection{{SectionTypeID: "no-such-type"}}}

	li, err := Flow("A B", tpl, DefaultCatalog(), nil)
	if err != nil {
		t.Fatalf("flow failed: %v", err)
	}
	if len(li.Sections) != 0 {
		t.Fatalf("expected unknown section skipped, got %d sections", len(li.Sections))
	}
	if len(li.Warnings) != 1 {
		t.Fatalf("expected a warning, got %v", li.Warnings)
	}
}

func TestFlowEmptyPickedSlotStaysPlaceholder(t *testing.T) {
	cat := DefaultCatalog()
	tpl := Template{ID: "tpl", Sections: []TemplateSection{{SectionTypeID: "full-width-image"}}}

	li, err := Flow("", tpl, cat, Assignments{})
	if err != nil {
		t.Fatalf("flow failed: %v", err)
	}
	b := li.Sections[0].Blocks[0]
	if b.Image != nil {
		t.Fatalf("expected placeholder, got %+v", b.Image)
	}
	if b.SlotKey != MakeSlotKey("tpl", 0, "img") {
		t.Fatalf("unexpected slot key %q", b.SlotKey)
	}
}
