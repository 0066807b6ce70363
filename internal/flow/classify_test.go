package flow

import "testing"

func TestClassifyArchetypes(t *testing.T) {
	img := BlockDef{ID: "i", Kind: BlockImage, ImageSlotID: "i"}
	txt := BlockDef{ID: "t", Kind: BlockText, AcceptsTextFlow: true}

	cases := []struct {
		name   string
		blocks []BlockDef
		want   Archetype
		wantOK bool
	}{
		{"image then text", []BlockDef{img, txt}, ArchetypeImageLeftTextRight, true},
		{"text then image", []BlockDef{txt, img}, ArchetypeImageRightTextLeft, true},
		{"single image", []BlockDef{img}, ArchetypeFullWidthImage, true},
		{"single text", []BlockDef{txt}, ArchetypeFullWidthText, true},
		{"two images", []BlockDef{img, img}, ArchetypeTwoImages, true},
		{"three images", []BlockDef{img, img, img}, ArchetypeThreeImages, true},
		{"two texts falls back", []BlockDef{txt, txt}, ArchetypeFullWidthText, false},
		{"two images one text falls back", []BlockDef{img, img, txt}, ArchetypeFullWidthText, false},
		{"empty falls back", nil, ArchetypeFullWidthText, false},
	}
	for _, tc := range cases {
		got, ok := Classify(tc.blocks)
		if got != tc.want || ok != tc.wantOK {
			t.Fatalf("%s: got (%s,%v), want (%s,%v)", tc.name, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestDefaultCatalogClassifiesCleanly(t *testing.T) {
	for id, def := range DefaultCatalog() {
		arch, ok := Classify(def.Blocks)
		if !ok {
			t.Fatalf("catalog entry %q is unclassifiable", id)
		}
		if string(arch) != id {
			t.Fatalf("catalog entry %q classifies as %q", id, arch)
		}
	}
}
