package flow

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTextPolicyClamp(t *testing.T) {
	cases := []struct {
		policy TextPolicy
		want   int
	}{
		{TextPolicy{TargetWords: 50}, 50},
		{TextPolicy{TargetWords: 50, MinWords: 60}, 60},
		{TextPolicy{TargetWords: 50, MaxWords: 40}, 40},
		{TextPolicy{TargetWords: 0}, 0},
	}
	for i, tc := range cases {
		if got := tc.policy.Clamp(); got != tc.want {
			t.Fatalf("case %d: got %d, want %d", i, got, tc.want)
		}
	}
}

func TestLoadCatalogMergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	raw := `
- section_type_id: hero
  blocks:
    - id: img
      kind: image
      image_slot_id: img
      sizing:
        column_fraction: 1
        aspect_ratio: 2.4
- section_type_id: full-width-text
  blocks:
    - id: text
      kind: text
      accepts_text_flow: true
      text_policy:
        target_words: 200
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cat, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}

	hero, ok := cat.Get("hero")
	if !ok {
		t.Fatalf("custom entry missing")
	}
	if arch, _ := Classify(hero.Blocks); arch != ArchetypeFullWidthImage {
		t.Fatalf("hero classifies as %q", arch)
	}

	fwt, _ := cat.Get("full-width-text")
	if fwt.Blocks[0].TextPolicy.TargetWords != 200 {
		t.Fatalf("override not applied: %+v", fwt.Blocks[0].TextPolicy)
	}

	if _, ok := cat.Get("two-images"); !ok {
		t.Fatalf("default entries must survive the merge")
	}
}

func TestLoadCatalogRejectsInvalidEntries(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("- blocks: []\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := LoadCatalog(path); err == nil {
		t.Fatalf("expected error for entry without section_type_id")
	}
}
