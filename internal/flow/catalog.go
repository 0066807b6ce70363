// Package flow distributes an article's master text and picked images across
// an ordered list of layout sections. It is a pure functional core: the same
// inputs always produce the same LayoutInstance, and all rendering-toolkit
// concerns (pixel measurement, breakpoints) enter through small injected
// interfaces so the engine stays deterministic and testable.
package flow

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type BlockKind string

const (
	BlockText  BlockKind = "text"
	BlockImage BlockKind = "image"
)

// TextPolicy governs how many words a text block receives from the shared
// cursor into the master text. TargetWords <= 0 means "take all remaining".
type TextPolicy struct {
	TargetWords    int  `yaml:"target_words" json:"target_words"`
	MinWords       int  `yaml:"min_words,omitempty" json:"min_words,omitempty"`
	MaxWords       int  `yaml:"max_words,omitempty" json:"max_words,omitempty"`
	SnapToSentence bool `yaml:"snap_to_sentence,omitempty" json:"snap_to_sentence,omitempty"`
}

// Clamp applies the min/max bounds to the target quota. Zero bounds are
// treated as unset.
func (p TextPolicy) Clamp() int {
	n := p.TargetWords
	if p.MinWords > 0 && n < p.MinWords {
		n = p.MinWords
	}
	if p.MaxWords > 0 && n > p.MaxWords {
		n = p.MaxWords
	}
	return n
}

// ImageSizing describes how an image block occupies the section's width at
// the wide breakpoint. ColumnFraction 0 defaults to a half-width column.
type ImageSizing struct {
	AspectRatio    float64 `yaml:"aspect_ratio,omitempty" json:"aspect_ratio,omitempty"`
	ColumnFraction float64 `yaml:"column_fraction,omitempty" json:"column_fraction,omitempty"`
}

// BlockDef is one slot of a section archetype: either a text block that
// accepts flowed words or an image block addressed by its slot id.
type BlockDef struct {
	ID              string      `yaml:"id" json:"id"`
	Kind            BlockKind   `yaml:"kind" json:"kind"`
	AcceptsTextFlow bool        `yaml:"accepts_text_flow,omitempty" json:"accepts_text_flow,omitempty"`
	TextPolicy      *TextPolicy `yaml:"text_policy,omitempty" json:"text_policy,omitempty"`
	ImageSlotID     string      `yaml:"image_slot_id,omitempty" json:"image_slot_id,omitempty"`
	Sizing          ImageSizing `yaml:"sizing,omitempty" json:"sizing,omitempty"`
}

type Breakpoint string

const (
	BreakpointMobile Breakpoint = "mobile"
	BreakpointWide   Breakpoint = "wide"
)

type Geometry struct {
	Columns int `yaml:"columns" json:"columns"`
	GapPx   int `yaml:"gap_px,omitempty" json:"gap_px,omitempty"`
}

// TextFlowLock is the declared-but-unshipped height-aware fitter: grow a text
// quota until its rendered height reaches the paired image's height, within
// OvershootPx. Flow does not apply it; word allocation stays quota-driven.
type TextFlowLock struct {
	Enabled     bool    `yaml:"enabled" json:"enabled"`
	OvershootPx float64 `yaml:"overshoot_px,omitempty" json:"overshoot_px,omitempty"`
}

// SectionDef is one catalog entry. The multiset of its block kinds fully
// determines the archetype shape (see Classify).
type SectionDef struct {
	SectionTypeID string                  `yaml:"section_type_id" json:"section_type_id"`
	Blocks        []BlockDef              `yaml:"blocks" json:"blocks"`
	Geometry      map[Breakpoint]Geometry `yaml:"geometry,omitempty" json:"geometry,omitempty"`
	TextFlowLock  *TextFlowLock           `yaml:"text_flow_lock,omitempty" json:"text_flow_lock,omitempty"`
}

type Catalog map[string]SectionDef

func (c Catalog) Get(sectionTypeID string) (SectionDef, bool) {
	def, ok := c[sectionTypeID]
	return def, ok
}

// TemplateSection identifies which archetype occupies one template position.
type TemplateSection struct {
	SectionTypeID string `yaml:"section_type_id" json:"section_type_id"`
	Version       int    `yaml:"version,omitempty" json:"version,omitempty"`
}

type Template struct {
	ID       string            `yaml:"id" json:"id"`
	Sections []TemplateSection `yaml:"sections" json:"sections"`
}

// DefaultCatalog returns the built-in registry of the six shipped archetypes.
func DefaultCatalog() Catalog {
	twoCol := map[Breakpoint]Geometry{
		BreakpointMobile: {Columns: 1, GapPx: 16},
		BreakpointWide:   {Columns: 2, GapPx: 24},
	}
	oneCol := map[Breakpoint]Geometry{
		BreakpointMobile: {Columns: 1, GapPx: 16},
		BreakpointWide:   {Columns: 1, GapPx: 24},
	}
	return Catalog{
		"full-width-image": {
			SectionTypeID: "full-width-image",
			Blocks: []BlockDef{
				{ID: "img", Kind: BlockImage, ImageSlotID: "img", Sizing: ImageSizing{ColumnFraction: 1}},
			},
			Geometry: oneCol,
		},
		"full-width-text": {
			SectionTypeID: "full-width-text",
			Blocks: []BlockDef{
				{ID: "text", Kind: BlockText, AcceptsTextFlow: true, TextPolicy: &TextPolicy{TargetWords: 120}},
			},
			Geometry: oneCol,
		},
		"image-left-text-right": {
			SectionTypeID: "image-left-text-right",
			Blocks: []BlockDef{
				{ID: "img", Kind: BlockImage, ImageSlotID: "img", Sizing: ImageSizing{ColumnFraction: 0.5}},
				{ID: "text", Kind: BlockText, AcceptsTextFlow: true, TextPolicy: &TextPolicy{TargetWords: 90}},
			},
			Geometry: twoCol,
		},
		"image-right-text-left": {
			SectionTypeID: "image-right-text-left",
			Blocks: []BlockDef{
				{ID: "text", Kind: BlockText, AcceptsTextFlow: true, TextPolicy: &TextPolicy{TargetWords: 90}},
				{ID: "img", Kind: BlockImage, ImageSlotID: "img", Sizing: ImageSizing{ColumnFraction: 0.5}},
			},
			Geometry: twoCol,
		},
		"two-images": {
			SectionTypeID: "two-images",
			Blocks: []BlockDef{
				{ID: "img-a", Kind: BlockImage, ImageSlotID: "img-a", Sizing: ImageSizing{ColumnFraction: 0.5}},
				{ID: "img-b", Kind: BlockImage, ImageSlotID: "img-b", Sizing: ImageSizing{ColumnFraction: 0.5}},
			},
			Geometry: twoCol,
		},
		"three-images": {
			SectionTypeID: "three-images",
			Blocks: []BlockDef{
				{ID: "img-a", Kind: BlockImage, ImageSlotID: "img-a", Sizing: ImageSizing{ColumnFraction: 1.0 / 3}},
				{ID: "img-b", Kind: BlockImage, ImageSlotID: "img-b", Sizing: ImageSizing{ColumnFraction: 1.0 / 3}},
				{ID: "img-c", Kind: BlockImage, ImageSlotID: "img-c", Sizing: ImageSizing{ColumnFraction: 1.0 / 3}},
			},
			Geometry: map[Breakpoint]Geometry{
				BreakpointMobile: {Columns: 1, GapPx: 16},
				BreakpointWide:   {Columns: 3, GapPx: 24},
			},
		},
	}
}

// LoadCatalog reads additional or overriding section definitions from a YAML
// file and merges them over the default catalog.
func LoadCatalog(path string) (Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	var defs []SectionDef
	if err := yaml.Unmarshal(raw, &defs); err != nil {
		return nil, fmt.Errorf("parse catalog yaml: %w", err)
	}
	cat := DefaultCatalog()
	for _, def := range defs {
		if def.SectionTypeID == "" {
			return nil, fmt.Errorf("catalog entry missing section_type_id")
		}
		if len(def.Blocks) == 0 {
			return nil, fmt.Errorf("catalog entry %q has no blocks", def.SectionTypeID)
		}
		cat[def.SectionTypeID] = def
	}
	return cat, nil
}
