package flow

import (
	"fmt"
)

// BlockInstance is the realized output for one block: a word range into the
// master text for text blocks, or the resolved image (nil = placeholder) for
// image blocks.
type BlockInstance struct {
	Kind    BlockKind `json:"kind"`
	BlockID string    `json:"block_id"`

	Text        string  `json:"text,omitempty"`
	StartWord   int     `json:"start_word,omitempty"`
	EndWord     int     `json:"end_word,omitempty"`
	StartChar   int     `json:"start_char,omitempty"`
	EndChar     int     `json:"end_char,omitempty"`
	MinHeightPx float64 `json:"min_height_px,omitempty"`

	SlotKey SlotKey    `json:"slot_key,omitempty"`
	Image   *ImageSlot `json:"image,omitempty"`
}

type SectionInstance struct {
	SectionTypeID string          `json:"section_type_id"`
	Archetype     Archetype       `json:"archetype"`
	Fallback      bool            `json:"fallback,omitempty"`
	Geometry      Geometry        `json:"geometry"`
	Blocks        []BlockInstance `json:"blocks"`
}

// LayoutInstance is the composed page: the ordered section instances plus
// bookkeeping about how much of the master text was consumed.
type LayoutInstance struct {
	TemplateID     string            `json:"template_id"`
	Sections       []SectionInstance `json:"sections"`
	TotalWords     int               `json:"total_words"`
	ConsumedWords  int               `json:"consumed_words"`
	LeftoverOffset int               `json:"leftover_offset"`
	Warnings       []string          `json:"warnings,omitempty"`
}

type Options struct {
	Measurer        Measurer
	ViewportWidthPx float64
	ContentWidthPx  float64
}

type Option func(*Options)

func WithMeasurer(m Measurer) Option {
	return func(o *Options) { o.Measurer = m }
}

func WithViewportWidth(px float64) Option {
	return func(o *Options) { o.ViewportWidthPx = px }
}

func WithContentWidth(px float64) Option {
	return func(o *Options) { o.ContentWidthPx = px }
}

// Flow distributes masterText and picked images across the template's
// sections. It is pure: a fresh cursor is created per call, so rendering the
// same inputs twice yields byte-identical output.
//
// The union of all text blocks' word ranges, in section order, is a
// non-overlapping gap-free partition of the consumed prefix of the tokenized
// master text. Sections past text exhaustion render with empty text blocks
// rather than being dropped.
func Flow(masterText string, tpl Template, cat Catalog, picked Assignments, opts ...Option) (*LayoutInstance, error) {
	if cat == nil {
		return nil, fmt.Errorf("catalog required")
	}

	o := Options{
		Measurer:        AspectMeasurer{},
		ViewportWidthPx: WideBreakpointPx,
		ContentWidthPx:  960,
	}
	for _, opt := range opts {
		opt(&o)
	}

	tokens := Tokenize(masterText)
	cursor := NewCursor(tokens)

	out := &LayoutInstance{
		TemplateID: tpl.ID,
		TotalWords: len(tokens),
	}

	for idx, ts := range tpl.Sections {
		def, ok := cat.Get(ts.SectionTypeID)
		if !ok {
			out.Warnings = append(out.Warnings, fmt.Sprintf("section %d: unknown section type %q, skipped", idx, ts.SectionTypeID))
			continue
		}

		arch, classified := Classify(def.Blocks)
		if !classified {
			out.Warnings = append(out.Warnings, fmt.Sprintf("section %d: unclassifiable block combination in %q, rendering as full-width-text", idx, ts.SectionTypeID))
		}

		sec := SectionInstance{
			SectionTypeID: ts.SectionTypeID,
			Archetype:     arch,
			Fallback:      !classified,
			Geometry:      def.Geometry[breakpointFor(o.ViewportWidthPx)],
		}

		var textBlockIdx = -1
		var lockHeight float64

		for _, bd := range def.Blocks {
			switch bd.Kind {
			case BlockText:
				bi := buildTextBlock(bd, cursor)
				if bi.EndWord > bi.StartWord {
					out.ConsumedWords = bi.EndWord
				}
				textBlockIdx = len(sec.Blocks)
				sec.Blocks = append(sec.Blocks, bi)
			case BlockImage:
				key := MakeSlotKey(tpl.ID, idx, bd.ImageSlotID)
				bi := BlockInstance{
					Kind:    BlockImage,
					BlockID: bd.ID,
					SlotKey: key,
				}
				slot, havePick := picked[key]
				if havePick && !slot.Empty() {
					s := slot
					bi.Image = &s
				}
				sec.Blocks = append(sec.Blocks, bi)

				if arch.TwoColumn() && o.Measurer != nil {
					colWidth := o.ContentWidthPx * columnFraction(bd.Sizing)
					// Empty slots still contribute the placeholder box height.
					h := o.Measurer.MeasureImageHeight(slot, colWidth)
					lockHeight = HeightLockMinHeight(h, o.ViewportWidthPx)
				}
			}
		}

		if arch.TwoColumn() && textBlockIdx >= 0 && lockHeight > 0 {
			sec.Blocks[textBlockIdx].MinHeightPx = lockHeight
		}

		out.Sections = append(out.Sections, sec)
	}

	if cursor.Remaining() > 0 {
		out.LeftoverOffset = tokens[cursor.Pos()].Start
	} else {
		out.LeftoverOffset = len(masterText)
	}
	return out, nil
}

func buildTextBlock(bd BlockDef, cursor *Cursor) BlockInstance {
	bi := BlockInstance{
		Kind:    BlockText,
		BlockID: bd.ID,
	}
	if !bd.AcceptsTextFlow {
		return bi
	}

	quota := 0
	if bd.TextPolicy != nil {
		quota = bd.TextPolicy.Clamp()
	}

	start := cursor.Pos()
	words := cursor.TakeWords(quota)
	bi.StartWord = start
	bi.EndWord = cursor.Pos()
	bi.Text = JoinTokens(words)
	if len(words) > 0 {
		bi.StartChar = words[0].Start
		bi.EndChar = words[len(words)-1].End
	}
	return bi
}

func breakpointFor(viewportWidthPx float64) Breakpoint {
	if viewportWidthPx >= WideBreakpointPx {
		return BreakpointWide
	}
	return BreakpointMobile
}

func columnFraction(s ImageSizing) float64 {
	if s.ColumnFraction <= 0 || s.ColumnFraction > 1 {
		return 0.5
	}
	return s.ColumnFraction
}
