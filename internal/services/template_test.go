package services

import (
	"testing"

	"gorm.io/datatypes"

	"github.com/vostrano/heritage-backend/internal/flow"
	"github.com/vostrano/heritage-backend/internal/types"
)

func TestParseTemplateSections(t *testing.T) {
	template := &types.PageTemplate{
		Sections: datatypes.JSON([]byte(`[
			{"section_type_id":"image-left-text-right","version":1},
			{"section_type_id":"full-width-text","version":1}
		]`)),
	}
	sections, err := ParseTemplateSections(template)
	if err != nil {
		t.Fatalf("ParseTemplateSections: %v", err)
	}
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if sections[0].SectionTypeID != "image-left-text-right" {
		t.Fatalf("unexpected first section: %+v", sections[0])
	}
}

func TestValidateSections(t *testing.T) {
	ts := &templateService{catalog: flow.DefaultCatalog()}

	valid := &types.PageTemplate{
		Sections: datatypes.JSON([]byte(`[{"section_type_id":"full-width-image","version":1}]`)),
	}
	if err := ts.validateSections(valid); err != nil {
		t.Fatalf("validateSections: %v", err)
	}

	empty := &types.PageTemplate{Sections: datatypes.JSON([]byte(`[]`))}
	if err := ts.validateSections(empty); err == nil {
		t.Fatalf("expected error for empty section list")
	}

	unknown := &types.PageTemplate{
		Sections: datatypes.JSON([]byte(`[{"section_type_id":"does-not-exist","version":1}]`)),
	}
	if err := ts.validateSections(unknown); err == nil {
		t.Fatalf("expected error for unknown section type")
	}
}
