package flow

import (
	"strings"
	"testing"
)

func TestRenderHTMLCaptionPrecedence(t *testing.T) {
	cat := DefaultCatalog()
	tpl := Template{ID: "tpl", Sections: []TemplateSection{{SectionTypeID: "full-width-image"}}}

	picked := Assignments{}
	picked.Pick(MakeSlotKey("tpl", 0, "img"), "img", ImageSlot{
		Src:            "https://cdn/x.jpg",
		Alt:            "castle",
		Caption:        "Override",
		GalleryCaption: "Fallback",
	})

	li, err := Flow("", tpl, cat, picked)
	if err != nil {
		t.Fatalf("flow failed: %v", err)
	}

	r, err := NewRenderer(true)
	if err != nil {
		t.Fatalf("renderer init failed: %v", err)
	}
	html, err := r.RenderHTML(li)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	if !strings.Contains(html, "<figcaption>Override</figcaption>") {
		t.Fatalf("expected override caption in output:\n%s", html)
	}
	if strings.Contains(html, "Fallback") {
		t.Fatalf("fallback caption leaked into output:\n%s", html)
	}
}

func TestRenderHTMLNoCaptionElementWhenBothEmpty(t *testing.T) {
	cat := DefaultCatalog()
	tpl := Template{ID: "tpl", Sections: []TemplateSection{{SectionTypeID: "full-width-image"}}}

	picked := Assignments{}
	picked.Pick(MakeSlotKey("tpl", 0, "img"), "img", ImageSlot{Src: "https://cdn/x.jpg"})

	li, err := Flow("", tpl, cat, picked)
	if err != nil {
		t.Fatalf("flow failed: %v", err)
	}

	r, _ := NewRenderer(true)
	html, err := r.RenderHTML(li)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if strings.Contains(html, "figcaption") {
		t.Fatalf("expected no caption element:\n%s", html)
	}
}

func TestRenderHTMLPlaceholderForEmptySlot(t *testing.T) {
	cat := DefaultCatalog()
	tpl := Template{ID: "tpl", Sections: []TemplateSection{{SectionTypeID: "full-width-image"}}}

	li, err := Flow("", tpl, cat, nil)
	if err != nil {
		t.Fatalf("flow failed: %v", err)
	}

	r, _ := NewRenderer(false)
	html, err := r.RenderHTML(li)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(html, "flow-figure--empty") {
		t.Fatalf("expected empty-slot affordance:\n%s", html)
	}
	if !strings.Contains(html, `data-action="pick-image"`) {
		t.Fatalf("expected pick affordance in edit mode:\n%s", html)
	}

	ro, _ := NewRenderer(true)
	roHTML, err := ro.RenderHTML(li)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if strings.Contains(roHTML, "data-action") {
		t.Fatalf("read-only output must not carry edit affordances:\n%s", roHTML)
	}
}

func TestRenderHTMLMinHeightStyle(t *testing.T) {
	cat := DefaultCatalog()
	tpl := Template{ID: "tpl", Sections: []TemplateSection{{SectionTypeID: "image-left-text-right"}}}

	li, err := Flow("some words", tpl, cat, nil,
		WithMeasurer(FixedMeasurer{HeightPx: 300}),
		WithViewportWidth(1440),
	)
	if err != nil {
		t.Fatalf("flow failed: %v", err)
	}

	r, _ := NewRenderer(true)
	html, err := r.RenderHTML(li)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(html, "min-height:312px") {
		t.Fatalf("expected locked min-height in output:\n%s", html)
	}
}
