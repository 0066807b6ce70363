package flow

import (
	"fmt"
	"html/template"
	"strings"
)

// Renderer turns a LayoutInstance into the HTML fragment served on the
// public browse pages. Read-only mode emits plain prose and img tags; edit
// mode adds the affordance hooks (data attributes, contenteditable) the
// admin composer UI binds to.
type Renderer struct {
	tmpl     *template.Template
	readOnly bool
}

const layoutTemplate = `{{- range .Sections }}
<section class="flow-section flow-section--{{ .Archetype }}"{{ if .Fallback }} data-fallback="true"{{ end }}>
{{- range .Blocks }}
{{- if eq .Kind "text" }}
  {{- if $.ReadOnly }}
  <div class="flow-text"{{ with .MinHeightPx }} style="min-height:{{ printf "%.0f" . }}px"{{ end }}>
    <p>{{ .Text }}</p>
  </div>
  {{- else }}
  <div class="flow-text" contenteditable="false" data-block-id="{{ .BlockID }}"{{ with .MinHeightPx }} style="min-height:{{ printf "%.0f" . }}px"{{ end }}>
    <p>{{ .Text }}</p>
  </div>
  {{- end }}
{{- else }}
  {{- if .Image }}
  <figure class="flow-figure" data-slot-key="{{ .SlotKey }}">
    {{- if .Image.Href }}
    <a href="{{ .Image.Href }}"><img src="{{ .Image.Src }}" alt="{{ .Image.Alt }}"></a>
    {{- else }}
    <img src="{{ .Image.Src }}" alt="{{ .Image.Alt }}">
    {{- end }}
    {{- with .Image.EffectiveCaption }}
    <figcaption>{{ . }}</figcaption>
    {{- end }}
  </figure>
  {{- else }}
  <figure class="flow-figure flow-figure--empty" data-slot-key="{{ .SlotKey }}">
    <div class="flow-placeholder"{{ if not $.ReadOnly }} data-action="pick-image"{{ end }}></div>
  </figure>
  {{- end }}
{{- end }}
{{- end }}
</section>
{{- end }}
`

func NewRenderer(readOnly bool) (*Renderer, error) {
	tmpl, err := template.New("layout").Parse(layoutTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse layout template: %w", err)
	}
	return &Renderer{tmpl: tmpl, readOnly: readOnly}, nil
}

func (r *Renderer) RenderHTML(li *LayoutInstance) (string, error) {
	if li == nil {
		return "", fmt.Errorf("layout instance required")
	}
	data := struct {
		*LayoutInstance
		ReadOnly bool
	}{li, r.readOnly}

	var b strings.Builder
	if err := r.tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render layout: %w", err)
	}
	return b.String(), nil
}
