package blocks

import (
	"strings"
	"testing"

	"folio/internal/models"
)

func TestRender(t *testing.T) {
	r := New()

	tests := []struct {
		name     string
		block    models.ContentBlock
		contains []string
		wantErr  bool
	}{
		{
			name:     "text block is sanitized",
			block:    models.ContentBlock{ID: 1, Type: models.BlockTypeText, Body: "<p>Hello<br/>world</p>"},
			contains: []string{`<div class="ce_text">`, "<p>Hello<br>world</p>"},
		},
		{
			name:     "untyped block renders as text",
			block:    models.ContentBlock{ID: 2, Body: "<p>x</p>"},
			contains: []string{`<div class="ce_text">`},
		},
		{
			name:     "markdown block",
			block:    models.ContentBlock{ID: 3, Type: models.BlockTypeMarkdown, Body: "**bold**"},
			contains: []string{`<div class="ce_markdown">`, "<strong>bold</strong>"},
		},
		{
			name:     "headline block escapes",
			block:    models.ContentBlock{ID: 4, Type: models.BlockTypeHeadline, Headline: "A & B", CSSClass: "big"},
			contains: []string{`<h2 class="ce_headline big">A &amp; B</h2>`},
		},
		{
			name:     "html block passes through",
			block:    models.ContentBlock{ID: 5, Type: models.BlockTypeHTML, Body: `<iframe src="x"></iframe>`, Headline: "Video"},
			contains: []string{`<iframe src="x"></iframe>`, "<h3>Video</h3>"},
		},
		{
			name:    "unknown type",
			block:   models.ContentBlock{ID: 6, Type: "gallery"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Render(tt.block)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q:\n%s", want, got)
				}
			}
		})
	}
}
