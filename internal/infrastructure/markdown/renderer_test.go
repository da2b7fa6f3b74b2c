//go:build unit
// +build unit

package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_Render(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	tests := []struct {
		name     string
		source   string
		contains []string
		excludes []string
	}{
		{
			name:     "plain paragraph",
			source:   "Pi is the ratio of the circumference of a circle to its diameter.",
			contains: []string{"<p>Pi is the ratio"},
		},
		{
			name:     "emphasis and links",
			source:   "**bold** and [docs](https://example.com)",
			contains: []string{"<strong>bold</strong>", `href="https://example.com"`, `rel="nofollow"`},
		},
		{
			name:     "tables",
			source:   "| a | b |\n|---|---|\n| 1 | 2 |",
			contains: []string{"<table>", "<td>1</td>"},
		},
		{
			name:     "script is stripped",
			source:   "hello <script>alert(1)</script>",
			excludes: []string{"<script>", "alert(1)</script>"},
		},
		{
			name:     "javascript links are dropped",
			source:   "[x](javascript:alert(1))",
			excludes: []string{"javascript:"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html, err := r.Render(tt.source)
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, html, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, html, s)
			}
		})
	}
}
