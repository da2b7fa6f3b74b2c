// Package markdown renders forum posts written in Markdown into sanitized HTML.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/forum"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

type renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewRenderer creates a ContentRenderer supporting GitHub flavored Markdown.
// Raw HTML in the source is escaped and the output is filtered through the UGC policy.
func NewRenderer() (forum.ContentRenderer, error) {
	return &renderer{
		md:     goldmark.New(goldmark.WithExtensions(extension.GFM)),
		policy: bluemonday.UGCPolicy(),
	}, nil
}

func (r *renderer) Render(source string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return r.policy.Sanitize(buf.String()), nil
}
