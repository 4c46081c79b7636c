// Package richtext renders the markdown notes written by businesses and
// editors into sanitized HTML.
package richtext

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer converts markdown to HTML that is safe to embed in a page.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// New builds a renderer with autolinking and hard line breaks, so notes typed
// into a form keep their line structure.
func New() *Renderer {
	policy := bluemonday.UGCPolicy()
	policy.RequireNoFollowOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)

	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.Linkify, extension.Strikethrough),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
		policy: policy,
	}
}

// Render returns the sanitized HTML for source. Blank input renders empty.
func (r *Renderer) Render(source string) (template.HTML, error) {
	if strings.TrimSpace(source) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return template.HTML(r.policy.SanitizeBytes(buf.Bytes())), nil
}

// MustRender is Render for template use; conversion errors render the
// escaped source instead.
func (r *Renderer) MustRender(source string) template.HTML {
	out, err := r.Render(source)
	if err != nil {
		return template.HTML(template.HTMLEscapeString(source))
	}
	return out
}
