package services

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/kamal-hamza/deckindex/internal/core/domain"
)

// ErrPlaceholderMissing is returned when the template has no placeholder token
var ErrPlaceholderMissing = errors.New("placeholder token not found in template")

// RenderOptions controls how presentation fragments are written
type RenderOptions struct {
	FallbackImage     string // image used when a thumbnail fails to load, "" for none
	SlidesPlaceholder string // shown when a descriptor has no slide count
	EscapeHTML        bool   // escape record text; off means descriptors are trusted
	PresentationsDir  string // named in the empty-state guidance
}

// Substitute replaces the first occurrence of token in template with content
func Substitute(template, token, content string) (string, error) {
	if token == "" || !strings.Contains(template, token) {
		return "", fmt.Errorf("%w: %q", ErrPlaceholderMissing, token)
	}
	return strings.Replace(template, token, content, 1), nil
}

// RenderPresentations builds the markup that replaces the placeholder.
// presentations must already be in display order.
func RenderPresentations(presentations []domain.Presentation, opts RenderOptions) string {
	if len(presentations) == 0 {
		return RenderEmptyState(opts)
	}

	cards := make([]string, len(presentations))
	for i := range presentations {
		cards[i] = RenderCard(&presentations[i], opts)
	}
	return strings.Join(cards, "\n")
}

// RenderEmptyState returns the fragment shown when nothing was found
func RenderEmptyState(opts RenderOptions) string {
	dir := strings.TrimSuffix(opts.PresentationsDir, "/")
	if dir == "" {
		dir = "presentations"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("<div class=\"empty-state\">\n")
	b.WriteString("    <h2>🎯 No presentations yet</h2>\n")
	fmt.Fprintf(&b, "    <p>Add a presentation under %s/ and run deckindex build again</p>\n", opts.text(dir))
	b.WriteString("</div>\n")
	return b.String()
}

// RenderCard returns the fragment for a single presentation
func RenderCard(p *domain.Presentation, opts RenderOptions) string {
	slides := opts.SlidesPlaceholder
	if slides == "" {
		slides = "?"
	}
	slides = p.SlidesLabel(slides)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("<div class=\"ppt-card\">\n")
	fmt.Fprintf(&b, "    <a href=\"%s\">\n", opts.text(p.Path))
	b.WriteString("        <img src=\"" + opts.text(p.ThumbnailPath) + "\" alt=\"" + opts.text(p.Title) + "\"")
	if opts.FallbackImage != "" {
		fmt.Fprintf(&b, "\n             onerror=\"this.src='%s'\"", opts.FallbackImage)
	}
	b.WriteString(">\n")
	b.WriteString("        <div class=\"card-content\">\n")
	fmt.Fprintf(&b, "            <h3>%s</h3>\n", opts.text(p.Title))
	fmt.Fprintf(&b, "            <p>%s</p>\n", opts.text(p.Description))
	b.WriteString("            <div class=\"meta\">\n")
	fmt.Fprintf(&b, "                <span class=\"date\">📅 %s</span>\n", opts.text(p.Date))
	fmt.Fprintf(&b, "                <span class=\"slides\">📄 %s slides</span>\n", opts.text(slides))
	b.WriteString("            </div>\n")
	// An explicit empty list still gets its container
	if p.Tags != nil {
		b.WriteString("            <div class=\"tags\">")
		for _, tag := range p.Tags {
			fmt.Fprintf(&b, "<span class=\"tag\">%s</span>", opts.text(tag))
		}
		b.WriteString("</div>\n")
	}
	b.WriteString("        </div>\n")
	b.WriteString("    </a>\n")
	b.WriteString("</div>\n")
	return b.String()
}

func (o RenderOptions) text(s string) string {
	if o.EscapeHTML {
		return html.EscapeString(s)
	}
	return s
}
