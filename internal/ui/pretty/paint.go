package pretty

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/mdlines/pkg/mapper"
	"github.com/yaklabco/mdlines/pkg/render"
	"github.com/yaklabco/mdlines/pkg/span"
)

// Painter renders output lines to styled terminal strings.
type Painter struct {
	styles *Styles
	mapper mapper.Mapper
	width  int
}

// NewPainter creates a Painter for the given symbol mapper and total
// width.
func NewPainter(styles *Styles, m mapper.Mapper, width int) *Painter {
	return &Painter{styles: styles, mapper: m, width: width}
}

// Paint flattens one line and applies the style matching each span's
// modifiers.
func (p *Painter) Paint(line render.Line) string {
	var b strings.Builder
	for _, s := range mapper.Flatten(line, p.mapper, p.width) {
		if line.Kind == render.LineHeader && !s.Modifiers.Intersects(span.BlockquoteBar|span.ListMarker) {
			b.WriteString(p.styles.Header.Render(s.Text))
			continue
		}
		if line.Kind == render.LineCodeBlock && s.Modifiers.Has(span.Code) {
			b.WriteString(p.styles.CodeBlock.Render(s.Text))
			continue
		}
		b.WriteString(p.styleFor(s.Modifiers).Render(s.Text))
	}
	return b.String()
}

// styleFor picks the most specific style for a modifier set. Structural
// roles win over inline formatting; code wins within inline formatting.
func (p *Painter) styleFor(mods span.Modifier) lipgloss.Style {
	switch {
	case mods.Has(span.BlockquoteBar):
		return p.styles.BlockquoteBar
	case mods.Has(span.ListMarker):
		return p.styles.ListMarker
	case mods.Has(span.TableBorder):
		return p.styles.TableBorder
	case mods.Has(span.HorizontalRule):
		return p.styles.HorizontalRule
	case mods.Has(span.Image):
		return p.styles.Image
	case mods.Intersects(span.LinkDescriptionWrapper | span.LinkURLWrapper):
		return p.styles.LinkWrapper
	case mods.Has(span.LinkURL):
		return p.styles.LinkURL
	case mods.Has(span.LinkDescription):
		return p.styles.LinkDescription
	case mods.Has(span.Code):
		return p.styles.Code
	case mods.Has(span.Strikethrough):
		return p.styles.Strikethrough
	case mods.Has(span.Strong):
		return p.styles.Strong
	case mods.Has(span.Emphasis):
		return p.styles.Emphasis
	default:
		return p.styles.Plain
	}
}
