package mapper

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/mdlines/pkg/render"
	"github.com/yaklabco/mdlines/pkg/span"
)

// Flatten resolves one abstract output line into its final span sequence:
// prefix glyphs, emphasis decorators, link wrappers, rule fill, code
// padding and table drawing. Width is the same total width the line was
// wrapped to.
func Flatten(line render.Line, m Mapper, width int) []span.Span {
	w := Widths(m)
	switch line.Kind {
	case render.LineBlank:
		return blankPrefix(line.Nesting, m, w)
	case render.LineParagraph, render.LineHeader:
		out := prefixSpans(line.Nesting, m, w)
		return append(out, decorate(line.Spans, m)...)
	case render.LineCodeBlock:
		return flattenCode(line, m, w, width)
	case render.LineHorizontalRule:
		return flattenRule(line, m, w, width)
	case render.LineTableRow:
		return flattenTableRow(line, m, w)
	case render.LineTableBorder:
		return flattenTableBorder(line, m, w)
	case render.LineImage:
		return flattenImage(line, m)
	}
	return nil
}

// Text flattens a line and joins it to plain text, for consumers that do
// their own styling or none at all.
func Text(line render.Line, m Mapper, width int) string {
	return span.Text(Flatten(line, m, width))
}

// prefixSpans renders the line's prefix slots. Only a non-continuation
// list item slot shows its marker; the rest reserve marker-width spaces.
func prefixSpans(nesting []render.Prefix, m Mapper, w render.Widths) []span.Span {
	var out []span.Span
	for _, p := range nesting {
		switch p.Kind {
		case render.PrefixBlockquote:
			out = append(out, span.New(m.BlockquoteBar(), span.BlockquoteBar))
		case render.PrefixListItem:
			if p.Continuation {
				out = append(out, span.Plain(strings.Repeat(" ", p.Marker.Width(w))))
			} else {
				out = append(out, span.New(markerText(p.Marker, m), span.ListMarker))
			}
		}
	}
	return out
}

// blankPrefix keeps blockquote bars on blank lines but never a marker.
func blankPrefix(nesting []render.Prefix, m Mapper, w render.Widths) []span.Span {
	var out []span.Span
	for _, p := range nesting {
		if p.Kind == render.PrefixBlockquote {
			out = append(out, span.New(m.BlockquoteBar(), span.BlockquoteBar))
		}
	}
	return out
}

func markerText(marker render.ListMarker, m Mapper) string {
	switch marker.Kind {
	case render.MarkerOrdered:
		return m.OrderedMarker(marker.Number)
	case render.MarkerTask:
		return m.UnorderedBullet(render.BulletDash) + m.TaskMarker(marker.Checked)
	default:
		return m.UnorderedBullet(marker.Bullet)
	}
}

// decorate inserts emphasis-family decorators at modifier transitions,
// substitutes link wrapper glyphs and applies URL hiding. Decorators nest
// in a fixed order, innermost first on close.
func decorate(spans []span.Span, m Mapper) []span.Span {
	var out []span.Span
	active := span.None
	for _, s := range spans {
		if m.HideURLs() && s.Modifiers.Intersects(span.LinkURL|span.LinkURLWrapper) && !s.Modifiers.Has(span.BareLink) {
			continue
		}
		next := s.Modifiers & span.Format
		out = appendClosers(out, m, active, next)
		out = appendOpeners(out, m, active, next)
		active = next
		out = append(out, substituteWrapper(s, m))
	}
	out = appendClosers(out, m, active, span.None)
	return out
}

func appendClosers(out []span.Span, m Mapper, active, next span.Modifier) []span.Span {
	closing := active &^ next
	for _, d := range []struct {
		mod     span.Modifier
		symbol  string
		wrapper span.Modifier
	}{
		{span.Code, m.CodeDecorator(), span.CodeWrapper},
		{span.Strikethrough, m.StrikethroughDecorator(), span.StrikethroughWrapper},
		{span.Strong, m.StrongDecorator(), span.StrongWrapper},
		{span.Emphasis, m.EmphasisDecorator(), span.EmphasisWrapper},
	} {
		if closing.Has(d.mod) && d.symbol != "" {
			out = append(out, span.New(d.symbol, d.wrapper))
		}
	}
	return out
}

func appendOpeners(out []span.Span, m Mapper, active, next span.Modifier) []span.Span {
	opening := next &^ active
	for _, d := range []struct {
		mod     span.Modifier
		symbol  string
		wrapper span.Modifier
	}{
		{span.Emphasis, m.EmphasisDecorator(), span.EmphasisWrapper},
		{span.Strong, m.StrongDecorator(), span.StrongWrapper},
		{span.Strikethrough, m.StrikethroughDecorator(), span.StrikethroughWrapper},
		{span.Code, m.CodeDecorator(), span.CodeWrapper},
	} {
		if opening.Has(d.mod) && d.symbol != "" {
			out = append(out, span.New(d.symbol, d.wrapper))
		}
	}
	return out
}

func substituteWrapper(s span.Span, m Mapper) span.Span {
	switch {
	case s.Modifiers.Has(span.LinkDescriptionWrapper):
		if s.Text == "[" {
			s.Text = m.LinkDescriptionOpen()
		} else {
			s.Text = m.LinkDescriptionClose()
		}
	case s.Modifiers.Has(span.LinkURLWrapper):
		if s.Text == "(" {
			s.Text = m.LinkURLOpen()
		} else {
			s.Text = m.LinkURLClose()
		}
	}
	return s
}

// flattenCode pads every code line with code-styled spaces out to the
// available width, so background styling forms a solid block.
func flattenCode(line render.Line, m Mapper, w render.Widths, width int) []span.Span {
	out := prefixSpans(line.Nesting, m, w)
	avail := width - render.PrefixWidth(line.Nesting, w)
	if avail < 1 {
		avail = 1
	}
	used := 0
	for _, s := range line.Spans {
		used += s.Width()
		out = append(out, s)
	}
	if used < avail {
		out = append(out, span.New(strings.Repeat(" ", avail-used), span.Code))
	}
	return out
}

func flattenRule(line render.Line, m Mapper, w render.Widths, width int) []span.Span {
	out := prefixSpans(line.Nesting, m, w)
	avail := width - render.PrefixWidth(line.Nesting, w)
	if avail < 1 {
		avail = 1
	}
	glyph := m.HorizontalRule()
	gw := runewidth.StringWidth(glyph)
	if gw < 1 {
		glyph, gw = "-", 1
	}
	out = append(out, span.New(strings.Repeat(glyph, avail/gw), span.HorizontalRule))
	return out
}

func flattenTableRow(line render.Line, m Mapper, w render.Widths) []span.Span {
	t := line.Table
	out := prefixSpans(line.Nesting, m, w)
	out = append(out, span.New(m.TableVertical(), span.TableBorder))
	for i, colWidth := range t.Columns.Widths {
		var cell []span.Span
		if i < len(t.Cells) {
			cell = t.Cells[i]
		}
		align := render.AlignLeft
		if i < len(t.Columns.Alignments) {
			align = t.Columns.Alignments[i]
		}
		inner := colWidth - 2
		if inner < 0 {
			inner = 0
		}
		decorated := decorate(cell, m)
		extra := inner - span.Width(decorated)
		if extra < 0 {
			extra = 0
		}
		left, right := 0, extra
		switch align {
		case render.AlignCenter:
			left = extra / 2
			right = extra - left
		case render.AlignRight:
			left, right = extra, 0
		}
		out = append(out, span.Plain(strings.Repeat(" ", left+1)))
		out = append(out, decorated...)
		out = append(out, span.Plain(strings.Repeat(" ", right+1)))
		out = append(out, span.New(m.TableVertical(), span.TableBorder))
	}
	return out
}

func flattenTableBorder(line render.Line, m Mapper, w render.Widths) []span.Span {
	t := line.Table
	var left, mid, right string
	switch t.Border {
	case render.BorderTop:
		left, mid, right = m.TableTopLeft(), m.TableTopJunction(), m.TableTopRight()
	case render.BorderBottom:
		left, mid, right = m.TableBottomLeft(), m.TableBottomJunction(), m.TableBottomRight()
	default:
		left, mid, right = m.TableLeftJunction(), m.TableCross(), m.TableRightJunction()
	}
	out := prefixSpans(line.Nesting, m, w)
	var b strings.Builder
	b.WriteString(left)
	for i, colWidth := range t.Columns.Widths {
		if i > 0 {
			b.WriteString(mid)
		}
		b.WriteString(strings.Repeat(m.TableHorizontal(), colWidth))
	}
	b.WriteString(right)
	return append(out, span.New(b.String(), span.TableBorder))
}

func flattenImage(line render.Line, m Mapper) []span.Span {
	ref := line.Image
	desc := ref.Description
	if desc == "" {
		desc = "image"
	}
	return []span.Span{
		span.New("[", span.Image|span.Link|span.LinkDescriptionWrapper),
		span.New(desc, span.Image|span.Link|span.LinkDescription),
		span.New("]", span.Image|span.Link|span.LinkDescriptionWrapper),
		span.New("(", span.Image|span.Link|span.LinkURLWrapper),
		span.New(ref.URL, span.Image|span.Link|span.LinkURL),
		span.New(")", span.Image|span.Link|span.LinkURLWrapper),
	}
}
