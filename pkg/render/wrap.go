package render

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/yaklabco/mdlines/pkg/span"
)

// WrappedLine is one display line produced by wrapping, with any image
// references lifted out of the visible spans.
type WrappedLine struct {
	// First marks a line that starts at an explicit break (or the start
	// of the block) rather than being induced by wrapping.
	First  bool
	Spans  []span.Span
	Images []ImageRef
}

// decorCosts carries the display widths of the decorator glyphs the
// downstream mapper inserts at inline-format transitions. Wrapping
// reserves room for them so decorated lines still fit the budget. The
// zero value reserves nothing, for content that is never decorated.
type decorCosts struct {
	emphasis      int
	strong        int
	strikethrough int
	code          int
}

func decorCostsOf(w Widths) decorCosts {
	return decorCosts{
		emphasis:      w.EmphasisDecoratorWidth(),
		strong:        w.StrongDecoratorWidth(),
		strikethrough: w.StrikethroughDecoratorWidth(),
		code:          w.CodeDecoratorWidth(),
	}
}

// cost returns the one-side decorator width of a format set.
func (d decorCosts) cost(mods span.Modifier) int {
	total := 0
	if mods.Has(span.Emphasis) {
		total += d.emphasis
	}
	if mods.Has(span.Strong) {
		total += d.strong
	}
	if mods.Has(span.Strikethrough) {
		total += d.strikethrough
	}
	if mods.Has(span.Code) {
		total += d.code
	}
	return total
}

// transition returns the decorator width inserted between a span with the
// active format set and one with the next.
func (d decorCosts) transition(active, next span.Modifier) int {
	return d.cost(active&^next) + d.cost(next&^active)
}

// wrapSpans folds a span sequence into lines that stay within width after
// decoration. Spans flagged as line starts force a break; spans wider
// than the budget are split at word boundaries, and words wider than a
// whole line are broken at line-break opportunities or, failing that,
// grapheme cluster boundaries.
func wrapSpans(width int, spans []span.Span, d decorCosts) [][]span.Span {
	if width < 1 {
		width = 1
	}
	var lines [][]span.Span
	var line []span.Span
	lineWidth := 0
	active := span.None
	afterNewline := false
	for _, s := range spans {
		if s.Modifiers.Has(span.NewLine) {
			line = trimLineEnd(line)
			lines = append(lines, line)
			line, lineWidth, active = nil, 0, span.None
			afterNewline = true
		}
		if afterNewline && s.Text != "" {
			s.Text = trimLeftSpace(s.Text)
			afterNewline = false
		}
		w := s.Width()
		next := s.Modifiers & span.Format
		if lineWidth+d.transition(active, next)+w+d.cost(next) > width {
			startingNewLine := len(line) > 0
			if startingNewLine {
				// A dangling URL opener wraps down with its URL.
				var pulled *span.Span
				if last := line[len(line)-1]; last.Modifiers.Has(span.LinkURLWrapper) && last.Text == "(" {
					p := last
					pulled = &p
					line = line[:len(line)-1]
				}
				line = trimLineEnd(line)
				lines = append(lines, line)
				line, lineWidth, active = nil, 0, span.None
				if pulled != nil {
					line = append(line, *pulled)
					lineWidth = pulled.Width()
				}
			}
			budget := width - 2*d.cost(next)
			if budget < 1 {
				budget = 1
			}
			if w > budget {
				line, lineWidth = appendBroken(&lines, line, lineWidth, s, budget)
				if len(line) > 0 {
					lineWidth += d.cost(next)
				}
				active = next
				continue
			}
			if startingNewLine && !s.Modifiers.Has(span.NewLine) {
				s.Text = trimLeftSpace(s.Text)
				w = s.Width()
			}
		}
		line = append(line, s)
		lineWidth += d.transition(active, next) + w
		active = next
	}
	if len(line) > 0 {
		lines = append(lines, line)
	}
	return lines
}

// fragment is one word (or piece of a broken word) with its trailing
// whitespace kept separate, so a fragment pushed to the next line drops
// the whitespace it wrapped on.
type fragment struct {
	text   string
	ws     string
	broken bool
	last   bool
}

func (f fragment) width() int {
	return runewidth.StringWidth(f.text) + runewidth.StringWidth(f.ws)
}

// appendBroken splits an oversized span into fragments and lays them out
// greedily, flushing lines as they fill. The line-start flag survives only
// on the first fragment; broken word pieces are tagged so decorators can
// tell a hard break from a natural word boundary.
func appendBroken(lines *[][]span.Span, line []span.Span, lineWidth int, s span.Span, width int) ([]span.Span, int) {
	copiedNewline := false
	for _, f := range splitFragments(s.Text, width) {
		wordWidth := runewidth.StringWidth(f.text)
		if lineWidth > 0 && lineWidth+wordWidth > width {
			line = trimLineEnd(line)
			*lines = append(*lines, line)
			line, lineWidth = nil, 0
		}
		mods := s.Modifiers
		if copiedNewline {
			mods = mods.Without(span.NewLine)
		}
		copiedNewline = true
		if f.broken {
			if f.last {
				mods = mods.Union(span.WrappedEnd)
			} else {
				mods = mods.Union(span.Wrapped)
			}
		}
		line = append(line, span.Span{Text: f.text + f.ws, Modifiers: mods, Source: s.Source})
		lineWidth += f.width()
	}
	return line, lineWidth
}

// trimLineEnd strips trailing whitespace from the last span of a line
// about to be flushed.
func trimLineEnd(line []span.Span) []span.Span {
	if len(line) > 0 {
		last := &line[len(line)-1]
		last.Text = trimRightSpace(last.Text)
	}
	return line
}

// splitFragments cuts text into whitespace-delimited words, breaking any
// word wider than the budget into pieces.
func splitFragments(text string, width int) []fragment {
	var out []fragment
	for _, word := range splitWords(text) {
		if runewidth.StringWidth(word.text) <= width {
			out = append(out, word)
			continue
		}
		pieces := breakWord(word.text, width)
		for i, piece := range pieces {
			f := fragment{text: piece, broken: true, last: i == len(pieces)-1}
			if f.last {
				f.ws = word.ws
			}
			out = append(out, f)
		}
	}
	return out
}

// splitWords splits text into runs of non-space characters, each carrying
// the whitespace that follows it.
func splitWords(text string) []fragment {
	var out []fragment
	start := 0
	inWS := false
	wordEnd := 0
	flush := func(end int) {
		if end > start {
			out = append(out, fragment{text: text[start:wordEnd], ws: text[wordEnd:end]})
		}
		start = end
	}
	for i, r := range text {
		if unicode.IsSpace(r) {
			if !inWS {
				wordEnd = i
				inWS = true
			}
		} else if inWS {
			flush(i)
			inWS = false
		}
	}
	if !inWS {
		wordEnd = len(text)
	}
	flush(len(text))
	return out
}

// breakWord splits a single word into pieces no wider than width,
// cutting at Unicode line-break opportunities first so URLs come apart
// after "/" rather than mid-component. A segment with no opportunity
// inside the budget falls back to grapheme cluster boundaries.
func breakWord(word string, width int) []string {
	var out []string
	state := -1
	for rest := word; rest != ""; {
		var seg string
		seg, rest, _, state = uniseg.FirstLineSegmentInString(rest, state)
		if runewidth.StringWidth(seg) <= width {
			out = append(out, seg)
			continue
		}
		out = append(out, breakClusters(seg, width)...)
	}
	return out
}

// breakClusters splits text into chunks no wider than width, never
// cutting inside a grapheme cluster.
func breakClusters(word string, width int) []string {
	var out []string
	var b strings.Builder
	bw := 0
	g := uniseg.NewGraphemes(word)
	for g.Next() {
		cluster := g.Str()
		cw := runewidth.StringWidth(cluster)
		if bw > 0 && bw+cw > width {
			out = append(out, b.String())
			b.Reset()
			bw = 0
		}
		b.WriteString(cluster)
		bw += cw
	}
	if b.Len() > 0 {
		out = append(out, b.String())
	}
	return out
}

// wrapToLines wraps a block's spans within the width left over after its
// prefix, dropping empty lines and lifting image references out of the
// visible content.
func wrapToLines(width, prefixWidth int, spans []span.Span, d decorCosts) []WrappedLine {
	avail := width - prefixWidth
	if avail < 1 {
		avail = 1
	}
	var out []WrappedLine
	for _, lineSpans := range wrapSpans(avail, spans, d) {
		if len(lineSpans) == 0 {
			continue
		}
		first := len(out) == 0 || lineSpans[0].Modifiers.Has(span.NewLine)
		var images []ImageRef
		var visible []span.Span
		for _, s := range lineSpans {
			if s.Modifiers.Has(span.Image) {
				if s.Modifiers.Has(span.LinkURL) && s.Source != nil {
					images = append(images, ImageRef{URL: s.Source.Value(), Description: s.Text})
				}
				continue
			}
			visible = append(visible, s)
		}
		out = append(out, WrappedLine{First: first, Spans: visible, Images: images})
	}
	return out
}

// hasVisibleContent reports whether any span contains a non-space
// character.
func hasVisibleContent(spans []span.Span) bool {
	for _, s := range spans {
		if strings.TrimSpace(s.Text) != "" {
			return true
		}
	}
	return false
}

func trimLeftSpace(s string) string  { return strings.TrimLeftFunc(s, unicode.IsSpace) }
func trimRightSpace(s string) string { return strings.TrimRightFunc(s, unicode.IsSpace) }
