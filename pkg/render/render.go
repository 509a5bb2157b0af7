// Package render turns markdown source into a flat stream of styled,
// width-constrained output lines. Inline formatting survives as modifier
// bitsets on spans; block structure survives as line kinds and prefix
// slots, leaving glyph choices to a downstream symbol mapper.
package render

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Renderer holds the parser and layout configuration. It is safe for
// concurrent use; each call to Lines carries its own state.
type Renderer struct {
	md         goldmark.Markdown
	widths     Widths
	detectLang bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithWidths overrides the marker and bar width assumptions used for
// wrapping. The symbol mapper applied downstream must produce glyphs of
// exactly these widths.
func WithWidths(w Widths) Option {
	return func(r *Renderer) { r.widths = w }
}

// WithLanguageDetection classifies the language of code blocks that carry
// no info string.
func WithLanguageDetection() Option {
	return func(r *Renderer) { r.detectLang = true }
}

// New builds a Renderer with GitHub-flavored table, strikethrough, task
// list and autolink support.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		md:     goldmark.New(goldmark.WithExtensions(extension.GFM)),
		widths: FixedWidths{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Lines parses source and returns an iterator over its output lines,
// wrapped to the given total width. Width is clamped to at least one
// column. Malformed input degrades to an empty stream; Lines never
// panics.
func (r *Renderer) Lines(width int, source string) *LineIterator {
	if width < 1 {
		width = 1
	}
	return &LineIterator{
		sections: parseSections(r.md, source, r.detectLang),
		width:    width,
		widths:   r.widths,
	}
}

// RenderAll drains the iterator for callers that want the whole document
// at once.
func (r *Renderer) RenderAll(width int, source string) []Line {
	var out []Line
	it := r.Lines(width, source)
	for {
		line, ok := it.Next()
		if !ok {
			return out
		}
		out = append(out, line)
	}
}

// LineIterator produces output lines one at a time, converting a section
// only when its lines are demanded.
type LineIterator struct {
	sections []Section
	idx      int
	width    int
	widths   Widths
	spacer   spacer
	pending  []Line
}

// Next returns the next output line, or false when the stream is done.
func (it *LineIterator) Next() (Line, bool) {
	for {
		if len(it.pending) > 0 {
			line := it.pending[0]
			it.pending = it.pending[1:]
			return line, true
		}
		if it.idx >= len(it.sections) {
			return Line{}, false
		}
		sec := &it.sections[it.idx]
		it.idx++
		if it.spacer.advance(sec) {
			it.pending = append(it.pending, Line{Kind: LineBlank})
		}
		it.pending = append(it.pending, sectionToLines(it.width, sec, it.widths)...)
	}
}
