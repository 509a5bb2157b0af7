// Package span provides the styled text atom produced by the renderer.
//
// A Span is a fragment of text plus a Modifier bitset describing its style
// and structural role. Spans that were split apart by wrapping can share a
// SourceContent handle pointing at the original, unsplit value (typically a
// full URL).
package span

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Modifier is a bitset of style and structural flags attached to a span.
type Modifier uint32

// Modifier flags. Wrapper flags mark decorator spans (brackets, emphasis
// markers) so a theme can hide or restyle them independently of the text
// they decorate.
const (
	Emphasis Modifier = 1 << iota
	Strong
	Strikethrough
	Code
	Link
	LinkDescription
	LinkDescriptionWrapper
	LinkURL
	LinkURLWrapper
	// BareLink marks a URL that appeared without markdown link syntax and
	// therefore has no description to fall back on.
	BareLink
	Image
	// NewLine marks a span that must start a new output line. The span
	// itself may be empty; it is the line-break signal, not the break.
	NewLine
	// Wrapped and WrappedEnd tag the fragments of a word that had to be
	// broken mid-word to fit the width budget.
	Wrapped
	WrappedEnd
	EmphasisWrapper
	StrongWrapper
	StrikethroughWrapper
	CodeWrapper
	BlockquoteBar
	ListMarker
	TableBorder
	HorizontalRule

	None Modifier = 0
)

// Format is the set of inline-formatting flags that downstream symbol
// mappers surround with paired decorator glyphs.
const Format = Emphasis | Strong | Strikethrough | Code

// Has reports whether all flags in m are set.
func (mod Modifier) Has(m Modifier) bool { return mod&m == m }

// Intersects reports whether any flag in m is set.
func (mod Modifier) Intersects(m Modifier) bool { return mod&m != 0 }

// Union returns mod with all flags in m added.
func (mod Modifier) Union(m Modifier) Modifier { return mod | m }

// Without returns mod with all flags in m removed.
func (mod Modifier) Without(m Modifier) Modifier { return mod &^ m }

// modifierNames is ordered by bit position.
var modifierNames = []string{
	"Emphasis", "Strong", "Strikethrough", "Code", "Link",
	"LinkDescription", "LinkDescriptionWrapper", "LinkURL", "LinkURLWrapper",
	"BareLink", "Image", "NewLine", "Wrapped", "WrappedEnd",
	"EmphasisWrapper", "StrongWrapper", "StrikethroughWrapper", "CodeWrapper",
	"BlockquoteBar", "ListMarker", "TableBorder", "HorizontalRule",
}

// String returns a pipe-joined list of set flag names, or "None".
func (mod Modifier) String() string {
	if mod == None {
		return "None"
	}
	var parts []string
	for i, name := range modifierNames {
		if mod&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, "|")
}

// SourceContent is the canonical, unsplit value associated with a span that
// may itself be fragmented by wrapping. All fragments of one value share the
// same handle; the string is never mutated after creation.
type SourceContent struct {
	value string
}

// NewSourceContent creates a shared handle for value.
func NewSourceContent(value string) *SourceContent {
	return &SourceContent{value: value}
}

// Value returns the full original content.
func (s *SourceContent) Value() string {
	if s == nil {
		return ""
	}
	return s.value
}

// Span is a styled text fragment. Text never contains a line separator once
// the extractor's newline-split pass has run.
type Span struct {
	Text      string
	Modifiers Modifier

	// Source holds the untruncated value (e.g. a full URL) when this span
	// is one fragment of a larger semantic unit. Nil for ordinary text.
	Source *SourceContent
}

// New creates a span with the given text and modifiers.
func New(text string, mods Modifier) Span {
	return Span{Text: text, Modifiers: mods}
}

// Plain creates an unstyled span.
func Plain(text string) Span {
	return Span{Text: text}
}

// WithSource creates a span that carries a shared source-content handle.
func WithSource(text string, mods Modifier, src *SourceContent) Span {
	return Span{Text: text, Modifiers: mods, Source: src}
}

// Width returns the display width of the span's text in terminal cells.
// Wide glyphs count as their display width, not their byte or rune count.
func (s Span) Width() int {
	return runewidth.StringWidth(s.Text)
}

// Width returns the total display width of spans.
func Width(spans []Span) int {
	total := 0
	for _, s := range spans {
		total += s.Width()
	}
	return total
}

// Text concatenates the text of spans.
func Text(spans []Span) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.Text)
	}
	return b.String()
}
