package render

import "github.com/yaklabco/mdlines/pkg/span"

// LineKind classifies an output line.
type LineKind int

// Output line kinds.
const (
	LineBlank LineKind = iota
	LineParagraph
	LineHeader
	LineCodeBlock
	LineHorizontalRule
	LineTableRow
	LineTableBorder
	LineImage
)

// PrefixKind classifies one visual prefix slot at the start of a line.
type PrefixKind int

// Prefix kinds.
const (
	PrefixBlockquote PrefixKind = iota
	PrefixListItem
)

// Prefix is one left-margin slot of an output line. A blockquote slot
// renders as a bar; a list item slot renders as its marker on the item's
// first line and as marker-width spaces on continuation lines.
type Prefix struct {
	Kind         PrefixKind
	Marker       ListMarker
	Continuation bool
}

// BorderPosition locates a table border line within its table.
type BorderPosition int

// Table border positions.
const (
	BorderTop BorderPosition = iota
	BorderHeaderSeparator
	BorderBottom
)

// TableColumns carries the resolved column geometry shared by every line
// of one table. Widths include the one-space padding on each side of the
// cell content.
type TableColumns struct {
	Widths     []int
	Alignments []Alignment
}

// TableLine is the table payload of a LineTableRow or LineTableBorder.
type TableLine struct {
	Columns *TableColumns
	// Cells holds one span slice per column for a row line.
	Cells    [][]span.Span
	IsHeader bool
	// Border is meaningful only for LineTableBorder.
	Border BorderPosition
}

// ImageRef is an image reference lifted out of inline content.
type ImageRef struct {
	URL         string
	Description string
}

// Line is one flat output line. Spans hold the visible styled content
// without prefixes; Nesting describes the prefix slots a symbol mapper
// turns into concrete glyphs.
type Line struct {
	Kind    LineKind
	Nesting []Prefix
	Spans   []span.Span

	Tier     int    // LineHeader, 1..6
	Language string // LineCodeBlock

	Table *TableLine // LineTableRow, LineTableBorder
	Image *ImageRef  // LineImage
}

// PrefixWidth returns the display width of a line's prefix slots under the
// given width assumptions.
func PrefixWidth(nesting []Prefix, w Widths) int {
	total := 0
	for _, p := range nesting {
		switch p.Kind {
		case PrefixBlockquote:
			total += w.BlockquoteBarWidth()
		case PrefixListItem:
			total += p.Marker.Width(w)
		}
	}
	return total
}

// nestingToPrefixes converts a section's container ancestry into prefix
// slots. List containers are invisible; only the innermost list item shows
// its marker, and only on the item's first content line.
func nestingToPrefixes(nesting []Container, continuation bool) []Prefix {
	var out []Prefix
	last := -1
	for i, c := range nesting {
		if c.Kind == ContainerListItem {
			last = i
		}
	}
	for i, c := range nesting {
		switch c.Kind {
		case ContainerBlockquote:
			out = append(out, Prefix{Kind: PrefixBlockquote})
		case ContainerListItem:
			p := Prefix{Kind: PrefixListItem, Marker: c.Marker, Continuation: true}
			if i == last && !continuation {
				p.Continuation = false
			}
			out = append(out, p)
		}
	}
	return out
}

// markAllContinuation returns a copy of the prefixes with every list item
// slot demoted to a continuation slot, for wrap-induced lines.
func markAllContinuation(prefixes []Prefix) []Prefix {
	out := make([]Prefix, len(prefixes))
	copy(out, prefixes)
	for i := range out {
		if out[i].Kind == PrefixListItem {
			out[i].Continuation = true
		}
	}
	return out
}
