package render

import (
	"strconv"

	"github.com/yaklabco/mdlines/pkg/span"
)

// BulletStyle identifies the marker character of an unordered list.
type BulletStyle byte

// Unordered bullet styles.
const (
	BulletDash BulletStyle = '-'
	BulletStar BulletStyle = '*'
	BulletPlus BulletStyle = '+'
)

// Rune returns the marker character.
func (b BulletStyle) Rune() rune { return rune(b) }

// bulletStyleOf maps a marker byte to a BulletStyle, defaulting to dash.
func bulletStyleOf(c byte) BulletStyle {
	switch c {
	case '*':
		return BulletStar
	case '+':
		return BulletPlus
	default:
		return BulletDash
	}
}

// MarkerKind classifies a list marker.
type MarkerKind int

// Marker kinds.
const (
	MarkerUnordered MarkerKind = iota
	MarkerOrdered
	MarkerTask
)

// ListMarker describes the marker of a list or list item.
type ListMarker struct {
	Kind   MarkerKind
	Bullet BulletStyle
	// Number is the 1-based ordinal for ordered markers.
	Number int
	// Checked is meaningful only for task markers.
	Checked bool
	// Indent is the source column of the marker, used to tell sibling
	// lists apart when their markers look identical.
	Indent int
}

// Width returns the display width the marker occupies, as assumed by the
// wrapping engine. The symbol mapper substituted later must match it.
func (m ListMarker) Width(w Widths) int {
	switch m.Kind {
	case MarkerOrdered:
		return w.OrderedMarkerWidth(m.Number)
	case MarkerTask:
		return w.TaskMarkerWidth()
	default:
		return w.BulletWidth()
	}
}

// Widths exposes the fixed display-width assumptions the core needs from the
// downstream symbol mapper. Wrapping decisions bake these in; presentation
// choices made later must not change them. The decorator widths are the
// per-side cost of the glyph pair a mapper puts around each inline format,
// reserved by the wrap engine so decorated lines still fit.
type Widths interface {
	BulletWidth() int
	OrderedMarkerWidth(n int) int
	TaskMarkerWidth() int
	BlockquoteBarWidth() int
	EmphasisDecoratorWidth() int
	StrongDecoratorWidth() int
	StrikethroughDecoratorWidth() int
	CodeDecoratorWidth() int
}

// FixedWidths is the default width assumption set: "- " style bullets,
// "N. " ordered markers, "- [x] " task markers, "> " blockquote bars and
// markdown-literal decorators ("*", "**", "~~", "`").
type FixedWidths struct{}

func (FixedWidths) BulletWidth() int { return 2 }

func (FixedWidths) OrderedMarkerWidth(n int) int {
	if n < 1 {
		n = 1
	}
	return len(strconv.Itoa(n)) + 2
}

func (FixedWidths) TaskMarkerWidth() int { return 6 }

func (FixedWidths) BlockquoteBarWidth() int { return 2 }

func (FixedWidths) EmphasisDecoratorWidth() int { return 1 }

func (FixedWidths) StrongDecoratorWidth() int { return 2 }

func (FixedWidths) StrikethroughDecoratorWidth() int { return 2 }

func (FixedWidths) CodeDecoratorWidth() int { return 1 }

// ContainerKind classifies one ancestor in a section's nesting path.
type ContainerKind int

// Container kinds. A List contributes no visual indentation of its own,
// only marker-type context; ListItem and Blockquote carry the indentation.
const (
	ContainerList ContainerKind = iota
	ContainerListItem
	ContainerBlockquote
)

// Container is one ancestor at a point in the document tree.
type Container struct {
	Kind   ContainerKind
	Marker ListMarker
}

// Alignment is a table column alignment.
type Alignment int

// Table column alignments.
const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// ContentKind classifies a block-level leaf.
type ContentKind int

// Content kinds.
const (
	ContentBlank ContentKind = iota
	ContentParagraph
	ContentHeader
	ContentCodeBlock
	ContentHorizontalRule
	ContentTable
)

// Table holds a classified pipe table: header cells, data rows and one
// alignment per column (padded with left alignment when the delimiter row
// was shorter than the header).
type Table struct {
	Header     [][]span.Span
	Rows       [][][]span.Span
	Alignments []Alignment
}

// Content is the classified payload of one block-level leaf.
type Content struct {
	Kind  ContentKind
	Spans []span.Span // ContentParagraph

	Tier int    // ContentHeader, 1..6
	Text string // ContentHeader raw text

	Language string // ContentCodeBlock
	Code     string // ContentCodeBlock

	Table *Table // ContentTable
}

// IsBlank reports whether the content renders as an empty line.
func (c Content) IsBlank() bool {
	return c.Kind == ContentBlank || (c.Kind == ContentParagraph && len(c.Spans) == 0)
}

// Section is one block-level leaf with its container ancestry, ordered
// outermost first, plus whether it is a later ("continuation") content
// block inside the innermost list item.
type Section struct {
	Content          Content
	Nesting          []Container
	ListContinuation bool
}
