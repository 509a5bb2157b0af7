package render

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/mdlines/pkg/langdetect"
	"github.com/yaklabco/mdlines/pkg/span"
)

// documentWalker turns a parsed tree into a flat sequence of sections,
// tracking the open container stack and per-item continuation state as it
// descends.
type documentWalker struct {
	source     []byte
	detectLang bool

	stack []stackEntry
	// contentEmitted records, per open list item depth, whether that item
	// has already produced a content block.
	contentEmitted map[int]bool

	sections []Section
}

type stackEntry struct {
	depth     int
	container Container
}

func newDocumentWalker(source []byte, detectLang bool) *documentWalker {
	return &documentWalker{
		source:         source,
		detectLang:     detectLang,
		contentEmitted: map[int]bool{},
	}
}

// parseSections parses the document and flattens it. A panic anywhere in
// parsing or traversal degrades to an empty result instead of crashing the
// caller.
func parseSections(md goldmark.Markdown, source string, detectLang bool) (sections []Section) {
	defer func() {
		if r := recover(); r != nil {
			sections = nil
		}
	}()
	src := []byte(source)
	doc := md.Parser().Parse(text.NewReader(src))
	w := newDocumentWalker(src, detectLang)
	for child := doc.FirstChild(); child != nil; child = child.NextSibling() {
		w.walkBlock(child, 0)
	}
	return w.sections
}

func (w *documentWalker) walkBlock(n ast.Node, depth int) {
	switch node := n.(type) {
	case *ast.List:
		w.push(depth, listContainer(node))
		ordinal := node.Start
		if !node.IsOrdered() {
			ordinal = 0
		}
		for child := node.FirstChild(); child != nil; child = child.NextSibling() {
			if item, ok := child.(*ast.ListItem); ok {
				w.walkListItem(item, node, ordinal, depth+1)
				ordinal++
			}
		}
		w.pop(depth)
	case *ast.Blockquote:
		w.push(depth, Container{Kind: ContainerBlockquote})
		for child := node.FirstChild(); child != nil; child = child.NextSibling() {
			w.walkBlock(child, depth+1)
		}
		w.pop(depth)
	default:
		if content, ok := w.classify(n); ok {
			w.emit(content)
		}
	}
}

func (w *documentWalker) walkListItem(item *ast.ListItem, list *ast.List, ordinal int, depth int) {
	marker := itemMarker(item, list, ordinal, w.source)
	w.push(depth, Container{Kind: ContainerListItem, Marker: marker})
	for child := item.FirstChild(); child != nil; child = child.NextSibling() {
		w.walkBlock(child, depth+1)
	}
	w.pop(depth)
	delete(w.contentEmitted, depth)
}

func (w *documentWalker) push(depth int, c Container) {
	w.stack = append(w.stack, stackEntry{depth: depth, container: c})
}

func (w *documentWalker) pop(depth int) {
	for len(w.stack) > 0 && w.stack[len(w.stack)-1].depth >= depth {
		w.stack = w.stack[:len(w.stack)-1]
	}
}

// emit snapshots the current container stack into a section, resolving
// whether the innermost open list item has already produced content.
func (w *documentWalker) emit(content Content) {
	nesting := make([]Container, len(w.stack))
	itemDepth := -1
	for i, e := range w.stack {
		nesting[i] = e.container
		if e.container.Kind == ContainerListItem {
			itemDepth = e.depth
		}
	}
	continuation := false
	if itemDepth >= 0 {
		continuation = w.contentEmitted[itemDepth]
		w.contentEmitted[itemDepth] = true
	}
	w.sections = append(w.sections, Section{
		Content:          content,
		Nesting:          nesting,
		ListContinuation: continuation,
	})
}

// classify maps a block-level leaf to content. Unknown node kinds are
// skipped.
func (w *documentWalker) classify(n ast.Node) (Content, bool) {
	switch node := n.(type) {
	case *ast.Paragraph:
		return Content{Kind: ContentParagraph, Spans: extractInline(node, w.source)}, true
	case *ast.TextBlock:
		// Tight list items wrap their text in a TextBlock rather than a
		// Paragraph.
		return Content{Kind: ContentParagraph, Spans: extractInline(node, w.source)}, true
	case *ast.Heading:
		return Content{Kind: ContentHeader, Tier: node.Level, Text: nodeText(node, w.source)}, true
	case *ast.FencedCodeBlock:
		lang := ""
		if info := node.Language(w.source); info != nil {
			lang = string(info)
		}
		code := nodeText(node, w.source)
		if lang == "" && w.detectLang {
			lang = langdetect.Detect(code)
		}
		return Content{Kind: ContentCodeBlock, Language: lang, Code: code}, true
	case *ast.CodeBlock:
		code := nodeText(node, w.source)
		lang := ""
		if w.detectLang {
			lang = langdetect.Detect(code)
		}
		return Content{Kind: ContentCodeBlock, Language: lang, Code: code}, true
	case *ast.ThematicBreak:
		return Content{Kind: ContentHorizontalRule}, true
	case *east.Table:
		return Content{Kind: ContentTable, Table: w.classifyTable(node)}, true
	}
	return Content{}, false
}

func (w *documentWalker) classifyTable(table *east.Table) *Table {
	t := &Table{}
	for _, a := range table.Alignments {
		t.Alignments = append(t.Alignments, tableAlignment(a))
	}
	for row := table.FirstChild(); row != nil; row = row.NextSibling() {
		cells := w.rowCells(row)
		switch row.(type) {
		case *east.TableHeader:
			t.Header = cells
		case *east.TableRow:
			t.Rows = append(t.Rows, cells)
		}
	}
	for len(t.Alignments) < len(t.Header) {
		t.Alignments = append(t.Alignments, AlignLeft)
	}
	return t
}

func (w *documentWalker) rowCells(row ast.Node) [][]span.Span {
	var cells [][]span.Span
	for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
		cells = append(cells, extractInline(cell, w.source))
	}
	return cells
}

func tableAlignment(a east.Alignment) Alignment {
	switch a {
	case east.AlignCenter:
		return AlignCenter
	case east.AlignRight:
		return AlignRight
	default:
		return AlignLeft
	}
}

// listContainer describes a list for nesting comparisons. The marker
// carries the first item's source indent so that sibling lists with the
// same bullet style at different depths stay distinguishable.
func listContainer(list *ast.List) Container {
	marker := ListMarker{Kind: MarkerUnordered, Bullet: bulletStyleOf(list.Marker)}
	if list.IsOrdered() {
		marker = ListMarker{Kind: MarkerOrdered, Number: normalizeOrdinal(list.Start)}
	}
	if item, ok := list.FirstChild().(*ast.ListItem); ok {
		marker.Indent = item.Offset
	}
	return Container{Kind: ContainerList, Marker: marker}
}

// itemMarker resolves the marker for one list item, including the task
// checkbox state when the item starts with one.
func itemMarker(item *ast.ListItem, list *ast.List, ordinal int, source []byte) ListMarker {
	marker := ListMarker{Indent: item.Offset}
	if list.IsOrdered() {
		marker.Kind = MarkerOrdered
		marker.Number = normalizeOrdinal(ordinal)
	} else {
		marker.Kind = MarkerUnordered
		marker.Bullet = bulletStyleOf(list.Marker)
	}
	if box := taskCheckBox(item); box != nil {
		marker.Kind = MarkerTask
		marker.Checked = box.IsChecked
	}
	return marker
}

// taskCheckBox returns the checkbox opening the item's first text block,
// if any.
func taskCheckBox(item *ast.ListItem) *east.TaskCheckBox {
	first := item.FirstChild()
	if first == nil {
		return nil
	}
	switch first.(type) {
	case *ast.Paragraph, *ast.TextBlock:
	default:
		return nil
	}
	if box, ok := first.FirstChild().(*east.TaskCheckBox); ok {
		return box
	}
	return nil
}

// normalizeOrdinal coerces a source ordinal into the 1-based range the
// markers render with.
func normalizeOrdinal(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// nodeText joins a block node's source line segments, without the
// trailing newline.
func nodeText(n ast.Node, source []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(source))
	}
	return strings.TrimRight(b.String(), "\n")
}
