package render_test

import (
	"strings"
	"testing"

	"github.com/yaklabco/mdlines/pkg/mapper"
	"github.com/yaklabco/mdlines/pkg/render"
	"github.com/yaklabco/mdlines/pkg/span"
)

func renderAll(t *testing.T, width int, source string) []render.Line {
	t.Helper()
	return render.New().RenderAll(width, source)
}

func lineTexts(lines []render.Line) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, span.Text(l.Spans))
	}
	return out
}

func TestRenderParagraphSpans(t *testing.T) {
	t.Parallel()

	lines := renderAll(t, 80, "Hello *world*!")

	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	line := lines[0]
	if line.Kind != render.LineParagraph {
		t.Fatalf("kind = %v, want paragraph", line.Kind)
	}
	if len(line.Spans) != 3 {
		t.Fatalf("got %d spans %q, want 3", len(line.Spans), span.Text(line.Spans))
	}
	if line.Spans[0].Text != "Hello " || line.Spans[0].Modifiers != span.None {
		t.Errorf("span 0 = %q (%v)", line.Spans[0].Text, line.Spans[0].Modifiers)
	}
	if line.Spans[1].Text != "world" || !line.Spans[1].Modifiers.Has(span.Emphasis) {
		t.Errorf("span 1 = %q (%v), want emphasized \"world\"", line.Spans[1].Text, line.Spans[1].Modifiers)
	}
	if line.Spans[2].Text != "!" || line.Spans[2].Modifiers != span.None {
		t.Errorf("span 2 = %q (%v)", line.Spans[2].Text, line.Spans[2].Modifiers)
	}
}

func TestRenderInlineFormatting(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		source   string
		text     string
		modifier span.Modifier
	}{
		{"strong", "some **bold** text", "bold", span.Strong},
		{"strikethrough", "some ~~gone~~ text", "gone", span.Strikethrough},
		{"code span", "some `code` text", "code", span.Code},
		{"nested emphasis", "***both***", "both", span.Emphasis | span.Strong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			lines := renderAll(t, 80, tt.source)
			if len(lines) != 1 {
				t.Fatalf("got %d lines, want 1", len(lines))
			}
			for _, s := range lines[0].Spans {
				if s.Text == tt.text {
					if !s.Modifiers.Has(tt.modifier) {
						t.Errorf("span %q modifiers = %v, want %v", s.Text, s.Modifiers, tt.modifier)
					}
					return
				}
			}
			t.Fatalf("no span with text %q in %q", tt.text, span.Text(lines[0].Spans))
		})
	}
}

func TestRenderInlineRawHTML(t *testing.T) {
	t.Parallel()

	lines := renderAll(t, 80, "keep <b>tags</b> visible")

	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if got := span.Text(lines[0].Spans); got != "keep <b>tags</b> visible" {
		t.Errorf("text = %q, want the raw tags preserved", got)
	}
}

func TestRenderDecoratedLinesFitWidth(t *testing.T) {
	t.Parallel()

	lines := renderAll(t, 10, "aaa **bbbb** ccc ddd")
	for _, l := range lines {
		flat := mapper.Flatten(l, mapper.Default{}, 10)
		if w := span.Width(flat); w > 10 {
			t.Errorf("line %q is %d cells after decoration, want at most 10", span.Text(flat), w)
		}
	}
}

func TestRenderLink(t *testing.T) {
	t.Parallel()

	lines := renderAll(t, 80, "see [docs](https://example.com) here")

	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if got := span.Text(lines[0].Spans); got != "see [docs](https://example.com) here" {
		t.Fatalf("text = %q", got)
	}

	var desc, url *span.Span
	for i := range lines[0].Spans {
		s := &lines[0].Spans[i]
		switch {
		case s.Modifiers.Has(span.LinkDescription):
			desc = s
		case s.Modifiers.Has(span.LinkURL):
			url = s
		}
	}
	if desc == nil || url == nil {
		t.Fatal("missing link description or URL span")
	}
	if desc.Source == nil || desc.Source != url.Source {
		t.Error("description and URL should share one source handle")
	}
	if url.Source.Value() != "https://example.com" {
		t.Errorf("source = %q", url.Source.Value())
	}
}

func TestRenderBareURL(t *testing.T) {
	t.Parallel()

	lines := renderAll(t, 80, "visit https://example.com/page today")

	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	var found bool
	for _, s := range lines[0].Spans {
		if s.Modifiers.Has(span.BareLink) {
			found = true
			if !s.Modifiers.Has(span.LinkURL) {
				t.Error("bare link span should carry LinkURL")
			}
			if s.Source.Value() != "https://example.com/page" {
				t.Errorf("source = %q", s.Source.Value())
			}
		}
	}
	if !found {
		t.Fatalf("no bare link span in %q", span.Text(lines[0].Spans))
	}
	if got := span.Text(lines[0].Spans); got != "visit (https://example.com/page) today" {
		t.Errorf("text = %q", got)
	}
}

func TestRenderUnorderedList(t *testing.T) {
	t.Parallel()

	lines := renderAll(t, 80, "- Item 1\n- Item 2")

	if len(lines) != 2 {
		t.Fatalf("got %d lines %q, want 2", len(lines), lineTexts(lines))
	}
	for i, line := range lines {
		if line.Kind != render.LineParagraph {
			t.Errorf("line %d kind = %v", i, line.Kind)
		}
		if len(line.Nesting) != 1 || line.Nesting[0].Kind != render.PrefixListItem {
			t.Fatalf("line %d nesting = %+v, want one list item prefix", i, line.Nesting)
		}
		if line.Nesting[0].Continuation {
			t.Errorf("line %d should not be a continuation", i)
		}
	}
	if span.Text(lines[0].Spans) != "Item 1" || span.Text(lines[1].Spans) != "Item 2" {
		t.Errorf("texts = %q", lineTexts(lines))
	}
}

func TestRenderOrderedListNumbers(t *testing.T) {
	t.Parallel()

	lines := renderAll(t, 80, "1. first\n2. second\n3. third")

	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	for i, line := range lines {
		marker := line.Nesting[0].Marker
		if marker.Kind != render.MarkerOrdered {
			t.Fatalf("line %d marker kind = %v", i, marker.Kind)
		}
		if marker.Number != i+1 {
			t.Errorf("line %d number = %d, want %d", i, marker.Number, i+1)
		}
	}
}

func TestRenderTaskList(t *testing.T) {
	t.Parallel()

	lines := renderAll(t, 80, "- [x] done\n- [ ] todo")

	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	first := lines[0].Nesting[0].Marker
	second := lines[1].Nesting[0].Marker
	if first.Kind != render.MarkerTask || !first.Checked {
		t.Errorf("first marker = %+v, want checked task", first)
	}
	if second.Kind != render.MarkerTask || second.Checked {
		t.Errorf("second marker = %+v, want unchecked task", second)
	}
	if span.Text(lines[0].Spans) != "done" {
		t.Errorf("text = %q, checkbox should not leak into content", span.Text(lines[0].Spans))
	}
}

func TestRenderListItemContinuation(t *testing.T) {
	t.Parallel()

	source := "- first block\n\n  second block\n"
	lines := renderAll(t, 80, source)

	var content []render.Line
	for _, l := range lines {
		if l.Kind == render.LineParagraph {
			content = append(content, l)
		}
	}
	if len(content) != 2 {
		t.Fatalf("got %d paragraph lines %q, want 2", len(content), lineTexts(content))
	}
	if content[0].Nesting[0].Continuation {
		t.Error("first block should carry the marker")
	}
	if !content[1].Nesting[0].Continuation {
		t.Error("second block should be a continuation")
	}
}

func TestRenderContinuationSurvivesNestedList(t *testing.T) {
	t.Parallel()

	source := "- first\n  - nested\n\n  back at top item\n"
	lines := renderAll(t, 80, source)

	var last render.Line
	found := false
	for _, l := range lines {
		if l.Kind == render.LineParagraph && span.Text(l.Spans) == "back at top item" {
			last = l
			found = true
		}
	}
	if !found {
		t.Fatalf("paragraph not found in %q", lineTexts(lines))
	}
	if len(last.Nesting) != 1 || !last.Nesting[0].Continuation {
		t.Errorf("nesting = %+v, want a single continuation list item", last.Nesting)
	}
}

func TestRenderSoftBreakForcesLine(t *testing.T) {
	t.Parallel()

	lines := renderAll(t, 10, "longline1\nlongline2")

	if len(lines) != 2 {
		t.Fatalf("got %d lines %q, want 2", len(lines), lineTexts(lines))
	}
	if span.Text(lines[0].Spans) != "longline1" || span.Text(lines[1].Spans) != "longline2" {
		t.Errorf("texts = %q", lineTexts(lines))
	}
}

func TestRenderBlockquote(t *testing.T) {
	t.Parallel()

	lines := renderAll(t, 80, "> quoted text")

	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if len(lines[0].Nesting) != 1 || lines[0].Nesting[0].Kind != render.PrefixBlockquote {
		t.Fatalf("nesting = %+v, want one blockquote prefix", lines[0].Nesting)
	}
	if got := span.Text(lines[0].Spans); got != "quoted text" {
		t.Errorf("text = %q", got)
	}
}

func TestRenderNestedBlockquoteInList(t *testing.T) {
	t.Parallel()

	lines := renderAll(t, 80, "- item\n  > quote inside\n")

	var quoted *render.Line
	for i := range lines {
		if span.Text(lines[i].Spans) == "quote inside" {
			quoted = &lines[i]
		}
	}
	if quoted == nil {
		t.Fatalf("quote line not found in %q", lineTexts(lines))
	}
	kinds := make([]render.PrefixKind, 0, len(quoted.Nesting))
	for _, p := range quoted.Nesting {
		kinds = append(kinds, p.Kind)
	}
	if len(kinds) != 2 || kinds[0] != render.PrefixListItem || kinds[1] != render.PrefixBlockquote {
		t.Errorf("prefix kinds = %v, want [list item, blockquote]", kinds)
	}
}

func TestRenderHeader(t *testing.T) {
	t.Parallel()

	lines := renderAll(t, 80, "## Section Title")

	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if lines[0].Kind != render.LineHeader || lines[0].Tier != 2 {
		t.Errorf("line = kind %v tier %d, want header tier 2", lines[0].Kind, lines[0].Tier)
	}
	if got := span.Text(lines[0].Spans); got != "Section Title" {
		t.Errorf("text = %q", got)
	}
}

func TestRenderHeaderNeverWraps(t *testing.T) {
	t.Parallel()

	lines := renderAll(t, 10, "# a very long header that exceeds the width")

	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1: headers stay on one line", len(lines))
	}
}

func TestRenderCodeBlock(t *testing.T) {
	t.Parallel()

	lines := renderAll(t, 80, "```go\nfunc main() {}\n```")

	if len(lines) != 1 {
		t.Fatalf("got %d lines %q, want 1", len(lines), lineTexts(lines))
	}
	line := lines[0]
	if line.Kind != render.LineCodeBlock || line.Language != "go" {
		t.Errorf("line = kind %v language %q", line.Kind, line.Language)
	}
	if got := span.Text(line.Spans); got != "func main() {}" {
		t.Errorf("text = %q", got)
	}
	if !line.Spans[0].Modifiers.Has(span.Code) {
		t.Error("code block spans should carry the Code modifier")
	}
}

func TestRenderIndentedCodeBlock(t *testing.T) {
	t.Parallel()

	lines := renderAll(t, 80, "    indented code\n")

	if len(lines) != 1 {
		t.Fatalf("got %d lines %q, want 1", len(lines), lineTexts(lines))
	}
	if lines[0].Kind != render.LineCodeBlock {
		t.Errorf("kind = %v, want code block", lines[0].Kind)
	}
}

func TestRenderHorizontalRule(t *testing.T) {
	t.Parallel()

	lines := renderAll(t, 80, "---")

	if len(lines) != 1 || lines[0].Kind != render.LineHorizontalRule {
		t.Fatalf("lines = %+v, want one horizontal rule", lines)
	}
}

func TestRenderImage(t *testing.T) {
	t.Parallel()

	lines := renderAll(t, 80, "![alt text](image.png)")

	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if lines[0].Kind != render.LineImage || lines[0].Image == nil {
		t.Fatalf("line = %+v, want image line", lines[0])
	}
	if lines[0].Image.URL != "image.png" || lines[0].Image.Description != "alt text" {
		t.Errorf("image = %+v", lines[0].Image)
	}
}

func TestRenderTable(t *testing.T) {
	t.Parallel()

	source := "| A | B |\n|:--|--:|\n| 1 | 2 |\n"
	lines := renderAll(t, 80, source)

	kinds := make([]render.LineKind, 0, len(lines))
	for _, l := range lines {
		kinds = append(kinds, l.Kind)
	}
	expected := []render.LineKind{
		render.LineTableBorder,
		render.LineTableRow,
		render.LineTableBorder,
		render.LineTableRow,
		render.LineTableBorder,
	}
	if len(kinds) != len(expected) {
		t.Fatalf("kinds = %v, want %v", kinds, expected)
	}
	for i := range expected {
		if kinds[i] != expected[i] {
			t.Fatalf("kinds = %v, want %v", kinds, expected)
		}
	}

	if lines[0].Table.Border != render.BorderTop {
		t.Error("first border should be the top")
	}
	if lines[2].Table.Border != render.BorderHeaderSeparator {
		t.Error("middle border should be the header separator")
	}
	if lines[4].Table.Border != render.BorderBottom {
		t.Error("last border should be the bottom")
	}
	if !lines[1].Table.IsHeader {
		t.Error("first row should be the header")
	}
	if lines[3].Table.IsHeader {
		t.Error("data row misflagged as header")
	}

	aligns := lines[1].Table.Columns.Alignments
	if len(aligns) != 2 || aligns[0] != render.AlignLeft || aligns[1] != render.AlignRight {
		t.Errorf("alignments = %v, want [left right]", aligns)
	}
}

func TestRenderTableShrinksToWidth(t *testing.T) {
	t.Parallel()

	source := "| Name | Description |\n|---|---|\n| thing | " + strings.Repeat("word ", 30) + "|\n"
	lines := renderAll(t, 40, source)

	for _, l := range lines {
		if l.Kind != render.LineTableRow && l.Kind != render.LineTableBorder {
			continue
		}
		total := 0
		for _, w := range l.Table.Columns.Widths {
			total += w
		}
		// Columns plus one border per column and the outer border.
		if tableWidth := total + len(l.Table.Columns.Widths) + 1; tableWidth > 40 {
			t.Fatalf("table width %d exceeds 40", tableWidth)
		}
	}
}

func TestRenderBlankSpacing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		source   string
		expected []render.LineKind
	}{
		{
			name:   "blank between paragraphs",
			source: "first\n\nsecond",
			expected: []render.LineKind{
				render.LineParagraph,
				render.LineBlank,
				render.LineParagraph,
			},
		},
		{
			name:   "no blank after header",
			source: "# Title\n\nbody",
			expected: []render.LineKind{
				render.LineHeader,
				render.LineParagraph,
			},
		},
		{
			name:   "blank before list but not between items",
			source: "intro\n\n- one\n- two",
			expected: []render.LineKind{
				render.LineParagraph,
				render.LineBlank,
				render.LineParagraph,
				render.LineParagraph,
			},
		},
		{
			name:   "blank between sibling lists of different markers",
			source: "- one\n\n1. two",
			expected: []render.LineKind{
				render.LineParagraph,
				render.LineBlank,
				render.LineParagraph,
			},
		},
		{
			name:   "blank when a nested list yields to a new top-level list",
			source: "- a\n  * b\n* x",
			expected: []render.LineKind{
				render.LineParagraph,
				render.LineParagraph,
				render.LineBlank,
				render.LineParagraph,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			lines := renderAll(t, 80, tt.source)
			kinds := make([]render.LineKind, 0, len(lines))
			for _, l := range lines {
				kinds = append(kinds, l.Kind)
			}
			if len(kinds) != len(tt.expected) {
				t.Fatalf("kinds = %v (%q), want %v", kinds, lineTexts(lines), tt.expected)
			}
			for i := range kinds {
				if kinds[i] != tt.expected[i] {
					t.Fatalf("kinds = %v, want %v", kinds, tt.expected)
				}
			}
		})
	}
}

func TestRenderNeverConsecutiveBlanks(t *testing.T) {
	t.Parallel()

	source := "a\n\n\n\n\nb\n\n\n# h\n\n\n\n- x\n\n\n- y\n"
	lines := renderAll(t, 80, source)

	prevBlank := false
	for i, l := range lines {
		blank := l.Kind == render.LineBlank
		if blank && prevBlank {
			t.Fatalf("consecutive blank lines at %d", i)
		}
		prevBlank = blank
	}
}

func TestRenderDegradesToEmpty(t *testing.T) {
	t.Parallel()

	for _, source := range []string{"", "\n\n\n", "   "} {
		if lines := renderAll(t, 80, source); len(lines) != 0 {
			t.Errorf("source %q produced %d lines, want 0", source, len(lines))
		}
	}
}

func TestRenderWidthClamped(t *testing.T) {
	t.Parallel()

	// Width zero is treated as one column and must not panic or loop.
	lines := render.New().RenderAll(0, "hello world")
	if len(lines) == 0 {
		t.Fatal("expected output lines")
	}
}

func TestLineIteratorMatchesRenderAll(t *testing.T) {
	t.Parallel()

	source := "# T\n\npara one\n\n- a\n- b\n\n> quote\n"
	r := render.New()

	all := r.RenderAll(60, source)
	it := r.Lines(60, source)
	for i := 0; ; i++ {
		line, ok := it.Next()
		if !ok {
			if i != len(all) {
				t.Fatalf("iterator produced %d lines, RenderAll %d", i, len(all))
			}
			return
		}
		if i >= len(all) {
			t.Fatal("iterator produced more lines than RenderAll")
		}
		if span.Text(line.Spans) != span.Text(all[i].Spans) || line.Kind != all[i].Kind {
			t.Fatalf("line %d mismatch", i)
		}
	}
}

func BenchmarkRenderAll(b *testing.B) {
	source := strings.Repeat("# Header\n\nSome *styled* paragraph with a [link](https://example.com).\n\n- item one\n- item two\n\n```go\nfunc main() {}\n```\n\n", 20)
	r := render.New()
	b.ResetTimer()
	for range b.N {
		r.RenderAll(80, source)
	}
}
