package render

import (
	"strings"
	"testing"

	"github.com/yaklabco/mdlines/pkg/span"
)

func joinLines(lines [][]span.Span) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, span.Text(line))
	}
	return out
}

func TestWrapSpans(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		width    int
		spans    []span.Span
		expected []string
	}{
		{
			name:     "simple wrap",
			width:    4,
			spans:    []span.Span{span.Plain("one two")},
			expected: []string{"one", "two"},
		},
		{
			name:     "no wrap",
			width:    10,
			spans:    []span.Span{span.Plain("one two")},
			expected: []string{"one two"},
		},
		{
			name:     "word break",
			width:    2,
			spans:    []span.Span{span.Plain("one two")},
			expected: []string{"on", "e", "tw", "o"},
		},
		{
			name:  "newline forces break",
			width: 10,
			spans: []span.Span{
				span.Plain("one "),
				span.New("two", span.NewLine),
			},
			expected: []string{"one", "two"},
		},
		{
			name:  "link opener wraps with url",
			width: 25,
			spans: []span.Span{
				span.New("[", span.LinkDescriptionWrapper),
				span.New("link", span.LinkDescription),
				span.New("]", span.LinkDescriptionWrapper),
				span.New("(", span.LinkURLWrapper),
				span.New("https://example.com", span.LinkURL),
				span.New(")", span.LinkURLWrapper),
			},
			expected: []string{"[link]", "(https://example.com)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			lines := wrapSpans(tt.width, tt.spans, decorCosts{})
			got := joinLines(lines)
			if len(got) != len(tt.expected) {
				t.Fatalf("got %d lines %q, want %d lines %q", len(got), got, len(tt.expected), tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("line %d = %q, want %q", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestWrapSpansBrokenWordTags(t *testing.T) {
	t.Parallel()

	lines := wrapSpans(2, []span.Span{span.Plain("one")}, decorCosts{})

	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	first, second := lines[0][0], lines[1][0]
	if first.Text != "on" || !first.Modifiers.Has(span.Wrapped) {
		t.Errorf("first fragment = %q (%v), want \"on\" with Wrapped", first.Text, first.Modifiers)
	}
	if second.Text != "e" || !second.Modifiers.Has(span.WrappedEnd) {
		t.Errorf("second fragment = %q (%v), want \"e\" with WrappedEnd", second.Text, second.Modifiers)
	}
}

func TestWrapSpansKeepsModifiersAndSource(t *testing.T) {
	t.Parallel()

	src := span.NewSourceContent("https://example.com/a/very/long/path")
	lines := wrapSpans(10, []span.Span{
		span.WithSource("https://example.com/a/very/long/path", span.LinkURL, src),
	}, decorCosts{})

	if len(lines) < 2 {
		t.Fatalf("expected the URL to break across lines, got %d", len(lines))
	}
	for _, line := range lines {
		for _, s := range line {
			if !s.Modifiers.Has(span.LinkURL) {
				t.Errorf("fragment %q lost the LinkURL modifier", s.Text)
			}
			if s.Source != src {
				t.Errorf("fragment %q lost its source handle", s.Text)
			}
		}
	}
}

func TestWrapSpansWidthBound(t *testing.T) {
	t.Parallel()

	spans := []span.Span{
		span.Plain("some words here "),
		span.New("emphasized content too", span.Emphasis),
		span.Plain(" and 漢字もいくつか混ざっている long tail"),
	}
	for _, width := range []int{1, 2, 5, 12, 40} {
		for _, line := range wrapSpans(width, spans, decorCosts{}) {
			bound := width
			if bound < 2 {
				// A single grapheme can be wider than one cell.
				bound = 2
			}
			if got := span.Width(line); got > bound {
				t.Errorf("width %d: line %q is %d cells wide", width, span.Text(line), got)
			}
		}
	}
}

func TestWrapSpansBreaksURLAfterSlash(t *testing.T) {
	t.Parallel()

	const url = "https://example.com/a/very/long/path"
	lines := wrapSpans(10, []span.Span{span.Plain(url)}, decorCosts{})

	if len(lines) < 2 {
		t.Fatalf("expected the URL to break across lines, got %d", len(lines))
	}
	if got := span.Text(lines[0]); got != "https://" {
		t.Errorf("first line = %q, want the scheme cut after its slashes", got)
	}
	var rebuilt strings.Builder
	for _, line := range lines {
		if w := span.Width(line); w > 10 {
			t.Errorf("line %q is %d cells wide", span.Text(line), w)
		}
		rebuilt.WriteString(span.Text(line))
	}
	if rebuilt.String() != url {
		t.Errorf("rebuilt URL = %q, want %q", rebuilt.String(), url)
	}
}

func TestWrapSpansReservesDecoratorRoom(t *testing.T) {
	t.Parallel()

	spans := []span.Span{
		span.Plain("aaa "),
		span.New("bbbb", span.Strong),
		span.Plain(" ccc ddd"),
	}
	lines := wrapSpans(10, spans, decorCosts{strong: 2})

	got := joinLines(lines)
	want := []string{"aaa", "bbbb", "ccc ddd"}
	if len(got) != len(want) {
		t.Fatalf("got %d lines %q, want %d lines %q", len(got), got, len(want), want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
	// The strong span sits alone, so its line has four cells of slack
	// for the surrounding decorator pair.
	if w := span.Width(lines[1]); w > 6 {
		t.Errorf("decorated line is %d cells before decoration, want at most 6", w)
	}
}

func TestWrapToLinesExtractsImages(t *testing.T) {
	t.Parallel()

	src := span.NewSourceContent("image.png")
	wrapped := wrapToLines(40, 0, []span.Span{
		span.Plain("before "),
		span.WithSource("alt text", span.Image|span.LinkURL, src),
		span.Plain("after"),
	}, decorCosts{})

	if len(wrapped) != 1 {
		t.Fatalf("got %d lines, want 1", len(wrapped))
	}
	line := wrapped[0]
	if len(line.Images) != 1 {
		t.Fatalf("got %d images, want 1", len(line.Images))
	}
	if line.Images[0].URL != "image.png" || line.Images[0].Description != "alt text" {
		t.Errorf("image = %+v", line.Images[0])
	}
	if got := span.Text(line.Spans); got != "before after" {
		t.Errorf("visible text = %q, want %q", got, "before after")
	}
}

func TestWrapToLinesFirstFlag(t *testing.T) {
	t.Parallel()

	wrapped := wrapToLines(5, 0, []span.Span{
		span.Plain("one two "),
		span.New("three", span.NewLine),
	}, decorCosts{})

	if len(wrapped) != 3 {
		t.Fatalf("got %d lines, want 3", len(wrapped))
	}
	if !wrapped[0].First {
		t.Error("line 0 should be first")
	}
	if wrapped[1].First {
		t.Error("line 1 is wrap-induced, should not be first")
	}
	if !wrapped[2].First {
		t.Error("line 2 starts at an explicit break, should be first")
	}
}
