package render

import (
	"strings"

	"github.com/yaklabco/mdlines/pkg/span"
)

// sectionToLines converts one section into its output lines, wrapped to
// the requested total width.
func sectionToLines(width int, sec *Section, w Widths) []Line {
	prefixes := nestingToPrefixes(sec.Nesting, sec.ListContinuation)
	switch sec.Content.Kind {
	case ContentBlank:
		return []Line{{Kind: LineBlank, Nesting: prefixes}}
	case ContentParagraph:
		return paragraphToLines(width, sec, prefixes, w)
	case ContentHeader:
		return []Line{{
			Kind:    LineHeader,
			Nesting: prefixes,
			Tier:    sec.Content.Tier,
			Spans:   []span.Span{span.Plain(sec.Content.Text)},
		}}
	case ContentCodeBlock:
		return codeBlockToLines(width, sec, prefixes, w)
	case ContentHorizontalRule:
		return []Line{{Kind: LineHorizontalRule, Nesting: prefixes}}
	case ContentTable:
		return tableToLines(width, sec.Content.Table, prefixes, w)
	}
	return nil
}

func paragraphToLines(width int, sec *Section, prefixes []Prefix, w Widths) []Line {
	spans := stripBlockquoteMarkers(sec.Content.Spans, blockquoteDepth(sec.Nesting))
	if len(spans) == 0 {
		return []Line{{Kind: LineBlank, Nesting: prefixes}}
	}
	var out []Line
	for i, wl := range wrapToLines(width, PrefixWidth(prefixes, w), spans, decorCostsOf(w)) {
		if !hasVisibleContent(wl.Spans) && len(wl.Images) == 0 {
			continue
		}
		nesting := prefixes
		if i > 0 && !wl.First {
			nesting = markAllContinuation(prefixes)
		}
		if hasVisibleContent(wl.Spans) {
			out = append(out, Line{Kind: LineParagraph, Nesting: nesting, Spans: wl.Spans})
		}
		for _, img := range wl.Images {
			ref := img
			out = append(out, Line{Kind: LineImage, Image: &ref})
		}
	}
	return out
}

// codeBlockToLines emits one output line per source line, hard-breaking
// lines wider than the available width.
func codeBlockToLines(width int, sec *Section, prefixes []Prefix, w Widths) []Line {
	avail := width - PrefixWidth(prefixes, w)
	if avail < 1 {
		avail = 1
	}
	var out []Line
	for _, codeLine := range strings.Split(sec.Content.Code, "\n") {
		// Code lines are never decorated, so no decorator room is reserved.
		pieces := [][]span.Span{{span.New(codeLine, span.Code)}}
		if displayWidth(codeLine) > avail {
			pieces = wrapSpans(avail, pieces[0], decorCosts{})
		}
		for _, piece := range pieces {
			if len(piece) == 0 {
				piece = []span.Span{span.New("", span.Code)}
			}
			out = append(out, Line{
				Kind:     LineCodeBlock,
				Nesting:  prefixes,
				Language: sec.Content.Language,
				Spans:    piece,
			})
		}
	}
	return out
}

func displayWidth(s string) int { return span.New(s, span.None).Width() }

func blockquoteDepth(nesting []Container) int {
	depth := 0
	for _, c := range nesting {
		if c.Kind == ContainerBlockquote {
			depth++
		}
	}
	return depth
}
