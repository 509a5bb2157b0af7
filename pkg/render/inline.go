package render

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/yaklabco/mdlines/pkg/span"
)

// bareURLPattern matches plain http(s) URLs embedded in prose. The final
// character class is narrower than the body so trailing punctuation stays
// outside the link.
var bareURLPattern = regexp.MustCompile(`https?://[A-Za-z0-9._~:/?#\[\]@!$&'()*+,;=%-]+[A-Za-z0-9/?#=-]`)

// extractInline flattens a block node's inline tree into spans. Formatting
// modifiers union downward and are never removed once applied; delimiter
// characters are dropped except for link wrappers, which survive as
// width-one spans of their own.
func extractInline(n ast.Node, source []byte) []span.Span {
	x := inlineExtractor{source: source}
	spans := x.extract(n, span.None)
	spans = splitNewlines(spans)
	spans = detectBareURLs(spans)
	return mergeAdjacent(spans)
}

type inlineExtractor struct {
	source []byte
}

func (x *inlineExtractor) extract(n ast.Node, mods span.Modifier) []span.Span {
	var out []span.Span
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		out = append(out, x.extractNode(child, mods)...)
	}
	return out
}

func (x *inlineExtractor) extractNode(n ast.Node, mods span.Modifier) []span.Span {
	switch node := n.(type) {
	case *ast.Text:
		var out []span.Span
		if value := string(node.Segment.Value(x.source)); value != "" {
			out = append(out, span.New(value, mods))
		}
		if node.SoftLineBreak() || node.HardLineBreak() {
			out = append(out, span.New("", mods.Union(span.NewLine)))
		}
		return out
	case *ast.String:
		if len(node.Value) == 0 {
			return nil
		}
		return []span.Span{span.New(string(node.Value), mods)}
	case *ast.CodeSpan:
		var b strings.Builder
		for child := node.FirstChild(); child != nil; child = child.NextSibling() {
			if t, ok := child.(*ast.Text); ok {
				b.Write(t.Segment.Value(x.source))
			}
		}
		code := strings.TrimSpace(b.String())
		if code == "" {
			return nil
		}
		return []span.Span{span.New(code, mods.Union(span.Code))}
	case *ast.Emphasis:
		inner := span.Emphasis
		if node.Level >= 2 {
			inner = span.Strong
		}
		return x.extract(node, mods.Union(inner))
	case *east.Strikethrough:
		return x.extract(node, mods.Union(span.Strikethrough))
	case *ast.Link:
		return x.extractLink(node, mods)
	case *ast.Image:
		return x.extractImage(node, mods)
	case *ast.AutoLink:
		url := string(node.URL(x.source))
		if url == "" {
			return nil
		}
		src := span.NewSourceContent(url)
		return []span.Span{
			span.New("(", mods.Union(span.Link|span.LinkURLWrapper)),
			span.WithSource(url, mods.Union(span.Link|span.LinkURL|span.BareLink), src),
			span.New(")", mods.Union(span.Link|span.LinkURLWrapper)),
		}
	case *east.TaskCheckBox:
		// Rendered as part of the list marker.
		return nil
	case *ast.RawHTML:
		var b strings.Builder
		for i := 0; i < node.Segments.Len(); i++ {
			seg := node.Segments.At(i)
			b.Write(seg.Value(x.source))
		}
		if b.Len() == 0 {
			return nil
		}
		return []span.Span{span.New(b.String(), mods)}
	default:
		return x.extract(n, mods)
	}
}

func (x *inlineExtractor) extractLink(link *ast.Link, mods span.Modifier) []span.Span {
	mods = mods.Union(span.Link)
	src := span.NewSourceContent(string(link.Destination))
	out := []span.Span{span.New("[", mods.Union(span.LinkDescriptionWrapper))}
	desc := x.extract(link, mods.Union(span.LinkDescription))
	for i := range desc {
		desc[i].Source = src
	}
	out = append(out, desc...)
	out = append(out,
		span.New("]", mods.Union(span.LinkDescriptionWrapper)),
		span.New("(", mods.Union(span.LinkURLWrapper)),
		span.WithSource(string(link.Destination), mods.Union(span.LinkURL), src),
		span.New(")", mods.Union(span.LinkURLWrapper)),
	)
	return out
}

// extractImage emits a single invisible span carrying the image reference.
// The wrapping stage lifts it out of the visible content.
func (x *inlineExtractor) extractImage(img *ast.Image, mods span.Modifier) []span.Span {
	var desc strings.Builder
	for _, s := range x.extract(img, span.None) {
		desc.WriteString(s.Text)
	}
	src := span.NewSourceContent(string(img.Destination))
	ref := span.WithSource(desc.String(), mods.Union(span.Image|span.LinkURL), src)
	return []span.Span{ref}
}

// splitNewlines splits spans whose text embeds literal newlines into one
// span per line, flagging every fragment after the first as a line start.
func splitNewlines(spans []span.Span) []span.Span {
	var out []span.Span
	for _, s := range spans {
		if !strings.Contains(s.Text, "\n") {
			out = append(out, s)
			continue
		}
		parts := strings.Split(s.Text, "\n")
		first := true
		for _, part := range parts {
			if part == "" {
				first = false
				continue
			}
			mods := s.Modifiers
			if !first {
				mods = mods.Union(span.NewLine)
			}
			out = append(out, span.Span{Text: part, Modifiers: mods, Source: s.Source})
			first = false
		}
	}
	return out
}

// detectBareURLs rewrites plain http(s) URLs inside ordinary text spans
// into parenthesized link spans, preserving the host span's modifiers on
// every fragment.
func detectBareURLs(spans []span.Span) []span.Span {
	var out []span.Span
	for _, s := range spans {
		if s.Modifiers.Intersects(span.Link | span.Code | span.Image) {
			out = append(out, s)
			continue
		}
		locs := bareURLPattern.FindAllStringIndex(s.Text, -1)
		if len(locs) == 0 {
			out = append(out, s)
			continue
		}
		mods := s.Modifiers
		pos := 0
		for _, loc := range locs {
			if loc[0] > pos {
				out = append(out, span.Span{Text: s.Text[pos:loc[0]], Modifiers: mods, Source: s.Source})
				mods = mods.Without(span.NewLine)
			}
			url := s.Text[loc[0]:loc[1]]
			src := span.NewSourceContent(url)
			out = append(out,
				span.New("(", mods.Union(span.LinkURLWrapper)),
				span.WithSource(url, mods.Without(span.NewLine).Union(span.LinkURL|span.BareLink), src),
				span.New(")", mods.Without(span.NewLine).Union(span.LinkURLWrapper)),
			)
			mods = mods.Without(span.NewLine)
			pos = loc[1]
		}
		if pos < len(s.Text) {
			out = append(out, span.Span{Text: s.Text[pos:], Modifiers: mods, Source: s.Source})
		}
	}
	return out
}

// mergeAdjacent joins neighboring plain text spans that share modifiers
// and source, so later stages see punctuation runs as part of their word.
func mergeAdjacent(spans []span.Span) []span.Span {
	var out []span.Span
	for _, s := range spans {
		if len(out) > 0 {
			prev := &out[len(out)-1]
			if prev.Modifiers == s.Modifiers && prev.Source == s.Source &&
				!s.Modifiers.Intersects(span.NewLine|span.Code|span.LinkURLWrapper|span.LinkDescriptionWrapper) {
				prev.Text += s.Text
				continue
			}
		}
		out = append(out, s)
	}
	return out
}

// stripBlockquoteMarkers removes leading quote markers that survived on
// line-start spans inside a quote of the given depth, then drops spans
// reduced to nothing but markers.
func stripBlockquoteMarkers(spans []span.Span, depth int) []span.Span {
	if depth == 0 {
		return spans
	}
	var out []span.Span
	for _, s := range spans {
		if s.Modifiers.Has(span.NewLine) {
			for i := 0; i < depth; i++ {
				if strings.HasPrefix(s.Text, "> ") {
					s.Text = s.Text[2:]
				} else if strings.HasPrefix(s.Text, ">") {
					s.Text = s.Text[1:]
				}
			}
		}
		if s.Text == "" && !s.Modifiers.Has(span.NewLine) {
			continue
		}
		out = append(out, s)
	}
	return out
}
