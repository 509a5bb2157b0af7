package mapper

import (
	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/mdlines/pkg/render"
)

// Widths derives the wrapping width assumptions from a mapper's actual
// glyphs, so the renderer reserves exactly the space the mapper will
// fill.
func Widths(m Mapper) render.Widths {
	return symbolWidths{m: m}
}

type symbolWidths struct {
	m Mapper
}

func (w symbolWidths) BulletWidth() int {
	return runewidth.StringWidth(w.m.UnorderedBullet(render.BulletDash))
}

func (w symbolWidths) OrderedMarkerWidth(n int) int {
	return runewidth.StringWidth(w.m.OrderedMarker(n))
}

func (w symbolWidths) TaskMarkerWidth() int {
	return runewidth.StringWidth(w.m.UnorderedBullet(render.BulletDash)) +
		runewidth.StringWidth(w.m.TaskMarker(true))
}

func (w symbolWidths) BlockquoteBarWidth() int {
	return runewidth.StringWidth(w.m.BlockquoteBar())
}

func (w symbolWidths) EmphasisDecoratorWidth() int {
	return runewidth.StringWidth(w.m.EmphasisDecorator())
}

func (w symbolWidths) StrongDecoratorWidth() int {
	return runewidth.StringWidth(w.m.StrongDecorator())
}

func (w symbolWidths) StrikethroughDecoratorWidth() int {
	return runewidth.StringWidth(w.m.StrikethroughDecorator())
}

func (w symbolWidths) CodeDecoratorWidth() int {
	return runewidth.StringWidth(w.m.CodeDecorator())
}
