// Package mapper maps the abstract output lines of pkg/render onto
// concrete glyphs. A Mapper decides every symbol the renderer left open:
// link wrappers, list markers, blockquote bars, table borders, rule fill
// and emphasis decorators.
package mapper

import (
	"strconv"

	"github.com/yaklabco/mdlines/pkg/render"
)

// Mapper supplies the glyphs used when flattening lines to final spans.
// Marker and bar glyphs must match the widths the renderer wrapped with;
// see Widths.
type Mapper interface {
	LinkDescriptionOpen() string
	LinkDescriptionClose() string
	LinkURLOpen() string
	LinkURLClose() string
	// HideURLs drops URL spans and their wrappers from link output,
	// except for bare links.
	HideURLs() bool

	BlockquoteBar() string
	UnorderedBullet(style render.BulletStyle) string
	OrderedMarker(n int) string
	TaskMarker(checked bool) string

	HorizontalRule() string

	EmphasisDecorator() string
	StrongDecorator() string
	StrikethroughDecorator() string
	CodeDecorator() string

	TableVertical() string
	TableHorizontal() string
	TableTopLeft() string
	TableTopRight() string
	TableBottomLeft() string
	TableBottomRight() string
	TableTopJunction() string
	TableBottomJunction() string
	TableLeftJunction() string
	TableRightJunction() string
	TableCross() string
}

// Default reproduces markdown-like syntax: bracketed links, "- " bullets,
// "> " bars, "+--+" borders and literal emphasis decorators.
type Default struct{}

func (Default) LinkDescriptionOpen() string  { return "[" }
func (Default) LinkDescriptionClose() string { return "]" }
func (Default) LinkURLOpen() string          { return "(" }
func (Default) LinkURLClose() string         { return ")" }
func (Default) HideURLs() bool               { return false }

func (Default) BlockquoteBar() string { return "> " }

func (Default) UnorderedBullet(style render.BulletStyle) string {
	return string(style.Rune()) + " "
}

func (Default) OrderedMarker(n int) string {
	if n < 1 {
		n = 1
	}
	return strconv.Itoa(n) + ". "
}

func (Default) TaskMarker(checked bool) string {
	if checked {
		return "[x] "
	}
	return "[ ] "
}

func (Default) HorizontalRule() string { return "-" }

func (Default) EmphasisDecorator() string      { return "*" }
func (Default) StrongDecorator() string        { return "**" }
func (Default) StrikethroughDecorator() string { return "~~" }
func (Default) CodeDecorator() string          { return "`" }

func (Default) TableVertical() string       { return "|" }
func (Default) TableHorizontal() string     { return "-" }
func (Default) TableTopLeft() string        { return "+" }
func (Default) TableTopRight() string       { return "+" }
func (Default) TableBottomLeft() string     { return "+" }
func (Default) TableBottomRight() string    { return "+" }
func (Default) TableTopJunction() string    { return "+" }
func (Default) TableBottomJunction() string { return "+" }
func (Default) TableLeftJunction() string   { return "+" }
func (Default) TableRightJunction() string  { return "+" }
func (Default) TableCross() string          { return "+" }

// Styled renders for terminals that carry styling out of band: emphasis
// decorators collapse to nothing, links wrap in half-block glyphs and
// tables draw with box-drawing characters.
type Styled struct {
	Default
}

func (Styled) LinkDescriptionOpen() string  { return "▐" }
func (Styled) LinkDescriptionClose() string { return "▌" }
func (Styled) LinkURLOpen() string          { return "◖" }
func (Styled) LinkURLClose() string         { return "◗" }

func (Styled) BlockquoteBar() string { return "▌ " }

func (Styled) TaskMarker(checked bool) string {
	if checked {
		return "[✓] "
	}
	return "[ ] "
}

func (Styled) HorizontalRule() string { return "─" }

func (Styled) EmphasisDecorator() string      { return "" }
func (Styled) StrongDecorator() string        { return "" }
func (Styled) StrikethroughDecorator() string { return "" }
func (Styled) CodeDecorator() string          { return "" }

func (Styled) TableVertical() string       { return "│" }
func (Styled) TableHorizontal() string     { return "─" }
func (Styled) TableTopLeft() string        { return "┌" }
func (Styled) TableTopRight() string       { return "┐" }
func (Styled) TableBottomLeft() string     { return "└" }
func (Styled) TableBottomRight() string    { return "┘" }
func (Styled) TableTopJunction() string    { return "┬" }
func (Styled) TableBottomJunction() string { return "┴" }
func (Styled) TableLeftJunction() string   { return "├" }
func (Styled) TableRightJunction() string  { return "┤" }
func (Styled) TableCross() string          { return "┼" }
