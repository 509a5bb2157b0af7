// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles contains the styled renderers for markdown output.
type Styles struct {
	// Inline formatting
	Emphasis      lipgloss.Style
	Strong        lipgloss.Style
	Strikethrough lipgloss.Style
	Code          lipgloss.Style

	// Links
	LinkDescription lipgloss.Style
	LinkURL         lipgloss.Style
	LinkWrapper     lipgloss.Style

	// Block structure
	Header         lipgloss.Style
	BlockquoteBar  lipgloss.Style
	ListMarker     lipgloss.Style
	TableBorder    lipgloss.Style
	HorizontalRule lipgloss.Style
	CodeBlock      lipgloss.Style
	Image          lipgloss.Style

	// Misc
	Plain lipgloss.Style
	Dim   lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

// newColorStyles creates styles with ANSI 256 colors.
func newColorStyles() *Styles {
	return &Styles{
		Emphasis:      lipgloss.NewStyle().Italic(true),
		Strong:        lipgloss.NewStyle().Bold(true),
		Strikethrough: lipgloss.NewStyle().Strikethrough(true),
		Code:          lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Background(lipgloss.Color("0")),

		LinkDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Underline(true),
		LinkURL:         lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		LinkWrapper:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		Header:         lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		BlockquoteBar:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		ListMarker:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		TableBorder:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		HorizontalRule: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		CodeBlock:      lipgloss.NewStyle().Foreground(lipgloss.Color("7")).Background(lipgloss.Color("0")),
		Image:          lipgloss.NewStyle().Foreground(lipgloss.Color("13")),

		Plain: lipgloss.NewStyle(),
		Dim:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// newNoColorStyles creates styles with no color formatting.
func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Emphasis:        plain,
		Strong:          plain,
		Strikethrough:   plain,
		Code:            plain,
		LinkDescription: plain,
		LinkURL:         plain,
		LinkWrapper:     plain,
		Header:          plain,
		BlockquoteBar:   plain,
		ListMarker:      plain,
		TableBorder:     plain,
		HorizontalRule:  plain,
		CodeBlock:       plain,
		Image:           plain,
		Plain:           plain,
		Dim:             plain,
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		// Check NO_COLOR environment variable (https://no-color.org/)
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		// Check if output is a TTY
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
