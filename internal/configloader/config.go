// Package configloader provides configuration loading and resolution.
// It implements XDG-compliant configuration discovery, hierarchical
// merging, environment variable support and validation.
package configloader

// Theme names accepted in configuration and on the command line.
const (
	ThemeDefault = "default"
	ThemeStyled  = "styled"
)

// Color mode names.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config is the resolved rendering configuration.
type Config struct {
	// Width is the target line width in columns. Zero means detect from
	// the terminal, falling back to DefaultWidth.
	Width int `yaml:"width"`

	// Theme selects the symbol set: "default" for markdown-like output,
	// "styled" for box-drawing glyphs.
	Theme string `yaml:"theme"`

	// Color controls ANSI styling: "auto", "always" or "never".
	Color string `yaml:"color"`

	// HideURLs drops link URLs from the output, keeping descriptions.
	HideURLs bool `yaml:"hide_urls"`

	// DetectLanguage classifies code blocks that have no language tag.
	DetectLanguage bool `yaml:"detect_language"`

	// LogLevel sets diagnostic verbosity: debug, info, warn or error.
	LogLevel string `yaml:"log_level"`
}

// DefaultWidth is used when no width is configured and the output is not
// a terminal.
const DefaultWidth = 80

// NewConfig returns the default configuration.
func NewConfig() *Config {
	return &Config{
		Theme:    ThemeDefault,
		Color:    ColorAuto,
		LogLevel: "info",
	}
}

// merge overlays non-zero fields of other onto c.
func (c *Config) merge(other *Config) {
	if other == nil {
		return
	}
	if other.Width != 0 {
		c.Width = other.Width
	}
	if other.Theme != "" {
		c.Theme = other.Theme
	}
	if other.Color != "" {
		c.Color = other.Color
	}
	if other.HideURLs {
		c.HideURLs = true
	}
	if other.DetectLanguage {
		c.DetectLanguage = true
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
}
