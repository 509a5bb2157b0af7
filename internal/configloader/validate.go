package configloader

import "fmt"

// Validate checks a resolved configuration for values that cannot be
// rendered with.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil configuration")
	}
	if cfg.Width < 0 {
		return fmt.Errorf("width must be non-negative, got %d", cfg.Width)
	}
	switch cfg.Theme {
	case ThemeDefault, ThemeStyled:
	default:
		return fmt.Errorf("unknown theme %q (expected %q or %q)", cfg.Theme, ThemeDefault, ThemeStyled)
	}
	switch cfg.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("unknown color mode %q (expected auto, always or never)", cfg.Color)
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log level %q", cfg.LogLevel)
	}
	return nil
}
