// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError = "error"
	FieldInput = "input"

	// Rendering fields.
	FieldWidth    = "width"
	FieldTheme    = "theme"
	FieldLines    = "lines"
	FieldDuration = "duration_ms"

	// Configuration fields.
	FieldConfigPath = "config_path"
	FieldHideURLs   = "hide_urls"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
