package langdetect_test

import (
	"testing"

	"github.com/yaklabco/mdlines/pkg/langdetect"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name:     "shebang bash",
			content:  "#!/bin/bash\necho hello",
			expected: "bash",
		},
		{
			name:     "shebang python",
			content:  "#!/usr/bin/env python3\nprint('hello')",
			expected: "python",
		},
		{
			name:     "go code",
			content:  "package main\n\nfunc main() {\n\tfmt.Println(\"hello\")\n}",
			expected: "go",
		},
		{
			name:     "json object",
			content:  `{"key": "value", "number": 123}`,
			expected: "json",
		},
		{
			name:     "rust code",
			content:  "fn main() {\n    println!(\"Hello, world!\");\n}",
			expected: "rust",
		},
		{
			name:     "sql query",
			content:  "SELECT * FROM users WHERE id = 1;",
			expected: "sql",
		},
		{
			name:     "html document",
			content:  "<!DOCTYPE html>\n<html>\n<head><title>Test</title></head>\n<body></body>\n</html>",
			expected: "html",
		},
		{
			name:     "dockerfile",
			content:  "FROM golang:1.25\nWORKDIR /app\nCOPY . .\nRUN go build",
			expected: "dockerfile",
		},
		{
			name:     "empty content",
			content:  "",
			expected: "",
		},
		{
			name:     "whitespace only",
			content:  "   \n\t\n",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := langdetect.Detect(tt.content)

			if result != tt.expected {
				t.Errorf("Detect() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestDetect_ShebangTakesPrecedence(t *testing.T) {
	t.Parallel()

	// Content looks like Python but has bash shebang.
	result := langdetect.Detect("#!/bin/bash\ndef foo():\n    pass")

	if result != "bash" {
		t.Errorf("Detect() = %q, want %q (shebang should take precedence)", result, "bash")
	}
}
