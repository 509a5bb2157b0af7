// Package langdetect classifies the language of fenced code blocks that
// carry no info string, so downstream styling can still pick a grammar.
package langdetect

import (
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// classifierCandidates bounds the classifier search to languages that
// commonly appear unfenced in prose documents.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Dockerfile",
}

// Detect returns a lowercase fence tag for the given code, or the empty
// string when no language can be named with confidence.
func Detect(code string) string {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return ""
	}
	content := []byte(code)
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return fenceTag(lang)
	}
	if lang := detectBySignature(trimmed); lang != "" {
		return lang
	}
	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return fenceTag(lang)
	}
	return ""
}

// detectBySignature short-circuits on constructs specific enough that the
// statistical classifier adds nothing.
func detectBySignature(trimmed string) string {
	lower := strings.ToLower(trimmed)
	switch {
	case strings.HasPrefix(trimmed, "package ") && strings.Contains(trimmed, "func "):
		return "go"
	case strings.HasPrefix(trimmed, "#!"):
		return "bash"
	case strings.HasPrefix(lower, "<!doctype html") || strings.HasPrefix(lower, "<html"):
		return "html"
	case looksLikeJSON(trimmed):
		return "json"
	case strings.HasPrefix(trimmed, "FROM ") && strings.Contains(trimmed, "\nRUN "):
		return "dockerfile"
	case hasSQLVerb(trimmed):
		return "sql"
	case strings.Contains(trimmed, "fn main()") || strings.Contains(trimmed, "println!"):
		return "rust"
	case strings.Contains(trimmed, "def ") && strings.Contains(trimmed, "):"):
		return "python"
	}
	return ""
}

func looksLikeJSON(s string) bool {
	return (strings.HasPrefix(s, "{") || strings.HasPrefix(s, "[")) &&
		strings.Contains(s, `"`) && strings.Contains(s, ":")
}

func hasSQLVerb(s string) bool {
	upper := strings.ToUpper(s)
	for _, verb := range []string{"SELECT ", "INSERT INTO ", "UPDATE ", "DELETE FROM ", "CREATE TABLE "} {
		if strings.HasPrefix(upper, verb) {
			return true
		}
	}
	return false
}

// fenceTag converts go-enry language names to the tags used after fence
// backticks.
func fenceTag(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}
