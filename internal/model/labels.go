package model

import (
	"regexp"
	"strings"
	"unicode"
)

var splitWordsPattern = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// DefaultLabeler converts a field name into a human-friendly label. It splits
// on punctuation and camelCase boundaries.
func DefaultLabeler(name string) string {
	parts := words(name)
	for i, word := range parts {
		parts[i] = titleCase(word)
	}
	return strings.Join(parts, " ")
}

// PascalName converts a field name into an exported-style type name, used to
// name anonymous nested records ("home_address" -> "HomeAddress").
func PascalName(name string) string {
	parts := words(name)
	for i, word := range parts {
		parts[i] = titleCase(word)
	}
	return strings.Join(parts, "")
}

func words(name string) []string {
	var out []string
	for _, chunk := range splitWordsPattern.Split(strings.TrimSpace(name), -1) {
		if chunk == "" {
			continue
		}
		out = append(out, strings.Fields(splitCamel(chunk))...)
	}
	return out
}

func splitCamel(input string) string {
	var out strings.Builder
	for i, r := range input {
		if i > 0 && isBoundary(input, i, r) {
			out.WriteRune(' ')
		}
		out.WriteRune(r)
	}
	return out.String()
}

func isBoundary(input string, index int, r rune) bool {
	prev := rune(input[index-1])
	return (isLower(prev) && isUpper(r)) || (isLetter(prev) && isDigit(r)) || (isDigit(prev) && isLetter(r))
}

func isUpper(r rune) bool  { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool  { return r >= 'a' && r <= 'z' }
func isDigit(r rune) bool  { return r >= '0' && r <= '9' }
func isLetter(r rune) bool { return isUpper(r) || isLower(r) }

func titleCase(word string) string {
	if word == "" {
		return ""
	}
	runes := []rune(strings.ToLower(word))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
