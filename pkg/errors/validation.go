package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// idRegex matches board, container and item identifiers. They end up as HTML
// id attributes, CSS selectors and storage keys, so the alphabet is narrow.
var idRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// ValidateID validates a board, container or item identifier.
//
// Rules:
//   - Not empty, at most 64 characters
//   - Starts with a letter
//   - Letters, digits, '-' and '_' only
func ValidateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidID, "id cannot be empty")
	}
	if len(id) > 64 {
		return New(ErrCodeInvalidID, "id too long (max 64 characters): %q", id)
	}
	if !idRegex.MatchString(id) {
		return New(ErrCodeInvalidID, "invalid id: %q", id)
	}
	return nil
}

// ValidateSelector performs a cheap sanity check on a selector string before
// it is compiled. Full syntax checking is left to the selector engine.
func ValidateSelector(sel string) error {
	if strings.TrimSpace(sel) == "" {
		return New(ErrCodeInvalidSelector, "selector cannot be empty")
	}
	for _, r := range sel {
		if r == '\x00' || unicode.IsControl(r) && r != '\t' && r != '\n' {
			return New(ErrCodeInvalidSelector, "selector contains control characters")
		}
	}
	for _, part := range strings.Split(sel, ",") {
		if strings.TrimSpace(part) == "" {
			return New(ErrCodeInvalidSelector, "selector list %q has an empty entry", sel)
		}
	}
	return nil
}

// ValidatePath validates a user-supplied file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}
