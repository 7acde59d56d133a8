package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// identRegex matches identifiers usable as function and argument names.
var identRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// IsIdent reports whether s is a valid identifier.
func IsIdent(s string) bool {
	return identRegex.MatchString(s)
}

// ValidateName validates a function or argument name.
func ValidateName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "name cannot be empty")
	}
	if len(name) > 64 {
		return New(ErrCodeInvalidName, "name too long (max 64 characters)")
	}
	if !IsIdent(name) {
		return New(ErrCodeInvalidName, "invalid name: %q", name)
	}
	return nil
}

// ValidatePath validates a document path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
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

// ValidateDocumentPath validates a path and requires the .toml extension
// used by the document loader.
func ValidateDocumentPath(path string) error {
	if err := ValidatePath(path); err != nil {
		return err
	}
	if !strings.HasSuffix(strings.ToLower(path), ".toml") {
		return New(ErrCodeInvalidPath, "document must be a .toml file: %q", path)
	}
	return nil
}
