package errors

import (
	"strings"
	"unicode"
)

// ValidateBoardName validates a board name for safety and correctness.
// Board names end up in file paths and store keys, so the rules are
// intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path traversal sequences (.., //, backslash)
//   - Maximum length of 128 characters
func ValidateBoardName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidBoard, "board name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidBoard, "board name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidBoard, "board name contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"//",   // Double slash
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidBoard, "board name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateFormat checks that a render output format is supported.
func ValidateFormat(format string) error {
	switch format {
	case "dot", "svg", "png":
		return nil
	}
	return New(ErrCodeInvalidFormat, "unsupported format %q (expected dot, svg or png)", format)
}
