package errors

import (
	"strings"
	"unicode"
)

// ValidateParticipantName validates a participant name for safety and
// correctness. Names end up in filenames and log output, so the rules are
// intentionally conservative:
//   - No empty names
//   - No control characters or null bytes
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidateParticipantName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "participant name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidName, "participant name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "participant name contains control characters")
		}
	}

	// Names become archive filenames; reject anything path-like.
	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\\",   // Backslash (Windows path)
		"\x00", // Null byte
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidName, "participant name contains invalid characters: %q", pattern)
		}
	}

	return nil
}
