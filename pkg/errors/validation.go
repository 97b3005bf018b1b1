package errors

import (
	"strings"
	"unicode"
)

// ValidateTreePath validates a tree-relative path (as used by layout lookups
// and API requests) for safety and correctness.
//
// The validation rules are intentionally conservative:
//   - No empty paths
//   - No control characters or null bytes
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows path injection)
//   - Maximum length of 500 characters
func ValidateTreePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	// Must not be absolute path
	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	// Check for path traversal
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	// No backslashes (potential Windows path injection)
	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// ValidateExcludePattern validates a user-supplied scan exclusion glob.
// It ensures the pattern is a simple name or relative glob without path
// traversal.
func ValidateExcludePattern(pattern string) error {
	if pattern == "" {
		return New(ErrCodeInvalidInput, "exclude pattern cannot be empty")
	}

	if strings.Contains(pattern, "..") {
		return New(ErrCodeInvalidInput, "exclude pattern cannot contain path traversal sequences (..)")
	}

	for _, r := range pattern {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "exclude pattern contains invalid characters")
		}
	}

	return nil
}
