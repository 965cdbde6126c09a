package errors

import (
	"strings"
	"unicode"
)

// ValidatePath validates a report key: a manifest path relative to the scan root.
//
// Validation rules:
//   - Path cannot be empty
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No parent directory segments (..)
//   - No backslashes (keys are always forward-slash separated)
func ValidatePath(path string) error {
	if path == "" || path == "." {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters: %q", path)
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /): %s", path)
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes: %s", path)
	}

	for _, seg := range strings.Split(path, "/") {
		if seg == ".." {
			return New(ErrCodeInvalidPath, "path escapes the scan root: %s", path)
		}
	}

	return nil
}

// ValidateMetaKey validates a default metadata key supplied by the operator.
// Keys become JSON object keys in the report, so anything printable is allowed,
// but empty keys and control characters are rejected.
func ValidateMetaKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return New(ErrCodeInvalidInput, "meta key cannot be empty")
	}

	if len(key) > 256 {
		return New(ErrCodeInvalidInput, "meta key too long (max 256 characters)")
	}

	for _, r := range key {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "meta key contains invalid control characters: %q", key)
		}
	}

	return nil
}
