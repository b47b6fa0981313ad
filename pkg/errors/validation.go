package errors

import (
	"strings"
	"unicode"
)

// ValidatePersonName validates a person name used as a graph node key.
// It rejects names that could break output formats or cache keys.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No leading marker character (reserved for lineage annotation)
//   - Maximum length of 256 characters
//
// Dataset-level uniqueness is checked separately by the dataset validator.
func ValidatePersonName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPerson, "person name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidPerson, "person name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPerson, "person name contains invalid control characters")
		}
	}

	if strings.HasPrefix(name, "*") {
		return New(ErrCodeInvalidPerson, "person name cannot start with %q (reserved lineage marker)", "*")
	}

	return nil
}

// ValidateDatasetPath validates a dataset file path for safety.
// It prevents path traversal and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No parent-directory traversal sequences
func ValidateDatasetPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidDataset, "dataset path cannot be empty")
	}

	if len(path) > 500 {
		return New(ErrCodeInvalidDataset, "dataset path too long (max 500 characters)")
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidDataset, "dataset path contains invalid control characters")
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidDataset, "dataset path cannot contain %q", "..")
	}

	return nil
}
