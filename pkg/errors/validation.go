package errors

import (
	"strings"
	"unicode"
)

// MaxDegree bounds the number of points a group definition may act on.
// A stabilizer chain keeps one permutation per orbit point on every level,
// so for the symmetric group memory grows with the cube of the degree.
// Servers apply a lower limit of their own.
const MaxDegree = 4096

// ValidateDegree checks that n is a usable permutation degree.
func ValidateDegree(n int) error {
	if n < 1 {
		return New(ErrCodeInvalidDegree, "degree must be positive, got %d", n)
	}
	if n > MaxDegree {
		return New(ErrCodeInvalidDegree, "degree %d exceeds maximum of %d", n, MaxDegree)
	}
	return nil
}

// ValidateGroupName validates a human-readable group name for safety.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path separators (names double as file stems in the file store)
//   - Maximum length of 128 characters
func ValidateGroupName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidDefinition, "group name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidDefinition, "group name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidDefinition, "group name contains invalid control characters")
		}
	}

	if strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		return New(ErrCodeInvalidDefinition, "group name cannot contain path components")
	}

	return nil
}

// ValidatePoint checks that point lies in [0, degree).
func ValidatePoint(point, degree int) error {
	if point < 0 || point >= degree {
		return New(ErrCodePointOutOfRange, "point %d out of range [0;%d[", point, degree)
	}
	return nil
}
