package errors

import (
	"regexp"
	"unicode"
)

// ValidateIdentifier validates a node, port, or connection identifier.
// It rejects identifiers that could break the wire format or be used for
// injection when embedded in rendered output.
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters
//   - No null bytes
//   - Maximum length of 128 characters
func ValidateIdentifier(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "identifier cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidInput, "identifier too long (max 128 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "identifier contains invalid control characters")
		}
	}

	return nil
}

// ValidateTitle validates a node title for display safety.
func ValidateTitle(title string) error {
	if len(title) > 256 {
		return New(ErrCodeInvalidInput, "title too long (max 256 characters)")
	}

	for _, r := range title {
		if r != '\n' && unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "title contains invalid control characters")
		}
	}

	return nil
}

// hexColorRegex matches CSS-style hex colors: #rgb, #rrggbb, #rrggbbaa.
var hexColorRegex = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// ValidateColor validates a custom node color. The empty string is
// valid and means "use the type's default color".
func ValidateColor(color string) error {
	if color == "" {
		return nil
	}

	if !hexColorRegex.MatchString(color) {
		return New(ErrCodeInvalidColor, "invalid color %q (want #rgb, #rrggbb, or #rrggbbaa)", color)
	}

	return nil
}
