package errors

import (
	"slices"
	"strings"
	"unicode"
)

// OutputFormats lists the formats the render command and server produce.
var OutputFormats = []string{"dot", "svg", "png"}

// LayoutEngines lists the Graphviz layout engines that can be requested.
var LayoutEngines = []string{"dot", "neato", "fdp", "sfdp", "circo", "twopi", "osage", "patchwork"}

// ValidateOutputFormat checks that format is one of [OutputFormats].
func ValidateOutputFormat(format string) error {
	if !slices.Contains(OutputFormats, format) {
		return New(ErrCodeInvalidFormat, "unsupported output format %q (want one of %s)",
			format, strings.Join(OutputFormats, ", "))
	}
	return nil
}

// ValidateEngine checks that engine is one of [LayoutEngines].
func ValidateEngine(engine string) error {
	if !slices.Contains(LayoutEngines, engine) {
		return New(ErrCodeInvalidOption, "unknown layout engine %q (want one of %s)",
			engine, strings.Join(LayoutEngines, ", "))
	}
	return nil
}

// ValidateFontname validates a font name taken from user input.
// The DOT writer puts the font name between quotes without escaping it,
// so names that would break out of the quoted string are rejected.
//
// Validation rules:
//   - Name cannot be empty
//   - Maximum length of 256 characters
//   - No control characters
//   - No double quotes or backslashes
func ValidateFontname(name string) error {
	if name == "" {
		return New(ErrCodeInvalidOption, "font name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidOption, "font name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidOption, "font name contains invalid control characters")
		}
	}

	if strings.ContainsAny(name, `"\`) {
		return New(ErrCodeInvalidOption, "font name cannot contain quotes or backslashes")
	}

	return nil
}
