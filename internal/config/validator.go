package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/kungfusheep/vgraph"
)

// ErrInvalidSize is wrapped by validation errors for display dimensions.
var ErrInvalidSize = errors.New("invalid display size")

// ValidationError is a single invalid field.
type ValidationError struct {
	Field   string
	Value   any
	Message string
	Err     error
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

func (e ValidationError) Unwrap() error { return e.Err }

// ValidationErrors collects every invalid field.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:\n", len(e))
	for i, err := range e {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

func (e ValidationErrors) Unwrap() []error {
	errs := make([]error, len(e))
	for i := range e {
		errs[i] = e[i]
	}
	return errs
}

// ValidBackends lists the output backends.
func ValidBackends() []string {
	return []string{"ansi", "tcell"}
}

// ValidLogLevels lists the accepted log levels.
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// ValidBorders lists the accepted border styles.
func ValidBorders() []string {
	return []string{"none", "single", "rounded", "double", "thick"}
}

// maxDimension bounds width and height; larger buffers are almost always a
// typo.
const maxDimension = 4096

// Validate checks every field and returns all failures, or nil.
func (c *Config) Validate() ValidationErrors {
	var errs ValidationErrors

	for _, d := range []struct {
		field string
		value int
	}{
		{"display.width", c.Display.Width},
		{"display.height", c.Display.Height},
	} {
		if d.value < 1 || d.value > maxDimension {
			errs = append(errs, ValidationError{
				Field:   d.field,
				Value:   d.value,
				Message: fmt.Sprintf("must be between 1 and %d", maxDimension),
				Err:     ErrInvalidSize,
			})
		}
	}
	if c.Display.Frames < 0 {
		errs = append(errs, ValidationError{Field: "display.frames", Value: c.Display.Frames, Message: "must not be negative"})
	}
	if !slices.Contains(ValidBackends(), c.Display.Backend) {
		errs = append(errs, ValidationError{
			Field:   "display.backend",
			Value:   c.Display.Backend,
			Message: "must be one of " + strings.Join(ValidBackends(), ", "),
		})
	}

	for _, col := range []struct{ field, value string }{
		{"theme.foreground", c.Theme.Foreground},
		{"theme.background", c.Theme.Background},
		{"theme.accent", c.Theme.Accent},
		{"theme.focus", c.Theme.Focus},
	} {
		if _, err := vgraph.ParseColor(col.value); err != nil {
			errs = append(errs, ValidationError{Field: col.field, Value: col.value, Message: "not a colour name or hex value", Err: err})
		}
	}
	if !slices.Contains(ValidBorders(), c.Theme.Border) {
		errs = append(errs, ValidationError{
			Field:   "theme.border",
			Value:   c.Theme.Border,
			Message: "must be one of " + strings.Join(ValidBorders(), ", "),
		})
	}

	if !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: "must be one of " + strings.Join(ValidLogLevels(), ", "),
		})
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
