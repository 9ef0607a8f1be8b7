// ABOUTME: Form handlers shared by the web and terminal UIs
// ABOUTME: Validate user input and turn it into entities before calling store mutations
package handlers

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
)

var emailRx = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// dateLayout is the format of date form fields.
const dateLayout = "2006-01-02"

func validationErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func required(field, v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", validationErrorf("%s is required", field)
	}
	return v, nil
}

// nonBlank drops empty entries and trims the rest, keeping order. The
// result is never nil so a company always carries a list.
func nonBlank(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
