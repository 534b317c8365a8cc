package utils

import (
	"fmt"
	"strings"
	"time"

	"globeswap/internal/types"
)

// DateLayout is the only date format accepted from listing forms.
const DateLayout = time.DateOnly

// ParseDate parses a YYYY-MM-DD form value as a UTC calendar date.
func ParseDate(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: %s is required", types.ErrValidation, field)
	}

	parsed, err := time.ParseInLocation(DateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be a date in YYYY-MM-DD format", types.ErrValidation, field)
	}

	return parsed, nil
}

func FormatDate(date time.Time) string {
	if date.IsZero() {
		return ""
	}
	return date.Format(DateLayout)
}
