package model

import (
	"sort"
	"strings"
)

// FieldErrors maps field names to validation messages.
// A nil or empty map means the input was valid.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	if len(e) == 0 {
		return "invalid input"
	}
	parts := make([]string, 0, len(e))
	for field, msg := range e {
		parts = append(parts, field+": "+msg)
	}
	sort.Strings(parts)
	return strings.Join(parts, "; ")
}
