package domain

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrDanglingSale    = errors.New("sale references a missing product")
)

// Violations maps an input field name to the rule it broke.
type Violations map[string]string

// A ValidationError is returned when caller input is rejected.
type ValidationError struct {
	Msg        string
	Violations Violations
}

func NewValidationError(msg string, v Violations) *ValidationError {
	return &ValidationError{Msg: msg, Violations: v}
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return e.Msg
	}
	var b strings.Builder
	b.WriteString(e.Msg)
	for i, k := range slices.Sorted(maps.Keys(e.Violations)) {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%s", k, e.Violations[k])
	}
	return b.String()
}
