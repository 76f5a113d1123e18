// Package validation holds the pre-condition checks that run before every
// mutating operation. Structural rules are checked first; existence and
// uniqueness checks hit the database and run only once the structural rules
// pass, so malformed input never costs a store round-trip. All violated
// rules are collected, not just the first one.
package validation

import (
	"strings"
	"unicode/utf8"
)

const (
	MaxNameLength = 100
	MaxTextLength = 500
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Errors []FieldError

func (e *Errors) Add(field, message string) {
	*e = append(*e, FieldError{Field: field, Message: message})
}

func (e Errors) Empty() bool {
	return len(e) == 0
}

func (e Errors) String() string {
	messages := make([]string, 0, len(e))
	for _, fe := range e {
		messages = append(messages, fe.Message)
	}
	return strings.Join(messages, " ")
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
