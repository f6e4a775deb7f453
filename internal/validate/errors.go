package validate

import (
	"strings"
)

// FieldError is the message attached to one form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors lists field failures in the order the fields were checked.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Message returns the message for field or "" when the field passed.
func (e Errors) Message(field string) string {
	for _, fe := range e {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

// Map indexes the messages by field.
func (e Errors) Map() map[string]string {
	m := make(map[string]string, len(e))
	for _, fe := range e {
		m[fe.Field] = fe.Message
	}
	return m
}

// Check runs rule against value, records a failure under field and returns
// whether the value passed. Callers AND the results so every field is checked.
func (e *Errors) Check(field, value string, rule Rule) bool {
	r := rule(value)
	if !r.Valid {
		*e = append(*e, FieldError{Field: field, Message: r.Message})
	}
	return r.Valid
}
