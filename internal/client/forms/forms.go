// Package forms declares the input forms of the client and validates them.
//
// A Schema lists fields in prompt order with their rules. Validate trims
// every value, runs the rules and reports at most one message per field,
// the first failing rule winning.
package forms

import (
	"strings"
)

type Field struct {
	Name   string
	Label  string
	Secret bool
	Rules  []Rule
}

type Schema struct {
	Name   string
	Fields []Field
}

// FieldError is a validation failure for a single field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationErrors lists failing fields in schema order.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Message returns the message for field, or "".
func (v ValidationErrors) Message(field string) string {
	for _, e := range v {
		if e.Field == field {
			return e.Message
		}
	}
	return ""
}

// Validate returns the trimmed values of every schema field. Values for
// names outside the schema are dropped. The error, when non-nil, is
// ValidationErrors.
func (s Schema) Validate(in map[string]string) (map[string]string, error) {
	values := make(map[string]string, len(s.Fields))
	for _, f := range s.Fields {
		values[f.Name] = strings.TrimSpace(in[f.Name])
	}

	var errs ValidationErrors
	for _, f := range s.Fields {
		for _, rule := range f.Rules {
			if msg := rule(values[f.Name], values); msg != "" {
				errs = append(errs, FieldError{Field: f.Name, Message: msg})
				break
			}
		}
	}
	if len(errs) > 0 {
		return values, errs
	}
	return values, nil
}

// Field returns the field called name.
func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}
