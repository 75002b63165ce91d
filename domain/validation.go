package domain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/asaskevich/govalidator"
)

// ValidationError carries one message per offending field. It matches ErrInvalidInput.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, k := range e.fieldNames() {
		msgs = append(msgs, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// Messages returns the field messages sorted by field name.
func (e *ValidationError) Messages() []string {
	msgs := make([]string, 0, len(e.Fields))
	for _, k := range e.fieldNames() {
		msgs = append(msgs, e.Fields[k])
	}
	return msgs
}

func (e *ValidationError) fieldNames() []string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func validatePayload(payload interface{}, extra map[string]string) error {
	fields := map[string]string{}
	if _, err := govalidator.ValidateStruct(payload); err != nil {
		for field, msg := range govalidator.ErrorsByField(err) {
			fields[field] = msg
		}
	}
	for field, msg := range extra {
		fields[field] = msg
	}
	return fieldsError(fields)
}

func fieldsError(fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// requireNonBlank rejects a supplied-but-empty value; an absent value is fine for partial updates.
func requireNonBlank(fields map[string]string, name string, v *string) {
	if v != nil && strings.TrimSpace(*v) == "" {
		fields[name] = name + " cannot be blank"
	}
}

func requireEmail(fields map[string]string, name string, v *string) {
	if v == nil {
		return
	}
	if !govalidator.IsEmail(*v) {
		fields[name] = "Invalid email format"
	}
}
