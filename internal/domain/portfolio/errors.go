package portfolio

import (
	"strings"

	"github.com/khoahotran/portfolio-builder/pkg/apperror"
)

// ValidationError names the fields that made an input unacceptable.
type ValidationError struct {
	Fields []string
	Reason string
}

func (e *ValidationError) Error() string {
	msg := e.Reason
	if msg == "" {
		msg = "missing required fields"
	}
	if len(e.Fields) == 0 {
		return msg
	}
	return msg + ": " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Unwrap() error {
	return apperror.ErrInvalidInput
}

func missing(fields ...string) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

func invalid(field, reason string) error {
	return &ValidationError{Fields: []string{field}, Reason: reason}
}
