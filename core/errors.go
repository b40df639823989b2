package core

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// ErrNoSession is returned when an operation needs a logged-in user and none is stored locally.
var ErrNoSession = errors.New("no user in session")

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err != nil {
		return err.Err.Error()
	}
	if len(err.Fields) == 0 {
		return ""
	}
	msgs := make([]string, 0, len(err.Fields))
	for _, fe := range err.Fields {
		msgs = append(msgs, fe.Field+": "+fe.Error)
	}
	return strings.Join(msgs, "; ")
}

// FieldMap returns the field errors keyed by field name.
func (err ValidationError) FieldMap() map[string]string {
	m := make(map[string]string, len(err.Fields))
	for _, fe := range err.Fields {
		m[fe.Field] = fe.Error
	}
	return m
}

// HasField reports whether `field` failed validation.
func (err ValidationError) HasField(field string) bool {
	for _, fe := range err.Fields {
		if fe.Field == field {
			return true
		}
	}
	return false
}

func sortFieldErrors(flds []FieldError) {
	sort.SliceStable(flds, func(i, j int) bool { return flds[i].Field < flds[j].Field })
}

func IsValidationError(err error) bool {
	_, ok := errors.Cause(err).(*ValidationError)
	return ok
}
