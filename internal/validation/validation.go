// Package validation reports user-input problems with the offending field
// attached, so the UI can point at the form control that needs fixing.
package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ErrInvalid matches every validation failure with errors.Is.
var ErrInvalid = errors.New("validation failed")

// Error is a single field that failed validation.
type Error struct {
	Field   string
	Message string
}

// New returns a validation error for field.
func New(field, message string) *Error {
	return &Error{Field: field, Message: message}
}

func (e *Error) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + " " + e.Message
}

// Is reports whether target is ErrInvalid.
func (e *Error) Is(target error) bool { return target == ErrInvalid }

// Errors collects several field failures in the order they were found.
type Errors []*Error

func (es Errors) Error() string {
	msgs := make([]string, 0, len(es))
	for _, e := range es {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

// Is reports whether target is ErrInvalid.
func (es Errors) Is(target error) bool { return target == ErrInvalid }

// Fields maps each offending field to its message.
func (es Errors) Fields() map[string]string {
	out := make(map[string]string, len(es))
	for _, e := range es {
		if _, ok := out[e.Field]; !ok {
			out[e.Field] = e.Message
		}
	}
	return out
}

// Err returns nil for an empty list, the single error for one entry and the
// list itself otherwise.
func (es Errors) Err() error {
	switch len(es) {
	case 0:
		return nil
	case 1:
		return es[0]
	default:
		return es
	}
}

// Field returns the first offending field carried by err.
func Field(err error) (string, bool) {
	var es Errors
	if errors.As(err, &es) && len(es) > 0 {
		return es[0].Field, true
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Field, true
	}
	return "", false
}

// Fields returns every offending field carried by err.
func Fields(err error) map[string]string {
	var es Errors
	if errors.As(err, &es) {
		return es.Fields()
	}
	var e *Error
	if errors.As(err, &e) {
		return map[string]string{e.Field: e.Message}
	}
	return nil
}

var (
	once     sync.Once
	instance *validator.Validate
)

func validate() *validator.Validate {
	once.Do(func() {
		instance = validator.New()
		// Report json names so messages line up with form and API field names.
		instance.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			switch name {
			case "-":
				return ""
			case "":
				return fld.Name
			}
			return name
		})
	})
	return instance
}

// Struct checks s against its `validate` tags.
func Struct(s any) error {
	err := validate().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Join(ErrInvalid, err)
	}

	out := make(Errors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, New(fe.Field(), message(fe)))
	}
	return out.Err()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min", "gte":
		return "must be at least " + fe.Param()
	case "max", "lte":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "hexcolor":
		return "must be a hex color such as #1E3A8A"
	default:
		return "is invalid"
	}
}
