package safety

import (
	"errors"
	"fmt"
)

// Kind classifies a business-rule violation so the HTTP layer can map
// it to a status code without inspecting message text.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func newError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Validationf(format string, args ...interface{}) *Error {
	return newError(KindValidation, format, args...)
}

func Unauthorizedf(format string, args ...interface{}) *Error {
	return newError(KindUnauthorized, format, args...)
}

func Forbiddenf(format string, args ...interface{}) *Error {
	return newError(KindForbidden, format, args...)
}

func NotFoundf(format string, args ...interface{}) *Error {
	return newError(KindNotFound, format, args...)
}

func Conflictf(format string, args ...interface{}) *Error {
	return newError(KindConflict, format, args...)
}

// KindOf extracts the kind from err; anything that is not a *safety.Error
// is an unexpected failure and classified as internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
