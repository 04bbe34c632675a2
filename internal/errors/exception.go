package errors

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindValidation     Kind = "validation"
	KindAuthentication Kind = "authentication"
	KindAuthorization  Kind = "authorization"
	KindNotFound       Kind = "not_found"
	KindConflict       Kind = "conflict"
	KindRepository     Kind = "repository"
)

var statusByKind = map[Kind]int{
	KindValidation:     http.StatusBadRequest,
	KindAuthentication: http.StatusUnauthorized,
	KindAuthorization:  http.StatusForbidden,
	KindNotFound:       http.StatusNotFound,
	KindConflict:       http.StatusConflict,
	KindRepository:     http.StatusInternalServerError,
}

type Exception struct {
	Kind       Kind
	Message    string
	StatusCode int
	// Fields names the request fields that failed validation, if any.
	Fields []string
	Err    error
}

func (e *Exception) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Exception) Unwrap() error { return e.Err }

// Is matches exceptions of the same kind and message, so package-level
// sentinels work with errors.Is.
func (e *Exception) Is(target error) bool {
	t, ok := target.(*Exception)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

func newException(kind Kind, msg string) *Exception {
	return &Exception{Kind: kind, Message: msg, StatusCode: statusByKind[kind]}
}

func Validation(msg string, fields ...string) *Exception {
	e := newException(KindValidation, msg)
	e.Fields = fields
	return e
}

func Authentication(msg string) *Exception {
	return newException(KindAuthentication, msg)
}

func Authorization(msg string) *Exception {
	return newException(KindAuthorization, msg)
}

func NotFound(msg string) *Exception {
	return newException(KindNotFound, msg)
}

// Repository wraps a storage failure. The cause is kept for logs and never
// rendered to clients.
func Repository(op string, err error) *Exception {
	e := newException(KindRepository, op)
	e.Err = err
	return e
}

func StatusCode(err error) int {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

func KindOf(err error) Kind {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindRepository
}

func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
