// Package apperr holds the error taxonomy shared by the gateway and the
// workflows built on top of it.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindNotFoundLocal
	KindServerError
	KindTimeout
	KindBusinessRejection
	KindLoginRequired
)

var kindNames = map[Kind]string{
	KindUnknown:           "unknown",
	KindValidation:        "validation",
	KindUnauthenticated:   "unauthenticated",
	KindForbidden:         "forbidden",
	KindNotFound:          "not_found",
	KindNotFoundLocal:     "not_found_local",
	KindServerError:       "server_error",
	KindTimeout:           "timeout",
	KindBusinessRejection: "business_rejection",
	KindLoginRequired:     "login_required",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

type Error struct {
	Kind    Kind
	Status  int // HTTP status, 0 when the request never got a response
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (status=%d)", msg, e.Status)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same Kind, so the sentinels below work with
// errors.Is regardless of message or status.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Message == "" && t.Status == 0 && t.Err == nil
}

var (
	ErrValidation        = &Error{Kind: KindValidation}
	ErrUnauthenticated   = &Error{Kind: KindUnauthenticated}
	ErrForbidden         = &Error{Kind: KindForbidden}
	ErrNotFound          = &Error{Kind: KindNotFound}
	ErrNotFoundLocal     = &Error{Kind: KindNotFoundLocal}
	ErrServerError       = &Error{Kind: KindServerError}
	ErrTimeout           = &Error{Kind: KindTimeout}
	ErrUnknown           = &Error{Kind: KindUnknown}
	ErrBusinessRejection = &Error{Kind: KindBusinessRejection}
	ErrLoginRequired     = &Error{Kind: KindLoginRequired}
)

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Validation(message string) *Error {
	return New(KindValidation, message)
}

func Rejection(message string) *Error {
	return New(KindBusinessRejection, message)
}

// KindOf reports the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// FromStatus classifies a non-2xx HTTP status.
func FromStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized:
		return KindUnauthenticated
	case status == http.StatusForbidden:
		return KindForbidden
	case status == http.StatusNotFound:
		return KindNotFound
	case status >= 500 && status <= 599:
		return KindServerError
	default:
		return KindUnknown
	}
}
