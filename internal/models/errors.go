package models

import "fmt"

// Kind classifies domain errors; the HTTP layer maps each kind to a status.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindAlreadyExists
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindAlreadyExists:
		return "already_exists"
	case KindForbidden:
		return "forbidden"
	default:
		return "internal"
	}
}

// Error is a domain error carrying a client-safe message.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

// Is matches any *Error of the same kind, so errors.Is(err, ErrNotFound)
// works for every not-found error regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrValidation    = &Error{Kind: KindValidation, Msg: "validation failed"}
	ErrNotFound      = &Error{Kind: KindNotFound, Msg: "not found"}
	ErrAlreadyExists = &Error{Kind: KindAlreadyExists, Msg: "already exists"}
	ErrForbidden     = &Error{Kind: KindForbidden, Msg: "forbidden"}
)

func Validationf(format string, args ...any) error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

func AlreadyExistsf(format string, args ...any) error {
	return &Error{Kind: KindAlreadyExists, Msg: fmt.Sprintf(format, args...)}
}

func Forbiddenf(format string, args ...any) error {
	return &Error{Kind: KindForbidden, Msg: fmt.Sprintf(format, args...)}
}

func UserNotFound(id int64) error {
	return NotFoundf("user with id=%d not found", id)
}

func ItemNotFound(id int64) error {
	return NotFoundf("item with id=%d not found", id)
}

func BookingNotFound(id int64) error {
	return NotFoundf("booking with id=%d not found", id)
}

func RequestNotFound(id int64) error {
	return NotFoundf("item request with id=%d not found", id)
}
