package service

import "errors"

var (
	ErrValidation = errors.New("validation") // 400
	ErrNotFound   = errors.New("not found")  // 404
	ErrConflict   = errors.New("conflict")   // 409
)

// Error carries a caller-facing message and the kind it belongs to.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

func validationError(msg string) error { return &Error{Kind: ErrValidation, Msg: msg} }

func notFoundError(msg string) error { return &Error{Kind: ErrNotFound, Msg: msg} }

func conflictError(msg string) error { return &Error{Kind: ErrConflict, Msg: msg} }
