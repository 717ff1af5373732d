package domain

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidInput = errors.New("invalid input")
	ErrRateLimited  = errors.New("rate limited")
)

// InputError is a validation failure whose message is safe to show to the user.
// It matches ErrInvalidInput under errors.Is.
type InputError struct {
	Message string
}

func (e *InputError) Error() string { return e.Message }

func (e *InputError) Is(target error) bool { return target == ErrInvalidInput }

// Invalid returns an InputError carrying msg.
func Invalid(msg string) error {
	return &InputError{Message: msg}
}

// UserMessage returns the user-facing message of an InputError anywhere in
// err's chain, or fallback when there is none.
func UserMessage(err error, fallback string) string {
	var in *InputError
	if errors.As(err, &in) {
		return in.Message
	}
	return fallback
}
