package exam

import (
	"errors"
	"fmt"
)

// Policy violations and stale references. All of them are expected
// conditions: the operation aborts before mutating state and the session
// stays intact.
var (
	ErrNotFound              = errors.New("not found")
	ErrDuplicateDNI          = errors.New("a user with this DNI already exists")
	ErrDuplicateHabilitation = errors.New("this habilitation already exists")
	ErrExamNotAvailable      = errors.New("exam not available for this student")
	ErrResultExists          = errors.New("exam already submitted")
	ErrSubmissionInFlight    = errors.New("submission already in progress")
	ErrUnansweredQuestions   = errors.New("all questions must be answered")
	ErrSelfDelete            = errors.New("cannot delete the currently authenticated user")
	ErrWrongPassword         = errors.New("current password is incorrect")
	ErrInvalidCredentials    = errors.New("invalid credentials")
)

// ValidationError reports a rejected input. The operation never reached the
// mutation step and nothing was persisted.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// RowError ties an import failure to the 1-based data row it came from.
type RowError struct {
	Row int
	Msg string
}

func (e RowError) Error() string { return fmt.Sprintf("row %d: %s", e.Row, e.Msg) }
