package compose

import (
	"errors"
	"fmt"
)

var (
	// ErrPrecondition is wrapped by every error Compile returns because the
	// Message is incomplete. These are programming errors. Retrying the same
	// Message will fail the same way.
	ErrPrecondition = errors.New("message precondition failed")

	// ErrMissingSender is returned when the Message has no sender.
	ErrMissingSender = fmt.Errorf("%w: message requires sender", ErrPrecondition)

	// ErrMissingRecipients is returned when To, CC, and BCC are all empty.
	ErrMissingRecipients = fmt.Errorf("%w: message requires at least one recipient", ErrPrecondition)

	// ErrMissingSubject is returned when the subject has never been set. An
	// empty subject is allowed.
	ErrMissingSubject = fmt.Errorf("%w: message requires subject", ErrPrecondition)
)
