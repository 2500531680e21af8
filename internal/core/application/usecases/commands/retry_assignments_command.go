package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrRetryAssignmentsCommandIsNotConstructed = errors.New(
	"RetryAssignmentsCommand must be created via NewRetryAssignmentsCommand constructor",
)

// RetryAssignmentsCommand triggers a pass over every order that is ready for
// dispatch but still has no courier. Orders end up in that state when the
// fleet was fully busy at the moment they became ready.
type RetryAssignmentsCommand struct { //nolint:recvcheck //using for validation
	guard guard.ConstructorGuard
}

// NewRetryAssignmentsCommand creates a new parameterless retry command.
func NewRetryAssignmentsCommand() RetryAssignmentsCommand {
	return RetryAssignmentsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c RetryAssignmentsCommand) Validate() error {
	return c.guard.Validate(ErrRetryAssignmentsCommandIsNotConstructed)
}
