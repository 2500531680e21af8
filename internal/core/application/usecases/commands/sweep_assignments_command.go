package commands

import (
	"errors"
	"time"

	"fulfillment/internal/pkg/guard"
)

var (
	ErrSweepAssignmentsCommandIsNotConstructed = errors.New(
		"SweepAssignmentsCommand must be created via NewSweepAssignmentsCommand constructor",
	)
	ErrTimeoutIsInvalid = errors.New("timeout must be greater than 0")
)

// SweepAssignmentsCommand triggers a reclaim pass over stale assignments.
// An assignment is stale when the courier has been bound to a non-terminal
// order for longer than the timeout, which usually means the delivery leg
// stalled or the completion signal was lost.
type SweepAssignmentsCommand struct { //nolint:recvcheck //using for validation
	timeout time.Duration

	guard guard.ConstructorGuard
}

// NewSweepAssignmentsCommand creates a command to reclaim couriers whose
// assignment is older than timeout.
func NewSweepAssignmentsCommand(timeout time.Duration) (SweepAssignmentsCommand, error) {
	sweepCommand := SweepAssignmentsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := sweepCommand.setTimeout(timeout); err != nil {
		return SweepAssignmentsCommand{}, err
	}

	return sweepCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c SweepAssignmentsCommand) Validate() error {
	return c.guard.Validate(ErrSweepAssignmentsCommandIsNotConstructed)
}

// Timeout returns the age past which an assignment is considered stale.
func (c SweepAssignmentsCommand) Timeout() time.Duration {
	return c.timeout
}

func (c *SweepAssignmentsCommand) setTimeout(timeout time.Duration) error {
	if timeout <= 0 {
		return ErrTimeoutIsInvalid
	}

	c.timeout = timeout
	return nil
}
