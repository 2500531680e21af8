package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrReleaseCourierCommandIsNotConstructed = errors.New(
	"ReleaseCourierCommand must be created via NewReleaseCourierCommand constructor",
)

// ReleaseCourierCommand marks a courier as available again. Issued when the
// courier reports the delivery handed over, ahead of the clock reaching the
// delivered threshold.
type ReleaseCourierCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewReleaseCourierCommand creates a command to release a courier.
func NewReleaseCourierCommand(courierID kernel.UUID) (ReleaseCourierCommand, error) {
	releaseCommand := ReleaseCourierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := releaseCommand.setCourierID(courierID); err != nil {
		return ReleaseCourierCommand{}, err
	}

	return releaseCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ReleaseCourierCommand) Validate() error {
	return c.guard.Validate(ErrReleaseCourierCommandIsNotConstructed)
}

// CourierID returns the unique identifier for the courier.
func (c ReleaseCourierCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c *ReleaseCourierCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}
