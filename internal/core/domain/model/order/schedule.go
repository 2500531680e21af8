package order

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrScheduleIsNotConstructed is returned when a Schedule instance was not
// created through the NewSchedule or DefaultSchedule constructors.
var ErrScheduleIsNotConstructed = errors.New("Schedule must be created via NewSchedule or DefaultSchedule")

// Step is one entry of the status schedule: an order whose age is strictly
// below Threshold (and at or above all earlier thresholds) holds Status.
type Step struct {
	Threshold time.Duration
	Status    Status
}

// Schedule is a value object describing the order status as a step function of
// elapsed time since creation. Thresholds are evaluated in ascending order and
// the first step with elapsed < Threshold wins, so boundary instants round
// down to the earlier status. Beyond the last threshold the order is
// considered Delivered.
//
// The default schedule mirrors the restaurant's preparation timings:
//
//	elapsed < 5m   -> Preparing
//	elapsed < 20m  -> Prepared
//	elapsed < 30m  -> OutForDelivery
//	otherwise      -> Delivered
//
// The smallest threshold doubles as the cancellation window: a customer may
// cancel only while the kitchen could still abort preparation.
type Schedule struct {
	steps []Step

	guard guard.ConstructorGuard
}

// NewSchedule creates a validated Schedule from the given steps.
//
// Rules:
//   - at least two steps (the last one defines the ready-to-deliver stage)
//   - thresholds strictly ascending and positive
//   - statuses strictly advancing, each after Pending and before Delivered
func NewSchedule(steps []Step) (Schedule, error) {
	if len(steps) < 2 {
		return Schedule{}, errs.NewValueIsRequiredError("schedule requires at least two steps")
	}

	prev := Step{Threshold: 0, Status: Pending}
	for i, step := range steps {
		if step.Threshold <= prev.Threshold {
			return Schedule{}, errs.NewValueIsInvalidErrorWithCause(
				"schedule is invalid",
				fmt.Errorf("step %d threshold %s is not after %s", i, step.Threshold, prev.Threshold),
			)
		}
		if err := step.Status.Validate(); err != nil {
			return Schedule{}, err
		}
		if step.Status <= prev.Status || step.Status >= Delivered {
			return Schedule{}, errs.NewValueIsInvalidErrorWithCause(
				"schedule is invalid",
				fmt.Errorf("step %d status %s does not advance the pipeline", i, step.Status),
			)
		}
		prev = step
	}

	out := make([]Step, len(steps))
	copy(out, steps)
	return Schedule{steps: out, guard: guard.NewConstructorGuard()}, nil
}

// DefaultSchedule returns the standard preparation schedule
// (5m/20m/30m thresholds, see the type documentation).
func DefaultSchedule() Schedule {
	schedule, err := NewSchedule([]Step{
		{Threshold: 5 * time.Minute, Status: Preparing},
		{Threshold: 20 * time.Minute, Status: Prepared},
		{Threshold: 30 * time.Minute, Status: OutForDelivery},
	})
	if err != nil {
		// The default table is a compile-time constant; failing to build it is a bug.
		panic(err)
	}
	return schedule
}

// Validate ensures the Schedule was created via a constructor.
func (s Schedule) Validate() error {
	return s.guard.Validate(ErrScheduleIsNotConstructed)
}

// Steps returns a copy of the schedule's step table.
func (s Schedule) Steps() []Step {
	out := make([]Step, len(s.steps))
	copy(out, s.steps)
	return out
}

// StatusAt evaluates the step function for an order of the given age.
// The first step whose threshold exceeds elapsed wins; past the last threshold
// the result is Delivered.
func (s Schedule) StatusAt(elapsed time.Duration) Status {
	for _, step := range s.steps {
		if elapsed < step.Threshold {
			return step.Status
		}
	}
	return Delivered
}

// CancellationWindow returns the duration after creation during which an order
// may still be cancelled. It equals the smallest threshold in the schedule.
func (s Schedule) CancellationWindow() time.Duration {
	return s.steps[0].Threshold
}

// ReadyStatus returns the status at which courier assignment becomes eligible:
// the stage immediately preceding the delivery leg.
func (s Schedule) ReadyStatus() Status {
	return s.steps[len(s.steps)-2].Status
}
