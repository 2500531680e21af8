package tracking

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

const defaultPollInterval = time.Minute

// The tracker depends on narrow slices of the application layer so tests can
// substitute each concern independently.
type (
	statusAdvancer interface {
		Handle(ctx context.Context, cmd commands.AdvanceOrderCommand) (commands.AdvanceOrderResult, error)
	}

	orderCanceller interface {
		Handle(ctx context.Context, cmd commands.CancelOrderCommand) error
	}

	courierAssigner interface {
		Handle(ctx context.Context, cmd commands.AssignCourierCommand) error
	}

	statusReader interface {
		Handle(ctx context.Context, query queries.GetOrderStatusQuery) (queries.GetOrderStatusQueryResponse, error)
	}
)

// Option configures a Tracker.
type Option func(*Tracker)

// WithPollInterval overrides how often each tracked order is recalculated.
func WithPollInterval(interval time.Duration) Option {
	return func(t *Tracker) {
		if interval > 0 {
			t.pollInterval = interval
		}
	}
}

// Tracker owns one polling goroutine per active order.
type Tracker struct {
	advancer  statusAdvancer
	canceller orderCanceller
	assigner  courierAssigner
	reader    statusReader

	pollInterval time.Duration
	logger       *slog.Logger

	mu      sync.Mutex
	entries map[kernel.UUID]chan struct{}
	wg      sync.WaitGroup
	stopped bool
}

// NewTracker creates a tracker wired to the given handlers.
func NewTracker(
	advancer statusAdvancer,
	canceller orderCanceller,
	assigner courierAssigner,
	reader statusReader,
	logger *slog.Logger,
	opts ...Option,
) *Tracker {
	tracker := &Tracker{
		advancer:     advancer,
		canceller:    canceller,
		assigner:     assigner,
		reader:       reader,
		pollInterval: defaultPollInterval,
		logger:       logger.With("component", "order_tracker"),
		entries:      make(map[kernel.UUID]chan struct{}),
	}

	for _, opt := range opts {
		opt(tracker)
	}

	return tracker
}

// StartTracking enrolls an order into the polling loop.
// Enrolling an already tracked order is a no-op, so restarts and duplicate
// requests are safe.
func (t *Tracker) StartTracking(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped {
		return errors.New("tracker is stopped")
	}

	if _, tracked := t.entries[orderID]; tracked {
		return nil
	}

	done := make(chan struct{})
	t.entries[orderID] = done

	t.wg.Add(1)
	go t.poll(orderID, done)

	t.logger.Info("order enrolled for tracking", "order_id", orderID.String())
	return nil
}

// CancelOrder requests cancellation of a tracked or untracked order.
// The polling goroutine notices the terminal status on its next tick and
// unenrolls itself.
func (t *Tracker) CancelOrder(ctx context.Context, orderID kernel.UUID) error {
	cmd, err := commands.NewCancelOrderCommand(orderID)
	if err != nil {
		return err
	}

	return t.canceller.Handle(ctx, cmd)
}

// GetStatus reports the stored status of an order.
func (t *Tracker) GetStatus(ctx context.Context, orderID kernel.UUID) (order.Status, error) {
	query, err := queries.NewGetOrderStatusQuery(orderID)
	if err != nil {
		return order.Unknown, err
	}

	response, err := t.reader.Handle(ctx, query)
	if err != nil {
		return order.Unknown, err
	}

	return response.Status, nil
}

// IsTracking reports whether the order currently has a polling goroutine.
func (t *Tracker) IsTracking(orderID kernel.UUID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, tracked := t.entries[orderID]
	return tracked
}

// Stop halts all polling goroutines and waits for them to exit.
// The tracker cannot be reused afterwards.
func (t *Tracker) Stop() {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	t.stopped = true
	for _, done := range t.entries {
		close(done)
	}
	t.entries = make(map[kernel.UUID]chan struct{})
	t.mu.Unlock()

	t.wg.Wait()
	t.logger.Info("order tracker stopped")
}

func (t *Tracker) poll(orderID kernel.UUID, done <-chan struct{}) {
	defer t.wg.Done()

	ticker := time.NewTicker(t.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if t.tick(orderID) {
				t.unenroll(orderID)
				return
			}
		}
	}
}

// tick runs one recalculation and reports whether tracking should stop.
func (t *Tracker) tick(orderID kernel.UUID) bool {
	ctx := context.Background()

	cmd, err := commands.NewAdvanceOrderCommand(orderID)
	if err != nil {
		t.logger.Error("invalid advance command", "order_id", orderID.String(), "error", err)
		return true
	}

	result, err := t.advancer.Handle(ctx, cmd)
	if err != nil {
		// Transient store failures are retried on the next tick.
		t.logger.Error("status recalculation failed", "order_id", orderID.String(), "error", err)
		return false
	}

	t.logger.Debug("order status recalculated",
		"order_id", orderID.String(), "status", result.Status.String())

	if result.BecameReady {
		t.triggerAssignment(ctx, orderID)
	}

	if result.Terminal {
		t.logger.Info("order reached terminal status, tracking ends",
			"order_id", orderID.String(), "status", result.Status.String())
		return true
	}

	return false
}

func (t *Tracker) triggerAssignment(ctx context.Context, orderID kernel.UUID) {
	cmd, err := commands.NewAssignCourierCommand(orderID)
	if err != nil {
		t.logger.Error("invalid assignment command", "order_id", orderID.String(), "error", err)
		return
	}

	err = t.assigner.Handle(ctx, cmd)
	switch {
	case errors.Is(err, commands.ErrNoFreeCouriersFound):
		// Expected when the fleet is busy; the retry job picks this up.
		t.logger.Info("no courier available yet", "order_id", orderID.String())
	case err != nil:
		t.logger.Error("courier assignment failed", "order_id", orderID.String(), "error", err)
	default:
		t.logger.Info("courier assigned", "order_id", orderID.String())
	}
}

func (t *Tracker) unenroll(orderID kernel.UUID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.entries, orderID)
}
