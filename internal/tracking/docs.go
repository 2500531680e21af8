// Package tracking runs the per-order status lifecycle.
//
// Every tracked order gets its own polling goroutine that periodically asks
// the application layer to recalculate the stored status from the elapsed
// time. When an order becomes ready for dispatch the tracker triggers one
// assignment attempt; when the order reaches a terminal status the goroutine
// exits and the order is dropped from the registry.
//
// The tracker holds no business rules itself. It delegates every decision
// to command handlers so the polling cadence is the only thing it owns.
package tracking
