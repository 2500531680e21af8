// Package order contains the Order aggregate and its supporting value objects.
//
// The aggregate models the fulfillment lifecycle: a status state machine that
// only moves forward (Pending through Delivered, with a time-limited side exit
// to Cancelled) and a courier binding that exists only while the order awaits
// or undergoes delivery.
//
// The Schedule value object defines status as a step function of the order's
// age; the tracking component evaluates it on every poll, which makes status
// computation idempotent and self-correcting after missed writes.
package order
