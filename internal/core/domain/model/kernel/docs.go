// Package kernel provides core domain primitives shared across the fulfillment
// domain model.
//
// The package includes:
//   - UUID: a value object for unique identifiers with validation and comparison
//
// These primitives enforce domain invariants so that order and courier
// aggregates always reference valid identities. They are immutable and
// thread-safe, making them suitable for use by concurrently running tracking
// tasks.
package kernel
