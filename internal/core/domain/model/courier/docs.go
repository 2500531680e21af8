// Package courier contains the Courier aggregate.
//
// A courier is the unit of delivery capacity: at any instant it is either
// available or bound to exactly one non-terminal order. Reserve and Release
// are the only availability mutations; the persistence layer enforces them
// with conditional updates so concurrent assignments stay exclusive.
package courier
