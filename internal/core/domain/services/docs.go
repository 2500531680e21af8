// Package services contains stateless domain services that coordinate
// several aggregates inside one business operation.
//
// The only service here is CourierDispatcher, which pairs a ready order
// with a free courier. It mutates both aggregates in memory; persisting
// the pair atomically is the caller's job.
package services
