// Package services contains stateless domain services.
//
// The services here are pure computations over domain values: sequencing a
// driver's outstanding delivery points into a route, quoting the commission
// owed for an order amount, and inflating a base travel estimate into a
// customer-facing ETA. They hold no persistent state and perform no I/O,
// which keeps them trivially testable and safe for concurrent use.
package services
