// Package commission holds the commission-engine aggregates: the globally
// configurable CommissionRule (at most one active at a time) and the
// Settlement record created once per delivered order.
package commission
