// Package kernel holds the value objects shared by every marketplace
// aggregate.
//
// The package includes:
//   - UUID: the typed identity of opportunities, proposals, sourcing events and parties
//   - Money: a non-negative amount in minor units with an ISO 4217 currency
//   - Clock: the source of "now" for application services; the domain never reads time itself
//
// All values are immutable and compare by value. Zero values are invalid and
// fail Validate, so a value can only enter the domain through a constructor.
package kernel
