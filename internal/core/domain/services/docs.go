// Package services holds domain services for operations that span more than
// one aggregate or need data no single aggregate owns.
//
// The package includes:
//   - ProposalDesk: submits proposals against an opportunity and accepts a
//     winning proposal, awarding the opportunity and rejecting the rest
//   - BidEvaluator: ranks sourcing bids with the evaluation weights of the
//     event's policy
//
// Like the aggregates, services are pure: they return new values and the
// events produced, and never persist or publish anything.
package services
