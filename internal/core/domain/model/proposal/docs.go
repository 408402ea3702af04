// Package proposal contains the Proposal aggregate: a company's offer
// answering an opportunity.
//
//	Draft ──> Submitted ──> UnderReview ──> Accepted
//	  │           │  │            │
//	  │           │  └────────────┴──> Rejected
//	  └───────────┴───────────────┴──> Withdrawn
//
// A Submitted proposal may also be accepted or rejected directly.
package proposal
