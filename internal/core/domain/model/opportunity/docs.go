// Package opportunity contains the Opportunity aggregate: a request for work
// published by a consumer, which companies answer with proposals.
//
// Lifecycle:
//
//	Draft ──> Published <──> UnderReview ──> Awarded ──> Completed
//	  │          │  │            │  │           │
//	  │          │  └─> Expired  │  └─> Closed  │
//	  │          └────> Closed   │              │
//	  └──────────────> Cancelled <──────────────┘
//
// Every state-changing method is copy-on-write: it returns a new
// *Opportunity together with the domain events of that one call and never
// modifies the receiver.
package opportunity
