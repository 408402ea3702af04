// Package sourcing contains the Sourcing Event aggregate (a structured
// procurement event such as an RFQ or a reverse auction) and the policy
// table that parameterizes it per event type.
//
// All per-type behavior lives in PolicyEntry values looked up once from a
// PolicyTable. The aggregate never switches on EventType.
//
//	Draft ──> Published ──> Open ⟲ ──> Evaluation ──> Awarded ──> Closed
//	                          ^             │
//	                          └─────────────┘ (next round)
//
// Every non-terminal status except Awarded may move to Cancelled.
package sourcing
