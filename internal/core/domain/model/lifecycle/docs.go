// Package lifecycle provides the generic building blocks shared by every
// marketplace aggregate:
//
//   - Table: the closed set of statuses of one aggregate type, with the
//     transitions, activity flags and display metadata of each status.
//   - Chain: an ordered, short-circuiting list of precondition rules.
//   - DomainEvent and Recorder: the events produced by one mutation.
//
// Tables and chains are built once at package initialization and are
// read-only afterwards; they are safe for concurrent use.
package lifecycle
