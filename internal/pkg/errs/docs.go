// Package errs provides the typed errors shared by the marketplace service.
//
// Every error kind follows the same shape:
//   - a sentinel (ErrValueIsRequired, ErrInvalidStateTransition, ...) for errors.Is
//   - a struct carrying the details for errors.As
//   - constructors with and without a cause
//   - Error() for the message and Unwrap() returning the sentinel
//
// Value errors (required, invalid, out of range, not found) come from
// constructors and repositories. Lifecycle errors describe why a command was
// rejected: InvalidStateTransitionError when the status table has no such
// edge, ValidationFailedError when a precondition rule fails,
// ConfigurationError when a policy or status table is malformed at startup,
// and VersionConflictError when an optimistic save lost a race.
package errs
