package errs

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrValidationFailed       = errors.New("validation failed")
	ErrConfiguration          = errors.New("configuration is invalid")
	ErrVersionConflict        = errors.New("version conflict")
)

// InvalidStateTransitionError is returned when the status table of an
// aggregate has no edge from Current to Target. The aggregate is unchanged.
type InvalidStateTransitionError struct {
	Aggregate string
	Current   string
	Target    string
}

func NewInvalidStateTransitionError(aggregate, current, target string) *InvalidStateTransitionError {
	return &InvalidStateTransitionError{Aggregate: aggregate, Current: current, Target: target}
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("%s: %s cannot move from %s to %s",
		ErrInvalidStateTransition, e.Aggregate, e.Current, e.Target)
}

func (e *InvalidStateTransitionError) Unwrap() error {
	return ErrInvalidStateTransition
}

// ValidationFailedError names the first precondition rule that rejected a
// command.
type ValidationFailedError struct {
	Rule    string
	Message string
}

func NewValidationFailedError(rule, message string) *ValidationFailedError {
	return &ValidationFailedError{Rule: rule, Message: message}
}

func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("%s: rule %s: %s", ErrValidationFailed, e.Rule, e.Message)
}

func (e *ValidationFailedError) Unwrap() error {
	return ErrValidationFailed
}

// ConfigurationError reports a malformed status or policy table. It is
// raised while the tables are built, never while serving a request.
type ConfigurationError struct {
	Subject string
	Cause   error
}

func NewConfigurationError(subject string) *ConfigurationError {
	return &ConfigurationError{Subject: subject}
}

func NewConfigurationErrorWithCause(subject string, cause error) *ConfigurationError {
	return &ConfigurationError{Subject: subject, Cause: cause}
}

func (e *ConfigurationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrConfiguration, e.Subject, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrConfiguration, e.Subject)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

// VersionConflictError is returned by a repository when the stored version
// of an aggregate moved past the one the caller loaded. Reload and retry.
type VersionConflictError struct {
	Aggregate string
	ID        any
	Expected  int64
}

func NewVersionConflictError(aggregate string, id any, expected int64) *VersionConflictError {
	return &VersionConflictError{Aggregate: aggregate, ID: id, Expected: expected}
}

func (e *VersionConflictError) Error() string {
	return fmt.Sprintf("%s: %s %s is no longer at version %d", ErrVersionConflict, e.Aggregate, e.ID, e.Expected)
}

func (e *VersionConflictError) Unwrap() error {
	return ErrVersionConflict
}
