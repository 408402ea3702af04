package commands

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/pkg/errs"

	"github.com/cenkalti/backoff/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultConflictRetries is how many times a command is re-run after a
// version conflict before the conflict is returned to the caller.
const DefaultConflictRetries = 3

const conflictInitialInterval = 10 * time.Millisecond

var tracer = otel.Tracer("marketplace/commands")

// retryOnConflict runs op until it succeeds, fails with anything other than
// a version conflict, or the retries are used up. op must reload the
// aggregate on every attempt.
func retryOnConflict(ctx context.Context, retries uint64, op func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = conflictInitialInterval

	return backoff.Retry(func() error {
		err := op()
		if err != nil && !errors.Is(err, errs.ErrVersionConflict) {
			return backoff.Permanent(err)
		}
		return err
	}, backoff.WithContext(backoff.WithMaxRetries(b, retries), ctx))
}

// startSpan opens a span for a command handler.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return tracer.Start(ctx, name)
}

// endSpan records err on span and ends it.
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
