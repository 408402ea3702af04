// Package redisstream publishes outbox messages to a Redis stream with XADD.
// Every entry carries the outbox message ID so consumers can drop the
// duplicates that at-least-once relaying produces.
package redisstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/core/ports"

	goredis "github.com/redis/go-redis/v9"
)

const DefaultStream = "marketplace.events"

// StreamAdder is the part of the go-redis client the publisher needs.
type StreamAdder interface {
	XAdd(ctx context.Context, a *goredis.XAddArgs) *goredis.StringCmd
}

var _ ports.EventPublisher = (*Publisher)(nil)

type Publisher struct {
	client StreamAdder
	stream string
	maxLen int64
}

// NewPublisher writes to stream, trimming it to roughly maxLen entries
// when maxLen is positive.
func NewPublisher(client StreamAdder, stream string, maxLen int64) (*Publisher, error) {
	if client == nil {
		return nil, errors.New("redis client required")
	}
	stream = strings.TrimSpace(stream)
	if stream == "" {
		stream = DefaultStream
	}

	return &Publisher{client: client, stream: stream, maxLen: maxLen}, nil
}

// Publish appends the messages in order and stops at the first failure.
// Entries added before the failure stay in the stream and are published
// again on the next relay run.
func (p *Publisher) Publish(ctx context.Context, messages []ports.OutboxMessage) error {
	for _, msg := range messages {
		values, err := entryValues(msg)
		if err != nil {
			return err
		}

		args := &goredis.XAddArgs{
			Stream: p.stream,
			Values: values,
		}
		if p.maxLen > 0 {
			args.MaxLen = p.maxLen
			args.Approx = true
		}

		if err = p.client.XAdd(ctx, args).Err(); err != nil {
			return fmt.Errorf("xadd %s to %s: %w", msg.ID, p.stream, err)
		}
	}
	return nil
}

func entryValues(msg ports.OutboxMessage) (map[string]any, error) {
	payload, err := json.Marshal(msg.Payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload of %s: %w", msg.ID, err)
	}

	return map[string]any{
		"id":             msg.ID.String(),
		"type":           msg.EventType,
		"aggregate_type": msg.AggregateType,
		"aggregate_id":   msg.AggregateID.String(),
		"occurred_at":    msg.OccurredAt.UTC().Format(time.RFC3339Nano),
		"payload":        string(payload),
	}, nil
}

// NewClient connects to addr and pings it so a wrong address fails at
// startup rather than on the first relay run.
func NewClient(ctx context.Context, addr string) (*goredis.Client, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, errors.New("missing redis address")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return rdb, nil
}
