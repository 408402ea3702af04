package redisstream_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"marketplace/internal/adapters/out/redisstream"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStream struct {
	added  []*goredis.XAddArgs
	failAt int
}

func (f *fakeStream) XAdd(_ context.Context, a *goredis.XAddArgs) *goredis.StringCmd {
	if f.failAt > 0 && len(f.added)+1 == f.failAt {
		return goredis.NewStringResult("", errors.New("connection refused"))
	}
	f.added = append(f.added, a)
	return goredis.NewStringResult("1-0", nil)
}

func message(eventType string) ports.OutboxMessage {
	return ports.OutboxMessage{
		ID:            kernel.NewUUID(),
		EventType:     eventType,
		AggregateType: "Opportunity",
		AggregateID:   kernel.NewUUID(),
		OccurredAt:    time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC),
		Payload:       map[string]any{"reason": "budget cut"},
	}
}

func TestPublisher_Publish_AddsEntriesInOrder(t *testing.T) {
	stream := &fakeStream{}
	publisher, err := redisstream.NewPublisher(stream, "events", 1000)
	require.NoError(t, err)
	first, second := message("Published"), message("Cancelled")

	err = publisher.Publish(context.Background(), []ports.OutboxMessage{first, second})

	require.NoError(t, err)
	require.Len(t, stream.added, 2)
	entry := stream.added[0]
	assert.Equal(t, "events", entry.Stream)
	assert.Equal(t, int64(1000), entry.MaxLen)
	assert.True(t, entry.Approx)

	values, ok := entry.Values.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, first.ID.String(), values["id"])
	assert.Equal(t, "Published", values["type"])
	assert.Equal(t, first.AggregateID.String(), values["aggregate_id"])
	assert.Equal(t, "2026-05-04T12:00:00Z", values["occurred_at"])
	assert.JSONEq(t, `{"reason":"budget cut"}`, values["payload"].(string))

	secondValues, ok := stream.added[1].Values.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, second.ID.String(), secondValues["id"])
	assert.Equal(t, "Cancelled", secondValues["type"])
}

func TestPublisher_Publish_StopsAtFirstFailure(t *testing.T) {
	stream := &fakeStream{failAt: 2}
	publisher, err := redisstream.NewPublisher(stream, "events", 0)
	require.NoError(t, err)
	failing := message("Cancelled")

	err = publisher.Publish(context.Background(),
		[]ports.OutboxMessage{message("Published"), failing, message("Expired")})

	require.Error(t, err)
	assert.Contains(t, err.Error(), failing.ID.String())
	assert.Len(t, stream.added, 1)
	assert.Zero(t, stream.added[0].MaxLen)
	assert.False(t, stream.added[0].Approx)
}

func TestNewPublisher(t *testing.T) {
	_, err := redisstream.NewPublisher(nil, "events", 0)
	require.Error(t, err)

	stream := &fakeStream{}
	publisher, err := redisstream.NewPublisher(stream, "  ", 0)
	require.NoError(t, err)
	require.NoError(t, publisher.Publish(context.Background(), []ports.OutboxMessage{message("Published")}))
	assert.Equal(t, redisstream.DefaultStream, stream.added[0].Stream)
}

func TestNewClient_RequiresAddress(t *testing.T) {
	_, err := redisstream.NewClient(context.Background(), "")
	require.Error(t, err)
}
