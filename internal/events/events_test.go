package events

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_CarriesActor(t *testing.T) {
	ctx := WithActor(context.Background(), "admin")

	e := New(ctx, TypeCreated, EntityJob, "9", "Site Engineer")

	assert.NotEmpty(t, e.ID)
	assert.Equal(t, "admin", e.Actor)
	assert.Equal(t, "9", e.EntityID)
	assert.WithinDuration(t, time.Now(), e.Timestamp, time.Second)
}

func TestActorFrom_Empty(t *testing.T) {
	assert.Equal(t, "", ActorFrom(context.Background()))
}

func TestMulti_SkipsNilAndKeepsOrder(t *testing.T) {
	var got []string
	first := SinkFunc(func(_ context.Context, e Event) { got = append(got, "first:"+e.Label) })
	second := SinkFunc(func(_ context.Context, e Event) { got = append(got, "second:"+e.Label) })

	sink := Multi(first, nil, second)
	sink.Record(context.Background(), Event{Label: "x"})

	assert.Equal(t, []string{"first:x", "second:x"}, got)
}

func TestLogSink_Levels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	sink := NewLogSink(zap.New(core))
	ctx := WithActor(context.Background(), "admin")

	sink.Record(ctx, New(ctx, TypeUpdated, EntityProperty, "4", "ORCHID POORVA"))
	sink.Record(ctx, New(ctx, TypeAuthFailed, EntityRequest, "", ""))
	sink.Record(ctx, New(ctx, TypeInternalError, EntityRequest, "", ""))

	entries := logs.All()
	require.Len(t, entries, 3)

	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "updated", entries[0].Message)
	assert.Equal(t, "ORCHID POORVA", entries[0].ContextMap()["label"])
	assert.Equal(t, "4", entries[0].ContextMap()["entity_id"])
	assert.Equal(t, "admin", entries[0].ContextMap()["actor"])

	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
}

func TestHub_PublishAndCancel(t *testing.T) {
	hub := NewHub()
	a, cancelA := hub.Subscribe()
	b, cancelB := hub.Subscribe()
	defer cancelB()

	assert.Equal(t, 2, hub.Count())
	assert.Equal(t, 2, hub.Publish(Event{ID: "1"}))

	assert.Equal(t, "1", (<-a).ID)
	assert.Equal(t, "1", (<-b).ID)

	cancelA()
	cancelA()
	_, open := <-a
	assert.False(t, open)
	assert.Equal(t, 1, hub.Count())
}

func TestHub_SlowSubscriberDoesNotBlock(t *testing.T) {
	hub := NewHub()
	_, cancel := hub.Subscribe()
	defer cancel()

	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriberBuffer*3; i++ {
			hub.Publish(Event{})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a full subscriber")
	}
}

func TestHub_Close(t *testing.T) {
	hub := NewHub()
	ch, cancel := hub.Subscribe()

	hub.Close()
	_, open := <-ch
	assert.False(t, open)
	cancel()

	late, _ := hub.Subscribe()
	_, open = <-late
	assert.False(t, open, "subscribing after Close yields a closed channel")
}

func setupTestBroker(t *testing.T) (*RedisBroker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisBroker(client, zap.NewNop()), mr
}

func TestRedisBroker_RoundTrip(t *testing.T) {
	broker, _ := setupTestBroker(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := broker.Listen(ctx)
	require.NoError(t, err)

	sent := New(WithActor(ctx, "admin"), TypeDeleted, EntityJob, "3", "Accountant")
	broker.Record(ctx, sent)

	select {
	case got := <-ch:
		assert.Equal(t, sent.ID, got.ID)
		assert.Equal(t, TypeDeleted, got.Type)
		assert.Equal(t, "admin", got.Actor)
		assert.True(t, sent.Timestamp.Equal(got.Timestamp))
	case <-time.After(2 * time.Second):
		t.Fatal("event not delivered")
	}

	cancel()
	assert.Eventually(t, func() bool {
		_, open := <-ch
		return !open
	}, 2*time.Second, 10*time.Millisecond)
}

func TestRedisBroker_RelayIntoHub(t *testing.T) {
	broker, _ := setupTestBroker(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub()
	sub, unsubscribe := hub.Subscribe()
	defer unsubscribe()

	require.NoError(t, broker.Relay(ctx, hub))
	require.NoError(t, broker.Publish(ctx, Event{ID: "relayed", Type: TypeUploaded}))

	select {
	case got := <-sub:
		assert.Equal(t, "relayed", got.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("event not relayed")
	}
}

func TestRedisBroker_ListenFailsWhenServerDown(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	broker := NewRedisBroker(client, zap.NewNop())
	mr.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err = broker.Listen(ctx)
	assert.Error(t, err)
}
