package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const DefaultChannel = "orchid:events"

// RedisBroker relays events through Redis pub/sub so every API instance
// sees the mutations made on the others.
type RedisBroker struct {
	client  *redis.Client
	channel string
	log     *zap.Logger
}

func NewRedisBroker(client *redis.Client, log *zap.Logger) *RedisBroker {
	return &RedisBroker{client: client, channel: DefaultChannel, log: log}
}

// Record publishes e. Failures are logged, not returned: the feed is best effort.
func (b *RedisBroker) Record(ctx context.Context, e Event) {
	if err := b.Publish(ctx, e); err != nil {
		b.log.Warn("Failed to publish event", zap.String("event_id", e.ID), zap.Error(err))
	}
}

func (b *RedisBroker) Publish(ctx context.Context, e Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return b.client.Publish(context.WithoutCancel(ctx), b.channel, data).Err()
}

// Listen subscribes to the channel and forwards decoded events until ctx is
// cancelled. It returns once the subscription is confirmed by the server.
func (b *RedisBroker) Listen(ctx context.Context) (<-chan Event, error) {
	pubsub := b.client.Subscribe(ctx, b.channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("subscribe %s: %w", b.channel, err)
	}

	out := make(chan Event, subscriberBuffer)

	go func() {
		defer close(out)
		defer pubsub.Close()

		msgs := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var e Event
				if err := json.Unmarshal([]byte(msg.Payload), &e); err != nil {
					b.log.Warn("Dropping malformed event", zap.Error(err))
					continue
				}
				select {
				case out <- e:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

// Relay forwards everything Listen yields into hub until ctx ends.
func (b *RedisBroker) Relay(ctx context.Context, hub *Hub) error {
	ch, err := b.Listen(ctx)
	if err != nil {
		return err
	}
	go func() {
		for e := range ch {
			hub.Publish(e)
		}
	}()
	return nil
}
