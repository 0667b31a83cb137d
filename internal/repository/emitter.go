package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const broadcastChannel = "events:broadcast"

// EmitterRepo routes outbound events between gateway instances over redis
// pub/sub: one channel per connection handle plus a shared broadcast channel.
type EmitterRepo struct {
	redis *redis.Client
}

func NewEmitterRepo(redis *redis.Client) *EmitterRepo {
	return &EmitterRepo{
		redis: redis,
	}
}

func handleChannel(handle string) string {
	return "events:" + handle
}

func (er *EmitterRepo) EmitTo(ctx context.Context, handle string, payload map[string]any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	return er.redis.Publish(ctx, handleChannel(handle), data).Err()
}

func (er *EmitterRepo) Broadcast(ctx context.Context, payload map[string]any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	return er.redis.Publish(ctx, broadcastChannel, data).Err()
}

// Subscribe opens the per-connection delivery stream: the connection's own
// channel plus cluster-wide broadcasts.
func (er *EmitterRepo) Subscribe(ctx context.Context, handle string) (<-chan *redis.Message, func() error) {
	pubSub := er.redis.Subscribe(ctx, handleChannel(handle), broadcastChannel)
	return pubSub.Channel(), pubSub.Close
}
