package repository

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// PresenceRepo keeps the live device registry in redis so that any gateway
// instance sees the same picture: one hash per user, one field per client id.
// Absence of the hash means the user is offline.
type PresenceRepo struct {
	redis *redis.Client
}

func NewPresenceRepo(redis *redis.Client) *PresenceRepo {
	return &PresenceRepo{
		redis: redis,
	}
}

func presenceKey(userID int) string {
	return fmt.Sprintf("presence:%d", userID)
}

func (pr *PresenceRepo) Register(ctx context.Context, userID int, clientID, handle string) error {
	return pr.redis.HSet(ctx, presenceKey(userID), clientID, handle).Err()
}

func (pr *PresenceRepo) Unregister(ctx context.Context, userID int, clientID string) error {
	return pr.redis.HDel(ctx, presenceKey(userID), clientID).Err()
}

func (pr *PresenceRepo) ActiveHandles(ctx context.Context, userID int) ([]string, error) {
	handles, err := pr.redis.HVals(ctx, presenceKey(userID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	return handles, err
}
