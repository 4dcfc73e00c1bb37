package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/user/catalog-crawler/pkg/utils"
)

const seenNamePrefix = "seen:"

// SeenCacheRepoImpl provides a concrete implementation for the SeenCacheRepository interface using Redis.
type SeenCacheRepoImpl struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSeenCacheRepo creates a new instance of SeenCacheRepoImpl.
func NewSeenCacheRepo(client *redis.Client, ttl time.Duration) *SeenCacheRepoImpl {
	return &SeenCacheRepoImpl{client: client, ttl: ttl}
}

// generateKey creates a consistent Redis key for a given name by hashing it.
func (r *SeenCacheRepoImpl) generateKey(name string) string {
	return fmt.Sprintf("%s%s", seenNamePrefix, utils.HashKey(name))
}

// FilterUnseen returns the names whose keys are absent from Redis, in the
// order they were given.
func (r *SeenCacheRepoImpl) FilterUnseen(ctx context.Context, names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}

	pipe := r.client.Pipeline()
	cmds := make([]*redis.IntCmd, len(names))
	for i, name := range names {
		cmds[i] = pipe.Exists(ctx, r.generateKey(name))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	unseen := make([]string, 0, len(names))
	for i, cmd := range cmds {
		if cmd.Val() == 0 {
			unseen = append(unseen, names[i])
		}
	}
	return unseen, nil
}

// MarkSeen records every name with the configured expiry.
func (r *SeenCacheRepoImpl) MarkSeen(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}

	pipe := r.client.Pipeline()
	for _, name := range names {
		// SETEX is atomic and sets the key with an expiry.
		pipe.SetEx(ctx, r.generateKey(name), "1", r.ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}
