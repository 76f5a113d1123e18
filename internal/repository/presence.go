package repository

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// PresenceRepository tracks which users hold a live connection to a chat.
// This is connection-scoped state, separate from the persisted roster.
type PresenceRepository interface {
	Join(ctx context.Context, chatID, userID uint) error
	Leave(ctx context.Context, chatID, userID uint) (int64, error)
	Online(ctx context.Context, chatID uint) ([]string, error)
}

type presenceRepository struct {
	rdb *redis.Client
}

func NewPresenceRepository(rdb *redis.Client) PresenceRepository {
	return &presenceRepository{rdb: rdb}
}

func presenceKey(chatID uint) string {
	return fmt.Sprintf("chat:%d:users_online", chatID)
}

func (r *presenceRepository) Join(ctx context.Context, chatID, userID uint) error {
	return r.rdb.SAdd(ctx, presenceKey(chatID), userID).Err()
}

// Leave removes the user from the chat's online set and returns how many
// users are still connected.
func (r *presenceRepository) Leave(ctx context.Context, chatID, userID uint) (int64, error) {
	key := presenceKey(chatID)
	if err := r.rdb.SRem(ctx, key, userID).Err(); err != nil {
		return 0, err
	}
	return r.rdb.SCard(ctx, key).Result()
}

func (r *presenceRepository) Online(ctx context.Context, chatID uint) ([]string, error) {
	return r.rdb.SMembers(ctx, presenceKey(chatID)).Result()
}
