package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/redis/go-redis/v9"
)

const userCacheKeyPrefix = "authkeeper:user:"

// NewRedisClient connects to Redis and verifies the connection with PING.
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// cachedUser is the Redis representation of a user. Credentials are not
// cached, so users returned from the cache carry no PasswordHash or
// BiometricKey.
type cachedUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CachedRepository is a read-through cache for GetUserByID in front of
// another Repository. Every other call goes straight to the wrapped store;
// UpdateBiometricKey evicts the cached entry. Redis failures are logged and
// the wrapped store is used instead.
type CachedRepository struct {
	Repository
	client *redis.Client
	ttl    time.Duration
	log    logging.Logger
}

func NewCachedRepository(next Repository, client *redis.Client, ttl time.Duration, log logging.Logger) *CachedRepository {
	return &CachedRepository{
		Repository: next,
		client:     client,
		ttl:        ttl,
		log:        log.With("module", "user_cache"),
	}
}

func (r *CachedRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	key := userCacheKeyPrefix + id

	payload, err := r.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cu cachedUser
		if err := json.Unmarshal(payload, &cu); err == nil {
			return &models.User{ID: cu.ID, Email: cu.Email, CreatedAt: cu.CreatedAt, UpdatedAt: cu.UpdatedAt}, nil
		}
		r.log.Warn(ctx, "dropping undecodable cache entry", "key", key)
	case !errors.Is(err, redis.Nil):
		r.log.Warn(ctx, "cache read failed", "error", err)
	}

	user, err := r.Repository.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(cachedUser{ID: user.ID, Email: user.Email, CreatedAt: user.CreatedAt, UpdatedAt: user.UpdatedAt})
	if err == nil {
		err = r.client.Set(ctx, key, raw, r.ttl).Err()
	}
	if err != nil {
		r.log.Warn(ctx, "cache write failed", "error", err)
	}
	return user, nil
}

func (r *CachedRepository) UpdateBiometricKey(ctx context.Context, userID, key string) (*models.User, error) {
	user, err := r.Repository.UpdateBiometricKey(ctx, userID, key)
	if err != nil {
		return nil, err
	}
	if err := r.client.Del(ctx, userCacheKeyPrefix+userID).Err(); err != nil {
		r.log.Warn(ctx, "cache eviction failed", "error", err)
	}
	return user, nil
}
