package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/dharmasatrya/tripranker/internal/config"
	"github.com/dharmasatrya/tripranker/internal/logging"
	"github.com/dharmasatrya/tripranker/internal/models"
)

const keyPrefix = "preferences:"

// ProfileStore looks up saved preference profiles. A missing profile is not
// an error: found is false and the caller falls back to the defaults.
type ProfileStore interface {
	Get(ctx context.Context, userID string) (profile models.PreferenceProfile, found bool, err error)
	Close() error
}

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(cfg config.RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", cfg.Addr(), err)
	}

	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Get(ctx context.Context, userID string) (models.PreferenceProfile, bool, error) {
	data, err := s.client.Get(ctx, Key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.PreferenceProfile{}, false, nil
	}
	if err != nil {
		return models.PreferenceProfile{}, false, fmt.Errorf("get profile %q: %w", userID, err)
	}

	var profile models.PreferenceProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		logging.Warn().Err(err).Str("key", Key(userID)).Msg("stored profile is not valid JSON")
		return models.PreferenceProfile{}, false, fmt.Errorf("decode profile %q: %w", userID, err)
	}

	return profile, true, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Key is the Redis key holding a user's profile JSON.
func Key(userID string) string {
	return keyPrefix + userID
}

type NoOpStore struct{}

func NewNoOpStore() *NoOpStore {
	return &NoOpStore{}
}

func (s *NoOpStore) Get(ctx context.Context, userID string) (models.PreferenceProfile, bool, error) {
	return models.PreferenceProfile{}, false, nil
}

func (s *NoOpStore) Close() error {
	return nil
}
