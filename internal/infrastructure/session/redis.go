package session

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/cvds/identity-service/internal/core/ports"
)

const sessionKeyPrefix = "session:"

// RedisStore registers sessions as per-token Redis keys whose TTL matches the
// token expiry. Expiry is enforced by Redis itself, so CleanupSessions has
// nothing to sweep; the cron sweep still runs for the metrics/log line.
type RedisStore struct {
	client *redis.Client
	codec  ports.TokenCodec
	log    zerolog.Logger
}

// NewRedisStore wraps an established Redis client as a session store.
func NewRedisStore(client *redis.Client, codec ports.TokenCodec, log zerolog.Logger) *RedisStore {
	return &RedisStore{client: client, codec: codec, log: log}
}

func (s *RedisStore) HasSession(ctx context.Context, token string) bool {
	n, err := s.client.Exists(ctx, sessionKey(token)).Result()
	if err != nil {
		s.log.Error().Err(err).Msg("session lookup failed")
		return false
	}
	return n > 0
}

func (s *RedisStore) AddSession(ctx context.Context, token string) {
	ttl, err := s.sessionTTL(token)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to add session")
		return
	}
	if err := s.client.Set(ctx, sessionKey(token), "1", ttl).Err(); err != nil {
		s.log.Error().Err(err).Msg("failed to add session")
	}
}

func (s *RedisStore) PatchSession(ctx context.Context, oldToken, newToken string) {
	ttl, decodeErr := s.sessionTTL(newToken)

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, sessionKey(oldToken))
	if decodeErr == nil {
		pipe.Set(ctx, sessionKey(newToken), "1", ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		s.log.Error().Err(err).Msg("failed to patch session")
	}
	if decodeErr != nil {
		s.log.Error().Err(decodeErr).Msg("failed to patch session")
	}
}

func (s *RedisStore) RemoveSession(ctx context.Context, token string) {
	if err := s.client.Del(ctx, sessionKey(token)).Err(); err != nil {
		s.log.Error().Err(err).Msg("failed to remove session")
	}
}

func (s *RedisStore) CleanupSessions(ctx context.Context) int {
	n, err := s.client.DBSize(ctx).Result()
	if err != nil {
		s.log.Error().Err(err).Msg("session count failed")
		return 0
	}
	s.log.Info().Int64("remaining", n).Msg("session expiry delegated to redis TTLs")
	return 0
}

// sessionTTL converts the token expiry claim into a Redis TTL. Tokens that
// are already expired get a minimal TTL so the key dies immediately.
func (s *RedisStore) sessionTTL(token string) (time.Duration, error) {
	exp, err := s.codec.ExpiresAt(token)
	if err != nil {
		return 0, err
	}
	ttl := time.Until(exp)
	if ttl <= 0 {
		ttl = time.Millisecond
	}
	return ttl, nil
}

func sessionKey(token string) string {
	return sessionKeyPrefix + token
}
