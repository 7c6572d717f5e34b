package store

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOTPStore keeps one-time codes in Redis under otp:<type>:<email>
// keys. Expiry is handled by the key TTL; no sweeper is needed.
type RedisOTPStore struct {
	client *redis.Client
}

func NewRedisOTPStore(client *redis.Client) *RedisOTPStore {
	return &RedisOTPStore{client: client}
}

func otpKey(email, otpType string) string {
	return "otp:" + otpType + ":" + email
}

func (s *RedisOTPStore) Set(ctx context.Context, email, otpType, code string, ttl time.Duration) error {
	return s.client.Set(ctx, otpKey(email, otpType), code, ttl).Err()
}

func (s *RedisOTPStore) Get(ctx context.Context, email, otpType string) (string, error) {
	code, err := s.client.Get(ctx, otpKey(email, otpType)).Result()
	if err == redis.Nil {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return code, nil
}

func (s *RedisOTPStore) Delete(ctx context.Context, email, otpType string) error {
	return s.client.Del(ctx, otpKey(email, otpType)).Err()
}
