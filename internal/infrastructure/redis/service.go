package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/deepgram/gemini-mcp/internal/config"
	"github.com/deepgram/gemini-mcp/pkg/logger"
	"github.com/redis/go-redis/v9"
)

type Service struct {
	client *redis.Client
}

// NewService returns nil when Redis is not configured or unreachable.
func NewService(ctx context.Context) *Service {
	logger.Info(logger.SERVICE, "Initialising Redis service")
	url := config.GetRedisURL()

	if url == "" {
		logger.Info(logger.SERVICE, "Redis service not configured - REDIS_URL missing")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     url,
		Password: config.GetRedisPassword(),
		DB:       0,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error(logger.REDIS, "Failed to establish Redis connection to %s: %v", url, err)
		_ = client.Close()
		return nil
	}

	return NewServiceWithClient(client)
}

func NewServiceWithClient(client *redis.Client) *Service {
	return &Service{client: client}
}

// Incr increments key and starts its expiry on the first hit.
func (s *Service) Incr(ctx context.Context, key string, expiration time.Duration) (int64, error) {
	logger.Debug(logger.REDIS, "Incrementing Redis key: %s", key)

	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("redis INCR %s: %w", key, err)
	}

	if count == 1 {
		if err := s.client.Expire(ctx, key, expiration).Err(); err != nil {
			return count, fmt.Errorf("redis EXPIRE %s: %w", key, err)
		}
	}

	return count, nil
}

// Ping checks if Redis is accessible
func (s *Service) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (s *Service) Close() error {
	logger.Debug(logger.REDIS, "Closing Redis connection")
	return s.client.Close()
}

// Limiter is a fixed-window rate limiter shared by every replica that points
// at the same Redis.
type Limiter struct {
	service *Service
	prefix  string
	window  time.Duration
	maxHits int
	now     func() time.Time
}

func NewLimiter(service *Service, prefix string, window time.Duration, maxHits int) *Limiter {
	return &Limiter{
		service: service,
		prefix:  prefix,
		window:  window,
		maxHits: maxHits,
		now:     time.Now,
	}
}

func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	if l.window <= 0 || l.maxHits <= 0 {
		return true, nil
	}

	bucket := l.now().UnixNano() / int64(l.window)
	redisKey := fmt.Sprintf("ratelimit:%s:%s:%d", l.prefix, key, bucket)

	count, err := l.service.Incr(ctx, redisKey, l.window)
	if err != nil {
		return false, err
	}

	return count <= int64(l.maxHits), nil
}
