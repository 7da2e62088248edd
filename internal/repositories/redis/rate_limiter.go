package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/poshakbd/storefront/internal/config"
	"github.com/redis/go-redis/v9"
)

// RateLimiter throttles identity-provider profile syncs per uid with a
// sliding window of timestamps in a redis ZSET.
type RateLimiter struct {
	client *redis.Client
	config *config.Config
}

func NewClient(cfg *config.Config) (*redis.Client, error) {

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host,
		Username: cfg.Redis.Username,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Test the connection to make sure redis is reachable
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

func NewRateLimiter(client *redis.Client, cfg *config.Config) *RateLimiter {
	return &RateLimiter{client: client, config: cfg}
}

// CheckSignInRateLimit returns isAllowed, attempts left, seconds to wait.
func (r *RateLimiter) CheckSignInRateLimit(ctx context.Context, uid string) (bool, int, int, error) {

	key := fmt.Sprintf("signin_attempts:%s", uid)

	now := time.Now().Unix()

	// Only attempts after this moment count toward the limit.
	windowStart := now - int64(r.config.RateConfig.WindowSize.Seconds())

	pipe := r.client.Pipeline()

	// drop entries that fell out of the window
	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", windowStart))

	// record the current attempt
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now), Member: now})

	count := pipe.ZCard(ctx, key)

	pipe.Expire(ctx, key, r.config.RateConfig.WindowSize)

	_, err := pipe.Exec(ctx)

	if err != nil {
		return false, 0, 0, err
	}

	attempts := count.Val()
	remaining := r.config.RateConfig.MaxAttempts - attempts

	if attempts >= r.config.RateConfig.MaxAttempts {
		oldest, err := r.client.ZRange(ctx, key, 0, 0).Result()
		if err != nil || len(oldest) == 0 {
			return false, 0, 0, err
		}

		oldestTime, err := strconv.ParseInt(oldest[0], 10, 64)
		if err != nil {
			return false, 0, 0, err
		}

		retryAfter := int64(r.config.RateConfig.WindowSize.Seconds()) - (now - oldestTime)

		return false, 0, int(retryAfter), nil
	}

	return true, int(remaining), 0, nil

}
