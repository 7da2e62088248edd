package redis_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/poshakbd/storefront/internal/config"
	redisrepo "github.com/poshakbd/storefront/internal/repositories/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRateLimiterTest(t *testing.T) (*redisrepo.RateLimiter, redismock.ClientMock, *config.Config) {
	t.Helper()

	client, mock := redismock.NewClientMock()
	cfg := &config.Config{
		RateConfig: config.RateConfig{
			MaxAttempts: 5,
			WindowSize:  60 * time.Second,
		},
	}

	limiter := redisrepo.NewRateLimiter(client, cfg)
	require.NotNil(t, limiter)

	return limiter, mock, cfg
}

// timestamps inside the pipeline come from time.Now, so argument matching
// has to be loose
func anyArgs(expected, actual []interface{}) error {
	return nil
}

func TestCheckSignInRateLimit(t *testing.T) {
	ctx := t.Context()
	uid := "firebase-uid-1"
	key := fmt.Sprintf("signin_attempts:%s", uid)

	t.Run("Success - Under The Limit", func(t *testing.T) {
		// Arrange
		limiter, mock, cfg := setupRateLimiterTest(t)

		mock.CustomMatch(anyArgs).ExpectZRemRangeByScore(key, "0", "0").SetVal(0)
		mock.CustomMatch(anyArgs).ExpectZAdd(key).SetVal(1)
		mock.ExpectZCard(key).SetVal(1)
		mock.ExpectExpire(key, cfg.RateConfig.WindowSize).SetVal(true)

		// Act
		allowed, remaining, retryAfter, err := limiter.CheckSignInRateLimit(ctx, uid)

		// Assert
		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Equal(t, 4, remaining)
		assert.Zero(t, retryAfter)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Limit Reached", func(t *testing.T) {
		// Arrange
		limiter, mock, cfg := setupRateLimiterTest(t)
		oldest := time.Now().Add(-10 * time.Second).Unix()

		mock.CustomMatch(anyArgs).ExpectZRemRangeByScore(key, "0", "0").SetVal(0)
		mock.CustomMatch(anyArgs).ExpectZAdd(key).SetVal(1)
		mock.ExpectZCard(key).SetVal(5)
		mock.ExpectExpire(key, cfg.RateConfig.WindowSize).SetVal(true)
		mock.ExpectZRange(key, 0, 0).SetVal([]string{fmt.Sprintf("%d", oldest)})

		// Act
		allowed, remaining, retryAfter, err := limiter.CheckSignInRateLimit(ctx, uid)

		// Assert
		require.NoError(t, err)
		assert.False(t, allowed)
		assert.Zero(t, remaining)
		// the oldest attempt was ~10s ago in a 60s window
		assert.InDelta(t, 50, retryAfter, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		// Arrange
		limiter, mock, _ := setupRateLimiterTest(t)

		mock.CustomMatch(anyArgs).ExpectZRemRangeByScore(key, "0", "0").
			SetErr(fmt.Errorf("redis unreachable"))

		// Act
		allowed, _, _, err := limiter.CheckSignInRateLimit(ctx, uid)

		// Assert
		require.Error(t, err)
		assert.False(t, allowed)
	})
}
