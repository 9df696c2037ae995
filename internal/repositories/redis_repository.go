package repository

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/aaravmahajanofficial/ideal-decor-store/internal/api/middleware"
	"github.com/aaravmahajanofficial/ideal-decor-store/internal/config"
	"github.com/redis/go-redis/v9"
)

type RateLimitRepository interface {
	// CheckLoginRateLimit records an attempt and reports whether it is allowed,
	// the attempts left and the seconds to wait when blocked.
	CheckLoginRateLimit(ctx context.Context, username string) (bool, int, int, error)
	ResetLoginAttempts(ctx context.Context, username string) error
	// CheckVerificationRateLimit applies the same window to e-mail
	// verification attempts, keyed by address.
	CheckVerificationRateLimit(ctx context.Context, email string) (bool, int, int, error)
	ResetVerificationAttempts(ctx context.Context, email string) error
}

type redisRepository struct {
	client *redis.Client
	cfg    *config.RateConfig
	now    func() time.Time
}

func NewRedisClient(ctx context.Context, cfg *config.RedisConnect) (*redis.Client, error) {

	slog.Info("Connecting to Redis", slog.String("host", cfg.Host), slog.String("port", cfg.Port), slog.Int("db", cfg.DB))

	opt, err := redis.ParseURL(cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, DefaultPingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	slog.Info("✅ Successfully connected to Redis")

	return client, nil
}

func NewRateLimitRepo(client *redis.Client, cfg *config.RateConfig) RateLimitRepository {
	return &redisRepository{client: client, cfg: cfg, now: time.Now}
}

func loginAttemptsKey(username string) string {
	return fmt.Sprintf("login_attempts:%s", username)
}

func verifyAttemptsKey(email string) string {
	return fmt.Sprintf("verify_attempts:%s", email)
}

func (r *redisRepository) CheckLoginRateLimit(ctx context.Context, username string) (bool, int, int, error) {
	return r.checkRateLimit(ctx, loginAttemptsKey(username), slog.String("username", username))
}

func (r *redisRepository) CheckVerificationRateLimit(ctx context.Context, email string) (bool, int, int, error) {
	return r.checkRateLimit(ctx, verifyAttemptsKey(email), slog.String("email", email))
}

// Sliding window over a sorted set scored by attempt time.
func (r *redisRepository) checkRateLimit(ctx context.Context, key string, subject slog.Attr) (bool, int, int, error) {

	logger := middleware.LoggerFromContext(ctx)

	at := r.now()
	now := at.Unix()
	window := int64(r.cfg.WindowSize.Seconds())
	windowStart := now - window

	pipe := r.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart, 10))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now), Member: at.UnixNano()})
	count := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, r.cfg.WindowSize)

	if _, err := pipe.Exec(ctx); err != nil {
		logger.Error("Redis pipeline execution failed for rate limit", slog.String("key", key), slog.Any("error", err))
		return false, 0, 0, fmt.Errorf("redis pipeline error for rate limit check: %w", err)
	}

	attempts := count.Val()

	if attempts > r.cfg.MaxAttempts {
		scores, err := r.client.ZRangeArgsWithScores(ctx, redis.ZRangeArgs{Key: key, Start: 0, Stop: 0}).Result()
		if err == nil && len(scores) == 0 {
			err = redis.Nil
		}

		if err != nil {
			return false, 0, int(window), fmt.Errorf("failed to get oldest attempt time: %w", err)
		}

		retryAfter := max(int64(scores[0].Score)+window-now, 0)

		logger.Warn("Rate limit exceeded", subject, slog.Int64("attempts", attempts))

		return false, 0, int(retryAfter), nil
	}

	return true, int(r.cfg.MaxAttempts - attempts), 0, nil
}

func (r *redisRepository) ResetLoginAttempts(ctx context.Context, username string) error {
	if err := r.client.Del(ctx, loginAttemptsKey(username)).Err(); err != nil {
		return fmt.Errorf("failed to reset login attempts: %w", err)
	}

	return nil
}

func (r *redisRepository) ResetVerificationAttempts(ctx context.Context, email string) error {
	if err := r.client.Del(ctx, verifyAttemptsKey(email)).Err(); err != nil {
		return fmt.Errorf("failed to reset verification attempts: %w", err)
	}

	return nil
}
