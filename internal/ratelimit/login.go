package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/hynox/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const keyLoginAttempt = "auth:login:ip:%s"

// LoginLimiter throttles login attempts per client IP. A nil limiter allows
// everything.
type LoginLimiter struct {
	bucket *TokenBucket
	log    *zap.Logger
	rate   float64
	burst  int
}

type Decision struct {
	Allowed    bool
	RetryAfter time.Duration
}

func NewLoginLimiter(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) (*LoginLimiter, error) {
	limitCfg := cfg.RateLimit
	if !limitCfg.Enabled {
		return nil, nil
	}

	addr := strings.TrimSpace(limitCfg.RedisAddr)
	if addr == "" {
		return nil, errors.New("rate limit redis addr is required")
	}
	if limitCfg.LoginRate <= 0 || limitCfg.LoginBurst <= 0 {
		return nil, errors.New("login rate limit must be positive")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: strings.TrimSpace(limitCfg.RedisPassword),
		DB:       limitCfg.RedisDB,
	})
	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(context.Context) error {
				return client.Close()
			},
		})
	}

	return newLoginLimiter(NewTokenBucket(client), log, limitCfg.LoginRate, limitCfg.LoginBurst), nil
}

func newLoginLimiter(bucket *TokenBucket, log *zap.Logger, rate float64, burst int) *LoginLimiter {
	return &LoginLimiter{
		bucket: bucket,
		log:    log.Named("ratelimit.login"),
		rate:   rate,
		burst:  burst,
	}
}

func (l *LoginLimiter) Enabled() bool {
	return l != nil && l.bucket != nil
}

// Allow consumes one attempt for clientIP. Redis failures fail open.
func (l *LoginLimiter) Allow(ctx context.Context, clientIP string) Decision {
	if !l.Enabled() {
		return Decision{Allowed: true}
	}

	key := fmt.Sprintf(keyLoginAttempt, strings.TrimSpace(clientIP))
	res, err := l.bucket.Allow(ctx, key, l.rate, l.burst)
	if err != nil {
		l.log.Warn("login rate limit check failed, allowing attempt", zap.Error(err))
		return Decision{Allowed: true}
	}
	return Decision{Allowed: res.Allowed, RetryAfter: res.RetryAfter}
}
