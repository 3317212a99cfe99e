// Package ratelimit implements fixed-window request limiting keyed by caller.
package ratelimit

import (
	"context"
)

// RateLimiter decides whether a caller identified by key may proceed
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Close() error
}

// NoOpRateLimiter always allows requests (for testing or disabled rate limiting)
type NoOpRateLimiter struct{}

func (n *NoOpRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	return true, nil
}

func (n *NoOpRateLimiter) Close() error {
	return nil
}
