// Copyright (c) Microsoft. All rights reserved.

package llm

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// RateLimitMiddleware returns a [ChatMiddleware] that waits on limiter before
// every model call. A nil limiter disables pacing.
func RateLimitMiddleware(limiter *rate.Limiter) ChatMiddleware {
	return func(next ChatHandler) ChatHandler {
		if limiter == nil {
			return next
		}
		return func(ctx context.Context, messages []Message, opts *ChatOptions) (*ChatResponse, error) {
			if err := limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("%w: rate limiter: %w", ErrMiddleware, err)
			}
			return next(ctx, messages, opts)
		}
	}
}

// NewLimiter returns a limiter allowing perSecond requests with a burst of one.
// A perSecond of zero or less returns nil, which disables pacing.
func NewLimiter(perSecond float64) *rate.Limiter {
	if perSecond <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(perSecond), 1)
}
