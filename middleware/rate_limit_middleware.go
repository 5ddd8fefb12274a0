package middleware

import (
	"context"
	"errors"

	"golang.org/x/time/rate"
)

// errRateLimited is returned in Result.Err when a connection exceeds its
// allotted packet rate.
var errRateLimited = errors.New("middleware: rate limit exceeded")

// RateLimitMiddleware creates a rate limiter using the token bucket algorithm.
//
// Token bucket: tokens are added at rate r per second, up to a burst size.
// Each packet dispatched through the wrapped handler consumes one token; if
// the bucket is empty the connection is disconnected rather than processed.
//
// CRITICAL: the limiter is created in the OUTER closure (once per middleware
// instance), NOT in the inner handler function. mcproto/server constructs a
// fresh RateLimitMiddleware per accepted connection, so each connection gets
// its own bucket — creating the limiter per-dispatch instead would hand out
// a fresh full bucket on every packet, defeating rate limiting entirely.
//
// A Minecraft server-list ping sends exactly one StatusRequest and one
// PingRequest per connection; this bounds a client that floods either.
func RateLimitMiddleware(r float64, burst int) Middleware {
	limiter := rate.NewLimiter(rate.Limit(r), burst)
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, req *Request) *Result {
			if !limiter.Allow() {
				return &Result{Disconnect: true, Err: errRateLimited}
			}
			return next(ctx, req)
		}
	}
}
