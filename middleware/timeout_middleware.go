package middleware

import (
	"context"
	"errors"
	"time"
)

// errTimedOut is returned in Result.Err when the wrapped handler doesn't
// complete within the configured timeout.
var errTimedOut = errors.New("middleware: dispatch timed out")

// TimeOutMiddleware enforces a maximum duration for handling a single
// packet. If the handler doesn't complete within the timeout, it returns
// an error immediately.
//
// Implementation:
//  1. Create a context with timeout (ctx.Done() fires when timeout expires)
//  2. Run the next handler in a goroutine, sending its result to a channel
//  3. Select between the result channel and ctx.Done()
//
// Note: the handler goroutine is NOT cancelled — it continues running in
// the background. The timeout only controls when the caller gives up
// waiting. For true cancellation, the handler must check ctx.Done()
// internally.
func TimeOutMiddleware(timeout time.Duration) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, req *Request) *Result {
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			done := make(chan *Result, 1) // buffered: prevent goroutine leak if timeout fires
			go func() {
				done <- next(ctx, req)
			}()

			select {
			case res := <-done:
				return res
			case <-ctx.Done():
				return &Result{Disconnect: true, Err: errTimedOut}
			}
		}
	}
}
