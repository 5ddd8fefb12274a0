package middleware

import (
	"context"
	"log"
	"time"
)

// LoggingMiddleware records the packet id, connection state, and duration
// of every dispatch, and any resulting error.
//
// Example output:
//
//	state=Status id=0x0 addr=127.0.0.1:51324 duration=42µs
func LoggingMiddleware() Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, req *Request) *Result {
			start := time.Now()

			res := next(ctx, req)

			duration := time.Since(start)
			meta := req.Packet.Meta()
			log.Printf("state=%s id=%#x addr=%s duration=%s", req.State, meta.ID, req.RemoteAddr, duration)
			if res.Err != nil {
				log.Printf("addr=%s error=%s", req.RemoteAddr, res.Err)
			}
			return res
		}
	}
}
