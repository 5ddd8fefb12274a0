// Package middleware implements the onion-model handler chain that wraps
// every decoded inbound packet before it reaches the business handler in
// mcproto/server.
//
// Onion model execution order:
//
//	Chain(A, B, C)(handler)  →  A(B(C(handler)))
//
//	Request:   A.before → B.before → C.before → handler
//	Response:  handler → C.after → B.after → A.after
//
// Each middleware can:
//   - Do pre-processing (before calling next)
//   - Call next(ctx, req) to pass to the next layer
//   - Do post-processing (after next returns)
//   - Short-circuit by returning early without calling next (e.g., rate limiting)
package middleware

import (
	"context"

	"mcproto/packets"
)

// Request is one decoded inbound packet plus the connection context the
// business handler and any middleware need to act on it.
type Request struct {
	RemoteAddr string
	State      packets.State
	Packet     packets.Packet
}

// Result is the business handler's answer to a Request: the clientbound
// packets to send in reply (if any), an optional state transition (set only
// by Handshake), whether the connection should close once Replies have been
// flushed, and a non-nil Err for a connection-fatal failure.
type Result struct {
	Replies    []packets.Packet
	NextState  *packets.State
	Disconnect bool
	Err        error
}

// HandlerFunc is the function signature shared by the business handler and
// every middleware-wrapped handler.
type HandlerFunc func(ctx context.Context, req *Request) *Result

// Middleware takes a handler and returns a new handler that wraps it.
type Middleware func(next HandlerFunc) HandlerFunc

// Chain composes multiple middlewares into one. It wraps right to left so
// the first middleware in the list is the outermost layer (runs first on
// the way in, last on the way out).
func Chain(middlewares ...Middleware) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		for i := len(middlewares) - 1; i >= 0; i-- {
			next = middlewares[i](next)
		}
		return next
	}
}
