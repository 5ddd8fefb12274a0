package server

import (
	"context"
	"fmt"

	"mcproto/codec"
	"mcproto/message"
	"mcproto/middleware"
	"mcproto/packets"
	"mcproto/packets/handshaking"
	"mcproto/packets/login"
	"mcproto/packets/status"
)

// newHandlerChain builds the fully wrapped, per-connection handler: the
// business handler at the core, wrapped by rate limiting (applied to
// Status-state packets only), a dispatch timeout, and logging. A fresh
// chain (and so a fresh rate limiter) is built per connection, since rate
// limiting is connection-scoped rather than server-global.
func newHandlerChain(cfg Config, business middleware.HandlerFunc) middleware.HandlerFunc {
	limit := middleware.RateLimitMiddleware(cfg.StatusRateLimit, cfg.StatusRateBurst)
	statusOnly := func(next middleware.HandlerFunc) middleware.HandlerFunc {
		limited := limit(next)
		return func(ctx context.Context, req *middleware.Request) *middleware.Result {
			if req.State == packets.Status {
				return limited(ctx, req)
			}
			return next(ctx, req)
		}
	}
	chain := middleware.Chain(
		middleware.LoggingMiddleware(),
		statusOnly,
		middleware.TimeOutMiddleware(cfg.DispatchTimeout),
	)
	return chain(business)
}

// businessHandler answers the three routable states: Handshaking selects
// the next state, Status answers the server-list ping, and Login always
// disconnects with the configured reason rather than completing
// encryption.
type businessHandler struct {
	cfg  Config
	pool *Pool
}

func (h *businessHandler) handle(ctx context.Context, req *middleware.Request) *middleware.Result {
	switch p := req.Packet.(type) {
	case *handshaking.Handshake:
		next := p.NextState.State()
		return &middleware.Result{NextState: &next}

	case *status.StatusRequest:
		body, err := codec.Encode(h.statusResponse())
		if err != nil {
			return &middleware.Result{Err: err, Disconnect: true}
		}
		return &middleware.Result{
			Replies: []packets.Packet{&status.StatusResponse{Response: string(body)}},
		}

	case *status.PingRequest:
		return &middleware.Result{
			Replies:    []packets.Packet{&status.PingResponse{Payload: p.Payload}},
			Disconnect: true,
		}

	case *login.LoginStart:
		return &middleware.Result{
			Replies:    []packets.Packet{&login.Disconnect{Reason: h.cfg.DisconnectReason}},
			Disconnect: true,
		}

	case *login.EncryptionResponse:
		// The default handler never issues an EncryptionRequest, so this
		// arriving at all means a client is speaking out of turn.
		return &middleware.Result{
			Err:        fmt.Errorf("mcproto/server: unexpected EncryptionResponse in state %s", req.State),
			Disconnect: true,
		}

	default:
		return &middleware.Result{
			Err:        fmt.Errorf("mcproto/server: no handler for %T in state %s", req.Packet, req.State),
			Disconnect: true,
		}
	}
}

func (h *businessHandler) statusResponse() message.StatusResponse {
	return message.StatusResponse{
		Version: message.StatusVersion{
			Name:     "mcproto 1.7.2",
			Protocol: h.cfg.ProtocolVersion,
		},
		Players: message.StatusPlayers{
			Max:    h.cfg.MaxPlayers,
			Online: h.pool.OnlineCount(),
		},
		Description: message.ChatComponent{Text: h.cfg.MOTD},
	}
}
