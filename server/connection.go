package server

import (
	"net"

	"mcproto/middleware"
	"mcproto/packets"
	"mcproto/protocol"
)

// Connection is one accepted TCP connection, owned by exactly one Reactor
// for its entire lifetime. Every read, frame extraction, dispatch, and
// write for a Connection happens on its owning Reactor's single goroutine
// during tick() — there is no cross-goroutine access to this struct, so it
// carries no locks at all.
type Connection struct {
	id         int
	conn       net.Conn
	remoteAddr string
	state      packets.State

	incoming []byte // bytes read but not yet consumed into full frames
	outgoing []byte // bytes encoded but not yet written to conn

	// handler is this connection's fully composed middleware chain,
	// built once at accept time so per-connection middleware (the status
	// rate limiter) gets its own state instead of being shared server-wide.
	handler middleware.HandlerFunc

	pendingClose bool // set once the business handler asks to disconnect
}

func newConnection(id int, conn net.Conn, handler middleware.HandlerFunc) *Connection {
	return &Connection{
		id:         id,
		conn:       conn,
		remoteAddr: conn.RemoteAddr().String(),
		state:      packets.Handshaking,
		handler:    handler,
	}
}

// send encodes a clientbound packet and queues it on the connection's
// pending write buffer; the owning Reactor flushes it on its next write
// phase.
func (c *Connection) send(p packets.Packet) error {
	frame, err := protocol.EncodeWritable(p.Meta().ID, p)
	if err != nil {
		return err
	}
	c.outgoing = append(c.outgoing, frame...)
	return nil
}
