package server

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"net"
	"sync/atomic"
	"time"

	"mcproto/buf"
	"mcproto/catalogue"
	"mcproto/middleware"
	"mcproto/packets"
	"mcproto/protoerr"
	"mcproto/protocol"
)

// Reactor owns a disjoint set of connections and drives every one of them
// through a single-threaded read -> frame -> dispatch -> write tick. Go
// exposes no true non-blocking socket mode, so each phase uses a
// near-immediate SetReadDeadline/SetWriteDeadline so a would-block condition
// surfaces as a net.Error with Timeout() true, without an OS-specific
// syscall layer.
//
// There is no per-packet parallelism within a connection — every
// connection in a shard is serviced in the same goroutine, tick by tick,
// which is what lets Connection carry no locks.
type Reactor struct {
	id       int
	cfg      Config
	business middleware.HandlerFunc // core business handler; wrapped fresh per connection by newHandlerChain

	incoming chan net.Conn
	conns    map[int]*Connection
	nextID   int
	scratch  []byte

	// active is the shared online-connection counter owned by the Pool
	// (see Pool.OnlineCount); every Reactor increments/decrements the same
	// counter so the business handler's StatusResponse reflects the whole
	// Pool, not just this shard.
	active *int64

	stop chan struct{}
	done chan struct{}
}

func newReactor(id int, cfg Config, business middleware.HandlerFunc, active *int64) *Reactor {
	return &Reactor{
		id:       id,
		cfg:      cfg,
		business: business,
		incoming: make(chan net.Conn, 64),
		conns:    make(map[int]*Connection),
		scratch:  make([]byte, 4096),
		active:   active,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// assign hands conn to this shard. Called from Pool's accept loop, a
// different goroutine than run's — incoming is the only field Reactor
// shares across goroutines, and it's a channel, so no lock is needed.
func (r *Reactor) assign(conn net.Conn) {
	select {
	case r.incoming <- conn:
	default:
		// Backlog full: drop rather than block the shared accept loop.
		conn.Close()
	}
}

// run is the shard's single goroutine: accept newly assigned connections
// and tick the whole set on cfg.TickInterval. Pool.OnlineCount reads the
// shared active counter rather than len(r.conns), since the map itself is
// never touched outside this goroutine.
func (r *Reactor) run() {
	defer close(r.done)
	ticker := time.NewTicker(r.cfg.TickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-r.stop:
			for _, c := range r.conns {
				c.conn.Close()
				atomic.AddInt64(r.active, -1)
			}
			return
		case conn := <-r.incoming:
			r.nextID++
			handler := newHandlerChain(r.cfg, r.business)
			r.conns[r.nextID] = newConnection(r.nextID, conn, handler)
			atomic.AddInt64(r.active, 1)
		case <-ticker.C:
			r.tick()
		}
	}
}

func (r *Reactor) tick() {
	for id, c := range r.conns {
		if err := r.pumpRead(c); err != nil {
			r.drop(id, c, err)
			continue
		}
		if err := r.drainFrames(c); err != nil {
			r.drop(id, c, err)
			continue
		}
		if err := r.pumpWrite(c); err != nil {
			r.drop(id, c, err)
			continue
		}
		if c.pendingClose && len(c.outgoing) == 0 {
			r.drop(id, c, nil)
		}
	}
}

// pumpRead drains whatever is currently available on the socket without
// blocking the tick for more than a millisecond. A deadline one millisecond
// ahead makes Read return almost immediately, either with buffered data or a
// timeout error that means "nothing ready yet" — the WouldBlock-equivalent
// this model runs on. (A deadline of time.Now() itself would already have
// passed, and Go then reports the timeout without reading at all.)
func (r *Reactor) pumpRead(c *Connection) error {
	c.conn.SetReadDeadline(time.Now().Add(time.Millisecond))
	n, err := c.conn.Read(r.scratch)
	if n > 0 {
		c.incoming = append(c.incoming, r.scratch[:n]...)
	}
	if err != nil {
		var ne net.Error
		if errors.As(err, &ne) && ne.Timeout() {
			return nil
		}
		return err
	}
	return nil
}

// drainFrames extracts and dispatches every complete frame currently
// buffered in c.incoming, stopping at the first incomplete frame or once
// the business handler has asked to disconnect.
func (r *Reactor) drainFrames(c *Connection) error {
	for !c.pendingClose {
		length, prefixLen, err := protocol.PeekFrameLength(c.incoming)
		if err != nil {
			if errors.Is(err, protocol.ErrIncomplete) {
				return nil
			}
			return err
		}
		total := prefixLen + length
		if len(c.incoming) < total {
			return nil
		}
		if length == 0 {
			return protoerr.ErrEmptyFrame
		}
		if err := r.dispatchFrame(c, c.incoming[prefixLen:total]); err != nil {
			return err
		}
		c.incoming = c.incoming[total:]
	}
	return nil
}

func (r *Reactor) dispatchFrame(c *Connection, frame []byte) error {
	body := bytes.NewReader(frame)
	pkt, err := catalogue.Decode(body, packets.Serverbound, c.state, buf.ReadVarInt32)
	if err != nil {
		return err
	}
	if body.Len() != 0 {
		return protoerr.ErrTrailingBytesInFrame
	}

	req := &middleware.Request{RemoteAddr: c.remoteAddr, State: c.state, Packet: pkt}
	res := c.handler(context.Background(), req)

	for _, reply := range res.Replies {
		if err := c.send(reply); err != nil {
			return err
		}
	}
	if res.NextState != nil {
		c.state = *res.NextState
	}
	if res.Disconnect {
		c.pendingClose = true
	}
	if res.Err != nil {
		log.Printf("shard %d: %s: %v", r.id, c.remoteAddr, res.Err)
		if !res.Disconnect {
			return res.Err
		}
	}
	return nil
}

// pumpWrite flushes as much of c.outgoing as the socket accepts right now.
func (r *Reactor) pumpWrite(c *Connection) error {
	if len(c.outgoing) == 0 {
		return nil
	}
	c.conn.SetWriteDeadline(time.Now().Add(r.cfg.TickInterval))
	n, err := c.conn.Write(c.outgoing)
	c.outgoing = c.outgoing[n:]
	if err != nil {
		var ne net.Error
		if errors.As(err, &ne) && ne.Timeout() {
			return nil
		}
		return err
	}
	return nil
}

func (r *Reactor) drop(id int, c *Connection, err error) {
	if err != nil && !errors.Is(err, io.EOF) {
		log.Printf("shard %d: connection %s closed: %v", r.id, c.remoteAddr, err)
	}
	c.conn.Close()
	delete(r.conns, id)
	atomic.AddInt64(r.active, -1)
}

func (r *Reactor) close() {
	close(r.stop)
	<-r.done
}
