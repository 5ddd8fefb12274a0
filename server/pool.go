// Package server implements the connection state machine's frame pump:
// a sharded, non-blocking accept/read/dispatch/write reactor. Connections
// are sharded, never packets within a connection, so per-connection state
// stays single-threaded.
package server

import (
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
	"mcproto/loadbalance"
	"mcproto/registry"
)

// Pool owns the shared net.Listener and the N independent Reactor shards a
// freshly accepted connection is routed across via a loadbalance.ShardPicker.
type Pool struct {
	cfg      Config
	listener net.Listener
	reactors []*Reactor
	picker   loadbalance.ShardPicker

	// acceptLimiter throttles how fast new connections are admitted
	// across the whole Pool; nil when cfg.AcceptRateLimit is zero.
	acceptLimiter *rate.Limiter

	registry registry.Registry // nil if no discovery is configured

	active   int64 // shared online-connection counter, see Reactor.active
	shutdown atomic.Bool
	wg       sync.WaitGroup
}

// NewPool constructs a Pool with cfg.ShardCount reactors and picker as the
// shard-assignment policy. If picker is nil, loadbalance.NewConsistentHashBalancer
// is used, giving session affinity across reconnects from behind the same
// NAT.
func NewPool(cfg Config, picker loadbalance.ShardPicker, reg registry.Registry) *Pool {
	if picker == nil {
		picker = loadbalance.NewConsistentHashBalancer()
	}
	if cfg.ShardCount <= 0 {
		cfg.ShardCount = 1
	}

	p := &Pool{cfg: cfg, picker: picker, registry: reg}
	if cfg.AcceptRateLimit > 0 {
		p.acceptLimiter = rate.NewLimiter(rate.Limit(cfg.AcceptRateLimit), cfg.AcceptRateBurst)
	}

	business := (&businessHandler{cfg: cfg, pool: p}).handle
	p.reactors = make([]*Reactor, cfg.ShardCount)
	for i := range p.reactors {
		p.reactors[i] = newReactor(i, cfg, business, &p.active)
	}
	return p
}

// OnlineCount returns the number of currently accepted connections across
// every shard, reported in StatusResponse and registry.ServerInstance.
func (p *Pool) OnlineCount() int {
	return int(atomic.LoadInt64(&p.active))
}

// ListenAndServe binds cfg.BindAddr, starts every shard's goroutine,
// optionally announces the instance to the registry, and runs the accept
// loop until Shutdown is called. Handing a connection off means picking a
// shard, not spawning a goroutine per connection.
func (p *Pool) ListenAndServe() error {
	listener, err := net.Listen("tcp", p.cfg.BindAddr)
	if err != nil {
		return err
	}
	p.listener = listener

	for _, r := range p.reactors {
		p.wg.Add(1)
		go func(r *Reactor) {
			defer p.wg.Done()
			r.run()
		}(r)
	}

	if p.registry != nil && p.cfg.AdvertiseAddr != "" {
		p.registerLoop()
	}

	for {
		conn, err := listener.Accept()
		if err != nil {
			if p.shutdown.Load() {
				return nil
			}
			return err
		}
		if p.acceptLimiter != nil && !p.acceptLimiter.Allow() {
			// Over the admission rate: close instead of queueing, so a
			// connection flood can't starve established connections.
			conn.Close()
			continue
		}
		shard := p.picker.Pick(conn.RemoteAddr().String(), len(p.reactors))
		p.reactors[shard].assign(conn)
	}
}

// registerLoop registers the instance once and re-registers on a timer at
// roughly half the lease TTL, refreshing Online/MaxPlayers each time —
// a live player count goes stale in a way a static service record never
// does, so the record is re-put rather than merely kept alive.
func (p *Pool) registerLoop() {
	register := func() {
		inst := registry.ServerInstance{
			Addr:       p.cfg.AdvertiseAddr,
			Version:    p.cfg.ProtocolVersion,
			Online:     p.OnlineCount(),
			MaxPlayers: p.cfg.MaxPlayers,
		}
		if err := p.registry.Register(p.cfg.ServerName, inst, p.cfg.RegistryTTL); err != nil {
			fmt.Printf("mcproto/server: registry.Register failed: %v\n", err)
		}
	}
	register()

	ttl := time.Duration(p.cfg.RegistryTTL) * time.Second
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	ticker := time.NewTicker(ttl / 2)
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer ticker.Stop()
		for range ticker.C {
			if p.shutdown.Load() {
				return
			}
			register()
		}
	}()
}

// Shutdown deregisters from the registry, stops accepting new connections,
// closes every shard (which closes all of its connections), and waits for
// every goroutine the Pool started to return.
func (p *Pool) Shutdown() error {
	p.shutdown.Store(true)
	if p.registry != nil && p.cfg.AdvertiseAddr != "" {
		p.registry.Deregister(p.cfg.ServerName, p.cfg.AdvertiseAddr)
	}
	if p.listener != nil {
		p.listener.Close()
	}
	for _, r := range p.reactors {
		r.close()
	}
	p.wg.Wait()
	return nil
}
