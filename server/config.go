package server

import "time"

// Config bundles everything mcproto/cmd/mcserver needs to start a Pool.
// Plain struct fields with DefaultConfig defaults; callers override what
// they need before constructing the Pool.
type Config struct {
	// BindAddr is passed to net.Listen, e.g. ":25565".
	BindAddr string

	// AdvertiseAddr is the address announced to the registry, e.g.
	// "203.0.113.10:25565". Left empty to skip registry announcement even
	// when a Registry is supplied.
	AdvertiseAddr string

	// ShardCount is the number of independent Reactor goroutines the Pool
	// spreads accepted connections across.
	ShardCount int

	// TickInterval is how often each Reactor polls its connections for
	// readable/writable data (the emulated non-blocking poll period).
	TickInterval time.Duration

	// AcceptRateLimit/AcceptRateBurst bound how many new connections the
	// Pool's accept loop admits per second, across all shards. Connections
	// over the limit are accepted and immediately closed, so the kernel
	// backlog never silently fills. Zero disables the throttle.
	AcceptRateLimit float64
	AcceptRateBurst int

	// StatusRateLimit/StatusRateBurst bound how many Status-state packets
	// (StatusRequest, PingRequest) a single connection may trigger per
	// second, via middleware.RateLimitMiddleware.
	StatusRateLimit float64
	StatusRateBurst int

	// DispatchTimeout bounds how long the handler chain may take to answer
	// a single packet, via middleware.TimeOutMiddleware.
	DispatchTimeout time.Duration

	// NBTDepthLimit is unused by the Handshaking/Status/Login packets this
	// module decodes (none carry NBT), but is threaded through Config so a
	// future Play implementation configures nbt.Options consistently with
	// everything else here rather than hardcoding the default of 128.
	NBTDepthLimit int

	// ServerName is the name this instance registers itself under, e.g. in
	// registry.Registry.Register(ServerName, ...).
	ServerName string

	// ProtocolVersion is the value reported in StatusResponse and
	// registry.ServerInstance.Version (4, for 1.7.2).
	ProtocolVersion int32

	// MaxPlayers is reported in StatusResponse and registry.ServerInstance.
	MaxPlayers int

	// MOTD is the server-list ping description text.
	MOTD string

	// DisconnectReason is the chat-component JSON sent in login.Disconnect
	// answering every LoginStart.
	DisconnectReason string

	// RegistryTTL is the lease TTL (seconds) passed to Registry.Register.
	RegistryTTL int64
}

// DefaultConfig returns a Config with conservative defaults suitable for a
// single-process instance with no registry.
func DefaultConfig() Config {
	return Config{
		BindAddr:         ":25565",
		ShardCount:       4,
		TickInterval:     10 * time.Millisecond,
		AcceptRateLimit:  128,
		AcceptRateBurst:  256,
		StatusRateLimit:  5,
		StatusRateBurst:  10,
		DispatchTimeout:  2 * time.Second,
		NBTDepthLimit:    128,
		ServerName:       "mcserver",
		ProtocolVersion:  4,
		MaxPlayers:       20,
		MOTD:             "A mcproto server",
		DisconnectReason: `{"text":"This server only speaks Handshaking/Status/Login."}`,
		RegistryTTL:      10,
	}
}
