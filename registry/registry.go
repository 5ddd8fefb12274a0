// Package registry defines the service-discovery interface and data types
// used to announce a running mcproto server.
//
// A single game server has nothing to discover, but a fleet of them behind
// a proxy (a BungeeCord-style frontend, or a status-aggregating dashboard)
// does: find every live listener, and its current load. The record is a
// TTL-leased instance entry, watched for changes, carrying the fields a
// proxy or dashboard actually wants from a Minecraft listener: its
// protocol version and live player count.
package registry

// ServerInstance represents one running mcproto server, as announced in
// the registry.
type ServerInstance struct {
	Addr       string // Network address, e.g., "127.0.0.1:25565"
	Version    int32  // Protocol version (4, for 1.7.2)
	Online     int    // Current connected player count
	MaxPlayers int    // Configured player cap
}

// Registry is the interface for server registration and discovery.
// EtcdRegistry is the implementation this module provides.
type Registry interface {
	// Register adds a server instance to the registry with a TTL lease.
	// The instance will be automatically removed if KeepAlive stops (e.g., server crashes).
	Register(name string, instance ServerInstance, ttl int64) error

	// Deregister removes a server instance from the registry.
	// Called during graceful shutdown BEFORE closing the listener.
	Deregister(name string, addr string) error

	// Discover returns all currently registered instances under name.
	Discover(name string) ([]ServerInstance, error)

	// Watch returns a channel that emits updated instance lists whenever
	// the registered instances change (new registrations, removals, etc.).
	// This enables real-time discovery without polling.
	Watch(name string) <-chan []ServerInstance
}
