// Package loadbalance provides the policies used to route a freshly
// accepted connection to one of the server's reactor shards (see
// mcproto/server): round-robin, weighted-random, and consistent-hash.
//
// These are the classic client-side instance-picking strategies applied
// server-side: the candidates are shard indices instead of upstream
// instances, but picking which shard owns a new connection is the same
// load-spreading problem shape.
package loadbalance

// ShardPicker selects which of shardCount reactor shards should own a
// freshly accepted connection from remoteAddr. Called once per accepted
// connection — must be goroutine-safe, since Pool's accept loop runs
// independently of the shards reading their own connection sets.
type ShardPicker interface {
	Pick(remoteAddr string, shardCount int) int

	// Name returns the strategy name (for logging/debugging).
	Name() string
}
