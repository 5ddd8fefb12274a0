package loadbalance

import "sync/atomic"

// RoundRobinBalancer distributes new connections evenly across all shards
// in order. Uses an atomic counter for lock-free, goroutine-safe operation.
//
// Best for: shards of equal capacity, no need for connection affinity
// across reconnects.
type RoundRobinBalancer struct {
	counter int64 // Atomic counter, incremented on each Pick()
}

// Pick selects the next shard in round-robin order, ignoring remoteAddr.
func (b *RoundRobinBalancer) Pick(remoteAddr string, shardCount int) int {
	if shardCount <= 0 {
		return 0
	}
	index := atomic.AddInt64(&b.counter, 1) % int64(shardCount)
	return int(index)
}

func (b *RoundRobinBalancer) Name() string {
	return "RoundRobin"
}
