package loadbalance

import (
	"fmt"
	"hash/crc32"
	"net"
	"sort"
	"sync"
)

// ConsistentHashBalancer maps a connection's remote address to a shard
// using a hash ring, so the same remote address always lands on the same
// shard (until the shard count changes) — session affinity across
// reconnects from behind the same NAT, the default policy for
// mcproto/server.Pool.
//
// Virtual nodes: each shard is mapped to N virtual nodes on the ring.
// Without virtual nodes, a handful of shards might cluster together on the
// ring, causing uneven load distribution. 100 virtual nodes per shard
// ensures statistical uniformity.
//
//	Hash Ring:
//	                  0
//	                ╱   ╲
//	              ╱       ╲
//	         B ●               ● A
//	           │    key ◆──►   │   (clockwise to nearest node → A)
//	         C ●               ● A' (virtual node of shard A)
//	              ╲       ╱
//	                ╲   ╱
type ConsistentHashBalancer struct {
	replicas int // Virtual nodes per shard

	mu        sync.Mutex
	builtFor  int
	ring      []uint32       // Sorted hash values on the ring
	nodes     map[uint32]int // Hash value → shard index
}

// NewConsistentHashBalancer creates a balancer with 100 virtual nodes per
// shard. The ring is built lazily from the shardCount passed to Pick, and
// rebuilt whenever that count changes.
func NewConsistentHashBalancer() *ConsistentHashBalancer {
	return &ConsistentHashBalancer{replicas: 100}
}

// build (re)populates the ring for shardCount shards, indexed 0..shardCount-1.
func (b *ConsistentHashBalancer) build(shardCount int) {
	ring := make([]uint32, 0, shardCount*b.replicas)
	nodes := make(map[uint32]int, shardCount*b.replicas)
	for shard := 0; shard < shardCount; shard++ {
		for i := 0; i < b.replicas; i++ {
			key := fmt.Sprintf("%d#%d", shard, i)
			hash := crc32.ChecksumIEEE([]byte(key))
			ring = append(ring, hash)
			nodes[hash] = shard
		}
	}
	sort.Slice(ring, func(i, j int) bool { return ring[i] < ring[j] })
	b.ring = ring
	b.nodes = nodes
	b.builtFor = shardCount
}

// Pick hashes the host part of remoteAddr (the whole string if it has no
// port) and binary-searches for the first node >= hash on the ring,
// wrapping around to the first node if the hash exceeds all of them (the
// ring property).
func (b *ConsistentHashBalancer) Pick(remoteAddr string, shardCount int) int {
	if shardCount <= 0 {
		return 0
	}

	b.mu.Lock()
	if b.builtFor != shardCount {
		b.build(shardCount)
	}
	ring := b.ring
	nodes := b.nodes
	b.mu.Unlock()

	key := remoteAddr
	if host, _, err := net.SplitHostPort(remoteAddr); err == nil {
		key = host
	}
	hash := crc32.ChecksumIEEE([]byte(key))
	idx := sort.Search(len(ring), func(i int) bool { return ring[i] >= hash })
	if idx == len(ring) {
		idx = 0
	}
	return nodes[ring[idx]]
}

func (b *ConsistentHashBalancer) Name() string {
	return "ConsistentHash"
}
