package loadbalance

import (
	"fmt"
	"testing"
)

const shardCount = 3

func TestRoundRobin(t *testing.T) {
	b := &RoundRobinBalancer{}

	results := make([]int, shardCount)
	for i := 0; i < shardCount; i++ {
		results[i] = b.Pick("", shardCount)
	}

	// Pick again, should wrap around to the first result.
	if got := b.Pick("", shardCount); got != results[0] {
		t.Fatalf("expected wrap around to %d, got %d", results[0], got)
	}
}

func TestRoundRobinZeroShards(t *testing.T) {
	b := &RoundRobinBalancer{}
	if got := b.Pick("", 0); got != 0 {
		t.Fatalf("expected 0 for zero shards, got %d", got)
	}
}

func TestWeightedRandom(t *testing.T) {
	b := &WeightedRandomBalancer{Weights: []int{10, 5, 10}}

	counts := make([]int, shardCount)
	n := 10000
	for i := 0; i < n; i++ {
		counts[b.Pick("", shardCount)]++
	}

	// Weight ratio is 10:5:10, so shard 0 and 2 should be ~2x shard 1.
	ratio := float64(counts[0]) / float64(counts[1])
	if ratio < 1.5 || ratio > 2.5 {
		t.Fatalf("weight ratio shard0/shard1 = %.2f, expect ~2.0", ratio)
	}
}

func TestWeightedRandomWeightCountMismatch(t *testing.T) {
	b := &WeightedRandomBalancer{Weights: []int{1, 1}}
	got := b.Pick("", shardCount)
	if got < 0 || got >= shardCount {
		t.Fatalf("Pick returned out-of-range shard %d for shardCount %d", got, shardCount)
	}
}

func TestConsistentHash(t *testing.T) {
	b := NewConsistentHashBalancer()

	// Same key should always map to the same shard.
	s1 := b.Pick("192.0.2.1:5000", shardCount)
	s2 := b.Pick("192.0.2.1:5000", shardCount)
	if s1 != s2 {
		t.Fatalf("same remote addr mapped to different shards: %d vs %d", s1, s2)
	}

	// Different keys should (likely) map to different shards.
	seen := map[int]bool{}
	for i := 0; i < 100; i++ {
		seen[b.Pick(fmt.Sprintf("192.0.2.%d:5000", i), shardCount)] = true
	}
	if len(seen) < 2 {
		t.Fatalf("expected at least 2 different shards, got %d", len(seen))
	}
}
