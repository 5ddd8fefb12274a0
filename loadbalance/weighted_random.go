package loadbalance

import "math/rand"

// WeightedRandomBalancer selects a shard probabilistically based on its
// configured capacity weight. A shard with weight 10 gets roughly 2x the
// new connections of one with weight 5.
//
// Best for: shards pinned to heterogeneous hardware (e.g. some reactor
// goroutines run on a bigger instance), where an even round-robin split
// would overload the weaker shard's connection set.
//
// Algorithm:
//  1. Sum all weights → totalWeight
//  2. Generate random number r in [0, totalWeight)
//  3. Subtract each shard's weight from r until r < 0
//  4. The shard that makes r negative is selected
type WeightedRandomBalancer struct {
	Weights []int // Weights[i] is shard i's relative capacity.
}

// NewWeightedRandomBalancer creates a balancer over shardCount shards, all
// with equal weight 1 (callers adjust Weights directly for heterogeneous
// capacity).
func NewWeightedRandomBalancer(shardCount int) *WeightedRandomBalancer {
	weights := make([]int, shardCount)
	for i := range weights {
		weights[i] = 1
	}
	return &WeightedRandomBalancer{Weights: weights}
}

func (b *WeightedRandomBalancer) Pick(remoteAddr string, shardCount int) int {
	if shardCount <= 0 {
		return 0
	}
	weights := b.Weights
	if len(weights) != shardCount {
		// Configuration drifted from the live shard count — fall back to
		// uniform weight rather than indexing out of range.
		return rand.Intn(shardCount)
	}

	totalWeight := 0
	for _, w := range weights {
		totalWeight += w
	}
	if totalWeight <= 0 {
		return rand.Intn(shardCount)
	}

	r := rand.Intn(totalWeight)
	for i, w := range weights {
		r -= w
		if r < 0 {
			return i
		}
	}
	return shardCount - 1
}

func (b *WeightedRandomBalancer) Name() string {
	return "WeightedRandom"
}
