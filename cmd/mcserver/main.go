// Command mcserver runs the mcproto connection state machine and frame
// pump: it binds a TCP listener, shards accepted connections across N
// reactors (mcproto/server), and optionally announces itself to an etcd
// registry.
package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"mcproto/loadbalance"
	"mcproto/registry"
	"mcproto/server"
)

func main() {
	cfg := server.DefaultConfig()

	var (
		shardPolicy   string
		etcdEndpoints string
	)

	flag.StringVar(&cfg.BindAddr, "addr", cfg.BindAddr, "address to listen on")
	flag.StringVar(&cfg.AdvertiseAddr, "advertise", cfg.AdvertiseAddr, "address announced to the registry (empty disables announcement)")
	flag.IntVar(&cfg.ShardCount, "shards", cfg.ShardCount, "number of reactor shards")
	flag.DurationVar(&cfg.TickInterval, "tick", cfg.TickInterval, "reactor poll interval")
	flag.Float64Var(&cfg.AcceptRateLimit, "accept-rate", cfg.AcceptRateLimit, "new connections admitted per second (0 disables)")
	flag.IntVar(&cfg.AcceptRateBurst, "accept-burst", cfg.AcceptRateBurst, "new-connection admission burst size")
	flag.Float64Var(&cfg.StatusRateLimit, "status-rate", cfg.StatusRateLimit, "status/ping packets per second, per connection")
	flag.IntVar(&cfg.StatusRateBurst, "status-burst", cfg.StatusRateBurst, "status/ping burst size, per connection")
	flag.IntVar(&cfg.NBTDepthLimit, "nbt-depth-limit", cfg.NBTDepthLimit, "maximum NBT nesting depth")
	flag.StringVar(&cfg.ServerName, "name", cfg.ServerName, "registry instance name")
	flag.IntVar(&cfg.MaxPlayers, "max-players", cfg.MaxPlayers, "reported player cap")
	flag.StringVar(&cfg.MOTD, "motd", cfg.MOTD, "server-list ping description")
	flag.StringVar(&shardPolicy, "shard-policy", "consistent-hash", "shard-assignment policy: consistent-hash, round-robin, weighted-random")
	flag.StringVar(&etcdEndpoints, "etcd", "", "comma-separated etcd endpoints (empty disables registry announcement)")
	flag.Parse()

	picker := newShardPicker(shardPolicy, cfg.ShardCount)

	var reg registry.Registry
	if etcdEndpoints != "" {
		r, err := registry.NewEtcdRegistry(strings.Split(etcdEndpoints, ","))
		if err != nil {
			log.Fatalf("mcserver: connecting to etcd: %v", err)
		}
		reg = r
	}

	pool := server.NewPool(cfg, picker, reg)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		log.Println("mcserver: shutting down")
		if err := pool.Shutdown(); err != nil {
			log.Printf("mcserver: shutdown error: %v", err)
		}
	}()

	log.Printf("mcserver: listening on %s (%d shards)", cfg.BindAddr, cfg.ShardCount)
	if err := pool.ListenAndServe(); err != nil {
		log.Fatalf("mcserver: %v", err)
	}
}

func newShardPicker(name string, shardCount int) loadbalance.ShardPicker {
	switch name {
	case "round-robin":
		return &loadbalance.RoundRobinBalancer{}
	case "weighted-random":
		return loadbalance.NewWeightedRandomBalancer(shardCount)
	default:
		return loadbalance.NewConsistentHashBalancer()
	}
}
