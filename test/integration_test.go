// Package test holds end-to-end tests exercising the whole stack the way a
// real client would: a real TCP listener, the sharded reactor pool, and
// mcproto/testclient driving the Handshaking/Status/Login state machine —
// no mocked transport or in-process shortcut.
package test

import (
	"encoding/json"
	"errors"
	"net"
	"testing"
	"time"

	"mcproto/loadbalance"
	"mcproto/message"
	"mcproto/packets/handshaking"
	"mcproto/registry"
	"mcproto/server"
	"mcproto/testclient"
)

func freeAddr(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := ln.Addr().String()
	ln.Close()
	return addr
}

func waitForListener(t *testing.T, addr string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		conn, err := net.DialTimeout("tcp", addr, 50*time.Millisecond)
		if err == nil {
			conn.Close()
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("server at %s never came up", addr)
}

// TestFullIntegrationWithEtcd drives a full Handshake -> Status -> Ping
// round trip through a real Pool, and confirms the server announces itself
// to etcd and deregisters on shutdown. Skips when no local etcd is reachable.
func TestFullIntegrationWithEtcd(t *testing.T) {
	var reg *registry.EtcdRegistry
	probe, err := net.DialTimeout("tcp", "127.0.0.1:2379", time.Second)
	if err == nil {
		probe.Close()
		reg, err = registry.NewEtcdRegistry([]string{"127.0.0.1:2379"})
	}
	if err != nil {
		t.Skipf("etcd not reachable: %v", err)
	}

	addr := freeAddr(t)
	cfg := server.DefaultConfig()
	cfg.BindAddr = addr
	cfg.AdvertiseAddr = addr
	cfg.ServerName = "mcserver-integration"
	cfg.RegistryTTL = 5

	pool := server.NewPool(cfg, nil, reg)
	go pool.ListenAndServe()
	defer pool.Shutdown()
	waitForListener(t, addr)

	instances, err := reg.Discover(cfg.ServerName)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	found := false
	for _, inst := range instances {
		if inst.Addr == addr {
			found = true
		}
	}
	if !found {
		t.Fatalf("server did not announce %s to etcd, got %+v", addr, instances)
	}

	c, err := testclient.Dial(addr, 2*time.Second)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if err := c.Handshake(cfg.ProtocolVersion, "localhost", 25565, handshaking.NextStateStatus); err != nil {
		t.Fatalf("Handshake: %v", err)
	}
	resp, err := c.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	var parsed message.StatusResponse
	if err := json.Unmarshal([]byte(resp.Response), &parsed); err != nil {
		t.Fatalf("status response isn't valid JSON: %v", err)
	}
	if parsed.Players.Max != cfg.MaxPlayers {
		t.Fatalf("max players = %d, want %d", parsed.Players.Max, cfg.MaxPlayers)
	}

	ping, err := c.Ping(7)
	if err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if ping.Payload != 7 {
		t.Fatalf("ping payload = %d, want 7", ping.Payload)
	}

	pool.Shutdown()
	time.Sleep(50 * time.Millisecond)
	instances, err = reg.Discover(cfg.ServerName)
	if err != nil {
		t.Fatalf("Discover after shutdown: %v", err)
	}
	for _, inst := range instances {
		if inst.Addr == addr {
			t.Fatalf("server still registered after shutdown: %+v", inst)
		}
	}
}

// TestMultiServerShardedConnections starts a single Pool with several shards
// and drives concurrent Handshake/Login flows through it, verifying every
// connection gets a correct, independent Disconnect. How the
// loadbalance.ShardPicker spreads the connections across shards is not
// asserted.
func TestMultiServerShardedConnections(t *testing.T) {
	addr := freeAddr(t)
	cfg := server.DefaultConfig()
	cfg.BindAddr = addr
	cfg.ShardCount = 4
	cfg.TickInterval = 5 * time.Millisecond

	pool := server.NewPool(cfg, loadbalance.NewWeightedRandomBalancer(cfg.ShardCount), nil)
	go pool.ListenAndServe()
	defer pool.Shutdown()
	waitForListener(t, addr)

	const clients = 10
	errCh := make(chan error, clients)
	for i := 0; i < clients; i++ {
		go func(i int) {
			c, err := testclient.Dial(addr, 2*time.Second)
			if err != nil {
				errCh <- err
				return
			}
			defer c.Close()
			if err := c.Handshake(cfg.ProtocolVersion, "localhost", 25565, handshaking.NextStateLogin); err != nil {
				errCh <- err
				return
			}
			d, err := c.Login("player")
			if err != nil {
				errCh <- err
				return
			}
			if d.Reason == "" {
				errCh <- errors.New("empty disconnect reason")
				return
			}
			errCh <- nil
		}(i)
	}
	for i := 0; i < clients; i++ {
		if err := <-errCh; err != nil {
			t.Fatalf("client %d failed: %v", i, err)
		}
	}
}
