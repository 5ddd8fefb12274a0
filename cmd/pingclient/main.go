// Command pingclient performs a server-list ping against an mcproto server:
// Handshake into Status, read the StatusResponse JSON, and optionally follow
// up with a Ping round-trip — the same probe a vanilla client's server list
// screen performs, driven here by mcproto/testclient instead of a full game
// client.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"mcproto/message"
	"mcproto/packets/handshaking"
	"mcproto/testclient"
)

func main() {
	var (
		addr            string
		serverAddress   string
		serverPort      int
		protocolVersion int
		doPing          bool
		timeout         time.Duration
	)

	flag.StringVar(&addr, "addr", "127.0.0.1:25565", "server address to dial")
	flag.StringVar(&serverAddress, "server-address", "localhost", "server_address field sent in the Handshake")
	flag.IntVar(&serverPort, "server-port", 25565, "server_port field sent in the Handshake")
	flag.IntVar(&protocolVersion, "protocol", 4, "protocol_version field sent in the Handshake")
	flag.BoolVar(&doPing, "ping", true, "also send a Ping after Status")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "dial and round-trip timeout")
	flag.Parse()

	c, err := testclient.Dial(addr, timeout)
	if err != nil {
		log.Fatalf("pingclient: dial %s: %v", addr, err)
	}
	defer c.Close()

	if err := c.Handshake(int32(protocolVersion), serverAddress, uint16(serverPort), handshaking.NextStateStatus); err != nil {
		log.Fatalf("pingclient: handshake: %v", err)
	}

	resp, err := c.Status()
	if err != nil {
		log.Fatalf("pingclient: status: %v", err)
	}

	var parsed message.StatusResponse
	if err := json.Unmarshal([]byte(resp.Response), &parsed); err != nil {
		log.Fatalf("pingclient: status response isn't valid JSON: %v", err)
	}
	fmt.Printf("%s: %s (protocol %d) %d/%d players\n",
		addr, parsed.Description.Text, parsed.Version.Protocol, parsed.Players.Online, parsed.Players.Max)

	if !doPing {
		return
	}

	payload := rand.Uint64()
	start := time.Now()
	pong, err := c.Ping(payload)
	if err != nil {
		log.Fatalf("pingclient: ping: %v", err)
	}
	if pong.Payload != payload {
		fmt.Fprintf(os.Stderr, "pingclient: ping payload mismatch: sent %d, got %d\n", payload, pong.Payload)
		os.Exit(1)
	}
	fmt.Printf("%s: pong in %s\n", addr, time.Since(start))
}
