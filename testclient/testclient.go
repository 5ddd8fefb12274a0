// Package testclient is a minimal Minecraft 1.7.2 client used by
// integration tests and cmd/pingclient: it speaks just enough of the wire
// protocol to drive a Handshake into Status or Login and read back the
// packets mcproto/server answers with.
//
// The protocol carries no sequence id and the server answers each inbound
// packet in order, so there is nothing to multiplex: every exchange is one
// write followed by one blocking read, in lockstep.
package testclient

import (
	"bytes"
	"fmt"
	"io"
	"net"
	"time"

	"mcproto/buf"
	"mcproto/catalogue"
	"mcproto/packets"
	"mcproto/packets/handshaking"
	"mcproto/packets/login"
	"mcproto/packets/status"
	"mcproto/protocol"
)

// Client is a single connection driven through the Handshaking/Status/Login
// state machine.
type Client struct {
	conn  net.Conn
	state packets.State
}

// Dial connects to addr and returns a Client starting in Handshaking state.
func Dial(addr string, timeout time.Duration) (*Client, error) {
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn, state: packets.Handshaking}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error { return c.conn.Close() }

// Handshake sends a Handshake packet selecting next as the following state,
// and advances the client's own state to match (the client performs the
// same CanChangeState transition the server does on reading it).
func (c *Client) Handshake(protocolVersion int32, serverAddress string, serverPort uint16, next handshaking.NextState) error {
	h := &handshaking.Handshake{
		ProtocolVersion: protocolVersion,
		ServerAddress:   serverAddress,
		ServerPort:      serverPort,
		NextState:       next,
	}
	if err := c.writePacket(handshaking.HandshakeID, h); err != nil {
		return err
	}
	c.state = next.State()
	return nil
}

// Status sends a StatusRequest and returns the server's StatusResponse.
func (c *Client) Status() (*status.StatusResponse, error) {
	if err := c.writePacket(status.StatusRequestID, &status.StatusRequest{}); err != nil {
		return nil, err
	}
	pkt, err := c.readPacket()
	if err != nil {
		return nil, err
	}
	resp, ok := pkt.(*status.StatusResponse)
	if !ok {
		return nil, fmt.Errorf("testclient: expected StatusResponse, got %T", pkt)
	}
	return resp, nil
}

// Ping sends a PingRequest carrying payload and returns the echoed
// PingResponse.
func (c *Client) Ping(payload uint64) (*status.PingResponse, error) {
	if err := c.writePacket(status.PingRequestID, &status.PingRequest{Payload: payload}); err != nil {
		return nil, err
	}
	pkt, err := c.readPacket()
	if err != nil {
		return nil, err
	}
	resp, ok := pkt.(*status.PingResponse)
	if !ok {
		return nil, fmt.Errorf("testclient: expected PingResponse, got %T", pkt)
	}
	return resp, nil
}

// Login sends a LoginStart and returns the server's Disconnect — the
// default login handler in mcproto/server never completes encryption.
func (c *Client) Login(username string) (*login.Disconnect, error) {
	if err := c.writePacket(login.LoginStartID, &login.LoginStart{Username: username}); err != nil {
		return nil, err
	}
	pkt, err := c.readPacket()
	if err != nil {
		return nil, err
	}
	d, ok := pkt.(*login.Disconnect)
	if !ok {
		return nil, fmt.Errorf("testclient: expected Disconnect, got %T", pkt)
	}
	return d, nil
}

func (c *Client) writePacket(id int32, p buf.Writable) error {
	frame, err := protocol.EncodeWritable(id, p)
	if err != nil {
		return err
	}
	_, err = c.conn.Write(frame)
	return err
}

func (c *Client) readPacket() (packets.Packet, error) {
	length, err := buf.ReadLength(c.conn)
	if err != nil {
		return nil, err
	}
	body := make([]byte, length)
	if _, err := io.ReadFull(c.conn, body); err != nil {
		return nil, err
	}
	return catalogue.Decode(bytes.NewReader(body), packets.Clientbound, c.state, buf.ReadVarInt32)
}
