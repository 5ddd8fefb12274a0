// Package catalogue is the packet catalogue: the static (direction, state,
// id) -> decoder dispatch tables a structural packet generator would
// otherwise emit. It is a separate package from mcproto/packets so that
// packets and its handshaking/status/login subpackages can import each
// other's shared types without these tables creating an import cycle.
//
// The serverbound table is what the frame pump routes inbound frames with;
// the clientbound table exists for the other end of the wire —
// mcproto/testclient and any tooling that needs to decode what a server
// sent back.
package catalogue

import (
	"io"

	"mcproto/packets"
	"mcproto/packets/handshaking"
	"mcproto/packets/login"
	"mcproto/packets/status"
	"mcproto/protoerr"
)

// Decoder reads one packet body (the frame length and packet id are already
// consumed by the caller) and returns its decoded value.
type Decoder func(io.Reader) (packets.Packet, error)

var serverbound = map[packets.State]map[int32]Decoder{
	packets.Handshaking: {
		handshaking.HandshakeID: func(r io.Reader) (packets.Packet, error) { return handshaking.ReadHandshake(r) },
	},
	packets.Status: {
		status.StatusRequestID: func(r io.Reader) (packets.Packet, error) { return status.ReadStatusRequest(r) },
		status.PingRequestID:   func(r io.Reader) (packets.Packet, error) { return status.ReadPingRequest(r) },
	},
	packets.Login: {
		login.LoginStartID:         func(r io.Reader) (packets.Packet, error) { return login.ReadLoginStart(r) },
		login.EncryptionResponseID: func(r io.Reader) (packets.Packet, error) { return login.ReadEncryptionResponse(r) },
	},
}

var clientbound = map[packets.State]map[int32]Decoder{
	packets.Status: {
		status.StatusResponseID: func(r io.Reader) (packets.Packet, error) { return status.ReadStatusResponse(r) },
		status.PingResponseID:   func(r io.Reader) (packets.Packet, error) { return status.ReadPingResponse(r) },
	},
	packets.Login: {
		login.DisconnectID:        func(r io.Reader) (packets.Packet, error) { return login.ReadDisconnect(r) },
		login.EncryptionRequestID: func(r io.Reader) (packets.Packet, error) { return login.ReadEncryptionRequest(r) },
		login.LoginSuccessID:      func(r io.Reader) (packets.Packet, error) { return login.ReadLoginSuccess(r) },
	},
}

// Lookup returns the decoder for a packet id traveling dir in state state,
// or UnknownPacketIDError if no such packet is registered.
func Lookup(dir packets.Direction, state packets.State, id int32) (Decoder, error) {
	table := serverbound
	if dir == packets.Clientbound {
		table = clientbound
	}
	byID, ok := table[state]
	if !ok {
		return nil, &protoerr.UnknownPacketIDError{ID: id, State: state}
	}
	dec, ok := byID[id]
	if !ok {
		return nil, &protoerr.UnknownPacketIDError{ID: id, State: state}
	}
	return dec, nil
}

// Decode reads a packet id (as a VarInt, per the frame format) followed by
// its body from r, looks it up against (dir, state), and decodes it.
func Decode(r io.Reader, dir packets.Direction, state packets.State, readID func(io.Reader) (int32, error)) (packets.Packet, error) {
	id, err := readID(r)
	if err != nil {
		return nil, err
	}
	dec, err := Lookup(dir, state, id)
	if err != nil {
		return nil, err
	}
	return dec(r)
}
