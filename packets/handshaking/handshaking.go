// Package handshaking implements the single Handshaking-state packet: the
// serverbound Handshake that selects Status or Login as the next state.
package handshaking

import (
	"io"

	"mcproto/buf"
	"mcproto/protoerr"

	"mcproto/packets"
)

// NextState is Handshake's target-state field: an enum over its underlying
// VarInt representation, with an explicit TryFrom-equivalent validating the
// two legal values.
type NextState int32

const (
	NextStateStatus NextState = 1
	NextStateLogin  NextState = 2
)

// State maps a validated NextState to the connection State it selects.
func (n NextState) State() packets.State {
	if n == NextStateLogin {
		return packets.Login
	}
	return packets.Status
}

func readNextState(r io.Reader) (NextState, error) {
	v, err := buf.ReadVarInt32(r)
	if err != nil {
		return 0, err
	}
	switch NextState(v) {
	case NextStateStatus, NextStateLogin:
		return NextState(v), nil
	default:
		return 0, protoerr.ErrInvalidEnumVariant
	}
}

func writeNextState(w io.Writer, v NextState) error {
	return buf.WriteVarInt32(w, int32(v))
}

// Handshake is the sole Handshaking-state packet: CanChangeState is true,
// since reading it moves the connection to Status or Login per next_state.
type Handshake struct {
	ProtocolVersion int32
	ServerAddress   string
	ServerPort      uint16
	NextState       NextState
}

const HandshakeID int32 = 0x00

var HandshakeMeta = packets.Meta{
	ID:             HandshakeID,
	State:          packets.Handshaking,
	Direction:      packets.Serverbound,
	CanChangeState: true,
	MinSize:        buf.MinSizeVarInt + buf.MinSizeString + buf.SizeU16 + buf.MinSizeVarInt,
	MaxSize:        buf.MaxSizeVarInt + buf.MaxSizeString + buf.SizeU16 + buf.MaxSizeVarInt,
}

func (Handshake) Meta() packets.Meta { return HandshakeMeta }

// ReadHandshake decodes a Handshake from r.
func ReadHandshake(r io.Reader) (*Handshake, error) {
	protocolVersion, err := buf.ReadVarInt32(r)
	if err != nil {
		return nil, err
	}
	serverAddress, err := buf.ReadString(r)
	if err != nil {
		return nil, err
	}
	serverPort, err := buf.ReadU16(r)
	if err != nil {
		return nil, err
	}
	nextState, err := readNextState(r)
	if err != nil {
		return nil, err
	}
	return &Handshake{
		ProtocolVersion: protocolVersion,
		ServerAddress:   serverAddress,
		ServerPort:      serverPort,
		NextState:       nextState,
	}, nil
}

// WriteTo encodes h, in field order, to w.
func (h *Handshake) WriteTo(w io.Writer) error {
	if err := buf.WriteVarInt32(w, h.ProtocolVersion); err != nil {
		return err
	}
	if err := buf.WriteString(w, h.ServerAddress); err != nil {
		return err
	}
	if err := buf.WriteU16(w, h.ServerPort); err != nil {
		return err
	}
	return writeNextState(w, h.NextState)
}
