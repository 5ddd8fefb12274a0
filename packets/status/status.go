// Package status implements the Status-state packets: the serverbound
// StatusRequest/PingRequest and clientbound StatusResponse/PingResponse
// used by the server-list ping exchange.
package status

import (
	"io"

	"mcproto/buf"

	"mcproto/packets"
)

// StatusRequest carries no fields; its presence alone requests the server's
// StatusResponse.
type StatusRequest struct{}

const StatusRequestID int32 = 0x00

var StatusRequestMeta = packets.Meta{
	ID: StatusRequestID, State: packets.Status, Direction: packets.Serverbound,
}

func (StatusRequest) Meta() packets.Meta { return StatusRequestMeta }

func ReadStatusRequest(io.Reader) (*StatusRequest, error) { return &StatusRequest{}, nil }

func (*StatusRequest) WriteTo(io.Writer) error { return nil }

// PingRequest carries an opaque payload the server must echo back unchanged
// in PingResponse.
type PingRequest struct {
	Payload uint64
}

const PingRequestID int32 = 0x01

var PingRequestMeta = packets.Meta{
	ID: PingRequestID, State: packets.Status, Direction: packets.Serverbound,
	MinSize: buf.SizeU64, MaxSize: buf.SizeU64,
}

func (PingRequest) Meta() packets.Meta { return PingRequestMeta }

func ReadPingRequest(r io.Reader) (*PingRequest, error) {
	v, err := buf.ReadU64(r)
	if err != nil {
		return nil, err
	}
	return &PingRequest{Payload: v}, nil
}

func (p *PingRequest) WriteTo(w io.Writer) error { return buf.WriteU64(w, p.Payload) }

// StatusResponse carries the server-list ping JSON payload.
type StatusResponse struct {
	Response string
}

const StatusResponseID int32 = 0x00

var StatusResponseMeta = packets.Meta{
	ID: StatusResponseID, State: packets.Status, Direction: packets.Clientbound,
	MinSize: buf.MinSizeString, MaxSize: buf.MaxSizeString,
}

func (StatusResponse) Meta() packets.Meta { return StatusResponseMeta }

func ReadStatusResponse(r io.Reader) (*StatusResponse, error) {
	s, err := buf.ReadString(r)
	if err != nil {
		return nil, err
	}
	return &StatusResponse{Response: s}, nil
}

func (s *StatusResponse) WriteTo(w io.Writer) error { return buf.WriteString(w, s.Response) }

// PingResponse echoes PingRequest.Payload back to the client.
type PingResponse struct {
	Payload uint64
}

const PingResponseID int32 = 0x01

var PingResponseMeta = packets.Meta{
	ID: PingResponseID, State: packets.Status, Direction: packets.Clientbound,
	MinSize: buf.SizeU64, MaxSize: buf.SizeU64,
}

func (PingResponse) Meta() packets.Meta { return PingResponseMeta }

func ReadPingResponse(r io.Reader) (*PingResponse, error) {
	v, err := buf.ReadU64(r)
	if err != nil {
		return nil, err
	}
	return &PingResponse{Payload: v}, nil
}

func (p *PingResponse) WriteTo(w io.Writer) error { return buf.WriteU64(w, p.Payload) }
