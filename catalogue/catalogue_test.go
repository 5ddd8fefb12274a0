package catalogue

import (
	"bytes"
	"errors"
	"testing"

	"mcproto/buf"
	"mcproto/packets"
	"mcproto/packets/handshaking"
	"mcproto/packets/login"
	"mcproto/packets/status"
	"mcproto/protoerr"
)

// TestDecodeHandshakeExactBytes decodes the canonical Handshake frame body
// (id=0, protocol_version=4, server_address="localhost", server_port=25565,
// next_state=1) from its literal wire bytes.
func TestDecodeHandshakeExactBytes(t *testing.T) {
	body := []byte{
		0x00,       // packet id
		0x04,       // protocol_version
		0x09,       // server_address length
		'l', 'o', 'c', 'a', 'l', 'h', 'o', 's', 't',
		0x63, 0xDD, // server_port = 25565
		0x01, // next_state = Status
	}

	r := bytes.NewReader(body)
	pkt, err := Decode(r, packets.Serverbound, packets.Handshaking, buf.ReadVarInt32)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if r.Len() != 0 {
		t.Fatalf("decode left %d trailing bytes", r.Len())
	}

	h, ok := pkt.(*handshaking.Handshake)
	if !ok {
		t.Fatalf("expected *handshaking.Handshake, got %T", pkt)
	}
	if h.ProtocolVersion != 4 || h.ServerAddress != "localhost" || h.ServerPort != 25565 {
		t.Fatalf("decoded %+v", h)
	}
	if h.NextState.State() != packets.Status {
		t.Fatalf("NextState.State() = %v, want Status", h.NextState.State())
	}
	if !h.Meta().CanChangeState {
		t.Fatal("Handshake must have CanChangeState")
	}
}

func TestLookupUnknownID(t *testing.T) {
	_, err := Lookup(packets.Serverbound, packets.Status, 0x7F)
	var unknown *protoerr.UnknownPacketIDError
	if !errors.As(err, &unknown) {
		t.Fatalf("error = %v, want *UnknownPacketIDError", err)
	}
	if unknown.ID != 0x7F {
		t.Fatalf("ID = %d, want 0x7F", unknown.ID)
	}
}

func TestLookupDirectionsDisjoint(t *testing.T) {
	// Id 0x00 in Status state is StatusRequest serverbound but
	// StatusResponse clientbound: the two tables must not bleed into each
	// other.
	dec, err := Lookup(packets.Serverbound, packets.Status, status.StatusRequestID)
	if err != nil {
		t.Fatal(err)
	}
	pkt, err := dec(bytes.NewReader(nil))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := pkt.(*status.StatusRequest); !ok {
		t.Fatalf("serverbound 0x00 decoded as %T", pkt)
	}

	dec, err = Lookup(packets.Clientbound, packets.Status, status.StatusResponseID)
	if err != nil {
		t.Fatal(err)
	}
	var frame bytes.Buffer
	if err := buf.WriteString(&frame, `{"description":{"text":"x"}}`); err != nil {
		t.Fatal(err)
	}
	pkt, err = dec(bytes.NewReader(frame.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := pkt.(*status.StatusResponse); !ok {
		t.Fatalf("clientbound 0x00 decoded as %T", pkt)
	}
}

func TestNoPlayPackets(t *testing.T) {
	_, err := Lookup(packets.Serverbound, packets.Play, 0x00)
	var unknown *protoerr.UnknownPacketIDError
	if !errors.As(err, &unknown) {
		t.Fatalf("error = %v, want *UnknownPacketIDError", err)
	}
}

// TestEncodedSizesWithinBounds checks MIN_SIZE <= len(body) <= MAX_SIZE for
// a representative value of every packet that declares bounds.
func TestEncodedSizesWithinBounds(t *testing.T) {
	tests := []struct {
		name string
		pkt  packets.Packet
	}{
		{"Handshake", &handshaking.Handshake{ProtocolVersion: 4, ServerAddress: "localhost", ServerPort: 25565, NextState: handshaking.NextStateStatus}},
		{"StatusRequest", &status.StatusRequest{}},
		{"PingRequest", &status.PingRequest{Payload: 42}},
		{"StatusResponse", &status.StatusResponse{Response: `{"text":"x"}`}},
		{"PingResponse", &status.PingResponse{Payload: 42}},
		{"LoginStart", &login.LoginStart{Username: "Notch"}},
		{"EncryptionRequest", &login.EncryptionRequest{ServerID: "-", PublicKey: []byte{1, 2, 3}, VerifyToken: []byte{4, 5, 6, 7}}},
		{"EncryptionResponse", &login.EncryptionResponse{SharedSecret: []byte{1, 2}, VerifyToken: []byte{3, 4}}},
		{"Disconnect", &login.Disconnect{Reason: `{"text":"bye"}`}},
		{"LoginSuccess", &login.LoginSuccess{Username: "Notch"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body bytes.Buffer
			if err := tt.pkt.WriteTo(&body); err != nil {
				t.Fatalf("WriteTo: %v", err)
			}
			meta := tt.pkt.Meta()
			if body.Len() < meta.MinSize || body.Len() > meta.MaxSize {
				t.Fatalf("len = %d, want within [%d, %d]", body.Len(), meta.MinSize, meta.MaxSize)
			}
		})
	}
}
