// Package login implements the Login-state packets. Real encryption is out
// of scope: EncryptionRequest/EncryptionResponse are fully codec'd so a
// future server could wire encryption in, but the default handler (see
// mcproto/server) always answers LoginStart with Disconnect.
package login

import (
	"io"

	"mcproto/buf"

	"mcproto/packets"
)

// LoginStart is the sole packet that starts the login sequence.
type LoginStart struct {
	Username string
}

const LoginStartID int32 = 0x00

var LoginStartMeta = packets.Meta{
	ID: LoginStartID, State: packets.Login, Direction: packets.Serverbound,
	MinSize: buf.MinSizeString, MaxSize: buf.MaxSizeString,
}

func (LoginStart) Meta() packets.Meta { return LoginStartMeta }

func ReadLoginStart(r io.Reader) (*LoginStart, error) {
	s, err := buf.ReadString(r)
	if err != nil {
		return nil, err
	}
	return &LoginStart{Username: s}, nil
}

func (l *LoginStart) WriteTo(w io.Writer) error { return buf.WriteString(w, l.Username) }

// EncryptionResponse answers an EncryptionRequest with the client's
// RSA-encrypted shared secret and verify token.
type EncryptionResponse struct {
	SharedSecret []byte
	VerifyToken  []byte
}

const EncryptionResponseID int32 = 0x01

var EncryptionResponseMeta = packets.Meta{
	ID: EncryptionResponseID, State: packets.Login, Direction: packets.Serverbound,
	MinSize: 2 * buf.MinSizeU16LenBytes, MaxSize: 2 * buf.MaxSizeU16LenBytes,
}

func (EncryptionResponse) Meta() packets.Meta { return EncryptionResponseMeta }

func ReadEncryptionResponse(r io.Reader) (*EncryptionResponse, error) {
	secret, err := buf.ReadU16LenBytes(r)
	if err != nil {
		return nil, err
	}
	token, err := buf.ReadU16LenBytes(r)
	if err != nil {
		return nil, err
	}
	return &EncryptionResponse{SharedSecret: secret, VerifyToken: token}, nil
}

func (e *EncryptionResponse) WriteTo(w io.Writer) error {
	if err := buf.WriteU16LenBytes(w, e.SharedSecret); err != nil {
		return err
	}
	return buf.WriteU16LenBytes(w, e.VerifyToken)
}

// Disconnect terminates the login sequence with a JSON chat-component
// reason. It is the default response to LoginStart (see package doc).
type Disconnect struct {
	Reason string
}

const DisconnectID int32 = 0x00

var DisconnectMeta = packets.Meta{
	ID: DisconnectID, State: packets.Login, Direction: packets.Clientbound,
	MinSize: buf.MinSizeString, MaxSize: buf.MaxSizeString,
}

func (Disconnect) Meta() packets.Meta { return DisconnectMeta }

func ReadDisconnect(r io.Reader) (*Disconnect, error) {
	s, err := buf.ReadString(r)
	if err != nil {
		return nil, err
	}
	return &Disconnect{Reason: s}, nil
}

func (d *Disconnect) WriteTo(w io.Writer) error { return buf.WriteString(w, d.Reason) }

// EncryptionRequest begins the encryption handshake: a server id, an RSA
// public key, and a verify token the client must echo back encrypted.
type EncryptionRequest struct {
	ServerID    string
	PublicKey   []byte
	VerifyToken []byte
}

const EncryptionRequestID int32 = 0x01

var EncryptionRequestMeta = packets.Meta{
	ID: EncryptionRequestID, State: packets.Login, Direction: packets.Clientbound,
	MinSize: buf.MinSizeString + 2*buf.MinSizeU16LenBytes,
	MaxSize: buf.MaxSizeString + 2*buf.MaxSizeU16LenBytes,
}

func (EncryptionRequest) Meta() packets.Meta { return EncryptionRequestMeta }

func ReadEncryptionRequest(r io.Reader) (*EncryptionRequest, error) {
	serverID, err := buf.ReadString(r)
	if err != nil {
		return nil, err
	}
	publicKey, err := buf.ReadU16LenBytes(r)
	if err != nil {
		return nil, err
	}
	verifyToken, err := buf.ReadU16LenBytes(r)
	if err != nil {
		return nil, err
	}
	return &EncryptionRequest{ServerID: serverID, PublicKey: publicKey, VerifyToken: verifyToken}, nil
}

func (e *EncryptionRequest) WriteTo(w io.Writer) error {
	if err := buf.WriteString(w, e.ServerID); err != nil {
		return err
	}
	if err := buf.WriteU16LenBytes(w, e.PublicKey); err != nil {
		return err
	}
	return buf.WriteU16LenBytes(w, e.VerifyToken)
}

// LoginSuccess completes the login sequence: the connection moves to Play
// immediately after the client reads it (Play is a state-tag-only stub in
// this module; see mcproto/packets).
type LoginSuccess struct {
	UUID     [16]byte
	Username string
}

const LoginSuccessID int32 = 0x02

var LoginSuccessMeta = packets.Meta{
	ID: LoginSuccessID, State: packets.Login, Direction: packets.Clientbound,
	MinSize: buf.UUIDSize + buf.MinSizeString, MaxSize: buf.UUIDSize + buf.MaxSizeString,
}

func (LoginSuccess) Meta() packets.Meta { return LoginSuccessMeta }

func ReadLoginSuccess(r io.Reader) (*LoginSuccess, error) {
	var uuid [16]byte
	if _, err := io.ReadFull(r, uuid[:]); err != nil {
		return nil, err
	}
	username, err := buf.ReadString(r)
	if err != nil {
		return nil, err
	}
	return &LoginSuccess{UUID: uuid, Username: username}, nil
}

func (l *LoginSuccess) WriteTo(w io.Writer) error {
	if _, err := w.Write(l.UUID[:]); err != nil {
		return err
	}
	return buf.WriteString(w, l.Username)
}
