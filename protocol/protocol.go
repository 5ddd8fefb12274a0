// Package protocol implements the wire-level framing every packet travels
// in: a length VarInt, a packet-id VarInt, and a body. There is no magic
// number and no multiplexing sequence id, and the length prefix is a
// restricted-width VarInt rather than a fixed uint32.
package protocol

import (
	"bytes"
	"errors"
	"io"

	"mcproto/buf"
)

// ErrIncomplete is returned by PeekFrameLength when data does not yet
// contain a complete length VarInt. It is not a protocol violation — the
// caller should try again once more bytes have arrived; compare with
// errors.Is, not with the connection-fatal errors in protoerr.
var ErrIncomplete = errors.New("protocol: incomplete frame length")

// PeekFrameLength reads the length VarInt at the head of data without
// mutating data. It returns the declared frame length (the byte count of
// packet id + body that follows) and the number of bytes the length VarInt
// itself occupied.
//
// If data doesn't yet hold a complete VarInt, PeekFrameLength returns
// ErrIncomplete so the frame pump can wait for the next read. Any other
// error (the VarInt exceeds buf.MaxLengthVarIntBytes) is connection-fatal.
func PeekFrameLength(data []byte) (length int, prefixLen int, err error) {
	r := bytes.NewReader(data)
	n, err := buf.ReadLength(r)
	if err != nil {
		if err == io.EOF {
			return 0, 0, ErrIncomplete
		}
		return 0, 0, err
	}
	return n, len(data) - r.Len(), nil
}

// EncodePacket serializes id and body (a packet's WriteTo output) into a
// complete frame: [length VarInt][id VarInt][body].
//
// Some implementations build the frame body first and then rotate the
// buffer to prepend the length. Here the body is always fully materialized
// (by WriteTo) before a frame is built, so the length is simply known up
// front — writing it first needs no backfill and no rotate, just two
// buffers concatenated.
func EncodePacket(id int32, body []byte) []byte {
	var idBuf bytes.Buffer
	idBuf.Grow(buf.MaxSizeVarInt)
	buf.WriteVarInt32(&idBuf, id)

	total := idBuf.Len() + len(body)

	out := bytes.NewBuffer(make([]byte, 0, buf.MaxLengthVarIntBytes+total))
	buf.WriteLength(out, total)
	out.Write(idBuf.Bytes())
	out.Write(body)
	return out.Bytes()
}

// EncodeWritable is a convenience wrapper around EncodePacket for values
// that know how to serialize their own body via buf.Writable.
func EncodeWritable(id int32, v buf.Writable) ([]byte, error) {
	var body bytes.Buffer
	if err := v.WriteTo(&body); err != nil {
		return nil, err
	}
	return EncodePacket(id, body.Bytes()), nil
}
