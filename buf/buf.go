// Package buf implements the binary buffer codec every packet field in
// mcproto is built from: fixed-width big-endian primitives, VarInt/VarLong,
// length-prefixed strings and arrays, and the Readable/Writable contract that
// ties them together.
//
// The contract is deliberately small: a type implements Readable/Writable
// to be usable as a packet field, and VarReadable/VarWritable additionally
// when it also has a variable-length integer encoding. Framing lives one
// layer up, in mcproto/protocol.
package buf

import (
	"io"
)

// Readable types decode themselves, big-endian, from r.
type Readable interface {
	ReadFrom(r io.Reader) error
}

// Writable types encode themselves, big-endian, to w.
type Writable interface {
	WriteTo(w io.Writer) error
}

// VarReadable types decode themselves using the VarInt/VarLong base-128
// little-endian encoding.
type VarReadable interface {
	ReadVarFrom(r io.Reader) error
}

// VarWritable types encode themselves using the VarInt/VarLong base-128
// little-endian encoding.
type VarWritable interface {
	WriteVarTo(w io.Writer) error
}

// Sized types have a constant fixed wire size.
type Sized interface {
	Size() int
}

// VarSized types have a variable wire size bounded by [MinSize, MaxSize].
type VarSized interface {
	MinSize() int
	MaxSize() int
}

// readByte reads exactly one byte, translating io.EOF the same way
// io.ReadFull would for a 1-byte buffer.
func readByte(r io.Reader) (byte, error) {
	var b [1]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

// writeByte writes exactly one byte.
func writeByte(w io.Writer, b byte) error {
	_, err := w.Write([]byte{b})
	return err
}
