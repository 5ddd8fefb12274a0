package buf

import (
	"fmt"
	"io"

	"mcproto/protoerr"
)

// MaxVarIntBytes is the cap on a general VarInt field: 5 bytes encode the
// full unsigned 32-bit range.
const MaxVarIntBytes = 5

// MaxVarLongBytes is the cap on a VarLong field: 10 bytes encode the full
// unsigned 64-bit range.
const MaxVarLongBytes = 10

// MaxLengthVarIntBytes caps the special "length" VarInt used as a prefix
// for strings, arrays, and frames: 3 bytes (21-bit payload).
const MaxLengthVarIntBytes = 3

// ReadVarUint32 reads a base-128 little-endian VarInt, up to MaxVarIntBytes.
func ReadVarUint32(r io.Reader) (uint32, error) {
	var value uint32
	for i := 0; i < MaxVarIntBytes; i++ {
		b, err := readByte(r)
		if err != nil {
			return 0, err
		}
		value |= uint32(b&0x7F) << (7 * i)
		if b&0x80 == 0 {
			return value, nil
		}
	}
	return 0, protoerr.ErrInvalidVarInt
}

// ReadVarInt32 reads a VarInt and reinterprets its bit pattern as signed.
func ReadVarInt32(r io.Reader) (int32, error) {
	v, err := ReadVarUint32(r)
	return int32(v), err
}

// WriteVarUint32 writes v as a base-128 little-endian VarInt using the
// minimum number of bytes.
func WriteVarUint32(w io.Writer, v uint32) error {
	for {
		b := byte(v & 0x7F)
		v >>= 7
		if v != 0 {
			if err := writeByte(w, b|0x80); err != nil {
				return err
			}
			continue
		}
		return writeByte(w, b)
	}
}

// WriteVarInt32 writes the bit pattern of v as a VarInt.
func WriteVarInt32(w io.Writer, v int32) error { return WriteVarUint32(w, uint32(v)) }

// ReadVarUint64 reads a base-128 little-endian VarLong, up to MaxVarLongBytes.
func ReadVarUint64(r io.Reader) (uint64, error) {
	var value uint64
	for i := 0; i < MaxVarLongBytes; i++ {
		b, err := readByte(r)
		if err != nil {
			return 0, err
		}
		value |= uint64(b&0x7F) << (7 * i)
		if b&0x80 == 0 {
			return value, nil
		}
	}
	return 0, protoerr.ErrInvalidVarLong
}

// ReadVarInt64 reads a VarLong and reinterprets its bit pattern as signed.
func ReadVarInt64(r io.Reader) (int64, error) {
	v, err := ReadVarUint64(r)
	return int64(v), err
}

// WriteVarUint64 writes v as a base-128 little-endian VarLong using the
// minimum number of bytes.
func WriteVarUint64(w io.Writer, v uint64) error {
	for {
		b := byte(v & 0x7F)
		v >>= 7
		if v != 0 {
			if err := writeByte(w, b|0x80); err != nil {
				return err
			}
			continue
		}
		return writeByte(w, b)
	}
}

// WriteVarInt64 writes the bit pattern of v as a VarLong.
func WriteVarInt64(w io.Writer, v int64) error { return WriteVarUint64(w, uint64(v)) }

// ReadLength reads the restricted "length" VarInt used to prefix strings,
// arrays, and frames: capped at MaxLengthVarIntBytes (21-bit payload).
// An encoding that would need a 4th byte is an over-long encoding and is
// rejected before it is read.
func ReadLength(r io.Reader) (int, error) {
	var value uint32
	for i := 0; i < MaxLengthVarIntBytes; i++ {
		b, err := readByte(r)
		if err != nil {
			return 0, err
		}
		value |= uint32(b&0x7F) << (7 * i)
		if b&0x80 == 0 {
			return int(value), nil
		}
	}
	return 0, protoerr.ErrInvalidVarInt
}

// WriteLength writes v as a length VarInt. The caller is responsible for
// ensuring v fits in the 21-bit payload (MaxLengthVarIntBytes bytes); values
// that don't are a programming error, not a wire-format one, since every
// caller derives v from a length it already bounded.
func WriteLength(w io.Writer, v int) error {
	if v < 0 {
		return fmt.Errorf("buf: negative length %d", v)
	}
	return WriteVarUint32(w, uint32(v))
}

// VarIntSize returns the number of bytes WriteVarUint32 would emit for v —
// used to size two-phase frame builders without an intermediate write.
func VarIntSize(v uint32) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}
	return n
}
