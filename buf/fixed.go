package buf

import (
	"encoding/binary"
	"io"
	"math"
)

// ReadBool reads a single byte as a boolean (0 = false, any other value = true).
func ReadBool(r io.Reader) (bool, error) {
	b, err := readByte(r)
	if err != nil {
		return false, err
	}
	return b != 0, nil
}

// WriteBool writes a boolean as a single byte.
func WriteBool(w io.Writer, v bool) error {
	if v {
		return writeByte(w, 1)
	}
	return writeByte(w, 0)
}

// ReadU8 reads one unsigned byte.
func ReadU8(r io.Reader) (uint8, error) { return readByte(r) }

// WriteU8 writes one unsigned byte.
func WriteU8(w io.Writer, v uint8) error { return writeByte(w, v) }

// ReadI8 reads one signed byte.
func ReadI8(r io.Reader) (int8, error) {
	b, err := readByte(r)
	return int8(b), err
}

// WriteI8 writes one signed byte.
func WriteI8(w io.Writer, v int8) error { return writeByte(w, byte(v)) }

// ReadU16 reads a big-endian uint16.
func ReadU16(r io.Reader) (uint16, error) {
	var b [2]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b[:]), nil
}

// WriteU16 writes a big-endian uint16.
func WriteU16(w io.Writer, v uint16) error {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	_, err := w.Write(b[:])
	return err
}

// ReadI16 reads a big-endian int16.
func ReadI16(r io.Reader) (int16, error) {
	v, err := ReadU16(r)
	return int16(v), err
}

// WriteI16 writes a big-endian int16.
func WriteI16(w io.Writer, v int16) error { return WriteU16(w, uint16(v)) }

// ReadU32 reads a big-endian uint32.
func ReadU32(r io.Reader) (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b[:]), nil
}

// WriteU32 writes a big-endian uint32.
func WriteU32(w io.Writer, v uint32) error {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	_, err := w.Write(b[:])
	return err
}

// ReadI32 reads a big-endian int32.
func ReadI32(r io.Reader) (int32, error) {
	v, err := ReadU32(r)
	return int32(v), err
}

// WriteI32 writes a big-endian int32.
func WriteI32(w io.Writer, v int32) error { return WriteU32(w, uint32(v)) }

// ReadU64 reads a big-endian uint64.
func ReadU64(r io.Reader) (uint64, error) {
	var b [8]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b[:]), nil
}

// WriteU64 writes a big-endian uint64.
func WriteU64(w io.Writer, v uint64) error {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	_, err := w.Write(b[:])
	return err
}

// ReadI64 reads a big-endian int64.
func ReadI64(r io.Reader) (int64, error) {
	v, err := ReadU64(r)
	return int64(v), err
}

// WriteI64 writes a big-endian int64.
func WriteI64(w io.Writer, v int64) error { return WriteU64(w, uint64(v)) }

// ReadF32 reads a big-endian IEEE-754 float32.
func ReadF32(r io.Reader) (float32, error) {
	v, err := ReadU32(r)
	return math.Float32frombits(v), err
}

// WriteF32 writes a big-endian IEEE-754 float32.
func WriteF32(w io.Writer, v float32) error { return WriteU32(w, math.Float32bits(v)) }

// ReadF64 reads a big-endian IEEE-754 float64.
func ReadF64(r io.Reader) (float64, error) {
	v, err := ReadU64(r)
	return math.Float64frombits(v), err
}

// WriteF64 writes a big-endian IEEE-754 float64.
func WriteF64(w io.Writer, v float64) error { return WriteU64(w, math.Float64bits(v)) }
