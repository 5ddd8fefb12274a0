package buf

import "io"

// ReadSlice reads a VarInt-length-prefixed array of T, decoding each element
// with readElem. This is the default array framing (no explicit length-type
// attribute).
func ReadSlice[T any](r io.Reader, readElem func(io.Reader) (T, error)) ([]T, error) {
	n, err := ReadLength(r)
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, nil
	}
	out := make([]T, n)
	for i := range out {
		v, err := readElem(r)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// WriteSlice writes v as a VarInt-length-prefixed array.
func WriteSlice[T any](w io.Writer, v []T, writeElem func(io.Writer, T) error) error {
	if err := WriteLength(w, len(v)); err != nil {
		return err
	}
	for _, e := range v {
		if err := writeElem(w, e); err != nil {
			return err
		}
	}
	return nil
}

// ReadFixedLenBytes reads a byte array prefixed by a fixed-width length
// field, used e.g. for the u16-prefixed byte strings inside
// EncryptionRequest/EncryptionResponse.
func ReadFixedLenBytes(r io.Reader, readLen func(io.Reader) (int, error)) ([]byte, error) {
	n, err := readLen(r)
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, nil
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return b, nil
}

// WriteFixedLenBytes writes v prefixed by a fixed-width length field.
func WriteFixedLenBytes(w io.Writer, v []byte, writeLen func(io.Writer, int) error) error {
	if err := writeLen(w, len(v)); err != nil {
		return err
	}
	_, err := w.Write(v)
	return err
}

// ReadU16LenBytes reads a byte array prefixed by a big-endian uint16 length —
// the concrete fixed-length-array shape packets in the login state use for
// shared secrets, verify tokens, and public keys.
func ReadU16LenBytes(r io.Reader) ([]byte, error) {
	return ReadFixedLenBytes(r, func(r io.Reader) (int, error) {
		n, err := ReadU16(r)
		return int(n), err
	})
}

// WriteU16LenBytes writes v prefixed by a big-endian uint16 length.
func WriteU16LenBytes(w io.Writer, v []byte) error {
	return WriteFixedLenBytes(w, v, func(w io.Writer, n int) error {
		return WriteU16(w, uint16(n))
	})
}
