package buf

import "io"

// ReadOption reads a one-byte presence flag followed by T iff present.
func ReadOption[T any](r io.Reader, readVal func(io.Reader) (T, error)) (*T, error) {
	present, err := ReadBool(r)
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, nil
	}
	v, err := readVal(r)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// WriteOption writes a one-byte presence flag, followed by *v iff non-nil.
func WriteOption[T any](w io.Writer, v *T, writeVal func(io.Writer, T) error) error {
	if v == nil {
		return WriteBool(w, false)
	}
	if err := WriteBool(w, true); err != nil {
		return err
	}
	return writeVal(w, *v)
}
