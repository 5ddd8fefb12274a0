// Package owned implements the heap-allocated NBT tree: every scalar, array,
// list, and compound is copied out of the source reader into its own Go
// value. Handlers that need to mutate NBT or retain it past the lifetime of
// the frame that produced it should decode into this representation; the
// zero-copy variant lives in nbt/tape.
package owned

import (
	"io"

	"mcproto/buf"
	"mcproto/mutf8"
	"mcproto/nbt"
	"mcproto/protoerr"
)

// Tag is any of the twelve NBT value kinds (End is a framing byte, not a
// value, and so has no Tag implementation).
type Tag interface {
	Kind() byte
}

type (
	ByteTag      int8
	ShortTag     int16
	IntTag       int32
	LongTag      int64
	FloatTag     float32
	DoubleTag    float64
	ByteArrayTag []byte
	StringTag    string
	IntArrayTag  []int32
	LongArrayTag []int64
)

func (ByteTag) Kind() byte      { return nbt.TagByte }
func (ShortTag) Kind() byte     { return nbt.TagShort }
func (IntTag) Kind() byte       { return nbt.TagInt }
func (LongTag) Kind() byte      { return nbt.TagLong }
func (FloatTag) Kind() byte     { return nbt.TagFloat }
func (DoubleTag) Kind() byte    { return nbt.TagDouble }
func (ByteArrayTag) Kind() byte { return nbt.TagByteArray }
func (StringTag) Kind() byte    { return nbt.TagString }
func (IntArrayTag) Kind() byte  { return nbt.TagIntArray }
func (LongArrayTag) Kind() byte { return nbt.TagLongArray }

// List is a homogeneous sequence of values sharing ElemKind. An empty list
// with no declared element type is represented as ElemKind == nbt.TagEnd,
// matching the wire's (End, length=0) encoding.
type List struct {
	ElemKind byte
	Values   []Tag
}

func (List) Kind() byte { return nbt.TagList }

// Compound preserves insertion order and does not deduplicate keys: last-
// writer-wins semantics, if wanted, are a concern for the consumer.
type Compound struct {
	Entries []Entry
}

func (*Compound) Kind() byte { return nbt.TagCompound }

// Entry is one (name, value) pair inside a Compound.
type Entry struct {
	Name string
	Tag  Tag
}

// Nbt is a full named root: the (tag=Compound, name, body, End) framing.
type Nbt struct {
	Name string
	Root *Compound
}

// Read decodes a root NBT value. The root tag must be Compound; anything
// else is InvalidRootTagError. When opts.Named is false the root name is
// assumed absent and Nbt.Name is left empty.
func Read(r io.Reader, opts nbt.Options) (*Nbt, error) {
	tag, err := buf.ReadU8(r)
	if err != nil {
		return nil, err
	}
	if tag != nbt.TagCompound {
		return nil, &protoerr.InvalidRootTagError{Tag: tag}
	}

	var name string
	if opts.Named {
		name, err = readMUTF8String(r)
		if err != nil {
			return nil, err
		}
	}

	root, err := readCompound(r, 1, opts.Limit())
	if err != nil {
		return nil, err
	}
	return &Nbt{Name: name, Root: root}, nil
}

// Write encodes n as a root NBT value: the Compound tag byte, optionally the
// root name, the compound body, and the terminating End tag.
func Write(w io.Writer, n *Nbt, opts nbt.Options) error {
	if err := buf.WriteU8(w, nbt.TagCompound); err != nil {
		return err
	}
	if opts.Named {
		if err := writeMUTF8String(w, n.Name); err != nil {
			return err
		}
	}
	return writeCompoundBody(w, n.Root)
}

func readCompound(r io.Reader, depth, limit int) (*Compound, error) {
	if depth > limit {
		return nil, protoerr.ErrDepthLimitExceeded
	}
	var c Compound
	for {
		tagID, err := buf.ReadU8(r)
		if err != nil {
			return nil, err
		}
		if tagID == nbt.TagEnd {
			return &c, nil
		}
		name, err := readMUTF8String(r)
		if err != nil {
			return nil, err
		}
		tag, err := readTag(r, tagID, depth+1, limit)
		if err != nil {
			return nil, err
		}
		c.Entries = append(c.Entries, Entry{Name: name, Tag: tag})
	}
}

func readTag(r io.Reader, tagID byte, depth, limit int) (Tag, error) {
	switch tagID {
	case nbt.TagByte:
		v, err := buf.ReadI8(r)
		return ByteTag(v), err
	case nbt.TagShort:
		v, err := buf.ReadI16(r)
		return ShortTag(v), err
	case nbt.TagInt:
		v, err := buf.ReadI32(r)
		return IntTag(v), err
	case nbt.TagLong:
		v, err := buf.ReadI64(r)
		return LongTag(v), err
	case nbt.TagFloat:
		v, err := buf.ReadF32(r)
		return FloatTag(v), err
	case nbt.TagDouble:
		v, err := buf.ReadF64(r)
		return DoubleTag(v), err
	case nbt.TagByteArray:
		v, err := readByteArray(r)
		return ByteArrayTag(v), err
	case nbt.TagString:
		v, err := readMUTF8String(r)
		return StringTag(v), err
	case nbt.TagList:
		return readList(r, depth, limit)
	case nbt.TagCompound:
		if depth > limit {
			return nil, protoerr.ErrDepthLimitExceeded
		}
		return readCompound(r, depth, limit)
	case nbt.TagIntArray:
		v, err := readIntArray(r)
		return IntArrayTag(v), err
	case nbt.TagLongArray:
		v, err := readLongArray(r)
		return LongArrayTag(v), err
	default:
		return nil, &protoerr.InvalidTagError{Tag: tagID}
	}
}

func readList(r io.Reader, depth, limit int) (Tag, error) {
	if depth > limit {
		return nil, protoerr.ErrDepthLimitExceeded
	}
	elemKind, err := buf.ReadU8(r)
	if err != nil {
		return nil, err
	}
	n, err := buf.ReadI32(r)
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		return List{ElemKind: nbt.TagEnd}, nil
	}
	values := make([]Tag, n)
	for i := range values {
		v, err := readTag(r, elemKind, depth+1, limit)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return List{ElemKind: elemKind, Values: values}, nil
}

func readByteArray(r io.Reader) ([]byte, error) {
	n, err := buf.ReadI32(r)
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

func readIntArray(r io.Reader) ([]int32, error) {
	n, err := buf.ReadI32(r)
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, nil
	}
	out := make([]int32, n)
	for i := range out {
		if out[i], err = buf.ReadI32(r); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func readLongArray(r io.Reader) ([]int64, error) {
	n, err := buf.ReadI32(r)
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, nil
	}
	out := make([]int64, n)
	for i := range out {
		if out[i], err = buf.ReadI64(r); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func readMUTF8String(r io.Reader) (string, error) {
	n, err := buf.ReadU16(r)
	if err != nil {
		return "", err
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", err
	}
	s, ok := mutf8.String(b).Decode()
	if !ok {
		return "", protoerr.ErrInvalidUtf8
	}
	return s, nil
}

// maxU16 is the writer's silent-truncation cap for string byte length, and
// maxI32 the cap for every array/list element count: NBT's length fields are
// at most u16/i32 wide, and pathological input is truncated rather than
// rejected.
const maxU16 = 0xFFFF
const maxI32 = 0x7FFFFFFF

func writeMUTF8String(w io.Writer, s string) error {
	b := mutf8.FromString(s).Bytes()
	if len(b) > maxU16 {
		b = b[:maxU16]
	}
	if err := buf.WriteU16(w, uint16(len(b))); err != nil {
		return err
	}
	_, err := w.Write(b)
	return err
}

func writeCompoundBody(w io.Writer, c *Compound) error {
	for _, e := range c.Entries {
		if err := buf.WriteU8(w, e.Tag.Kind()); err != nil {
			return err
		}
		if err := writeMUTF8String(w, e.Name); err != nil {
			return err
		}
		if err := writeTagBody(w, e.Tag); err != nil {
			return err
		}
	}
	return buf.WriteU8(w, nbt.TagEnd)
}

func writeTagBody(w io.Writer, t Tag) error {
	switch v := t.(type) {
	case ByteTag:
		return buf.WriteI8(w, int8(v))
	case ShortTag:
		return buf.WriteI16(w, int16(v))
	case IntTag:
		return buf.WriteI32(w, int32(v))
	case LongTag:
		return buf.WriteI64(w, int64(v))
	case FloatTag:
		return buf.WriteF32(w, float32(v))
	case DoubleTag:
		return buf.WriteF64(w, float64(v))
	case ByteArrayTag:
		return writeByteArray(w, v)
	case StringTag:
		return writeMUTF8String(w, string(v))
	case List:
		return writeList(w, v)
	case *Compound:
		return writeCompoundBody(w, v)
	case IntArrayTag:
		return writeIntArray(w, v)
	case LongArrayTag:
		return writeLongArray(w, v)
	default:
		return &protoerr.InvalidTagError{Tag: t.Kind()}
	}
}

func cappedLen(n int) int32 {
	if n > maxI32 {
		return maxI32
	}
	return int32(n)
}

func writeByteArray(w io.Writer, v []byte) error {
	n := cappedLen(len(v))
	if err := buf.WriteI32(w, n); err != nil {
		return err
	}
	_, err := w.Write(v[:n])
	return err
}

func writeIntArray(w io.Writer, v []int32) error {
	n := cappedLen(len(v))
	if err := buf.WriteI32(w, n); err != nil {
		return err
	}
	for _, e := range v[:n] {
		if err := buf.WriteI32(w, e); err != nil {
			return err
		}
	}
	return nil
}

func writeLongArray(w io.Writer, v []int64) error {
	n := cappedLen(len(v))
	if err := buf.WriteI32(w, n); err != nil {
		return err
	}
	for _, e := range v[:n] {
		if err := buf.WriteI64(w, e); err != nil {
			return err
		}
	}
	return nil
}

func writeList(w io.Writer, l List) error {
	elemKind := l.ElemKind
	if len(l.Values) == 0 {
		elemKind = nbt.TagEnd
	}
	if err := buf.WriteU8(w, elemKind); err != nil {
		return err
	}
	n := cappedLen(len(l.Values))
	if err := buf.WriteI32(w, n); err != nil {
		return err
	}
	for _, v := range l.Values[:n] {
		if err := writeTagBody(w, v); err != nil {
			return err
		}
	}
	return nil
}
