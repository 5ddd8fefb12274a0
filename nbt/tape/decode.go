package tape

import (
	"io"

	"mcproto/mutf8"
	"mcproto/nbt"
	"mcproto/protoerr"
)

// decoder walks src directly instead of through an io.Reader: the whole
// point of the tape is to keep pointers into the original buffer, which
// requires operating on a byte slice rather than a stream.
type decoder struct {
	src   []byte
	pos   int
	tape  []Element
	names []string
}

// Decode parses src into a Tape. The source must remain valid and unmodified
// for the lifetime of the returned Tape: every scalar and array element is
// an offset into it, not a copy.
func Decode(src []byte, opts nbt.Options) (*Tape, error) {
	d := &decoder{
		src:   src,
		tape:  make([]Element, 0, len(src)/4+16),
		names: make([]string, 0, len(src)/4+16),
	}

	tag, err := d.u8()
	if err != nil {
		return nil, err
	}
	if tag != nbt.TagCompound {
		return nil, &protoerr.InvalidRootTagError{Tag: tag}
	}

	var rootName string
	if opts.Named {
		rootName, err = d.mutf8String()
		if err != nil {
			return nil, err
		}
	}

	st := newStack(opts.Limit())
	if err := d.readCompound(st); err != nil {
		return nil, err
	}

	return &Tape{
		Elements: d.tape,
		Names:    d.names,
		Source:   src,
		RootName: rootName,
	}, nil
}

func (d *decoder) need(n int) error {
	if d.pos+n > len(d.src) {
		return io.ErrUnexpectedEOF
	}
	return nil
}

func (d *decoder) u8() (byte, error) {
	if err := d.need(1); err != nil {
		return 0, err
	}
	b := d.src[d.pos]
	d.pos++
	return b, nil
}

func (d *decoder) u16() (uint16, error) {
	if err := d.need(2); err != nil {
		return 0, err
	}
	v := uint16(d.src[d.pos])<<8 | uint16(d.src[d.pos+1])
	d.pos += 2
	return v, nil
}

func (d *decoder) i32() (int32, error) {
	if err := d.need(4); err != nil {
		return 0, err
	}
	v := int32(uint32(d.src[d.pos])<<24 | uint32(d.src[d.pos+1])<<16 | uint32(d.src[d.pos+2])<<8 | uint32(d.src[d.pos+3]))
	d.pos += 4
	return v, nil
}

func (d *decoder) mutf8String() (string, error) {
	n, err := d.u16()
	if err != nil {
		return "", err
	}
	if err := d.need(int(n)); err != nil {
		return "", err
	}
	b := d.src[d.pos : d.pos+int(n)]
	d.pos += int(n)
	s, ok := mutf8.String(b).Decode()
	if !ok {
		return "", protoerr.ErrInvalidUtf8
	}
	return s, nil
}

// scalarWidth returns the wire byte width of a fixed-size tag.
func scalarWidth(tag byte) int {
	switch tag {
	case nbt.TagByte:
		return 1
	case nbt.TagShort:
		return 2
	case nbt.TagInt, nbt.TagFloat:
		return 4
	case nbt.TagLong, nbt.TagDouble:
		return 8
	default:
		return 0
	}
}

// readCompound appends the Compound's open element, decodes entries until
// End, and back-patches the open element's child count and the tape index of
// its first child.
func (d *decoder) readCompound(st *stack) error {
	openIndex := len(d.tape)
	d.tape = append(d.tape, newElement(KindCompound, 0))
	d.names = append(d.names, "")
	startIndex := len(d.tape)

	if err := st.push(openIndex); err != nil {
		return err
	}

	count := 0
	for {
		tagID, err := d.u8()
		if err != nil {
			return err
		}
		if tagID == nbt.TagEnd {
			break
		}
		name, err := d.mutf8String()
		if err != nil {
			return err
		}
		if err := d.readValue(tagID, name, st); err != nil {
			return err
		}
		count++
	}

	st.pop()
	d.tape[openIndex] = newElementLenOffset(KindCompound, count, startIndex)
	return nil
}

// readValue decodes one tagged value (scalar, array, string, list, or
// nested compound) named name, appending it (and, for containers, its
// whole subtree) to the tape in pre-order.
func (d *decoder) readValue(tagID byte, name string, st *stack) error {
	switch tagID {
	case nbt.TagByte, nbt.TagShort, nbt.TagInt, nbt.TagFloat, nbt.TagLong, nbt.TagDouble:
		width := scalarWidth(tagID)
		if err := d.need(width); err != nil {
			return err
		}
		offset := d.pos
		d.pos += width
		d.push(newElement(kindOfScalar(tagID), uint64(offset)), name)
		return nil

	case nbt.TagByteArray:
		n, err := d.i32()
		if err != nil {
			return err
		}
		length := int(n)
		if length < 0 {
			length = 0
		}
		if err := d.need(length); err != nil {
			return err
		}
		offset := d.pos
		d.pos += length
		d.push(newElementLenOffset(KindByteArray, length, offset), name)
		return nil

	case nbt.TagIntArray:
		return d.readNumArray(nbt.TagIntArray, KindIntArray, 4, name)

	case nbt.TagLongArray:
		return d.readNumArray(nbt.TagLongArray, KindLongArray, 8, name)

	case nbt.TagString:
		n, err := d.u16()
		if err != nil {
			return err
		}
		if err := d.need(int(n)); err != nil {
			return err
		}
		// The element aliases the raw MUTF-8 payload; validation stays
		// lazy, at Tape.String time, like every other string accessor.
		offset := d.pos
		d.pos += int(n)
		d.push(newElementLenOffset(KindString, int(n), offset), name)
		return nil

	case nbt.TagCompound:
		return d.readNamedCompound(name, st)

	case nbt.TagList:
		return d.readList(name, st)

	default:
		return &protoerr.InvalidTagError{Tag: tagID}
	}
}

func kindOfScalar(tag byte) Kind {
	switch tag {
	case nbt.TagByte:
		return KindByte
	case nbt.TagShort:
		return KindShort
	case nbt.TagInt:
		return KindInt
	case nbt.TagLong:
		return KindLong
	case nbt.TagFloat:
		return KindFloat
	case nbt.TagDouble:
		return KindDouble
	default:
		return KindEnd
	}
}

func (d *decoder) readNumArray(tag byte, kind Kind, width int, name string) error {
	n, err := d.i32()
	if err != nil {
		return err
	}
	length := int(n)
	if length < 0 {
		length = 0
	}
	if err := d.need(length * width); err != nil {
		return err
	}
	offset := d.pos
	d.pos += length * width
	d.push(newElementLenOffset(kind, length, offset), name)
	return nil
}

// readNamedCompound decodes a nested compound value, tagging the tape entry
// with the field name it holds before descending into its own open/close
// bookkeeping via readCompound.
func (d *decoder) readNamedCompound(name string, st *stack) error {
	before := len(d.tape)
	if err := d.readCompound(st); err != nil {
		return err
	}
	d.names[before] = name
	return nil
}

func (d *decoder) push(e Element, name string) {
	d.tape = append(d.tape, e)
	d.names = append(d.names, name)
}

// readList decodes a List value: its element tag, its length, and (unless
// length <= 0) its elements, recording them as a single "list of kind"
// element followed, for container element kinds, by that many subtrees.
func (d *decoder) readList(name string, st *stack) error {
	elemTag, err := d.u8()
	if err != nil {
		return err
	}
	n, err := d.i32()
	if err != nil {
		return err
	}
	length := int(n)
	if length <= 0 {
		d.push(newElementLenOffset(KindEmptyList, 0, 0), name)
		return nil
	}

	kind, ok := listKindOf(elemTag)
	if !ok {
		return &protoerr.InvalidTagError{Tag: elemTag}
	}

	if err := st.push(len(d.tape)); err != nil {
		return err
	}
	defer st.pop()

	switch elemTag {
	case nbt.TagByte, nbt.TagShort, nbt.TagInt, nbt.TagFloat, nbt.TagLong, nbt.TagDouble:
		width := scalarWidth(elemTag)
		if err := d.need(width * length); err != nil {
			return err
		}
		offset := d.pos
		d.pos += width * length
		d.push(newElementLenOffset(kind, length, offset), name)
		return nil

	default:
		// Container/variable-width element kinds: one tape entry describing
		// (count, startIndex), followed by `length` consecutive top-level
		// subtrees, each self-describing its own extent.
		openIndex := len(d.tape)
		d.push(newElement(kind, 0), name)
		startIndex := len(d.tape)
		for i := 0; i < length; i++ {
			if err := d.readValue(elemTag, "", st); err != nil {
				return err
			}
		}
		d.tape[openIndex] = newElementLenOffset(kind, length, startIndex)
		return nil
	}
}
