package tape

import (
	"mcproto/endian"
	"mcproto/mutf8"
	"mcproto/nbt"
	"mcproto/nbt/owned"
)

// Byte decodes a KindByte element at index i from its backed offset in Source.
func (t *Tape) Byte(i int) int8 {
	off := int(t.Elements[i].Data())
	return int8(t.Source[off])
}

// Short decodes a KindShort element.
func (t *Tape) Short(i int) int16 {
	off := int(t.Elements[i].Data())
	return endian.Int16FromBig(t.Source[off:])
}

// Int decodes a KindInt element.
func (t *Tape) Int(i int) int32 {
	off := int(t.Elements[i].Data())
	return endian.Int32FromBig(t.Source[off:])
}

// Long decodes a KindLong element.
func (t *Tape) Long(i int) int64 {
	off := int(t.Elements[i].Data())
	return endian.Int64FromBig(t.Source[off:])
}

// Float decodes a KindFloat element.
func (t *Tape) Float(i int) float32 {
	off := int(t.Elements[i].Data())
	return endian.Float32FromBig(t.Source[off:])
}

// Double decodes a KindDouble element.
func (t *Tape) Double(i int) float64 {
	off := int(t.Elements[i].Data())
	return endian.Float64FromBig(t.Source[off:])
}

// ByteArray returns the raw bytes of a KindByteArray element, aliasing Source.
func (t *Tape) ByteArray(i int) []byte {
	n, off := t.Elements[i].LenOffset()
	return t.Source[off : off+n]
}

// String decodes a KindString element's MUTF-8 bytes, aliasing Source for
// the byte view and allocating only if decoding requires it.
func (t *Tape) String(i int) (string, bool) {
	n, off := t.Elements[i].LenOffset()
	return mutf8.String(t.Source[off : off+n]).Decode()
}

// IntArray decodes a KindIntArray element.
func (t *Tape) IntArray(i int) []int32 {
	n, off := t.Elements[i].LenOffset()
	out := make([]int32, n)
	for j := range out {
		out[j] = endian.Int32FromBig(t.Source[off+j*4:])
	}
	return out
}

// LongArray decodes a KindLongArray element.
func (t *Tape) LongArray(i int) []int64 {
	n, off := t.Elements[i].LenOffset()
	out := make([]int64, n)
	for j := range out {
		out[j] = endian.Int64FromBig(t.Source[off+j*8:])
	}
	return out
}

// CompoundEntries returns the tape indices of the direct children of the
// Compound element at i.
func (t *Tape) CompoundEntries(i int) []int {
	count, start := t.Elements[i].LenOffset()
	out := make([]int, 0, count)
	idx := start
	for n := 0; n < count; n++ {
		out = append(out, idx)
		idx = t.skip(idx)
	}
	return out
}

// skip returns the tape index one past the subtree rooted at i.
func (t *Tape) skip(i int) int {
	k := t.Elements[i].Kind()
	switch k {
	case KindCompound, KindListList, KindCompoundList,
		KindByteArrayList, KindStringList, KindIntArrayList, KindLongArrayList:
		count, start := t.Elements[i].LenOffset()
		idx := start
		for n := 0; n < count; n++ {
			idx = t.skip(idx)
		}
		return idx
	default:
		return i + 1
	}
}

// ToOwned materializes the whole tape into an owned.Nbt tree, for callers
// that need to retain or mutate a value past Source's lifetime.
func (t *Tape) ToOwned() *owned.Nbt {
	root := t.compoundToOwned(0)
	return &owned.Nbt{Name: t.RootName, Root: root}
}

func (t *Tape) compoundToOwned(i int) *owned.Compound {
	c := &owned.Compound{}
	for _, child := range t.CompoundEntries(i) {
		c.Entries = append(c.Entries, owned.Entry{
			Name: t.Names[child],
			Tag:  t.tagToOwned(child),
		})
	}
	return c
}

func (t *Tape) tagToOwned(i int) owned.Tag {
	switch t.Elements[i].Kind() {
	case KindByte:
		return owned.ByteTag(t.Byte(i))
	case KindShort:
		return owned.ShortTag(t.Short(i))
	case KindInt:
		return owned.IntTag(t.Int(i))
	case KindLong:
		return owned.LongTag(t.Long(i))
	case KindFloat:
		return owned.FloatTag(t.Float(i))
	case KindDouble:
		return owned.DoubleTag(t.Double(i))
	case KindByteArray:
		return owned.ByteArrayTag(t.ByteArray(i))
	case KindString:
		s, _ := t.String(i)
		return owned.StringTag(s)
	case KindIntArray:
		return owned.IntArrayTag(t.IntArray(i))
	case KindLongArray:
		return owned.LongArrayTag(t.LongArray(i))
	case KindCompound:
		return t.compoundToOwned(i)
	case KindEmptyList:
		return owned.List{ElemKind: nbt.TagEnd}
	default:
		return t.listToOwned(i)
	}
}

func (t *Tape) listToOwned(i int) owned.Tag {
	count, start := t.Elements[i].LenOffset()
	var elemKind byte
	var values []owned.Tag

	switch t.Elements[i].Kind() {
	case KindByteList:
		elemKind = nbt.TagByte
		for j := 0; j < count; j++ {
			values = append(values, owned.ByteTag(int8(t.Source[start+j])))
		}
	case KindShortList:
		elemKind = nbt.TagShort
		for j := 0; j < count; j++ {
			values = append(values, owned.ShortTag(endian.Int16FromBig(t.Source[start+j*2:])))
		}
	case KindIntList:
		elemKind = nbt.TagInt
		for j := 0; j < count; j++ {
			values = append(values, owned.IntTag(endian.Int32FromBig(t.Source[start+j*4:])))
		}
	case KindLongList:
		elemKind = nbt.TagLong
		for j := 0; j < count; j++ {
			values = append(values, owned.LongTag(endian.Int64FromBig(t.Source[start+j*8:])))
		}
	case KindFloatList:
		elemKind = nbt.TagFloat
		for j := 0; j < count; j++ {
			values = append(values, owned.FloatTag(endian.Float32FromBig(t.Source[start+j*4:])))
		}
	case KindDoubleList:
		elemKind = nbt.TagDouble
		for j := 0; j < count; j++ {
			values = append(values, owned.DoubleTag(endian.Float64FromBig(t.Source[start+j*8:])))
		}
	case KindByteArrayList, KindStringList, KindListList, KindCompoundList, KindIntArrayList, KindLongArrayList:
		idx := start
		for j := 0; j < count; j++ {
			values = append(values, t.tagToOwned(idx))
			idx = t.skip(idx)
		}
		switch t.Elements[i].Kind() {
		case KindByteArrayList:
			elemKind = nbt.TagByteArray
		case KindStringList:
			elemKind = nbt.TagString
		case KindListList:
			elemKind = nbt.TagList
		case KindCompoundList:
			elemKind = nbt.TagCompound
		case KindIntArrayList:
			elemKind = nbt.TagIntArray
		case KindLongArrayList:
			elemKind = nbt.TagLongArray
		}
	}
	return owned.List{ElemKind: elemKind, Values: values}
}
