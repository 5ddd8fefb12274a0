package tape

import (
	"bytes"
	"errors"
	"testing"

	"mcproto/nbt"
	"mcproto/nbt/owned"
	"mcproto/protoerr"
)

func encode(t *testing.T, n *owned.Nbt, opts nbt.Options) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := owned.Write(&buf, n, opts); err != nil {
		t.Fatalf("owned.Write: %v", err)
	}
	return buf.Bytes()
}

func TestDecodeRoundTripsThroughOwned(t *testing.T) {
	in := &owned.Nbt{
		Name: "root",
		Root: &owned.Compound{Entries: []owned.Entry{
			{Name: "byte", Tag: owned.ByteTag(5)},
			{Name: "str", Tag: owned.StringTag("hello")},
			{Name: "ints", Tag: owned.IntArrayTag([]int32{1, 2, -3})},
			{Name: "nested", Tag: &owned.Compound{Entries: []owned.Entry{
				{Name: "inner", Tag: owned.DoubleTag(1.5)},
			}}},
			{Name: "list", Tag: owned.List{ElemKind: nbt.TagLong, Values: []owned.Tag{
				owned.LongTag(10), owned.LongTag(-20),
			}}},
			{Name: "compound_list", Tag: owned.List{ElemKind: nbt.TagCompound, Values: []owned.Tag{
				&owned.Compound{Entries: []owned.Entry{{Name: "x", Tag: owned.ByteTag(1)}}},
				&owned.Compound{Entries: []owned.Entry{{Name: "x", Tag: owned.ByteTag(2)}}},
			}}},
		}},
	}

	src := encode(t, in, nbt.DefaultOptions)
	tp, err := Decode(src, nbt.DefaultOptions)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if tp.RootName != "root" {
		t.Fatalf("RootName = %q, want %q", tp.RootName, "root")
	}

	got := tp.ToOwned()
	if got.Name != in.Name {
		t.Fatalf("Name = %q, want %q", got.Name, in.Name)
	}
	if len(got.Root.Entries) != len(in.Root.Entries) {
		t.Fatalf("entry count = %d, want %d", len(got.Root.Entries), len(in.Root.Entries))
	}
	if got.Root.Entries[1].Tag != owned.StringTag("hello") {
		t.Fatalf("str entry = %v", got.Root.Entries[1].Tag)
	}
}

func TestDecodeScalarsAccessors(t *testing.T) {
	in := &owned.Nbt{Root: &owned.Compound{Entries: []owned.Entry{
		{Name: "b", Tag: owned.ByteTag(-1)},
		{Name: "s", Tag: owned.ShortTag(300)},
		{Name: "i", Tag: owned.IntTag(-70000)},
		{Name: "l", Tag: owned.LongTag(1 << 40)},
		{Name: "f", Tag: owned.FloatTag(2.5)},
		{Name: "d", Tag: owned.DoubleTag(3.25)},
	}}}
	opts := nbt.Options{Named: false}
	src := encode(t, in, opts)
	tp, err := Decode(src, opts)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	entries := tp.CompoundEntries(0)
	if len(entries) != 6 {
		t.Fatalf("entries = %d, want 6", len(entries))
	}
	if v := tp.Byte(entries[0]); v != -1 {
		t.Fatalf("Byte = %d, want -1", v)
	}
	if v := tp.Short(entries[1]); v != 300 {
		t.Fatalf("Short = %d, want 300", v)
	}
	if v := tp.Int(entries[2]); v != -70000 {
		t.Fatalf("Int = %d, want -70000", v)
	}
	if v := tp.Long(entries[3]); v != 1<<40 {
		t.Fatalf("Long = %d, want %d", v, 1<<40)
	}
	if v := tp.Float(entries[4]); v != 2.5 {
		t.Fatalf("Float = %v, want 2.5", v)
	}
	if v := tp.Double(entries[5]); v != 3.25 {
		t.Fatalf("Double = %v, want 3.25", v)
	}
}

func TestDecodeInvalidRootTag(t *testing.T) {
	_, err := Decode([]byte{nbt.TagByte}, nbt.DefaultOptions)
	var rootErr *protoerr.InvalidRootTagError
	if !errors.As(err, &rootErr) {
		t.Fatalf("error = %v, want *InvalidRootTagError", err)
	}
}

func TestDecodeDepthLimitExceeded(t *testing.T) {
	in := &owned.Nbt{Root: &owned.Compound{Entries: []owned.Entry{
		{Name: "a", Tag: &owned.Compound{Entries: []owned.Entry{
			{Name: "b", Tag: &owned.Compound{Entries: []owned.Entry{
				{Name: "c", Tag: owned.ByteTag(1)},
			}}},
		}}},
	}}}
	opts := nbt.Options{Named: false, DepthLimit: 100}
	src := encode(t, in, opts)

	_, err := Decode(src, nbt.Options{Named: false, DepthLimit: 2})
	if !errors.Is(err, protoerr.ErrDepthLimitExceeded) {
		t.Fatalf("error = %v, want ErrDepthLimitExceeded", err)
	}
}

func TestDecodeReservesCapacityProportionalToInput(t *testing.T) {
	in := &owned.Nbt{Root: &owned.Compound{Entries: []owned.Entry{
		{Name: "a", Tag: owned.ByteTag(1)},
	}}}
	opts := nbt.Options{Named: false}
	src := encode(t, in, opts)
	tp, err := Decode(src, opts)
	if err != nil {
		t.Fatal(err)
	}
	if cap(tp.Elements) == 0 {
		t.Fatal("Elements capacity not reserved")
	}
}
