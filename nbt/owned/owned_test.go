package owned

import (
	"bytes"
	"errors"
	"testing"

	"mcproto/nbt"
	"mcproto/protoerr"
)

func TestRoundTripMinimal(t *testing.T) {
	in := &Nbt{
		Name: "hello world",
		Root: &Compound{Entries: []Entry{
			{Name: "name", Tag: StringTag("Bananrama")},
		}},
	}

	var buf bytes.Buffer
	if err := Write(&buf, in, nbt.DefaultOptions); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Read(&buf, nbt.DefaultOptions)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.Name != in.Name {
		t.Fatalf("Name = %q, want %q", got.Name, in.Name)
	}
	if len(got.Root.Entries) != 1 || got.Root.Entries[0].Tag != StringTag("Bananrama") {
		t.Fatalf("Root = %+v", got.Root)
	}
}

func TestRoundTripAllScalarKinds(t *testing.T) {
	in := &Nbt{Root: &Compound{Entries: []Entry{
		{Name: "byte", Tag: ByteTag(-1)},
		{Name: "short", Tag: ShortTag(1234)},
		{Name: "int", Tag: IntTag(-123456)},
		{Name: "long", Tag: LongTag(1 << 40)},
		{Name: "float", Tag: FloatTag(1.5)},
		{Name: "double", Tag: DoubleTag(2.25)},
		{Name: "bytes", Tag: ByteArrayTag([]byte{1, 2, 3})},
		{Name: "ints", Tag: IntArrayTag([]int32{1, -2, 3})},
		{Name: "longs", Tag: LongArrayTag([]int64{1, -2, 3})},
		{Name: "nested", Tag: &Compound{Entries: []Entry{
			{Name: "inner", Tag: ByteTag(7)},
		}}},
		{Name: "list", Tag: List{ElemKind: nbt.TagInt, Values: []Tag{IntTag(1), IntTag(2)}}},
		{Name: "empty_list", Tag: List{ElemKind: nbt.TagEnd}},
	}}}

	opts := nbt.Options{Named: false}
	var buf bytes.Buffer
	if err := Write(&buf, in, opts); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := Read(&buf, opts)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got.Root.Entries) != len(in.Root.Entries) {
		t.Fatalf("entry count = %d, want %d", len(got.Root.Entries), len(in.Root.Entries))
	}
}

// TestMinimalExactBytes decodes a one-child compound from its literal wire
// bytes and checks that re-encoding reproduces them bit for bit.
func TestMinimalExactBytes(t *testing.T) {
	in := []byte{
		0x0A, 0x00, 0x00, // Compound, empty name
		0x01, 0x00, 0x00, 0x2A, // Byte, empty name, 42
		0x00, // End
	}
	got, err := Read(bytes.NewReader(in), nbt.DefaultOptions)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.Name != "" {
		t.Fatalf("Name = %q, want empty", got.Name)
	}
	if len(got.Root.Entries) != 1 || got.Root.Entries[0].Name != "" || got.Root.Entries[0].Tag != ByteTag(42) {
		t.Fatalf("Root = %+v", got.Root)
	}

	var out bytes.Buffer
	if err := Write(&out, got, nbt.DefaultOptions); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !bytes.Equal(out.Bytes(), in) {
		t.Fatalf("re-encode = %x, want %x", out.Bytes(), in)
	}
}

func TestInvalidRootTag(t *testing.T) {
	_, err := Read(bytes.NewReader([]byte{nbt.TagByte}), nbt.DefaultOptions)
	var rootErr *protoerr.InvalidRootTagError
	if !errors.As(err, &rootErr) {
		t.Fatalf("error = %v, want *InvalidRootTagError", err)
	}
}

func TestInvalidTag(t *testing.T) {
	// Compound root, named=false, one entry with an unknown tag id 200 and
	// an empty name (the name is read before the entry's tag is dispatched).
	in := []byte{nbt.TagCompound, 200, 0x00, 0x00}
	_, err := Read(bytes.NewReader(in), nbt.Options{Named: false})
	var tagErr *protoerr.InvalidTagError
	if !errors.As(err, &tagErr) {
		t.Fatalf("error = %v, want *InvalidTagError", err)
	}
}

func TestDepthLimitExceeded(t *testing.T) {
	// Build a compound nested one level deeper than a depth limit of 2.
	c := &Compound{Entries: []Entry{
		{Name: "a", Tag: &Compound{Entries: []Entry{
			{Name: "b", Tag: &Compound{Entries: []Entry{
				{Name: "c", Tag: ByteTag(1)},
			}}},
		}}},
	}}
	var buf bytes.Buffer
	if err := Write(&buf, &Nbt{Root: c}, nbt.Options{Named: false, DepthLimit: 100}); err != nil {
		t.Fatal(err)
	}

	_, err := Read(&buf, nbt.Options{Named: false, DepthLimit: 2})
	if !errors.Is(err, protoerr.ErrDepthLimitExceeded) {
		t.Fatalf("error = %v, want ErrDepthLimitExceeded", err)
	}
}

func TestEntryOrderPreservedNoDedup(t *testing.T) {
	in := &Nbt{Root: &Compound{Entries: []Entry{
		{Name: "k", Tag: ByteTag(1)},
		{Name: "k", Tag: ByteTag(2)},
	}}}
	var buf bytes.Buffer
	if err := Write(&buf, in, nbt.Options{Named: false}); err != nil {
		t.Fatal(err)
	}
	got, err := Read(&buf, nbt.Options{Named: false})
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Root.Entries) != 2 || got.Root.Entries[0].Tag != ByteTag(1) || got.Root.Entries[1].Tag != ByteTag(2) {
		t.Fatalf("entries = %+v, want duplicate keys preserved in order", got.Root.Entries)
	}
}
