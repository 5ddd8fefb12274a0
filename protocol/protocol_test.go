package protocol

import (
	"bytes"
	"io"
	"testing"
)

func TestEncodePacketRoundTrip(t *testing.T) {
	body := []byte("hello world")
	frame := EncodePacket(0x00, body)

	length, prefixLen, err := PeekFrameLength(frame)
	if err != nil {
		t.Fatalf("PeekFrameLength failed: %v", err)
	}
	if length != len(frame)-prefixLen {
		t.Errorf("length = %d, want %d", length, len(frame)-prefixLen)
	}

	rest := frame[prefixLen : prefixLen+length]
	if rest[0] != 0x00 {
		t.Errorf("packet id byte = %#x, want 0x00", rest[0])
	}
	if !bytes.Equal(rest[1:], body) {
		t.Errorf("body mismatch: got %q, want %q", rest[1:], body)
	}
}

func TestPeekFrameLengthIncomplete(t *testing.T) {
	// A continuation-bit byte with nothing following: not yet a complete VarInt.
	_, _, err := PeekFrameLength([]byte{0x80})
	if err != ErrIncomplete {
		t.Fatalf("err = %v, want ErrIncomplete", err)
	}
}

func TestPeekFrameLengthEmpty(t *testing.T) {
	_, _, err := PeekFrameLength(nil)
	if err != ErrIncomplete {
		t.Fatalf("err = %v, want ErrIncomplete", err)
	}
}

func TestPeekFrameLengthOverLong(t *testing.T) {
	// 3 continuation bytes (a 4-byte encoding) exceed the 3-byte length-VarInt cap.
	_, _, err := PeekFrameLength([]byte{0xFF, 0xFF, 0xFF, 0x01})
	if err == nil || err == ErrIncomplete {
		t.Fatalf("err = %v, want a non-incomplete error", err)
	}
}

func TestEncodeWritable(t *testing.T) {
	frame, err := EncodeWritable(0x01, singleByteWritable(0x2A))
	if err != nil {
		t.Fatalf("EncodeWritable failed: %v", err)
	}
	length, prefixLen, err := PeekFrameLength(frame)
	if err != nil {
		t.Fatalf("PeekFrameLength failed: %v", err)
	}
	want := []byte{0x01, 0x2A}
	if !bytes.Equal(frame[prefixLen:prefixLen+length], want) {
		t.Errorf("frame body = %v, want %v", frame[prefixLen:prefixLen+length], want)
	}
}

// singleByteWritable is a minimal buf.Writable used to exercise EncodeWritable.
type singleByteWritable byte

func (b singleByteWritable) WriteTo(w io.Writer) error {
	_, err := w.Write([]byte{byte(b)})
	return err
}
