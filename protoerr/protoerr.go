// Package protoerr defines the fatal-error taxonomy shared by the buffer codec,
// the NBT codec, and the frame dispatcher.
//
// Every error here is connection-fatal: nothing in this package is retriable,
// and no constructor here ever panics on attacker-controlled input.
package protoerr

import (
	"errors"
	"fmt"
)

// Sentinel errors matched with errors.Is. Wrap these with fmt.Errorf("...: %w", Err)
// when extra context (the offending byte, the declared length) is useful.
var (
	ErrInvalidVarInt        = errors.New("invalid varint")
	ErrInvalidVarLong       = errors.New("invalid varlong")
	ErrInvalidUtf8          = errors.New("invalid utf-8")
	ErrInvalidEnumVariant   = errors.New("invalid enum variant")
	ErrDepthLimitExceeded   = errors.New("nbt depth limit exceeded")
	ErrTrailingBytesInFrame = errors.New("trailing bytes in frame")
	ErrEmptyFrame           = errors.New("empty frame: no packet id")
)

// InvalidStringLengthError reports a declared string byte length over the cap.
type InvalidStringLengthError struct {
	Max    int
	Actual int
}

func (e *InvalidStringLengthError) Error() string {
	return fmt.Sprintf("invalid string length: %d exceeds max %d bytes", e.Actual, e.Max)
}

// InvalidRootTagError reports an NBT root whose discriminant isn't Compound.
type InvalidRootTagError struct {
	Tag byte
}

func (e *InvalidRootTagError) Error() string {
	return fmt.Sprintf("invalid nbt root tag: %#x", e.Tag)
}

// InvalidTagError reports an unknown NBT tag discriminant.
type InvalidTagError struct {
	Tag byte
}

func (e *InvalidTagError) Error() string {
	return fmt.Sprintf("invalid nbt tag: %#x", e.Tag)
}

// UnknownPacketIDError reports a packet id with no decoder registered for the
// connection's current state.
type UnknownPacketIDError struct {
	ID    int32
	State fmt.Stringer
}

func (e *UnknownPacketIDError) Error() string {
	return fmt.Sprintf("unknown packet id %d in state %s", e.ID, e.State)
}
