package packets

import "io"

// Packet is implemented by every concrete packet struct. ID, the owning
// State, and Direction are carried as package-level constants next to each
// struct (mirroring what a packet code generator would emit per spec), not
// as methods — Meta exists so generic code (the catalogue, logging) can
// still recover them from a value without a type switch.
type Packet interface {
	WriteTo(w io.Writer) error
	Meta() Meta
}

// Meta is the per-packet metadata a structural packet generator would
// normally emit as associated constants: its numeric id, which state it
// belongs to, which direction it travels, and whether reading it changes
// the connection's state (true only for Handshake, whose next_state field
// drives the Handshaking -> Status|Login transition).
type Meta struct {
	ID              int32
	State           State
	Direction       Direction
	CanChangeState  bool
	MinSize         int
	MaxSize         int
}
