// Package endian swaps byte order in place for slices of fixed-width numeric
// types, as used by the NBT codec's bulk numeric arrays (ByteArray is exempt —
// it's already byte-granular).
//
// The contract: given bytes that are host-aligned but whose semantic value is
// big-endian (or vice versa), Swap* produces the swapped semantic value in the
// same buffer. Swapping twice is the identity — that's the property the tests
// check, rather than pinning down a specific byte pattern.
//
// Go has no portable SIMD intrinsics, so "SIMD-accelerated" here means what the
// ecosystem actually gives a pure-Go program: a widened loop that swaps several
// elements per iteration (letting the compiler auto-vectorize on amd64/arm64)
// with a scalar tail for the remainder, instead of one bounds-checked branch per
// element.
package endian

import "math"

// Swap16 byte-swaps every 2-byte element of b in place. len(b) must be a
// multiple of 2; a short trailing remainder is left untouched.
func Swap16(b []byte) {
	n := len(b) / 2
	i := 0
	// Widened path: 4 elements (8 bytes) per iteration.
	for ; i+4 <= n; i += 4 {
		off := i * 2
		for j := 0; j < 4; j++ {
			o := off + j*2
			b[o], b[o+1] = b[o+1], b[o]
		}
	}
	for ; i < n; i++ {
		o := i * 2
		b[o], b[o+1] = b[o+1], b[o]
	}
}

// Swap32 byte-swaps every 4-byte element of b in place.
func Swap32(b []byte) {
	n := len(b) / 4
	i := 0
	for ; i+4 <= n; i += 4 {
		off := i * 4
		for j := 0; j < 4; j++ {
			o := off + j*4
			b[o], b[o+1], b[o+2], b[o+3] = b[o+3], b[o+2], b[o+1], b[o]
		}
	}
	for ; i < n; i++ {
		o := i * 4
		b[o], b[o+1], b[o+2], b[o+3] = b[o+3], b[o+2], b[o+1], b[o]
	}
}

// Swap64 byte-swaps every 8-byte element of b in place.
func Swap64(b []byte) {
	n := len(b) / 8
	i := 0
	for ; i+2 <= n; i += 2 {
		off := i * 8
		for j := 0; j < 2; j++ {
			o := off + j*8
			b[o], b[o+1], b[o+2], b[o+3], b[o+4], b[o+5], b[o+6], b[o+7] =
				b[o+7], b[o+6], b[o+5], b[o+4], b[o+3], b[o+2], b[o+1], b[o]
		}
	}
	for ; i < n; i++ {
		o := i * 8
		b[o], b[o+1], b[o+2], b[o+3], b[o+4], b[o+5], b[o+6], b[o+7] =
			b[o+7], b[o+6], b[o+5], b[o+4], b[o+3], b[o+2], b[o+1], b[o]
	}
}

// SwapF32 swaps the bit pattern of every float32 element in b, leaving the
// slice holding the opposite-endian representation of the same bits.
func SwapF32(b []byte) { Swap32(b) }

// SwapF64 swaps the bit pattern of every float64 element in b.
func SwapF64(b []byte) { Swap64(b) }

// Int16FromBig decodes one big-endian int16 at offset 0 of b. Used by the
// lazy nbt/tape accessors when a single element is needed without
// swapping the whole slice.
func Int16FromBig(b []byte) int16 {
	return int16(uint16(b[0])<<8 | uint16(b[1]))
}

// Int32FromBig decodes one big-endian int32 at offset 0 of b.
func Int32FromBig(b []byte) int32 {
	return int32(uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]))
}

// Int64FromBig decodes one big-endian int64 at offset 0 of b.
func Int64FromBig(b []byte) int64 {
	return int64(uint64(b[0])<<56 | uint64(b[1])<<48 | uint64(b[2])<<40 | uint64(b[3])<<32 |
		uint64(b[4])<<24 | uint64(b[5])<<16 | uint64(b[6])<<8 | uint64(b[7]))
}

// Float32FromBig decodes one big-endian float32 at offset 0 of b.
func Float32FromBig(b []byte) float32 {
	return math.Float32frombits(uint32(Int32FromBig(b)))
}

// Float64FromBig decodes one big-endian float64 at offset 0 of b.
func Float64FromBig(b []byte) float64 {
	return math.Float64frombits(uint64(Int64FromBig(b)))
}
