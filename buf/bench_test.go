package buf

import (
	"bytes"
	"testing"
)

// Pure-codec benchmarks: no network, just the hot path.

func BenchmarkVarIntRoundTrip(b *testing.B) {
	var buf bytes.Buffer
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf.Reset()
		WriteVarUint32(&buf, 2097151)
		ReadVarUint32(bytes.NewReader(buf.Bytes()))
	}
}

func BenchmarkStringRoundTrip(b *testing.B) {
	var buf bytes.Buffer
	const s = "localhost"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf.Reset()
		WriteString(&buf, s)
		ReadString(bytes.NewReader(buf.Bytes()))
	}
}
