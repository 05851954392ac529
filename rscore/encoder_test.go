package rscore

import (
	"testing"

	"github.com/burdges/rs-ec-perf/gf16"
)

func TestNewCodecValidatesShape(t *testing.T) {
	cases := []struct {
		n, k int
		ok   bool
	}{
		{32, 4, true},
		{1, 1, true},
		{3, 1, false},  // n not a power of two
		{32, 3, false}, // k not a power of two
		{4, 8, false},  // k > n
		{0, 1, false},
		{1 << 17, 1, false}, // exceeds field size
	}
	for _, c := range cases {
		_, err := NewCodec(c.n, c.k)
		if (err == nil) != c.ok {
			t.Errorf("NewCodec(%d, %d): err=%v, want ok=%v", c.n, c.k, err, c.ok)
		}
	}
}

// TestSystematicForm checks testable property 6: after EncodeLow, the first
// k codeword elements equal the data elements bit-exactly.
func TestSystematicForm(t *testing.T) {
	const n, k = 32, 4
	data := make([]uint16, n)
	for i := 0; i < k; i++ {
		data[i] = uint16((i * i) % gf16.Modulo)
	}

	codeword := make([]uint16, n)
	EncodeLow(data, k, codeword, n)

	for i := 0; i < k; i++ {
		if codeword[i] != data[i] {
			t.Fatalf("codeword[%d] = %d, want %d", i, codeword[i], data[i])
		}
	}
}

// TestDeterminism checks testable property 7: two independent encodes of
// the same input produce identical output.
func TestDeterminism(t *testing.T) {
	const n, k = 32, 4
	data := make([]uint16, n)
	for i := 0; i < k; i++ {
		data[i] = uint16(i * 7)
	}

	c, err := NewCodec(n, k)
	if err != nil {
		t.Fatal(err)
	}
	a, err := c.Encode(data)
	if err != nil {
		t.Fatal(err)
	}
	b, err := c.Encode(data)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("position %d differs between runs: %d vs %d", i, a[i], b[i])
		}
	}
}

func TestEncodeHighRoundTrip(t *testing.T) {
	// k > n/2: n=8, k=6, t=2.
	const n, k = 8, 6
	data := make([]uint16, n)
	for i := 0; i < k; i++ {
		data[i] = uint16(100 + i)
	}

	c, err := NewCodec(n, k)
	if err != nil {
		t.Fatal(err)
	}
	codeword, err := c.Encode(data)
	if err != nil {
		t.Fatal(err)
	}

	original := append([]uint16(nil), codeword...)

	erasure := make([]bool, n)
	// Erase two positions, leaving exactly k present.
	erasure[0] = true
	erasure[n-1] = true
	codeword[0] = 0
	codeword[n-1] = 0

	if err := c.Reconstruct(codeword, erasure); err != nil {
		t.Fatal(err)
	}
	// DecodeMain zeroes non-erased positions; merge them back the way the
	// shard layer does before comparing against the original message.
	for i := range codeword {
		if !erasure[i] {
			codeword[i] = original[i]
		}
	}
	for i := 0; i < k; i++ {
		if codeword[i] != data[i] {
			t.Fatalf("position %d = %d, want %d", i, codeword[i], data[i])
		}
	}
}
