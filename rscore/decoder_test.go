package rscore

import (
	"testing"

	"github.com/burdges/rs-ec-perf/gf16"
)

// mergeKnown re-applies the shard layer's convention: DecodeMain zeroes
// every non-erased position, so the caller must restore it from the
// original codeword before comparing results.
func mergeKnown(recovered, original []uint16, erasure []bool) {
	for i := range recovered {
		if !erasure[i] {
			recovered[i] = original[i]
		}
	}
}

// TestScenarioB is the distilled spec's concrete scenario B: n=32, k=4,
// data[i] = i*i mod Modulo for i<4, positions 0..27 erased so that only
// 28..31 survive.
func TestScenarioB(t *testing.T) {
	const n, k = 32, 4
	data := make([]uint16, n)
	for i := 0; i < k; i++ {
		data[i] = uint16((i * i) % gf16.Modulo)
	}

	codeword := make([]uint16, n)
	EncodeLow(data, k, codeword, n)

	erasure := make([]bool, n)
	for i := 0; i < n-k; i++ {
		erasure[i] = true
		codeword[i] = 0
	}

	logWalsh2 := make([]uint16, 1<<16)
	EvalErrorPolynomial(erasure, logWalsh2, n)
	DecodeMain(codeword, k, erasure, logWalsh2, n)

	for i := 0; i < k; i++ {
		if codeword[i] != data[i] {
			t.Fatalf("position %d = %d, want %d", i, codeword[i], data[i])
		}
	}
}

// TestEncodeDecodeRoundTrip checks testable property 5 across a handful of
// (k, n) shapes and erasure patterns leaving exactly k shards present.
func TestEncodeDecodeRoundTrip(t *testing.T) {
	shapes := []struct{ n, k int }{
		{8, 2}, {16, 4}, {32, 4}, {32, 16}, {64, 48},
	}
	for _, shape := range shapes {
		c, err := NewCodec(shape.n, shape.k)
		if err != nil {
			t.Fatalf("NewCodec(%d, %d): %v", shape.n, shape.k, err)
		}

		data := make([]uint16, shape.n)
		for i := 0; i < shape.k; i++ {
			data[i] = uint16((i*31 + 7) % int(gf16.Modulo))
		}

		codeword, err := c.Encode(data)
		if err != nil {
			t.Fatalf("Encode: %v", err)
		}
		original := append([]uint16(nil), codeword...)

		erasure := make([]bool, shape.n)
		for i := 0; i < shape.n-shape.k; i++ {
			erasure[i] = true
			codeword[i] = 0
		}

		if err := c.Reconstruct(codeword, erasure); err != nil {
			t.Fatalf("Reconstruct: %v", err)
		}
		mergeKnown(codeword, original, erasure)

		for i := 0; i < shape.k; i++ {
			if codeword[i] != data[i] {
				t.Fatalf("shape n=%d k=%d: position %d = %d, want %d", shape.n, shape.k, i, codeword[i], data[i])
			}
		}
	}
}

// TestReconstructInsufficientShards is scenario F: Reconstruct with fewer
// than k positions present must fail without mutating the codeword.
func TestReconstructInsufficientShards(t *testing.T) {
	const n, k = 32, 4
	c, err := NewCodec(n, k)
	if err != nil {
		t.Fatal(err)
	}

	codeword := make([]uint16, n)
	erasure := make([]bool, n)
	for i := 0; i < n-k+1; i++ { // one too many erasures
		erasure[i] = true
	}
	before := append([]uint16(nil), codeword...)

	err = c.Reconstruct(codeword, erasure)
	if err != ErrInsufficientShards {
		t.Fatalf("Reconstruct: got err=%v, want ErrInsufficientShards", err)
	}
	for i := range codeword {
		if codeword[i] != before[i] {
			t.Fatalf("Reconstruct mutated codeword on failure at position %d", i)
		}
	}
}
