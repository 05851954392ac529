package rscore

import "github.com/burdges/rs-ec-perf/gf16"

// EvalErrorPolynomial evaluates the erasure locator polynomial over every
// position of the field, writing the result into logWalsh2 (which must have
// length gf16.FieldSize). erasure[i] == true marks position i as missing; n
// only bounds the erasure-vector copy/negate steps (the codeword length),
// while the pointwise multiply against LogWalsh runs over all FieldSize
// Walsh components, since the second Walsh transform mixes every position.
// This only needs to run once per reconstruction, ahead of DecodeMain.
func EvalErrorPolynomial(erasure []bool, logWalsh2 []uint16, n int) {
	z := n
	if len(erasure) < z {
		z = len(erasure)
	}
	for i := 0; i < z; i++ {
		if erasure[i] {
			logWalsh2[i] = 1
		} else {
			logWalsh2[i] = 0
		}
	}
	for i := z; i < gf16.FieldSize; i++ {
		logWalsh2[i] = 0
	}

	gf16.Walsh(logWalsh2, gf16.FieldSize)

	for i := 0; i < gf16.FieldSize; i++ {
		tmp := uint32(logWalsh2[i]) * uint32(gf16.LogWalshAt(i))
		logWalsh2[i] = uint16(tmp % gf16.Modulo)
	}

	gf16.Walsh(logWalsh2, gf16.FieldSize)

	for i := 0; i < z; i++ {
		if erasure[i] {
			logWalsh2[i] = gf16.Modulo - logWalsh2[i]
		}
	}
}

// DecodeMain runs the erasure decoder in place over codeword (length n),
// given the erasure vector (length n) and the logWalsh2 buffer that
// EvalErrorPolynomial already populated for this erasure pattern. k is
// accepted for symmetry with the distilled spec's signature but is neither
// checked nor used; the algorithm itself processes all n positions.
//
// On return, erased positions hold their recovered values and non-erased
// positions have been overwritten with zero; merging those zeros back in
// with the originally received symbols is the shard layer's job (see the
// Open Question resolution in SPEC_FULL.md).
func DecodeMain(codeword []uint16, k int, erasure []bool, logWalsh2 []uint16, n int) {
	if len(codeword) != n || len(erasure) != n {
		panic("rscore: DecodeMain preconditions violated")
	}

	for i := 0; i < n; i++ {
		if erasure[i] {
			codeword[i] = 0
		} else {
			codeword[i] = gf16.Mul(codeword[i], logWalsh2[i])
		}
	}

	gf16.IFFT(codeword, n, 0)

	for i := 0; i < n; i += 2 {
		b := gf16.Modulo - gf16.BFactor(i>>1)
		codeword[i] = gf16.Mul(codeword[i], b)
		codeword[i+1] = gf16.Mul(codeword[i+1], b)
	}

	gf16.FormalDerivative(codeword, n)

	for i := 0; i < n; i += 2 {
		b := gf16.BFactor(i >> 1)
		codeword[i] = gf16.Mul(codeword[i], b)
		codeword[i+1] = gf16.Mul(codeword[i+1], b)
	}

	gf16.FFT(codeword, n, 0)

	for i := 0; i < n; i++ {
		if erasure[i] {
			codeword[i] = gf16.Mul(codeword[i], logWalsh2[i])
		} else {
			codeword[i] = 0
		}
	}
}

// Reconstruct recovers every erased position of codeword (length c.N) in
// place, given an erasure vector of the same length with at least c.K
// positions unmarked. Erased positions must already be zeroed by the
// caller. It is a thin, allocation-owning wrapper around
// EvalErrorPolynomial + DecodeMain for callers that don't need to reuse the
// logWalsh2 scratch buffer across calls.
func (c *Codec) Reconstruct(codeword []uint16, erasure []bool) error {
	if len(codeword) != c.N || len(erasure) != c.N {
		return ErrInvalidShape
	}
	present := 0
	for _, e := range erasure {
		if !e {
			present++
		}
	}
	if present < c.K {
		return ErrInsufficientShards
	}

	logWalsh2 := make([]uint16, gf16.FieldSize)
	EvalErrorPolynomial(erasure, logWalsh2, c.N)
	DecodeMain(codeword, c.K, erasure, logWalsh2, c.N)
	return nil
}
