package rscore

import "github.com/burdges/rs-ec-perf/gf16"

// Codec holds a validated (n, k) shape and dispatches encode/decode calls to
// EncodeLow/EncodeHigh, or the Walsh-based erasure decoder, as appropriate.
// Both n and k must be powers of two with 0 < k <= n <= 2^16; NewCodec
// checks that invariant up front, per the distilled spec's rule
// that "all validation is performed before any algebraic work."
type Codec struct {
	N int
	K int
}

func isPowerOfTwo(x int) bool { return x > 0 && x&(x-1) == 0 }

// NewCodec validates n and k and returns a ready-to-use Codec.
func NewCodec(n, k int) (*Codec, error) {
	if n <= 0 || k <= 0 || k > n || !isPowerOfTwo(n) || !isPowerOfTwo(k) {
		return nil, ErrInvalidShape
	}
	if n > gf16.FieldSize {
		return nil, ErrFieldTooSmall
	}
	return &Codec{N: n, K: k}, nil
}

// Encode produces the n-element codeword for data, an n-length slice whose
// first K elements are the message and whose remaining N-K elements must be
// zero. It dispatches to EncodeLow when k*2 <= n, EncodeHigh otherwise, and
// in both cases returns a codeword whose first K elements equal data's
// (the systematic property, testable property 6 in the distilled spec).
func (c *Codec) Encode(data []uint16) ([]uint16, error) {
	if len(data) != c.N {
		return nil, ErrInvalidShape
	}
	codeword := make([]uint16, c.N)
	if c.K*2 <= c.N {
		EncodeLow(data, c.K, codeword, c.N)
		return codeword, nil
	}

	t := c.N - c.K
	if t == 0 {
		copy(codeword, data)
		return codeword, nil
	}
	// EncodeHigh takes its input as the symbols at positions [t, N) and
	// returns the parity for positions [0, t). Relabelling every position p
	// as p^K maps codewords to codewords and moves that parity to [K, N), so
	// the input is permuted the same way to land data[i] at position i.
	shifted := make([]uint16, c.N)
	for i := 0; i < c.K; i++ {
		shifted[i] = data[(i+t)^c.K]
	}
	scratch := make([]uint16, t)
	parity := codeword[c.K:]
	EncodeHigh(shifted, c.K, parity, scratch, c.N)
	copy(codeword[:c.K], data[:c.K])
	return codeword, nil
}

// EncodeLow is the encoding algorithm for k/n <= 1/2: data.len == codeword.len
// == n, both n and k powers of two, k dividing n. The IFFT of the message
// (the "top prime" block) is computed in the first k elements of codeword;
// every subsequent k-wide window is that same block FFT'd at its own shift,
// which is exactly a repeated multi-point evaluation of the message
// polynomial at n/k disjoint cosets of the size-k subspace. Finally the
// first k elements are restored to the message itself.
func EncodeLow(data []uint16, k int, codeword []uint16, n int) {
	if k+k > n || len(codeword) != n || len(data) != n || !isPowerOfTwo(n) || !isPowerOfTwo(k) || (n/k)*k != n {
		panic("rscore: EncodeLow preconditions violated")
	}

	copy(codeword, data)

	top := codeword[:k]
	rest := codeword[k:]

	gf16.IFFT(top, k, 0)

	for shift := k; shift < n; shift += k {
		at := rest[shift-k : shift]
		copy(at, top)
		gf16.FFT(at, k, shift)
	}

	copy(codeword[:k], data[:k])
}

// EncodeHigh is the dual encoding algorithm for k/n > 1/2, where t = n - k
// is the (power-of-two) number of parity elements. data is an n-length
// slice whose first k elements are the message and whose last t elements
// are zero, parity must have length >= t, and scratch must have length
// >= t. It XORs together the IFFT of every t-wide window of data (shifted
// by t each time) and FFTs the sum back, producing the parity block.
func EncodeHigh(data []uint16, k int, parity, scratch []uint16, n int) {
	t := n - k
	if len(parity) < t || len(scratch) < t {
		panic("rscore: EncodeHigh preconditions violated")
	}

	for i := range parity[:t] {
		parity[i] = 0
	}

	for i := t; i < n; i += t {
		copy(scratch[:t], data[i-t:i])
		gf16.IFFT(scratch[:t], t, i)
		for j := 0; j < t; j++ {
			parity[j] ^= scratch[j]
		}
	}

	gf16.FFT(parity[:t], t, 0)
}
