package gf16

// Walsh applies the fast Walsh-Hadamard transform, in place, to the first
// size elements of data, treating each entry as a residue mod Modulo. size
// must be a power of two. This is used both to build LogWalsh once at
// bootstrap and, at call time, to evaluate the erasure locator polynomial.
func Walsh(data []uint16, size int) {
	for departNo := 1; departNo < size; departNo <<= 1 {
		for j := 0; j < size; j += departNo << 1 {
			for i := j; i < j+departNo; i++ {
				x, y := uint32(data[i]), uint32(data[i+departNo])
				s := x + y
				d := x + uint32(Modulo) - y
				data[i] = uint16((s & uint32(Modulo)) + (s >> FieldBits))
				data[i+departNo] = uint16((d & uint32(Modulo)) + (d >> FieldBits))
			}
		}
	}
}

// FFT evaluates, in place, the first size elements of data (read as
// coefficients in the novel polynomial basis) at the index-th window of
// that basis, via decimation-in-frequency butterflies. size must be a
// power of two and index selects the slice of the Skew table to use, as in
// the reference fft_in_novel_poly_basis.
func FFT(data []uint16, size, index int) {
	t := ensureTables()
	for departNo := size >> 1; departNo > 0; departNo >>= 1 {
		for j := departNo; j < size; j += departNo << 1 {
			skew := t.skew[j+index-1]
			if skew != Modulo {
				for i := j - departNo; i < j; i++ {
					data[i] ^= t.mul(data[i+departNo], skew)
				}
			}
			for i := j - departNo; i < j; i++ {
				data[i+departNo] ^= data[i]
			}
		}
	}
}

// IFFT is the inverse of FFT: decimation-in-time butterflies recovering the
// novel-basis coefficients from size evaluations taken at the index-th
// window, as in the reference inverse_fft_in_novel_poly_basis.
func IFFT(data []uint16, size, index int) {
	t := ensureTables()
	for departNo := 1; departNo < size; departNo <<= 1 {
		for j := departNo; j < size; j += departNo << 1 {
			for i := j - departNo; i < j; i++ {
				data[i+departNo] ^= data[i]
			}
			skew := t.skew[j+index-1]
			if skew != Modulo {
				for i := j - departNo; i < j; i++ {
					data[i] ^= t.mul(data[i+departNo], skew)
				}
			}
		}
	}
}

// FormalDerivative evaluates d/dx of the polynomial held (in the novel
// basis) in the first size elements of data, in place, as a cascade of
// XORs among positions differing by the stride implied by their trailing
// bit pattern. Used between IFFT and FFT during decoding.
func FormalDerivative(data []uint16, size int) {
	for i := 1; i < size; i++ {
		length := ((i ^ (i - 1)) + 1) >> 1
		for j := i - length; j < i; j++ {
			if j+length < len(data) {
				data[j] ^= data[j+length]
			}
		}
	}
	for i := size; i < FieldSize && i < len(data); i <<= 1 {
		for j := 0; j < size; j++ {
			if j+i < len(data) {
				data[j] ^= data[j+i]
			}
		}
	}
}
