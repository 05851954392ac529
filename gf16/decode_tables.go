package gf16

// initDecodeTables builds Skew, B and LogWalsh, following the reference
// `init_dec`. It must run after initExpLog since it multiplies through the
// Log/Exp tables it depends on.
func (t *tables) initDecodeTables() {
	var base [FieldBits - 1]uint16
	for i := 1; i < FieldBits; i++ {
		base[i-1] = 1 << i
	}

	for m := 0; m < FieldBits-1; m++ {
		step := 1 << (m + 1)
		t.skew[(1<<m)-1] = 0

		for i := m; i < FieldBits-1; i++ {
			s := 1 << (i + 1)
			for j := (1 << m) - 1; j < s; j += step {
				t.skew[j+s] = t.skew[j] ^ base[i]
			}
		}

		idx := t.mul(base[m], t.log[base[m]^1])
		base[m] = Modulo - t.log[idx]

		for i := m + 1; i < FieldBits-1; i++ {
			sum := (uint32(t.log[base[i]^1]) + uint32(base[m])) % Modulo
			base[i] = t.mul(base[i], uint16(sum))
		}
	}
	for i := 0; i < Modulo; i++ {
		t.skew[i] = t.log[t.skew[i]]
	}

	base[0] = Modulo - base[0]
	for i := 1; i < FieldBits-1; i++ {
		base[i] = uint16((uint32(Modulo) - uint32(base[i]) + uint32(base[i-1])) % Modulo)
	}

	t.b[0] = 0
	for i := 0; i < FieldBits-1; i++ {
		depart := 1 << i
		for j := 0; j < depart; j++ {
			t.b[j+depart] = uint16((uint32(t.b[j]) + uint32(base[i])) % Modulo)
		}
	}

	copy(t.logWalsh[:], t.log[:])
	t.logWalsh[0] = 0
	Walsh(t.logWalsh[:], FieldSize)
}

// SkewLog returns the raw (logarithm-form) skew factor at position i of the
// decoder skew table, for callers that want to inspect bootstrap invariants
// directly.
func SkewLog(i int) uint16 {
	return ensureTables().skew[i]
}

// BFactor returns B[i], the i-th formal-derivative twist factor.
func BFactor(i int) uint16 {
	return ensureTables().b[i]
}

// LogWalshAt returns LogWalsh[i], the Walsh transform of Log with
// LogWalsh[0] forced to zero before the transform.
func LogWalshAt(i int) uint16 {
	return ensureTables().logWalsh[i]
}

// ExpAt and LogAt expose the raw EXP/LOG tables for bootstrap-consistency
// tests (testable property 1 in the spec).
func ExpAt(i int) uint16 { return ensureTables().exp[i] }
func LogAt(i int) uint16 { return ensureTables().log[i] }
