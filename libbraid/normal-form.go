package libbraid

// MakeLCF puts B into left canonical form: Δ^p · x1 ··· xr with every pair (xi, xi+1) left-weighted and no xi equal to Identity or Δ.
//
// Factors are inserted left to right; each insertion repairs pairs backwards and stops at the first pair already weighted.
func (B *Braid) MakeLCF() {
	q := B.RightDelta
	B.LeftDelta += q
	B.RightDelta = 0

	out := make([]Factor, 0, len(B.Factors))
	for _, f := range B.Factors {
		out = append(out, f.Flip(q))
		for j := len(out) - 1; j > 0; j-- {
			a, b := out[j-1], out[j]
			x := a.Complement().LeftMeet(b)
			if x.CompareWithIdentity() {
				break
			}
			out[j-1] = a.Mul(x)
			out[j] = x.Inverse().Mul(b)
		}
	}

	// Δ factors collect at the front and trivial factors at the back
	lead := 0
	for lead < len(out) && out[lead].CompareWithDelta() {
		lead++
	}
	B.LeftDelta += lead
	B.Factors = out[:0]
	for _, f := range out[lead:] {
		if !f.CompareWithIdentity() {
			B.Factors = append(B.Factors, f)
		}
	}
}

// MakeRCF puts B into right canonical form: x1 ··· xr · Δ^q with every pair (xi, xi+1) right-weighted.
func (B *Braid) MakeRCF() {
	p := B.LeftDelta
	B.RightDelta += p
	B.LeftDelta = 0

	// rev holds the factors right to left
	rev := make([]Factor, 0, len(B.Factors))
	for i := len(B.Factors) - 1; i >= 0; i-- {
		rev = append(rev, B.Factors[i].Flip(-p))
		for j := len(rev) - 1; j > 0; j-- {
			a, b := rev[j], rev[j-1]
			x := a.RightMeet(b.LeftComplement())
			if x.CompareWithIdentity() {
				break
			}
			rev[j] = a.Mul(x.Inverse())
			rev[j-1] = x.Mul(b)
		}
	}

	trail := 0
	for trail < len(rev) && rev[trail].CompareWithDelta() {
		trail++
	}
	B.RightDelta += trail
	B.Factors = make([]Factor, 0, len(rev)-trail)
	for i := len(rev) - 1; i >= trail; i-- {
		if !rev[i].CompareWithIdentity() {
			B.Factors = append(B.Factors, rev[i])
		}
	}
}
