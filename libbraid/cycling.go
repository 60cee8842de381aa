package libbraid

// Orbit primitives.  All take and return braids in LCF.

// cycle returns the cycling of B together with its conjugator τ^-p(x1).
func cycle(B *Braid) (*Braid, Factor) {
	if len(B.Factors) == 0 {
		return B.Clone(), Identity(B.Pres)
	}
	p := B.LeftDelta
	conj := B.Factors[0].Flip(-p)
	C := &Braid{
		Pres:      B.Pres,
		LeftDelta: p,
		Factors:   make([]Factor, 0, len(B.Factors)),
	}
	C.Factors = append(C.Factors, B.Factors[1:]...)
	C.Factors = append(C.Factors, conj)
	C.MakeLCF()
	return C, conj
}

// Cycling conjugates B by its first factor, moving it to the end.
func Cycling(B *Braid) *Braid {
	C, _ := cycle(B)
	return C
}

// Decycling conjugates B by the inverse of its last factor, moving it to the front.
func Decycling(B *Braid) *Braid {
	C, _ := decycle(B)
	return C
}

// decycle returns the decycling of B together with its last factor xr; the conjugator is xr^-1.
func decycle(B *Braid) (*Braid, Factor) {
	r := len(B.Factors)
	if r == 0 {
		return B.Clone(), Identity(B.Pres)
	}
	p := B.LeftDelta
	last := B.Factors[r-1]
	C := &Braid{
		Pres:      B.Pres,
		LeftDelta: p,
		Factors:   make([]Factor, 0, r),
	}
	C.Factors = append(C.Factors, last.Flip(p))
	C.Factors = append(C.Factors, B.Factors[:r-1]...)
	C.MakeLCF()
	return C, last
}

// PreferredPrefix returns τ^-p(x1) ∧ ~xr, the conjugator of a cyclic sliding.
func PreferredPrefix(B *Braid) Factor {
	r := len(B.Factors)
	if r == 0 {
		return Identity(B.Pres)
	}
	return B.Factors[0].Flip(-B.LeftDelta).LeftMeet(B.Factors[r-1].Complement())
}

// Sliding conjugates B by its preferred prefix.
func Sliding(B *Braid) *Braid {
	pp := PreferredPrefix(B)
	if pp.CompareWithIdentity() {
		return B.Clone()
	}
	return B.ConjugateByFactor(pp)
}

// Trajectory cycles B until a braid repeats, returning every braid visited before the repeat, starting with B.
func Trajectory(B *Braid) []*Braid {
	return trajectory(B, Cycling)
}

// SlidingTrajectory is Trajectory using cyclic sliding in place of cycling.
func SlidingTrajectory(B *Braid) []*Braid {
	return trajectory(B, Sliding)
}

func trajectory(B *Braid, step func(*Braid) *Braid) []*Braid {
	seen := newOrbitIndex()
	var traj []*Braid
	for cur := B; ; cur = step(cur) {
		if _, exists := seen.lookup(cur); exists {
			return traj
		}
		seen.put(cur, orbitPos{0, len(traj)})
		traj = append(traj, cur)
	}
}

// SendToSC returns a conjugate of B lying on a sliding circuit.
func SendToSC(B *Braid) *Braid {
	X, _ := SendToSCWithConj(B)
	return X
}

// SendToSCWithConj returns a conjugate X of B on a sliding circuit and C such that C^-1·B·C = X.
func SendToSCWithConj(B *Braid) (*Braid, *Braid) {
	X, C := SendToSSSWithConj(B)
	traj := SlidingTrajectory(X)
	for _, Y := range traj {
		C = Mul(C, FactorBraid(PreferredPrefix(Y)))
	}
	C.MakeLCF()
	return Sliding(traj[len(traj)-1]), C
}

// Rigidity returns how many leading factors of B survive one cycling unchanged, or 0 if cycling changes the infimum.
func Rigidity(B *Braid) int {
	r := len(B.Factors)
	if r == 0 {
		return 0
	}
	C := Cycling(B)
	if C.LeftDelta != B.LeftDelta {
		return 0
	}
	want := make([]Factor, 0, r)
	want = append(want, B.Factors[1:]...)
	want = append(want, B.Factors[0].Flip(-B.LeftDelta))

	count := 0
	for count < len(want) && count < len(C.Factors) && want[count].Equal(C.Factors[count]) {
		count++
	}
	return count
}
