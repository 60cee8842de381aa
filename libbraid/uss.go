package libbraid

import (
	"github.com/2x3systems/gobraid/garside"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

// SendToUSS returns a conjugate of B in its ultra summit set.
func SendToUSS(B *Braid) *Braid {
	X, _ := SendToUSSWithConj(B)
	return X
}

// SendToUSSWithConj returns an ultra summit conjugate X of B and C such that C^-1·B·C = X.
func SendToUSSWithConj(B *Braid) (*Braid, *Braid) {
	X, C := SendToSSSWithConj(B)
	traj := Trajectory(X)
	for _, Y := range traj {
		_, conj := cycle(Y)
		C = Mul(C, FactorBraid(conj))
	}
	C.MakeLCF()
	return Cycling(traj[len(traj)-1]), C
}

// Transport returns the conjugator from c(x) to c(x^s) induced by s, i.e. τ^-p(x1)^-1 · s · τ^-p(y1) where y = s^-1·x·s.
//
// x and x^s must be in the super summit set.
func Transport(x *Braid, s Factor) Factor {
	if len(x.Factors) == 0 {
		return s
	}
	y := x.ConjugateByFactor(s)
	p := x.LeftDelta
	a := FactorBraid(x.Factors[0].Flip(-p))
	T := Mul(Mul(a.Inverse(), FactorBraid(s)), FactorBraid(y.Factors[0].Flip(-p)))
	T.MakeLCF()
	return simpleOf(T, "Transport")
}

// simpleOf returns B as a single simple element.
func simpleOf(B *Braid, op string) Factor {
	switch {
	case B.LeftDelta == 0 && len(B.Factors) == 0:
		return Identity(B.Pres)
	case B.LeftDelta == 0 && len(B.Factors) == 1:
		return B.Factors[0]
	case B.LeftDelta == 1 && len(B.Factors) == 0:
		return Delta(B.Pres, 1)
	}
	klog.Errorf("%s: expected a simple element, got %v", op, B)
	panic(errors.Wrap(garside.ErrIntegrity, op))
}

// transportAround transports s once around the given closed orbit.
func transportAround(orbit []*Braid, s Factor) Factor {
	for _, x := range orbit {
		s = Transport(x, s)
	}
	return s
}

// Returns iterates transport of F around B's orbit until a factor repeats and returns the periodic part.
//
// B must be in its ultra summit set.
func Returns(B *Braid, F Factor) []Factor {
	return returns(Trajectory(B), F)
}

func returns(orbit []*Braid, F Factor) []Factor {
	seq := []Factor{F}
	for {
		next := transportAround(orbit, seq[len(seq)-1])
		for i, si := range seq {
			if si.Equal(next) {
				return seq[i:]
			}
		}
		seq = append(seq, next)
	}
}

// Pullback returns the least simple element ρ such that x^ρ is in the super summit set and the transport of ρ has s as a prefix.
// s is a conjugator at c(x).
func Pullback(x *Braid, s Factor) Factor {
	return pullback(x, x.Inverse().LCF(), s)
}

func pullback(x, xinv *Braid, s Factor) Factor {
	if len(x.Factors) == 0 {
		return minSSS(x, xinv, s)
	}
	p := x.LeftDelta

	// τ^p(s) must be a prefix of x2···xr·ρ
	m2 := remainder(x.Factors[1:], s.Flip(p))

	// τ^-1(τ^-p(x1)·s) = d1·d2 and d2 must be a prefix of ~d1·ρ
	D := FactorBraid(x.Factors[0].Flip(-p - 1))
	D.RightMultiply(s.Flip(-1))
	D.MakeLCF()
	d1, d2 := splitSimples(D)
	c1 := d1.Complement()
	m3 := c1.LeftQuotient(c1.LeftJoin(d2))

	return minSSS(x, xinv, m2.LeftJoin(m3))
}

// splitSimples writes a positive braid of supremum at most 2 as a product of two simple elements.
func splitSimples(B *Braid) (Factor, Factor) {
	simples := make([]Factor, 0, 2)
	for k := 0; k < B.LeftDelta; k++ {
		simples = append(simples, Delta(B.Pres, 1))
	}
	simples = append(simples, B.Factors...)
	for len(simples) < 2 {
		simples = append(simples, Identity(B.Pres))
	}
	if len(simples) > 2 || B.LeftDelta < 0 {
		klog.Errorf("pullback: %v is not a product of two simple elements", B)
		panic(errors.Wrap(garside.ErrIntegrity, "pullback"))
	}
	return simples[0], simples[1]
}

// MainPullback pulls F back around B's orbit until the factor at B repeats, and returns that factor.
//
// B must be in its ultra summit set.
func MainPullback(B *Braid, F Factor) Factor {
	orbit := Trajectory(B)
	return mainPullback(orbit, inverses(orbit), F)
}

func mainPullback(orbit, invs []*Braid, F Factor) Factor {
	seen := []Factor{F}
	for {
		f := seen[len(seen)-1]
		for i := len(orbit) - 1; i >= 0; i-- {
			f = pullback(orbit[i], invs[i], f)
		}
		for _, si := range seen {
			if si.Equal(f) {
				return f
			}
		}
		seen = append(seen, f)
	}
}

func inverses(orbit []*Braid) []*Braid {
	invs := make([]*Braid, len(orbit))
	for i, x := range orbit {
		invs[i] = x.Inverse().LCF()
	}
	return invs
}

// MinUSS returns the least simple element ρ having F as a prefix such that ρ^-1·B·ρ is in the ultra summit set of B.
//
// B must be in its ultra summit set.
func MinUSS(B *Braid, F Factor) Factor {
	orbit := Trajectory(B)
	return minUSS(orbit, inverses(orbit), F)
}

func minUSS(orbit, invs []*Braid, F Factor) Factor {
	F1 := minSSS(orbit[0], invs[0], F)
	if rho, found := returnAbove(orbit, F1, F1); found {
		return rho
	}
	if rho, found := returnAbove(orbit, mainPullback(orbit, invs, F1), F1); found {
		return rho
	}
	klog.Errorf("MinUSS: no return of %v at %v has %v as a prefix", F, orbit[0], F1)
	panic(errors.Wrap(garside.ErrIntegrity, "MinUSS"))
}

// returnAbove looks for a return of s having F as a prefix.
func returnAbove(orbit []*Braid, s, F Factor) (Factor, bool) {
	for _, R := range returns(orbit, s) {
		if F.LeftDivides(R) {
			return R, true
		}
	}
	return Factor{}, false
}

// MinUSSAll returns the ≼-minimal elements of {MinUSS(B, a) : a an atom}.
func MinUSSAll(B *Braid) []Factor {
	orbit := Trajectory(B)
	invs := inverses(orbit)
	var found []Factor
	for _, atom := range Atoms(B.Pres) {
		found = appendUniqueFactor(found, minUSS(orbit, invs, atom))
	}
	return minimalFactors(found)
}

// Probe records the conjugation of the first braid of an orbit by a minimal simple element.
type Probe struct {
	From    int    // orbit probed
	Min     Factor // conjugator
	ToOrbit int    // orbit reached
	ToPos   int    // position reached within ToOrbit
}

// SummitSet is an ultra summit set discovered as a tree of cycling orbits.
//
// Orbits[i][k+1] is the cycling of Orbits[i][k], and Orbits[i][0] = Mins[i]^-1 · Orbits[Prev[i]][0] · Mins[i].
// Prev[0] is -1 and Mins[0] is Identity.
type SummitSet struct {
	Orbits [][]*Braid
	Mins   []Factor
	Prev   []int
	Probes []Probe

	index orbitIndex
}

// USS returns the ultra summit set of B.
func USS(B *Braid) *SummitSet {
	return BuildUSS(SendToUSS(B))
}

// BuildUSS explores the ultra summit set containing X, which must already be an ultra summit element.
func BuildUSS(X *Braid) *SummitSet {
	uss := &SummitSet{
		index: newOrbitIndex(),
	}
	uss.addOrbit(X, -1, Identity(X.Pres))

	for i := 0; i < len(uss.Orbits); i++ {
		orbit := uss.Orbits[i]
		invs := inverses(orbit)
		var mins []Factor
		for _, atom := range Atoms(X.Pres) {
			mins = appendUniqueFactor(mins, minUSS(orbit, invs, atom))
		}
		for _, m := range minimalFactors(mins) {
			Y := orbit[0].ConjugateByFactor(m)
			at, exists := uss.index.lookup(Y)
			if !exists {
				at = orbitPos{uss.addOrbit(Y, i, m), 0}
			}
			uss.Probes = append(uss.Probes, Probe{
				From:    i,
				Min:     m,
				ToOrbit: at.orbit,
				ToPos:   at.pos,
			})
		}
	}

	if klog.V(2).Enabled() {
		klog.Infof("USS: %d orbits, %d braids of inf %d, CL %d", len(uss.Orbits), uss.Size(), X.LeftDelta, len(X.Factors))
	}
	return uss
}

func (uss *SummitSet) addOrbit(Y *Braid, prev int, min Factor) int {
	id := len(uss.Orbits)
	orbit := Trajectory(Y)
	for k, Yk := range orbit {
		uss.index.put(Yk, orbitPos{id, k})
	}
	uss.Orbits = append(uss.Orbits, orbit)
	uss.Prev = append(uss.Prev, prev)
	uss.Mins = append(uss.Mins, min)
	return id
}

// Size returns the number of braids in the summit set.
func (uss *SummitSet) Size() int {
	return uss.index.size()
}

// Locate returns the orbit and position of B, which must be in LCF.
func (uss *SummitSet) Locate(B *Braid) (orbit, pos int, found bool) {
	at, found := uss.index.lookup(B)
	return at.orbit, at.pos, found
}

// Elements returns every braid in the summit set, orbit by orbit.
func (uss *SummitSet) Elements() []*Braid {
	var all []*Braid
	for _, orbit := range uss.Orbits {
		all = append(all, orbit...)
	}
	return all
}

// Root returns the braid the search started from.
func (uss *SummitSet) Root() *Braid {
	return uss.Orbits[0][0]
}
