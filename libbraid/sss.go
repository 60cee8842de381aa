package libbraid

import (
	"github.com/2x3systems/gobraid/garside"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

// SendToSSS returns a conjugate of B with maximal infimum and minimal supremum.
func SendToSSS(B *Braid) *Braid {
	X, _ := SendToSSSWithConj(B)
	return X
}

// SendToSSSWithConj returns a super summit conjugate X of B and C such that C^-1·B·C = X.
func SendToSSSWithConj(B *Braid) (*Braid, *Braid) {
	cur := B.LCF()
	C := NewBraid(B.Pres)
	if len(cur.Factors) == 0 {
		return cur, C
	}
	bound := B.Pres.CyclingBound()

	// Cycling raises inf within bound steps unless inf is already maximal.
	best, bestC := cur, C
	for stale := 0; stale < bound; {
		next, conj := cycle(cur)
		C = Mul(C, FactorBraid(conj))
		C.MakeLCF()
		cur = next
		if cur.LeftDelta > best.LeftDelta {
			best, bestC = cur, C
			stale = 0
		} else {
			stale++
		}
	}

	// Decycling lowers sup within bound steps unless sup is already minimal.
	cur, C = best, bestC
	for stale := 0; stale < bound && len(cur.Factors) > 0; {
		next, last := decycle(cur)
		C = Mul(C, FactorBraid(last).Inverse())
		C.MakeLCF()
		cur = next
		if cur.Sup() < best.Sup() {
			best, bestC = cur, C
			stale = 0
		} else {
			stale++
		}
	}

	return best, bestC
}

// Remainder returns the least simple element ρ such that τ^p(F) is a prefix of x1···xr·ρ, where B = Δ^p·x1···xr.
//
// Conjugating B by F keeps the infimum from dropping exactly when Remainder(B, F) is a prefix of F.
func Remainder(B *Braid, F Factor) Factor {
	return remainder(B.Factors, F.Flip(B.LeftDelta))
}

func remainder(factors []Factor, t Factor) Factor {
	for _, xi := range factors {
		t = xi.LeftQuotient(xi.LeftJoin(t))
	}
	return t
}

// MinSSS returns the least simple element ρ having F as a prefix such that ρ^-1·B·ρ is in the super summit set of B.
//
// B must be in its super summit set.
func MinSSS(B *Braid, F Factor) Factor {
	return minSSS(B, B.Inverse().LCF(), F)
}

func minSSS(B, Binv *Braid, F Factor) Factor {
	rho := F
	for {
		next := rho.LeftJoin(Remainder(B, rho)).LeftJoin(Remainder(Binv, rho))
		if next.Equal(rho) {
			break
		}
		rho = next
	}

	X := B.ConjugateByFactor(rho)
	if X.LeftDelta != B.LeftDelta || len(X.Factors) != len(B.Factors) {
		klog.Errorf("MinSSS: conjugate of %v by %v left the super summit set: %v", B, rho, X)
		panic(errors.Wrap(garside.ErrIntegrity, "MinSSS"))
	}
	return rho
}

// MinSSSAll returns the ≼-minimal elements of {MinSSS(B, a) : a an atom}.
func MinSSSAll(B *Braid) []Factor {
	Binv := B.Inverse().LCF()
	var found []Factor
	for _, atom := range Atoms(B.Pres) {
		found = appendUniqueFactor(found, minSSS(B, Binv, atom))
	}
	return minimalFactors(found)
}

// SSS returns the super summit set of B.
func SSS(B *Braid) []*Braid {
	set := NewBraidSet()
	defer set.Close()
	return SSSWithSet(B, set)
}

// SSSWithSet returns the super summit set of B, using the given set to detect braids already found.
func SSSWithSet(B *Braid, set BraidSet) []*Braid {
	X := SendToSSS(B)
	set.TryAdd(X)
	sss := []*Braid{X}
	for i := 0; i < len(sss); i++ {
		for _, m := range MinSSSAll(sss[i]) {
			Y := sss[i].ConjugateByFactor(m)
			if set.TryAdd(Y) {
				sss = append(sss, Y)
			}
		}
	}
	if klog.V(2).Enabled() {
		klog.Infof("SSS: %d braids of inf %d, CL %d", len(sss), X.LeftDelta, len(X.Factors))
	}
	return sss
}

func appendUniqueFactor(factors []Factor, f Factor) []Factor {
	for _, fi := range factors {
		if fi.Equal(f) {
			return factors
		}
	}
	return append(factors, f)
}

// minimalFactors drops every factor having another listed factor as a proper prefix.
func minimalFactors(factors []Factor) []Factor {
	var mins []Factor
	for i, fi := range factors {
		minimal := true
		for j, fj := range factors {
			if i != j && fj.LeftDivides(fi) {
				minimal = false
				break
			}
		}
		if minimal {
			mins = append(mins, fi)
		}
	}
	return mins
}
