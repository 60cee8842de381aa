package libbraid

import (
	"github.com/plan-systems/klog"
)

// pathTo returns D such that D^-1 · Root · D = Orbits[i][0].
func (uss *SummitSet) pathTo(i int) *Braid {
	var chain []Factor
	for ; i > 0; i = uss.Prev[i] {
		chain = append(chain, uss.Mins[i])
	}
	D := NewBraid(uss.Root().Pres)
	for k := len(chain) - 1; k >= 0; k-- {
		D.RightMultiply(chain[k])
	}
	D.MakeLCF()
	return D
}

// cyclingProduct returns the product of the cycling conjugators taking Orbits[i][0] to Orbits[i][pos].
func (uss *SummitSet) cyclingProduct(i, pos int) *Braid {
	orbit := uss.Orbits[i]
	C := NewBraid(orbit[0].Pres)
	for k := 0; k < pos; k++ {
		_, conj := cycle(orbit[k])
		C.RightMultiply(conj)
	}
	C.MakeLCF()
	return C
}

// TreePath returns D such that D^-1 · uss.Root() · D = B, or false if B (in LCF) is not in uss.
func TreePath(uss *SummitSet, B *Braid) (*Braid, bool) {
	i, pos, found := uss.Locate(B)
	if !found {
		return nil, false
	}
	return uss.treePath(i, pos), true
}

func (uss *SummitSet) treePath(i, pos int) *Braid {
	D := Mul(uss.pathTo(i), uss.cyclingProduct(i, pos))
	D.MakeLCF()
	return D
}

// AreConjugate decides whether B1 and B2 are conjugate and if so returns C such that C^-1 · B1 · C = B2.
func AreConjugate(B1, B2 *Braid) (bool, *Braid) {
	B1.checkIndex(B2)
	U1, C1 := SendToUSSWithConj(B1)
	U2, C2 := SendToUSSWithConj(B2)
	if U1.LeftDelta != U2.LeftDelta || len(U1.Factors) != len(U2.Factors) {
		return false, nil
	}
	if U1.Equal(U2) {
		C := Mul(C1, C2.Inverse())
		C.MakeLCF()
		return true, C
	}

	uss := BuildUSS(U1)
	D, found := TreePath(uss, U2)
	if !found {
		return false, nil
	}
	C := Mul(Mul(C1, D), C2.Inverse())
	C.MakeLCF()
	return true, C
}

// Centralizer returns generators of the centralizer of B.
func Centralizer(B *Braid) []*Braid {
	X := B.LCF()
	if len(X.Factors) == 0 && Delta(X.Pres, X.LeftDelta).CompareWithIdentity() {
		return centralizerOfCentral(X)
	}

	U, C := SendToUSSWithConj(X)
	uss := BuildUSS(U)

	var loops []*Braid
	for _, probe := range uss.Probes {
		L := Mul(uss.pathTo(probe.From), FactorBraid(probe.Min))
		L = Mul(L, uss.treePath(probe.ToOrbit, probe.ToPos).Inverse())
		loops = append(loops, L)
	}
	for i, orbit := range uss.Orbits {
		if len(orbit[0].Factors) == 0 {
			continue
		}
		D := uss.pathTo(i)
		L := Mul(Mul(D, uss.cyclingProduct(i, len(orbit))), D.Inverse())
		loops = append(loops, L)
	}

	Cinv := C.Inverse()
	set := NewBraidSet()
	defer set.Close()

	var gens []*Braid
	for _, L := range loops {
		G := Mul(Mul(C, L), Cinv)
		G.MakeLCF()
		if G.IsIdentity() || !set.TryAdd(G) {
			continue
		}
		gens = append(gens, G)
	}

	if klog.V(2).Enabled() {
		klog.Infof("Centralizer: %d generators from %d loops", len(gens), len(loops))
	}
	return gens
}

// centralizerOfCentral returns σ1 and σ1σ2···σn-1, which generate the whole group.
func centralizerOfCentral(X *Braid) []*Braid {
	n := X.Index()
	word := make([]int, n-1)
	for i := range word {
		word[i] = i + 1
	}
	return []*Braid{
		MustFromWord(X.Pres, 1),
		MustFromWord(X.Pres, word...),
	}
}
