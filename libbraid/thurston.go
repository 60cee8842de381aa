package libbraid

import (
	"github.com/2x3systems/gobraid/garside"
	"github.com/plan-systems/klog"
)

// ClassifyOpts specifies how ThurstonTypeWithOpts searches for reduction curves.
type ClassifyOpts struct {
	Sliding bool // check the sliding circuit of B before enumerating the ultra summit set
}

// ThurstonType classifies B as periodic, reducible or pseudo-Anosov.
func ThurstonType(B *Braid) garside.ThurstonType {
	return ThurstonTypeWithOpts(B, ClassifyOpts{})
}

func ThurstonTypeWithOpts(B *Braid, opts ClassifyOpts) garside.ThurstonType {
	X := toArtin(B)
	n := X.Index()

	P := X.LCF()
	for k := 1; k <= n; k++ {
		if len(P.Factors) == 0 {
			return garside.Periodic
		}
		P = Mul(P, X)
		P.MakeLCF()
	}

	if opts.Sliding {
		for _, Y := range SlidingTrajectory(SendToSC(X)) {
			if Circles(Y) {
				return garside.Reducible
			}
		}
	}

	uss := USS(X)
	hits := 0
	for _, orbit := range uss.Orbits {
		for _, Y := range orbit {
			if Circles(Y) {
				hits++
				break
			}
		}
	}

	switch {
	case hits == 0:
		return garside.PseudoAnosov
	case hits < len(uss.Orbits):
		klog.Warningf("ThurstonType: %d of %d ultra summit orbits preserve round circles", hits, len(uss.Orbits))
	}
	return garside.Reducible
}

// toArtin returns B in the Artin presentation.
func toArtin(B *Braid) *Braid {
	if B.Pres.Name() == PresArtin {
		return B
	}
	return MustFromWord(NewArtinPresentation(B.Index()), B.Word()...)
}

// Circles returns true if B (Artin, in LCF) preserves a family of disjoint round circles, i.e. maps the boundary of an
// interval of punctures to the boundary of an interval through Δ^p and through every factor.
func Circles(B *Braid) bool {
	n := B.Index()
	if n < 3 {
		return false
	}

	steps := make([]tableau, 0, len(B.Factors)+1)
	if B.LeftDelta&1 != 0 {
		steps = append(steps, newTableau(B.Pres.DeltaTable(1)))
	}
	for _, f := range B.Factors {
		steps = append(steps, newTableau(f.perm))
	}

	for size := 2; size < n; size++ {
		for lo := 0; lo+size <= n; lo++ {
			if roundOrbit(steps, interval{lo, lo + size - 1}, n) {
				return true
			}
		}
	}
	return false
}

type interval struct {
	lo, hi int
}

func (I interval) overlaps(J interval) bool {
	return I.lo <= J.hi && J.lo <= I.hi
}

// roundOrbit follows I under B and reports whether every image stays an interval and the images are pairwise disjoint.
func roundOrbit(steps []tableau, I interval, n int) bool {
	orbit := []interval{I}
	cur := I
	for len(orbit) <= n {
		for _, tab := range steps {
			var ok bool
			if cur, ok = tab.image(cur); !ok {
				return false
			}
		}
		if cur == I {
			return true
		}
		for _, J := range orbit {
			if J.overlaps(cur) {
				return false
			}
		}
		orbit = append(orbit, cur)
	}
	return false
}

// tableau holds the min and max of a table over every interval [i,j].
type tableau struct {
	min, max [][]int
}

func newTableau(table []int) tableau {
	n := len(table)
	tab := tableau{
		min: make([][]int, n),
		max: make([][]int, n),
	}
	for i := 0; i < n; i++ {
		tab.min[i] = make([]int, n)
		tab.max[i] = make([]int, n)
		tab.min[i][i] = table[i]
		tab.max[i][i] = table[i]
		for j := i + 1; j < n; j++ {
			tab.min[i][j] = min(tab.min[i][j-1], table[j])
			tab.max[i][j] = max(tab.max[i][j-1], table[j])
		}
	}
	return tab
}

// image returns the image of I if it is an interval.
func (tab tableau) image(I interval) (interval, bool) {
	lo, hi := tab.min[I.lo][I.hi], tab.max[I.lo][I.hi]
	if hi-lo != I.hi-I.lo {
		return interval{}, false
	}
	return interval{lo, hi}, true
}
