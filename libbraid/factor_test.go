package libbraid

import (
	"testing"

	"github.com/2x3systems/gobraid/garside"
	"github.com/stretchr/testify/require"
)

// allTables returns every permutation of n elements.
func allTables(n int) [][]int {
	var out [][]int
	var gen func(prefix []int, used []bool)
	gen = func(prefix []int, used []bool) {
		if len(prefix) == n {
			out = append(out, append([]int(nil), prefix...))
			return
		}
		for i := 0; i < n; i++ {
			if !used[i] {
				used[i] = true
				gen(append(prefix, i), used)
				used[i] = false
			}
		}
	}
	gen(nil, make([]bool, n))
	return out
}

// crossings reports which pairs of strands (by start position) cross.
func crossings(table []int) [][]bool {
	n := len(table)
	inv := make([][]bool, n)
	for i := range inv {
		inv[i] = make([]bool, n)
		for j := i + 1; j < n; j++ {
			inv[i][j] = table[i] > table[j]
		}
	}
	return inv
}

func crossingCount(table []int) int {
	count := 0
	for _, row := range crossings(table) {
		for _, crossed := range row {
			if crossed {
				count++
			}
		}
	}
	return count
}

func crossingsWithin(a, b [][]bool) bool {
	for i := range a {
		for j := range a[i] {
			if a[i][j] && !b[i][j] {
				return false
			}
		}
	}
	return true
}

// bruteLeftMeet returns the permutation braid with the most crossings whose crossings lie in both a and b.
func bruteLeftMeet(all [][]int, a, b []int) []int {
	ia, ib := crossings(a), crossings(b)
	var best []int
	for _, m := range all {
		im := crossings(m)
		if crossingsWithin(im, ia) && crossingsWithin(im, ib) {
			if best == nil || crossingCount(m) > crossingCount(best) {
				best = m
			}
		}
	}
	return best
}

func TestArtinLeftMeet(t *testing.T) {
	for _, n := range []int{2, 3, 4} {
		pres := NewArtinPresentation(n)
		all := allTables(n)
		for _, a := range all {
			for _, b := range all {
				require.Equal(t, bruteLeftMeet(all, a, b), pres.LeftMeet(a, b), "n=%d a=%v b=%v", n, a, b)
			}
		}
	}
}

func TestArtinRightMeet(t *testing.T) {
	pres := NewArtinPresentation(4)
	all := allTables(4)
	for _, a := range all {
		for _, b := range all {
			want := invertTable(bruteLeftMeet(all, invertTable(a), invertTable(b)))
			require.Equal(t, want, pres.RightMeet(a, b))
		}
	}
}

// bandFactors returns every simple element of the band presentation on n strands.
func bandFactors(pres garside.Presentation) []Factor {
	n := pres.Index()
	var out []Factor
	for _, table := range allTables(n) {
		f := FactorFromTable(pres, table)
		if isNonCrossing(table) {
			out = append(out, f)
		}
	}
	return out
}

// isNonCrossing returns true if every cycle of table is ascending and no two cycles interleave.
func isNonCrossing(table []int) bool {
	labels := cycleLabels(table)
	n := len(table)
	for i, ti := range table {
		// each block steps to its next larger member, wrapping from its largest to its smallest
		if ti < i && ti != labels[i] {
			return false
		}
		if ti > i {
			for j := i + 1; j < ti; j++ {
				if labels[j] == labels[i] {
					return false
				}
			}
		}
	}
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			for c := b + 1; c < n; c++ {
				for d := c + 1; d < n; d++ {
					if labels[a] == labels[c] && labels[b] == labels[d] && labels[a] != labels[b] {
						return false
					}
				}
			}
		}
	}
	return true
}

func latticeFactors(t *testing.T, pres garside.Presentation) []Factor {
	if pres.Name() == PresBand {
		factors := bandFactors(pres)
		require.Len(t, factors, catalan(pres.Index()))
		return factors
	}
	var factors []Factor
	for _, table := range allTables(pres.Index()) {
		factors = append(factors, FactorFromTable(pres, table))
	}
	return factors
}

func catalan(n int) int {
	c := 1
	for i := 0; i < n; i++ {
		c = c * 2 * (2*i + 1) / (i + 2)
	}
	return c
}

func TestLatticeLaws(t *testing.T) {
	for _, pres := range []garside.Presentation{NewArtinPresentation(4), NewBandPresentation(4), NewBandPresentation(5)} {
		e := Identity(pres)
		D := Delta(pres, 1)
		factors := latticeFactors(t, pres)

		for _, a := range factors {
			require.True(t, a.LeftMeet(a).Equal(a))
			require.True(t, a.LeftMeet(e).CompareWithIdentity())
			require.True(t, a.LeftMeet(D).Equal(a), "%s %v", pres.Name(), a.perm)
			require.True(t, a.RightMeet(D).Equal(a))
			require.True(t, a.Mul(a.Complement()).CompareWithDelta())
			require.True(t, a.LeftComplement().Mul(a).CompareWithDelta())
			require.True(t, a.Flip(1).Flip(-1).Equal(a))
		}

		for _, a := range factors {
			for _, b := range factors {
				m := a.LeftMeet(b)
				require.True(t, m.Equal(b.LeftMeet(a)))
				require.True(t, m.LeftDivides(a))
				require.True(t, m.LeftDivides(b))

				j := a.LeftJoin(b)
				require.True(t, a.LeftDivides(j))
				require.True(t, b.LeftDivides(j))
				require.True(t, j.Equal(b.LeftJoin(a)))

				rj := a.RightJoin(b)
				require.True(t, a.RightMeet(rj).Equal(a))
				require.True(t, b.RightMeet(rj).Equal(b))
			}
		}
	}
}

func TestBandDelta(t *testing.T) {
	pres := NewBandPresentation(5)
	D := Delta(pres, 1)
	require.Equal(t, []int{1, 2, 3, 4, 0}, D.Table())
	require.True(t, Delta(pres, 5).CompareWithIdentity())
	require.Equal(t, []int{4, 3, 2, 1}, D.Word())

	// a(4,2) is σ3 σ2 σ3^-1
	require.Equal(t, []int{3, 2, -3}, FactorFromTable(pres, pres.BandTable(4, 2)).Word())
	require.Len(t, Atoms(pres), 10)
}

func TestArtinFactorWord(t *testing.T) {
	pres := NewArtinPresentation(3)
	require.Equal(t, []int{1, 2, 1}, Delta(pres, 1).Word())
	require.Equal(t, []int{1, 2}, FactorFromTable(pres, []int{2, 0, 1}).Word())
	require.Empty(t, Identity(pres).Word())
	require.Equal(t, "1 2", FactorFromTable(pres, []int{2, 0, 1}).String())
	require.Equal(t, "e", Identity(pres).String())
}

func TestIndexMismatch(t *testing.T) {
	a := Identity(NewArtinPresentation(3))
	b := Identity(NewArtinPresentation(4))
	require.Panics(t, func() { a.Mul(b) })
}
