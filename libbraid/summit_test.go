package libbraid

import (
	"math/rand"
	"testing"

	"github.com/2x3systems/gobraid/garside"
	"github.com/stretchr/testify/require"
)

func TestCycling(t *testing.T) {
	B3 := NewArtinPresentation(3)

	// σ1σ2^-1 = Δ^-1 · σ2 · σ2σ1 is rigid
	B := MustFromWord(B3, 1, -2)
	C := Cycling(B)
	require.Equal(t, -1, C.LeftDelta)
	require.Equal(t, 2, Rigidity(B))
	require.True(t, Decycling(C).Equal(B))

	D := DeltaBraid(B3, 3)
	require.True(t, Cycling(D).Equal(D))
	require.True(t, Decycling(D).Equal(D))
	require.True(t, Sliding(D).Equal(D))
	require.Equal(t, 0, Rigidity(D))
}

func TestConjugationInvariance(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for _, pres := range []garside.Presentation{NewArtinPresentation(4), NewBandPresentation(4)} {
		for trial := 0; trial < 40; trial++ {
			B := randomBraid(t, rng, pres, 2+rng.Intn(8))
			C := randomBraid(t, rng, pres, rng.Intn(6))

			X, XC := SendToSSSWithConj(B)
			Y := SendToSSS(B.Conjugate(C))
			require.Equal(t, X.Inf(), Y.Inf())
			require.Equal(t, X.CL(), Y.CL())
			require.True(t, B.Conjugate(XC).Equal(X))

			U, UC := SendToUSSWithConj(B)
			require.True(t, B.Conjugate(UC).Equal(U))
			require.Equal(t, X.Inf(), U.Inf())
			require.Equal(t, X.CL(), U.CL())

			S, SC := SendToSCWithConj(B)
			require.True(t, B.Conjugate(SC).Equal(S))
			require.Equal(t, X.Inf(), S.Inf())
			require.Equal(t, X.CL(), S.CL())
		}
	}
}

func TestSummitSets(t *testing.T) {
	B3 := NewArtinPresentation(3)
	sigma1 := MustFromWord(B3, 1)

	sss := SSS(sigma1)
	require.Len(t, sss, 2)

	uss := USS(sigma1)
	require.Equal(t, 2, uss.Size())
	require.Len(t, uss.Orbits, 2)
	require.Equal(t, -1, uss.Prev[0])
	require.True(t, uss.Mins[0].CompareWithIdentity())

	for _, Y := range sss {
		_, _, found := uss.Locate(Y)
		require.True(t, found)
	}
}

func TestSummitSetClosure(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	for _, pres := range []garside.Presentation{NewArtinPresentation(4), NewBandPresentation(4)} {
		for trial := 0; trial < 15; trial++ {
			B := randomBraid(t, rng, pres, 3+rng.Intn(6))

			lsm := NewLSMBraidSet()
			sss := SSSWithSet(B, lsm)
			require.Equal(t, len(sss), lsm.Len())
			lsm.Close()

			X := sss[0]
			for _, Y := range sss {
				require.Equal(t, X.Inf(), Y.Inf())
				require.Equal(t, X.CL(), Y.CL())
			}

			uss := USS(B)
			require.LessOrEqual(t, uss.Size(), len(sss))
			for i, orbit := range uss.Orbits {
				// every orbit closes under cycling
				require.True(t, Cycling(orbit[len(orbit)-1]).Equal(orbit[0]))

				// provenance
				if i > 0 {
					prev := uss.Orbits[uss.Prev[i]][0]
					require.True(t, prev.ConjugateByFactor(uss.Mins[i]).Equal(orbit[0]))
				}

				for _, Y := range orbit {
					D, found := TreePath(uss, Y)
					require.True(t, found)
					require.True(t, uss.Root().Conjugate(D).Equal(Y))
				}
			}

			for _, probe := range uss.Probes {
				Y := uss.Orbits[probe.From][0].ConjugateByFactor(probe.Min)
				require.True(t, uss.Orbits[probe.ToOrbit][probe.ToPos].Equal(Y))
			}
		}
	}
}

func TestMinSSS(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	pres := NewArtinPresentation(4)
	for trial := 0; trial < 20; trial++ {
		X := SendToSSS(randomBraid(t, rng, pres, 4+rng.Intn(6)))
		for _, atom := range Atoms(pres) {
			rho := MinSSS(X, atom)
			require.True(t, atom.LeftDivides(rho))

			Y := X.ConjugateByFactor(rho)
			require.Equal(t, X.Inf(), Y.Inf())
			require.Equal(t, X.CL(), Y.CL())
		}
	}
}

func TestTransport(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	pres := NewArtinPresentation(4)
	for trial := 0; trial < 20; trial++ {
		X := SendToUSS(randomBraid(t, rng, pres, 4+rng.Intn(6)))
		for _, atom := range Atoms(pres) {
			s := MinUSS(X, atom)
			require.True(t, atom.LeftDivides(s))

			// c(x)^(s transported) = c(x^s)
			t1 := Transport(X, s)
			require.True(t, Cycling(X).ConjugateByFactor(t1).Equal(Cycling(X.ConjugateByFactor(s))))

			for _, R := range Returns(X, s) {
				require.Equal(t, X.CL(), X.ConjugateByFactor(R).CL())
			}
		}
	}
}

func TestRemainder(t *testing.T) {
	B3 := NewArtinPresentation(3)
	X := MustFromWord(B3, 1)

	// conjugating σ1 by σ1 keeps it, so σ1 is its own remainder
	sigma1 := X.Factors[0]
	require.True(t, Remainder(X, sigma1).LeftDivides(sigma1))

	// conjugating by σ2 needs σ2σ1
	sigma2 := MustFromWord(B3, 2).Factors[0]
	rho := MinSSS(X, sigma2)
	require.Equal(t, []int{2, 1}, rho.Word())
}
