package libbraid

import (
	"math/rand"
	"testing"

	"github.com/2x3systems/gobraid/garside"
	"github.com/stretchr/testify/require"
)

func randomWord(rng *rand.Rand, n, length int) []int {
	word := make([]int, length)
	for i := range word {
		gi := 1 + rng.Intn(n-1)
		if rng.Intn(2) == 0 {
			gi = -gi
		}
		word[i] = gi
	}
	return word
}

func randomBraid(t *testing.T, rng *rand.Rand, pres garside.Presentation, length int) *Braid {
	B, err := FromWord(pres, randomWord(rng, pres.Index(), length))
	require.NoError(t, err)
	return B
}

func TestLiteralExamples(t *testing.T) {
	B3 := NewArtinPresentation(3)

	B := MustFromWord(B3, 1, 2, 1)
	require.Equal(t, 1, B.LeftDelta)
	require.Empty(t, B.Factors)
	require.Equal(t, 0, B.RightDelta)

	B = MustFromWord(B3, 1, -1)
	require.True(t, B.IsIdentity())
	require.Equal(t, "Δ^0 . Δ^0", B.String())

	B = MustFromWord(NewArtinPresentation(4), 1, 2, 3)
	require.Equal(t, garside.Periodic, ThurstonType(B))
}

func TestBadWord(t *testing.T) {
	B3 := NewArtinPresentation(3)
	_, err := FromWord(B3, []int{1, 3})
	require.ErrorIs(t, err, garside.ErrBadGenerator)
	_, err = FromWord(B3, []int{0})
	require.ErrorIs(t, err, garside.ErrBadGenerator)

	_, err = NewPresentation("braid", 3)
	require.ErrorIs(t, err, garside.ErrUnknownPresentation)
	_, err = NewPresentation(PresArtin, 1)
	require.ErrorIs(t, err, garside.ErrBadIndex)
}

func TestNormalForms(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, pres := range []garside.Presentation{NewArtinPresentation(4), NewBandPresentation(4), NewArtinPresentation(6), NewBandPresentation(6)} {
		for trial := 0; trial < 200; trial++ {
			B := randomBraid(t, rng, pres, 1+rng.Intn(16))

			// idempotence
			require.True(t, B.LCF().Equal(B))
			require.True(t, B.RCF().RCF().Equal(B.RCF()))

			// form independence
			require.True(t, B.RCF().LCF().Equal(B))

			// normal form invariants
			for i, f := range B.Factors {
				require.False(t, f.CompareWithIdentity())
				require.False(t, f.CompareWithDelta())
				if i > 0 {
					require.True(t, B.Factors[i-1].Complement().LeftMeet(f).CompareWithIdentity())
				}
			}

			// inverse
			require.True(t, Mul(B, B.Inverse()).LCF().IsIdentity())
			require.True(t, Mul(B.Inverse(), B).LCF().IsIdentity())

			// word round trip
			W := MustFromWord(pres, B.Word()...)
			require.True(t, W.Equal(B))
		}
	}
}

func TestProducts(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	pres := NewArtinPresentation(5)
	for trial := 0; trial < 100; trial++ {
		w1 := randomWord(rng, 5, rng.Intn(10))
		w2 := randomWord(rng, 5, rng.Intn(10))
		A := MustFromWord(pres, w1...)
		B := MustFromWord(pres, w2...)
		AB := MustFromWord(pres, append(append([]int(nil), w1...), w2...)...)
		require.True(t, Mul(A, B).SameElement(AB))

		X := A.Clone()
		for _, f := range B.Factors {
			X.RightMultiply(f)
		}
		require.True(t, X.SameElement(Mul(A, factorsOnly(B))))

		require.True(t, A.Power(3).SameElement(Mul(Mul(A, A), A)))
		require.True(t, A.Power(-2).SameElement(Mul(A, A).Inverse()))
		require.True(t, A.Conjugate(B).SameElement(Mul(Mul(B.Inverse(), A), B)))
	}
}

// factorsOnly drops the Δ powers of B.
func factorsOnly(B *Braid) *Braid {
	return &Braid{Pres: B.Pres, Factors: B.Factors}
}

func TestEquality(t *testing.T) {
	B3 := NewArtinPresentation(3)
	raw := &Braid{Pres: B3, RightDelta: 1}
	D := DeltaBraid(B3, 1)

	require.False(t, raw.Equal(D))
	require.True(t, raw.SameElement(D))
	require.Equal(t, 1, raw.RightDelta, "SameElement leaves its operands alone")
}

func TestBandArtinAgree(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	artin := NewArtinPresentation(5)
	band := NewBandPresentation(5)
	for trial := 0; trial < 100; trial++ {
		word := randomWord(rng, 5, rng.Intn(12))
		A := MustFromWord(artin, word...)
		B := MustFromWord(band, word...)

		// both normal forms describe the same braid
		require.True(t, MustFromWord(artin, B.Word()...).Equal(A))
		require.True(t, MustFromWord(band, A.Word()...).Equal(B))
	}
}

func TestPrint(t *testing.T) {
	B := MustFromWord(NewArtinPresentation(3), 1, -2)
	require.Equal(t, "Δ^-1 . 2 . 2 1 . Δ^0", B.String())
	require.Equal(t, []int{-1, -2, -1, 2, 2, 1}, B.Word())
}
