package libbraid

import (
	"testing"

	"github.com/2x3systems/gobraid/garside"
	"github.com/stretchr/testify/require"
)

func TestParseWord(t *testing.T) {
	cases := []struct {
		n    int
		text string
		word []int
	}{
		{3, "[1, 2, -1]", []int{1, 2, -1}},
		{3, "1 2 -1", []int{1, 2, -1}},
		{3, "", nil},
		{3, "D^-1 1 2", []int{-1, -2, -1, 1, 2}},
		{3, "D", []int{1, 2, 1}},
		{4, "a(3,1) a(2,1)^-1", []int{2, 1, -2, -1}},
		{4, "a(4,2)^2", []int{3, 2, -3, 3, 2, -3}},
	}
	for _, tc := range cases {
		word, err := ParseWord(NewArtinPresentation(tc.n), tc.text)
		require.NoError(t, err, tc.text)
		require.Equal(t, tc.word, word, tc.text)
	}
}

func TestParseErrors(t *testing.T) {
	_, err := ParseWord(NewArtinPresentation(3), "1 2 (")
	require.ErrorIs(t, err, garside.ErrBadWordExpr)

	_, err = ParseWord(NewArtinPresentation(3), "3")
	require.ErrorIs(t, err, garside.ErrBadGenerator)

	_, err = ParseWord(NewArtinPresentation(4), "a(2,3)")
	require.ErrorIs(t, err, garside.ErrBadBandGenerator)

	_, err = ParseBraid(NewBandPresentation(4), "a(5,1)")
	require.ErrorIs(t, err, garside.ErrBadBandGenerator)
}

func TestParseBraid(t *testing.T) {
	for _, pres := range []garside.Presentation{NewArtinPresentation(4), NewBandPresentation(4)} {
		for _, text := range []string{"[1, 2, -1]", "D^-1 1 2 3", "a(3,1) a(2,1)^-1 a(4,1)^2", "D^2 -3 -3"} {
			B, err := ParseBraid(pres, text)
			require.NoError(t, err, text)

			word, err := ParseWord(pres, text)
			require.NoError(t, err, text)
			require.True(t, B.Equal(MustFromWord(pres, word...)), "%s %s", pres.Name(), text)
		}
	}

	// D is δ in the band presentation, whichever way the text is read
	band := NewBandPresentation(4)
	word, err := ParseWord(band, "D")
	require.NoError(t, err)
	require.Equal(t, []int{3, 2, 1}, word)
	D, err := ParseBraid(band, "D")
	require.NoError(t, err)
	require.True(t, D.Equal(MustFromWord(band, word...)))
	require.True(t, D.Equal(DeltaBraid(band, 1)))

	word, err = ParseWord(NewArtinPresentation(4), "D")
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 1, 3, 2, 1}, word)

	// δ in the band presentation is a single factor
	B, err := ParseBraid(NewBandPresentation(4), "3 2 1")
	require.NoError(t, err)
	require.Equal(t, 1, B.LeftDelta)
	require.Empty(t, B.Factors)
}
