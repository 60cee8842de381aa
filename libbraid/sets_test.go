package libbraid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBraidSets(t *testing.T) {
	B4 := NewArtinPresentation(4)
	words := [][]int{{1}, {2}, {1, 2}, {1, -2}, {2, 1, 2}, {3, -1}}

	for _, set := range []BraidSet{NewBraidSet(), NewLSMBraidSet()} {
		for _, word := range words {
			require.True(t, set.TryAdd(MustFromWord(B4, word...)))
		}

		// σ2σ1σ2 = σ1σ2σ1 and σ3σ1^-1 = σ1^-1σ3
		require.False(t, set.TryAdd(MustFromWord(B4, 1, 2, 1)))
		require.False(t, set.TryAdd(MustFromWord(B4, -1, 3)))
		require.Equal(t, len(words), set.Len())

		set.Close()
		require.Equal(t, 0, set.Len())
		require.True(t, set.TryAdd(MustFromWord(B4, 1)))
		set.Close()
	}
}

func TestKeys(t *testing.T) {
	B4 := NewArtinPresentation(4)
	B5 := NewArtinPresentation(5)
	require.NotEqual(t, MustFromWord(B4, 1).Key(), MustFromWord(B5, 1).Key())
	require.NotEqual(t, MustFromWord(B4, 1).Key(), MustFromWord(B4, 2).Key())
	require.Equal(t, MustFromWord(B4, 1, 3).Key(), MustFromWord(B4, 3, 1).Key())
}
