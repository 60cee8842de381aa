package libbraid

import (
	"sort"

	"github.com/2x3systems/gobraid/garside"
	"github.com/pkg/errors"
)

// Presentation names
const (
	PresArtin = "artin"
	PresBand  = "band"
)

// NewPresentation returns the named presentation on n strands.
func NewPresentation(name string, n int) (garside.Presentation, error) {
	if n < 2 || n > garside.MaxIndex {
		return nil, errors.Wrapf(garside.ErrBadIndex, "index %d not in [2,%d]", n, garside.MaxIndex)
	}
	switch name {
	case PresArtin, "":
		return NewArtinPresentation(n), nil
	case PresBand:
		return NewBandPresentation(n), nil
	}
	return nil, errors.Wrapf(garside.ErrUnknownPresentation, "%q", name)
}

// bandPresentation is the Birman-Ko-Lee structure on n strands.
// Simple elements are non-crossing partitions of the strand positions; each block is a cycle sending every member to the next larger one.
// Δ is δ = a(n,n-1)···a(2,1), the cyclic shift i -> i+1.
type bandPresentation struct {
	n int
}

// NewBandPresentation returns the band generator presentation of the braid group on n strands.
func NewBandPresentation(n int) garside.Presentation {
	return &bandPresentation{n: n}
}

func (P *bandPresentation) Name() string {
	return PresBand
}

func (P *bandPresentation) Index() int {
	return P.n
}

func (P *bandPresentation) DeltaTable(k int) []int {
	n := P.n
	k %= n
	if k < 0 {
		k += n
	}
	table := make([]int, n)
	for i := range table {
		table[i] = (i + k) % n
	}
	return table
}

// LeftMeet intersects the two partitions.
func (P *bandPresentation) LeftMeet(a, b []int) []int {
	n := P.n
	la := cycleLabels(a)
	lb := cycleLabels(b)

	order := identityTable(n)
	sort.Slice(order, func(i, j int) bool {
		oi, oj := order[i], order[j]
		if la[oi] != la[oj] {
			return la[oi] < la[oj]
		}
		if lb[oi] != lb[oj] {
			return lb[oi] < lb[oj]
		}
		return oi < oj
	})

	meet := make([]int, n)
	for start := 0; start < n; {
		end := start + 1
		for end < n && la[order[end]] == la[order[start]] && lb[order[end]] == lb[order[start]] {
			end++
		}
		for i := start; i < end-1; i++ {
			meet[order[i]] = order[i+1]
		}
		meet[order[end-1]] = order[start]
		start = end
	}
	return meet
}

// RightMeet coincides with LeftMeet since the divisors of a simple element on either side are the refinements of its partition.
func (P *bandPresentation) RightMeet(a, b []int) []int {
	return P.LeftMeet(a, b)
}

func (P *bandPresentation) Atoms() [][]int {
	atoms := make([][]int, 0, P.n*(P.n-1)/2)
	for t := 2; t <= P.n; t++ {
		for s := 1; s < t; s++ {
			atoms = append(atoms, P.BandTable(t, s))
		}
	}
	return atoms
}

func (P *bandPresentation) CyclingBound() int {
	return P.n - 1
}

// FactorWord expands each block i1 < ... < ik as a(ik,ik-1)···a(i2,i1) and each a(t,s) as its Artin word.
func (P *bandPresentation) FactorWord(table []int) []int {
	labels := cycleLabels(table)
	var word []int
	for lead := 0; lead < P.n; lead++ {
		if labels[lead] != lead {
			continue
		}
		var block []int
		for i := lead; ; {
			block = append(block, i)
			i = table[i]
			if i == lead {
				break
			}
		}
		for j := len(block) - 1; j > 0; j-- {
			word = AppendBandWord(word, block[j]+1, block[j-1]+1, 1)
		}
	}
	return word
}

func (P *bandPresentation) BandTable(t, s int) []int {
	if s < 1 || t <= s || t > P.n {
		return nil
	}
	table := identityTable(P.n)
	table[s-1], table[t-1] = t-1, s-1
	return table
}

// AppendBandWord appends the Artin word of a(t,s)^sign, i.e. (σt-1···σs+1) σs^sign (σs+1^-1···σt-1^-1).
func AppendBandWord(word []int, t, s int, sign int) []int {
	for i := t - 1; i > s; i-- {
		word = append(word, i)
	}
	word = append(word, sign*s)
	for i := s + 1; i < t; i++ {
		word = append(word, -i)
	}
	return word
}

// cycleLabels labels each position with the smallest member of its cycle.
func cycleLabels(table []int) []int {
	labels := make([]int, len(table))
	for i := range labels {
		labels[i] = -1
	}
	for i := range table {
		if labels[i] >= 0 {
			continue
		}
		for j := i; labels[j] < 0; j = table[j] {
			labels[j] = i
		}
	}
	return labels
}
