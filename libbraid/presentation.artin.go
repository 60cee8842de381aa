package libbraid

import (
	"github.com/2x3systems/gobraid/garside"
)

// artinPresentation is the classic Garside structure on n strands: atoms are σ1..σn-1 and Δ is the half twist.
type artinPresentation struct {
	n int
}

// NewArtinPresentation returns the Artin presentation of the braid group on n strands.
func NewArtinPresentation(n int) garside.Presentation {
	return &artinPresentation{n: n}
}

func (P *artinPresentation) Name() string {
	return PresArtin
}

func (P *artinPresentation) Index() int {
	return P.n
}

func (P *artinPresentation) DeltaTable(k int) []int {
	n := P.n
	table := make([]int, n)
	if k&1 != 0 {
		for i := range table {
			table[i] = n - 1 - i
		}
	} else {
		for i := range table {
			table[i] = i
		}
	}
	return table
}

// LeftMeet merges the two halves of the strand range, keeping a strand ahead of another only when neither a nor b crosses them.
func (P *artinPresentation) LeftMeet(a, b []int) []int {
	n := P.n
	m := meetScratch{
		a: a,
		b: b,
		r: make([]int, n),
		u: make([]int, n),
		v: make([]int, n),
		w: make([]int, n),
	}
	for i := range m.r {
		m.r[i] = i
	}
	m.meetSub(0, n-1)

	meet := make([]int, n)
	for i, ri := range m.r {
		meet[ri] = i
	}
	return meet
}

func (P *artinPresentation) RightMeet(a, b []int) []int {
	return invertTable(P.LeftMeet(invertTable(a), invertTable(b)))
}

func (P *artinPresentation) Atoms() [][]int {
	atoms := make([][]int, 0, P.n-1)
	for i := 1; i < P.n; i++ {
		atoms = append(atoms, P.generatorTable(i))
	}
	return atoms
}

func (P *artinPresentation) CyclingBound() int {
	return P.n * (P.n - 1) / 2
}

// FactorWord emits the bubble-sort trace of the table: each crossing pair found is a left divisor σi.
func (P *artinPresentation) FactorWord(table []int) []int {
	f := append([]int(nil), table...)
	var word []int
	for {
		i := 0
		for ; i < len(f)-1; i++ {
			if f[i] > f[i+1] {
				break
			}
		}
		if i >= len(f)-1 {
			return word
		}
		word = append(word, i+1)
		f[i], f[i+1] = f[i+1], f[i]
	}
}

func (P *artinPresentation) BandTable(t, s int) []int {
	if t != s+1 || s < 1 || t > P.n {
		return nil
	}
	return P.generatorTable(s)
}

// generatorTable returns the table of σi (1-based).
func (P *artinPresentation) generatorTable(i int) []int {
	table := identityTable(P.n)
	table[i-1], table[i] = i, i-1
	return table
}

// meetScratch holds the working arrays of one LeftMeet call.
type meetScratch struct {
	a, b       []int
	r, u, v, w []int
}

func (m *meetScratch) meetSub(s, t int) {
	if s >= t {
		return
	}
	mid := (s + t) / 2
	m.meetSub(s, mid)
	m.meetSub(mid+1, t)

	a, b, r, u, v := m.a, m.b, m.r, m.u, m.v

	u[mid] = a[r[mid]]
	v[mid] = b[r[mid]]
	for i := mid - 1; i >= s; i-- {
		u[i] = min(a[r[i]], u[i+1])
		v[i] = min(b[r[i]], v[i+1])
	}

	u[mid+1] = a[r[mid+1]]
	v[mid+1] = b[r[mid+1]]
	for i := mid + 2; i <= t; i++ {
		u[i] = max(a[r[i]], u[i-1])
		v[i] = max(b[r[i]], v[i-1])
	}

	p, q := s, mid+1
	for i := s; i <= t; i++ {
		if p > mid || (q <= t && u[p] > u[q] && v[p] > v[q]) {
			m.w[i] = r[q]
			q++
		} else {
			m.w[i] = r[p]
			p++
		}
	}
	copy(r[s:t+1], m.w[s:t+1])
}

func identityTable(n int) []int {
	table := make([]int, n)
	for i := range table {
		table[i] = i
	}
	return table
}

func invertTable(a []int) []int {
	inv := make([]int, len(a))
	for i, ai := range a {
		inv[ai] = i
	}
	return inv
}
