package libbraid

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/2x3systems/gobraid/garside"
	"github.com/pkg/errors"
)

// Factor is a simple element: a permutation table lying between Identity and Δ in the prefix order.
//
// A Factor is a value: operations return new tables and never modify their operands.
type Factor struct {
	pres garside.Presentation
	perm []int
}

// Identity returns the trivial factor.
func Identity(pres garside.Presentation) Factor {
	return Factor{pres, identityTable(pres.Index())}
}

// Delta returns the factor table of Δ^k.
func Delta(pres garside.Presentation, k int) Factor {
	return Factor{pres, pres.DeltaTable(k)}
}

// FactorFromTable wraps a 0-based table; the table is not copied.
func FactorFromTable(pres garside.Presentation, table []int) Factor {
	return Factor{pres, table}
}

// Atoms returns the atoms of the given presentation.
func Atoms(pres garside.Presentation) []Factor {
	tables := pres.Atoms()
	atoms := make([]Factor, len(tables))
	for i, table := range tables {
		atoms[i] = Factor{pres, table}
	}
	return atoms
}

func (f Factor) Pres() garside.Presentation {
	return f.pres
}

func (f Factor) Index() int {
	return len(f.perm)
}

// At returns the end position of the strand starting at i (0-based).
func (f Factor) At(i int) int {
	return f.perm[i]
}

// Table returns a copy of f's table.
func (f Factor) Table() []int {
	return append([]int(nil), f.perm...)
}

func (f Factor) checkIndex(g Factor) {
	if len(f.perm) != len(g.perm) {
		panic(errors.Wrapf(garside.ErrIndexMismatch, "%d vs %d", len(f.perm), len(g.perm)))
	}
}

// Mul returns the product f·g.
func (f Factor) Mul(g Factor) Factor {
	f.checkIndex(g)
	prod := make([]int, len(f.perm))
	for i, fi := range f.perm {
		prod[i] = g.perm[fi]
	}
	return Factor{f.pres, prod}
}

// Inverse returns the inverse permutation of f, written !f.
func (f Factor) Inverse() Factor {
	return Factor{f.pres, invertTable(f.perm)}
}

// Complement returns ~f, the factor such that f·~f = Δ.
func (f Factor) Complement() Factor {
	return f.Inverse().Mul(Delta(f.pres, 1))
}

// LeftComplement returns the factor g such that g·f = Δ.
func (f Factor) LeftComplement() Factor {
	return Delta(f.pres, 1).Mul(f.Inverse())
}

// Flip returns Δ^-k · f · Δ^k.
func (f Factor) Flip(k int) Factor {
	n := len(f.perm)
	if k%2 == 0 && f.pres.Name() == PresArtin {
		return f
	}
	fwd := f.pres.DeltaTable(k)
	back := f.pres.DeltaTable(-k)
	flip := make([]int, n)
	for i := range flip {
		flip[i] = fwd[f.perm[back[i]]]
	}
	return Factor{f.pres, flip}
}

// Compare orders factors lexicographically by table.
func (f Factor) Compare(g Factor) int {
	f.checkIndex(g)
	for i, fi := range f.perm {
		if d := fi - g.perm[i]; d != 0 {
			return d
		}
	}
	return 0
}

func (f Factor) Equal(g Factor) bool {
	return f.Compare(g) == 0
}

// CompareWithIdentity returns true if f is the trivial factor.
func (f Factor) CompareWithIdentity() bool {
	for i, fi := range f.perm {
		if fi != i {
			return false
		}
	}
	return true
}

// CompareWithDelta returns true if f is Δ.
func (f Factor) CompareWithDelta() bool {
	delta := f.pres.DeltaTable(1)
	for i, fi := range f.perm {
		if fi != delta[i] {
			return false
		}
	}
	return true
}

// LeftMeet returns the greatest common prefix of f and g.
func (f Factor) LeftMeet(g Factor) Factor {
	f.checkIndex(g)
	return Factor{f.pres, f.pres.LeftMeet(f.perm, g.perm)}
}

// RightMeet returns the greatest common suffix of f and g.
func (f Factor) RightMeet(g Factor) Factor {
	f.checkIndex(g)
	return Factor{f.pres, f.pres.RightMeet(f.perm, g.perm)}
}

// LeftJoin returns the least simple element having both f and g as prefixes.
func (f Factor) LeftJoin(g Factor) Factor {
	c := f.Complement().RightMeet(g.Complement())
	return Delta(f.pres, 1).Mul(c.Inverse())
}

// RightJoin returns the least simple element having both f and g as suffixes.
func (f Factor) RightJoin(g Factor) Factor {
	return f.LeftComplement().LeftMeet(g.LeftComplement()).Complement()
}

// LeftDivides returns true if f is a prefix of g.
func (f Factor) LeftDivides(g Factor) bool {
	return f.LeftMeet(g).Equal(f)
}

// LeftQuotient returns f\g = !f·g, assuming f is a prefix of g.
func (f Factor) LeftQuotient(g Factor) Factor {
	return f.Inverse().Mul(g)
}

// Word returns f as a positive word of 1-based Artin generators.
func (f Factor) Word() []int {
	return f.pres.FactorWord(f.perm)
}

func (f Factor) WriteAsString(out io.Writer, opts garside.PrintOpts) {
	var buf [128]byte
	str := buf[:0]
	if opts.Tables {
		str = append(str, '[')
		for i, fi := range f.perm {
			if i > 0 {
				str = append(str, ' ')
			}
			str = strconv.AppendInt(str, int64(fi+1), 10)
		}
		str = append(str, ']')
	} else {
		str = appendWord(str, f.Word())
	}
	out.Write(str)
}

func (f Factor) String() string {
	var buf bytes.Buffer
	f.WriteAsString(&buf, garside.DefaultPrintOpts)
	return buf.String()
}

func appendWord(str []byte, word []int) []byte {
	if len(word) == 0 {
		return append(str, 'e')
	}
	for i, gi := range word {
		if i > 0 {
			str = append(str, ' ')
		}
		str = strconv.AppendInt(str, int64(gi), 10)
	}
	return str
}

func (f Factor) GoString() string {
	return fmt.Sprintf("Factor%v", f.perm)
}
