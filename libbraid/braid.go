package libbraid

import (
	"bytes"
	"encoding/binary"
	"io"
	"strconv"

	"github.com/2x3systems/gobraid/garside"
	"github.com/pkg/errors"
)

// Braid is Δ^LeftDelta · Factors[0] ··· Factors[m-1] · Δ^RightDelta.
//
// Raw products are valid values, but the normal form invariants (no trivial or Δ factors, adjacent factors weighted)
// only hold after MakeLCF or MakeRCF.
type Braid struct {
	Pres       garside.Presentation
	LeftDelta  int
	Factors    []Factor
	RightDelta int
}

// NewBraid returns the trivial braid.
func NewBraid(pres garside.Presentation) *Braid {
	return &Braid{Pres: pres}
}

// DeltaBraid returns Δ^k.
func DeltaBraid(pres garside.Presentation, k int) *Braid {
	return &Braid{Pres: pres, LeftDelta: k}
}

// FactorBraid returns the braid consisting of the single factor f.
func FactorBraid(f Factor) *Braid {
	B := &Braid{Pres: f.pres}
	switch {
	case f.CompareWithIdentity():
	case f.CompareWithDelta():
		B.LeftDelta = 1
	default:
		B.Factors = []Factor{f}
	}
	return B
}

// FromWord builds the braid of a signed Artin word (|gi| in [1, n-1]) in normal form.
func FromWord(pres garside.Presentation, word []int) (*Braid, error) {
	B := NewBraid(pres)
	for _, gi := range word {
		if err := B.appendGenerator(gi); err != nil {
			return nil, err
		}
	}
	B.MakeLCF()
	return B, nil
}

// MustFromWord is FromWord for words known to be valid.
func MustFromWord(pres garside.Presentation, word ...int) *Braid {
	B, err := FromWord(pres, word)
	if err != nil {
		panic(err)
	}
	return B
}

func (B *Braid) appendGenerator(gi int) error {
	n := B.Pres.Index()
	i := gi
	if i < 0 {
		i = -i
	}
	if i < 1 || i >= n {
		return errors.Wrapf(garside.ErrBadGenerator, "generator %d on %d strands", gi, n)
	}
	table := identityTable(n)
	table[i-1], table[i] = i, i-1
	sigma := Factor{B.Pres, table}
	if gi > 0 {
		B.RightMultiply(sigma)
	} else {
		B.rightMultiplyInverse(sigma)
	}
	return nil
}

// rightMultiplyInverse appends f^-1 = Δ^-1 · lc(f).
func (B *Braid) rightMultiplyInverse(f Factor) {
	B.RightDelta--
	B.RightMultiply(f.LeftComplement())
}

func (B *Braid) Index() int {
	return B.Pres.Index()
}

// CL returns the canonical length (the number of factors).
func (B *Braid) CL() int {
	return len(B.Factors)
}

// Inf returns the infimum (valid for a braid in LCF).
func (B *Braid) Inf() int {
	return B.LeftDelta
}

// Sup returns the supremum (valid for a braid in LCF).
func (B *Braid) Sup() int {
	return B.LeftDelta + len(B.Factors)
}

// Clone returns a copy of B whose factor list may be modified independently.
func (B *Braid) Clone() *Braid {
	C := *B
	C.Factors = append([]Factor(nil), B.Factors...)
	return &C
}

func (B *Braid) checkIndex(C *Braid) {
	if B.Pres.Index() != C.Pres.Index() {
		panic(errors.Wrapf(garside.ErrIndexMismatch, "%d vs %d", B.Pres.Index(), C.Pres.Index()))
	}
}

// LeftMultiply replaces B with f·B.
func (B *Braid) LeftMultiply(f Factor) {
	fx := f.Flip(B.LeftDelta)
	B.Factors = append([]Factor{fx}, B.Factors...)
}

// RightMultiply replaces B with B·f.
func (B *Braid) RightMultiply(f Factor) {
	B.Factors = append(B.Factors, f.Flip(-B.RightDelta))
}

// Mul returns the raw product A·B.
func Mul(A, B *Braid) *Braid {
	A.checkIndex(B)
	shift := A.RightDelta + B.LeftDelta
	prod := &Braid{
		Pres:       A.Pres,
		LeftDelta:  A.LeftDelta,
		Factors:    make([]Factor, 0, len(A.Factors)+len(B.Factors)),
		RightDelta: shift + B.RightDelta,
	}
	prod.Factors = append(prod.Factors, A.Factors...)
	for _, f := range B.Factors {
		prod.Factors = append(prod.Factors, f.Flip(-shift))
	}
	return prod
}

// Inverse returns the raw inverse of B.
func (B *Braid) Inverse() *Braid {
	k := len(B.Factors)
	inv := &Braid{
		Pres:       B.Pres,
		LeftDelta:  -B.RightDelta - k,
		Factors:    make([]Factor, k),
		RightDelta: -B.LeftDelta,
	}
	for i, f := range B.Factors {
		inv.Factors[k-1-i] = f.Complement().Flip(-(i + 1))
	}
	return inv
}

// Power returns B^k in LCF.
func (B *Braid) Power(k int) *Braid {
	base := B
	if k < 0 {
		base = B.Inverse()
		k = -k
	}
	P := NewBraid(B.Pres)
	for i := 0; i < k; i++ {
		P = Mul(P, base)
	}
	P.MakeLCF()
	return P
}

// Conjugate returns C^-1 · B · C in LCF.
func (B *Braid) Conjugate(C *Braid) *Braid {
	X := Mul(Mul(C.Inverse(), B), C)
	X.MakeLCF()
	return X
}

// ConjugateByFactor returns f^-1 · B · f in LCF.
func (B *Braid) ConjugateByFactor(f Factor) *Braid {
	X := B.Clone()
	X.LeftMultiply(f.LeftComplement())
	X.LeftDelta--
	X.RightMultiply(f)
	X.MakeLCF()
	return X
}

// LCF returns a copy of B in left canonical form.
func (B *Braid) LCF() *Braid {
	X := B.Clone()
	X.MakeLCF()
	return X
}

// RCF returns a copy of B in right canonical form.
func (B *Braid) RCF() *Braid {
	X := B.Clone()
	X.MakeRCF()
	return X
}

// IsIdentity returns true if B is structurally trivial.
func (B *Braid) IsIdentity() bool {
	return B.LeftDelta == 0 && B.RightDelta == 0 && len(B.Factors) == 0
}

// Compare structurally compares the raw (LeftDelta, Factors, RightDelta) triples.
func (B *Braid) Compare(C *Braid) int {
	B.checkIndex(C)
	if d := B.LeftDelta - C.LeftDelta; d != 0 {
		return d
	}
	if d := len(B.Factors) - len(C.Factors); d != 0 {
		return d
	}
	for i, f := range B.Factors {
		if d := f.Compare(C.Factors[i]); d != 0 {
			return d
		}
	}
	return B.RightDelta - C.RightDelta
}

// Equal compares raw triples and does not normalize; see SameElement.
func (B *Braid) Equal(C *Braid) bool {
	return B.Compare(C) == 0
}

// SameElement returns true if B and C represent the same group element.
func (B *Braid) SameElement(C *Braid) bool {
	return B.LCF().Equal(C.LCF())
}

// AppendKey appends a byte encoding of B such that equal keys imply structurally equal braids.
func (B *Braid) AppendKey(key []byte) []byte {
	key = binary.AppendUvarint(key, uint64(B.Pres.Index()))
	key = binary.AppendVarint(key, int64(B.LeftDelta))
	key = binary.AppendUvarint(key, uint64(len(B.Factors)))
	for _, f := range B.Factors {
		for _, fi := range f.perm {
			key = binary.AppendUvarint(key, uint64(fi))
		}
	}
	key = binary.AppendVarint(key, int64(B.RightDelta))
	return key
}

// Key returns B's key as a string, suitable for ordered indexes.
func (B *Braid) Key() string {
	var buf [64]byte
	return string(B.AppendKey(buf[:0]))
}

// Word returns B as a signed Artin word, Δ powers included.
func (B *Braid) Word() []int {
	deltaWord := Delta(B.Pres, 1).Word()
	var word []int
	word = appendDeltaWord(word, deltaWord, B.LeftDelta)
	for _, f := range B.Factors {
		word = append(word, f.Word()...)
	}
	word = appendDeltaWord(word, deltaWord, B.RightDelta)
	return word
}

func appendDeltaWord(word, deltaWord []int, k int) []int {
	for ; k > 0; k-- {
		word = append(word, deltaWord...)
	}
	for ; k < 0; k++ {
		for i := len(deltaWord) - 1; i >= 0; i-- {
			word = append(word, -deltaWord[i])
		}
	}
	return word
}

func (B *Braid) WriteAsString(out io.Writer, opts garside.PrintOpts) {
	var buf [256]byte
	str := buf[:0]
	if opts.Label != "" {
		str = append(str, opts.Label...)
		str = append(str, ' ')
	}
	str = append(str, "Δ^"...)
	str = strconv.AppendInt(str, int64(B.LeftDelta), 10)
	for _, f := range B.Factors {
		str = append(str, " . "...)
		out.Write(str)
		str = str[:0]
		f.WriteAsString(out, opts)
	}
	str = append(str, " . Δ^"...)
	str = strconv.AppendInt(str, int64(B.RightDelta), 10)
	if opts.Word {
		str = append(str, "  ["...)
		str = appendWord(str, B.Word())
		str = append(str, ']')
	}
	out.Write(str)
}

func (B *Braid) String() string {
	var buf bytes.Buffer
	B.WriteAsString(&buf, garside.DefaultPrintOpts)
	return buf.String()
}

// Words converts braids to signed Artin words.
func Words(braids []*Braid) [][]int {
	words := make([][]int, len(braids))
	for i, Bi := range braids {
		words[i] = Bi.Word()
	}
	return words
}
