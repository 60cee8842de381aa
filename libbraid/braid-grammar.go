package libbraid

import (
	"github.com/2x3systems/gobraid/garside"
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
)

// WordExpr is a braid word in text form, e.g. "[1, 2, -1]", "D^-1 1 2" or "a(3,1) a(2,1)^-1".
type WordExpr struct {
	Open  bool    `@"["?`
	Terms []*Term `( @@ ","? )*`
	Close bool    `@"]"?`
}

type Term struct {
	Delta *DeltaTerm `  @@`
	Band  *BandTerm  `| @@`
	Gen   *int       `| @Int`
}

type DeltaTerm struct {
	Sym string `@Delta`
	Pow *int   `( "^" @Int )?`
}

type BandTerm struct {
	T   int  `Band "(" @Int ","`
	S   int  `@Int ")"`
	Pow *int `( "^" @Int )?`
}

var sBraidLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Delta", Pattern: `D|Δ`},
	{Name: "Band", Pattern: `a`},
	{Name: "Int", Pattern: `[-+]?\d+`},
	{Name: "Punct", Pattern: `[\[\](),^]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var sWordParser = participle.MustBuild[WordExpr](
	participle.Lexer(sBraidLexer),
	participle.Elide("Whitespace"),
)

// ParseWordExpr parses a braid word expression.
func ParseWordExpr(text string) (*WordExpr, error) {
	expr, err := sWordParser.ParseString("", text)
	if err != nil {
		return nil, errors.Wrap(garside.ErrBadWordExpr, err.Error())
	}
	return expr, nil
}

// ParseBraid parses a braid word expression into a braid in LCF.
func ParseBraid(pres garside.Presentation, text string) (*Braid, error) {
	expr, err := ParseWordExpr(text)
	if err != nil {
		return nil, err
	}
	return expr.Braid(pres)
}

// ParseWord parses a braid word expression into a signed Artin word.
// D denotes the Garside element of pres, so the word names the same braid ParseBraid returns.
func ParseWord(pres garside.Presentation, text string) ([]int, error) {
	expr, err := ParseWordExpr(text)
	if err != nil {
		return nil, err
	}
	return expr.ArtinWord(pres)
}

// Braid multiplies out the expression's terms.
func (expr *WordExpr) Braid(pres garside.Presentation) (*Braid, error) {
	n := pres.Index()
	B := NewBraid(pres)
	for _, term := range expr.Terms {
		switch {
		case term.Delta != nil:
			B.RightDelta += term.Delta.pow()
		case term.Band != nil:
			bt := term.Band
			if err := bt.check(n); err != nil {
				return nil, err
			}
			table := pres.BandTable(bt.T, bt.S)
			if table == nil {
				for _, gi := range bt.appendWord(nil) {
					B.appendGenerator(gi)
				}
				continue
			}
			atom := Factor{pres, table}
			pow := bt.pow()
			for ; pow > 0; pow-- {
				B.RightMultiply(atom)
			}
			for ; pow < 0; pow++ {
				B.rightMultiplyInverse(atom)
			}
		case term.Gen != nil:
			if err := B.appendGenerator(*term.Gen); err != nil {
				return nil, err
			}
		}
	}
	B.MakeLCF()
	return B, nil
}

// ArtinWord expands the expression into a signed Artin word, expanding D as the Garside element of pres.
func (expr *WordExpr) ArtinWord(pres garside.Presentation) ([]int, error) {
	var word []int
	n := pres.Index()
	deltaWord := pres.FactorWord(pres.DeltaTable(1))
	for _, term := range expr.Terms {
		switch {
		case term.Delta != nil:
			word = appendDeltaWord(word, deltaWord, term.Delta.pow())
		case term.Band != nil:
			if err := term.Band.check(n); err != nil {
				return nil, err
			}
			word = term.Band.appendWord(word)
		case term.Gen != nil:
			gi := *term.Gen
			if gi == 0 || gi >= n || gi <= -n {
				return nil, errors.Wrapf(garside.ErrBadGenerator, "generator %d on %d strands", gi, n)
			}
			word = append(word, gi)
		}
	}
	return word, nil
}

func (dt *DeltaTerm) pow() int {
	if dt.Pow == nil {
		return 1
	}
	return *dt.Pow
}

func (bt *BandTerm) pow() int {
	if bt.Pow == nil {
		return 1
	}
	return *bt.Pow
}

func (bt *BandTerm) check(n int) error {
	if bt.S < 1 || bt.T <= bt.S || bt.T > n {
		return errors.Wrapf(garside.ErrBadBandGenerator, "a(%d,%d) on %d strands", bt.T, bt.S, n)
	}
	return nil
}

func (bt *BandTerm) appendWord(word []int) []int {
	pow := bt.pow()
	for ; pow > 0; pow-- {
		word = AppendBandWord(word, bt.T, bt.S, 1)
	}
	for ; pow < 0; pow++ {
		word = AppendBandWord(word, bt.T, bt.S, -1)
	}
	return word
}
