package garside

import (
	"fmt"
	"io"
)

const (

	// MaxIndex is the largest strand count accepted from text or script input.
	// Tables are sized from the actual index, so this only bounds untrusted input.
	MaxIndex = 64

	// ClassIDSz is the byte length of a marshalled ClassID.
	ClassIDSz = 8
)

// Presentation is the static description of the Garside structure of the braid group on n strands.
//
// Factor tables are 0-based start-to-end maps: table[i] is the end position of the strand that starts at position i.
// Under this convention the table of a product a·b is b∘a, i.e. (a*b)[i] == b[a[i]].
type Presentation interface {

	// Name returns "artin" or "band".
	Name() string

	// Index returns the strand count n.
	Index() int

	// DeltaTable returns a new table for Δ^k.
	DeltaTable(k int) []int

	// LeftMeet returns the greatest simple element left-dividing both a and b.
	LeftMeet(a, b []int) []int

	// RightMeet returns the greatest simple element right-dividing both a and b.
	RightMeet(a, b []int) []int

	// Atoms returns the tables of the atoms (indecomposable simple elements).
	Atoms() [][]int

	// CyclingBound is the length of Δ as a word in atoms.
	// SendToSSS gives up on improving inf/sup after this many consecutive non-improving steps.
	CyclingBound() int

	// FactorWord renders a simple element as a word in signed Artin generators (1-based).
	FactorWord(table []int) []int

	// BandTable returns the table of the band generator a(t,s) given 1-based t > s, or nil if the presentation has no such atom.
	BandTable(t, s int) []int
}

// ThurstonType is the Nielsen-Thurston classification of a braid.
type ThurstonType int32

const (
	Periodic     ThurstonType = 1
	Reducible    ThurstonType = 2
	PseudoAnosov ThurstonType = 3
)

func (tt ThurstonType) String() string {
	switch tt {
	case Periodic:
		return "periodic"
	case Reducible:
		return "reducible"
	case PseudoAnosov:
		return "pseudo-Anosov"
	}
	return "unknown"
}

// PrintOpts specifies how a braid is printed
type PrintOpts struct {
	Label  string // Prefix label
	Tables bool   // If set, factors are printed as permutation tables rather than words
	Word   bool   // If set, the full signed word of the braid is appended
}

// DefaultPrintOpts prints the canonical factors as Artin words.
var DefaultPrintOpts = PrintOpts{}

// Printable is implemented by values that can render themselves according to PrintOpts.
type Printable interface {
	WriteAsString(out io.Writer, opts PrintOpts)
}

// ClassID uniquely identifies a conjugacy class within a catalog.
// The most significant byte is the braid index and the lower bytes are a serial number.
type ClassID uint64

func FormClassID(index int, serial uint64) ClassID {
	return ClassID((uint64(index) << 56) | (serial & 0x00FFFFFFFFFFFFFF))
}

func (cid ClassID) Index() int {
	return int(byte(cid >> 56))
}

func (cid ClassID) Serial() uint64 {
	return 0x00FFFFFFFFFFFFFF & uint64(cid)
}

func (cid ClassID) Marshal(in []byte) []byte {
	return append(in,
		byte(cid>>56),
		byte(cid>>48),
		byte(cid>>40),
		byte(cid>>32),
		byte(cid>>24),
		byte(cid>>16),
		byte(cid>>8),
		byte(cid),
	)
}

func (cid *ClassID) Unmarshal(in []byte) error {
	if len(in) < ClassIDSz {
		*cid = 0
		return ErrUnmarshal
	}
	*cid = ClassID(
		(uint64(in[0]) << 56) |
			(uint64(in[1]) << 48) |
			(uint64(in[2]) << 40) |
			(uint64(in[3]) << 32) |
			(uint64(in[4]) << 24) |
			(uint64(in[5]) << 16) |
			(uint64(in[6]) << 8) |
			uint64(in[7]))
	return nil
}

func (cid ClassID) String() string {
	return fmt.Sprintf("B%d-%d", cid.Index(), cid.Serial())
}

// CatalogContext is a container for open / active Catalog instances.
type CatalogContext interface {

	// Attaches the given Catalog to this context.
	AttachCatalog(cat Catalog)

	// Detaches the given Catalog from this context.
	DetachCatalog(cat Catalog)

	// Closes all open catalogs to be closed then closes.
	Close()

	// Signals when Close() completed and all open Catalogs have been closed
	Done() <-chan struct{}
}

// CatalogOpts specifies params for opening a conjugacy class catalog
type CatalogOpts struct {
	DbPathName   string // omit for in-memory db
	ReadOnly     bool   // open in read-only mode
	Presentation string // "artin" (default) or "band"
	MaxSummit    int    // classes whose summit set exceeds this size are refused (0 means no limit)
}

// Catalog is a database of braid conjugacy classes.
//
// Each class is keyed by every element of its ultra summit set, so any braid can be looked up by sending it to its USS.
// Words cross this boundary as plain signed Artin generator sequences.
type Catalog interface {

	// TryAddClass adds the conjugacy class of the given word.
	// If the class was already present, its existing record is returned and added is false.
	TryAddClass(index int, word []int) (rec *ClassRecord, added bool, err error)

	// LookupClass returns the record of the class containing the given word or ErrClassNotFound.
	LookupClass(index int, word []int) (*ClassRecord, error)

	// NumClasses returns the number of classes catalogued for a given braid index.
	NumClasses(index int) int64

	// ForEachClass calls fn for each catalogued class until fn returns false.
	ForEachClass(fn func(rec *ClassRecord) bool) error

	// Returns true if this catalog was opened for read-only access.
	IsReadOnly() bool

	Close() error
}
