package libbraid

import (
	"sort"

	"github.com/2x3systems/gobraid/garside"
)

// ClassInfo summarizes the conjugacy class of a braid.
type ClassInfo struct {
	Rep        *Braid               // least element of the USS by key
	Inf        int                  // infimum within the summit sets
	CL         int                  // canonical length within the summit sets
	Type       garside.ThurstonType // Nielsen-Thurston type
	OrbitCount int                  // number of cycling orbits in the USS
	USSSize    int                  // number of braids in the USS
	Rigidity   int                  // rigidity of Rep
	USS        *SummitSet           // the USS itself
	Keys       []string             // sorted keys of every USS element
}

// Describe computes the ultra summit set of B and the invariants derived from it.
func Describe(B *Braid, opts ClassifyOpts) *ClassInfo {
	uss := USS(B)
	elems := uss.Elements()

	keys := make([]string, len(elems))
	rep := elems[0]
	for i, Y := range elems {
		keys[i] = Y.Key()
		if keys[i] < rep.Key() {
			rep = Y
		}
	}
	sort.Strings(keys)

	return &ClassInfo{
		Rep:        rep,
		Inf:        rep.Inf(),
		CL:         rep.CL(),
		Type:       ThurstonTypeWithOpts(B, opts),
		OrbitCount: len(uss.Orbits),
		USSSize:    len(elems),
		Rigidity:   Rigidity(rep),
		USS:        uss,
		Keys:       keys,
	}
}

// ClassRecord returns the catalog record of this class.
func (info *ClassInfo) ClassRecord() *garside.ClassRecord {
	word := info.Rep.Word()
	rec := &garside.ClassRecord{
		Index:           int32(info.Rep.Index()),
		Presentation:    info.Rep.Pres.Name(),
		Inf:             int32(info.Inf),
		CanonicalLength: int32(info.CL),
		Type:            int32(info.Type),
		OrbitCount:      int32(info.OrbitCount),
		SummitSize:      int32(info.USSSize),
		Rigidity:        int32(info.Rigidity),
		Word:            make([]int32, len(word)),
	}
	for i, gi := range word {
		rec.Word[i] = int32(gi)
	}
	return rec
}
