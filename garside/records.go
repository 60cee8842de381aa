package garside

import (
	"github.com/gogo/protobuf/proto"
)

// CatalogState is the header record of a catalog db.
type CatalogState struct {
	MajorVers    int32    `protobuf:"varint,1,opt,name=major_vers,json=majorVers,proto3" json:"major_vers,omitempty"`
	MinorVers    int32    `protobuf:"varint,2,opt,name=minor_vers,json=minorVers,proto3" json:"minor_vers,omitempty"`
	Presentation string   `protobuf:"bytes,3,opt,name=presentation,proto3" json:"presentation,omitempty"`
	NumClasses   []uint64 `protobuf:"varint,4,rep,packed,name=num_classes,json=numClasses,proto3" json:"num_classes,omitempty"`
}

func (m *CatalogState) Reset()         { *m = CatalogState{} }
func (m *CatalogState) String() string { return proto.CompactTextString(m) }
func (*CatalogState) ProtoMessage()    {}

// ClassRecord describes one catalogued conjugacy class.
type ClassRecord struct {
	ID              uint64  `protobuf:"varint,1,opt,name=id,proto3" json:"id,omitempty"`
	Index           int32   `protobuf:"varint,2,opt,name=index,proto3" json:"index,omitempty"`
	Presentation    string  `protobuf:"bytes,3,opt,name=presentation,proto3" json:"presentation,omitempty"`
	Inf             int32   `protobuf:"zigzag32,4,opt,name=inf,proto3" json:"inf,omitempty"`
	CanonicalLength int32   `protobuf:"varint,5,opt,name=canonical_length,json=canonicalLength,proto3" json:"canonical_length,omitempty"`
	Type            int32   `protobuf:"varint,6,opt,name=type,proto3" json:"type,omitempty"`
	OrbitCount      int32   `protobuf:"varint,7,opt,name=orbit_count,json=orbitCount,proto3" json:"orbit_count,omitempty"`
	SummitSize      int32   `protobuf:"varint,8,opt,name=summit_size,json=summitSize,proto3" json:"summit_size,omitempty"`
	Rigidity        int32   `protobuf:"varint,9,opt,name=rigidity,proto3" json:"rigidity,omitempty"`
	Word            []int32 `protobuf:"zigzag32,10,rep,packed,name=word,proto3" json:"word,omitempty"`
}

func (m *ClassRecord) Reset()         { *m = ClassRecord{} }
func (m *ClassRecord) String() string { return proto.CompactTextString(m) }
func (*ClassRecord) ProtoMessage()    {}

// ClassID returns the record's ID as a ClassID.
func (m *ClassRecord) ClassID() ClassID {
	return ClassID(m.ID)
}

// ThurstonType returns the record's classification.
func (m *ClassRecord) ThurstonType() ThurstonType {
	return ThurstonType(m.Type)
}

// Representative returns the record's representative word as plain ints.
func (m *ClassRecord) Representative() []int {
	word := make([]int, len(m.Word))
	for i, gi := range m.Word {
		word[i] = int(gi)
	}
	return word
}
