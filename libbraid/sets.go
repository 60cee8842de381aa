package libbraid

import (
	"github.com/dgraph-io/badger/v3"
	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/emirpasic/gods/utils"
)

// BraidSet allows adding braids and returning if a structurally equal braid has already been added.
type BraidSet interface {

	// TryAdd adds the given braid if it is not already present.
	//
	// If an equal braid is already in this BraidSet, this call has no effect and TryAdd() returns false.
	// If B isn't in this set, B is added and TryAdd() returns true.
	//
	// After one or more calls to TryAdd(), call Close() for cleanup.
	TryAdd(B *Braid) bool

	// Len returns the number of braids added.
	Len() int

	// Close removes all previously added items from this set.
	Close()
}

// NewBraidSet returns an ordered in-memory set.
func NewBraidSet() BraidSet {
	return &treeSet{
		tree: redblacktree.NewWith(utils.StringComparator),
	}
}

// NewLSMBraidSet returns a set backed by an in-memory LSM tree, better suited to very large summit sets.
func NewLSMBraidSet() BraidSet {
	return &lsmSet{}
}

type treeSet struct {
	tree *redblacktree.Tree
}

func (set *treeSet) TryAdd(B *Braid) bool {
	key := B.Key()
	if _, exists := set.tree.Get(key); exists {
		return false
	}
	set.tree.Put(key, nil)
	return true
}

func (set *treeSet) Len() int {
	return set.tree.Size()
}

func (set *treeSet) Close() {
	set.tree.Clear()
}

type lsmSet struct {
	db    *badger.DB
	count int
}

func (set *lsmSet) autoOpen() {
	if set.db == nil {
		dbOpts := badger.DefaultOptions("").WithInMemory(true)
		dbOpts.Logger = nil
		dbOpts.MetricsEnabled = false

		var err error
		set.db, err = badger.Open(dbOpts)
		if err != nil {
			panic(err)
		}
	}
}

func (set *lsmSet) TryAdd(B *Braid) bool {
	var buf [64]byte
	return set.tryAdd(B.AppendKey(buf[:0]))
}

func (set *lsmSet) tryAdd(key []byte) bool {
	set.autoOpen()

	txn := set.db.NewTransaction(true)
	defer txn.Commit()

	added := false
	_, err := txn.Get(key)
	if err == nil {
		// no-op since the key is already in the db
	} else if err == badger.ErrKeyNotFound {
		err = txn.Set(key, nil)
		added = true
		set.count++
	}

	if err != nil {
		panic(err)
	}

	return added
}

func (set *lsmSet) Len() int {
	return set.count
}

func (set *lsmSet) Close() {
	if set.db != nil {
		set.db.Close()
		set.db = nil
		set.count = 0
	}
}

// orbitPos locates a braid within a list of orbits.
type orbitPos struct {
	orbit int
	pos   int
}

// orbitIndex maps braid keys to their position in a summit set search.
type orbitIndex struct {
	tree *redblacktree.Tree
}

func newOrbitIndex() orbitIndex {
	return orbitIndex{
		tree: redblacktree.NewWith(utils.StringComparator),
	}
}

func (idx orbitIndex) put(B *Braid, at orbitPos) {
	idx.tree.Put(B.Key(), at)
}

func (idx orbitIndex) lookup(B *Braid) (orbitPos, bool) {
	val, exists := idx.tree.Get(B.Key())
	if !exists {
		return orbitPos{}, false
	}
	return val.(orbitPos), true
}

func (idx orbitIndex) size() int {
	return idx.tree.Size()
}
