package catalog

import (
	"runtime"
	"sync"

	"github.com/2x3systems/gobraid/garside"
	"github.com/2x3systems/gobraid/libbraid"
	"github.com/dgraph-io/badger/v3"
	"github.com/gogo/protobuf/proto"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

/***

Catalog database format:

	gCatalogStateKey                   => CatalogState

	kClassPrefix, ClassID              => ClassRecord
	...

	kSummitPrefix, Braid.AppendKey()   => ClassID
	...

Every element of a class's ultra summit set is keyed to the class, so a braid is looked up by
sending it to any USS element and checking that key.  A class is added in full or not at all.

***/

var (
	gCatalogStateKey = []byte{0x00, 0x00, 0x01}
)

const (
	kClassPrefix  = byte(0x01)
	kSummitPrefix = byte(0x02)

	kMajorVers = 2024
	kMinorVers = 1
)

// catalog is a db wrapper for a braid conjugacy class catalog
type catalog struct {
	ctx        garside.CatalogContext
	mu         sync.Mutex
	readOnly   bool
	maxSummit  int
	stateDirty bool
	state      garside.CatalogState
	db         *badger.DB
}

// OpenCatalog opens (or creates) the catalog at opts.DbPathName and attaches it to ctx.
func OpenCatalog(ctx garside.CatalogContext, opts garside.CatalogOpts) (garside.Catalog, error) {
	if opts.Presentation == "" {
		opts.Presentation = libbraid.PresArtin
	}
	if _, err := libbraid.NewPresentation(opts.Presentation, 2); err != nil {
		return nil, errors.Wrap(garside.ErrBadCatalogParam, err.Error())
	}
	if opts.MaxSummit < 0 {
		return nil, errors.Wrap(garside.ErrBadCatalogParam, "MaxSummit must be >= 0")
	}

	cat := &catalog{
		ctx:       ctx,
		readOnly:  opts.ReadOnly,
		maxSummit: opts.MaxSummit,
	}

	dbOpts := badger.DefaultOptions(opts.DbPathName)
	dbOpts.ReadOnly = opts.ReadOnly
	dbOpts.DetectConflicts = false // writes are serialized by cat.mu
	dbOpts.Logger = nil
	dbOpts.MetricsEnabled = false

	// Badger for windows currently does not support read-only mode
	if runtime.GOOS == "windows" {
		dbOpts.ReadOnly = false
	}

	if len(opts.DbPathName) == 0 {
		if opts.ReadOnly {
			return nil, errors.Wrap(garside.ErrBadCatalogParam, "DbPathName must be specified for read-only catalog")
		}
		dbOpts.InMemory = true
	}

	var err error
	cat.db, err = badger.Open(dbOpts)
	if err != nil {
		return nil, err
	}

	// Once the db is open, the catalog ctx is blocked until the catalog closes
	ctx.AttachCatalog(cat)

	err = cat.loadState()
	if err == badger.ErrKeyNotFound {
		err = nil
		cat.stateDirty = !cat.readOnly
		cat.state.MajorVers = kMajorVers
		cat.state.MinorVers = kMinorVers
		cat.state.Presentation = opts.Presentation
		cat.state.NumClasses = make([]uint64, garside.MaxIndex+1)
	}

	if err == nil {
		if cat.state.MajorVers != kMajorVers || cat.state.MinorVers != kMinorVers {
			err = errors.Wrapf(garside.ErrCatalogVersion, "found v%d.%d", cat.state.MajorVers, cat.state.MinorVers)
		} else if cat.state.Presentation != opts.Presentation {
			err = errors.Wrapf(garside.ErrBadCatalogParam, "catalog uses the %s presentation", cat.state.Presentation)
		}
	}

	if err != nil {
		cat.Close()
		return nil, err
	}

	for len(cat.state.NumClasses) <= garside.MaxIndex {
		cat.state.NumClasses = append(cat.state.NumClasses, 0)
	}

	klog.V(2).Infof("opened %s catalog %q (read-only=%v)", cat.state.Presentation, opts.DbPathName, cat.readOnly)
	return cat, nil
}

func (cat *catalog) loadState() error {
	return cat.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gCatalogStateKey)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return proto.Unmarshal(val, &cat.state)
		})
	})
}

func (cat *catalog) flushState() {
	if cat.stateDirty {
		err := cat.db.Update(func(txn *badger.Txn) error {
			stateBuf, err := proto.Marshal(&cat.state)
			if err != nil {
				return err
			}
			return txn.Set(gCatalogStateKey, stateBuf)
		})
		if err != nil {
			panic(err)
		}
		cat.stateDirty = false
	}
}

func (cat *catalog) Close() error {
	cat.mu.Lock()
	defer cat.mu.Unlock()

	if cat.db != nil {
		cat.flushState()
		cat.db.Close()
		cat.db = nil
		cat.ctx.DetachCatalog(cat)
	}
	return nil
}

func (cat *catalog) IsReadOnly() bool {
	return cat.readOnly
}

func (cat *catalog) NumClasses(index int) int64 {
	if index <= 0 || index >= len(cat.state.NumClasses) {
		return 0
	}
	return int64(cat.state.NumClasses[index])
}

func (cat *catalog) issueNextClassID(index int) garside.ClassID {
	serial := cat.state.NumClasses[index] + 1
	cat.state.NumClasses[index] = serial
	cat.stateDirty = true

	return garside.FormClassID(index, serial)
}

func (cat *catalog) braidFromWord(index int, word []int) (*libbraid.Braid, error) {
	if index < 2 || index > garside.MaxIndex {
		return nil, errors.Wrapf(garside.ErrBadIndex, "index %d", index)
	}
	pres, err := libbraid.NewPresentation(cat.state.Presentation, index)
	if err != nil {
		return nil, err
	}
	return libbraid.FromWord(pres, word)
}

func formClassKey(key []byte, cid garside.ClassID) []byte {
	key = append(key, kClassPrefix)
	return cid.Marshal(key)
}

func formSummitKey(key []byte, B *libbraid.Braid) []byte {
	key = append(key, kSummitPrefix)
	return B.AppendKey(key)
}

// lookup returns the record of the class keyed by the USS element U.
func (cat *catalog) lookup(txn *badger.Txn, U *libbraid.Braid) (*garside.ClassRecord, error) {
	item, err := txn.Get(formSummitKey(nil, U))
	if err == badger.ErrKeyNotFound {
		return nil, garside.ErrClassNotFound
	}
	if err != nil {
		return nil, err
	}

	var cid garside.ClassID
	err = item.Value(func(val []byte) error {
		return cid.Unmarshal(val)
	})
	if err != nil {
		return nil, err
	}

	item, err = txn.Get(formClassKey(nil, cid))
	if err != nil {
		return nil, errors.Wrapf(garside.ErrIntegrity, "class %v has summit keys but no record", cid)
	}

	rec := &garside.ClassRecord{}
	err = item.Value(func(val []byte) error {
		return proto.Unmarshal(val, rec)
	})
	if err != nil {
		return nil, errors.Wrap(garside.ErrUnmarshal, err.Error())
	}
	return rec, nil
}

func (cat *catalog) LookupClass(index int, word []int) (*garside.ClassRecord, error) {
	B, err := cat.braidFromWord(index, word)
	if err != nil {
		return nil, err
	}
	U := libbraid.SendToUSS(B)

	cat.mu.Lock()
	defer cat.mu.Unlock()
	if cat.db == nil {
		return nil, garside.ErrClassNotFound
	}

	txn := cat.db.NewTransaction(false)
	defer txn.Discard()
	return cat.lookup(txn, U)
}

func (cat *catalog) TryAddClass(index int, word []int) (*garside.ClassRecord, bool, error) {
	B, err := cat.braidFromWord(index, word)
	if err != nil {
		return nil, false, err
	}
	U := libbraid.SendToUSS(B)

	cat.mu.Lock()
	defer cat.mu.Unlock()
	if cat.db == nil {
		return nil, false, errors.Wrap(garside.ErrBadCatalogParam, "catalog is closed")
	}

	{
		txn := cat.db.NewTransaction(false)
		rec, err := cat.lookup(txn, U)
		txn.Discard()
		if err != garside.ErrClassNotFound {
			return rec, false, err
		}
	}

	if cat.readOnly {
		return nil, false, garside.ErrReadOnly
	}

	info := libbraid.Describe(U, libbraid.ClassifyOpts{})
	if cat.maxSummit > 0 && info.USSSize > cat.maxSummit {
		return nil, false, errors.Wrapf(garside.ErrSummitTooLarge, "USS has %d elements", info.USSSize)
	}

	cid := cat.issueNextClassID(index)
	rec := info.ClassRecord()
	rec.ID = uint64(cid)

	recBuf, err := proto.Marshal(rec)
	if err != nil {
		return nil, false, err
	}
	var cidBuf [garside.ClassIDSz]byte
	cid.Marshal(cidBuf[:0])

	// A large USS can exceed a single txn, so write through a batch
	wb := cat.db.NewWriteBatch()
	defer wb.Cancel()

	var key []byte
	for _, Y := range info.USS.Elements() {
		key = formSummitKey(key[:0], Y)
		if err = wb.Set(append([]byte(nil), key...), cidBuf[:]); err != nil {
			return nil, false, err
		}
	}
	if err = wb.Set(formClassKey(nil, cid), recBuf); err != nil {
		return nil, false, err
	}
	if err = wb.Flush(); err != nil {
		return nil, false, err
	}
	cat.flushState()

	klog.V(2).Infof("added class %v: %d summit keys", cid, info.USSSize)
	return rec, true, nil
}

func (cat *catalog) ForEachClass(fn func(rec *garside.ClassRecord) bool) error {
	cat.mu.Lock()
	defer cat.mu.Unlock()
	if cat.db == nil {
		return nil
	}

	txn := cat.db.NewTransaction(false)
	defer txn.Discard()

	it := txn.NewIterator(badger.IteratorOptions{
		PrefetchValues: true,
		PrefetchSize:   100,
		Prefix:         []byte{kClassPrefix},
	})
	defer it.Close()

	for it.Rewind(); it.Valid(); it.Next() {
		rec := &garside.ClassRecord{}
		err := it.Item().Value(func(val []byte) error {
			return proto.Unmarshal(val, rec)
		})
		if err != nil {
			return errors.Wrap(garside.ErrUnmarshal, err.Error())
		}
		if !fn(rec) {
			break
		}
	}
	return nil
}
