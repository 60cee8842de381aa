package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/2x3systems/gobraid/garside"
	"github.com/2x3systems/gobraid/libbraid"
	"github.com/stretchr/testify/require"
)

func TestCatalogInMemory(t *testing.T) {
	ctx := garside.NewCatalogContext()
	defer ctx.Close()

	cat, err := OpenCatalog(ctx, garside.CatalogOpts{})
	require.NoError(t, err)
	defer cat.Close()

	rec, added, err := cat.TryAddClass(3, []int{1})
	require.NoError(t, err)
	require.True(t, added)
	require.Equal(t, garside.FormClassID(3, 1), rec.ClassID())
	require.Equal(t, garside.Reducible, rec.ThurstonType())
	require.Equal(t, int32(2), rec.SummitSize)

	// σ2 is conjugate to σ1
	rec2, added, err := cat.TryAddClass(3, []int{2})
	require.NoError(t, err)
	require.False(t, added)
	require.Equal(t, rec.ID, rec2.ID)

	rec3, added, err := cat.TryAddClass(3, []int{1, -2})
	require.NoError(t, err)
	require.True(t, added)
	require.Equal(t, "B3-2", rec3.ClassID().String())
	require.Equal(t, garside.PseudoAnosov, rec3.ThurstonType())
	require.Equal(t, int64(2), cat.NumClasses(3))
	require.Equal(t, int64(0), cat.NumClasses(4))

	// the stored representative belongs to its own class
	found, err := cat.LookupClass(3, rec3.Representative())
	require.NoError(t, err)
	require.Equal(t, rec3.ID, found.ID)

	found, err = cat.LookupClass(3, []int{-1, -2, 1, 2, 1})
	require.NoError(t, err)
	require.Equal(t, rec.ID, found.ID)

	_, err = cat.LookupClass(3, []int{1, 1})
	require.ErrorIs(t, err, garside.ErrClassNotFound)

	_, _, err = cat.TryAddClass(3, []int{3})
	require.ErrorIs(t, err, garside.ErrBadGenerator)

	_, _, err = cat.TryAddClass(1, nil)
	require.ErrorIs(t, err, garside.ErrBadIndex)

	var ids []garside.ClassID
	require.NoError(t, cat.ForEachClass(func(rec *garside.ClassRecord) bool {
		ids = append(ids, rec.ClassID())
		return true
	}))
	require.Equal(t, []garside.ClassID{garside.FormClassID(3, 1), garside.FormClassID(3, 2)}, ids)
}

func TestCatalogMaxSummit(t *testing.T) {
	ctx := garside.NewCatalogContext()
	defer ctx.Close()

	cat, err := OpenCatalog(ctx, garside.CatalogOpts{MaxSummit: 1})
	require.NoError(t, err)
	defer cat.Close()

	_, _, err = cat.TryAddClass(3, []int{1})
	require.ErrorIs(t, err, garside.ErrSummitTooLarge)
	require.Equal(t, int64(0), cat.NumClasses(3))

	// Δ is alone in its USS
	_, added, err := cat.TryAddClass(3, []int{1, 2, 1})
	require.NoError(t, err)
	require.True(t, added)
}

func TestCatalogPersistence(t *testing.T) {
	dir, err := os.MkdirTemp("", "gobraid-catalog-")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	dbPath := filepath.Join(dir, "classes")

	ctx := garside.NewCatalogContext()

	cat, err := OpenCatalog(ctx, garside.CatalogOpts{DbPathName: dbPath, Presentation: libbraid.PresBand})
	require.NoError(t, err)
	_, added, err := cat.TryAddClass(4, []int{1, -2, 3})
	require.NoError(t, err)
	require.True(t, added)
	require.NoError(t, cat.Close())

	// the presentation is fixed when the catalog is created
	_, err = OpenCatalog(ctx, garside.CatalogOpts{DbPathName: dbPath, Presentation: libbraid.PresArtin})
	require.ErrorIs(t, err, garside.ErrBadCatalogParam)

	cat, err = OpenCatalog(ctx, garside.CatalogOpts{DbPathName: dbPath, Presentation: libbraid.PresBand, ReadOnly: true})
	require.NoError(t, err)
	require.True(t, cat.IsReadOnly())
	require.Equal(t, int64(1), cat.NumClasses(4))

	rec, err := cat.LookupClass(4, []int{3, 1, -2})
	require.NoError(t, err)
	require.Equal(t, garside.FormClassID(4, 1), rec.ClassID())
	require.Equal(t, libbraid.PresBand, rec.Presentation)

	_, _, err = cat.TryAddClass(4, []int{1})
	require.ErrorIs(t, err, garside.ErrReadOnly)

	// closing the context closes every catalog still attached
	ctx.Close()
	<-ctx.Done()
}

func TestCatalogParams(t *testing.T) {
	ctx := garside.NewCatalogContext()
	defer ctx.Close()

	_, err := OpenCatalog(ctx, garside.CatalogOpts{ReadOnly: true})
	require.ErrorIs(t, err, garside.ErrBadCatalogParam)

	_, err = OpenCatalog(ctx, garside.CatalogOpts{Presentation: "dual"})
	require.ErrorIs(t, err, garside.ErrBadCatalogParam)
}
