package cfb_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dargueta/cfb"
	"github.com/dargueta/cfb/cfbtest"
	cfberr "github.com/dargueta/cfb/errors"
)

func TestCreateThenOpenRoundTrip(t *testing.T) {
	store := cfbtest.NewMemoryStore(1 << 16)

	f, err := cfb.CreateWithVersion(store, cfb.V3)
	require.NoError(t, err)
	require.NoError(t, f.Flush())

	reopened, err := cfb.Open(store)
	require.NoError(t, err)
	assert.Equal(t, cfb.V3, reopened.Version())

	root, err := reopened.Entry("/")
	require.NoError(t, err)
	assert.True(t, root.IsRoot())
	assert.True(t, root.IsStorage())
	assert.EqualValues(t, 0, root.Len())
}

func TestReadStorageOnEmptyRootIsEmpty(t *testing.T) {
	store := cfbtest.NewMemoryStore(1 << 16)
	f, err := cfb.Create(store)
	require.NoError(t, err)

	it, err := f.ReadStorage("/")
	require.NoError(t, err)

	_, ok := it.Next()
	assert.False(t, ok, "freshly created compound file should have no children")
}

func TestEntryNotFound(t *testing.T) {
	store := cfbtest.NewMemoryStore(1 << 16)
	f, err := cfb.Create(store)
	require.NoError(t, err)

	_, err = f.Entry("/DoesNotExist")
	assert.ErrorIs(t, err, cfberr.ErrNotFound)
}
