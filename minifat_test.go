package cfb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dargueta/cfb/cfbtest"
)

func TestAllocateMiniSectorGrowsMiniStream(t *testing.T) {
	store := cfbtest.NewMemoryStore(1 << 16)
	f, err := CreateWithVersion(store, V3)
	require.NoError(t, err)

	before := f.rootEntry().streamLen
	sector, err := f.allocateMiniSector(endOfChain)
	require.NoError(t, err)
	assert.EqualValues(t, 0, sector)
	assert.Equal(t, before+miniSectorLen, f.rootEntry().streamLen)
}

func TestExtendMiniChainAppendsAtTail(t *testing.T) {
	store := cfbtest.NewMemoryStore(1 << 16)
	f, err := CreateWithVersion(store, V3)
	require.NoError(t, err)

	first, err := f.allocateMiniSector(endOfChain)
	require.NoError(t, err)

	second, err := f.extendMiniChain(first)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
	assert.Equal(t, second, f.minifat[first])
	assert.Equal(t, endOfChain, f.minifat[second])
}
