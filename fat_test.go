package cfb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dargueta/cfb/cfbtest"
)

func TestAllocateSectorReusesFreedSlot(t *testing.T) {
	store := cfbtest.NewMemoryStore(1 << 16)
	f, err := CreateWithVersion(store, V3)
	require.NoError(t, err)

	a, err := f.allocateSector(endOfChain)
	require.NoError(t, err)
	require.NoError(t, f.setFAT(a, freeSector))

	b, err := f.allocateSector(endOfChain)
	require.NoError(t, err)
	assert.Equal(t, a, b, "freed slot should be reused before growing the FAT")
}

func TestAppendFATSectorFailsPastDIFATLimit(t *testing.T) {
	store := cfbtest.NewMemoryStore(1 << 20)
	f, err := CreateWithVersion(store, V3)
	require.NoError(t, err)

	for n := numDIFATEntriesInHead - len(f.difat); n > 0; n-- {
		require.NoError(t, f.appendFATSector())
	}

	err = f.appendFATSector()
	assert.Error(t, err)
}

func TestExtendChainAppendsAtTail(t *testing.T) {
	store := cfbtest.NewMemoryStore(1 << 16)
	f, err := CreateWithVersion(store, V3)
	require.NoError(t, err)

	first, err := f.allocateSector(endOfChain)
	require.NoError(t, err)

	second, err := f.extendChain(first)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
	assert.Equal(t, second, f.fat[first])
	assert.Equal(t, endOfChain, f.fat[second])
}
