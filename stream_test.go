package cfb

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dargueta/cfb/cfbtest"
	cfberr "github.com/dargueta/cfb/errors"
)

// addStreamChild inserts a stream named name as a child of the root
// entry, using directory slot index (which must already exist as an
// unallocated entry from Create).
func addStreamChild(t *testing.T, f *File, index uint32, name string) {
	t.Helper()
	entry := dirEntry{
		name:         name,
		objType:      objTypeStream,
		color:        colorBlack,
		leftSibling:  noStream,
		rightSibling: noStream,
		child:        noStream,
		startSector:  endOfChain,
		streamLen:    0,
	}
	require.NoError(t, f.seekWithinDirEntry(index, 0))
	require.NoError(t, entry.write(f.store))
	f.directory[index] = entry
	f.rootEntry().child = index
}

func TestStreamWriteThenReadWithinMiniStream(t *testing.T) {
	store := cfbtest.NewMemoryStore(1 << 16)
	f, err := CreateWithVersion(store, V3)
	require.NoError(t, err)
	addStreamChild(t, f, 1, "Data")

	stream, err := f.OpenStream("/Data")
	require.NoError(t, err)

	payload := []byte("hello, compound file")
	n, err := stream.Write(payload)
	require.NoError(t, err)
	assert.Equal(t, len(payload), n)
	require.NoError(t, stream.Close())

	stream2, err := f.OpenStream("/Data")
	require.NoError(t, err)
	defer stream2.Close()

	got := make([]byte, len(payload))
	_, err = io.ReadFull(stream2, got)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
	assert.EqualValues(t, len(payload), stream2.Len())
}

func TestStreamWriteSpanningMultipleMiniSectors(t *testing.T) {
	store := cfbtest.NewMemoryStore(1 << 16)
	f, err := CreateWithVersion(store, V3)
	require.NoError(t, err)
	addStreamChild(t, f, 1, "Data")

	stream, err := f.OpenStream("/Data")
	require.NoError(t, err)

	payload := bytes.Repeat([]byte("0123456789abcdef"), 20) // 320 bytes, 5 mini-sectors
	_, err = stream.Write(payload)
	require.NoError(t, err)
	require.NoError(t, stream.Close())

	stream2, err := f.OpenStream("/Data")
	require.NoError(t, err)
	defer stream2.Close()

	got := make([]byte, len(payload))
	_, err = io.ReadFull(stream2, got)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestStreamWriteCrossingMiniStreamCutoffFails(t *testing.T) {
	store := cfbtest.NewMemoryStore(1 << 16)
	f, err := CreateWithVersion(store, V3)
	require.NoError(t, err)
	addStreamChild(t, f, 1, "Data")

	stream, err := f.OpenStream("/Data")
	require.NoError(t, err)

	payload := make([]byte, miniStreamCutoff+10)
	_, err = stream.Write(payload)
	assert.ErrorIs(t, err, cfberr.ErrUnsupported)
}

func TestOnlyOneStreamOpenAtATime(t *testing.T) {
	store := cfbtest.NewMemoryStore(1 << 16)
	f, err := CreateWithVersion(store, V3)
	require.NoError(t, err)
	addStreamChild(t, f, 1, "Data")

	stream, err := f.OpenStream("/Data")
	require.NoError(t, err)
	defer stream.Close()

	_, err = f.OpenStream("/Data")
	assert.Error(t, err)
}
