package cfb_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dargueta/cfb"
	"github.com/dargueta/cfb/cfbtest"
)

func TestOpenRejectsBadMagicNumber(t *testing.T) {
	store := cfbtest.NewMemoryStore(1 << 16)
	f, err := cfb.CreateWithVersion(store, cfb.V3)
	require.NoError(t, err)
	require.NoError(t, f.Flush())

	_, err = store.Seek(0, 0)
	require.NoError(t, err)
	_, err = store.Write([]byte{0, 0, 0, 0})
	require.NoError(t, err)

	_, err = cfb.Open(store)
	assert.Error(t, err)
}
