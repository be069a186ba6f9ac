package cfb_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dargueta/cfb"
)

func TestVersionSectorLen(t *testing.T) {
	assert.Equal(t, 512, cfb.V3.SectorLen())
	assert.Equal(t, 4096, cfb.V4.SectorLen())
}

func TestVersionStreamLenMask(t *testing.T) {
	assert.Equal(t, uint64(0xFFFFFFFF), cfb.V3.StreamLenMask())
	assert.Equal(t, uint64(0xFFFFFFFFFFFFFFFF), cfb.V4.StreamLenMask())
}

func TestVersionNumber(t *testing.T) {
	assert.EqualValues(t, 3, cfb.V3.Number())
	assert.EqualValues(t, 4, cfb.V4.Number())
}
