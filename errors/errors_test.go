package cfberr_test

import (
	"errors"
	"testing"

	cfberr "github.com/dargueta/cfb/errors"
	"github.com/stretchr/testify/assert"
)

func TestKindWithMessage(t *testing.T) {
	err := cfberr.ErrNotFound.WithMessage("/Missing")
	assert.Equal(t, "cfb: not found: /Missing", err.Error())
	assert.ErrorIs(t, err, cfberr.ErrNotFound)
}

func TestKindWrap(t *testing.T) {
	original := errors.New("short read")
	err := cfberr.ErrIO.Wrap(original)

	assert.Equal(t, "cfb: i/o error: short read", err.Error())
	assert.ErrorIs(t, err, original)
	assert.ErrorIs(t, err, cfberr.ErrIO)
}

func TestIOHelperPassesThroughNil(t *testing.T) {
	assert.NoError(t, cfberr.IO(nil))
}

func TestIOHelperWrapsCause(t *testing.T) {
	original := errors.New("disk full")
	err := cfberr.IO(original)
	assert.ErrorIs(t, err, cfberr.ErrIO)
	assert.ErrorIs(t, err, original)
}
