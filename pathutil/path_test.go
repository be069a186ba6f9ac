package pathutil_test

import (
	"testing"

	"github.com/dargueta/cfb/pathutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitRoot(t *testing.T) {
	parts, err := pathutil.Split("/")
	require.NoError(t, err)
	assert.Empty(t, parts)
}

func TestSplitNested(t *testing.T) {
	parts, err := pathutil.Split("/Storage1/Stream2")
	require.NoError(t, err)
	assert.Equal(t, []string{"Storage1", "Stream2"}, parts)
}

func TestSplitRejectsRelativePath(t *testing.T) {
	_, err := pathutil.Split("Storage1/Stream2")
	assert.Error(t, err)
}

func TestValidateNameRejectsReservedCharacters(t *testing.T) {
	for _, name := range []string{"a/b", `a\b`, "a:b", "a!b"} {
		assert.Error(t, pathutil.ValidateName(name), name)
	}
}

func TestValidateNameRejectsTooLong(t *testing.T) {
	long := make([]rune, pathutil.MaxNameLength+1)
	for i := range long {
		long[i] = 'a'
	}
	assert.Error(t, pathutil.ValidateName(string(long)))
}

func TestValidateNameAcceptsMaxLength(t *testing.T) {
	ok := make([]rune, pathutil.MaxNameLength)
	for i := range ok {
		ok[i] = 'a'
	}
	assert.NoError(t, pathutil.ValidateName(string(ok)))
}

func TestCompareNamesShorterSortsFirst(t *testing.T) {
	assert.Negative(t, pathutil.CompareNames("ab", "abc"))
	assert.Positive(t, pathutil.CompareNames("abc", "ab"))
}

func TestCompareNamesCaseInsensitive(t *testing.T) {
	assert.Zero(t, pathutil.CompareNames("Hello", "HELLO"))
	assert.Zero(t, pathutil.CompareNames("Root Entry", "ROOT ENTRY"))
}

func TestCompareNamesOrdersByFoldedValue(t *testing.T) {
	assert.Negative(t, pathutil.CompareNames("abc", "abd"))
	assert.Positive(t, pathutil.CompareNames("abd", "abc"))
}
