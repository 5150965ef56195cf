package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseObsidList(t *testing.T) {
	obsids, err := ParseObsidList("23001, 23004-23006 23010")
	require.NoError(t, err)
	assert.Equal(t, []int64{23001, 23004, 23005, 23006, 23010}, obsids)
}

func TestParseObsidListColonSeparator(t *testing.T) {
	obsids, err := ParseObsidList("123, 125:130; 200-204")
	require.NoError(t, err)
	assert.Equal(t, []int64{123, 125, 130, 200, 201, 202, 203, 204}, obsids)
}

func TestParseObsidListSpacedDashRange(t *testing.T) {
	obsids, err := ParseObsidList("123 - 126")
	require.NoError(t, err)
	assert.Equal(t, []int64{123, 124, 125, 126}, obsids)
}

func TestParseObsidListExcludesPrimary(t *testing.T) {
	obsids, err := ParseObsidList("23001, 23004-23006", 23005)
	require.NoError(t, err)
	assert.Equal(t, []int64{23001, 23004, 23006}, obsids)
}

func TestParseObsidListDeduplicates(t *testing.T) {
	obsids, err := ParseObsidList("5, 5; 3-5")
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 4, 5}, obsids)
}

func TestParseObsidListEmpty(t *testing.T) {
	obsids, err := ParseObsidList("  ")
	require.NoError(t, err)
	assert.Empty(t, obsids)
}

func TestParseObsidListBadInput(t *testing.T) {
	_, err := ParseObsidList("23001, what")
	assert.Error(t, err)

	_, err = ParseObsidList("100-50")
	assert.Error(t, err)

	_, err = ParseObsidList("1-100000")
	assert.Error(t, err)
}
