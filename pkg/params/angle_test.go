package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRAToHMS(t *testing.T) {
	assert.Equal(t, "00:00:00.0000", RAToHMS(0))
	assert.Equal(t, "12:00:00.0000", RAToHMS(180))
	assert.Equal(t, "05:34:31.9400", RAToHMS(83.63308333))
	// Wraps past a full circle.
	assert.Equal(t, "00:00:00.0000", RAToHMS(360))
}

func TestDecToDMS(t *testing.T) {
	assert.Equal(t, "+00:00:00.0000", DecToDMS(0))
	assert.Equal(t, "+22:00:52.2000", DecToDMS(22.01450))
	assert.Equal(t, "-05:22:58.5600", DecToDMS(-5.38293333))
}

func TestHMSRoundTrip(t *testing.T) {
	ra, err := HMSToRA("05:34:31.94")
	require.NoError(t, err)
	assert.InDelta(t, 83.63308333, ra, 1e-6)

	dec, err := DMSToDec("-05:22:58.56")
	require.NoError(t, err)
	assert.InDelta(t, -5.38293333, dec, 1e-6)

	// Space separated also accepted.
	ra, err = HMSToRA("5 34 31.94")
	require.NoError(t, err)
	assert.InDelta(t, 83.63308333, ra, 1e-6)

	_, err = HMSToRA("not an angle")
	assert.Error(t, err)
}

func TestIsLargeCoordShift(t *testing.T) {
	assert.False(t, IsLargeCoordShift(83.0, 22.0, 83.0, 22.0))
	assert.False(t, IsLargeCoordShift(83.05, 22.0, 83.0, 22.0))
	assert.True(t, IsLargeCoordShift(83.2, 22.0, 83.0, 22.0))
	assert.True(t, IsLargeCoordShift(83.0, 22.2, 83.0, 22.0))
}
