package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNull(t *testing.T) {
	assert.True(t, IsNull(nil))
	assert.True(t, IsNull(""))
	assert.True(t, IsNull("NA"))
	assert.True(t, IsNull("None"))
	assert.True(t, IsNull("NULL"))
	assert.False(t, IsNull("0"))
	assert.False(t, IsNull("ACIS-S"))
	assert.False(t, IsNull(0))
}

func TestCoerceNumber(t *testing.T) {
	assert.Equal(t, int64(23001), CoerceNumber("23001"))
	assert.Equal(t, 12.5, CoerceNumber("12.5"))
	assert.Equal(t, int64(-3), CoerceNumber(" -3 "))
	assert.Equal(t, "ACIS-S", CoerceNumber("ACIS-S"))
	assert.Equal(t, int64(7), CoerceNumber(int64(7)))
}

func TestCoerceTime(t *testing.T) {
	testCases := []struct {
		name     string
		in       string
		expected string
	}{
		{"ocat layout", "Mar 05 2025 01:30PM", "2025-03-05T13:30:00Z"},
		{"ocat layout no leading zero", "Mar 5 2025 1:30PM", "2025-03-05T13:30:00Z"},
		{"form layout", "Mar 05 2025 13:30", "2025-03-05T13:30:00Z"},
		{"storage layout round trip", "2025-03-05T13:30:00Z", "2025-03-05T13:30:00Z"},
		{"fractional seconds stripped", "2025-03-05 13:30:00.123", "2025-03-05T13:30:00Z"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, CoerceTime(tc.in, StorageTimeFormat))
		})
	}

	// Unparseable strings pass through untouched.
	assert.Equal(t, "not a date", CoerceTime("not a date", StorageTimeFormat))
}

func TestCoerce(t *testing.T) {
	assert.Nil(t, Coerce("NONE"))
	assert.Equal(t, int64(42), Coerce("42"))
	assert.Equal(t, "2025-03-05T13:30:00Z", Coerce("Mar 05 2025 01:30PM"))

	coerced := Coerce([]interface{}{"1", "NA", "2.5"})
	assert.Equal(t, []interface{}{int64(1), nil, 2.5}, coerced)

	nested := Coerce(map[string]interface{}{"ra": "123.456", "object": "NONE"})
	assert.Equal(t, map[string]interface{}{"ra": 123.456, "object": nil}, nested)
}

func TestCoerceJSONAndDecode(t *testing.T) {
	assert.Nil(t, CoerceJSON(nil))
	assert.Nil(t, CoerceJSON("None"))

	stored := CoerceJSON(int64(23001))
	if assert.NotNil(t, stored) {
		assert.Equal(t, "23001", *stored)
		assert.Equal(t, float64(23001), DecodeJSON(stored))
	}

	stored = CoerceJSON([]interface{}{"Y", "N"})
	if assert.NotNil(t, stored) {
		assert.Equal(t, `["Y","N"]`, *stored)
		assert.Equal(t, []interface{}{"Y", "N"}, DecodeJSON(stored))
	}

	assert.Nil(t, DecodeJSON(nil))
}
