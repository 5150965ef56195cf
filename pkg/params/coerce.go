package params

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Datetime layouts seen across the catalog, the web forms, and legacy CUS
// tools. Ocat dates print without a leading zero in the day, which Go's
// reference layouts can parse but never emit; see CoerceTime.
const (
	UsintTimeFormat   = "Jan 02 2006 15:04"
	OcatTimeFormat    = "Jan 02 2006 03:04PM"
	StorageTimeFormat = "2006-01-02T15:04:05Z"
)

// DatetimeFormats is the ordered list of layouts tried during coercion.
var DatetimeFormats = []string{
	UsintTimeFormat,
	OcatTimeFormat,
	"Jan 2 2006 3:04PM",
	StorageTimeFormat,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"01:02:2006:15:04:05",
	"01:02:2006:15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// nullSpellings collects the strings the catalog and the forms use for a
// missing value.
var nullSpellings = map[string]bool{
	"":        true,
	" ":       true,
	"<Blank>": true,
	"N/A":     true,
	"NA":      true,
	"NONE":    true,
	"NULL":    true,
	"Na":      true,
	"None":    true,
	"Null":    true,
	"none":    true,
	"null":    true,
}

// IsNull reports whether a value is nil or one of the known null spellings.
func IsNull(v interface{}) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return nullSpellings[s]
	}
	return false
}

// CoerceNumber turns a numeric string into an int64 or float64. Non-numeric
// input is returned unchanged.
func CoerceNumber(v interface{}) interface{} {
	s, ok := v.(string)
	if !ok {
		return v
	}
	if i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
		return f
	}
	return v
}

// CoerceTime parses a datetime string in any of the known layouts and
// re-renders it in the requested output layout. Fractional seconds and the
// legacy "::" separator are tolerated. Unparseable input comes back as is.
func CoerceTime(v interface{}, outputFormat string) interface{} {
	s, ok := v.(string)
	if !ok {
		return v
	}
	if t, ok := ParseTime(s); ok {
		return t.Format(outputFormat)
	}
	return v
}

// ParseTime parses a datetime string in any of the known layouts.
func ParseTime(s string) (time.Time, bool) {
	x := strings.ReplaceAll(s, "::", ":")
	if i := strings.Index(x, "."); i >= 0 {
		x = x[:i]
	}
	for _, layout := range DatetimeFormats {
		if t, err := time.Parse(layout, x); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Coerce normalizes a value of unknown shape: null spellings become nil,
// numeric strings become numbers, datetime strings are re-rendered in the
// storage layout, and lists and maps are coerced element-wise.
func Coerce(v interface{}) interface{} {
	switch x := v.(type) {
	case []interface{}:
		out := make([]interface{}, len(x))
		for i, e := range x {
			out[i] = Coerce(e)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(x))
		for k, e := range x {
			out[k] = Coerce(e)
		}
		return out
	}
	if IsNull(v) {
		return nil
	}
	v = CoerceNumber(v)
	switch v.(type) {
	case int64, float64, int:
		return v
	}
	return CoerceTime(v, StorageTimeFormat)
}

// CoerceJSON encodes a value as a JSON string for storage. Null values
// encode to nil; datetimes are normalized to the storage layout first.
func CoerceJSON(v interface{}) *string {
	if IsNull(v) {
		return nil
	}
	if t, ok := v.(time.Time); ok {
		v = t.Format(StorageTimeFormat)
	}
	if list, ok := v.([]interface{}); ok {
		norm := make([]interface{}, len(list))
		for i, e := range list {
			if t, ok := e.(time.Time); ok {
				norm[i] = t.Format(StorageTimeFormat)
			} else {
				norm[i] = e
			}
		}
		v = norm
	}
	encoded, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	s := string(encoded)
	return &s
}

// DecodeJSON reverses CoerceJSON. A nil stored value decodes to nil.
func DecodeJSON(stored *string) interface{} {
	if stored == nil {
		return nil
	}
	var v interface{}
	if err := json.Unmarshal([]byte(*stored), &v); err != nil {
		return *stored
	}
	return v
}
