package params

import (
	"math"
	"time"
)

const numericTolerance = 0.000001

// ApproxEqual compares two coerced values within revision tolerance.
// Numbers compare within 1e-6, times within a minute, and lists and maps
// compare element-wise.
func ApproxEqual(first, second interface{}) bool {
	if first == nil || second == nil {
		return first == nil && second == nil
	}

	if a, aok := asFloat(first); aok {
		if b, bok := asFloat(second); bok {
			return math.Abs(a-b) < numericTolerance
		}
		return false
	}

	if a, aok := first.(time.Time); aok {
		if b, bok := second.(time.Time); bok {
			return math.Abs(b.Sub(a).Seconds()) < 60
		}
		return false
	}

	if a, aok := first.([]interface{}); aok {
		b, bok := second.([]interface{})
		if !bok || len(a) != len(b) {
			return false
		}
		for i := range a {
			if !ApproxEqual(a[i], b[i]) {
				return false
			}
		}
		return true
	}

	if a, aok := first.(map[string]interface{}); aok {
		b, bok := second.(map[string]interface{})
		if !bok || len(a) != len(b) {
			return false
		}
		for k, av := range a {
			bv, present := b[k]
			if !present || !ApproxEqual(av, bv) {
				return false
			}
		}
		return true
	}

	return first == second
}

func asFloat(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	}
	return 0, false
}
