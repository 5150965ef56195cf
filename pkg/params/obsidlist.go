package params

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const maxObsidRange = 1000

func obsidSeparator(r rune) bool {
	switch r {
	case ',', ';', ':', ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

// ParseObsidList parses a free-form obsid listing such as
// "23001, 23004-23008; 23010" into a sorted, de-duplicated slice. Commas,
// semicolons, colons, and whitespace all separate entries; dash ranges are
// inclusive, tolerate surrounding whitespace, and are capped to guard
// against runaway input. Obsids passed as exclude are dropped from the
// result, so a form listing can never loop back onto its primary obsid.
func ParseObsidList(input string, exclude ...int64) ([]int64, error) {
	fields := strings.FieldsFunc(input, obsidSeparator)

	// Reattach ranges written with a spaced dash ("123 - 130")
	combined := strings.Join(fields, ",")
	combined = strings.ReplaceAll(combined, ",-,", "-")
	combined = strings.ReplaceAll(combined, "-,", "-")
	combined = strings.ReplaceAll(combined, ",-", "-")

	seen := make(map[int64]struct{})
	for _, field := range strings.Split(combined, ",") {
		if field == "" {
			continue
		}
		if strings.Contains(field, "-") {
			bounds := strings.SplitN(field, "-", 2)
			lo, err := strconv.ParseInt(bounds[0], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("bad obsid range %q", field)
			}
			hi, err := strconv.ParseInt(bounds[1], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("bad obsid range %q", field)
			}
			if hi < lo {
				return nil, fmt.Errorf("bad obsid range %q", field)
			}
			if hi-lo >= maxObsidRange {
				return nil, fmt.Errorf("obsid range %q exceeds %d entries", field, maxObsidRange)
			}
			for v := lo; v <= hi; v++ {
				seen[v] = struct{}{}
			}
			continue
		}
		v, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad obsid %q", field)
		}
		seen[v] = struct{}{}
	}

	for _, v := range exclude {
		delete(seen, v)
	}

	out := make([]int64, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}
