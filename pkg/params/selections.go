package params

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed static/parameter_selections.json
var selectionsJSON []byte

//go:embed static/labels.json
var labelsJSON []byte

//go:embed static/colors.json
var colorsJSON []byte

var (
	selections map[string][]string
	labels     map[string]string
	colors     []string

	tracked map[string]struct{}
)

func init() {
	if err := json.Unmarshal(selectionsJSON, &selections); err != nil {
		panic(fmt.Sprintf("params: bad parameter_selections.json: %v", err))
	}
	if err := json.Unmarshal(labelsJSON, &labels); err != nil {
		panic(fmt.Sprintf("params: bad labels.json: %v", err))
	}
	if err := json.Unmarshal(colorsJSON, &colors); err != nil {
		panic(fmt.Sprintf("params: bad colors.json: %v", err))
	}
	tracked = make(map[string]struct{})
	for _, group := range []string{"general", "acis", "acis_si", "hrc_si"} {
		for _, name := range selections[group+"_signoff_params"] {
			tracked[name] = struct{}{}
		}
	}
}

// SignoffParams returns the parameter names whose change requires the named
// signoff column. Column is one of general, acis, acis_si, hrc_si.
func SignoffParams(column string) []string {
	return selections[column+"_signoff_params"]
}

// IsTracked reports whether a parameter belongs to any signoff group.
// Untracked parameters are display-only and never recorded in a revision.
func IsTracked(name string) bool {
	_, ok := tracked[name]
	return ok
}

// RollRankParams lists the column-wise roll constraint parameters.
func RollRankParams() []string { return selections["roll_rank_params"] }

// TimeRankParams lists the column-wise time window parameters.
func TimeRankParams() []string { return selections["time_rank_params"] }

// AcisWinRankParams lists the column-wise ACIS spatial window parameters.
func AcisWinRankParams() []string { return selections["aciswin_rank_params"] }

// Label returns the display label for a parameter, falling back to the raw
// name for parameters without one.
func Label(name string) string {
	if label, ok := labels[name]; ok {
		return label
	}
	return name
}

// ColorByIndex cycles through the highlight palette used to tie together
// rows of the same obsid.
func ColorByIndex(i int) string {
	return colors[i%len(colors)]
}
