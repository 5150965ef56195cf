package revision

import (
	"github.com/cxcds/usint-in-go/pkg/params"
)

// The catalog reader returns ranked constraints as one record per rank under
// these keys; forms submit them column-wise, which is also how the selection
// sets name them.
var rankRecordSets = []struct {
	key     string
	columns func() []string
}{
	{"roll_ranks", params.RollRankParams},
	{"time_ranks", params.TimeRankParams},
	{"window_ranks", params.AcisWinRankParams},
}

// Diff compares the catalog record against the requested values and returns
// the original and requested dictionaries for the parameters that actually
// changed. Ranked constraints are reoriented column-wise before comparing.
// Only parameters belonging to a signoff group are considered; everything
// else on the page is display-only.
func Diff(catalog, requested map[string]interface{}) (org, req map[string]interface{}) {
	catalog = withRankColumns(catalog)
	org = make(map[string]interface{})
	req = make(map[string]interface{})
	for name, reqVal := range requested {
		if !params.IsTracked(name) {
			continue
		}
		orgVal := params.Coerce(catalog[name])
		reqVal = params.Coerce(reqVal)
		if params.ApproxEqual(orgVal, reqVal) {
			continue
		}
		org[name] = orgVal
		req[name] = reqVal
	}
	return org, req
}

// withRankColumns adds column-wise entries for the catalog's per-rank
// records, leaving the input map untouched. The record keys themselves are
// untracked, so they never enter a diff.
func withRankColumns(catalog map[string]interface{}) map[string]interface{} {
	var out map[string]interface{}
	for _, set := range rankRecordSets {
		rows := rankRecords(catalog[set.key])
		if len(rows) == 0 {
			continue
		}
		if out == nil {
			out = make(map[string]interface{}, len(catalog))
			for k, v := range catalog {
				out[k] = v
			}
		}
		for name, list := range params.Columns(rows, set.columns()) {
			out[name] = list
		}
	}
	if out == nil {
		return catalog
	}
	return out
}

// rankRecords accepts rank rows as produced by the catalog reader or as
// decoded from JSON.
func rankRecords(v interface{}) []map[string]interface{} {
	switch rows := v.(type) {
	case []map[string]interface{}:
		return rows
	case []interface{}:
		out := make([]map[string]interface{}, 0, len(rows))
		for _, row := range rows {
			if record, ok := row.(map[string]interface{}); ok {
				out = append(out, record)
			}
		}
		return out
	}
	return nil
}
