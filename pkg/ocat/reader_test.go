package ocat

import (
	"context"
	"strings"
	"testing"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgproto3/v2"
	"github.com/jackc/pgx/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDB serves canned result sets keyed by a substring of the SQL text.
type fakeDB struct {
	results map[string]fakeResult
	queries []string
}

type fakeResult struct {
	columns []string
	rows    [][]interface{}
}

func (f *fakeDB) Query(_ context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	f.queries = append(f.queries, sql)
	bestLen := -1
	var best fakeResult
	for key, result := range f.results {
		if strings.Contains(sql, key) && len(key) > bestLen {
			bestLen = len(key)
			best = result
		}
	}
	return &fakeRows{result: best, index: -1}, nil
}

type fakeRows struct {
	result fakeResult
	index  int
}

func (r *fakeRows) Close()                       {}
func (r *fakeRows) Err() error                   { return nil }
func (r *fakeRows) CommandTag() pgconn.CommandTag { return nil }
func (r *fakeRows) RawValues() [][]byte          { return nil }
func (r *fakeRows) Scan(...interface{}) error    { return nil }

func (r *fakeRows) FieldDescriptions() []pgproto3.FieldDescription {
	fields := make([]pgproto3.FieldDescription, len(r.result.columns))
	for i, name := range r.result.columns {
		fields[i] = pgproto3.FieldDescription{Name: []byte(name)}
	}
	return fields
}

func (r *fakeRows) Next() bool {
	r.index++
	return r.index < len(r.result.rows)
}

func (r *fakeRows) Values() ([]interface{}, error) {
	return r.result.rows[r.index], nil
}

func generalRow(overrides map[string]interface{}) fakeResult {
	row := make(map[string]interface{}, len(generalColumns))
	for _, col := range generalColumns {
		row[col] = nil
	}
	row["obsid"] = int64(23001)
	row["seq_nbr"] = "702001"
	row["targname"] = "NGC 1275"
	row["instrument"] = "ACIS-S"
	row["status"] = "scheduled"
	row["mp_remarks"] = "old comment"
	row["type"] = "TOO"
	for k, v := range overrides {
		row[k] = v
	}
	values := make([]interface{}, len(generalColumns))
	for i, col := range generalColumns {
		values[i] = row[col]
	}
	return fakeResult{columns: generalColumns, rows: [][]interface{}{values}}
}

func TestObsidDataNotFound(t *testing.T) {
	db := &fakeDB{results: map[string]fakeResult{}}
	_, err := NewReader(db).ObsidData(context.Background(), 99999)
	require.Error(t, err)
	assert.IsType(t, ErrNoResult{}, err)
	assert.Contains(t, err.Error(), "99999")
}

func TestObsidDataMultiple(t *testing.T) {
	general := generalRow(nil)
	general.rows = append(general.rows, general.rows[0])
	db := &fakeDB{results: map[string]fakeResult{"from target where obsid=": general}}
	_, err := NewReader(db).ObsidData(context.Background(), 23001)
	require.Error(t, err)
	assert.IsType(t, ErrMultipleResults{}, err)
}

func TestObsidDataRenames(t *testing.T) {
	db := &fakeDB{results: map[string]fakeResult{
		"from target where obsid=": generalRow(map[string]interface{}{
			"soe_st_sched_date": "Mar 5 2025 1:30PM",
			"rem_exp_time":      -2.5,
		}),
	}}
	p, err := NewReader(db).ObsidData(context.Background(), 23001)
	require.NoError(t, err)

	assert.Equal(t, "old comment", p["comments"])
	assert.NotContains(t, p, "mp_remarks")
	assert.Equal(t, "TOO", p["obs_type"])
	assert.NotContains(t, p, "type")
	assert.Equal(t, "Mar 05 2025 01:30PM", p["soe_st_sched_date"])
	assert.Equal(t, 0.0, p["rem_exp_time"])
	assert.Equal(t, "N", p["dither_flag"])
	assert.Equal(t, "N", p["monitor_flag"])
}

func TestObsidDataConditionalFetches(t *testing.T) {
	db := &fakeDB{results: map[string]fakeResult{
		"from target where obsid=": generalRow(map[string]interface{}{
			"tooid":     int64(77),
			"hrcid":     int64(11),
			"roll_flag": "Y",
		}),
		"from too where tooid=": {
			columns: []string{"type", "start", "stop", "followup", "trig", "remarks"},
			rows:    [][]interface{}{{"0-5", nil, nil, "Y", "flux > 1", "fast"}},
		},
		"from hrcparam where hrcid=": {
			columns: []string{"hrc_zero_block", "timing_mode", "si_mode"},
			rows:    [][]interface{}{{"N", "Y", "DEFAULT"}},
		},
		"from rollreq where obsid=": {
			columns: []string{"roll_constraint", "roll_180", "roll", "roll_tolerance"},
			rows: [][]interface{}{
				{"Y", "N", 45.0, 5.0},
				{"P", "N", 120.0, 10.0},
			},
		},
	}}
	p, err := NewReader(db).ObsidData(context.Background(), 23001)
	require.NoError(t, err)

	assert.Equal(t, "0-5", p["too_type"])
	assert.Equal(t, "fast", p["too_remarks"])
	assert.Equal(t, "DEFAULT", p["hrc_si_mode"])
	assert.Equal(t, "Y", p["hrc_timing_mode"])
	assert.NotContains(t, p, "timing_mode")

	ranks, ok := p["roll_ranks"].([]map[string]interface{})
	require.True(t, ok)
	require.Len(t, ranks, 2)
	assert.Equal(t, 45.0, ranks[0]["roll"])

	// No ACIS id on this record, so no acisparam fetch happened.
	for _, q := range db.queries {
		assert.NotContains(t, q, "acisparam")
	}
}

func TestObsidDataNullNormalization(t *testing.T) {
	db := &fakeDB{results: map[string]fakeResult{
		"from target where obsid=": generalRow(map[string]interface{}{
			"object":   "NONE",
			"targname": "",
		}),
	}}
	p, err := NewReader(db).ObsidData(context.Background(), 23001)
	require.NoError(t, err)
	assert.Nil(t, p["object"])
	assert.Nil(t, p["targname"])
}

func TestMonitoringSeries(t *testing.T) {
	db := &fakeDB{results: map[string]fakeResult{
		"from target where obsid=": generalRow(map[string]interface{}{
			"pre_id": int64(22999),
		}),
		"select obsid, pre_id, status from target where obsid=": {
			columns: []string{"obsid", "pre_id", "status"},
			rows:    [][]interface{}{{int64(23001), nil, "scheduled"}},
		},
		"select obsid, pre_id, status from target where pre_id=": {
			columns: []string{"obsid", "pre_id", "status"},
			rows:    [][]interface{}{{int64(23002), int64(23001), "unobserved"}},
		},
	}}
	p, err := NewReader(db).ObsidData(context.Background(), 23001)
	require.NoError(t, err)

	assert.Equal(t, "Y", p["monitor_flag"])
	series, ok := p["monitor_series"].([]int64)
	require.True(t, ok)
	assert.Equal(t, []int64{23001, 23002}, series)
}
