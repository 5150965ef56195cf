package ocat

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/cxcds/usint-in-go/pkg/params"
)

// Column lists for the catalog tables. Kept in one place because the page,
// the diff, and the notification text all key off these names.
var generalColumns = []string{
	"obsid", "targid", "seq_nbr", "targname", "obj_flag", "object", "si_mode",
	"photometry_flag", "vmagnitude", "ra", "dec", "est_cnt_rate",
	"forder_cnt_rate", "y_det_offset", "z_det_offset", "raster_scan",
	"dither_flag", "approved_exposure_time", "pre_min_lead", "pre_max_lead",
	"pre_id", "seg_max_num", "aca_mode", "phase_constraint_flag",
	"ocat_propid", "acisid", "hrcid", "grating", "instrument", "rem_exp_time",
	"soe_st_sched_date", "type", "lts_lt_plan", "mpcat_star_fidlight_file",
	"status", "data_rights", "tooid", "description", "total_fld_cnt_rate",
	"extended_src", "uninterrupt", "multitelescope", "observatories",
	"constr_in_remarks", "group_id", "obs_ao_str", "roll_flag", "window_flag",
	"spwindow_flag", "multitelescope_interval", "pointing_constraint",
	"remarks", "mp_remarks",
}

var acisColumns = []string{
	"exp_mode", "ccdi0_on", "ccdi1_on", "ccdi2_on", "ccdi3_on", "ccds0_on",
	"ccds1_on", "ccds2_on", "ccds3_on", "ccds4_on", "ccds5_on", "bep_pack",
	"onchip_sum", "onchip_row_count", "onchip_column_count", "frame_time",
	"subarray", "subarray_start_row", "subarray_row_count", "duty_cycle",
	"secondary_exp_count", "primary_exp_time", "eventfilter",
	"eventfilter_lower", "eventfilter_higher", "most_efficient",
	"dropped_chip_count", "multiple_spectral_lines", "spectra_max_count",
}

var acisWinColumns = []string{
	"chip", "start_row", "start_column", "width", "height",
	"lower_threshold", "pha_range", "sample",
}

// Statuses counted as still coming up when listing group and monitor
// companions.
var activeStatuses = map[string]bool{
	"unobserved":  true,
	"scheduled":   true,
	"untriggered": true,
}

// Reader fetches and shapes a full parameter record for one obsid.
type Reader struct {
	db Queryer
}

func NewReader(db Queryer) *Reader {
	return &Reader{db: db}
}

// ObsidData returns the complete parameter dictionary for an obsid, merging
// the conditional instrument, constraint, and proposal tables the same way
// the legacy CUS tools did. Null spellings from the various tables all come
// back as nil.
func (r *Reader) ObsidData(ctx context.Context, obsid int64) (map[string]interface{}, error) {
	p, err := r.generalParams(ctx, obsid)
	if err != nil {
		return nil, err
	}

	monitor, err := r.monitorParams(ctx, obsid, p["pre_id"], p["group_id"])
	if err != nil {
		return nil, err
	}
	merge(p, monitor)

	if p["tooid"] != nil {
		sub, err := r.tooDdtParams(ctx, p["tooid"])
		if err != nil {
			return nil, err
		}
		merge(p, sub)
	}
	if p["hrcid"] != nil {
		sub, err := r.hrcParams(ctx, p["hrcid"])
		if err != nil {
			return nil, err
		}
		merge(p, sub)
	}
	if p["acisid"] != nil {
		sub, err := r.acisParams(ctx, p["acisid"])
		if err != nil {
			return nil, err
		}
		merge(p, sub)
	}

	// Flag spellings vary across tables, but 'N' and null consistently mean
	// the constraint is off.
	if flagSet(p["roll_flag"]) {
		sub, err := r.rollParams(ctx, obsid)
		if err != nil {
			return nil, err
		}
		merge(p, sub)
	}
	if flagSet(p["window_flag"]) {
		sub, err := r.timeConstraintParams(ctx, obsid)
		if err != nil {
			return nil, err
		}
		merge(p, sub)
	}
	if flagSet(p["spwindow_flag"]) {
		sub, err := r.acisWinParams(ctx, obsid)
		if err != nil {
			return nil, err
		}
		merge(p, sub)
	}
	if flagSet(p["phase_constraint_flag"]) {
		sub, err := r.phaseParams(ctx, obsid)
		if err != nil {
			return nil, err
		}
		merge(p, sub)
	}
	if flagSet(p["dither_flag"]) {
		sub, err := r.ditherParams(ctx, obsid)
		if err != nil {
			return nil, err
		}
		merge(p, sub)
	}

	sim, err := r.simParams(ctx, obsid)
	if err != nil {
		return nil, err
	}
	merge(p, sim)

	soe, err := r.soeParams(ctx, obsid)
	if err != nil {
		return nil, err
	}
	merge(p, soe)

	if p["ocat_propid"] != nil {
		prop, err := r.propParams(ctx, p["ocat_propid"])
		if err != nil {
			return nil, err
		}
		merge(p, prop)
	}

	for k, v := range p {
		if params.IsNull(v) {
			p[k] = nil
		}
	}
	return p, nil
}

func (r *Reader) generalParams(ctx context.Context, obsid int64) (map[string]interface{}, error) {
	rows, err := r.fetch(ctx,
		"select "+strings.Join(generalColumns, ",")+" from target where obsid=$1", obsid)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoResult{Obsid: obsid}
	}
	if len(rows) > 1 {
		return nil, ErrMultipleResults{Obsid: obsid}
	}
	p := rows[0]

	p["comments"] = p["mp_remarks"]
	delete(p, "mp_remarks")
	p["obs_type"] = p["type"]
	delete(p, "type")

	// Catalog dates print without a leading zero in the day. Re-render so
	// every date the application hands out has one.
	if p["soe_st_sched_date"] != nil {
		p["soe_st_sched_date"] = renderOcatDate(p["soe_st_sched_date"])
	}
	if p["lts_lt_plan"] != nil {
		p["lts_lt_plan"] = renderOcatDate(p["lts_lt_plan"])
	}

	for _, flag := range []string{"dither_flag", "window_flag", "roll_flag", "spwindow_flag"} {
		if p[flag] == nil {
			p[flag] = "N"
		}
	}
	if remaining, ok := asFloat(p["rem_exp_time"]); ok && remaining < 0 {
		p["rem_exp_time"] = 0.0
	}
	return p, nil
}

func (r *Reader) monitorParams(ctx context.Context, obsid int64, preID, groupID interface{}) (map[string]interface{}, error) {
	p := map[string]interface{}{"monitor_flag": "N"}

	if groupID != nil {
		rows, err := r.fetch(ctx,
			"select obsid, status from target where group_id=$1", groupID)
		if err != nil {
			return nil, err
		}
		var group []int64
		for _, row := range rows {
			if status, _ := row["status"].(string); activeStatuses[status] {
				if id, ok := asInt64(row["obsid"]); ok {
					group = append(group, id)
				}
			}
		}
		sort.Slice(group, func(i, j int) bool { return group[i] < group[j] })
		p["group_obsid"] = group
		return p, nil
	}

	if preID != nil {
		p["monitor_flag"] = "Y"
	} else {
		rows, err := r.fetch(ctx,
			"select distinct pre_id, obsid from target where pre_id=$1 or (obsid=$1 and pre_id is not null)", obsid)
		if err != nil {
			return nil, err
		}
		if len(rows) > 0 {
			p["monitor_flag"] = "Y"
		}
	}

	if p["monitor_flag"] == "Y" {
		series, err := r.monitoringSeries(ctx, obsid)
		if err != nil {
			return nil, err
		}
		p["monitor_series"] = series
	}
	return p, nil
}

// monitoringSeries walks the pre_id chain both ways from an obsid and
// returns the still-active members in order. A visited set guards against a
// mis-entered circular chain.
func (r *Reader) monitoringSeries(ctx context.Context, obsid int64) ([]int64, error) {
	visited := map[int64]bool{obsid: true}
	var series []map[string]interface{}

	// Backwards through pre_id until the chain starts.
	rows, err := r.fetch(ctx,
		"select obsid, pre_id, status from target where obsid=$1", obsid)
	if err != nil {
		return nil, err
	}
	series = append(series, rows...)
	for len(rows) > 0 {
		prev, ok := asInt64(rows[0]["pre_id"])
		if !ok || visited[prev] {
			break
		}
		visited[prev] = true
		rows, err = r.fetch(ctx,
			"select obsid, pre_id, status from target where obsid=$1", prev)
		if err != nil {
			return nil, err
		}
		series = append(rows, series...)
	}

	// Forwards through observations naming this one as predecessor.
	rows, err = r.fetch(ctx,
		"select obsid, pre_id, status from target where pre_id=$1", obsid)
	if err != nil {
		return nil, err
	}
	series = append(series, rows...)
	for len(rows) > 0 {
		next, ok := asInt64(rows[len(rows)-1]["obsid"])
		if !ok || visited[next] {
			break
		}
		visited[next] = true
		rows, err = r.fetch(ctx,
			"select obsid, pre_id, status from target where pre_id=$1", next)
		if err != nil {
			return nil, err
		}
		series = append(series, rows...)
	}

	var active []int64
	seen := map[int64]bool{}
	for _, row := range series {
		status, _ := row["status"].(string)
		if !activeStatuses[status] {
			continue
		}
		if id, ok := asInt64(row["obsid"]); ok && !seen[id] {
			seen[id] = true
			active = append(active, id)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i] < active[j] })
	return active, nil
}

func (r *Reader) rollParams(ctx context.Context, obsid int64) (map[string]interface{}, error) {
	rows, err := r.fetch(ctx,
		"select roll_constraint,roll_180,roll,roll_tolerance from rollreq where obsid=$1 order by ordr", obsid)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"roll_ranks": rows}, nil
}

func (r *Reader) timeConstraintParams(ctx context.Context, obsid int64) (map[string]interface{}, error) {
	rows, err := r.fetch(ctx,
		"select window_constraint,tstart,tstop from timereq where obsid=$1 order by ordr", obsid)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		row["tstart"] = renderOcatDate(row["tstart"])
		row["tstop"] = renderOcatDate(row["tstop"])
	}
	return map[string]interface{}{"time_ranks": rows}, nil
}

func (r *Reader) acisWinParams(ctx context.Context, obsid int64) (map[string]interface{}, error) {
	rows, err := r.fetch(ctx,
		"select "+strings.Join(acisWinColumns, ",")+" from aciswin where obsid=$1 order by ordr", obsid)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"window_ranks": rows}, nil
}

func (r *Reader) tooDdtParams(ctx context.Context, tooid interface{}) (map[string]interface{}, error) {
	rows, err := r.fetch(ctx,
		"select type,start,stop,followup,trig,remarks from too where tooid=$1", tooid)
	if err != nil {
		return nil, err
	}
	p := make(map[string]interface{})
	if len(rows) > 0 {
		for k, v := range rows[0] {
			p["too_"+k] = v
		}
	}
	return p, nil
}

func (r *Reader) hrcParams(ctx context.Context, hrcid interface{}) (map[string]interface{}, error) {
	rows, err := r.fetch(ctx,
		"select hrc_zero_block,timing_mode,si_mode from hrcparam where hrcid=$1", hrcid)
	if err != nil {
		return nil, err
	}
	p := make(map[string]interface{})
	if len(rows) > 0 {
		p["hrc_zero_block"] = rows[0]["hrc_zero_block"]
		// Prefixed so they do not collide with the ACIS spellings.
		p["hrc_timing_mode"] = rows[0]["timing_mode"]
		p["hrc_si_mode"] = rows[0]["si_mode"]
	}
	return p, nil
}

func (r *Reader) acisParams(ctx context.Context, acisid interface{}) (map[string]interface{}, error) {
	rows, err := r.fetch(ctx,
		"select "+strings.Join(acisColumns, ",")+" from acisparam where acisid=$1", acisid)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return map[string]interface{}{}, nil
	}
	return rows[0], nil
}

func (r *Reader) phaseParams(ctx context.Context, obsid int64) (map[string]interface{}, error) {
	rows, err := r.fetch(ctx,
		"select phase_period,phase_epoch,phase_start,phase_end,phase_start_margin,phase_end_margin from phasereq where obsid=$1", obsid)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return map[string]interface{}{}, nil
	}
	return rows[0], nil
}

func (r *Reader) ditherParams(ctx context.Context, obsid int64) (map[string]interface{}, error) {
	rows, err := r.fetch(ctx,
		"select y_amp,y_freq,y_phase,z_amp,z_freq,z_phase from dither where obsid=$1", obsid)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return map[string]interface{}{}, nil
	}
	return rows[0], nil
}

func (r *Reader) simParams(ctx context.Context, obsid int64) (map[string]interface{}, error) {
	rows, err := r.fetch(ctx,
		"select trans_offset,focus_offset from sim where obsid=$1", obsid)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return map[string]interface{}{}, nil
	}
	return rows[0], nil
}

func (r *Reader) soeParams(ctx context.Context, obsid int64) (map[string]interface{}, error) {
	rows, err := r.fetch(ctx,
		"select soe_roll from soe where obsid=$1 and unscheduled='N'", obsid)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return map[string]interface{}{}, nil
	}
	return rows[0], nil
}

func (r *Reader) propParams(ctx context.Context, propid interface{}) (map[string]interface{}, error) {
	rows, err := r.fetch(ctx,
		"select ao_str,prop_num,title,joint from prop_info where ocat_propid=$1", propid)
	if err != nil {
		return nil, err
	}
	p := make(map[string]interface{})
	if len(rows) == 0 {
		return p, nil
	}
	// The proposal's AO string supersedes the one on the target row.
	p["obs_ao_str"] = rows[0]["ao_str"]
	p["proposal_number"] = rows[0]["prop_num"]
	p["proposal_title"] = rows[0]["title"]
	p["proposal_joint"] = rows[0]["joint"]

	pi, err := r.fetch(ctx,
		"select last from view_pi where ocat_propid=$1", propid)
	if err != nil {
		return nil, err
	}
	if len(pi) > 0 {
		p["pi_name"] = pi[0]["last"]
	}

	coi, err := r.fetch(ctx,
		"select last from view_coi where ocat_propid=$1", propid)
	if err != nil {
		return nil, err
	}
	if len(coi) > 0 {
		p["observer"] = coi[0]["last"]
	} else {
		p["observer"] = p["pi_name"]
	}
	return p, nil
}

func merge(dst, src map[string]interface{}) {
	for k, v := range src {
		dst[k] = v
	}
}

func flagSet(v interface{}) bool {
	return v != nil && v != "N"
}

func renderOcatDate(v interface{}) interface{} {
	if t, ok := v.(time.Time); ok {
		return t.Format(params.OcatTimeFormat)
	}
	if s, ok := v.(string); ok {
		return params.CoerceTime(s, params.OcatTimeFormat)
	}
	return v
}

func asFloat(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int64:
		return float64(x), true
	case int32:
		return float64(x), true
	case int:
		return float64(x), true
	}
	return 0, false
}

func asInt64(v interface{}) (int64, bool) {
	switch x := v.(type) {
	case int64:
		return x, true
	case int32:
		return int64(x), true
	case int:
		return int64(x), true
	case float64:
		return int64(x), true
	}
	return 0, false
}
