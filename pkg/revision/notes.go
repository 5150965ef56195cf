package revision

import (
	"encoding/json"
	"time"

	"github.com/cxcds/usint-in-go/pkg/params"
)

// Notes carries the warning flags recorded alongside a norm revision.
// Coordinators scan these on the status page before signing off.
type Notes struct {
	TargetNameChange      bool `json:"target_name_change,omitempty"`
	CommentChange         bool `json:"comment_change,omitempty"`
	InstrumentChange      bool `json:"instrument_change,omitempty"`
	GratingChange         bool `json:"grating_change,omitempty"`
	FlagChange            bool `json:"flag_change,omitempty"`
	LargeCoordinateChange bool `json:"large_coordinate_change,omitempty"`
	ObsdateUnder10        bool `json:"obsdate_under10,omitempty"`
	OnORList              bool `json:"on_or_list,omitempty"`
}

// IsZero reports whether no flag is set.
func (n Notes) IsZero() bool {
	return n == Notes{}
}

// Encode renders the notes as JSON for storage, or nil when no flag is set.
func (n Notes) Encode() *string {
	if n.IsZero() {
		return nil
	}
	encoded, err := json.Marshal(n)
	if err != nil {
		return nil
	}
	s := string(encoded)
	return &s
}

// DecodeNotes parses a stored notes value. A nil value decodes to empty
// notes.
func DecodeNotes(stored *string) Notes {
	var n Notes
	if stored == nil {
		return n
	}
	_ = json.Unmarshal([]byte(*stored), &n)
	return n
}

// BuildNotes derives the warning flags for a submission. ocat is the full
// catalog record, org and req the changed-parameter dictionaries produced by
// Diff, and onORList whether the obsid appears on the active OR list.
func BuildNotes(ocat, org, req map[string]interface{}, onORList bool, now time.Time) Notes {
	var n Notes

	scheduled := ocat["soe_st_sched_date"]
	if scheduled == nil {
		scheduled = ocat["lts_lt_plan"]
	}
	if s, ok := scheduled.(string); ok {
		if t, ok := params.ParseTime(s); ok && t.Sub(now) < 10*24*time.Hour {
			n.ObsdateUnder10 = true
		}
	}
	n.OnORList = onORList

	var ra, dec interface{}
	for param, val := range req {
		switch param {
		case "targname":
			n.TargetNameChange = true
		case "comments":
			n.CommentChange = true
		case "instrument":
			n.InstrumentChange = true
		case "grating":
			n.GratingChange = true
		case "dither_flag", "window_flag", "roll_flag", "spwindow_flag":
			n.FlagChange = true
		case "ra":
			ra = val
		case "dec":
			dec = val
		}
	}
	if ra != nil || dec != nil {
		ora, oraOK := toFloat(org["ra"])
		odec, odecOK := toFloat(org["dec"])
		nra, nraOK := toFloat(ra)
		if !nraOK {
			nra, nraOK = ora, oraOK
		}
		ndec, ndecOK := toFloat(dec)
		if !ndecOK {
			ndec, ndecOK = odec, odecOK
		}
		if oraOK && odecOK && nraOK && ndecOK && ora != 0 && odec != 0 &&
			params.IsLargeCoordShift(nra, ndec, ora, odec) {
			n.LargeCoordinateChange = true
		}
	}
	return n
}

func toFloat(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	}
	return 0, false
}
