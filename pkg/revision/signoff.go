package revision

import (
	"fmt"

	"github.com/cxcds/usint-in-go/pkg/model"
	"github.com/cxcds/usint-in-go/pkg/params"
)

// SignoffPlan is the initial status of each signoff column for a new
// submission.
type SignoffPlan struct {
	General string
	Acis    string
	AcisSI  string
	HrcSI   string
	Usint   string

	// AutoSign carries the submitting user for kinds that sign usint on
	// submission.
	AutoSign bool
}

// PlanSignoff decides the initial signoff statuses for a revision of the
// given kind. For norm revisions the changed parameter set determines which
// review columns open.
func PlanSignoff(kind string, changed map[string]interface{}) (SignoffPlan, error) {
	switch kind {
	case model.KindAsis, model.KindRemove:
		return SignoffPlan{
			General: model.StatusNotRequired,
			Acis:    model.StatusNotRequired,
			AcisSI:  model.StatusNotRequired,
			HrcSI:   model.StatusNotRequired,
			Usint:   model.StatusSigned,

			AutoSign: true,
		}, nil
	case model.KindClone:
		return SignoffPlan{
			General: model.StatusPending,
			Acis:    model.StatusNotRequired,
			AcisSI:  model.StatusNotRequired,
			HrcSI:   model.StatusNotRequired,
			Usint:   model.StatusPending,
		}, nil
	case model.KindNorm:
		plan := SignoffPlan{
			General: model.StatusNotRequired,
			Acis:    model.StatusNotRequired,
			AcisSI:  model.StatusNotRequired,
			HrcSI:   model.StatusNotRequired,
			Usint:   model.StatusPending,
		}
		for name := range changed {
			if inSelection(name, "general") {
				plan.General = model.StatusPending
			}
			if inSelection(name, "acis") {
				plan.Acis = model.StatusPending
			}
			if inSelection(name, "acis_si") {
				plan.AcisSI = model.StatusPending
			}
			if inSelection(name, "hrc_si") {
				plan.HrcSI = model.StatusPending
			}
		}
		return plan, nil
	}
	return SignoffPlan{}, fmt.Errorf("unknown revision kind %q", kind)
}

func inSelection(name, column string) bool {
	for _, p := range params.SignoffParams(column) {
		if p == name {
			return true
		}
	}
	return false
}

// IsApproved walks an obsid's revisions in number order. An asis revision
// marks the obsid approved and a remove revision un-marks it; the last word
// wins.
func IsApproved(revisions []model.Revision) bool {
	approved := false
	for _, rev := range revisions {
		switch rev.Kind {
		case model.KindAsis:
			approved = true
		case model.KindRemove:
			approved = false
		}
	}
	return approved
}
