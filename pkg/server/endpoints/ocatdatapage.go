package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/cxcds/usint-in-go/pkg/identity"
	"github.com/cxcds/usint-in-go/pkg/model"
	"github.com/cxcds/usint-in-go/pkg/notify"
	"github.com/cxcds/usint-in-go/pkg/ocat"
	"github.com/cxcds/usint-in-go/pkg/params"
	"github.com/cxcds/usint-in-go/pkg/revision"
	"github.com/cxcds/usint-in-go/pkg/server"
	"github.com/cxcds/usint-in-go/pkg/server/middleware"
	"github.com/cxcds/usint-in-go/pkg/server/store"
)

// SubmissionRequest is the body of a POST to the ocat data page.
type SubmissionRequest struct {
	Kind string `json:"kind"`

	// Changes holds the full form values by parameter name. Only tracked
	// parameters that differ from the catalog become part of the revision.
	Changes map[string]interface{} `json:"changes"`
}

func RegisterOcatdatapageEndpoints(s *server.Server) {
	auth := middleware.NewRemoteUserAuthenticator(s.Users)

	router := s.Router.PathPrefix("/ocatdatapage").Subrouter()
	router.Use(auth.Middleware)

	router.HandleFunc("/{obsid}", handleGetOcatData(s)).Methods("GET")
	router.HandleFunc("/{obsid}", handleSubmitOcatData(s)).Methods("POST")
}

func handleGetOcatData(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		obsid, ok := obsidVar(w, r)
		if !ok {
			return
		}

		data, ok := fetchCatalog(s, w, r, obsid)
		if !ok {
			return
		}

		approved, err := s.Revisions.IsApproved(obsid)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		open, err := s.Revisions.HasOpenRevision(obsid)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		resp := map[string]interface{}{
			"obsid":         obsid,
			"parameters":    data,
			"approved":      approved,
			"open_revision": open,
			"on_or_list":    s.ObsSS.OnORList(obsid),
		}
		if roll, ok := s.ObsSS.PlannedRoll(obsid); ok {
			resp["planned_roll"] = roll
		}
		// Sexagesimal and arcsecond renderings of the form fields
		if ra, ok := toFloat(data["ra"]); ok {
			resp["ra_hms"] = params.RAToHMS(ra)
		}
		if dec, ok := toFloat(data["dec"]); ok {
			resp["dec_dms"] = params.DecToDMS(dec)
		}
		if y, ok := toFloat(data["y_amp"]); ok {
			resp["y_amp_asec"] = y * 3600
		}
		if z, ok := toFloat(data["z_amp"]); ok {
			resp["z_amp_asec"] = z * 3600
		}

		respondWithJSON(w, http.StatusOK, resp)
	}
}

func handleSubmitOcatData(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIdentity(w, r)
		if !ok {
			return
		}
		obsid, ok := obsidVar(w, r)
		if !ok {
			return
		}

		var sub SubmissionRequest
		if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
			respondWithError(w, http.StatusBadRequest, "Malformed request body")
			return
		}
		switch sub.Kind {
		case model.KindNorm, model.KindAsis, model.KindRemove, model.KindClone:
		default:
			respondWithError(w, http.StatusBadRequest, "Unknown submission kind")
			return
		}

		data, ok := fetchCatalog(s, w, r, obsid)
		if !ok {
			return
		}

		var org, req map[string]interface{}
		if sub.Kind == model.KindNorm || sub.Kind == model.KindClone {
			org, req = revision.Diff(data, sub.Changes)
			if sub.Kind == model.KindNorm && len(req) == 0 {
				respondWithError(w, http.StatusBadRequest, "No parameter changes submitted")
				return
			}
		}

		plan, err := revision.PlanSignoff(sub.Kind, req)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		now := time.Now()
		notes := revision.BuildNotes(data, org, req, s.ObsSS.OnORList(obsid), now)

		rev, err := s.Revisions.CreateSubmission(submission(obsid, sub.Kind, data, id.UserID, now, notes, plan, org, req))
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		sendSubmissionMail(s, data, rev, id)

		respondWithJSON(w, http.StatusCreated, map[string]interface{}{
			"obsidrev": rev.ObsidRev(),
			"kind":     rev.Kind,
			"notes":    notes,
		})
	}
}

// submission assembles the store-layer record for a validated request.
func submission(
	obsid int64,
	kind string,
	data map[string]interface{},
	userID int64,
	now time.Time,
	notes revision.Notes,
	plan revision.SignoffPlan,
	org, req map[string]interface{},
) store.Submission {

	seq, _ := toInt64(data["seq_nbr"])

	requests := make(map[string]*string, len(req))
	for name, val := range req {
		requests[name] = params.CoerceJSON(val)
	}
	originals := make(map[string]*string, len(org))
	for name, val := range org {
		originals[name] = params.CoerceJSON(val)
	}

	return store.Submission{
		Obsid:          obsid,
		Kind:           kind,
		SequenceNumber: seq,
		UserID:         userID,
		Time:           now.Unix(),
		Notes:          notes.Encode(),

		General: plan.General,
		Acis:    plan.Acis,
		AcisSI:  plan.AcisSI,
		HrcSI:   plan.HrcSI,
		Usint:   plan.Usint,

		AutoSign: plan.AutoSign,

		Requests:  requests,
		Originals: originals,
	}
}

func sendSubmissionMail(s *server.Server, data map[string]interface{}, rev *model.Revision, id *identity.Identity) {
	httpAddr := s.Config.HTTPAddress

	switch rev.Kind {
	case model.KindAsis, model.KindRemove:
		msg := notify.ApprovalStateMessage(data, rev.ObsidRev(), rev.Kind, id.User, httpAddr)
		if err := s.Notifier.Send(msg); err != nil {
			s.Notifier.SendError(id.Username, err.Error())
		}
	default:
		if rev.Signoff == nil {
			return
		}
		msg := notify.SignoffMessage(data, rev, rev.Signoff, id.User, httpAddr)
		if err := s.Notifier.Send(msg); err != nil {
			s.Notifier.SendError(id.Username, err.Error())
		}
	}
}

func obsidVar(w http.ResponseWriter, r *http.Request) (int64, bool) {
	obsid, err := strconv.ParseInt(mux.Vars(r)["obsid"], 10, 64)
	if err != nil || obsid <= 0 {
		respondWithError(w, http.StatusBadRequest, "Malformed obsid")
		return 0, false
	}
	return obsid, true
}

func fetchCatalog(s *server.Server, w http.ResponseWriter, r *http.Request, obsid int64) (map[string]interface{}, bool) {
	data, err := s.Catalog.ObsidData(r.Context(), obsid)
	if err != nil {
		var noResult ocat.ErrNoResult
		if errors.As(err, &noResult) {
			respondWithError(w, http.StatusNotFound, err.Error())
			return nil, false
		}
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	return data, true
}

func toFloat(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int64:
		return float64(x), true
	case int:
		return float64(x), true
	}
	return 0, false
}

func toInt64(v interface{}) (int64, bool) {
	switch x := v.(type) {
	case int64:
		return x, true
	case int:
		return int64(x), true
	case float64:
		return int64(x), true
	case string:
		n, err := strconv.ParseInt(x, 10, 64)
		return n, err == nil
	}
	return 0, false
}
