package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/cxcds/usint-in-go/pkg/identity"
	"github.com/cxcds/usint-in-go/pkg/model"
	"github.com/cxcds/usint-in-go/pkg/notify"
	"github.com/cxcds/usint-in-go/pkg/ocat"
	"github.com/cxcds/usint-in-go/pkg/params"
	"github.com/cxcds/usint-in-go/pkg/revision"
	"github.com/cxcds/usint-in-go/pkg/server"
	"github.com/cxcds/usint-in-go/pkg/server/middleware"
)

// ExpressRequest is a free-text obsid list for bulk as-is approval, e.g.
// "23181, 23185:23190; 27004".
type ExpressRequest struct {
	Obsids string `json:"obsids"`
}

// ExpressOutcome reports what happened to one obsid of the batch.
type ExpressOutcome struct {
	Obsid    int64  `json:"obsid"`
	Status   string `json:"status"`
	ObsidRev string `json:"obsidrev,omitempty"`
}

func RegisterExpressEndpoints(s *server.Server) {
	auth := middleware.NewRemoteUserAuthenticator(s.Users)

	router := s.Router.PathPrefix("/express").Subrouter()
	router.Use(auth.Middleware)

	router.HandleFunc("", handleExpressApproval(s)).Methods("POST")
}

func handleExpressApproval(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		var req ExpressRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Malformed request body")
			return
		}

		obsids, err := params.ParseObsidList(req.Obsids)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		if len(obsids) == 0 {
			respondWithError(w, http.StatusBadRequest, "No obsids given")
			return
		}

		outcomes := make([]ExpressOutcome, 0, len(obsids))
		for _, obsid := range obsids {
			outcomes = append(outcomes, expressApprove(s, r, obsid, id))
		}

		respondWithJSON(w, http.StatusOK, outcomes)
	}
}

// expressApprove records one as-is revision, skipping obsids that are
// already approved or still under review.
func expressApprove(s *server.Server, r *http.Request, obsid int64, id *identity.Identity) ExpressOutcome {
	approved, err := s.Revisions.IsApproved(obsid)
	if err != nil {
		return ExpressOutcome{Obsid: obsid, Status: "error: " + err.Error()}
	}
	if approved {
		return ExpressOutcome{Obsid: obsid, Status: "already approved"}
	}

	open, err := s.Revisions.HasOpenRevision(obsid)
	if err != nil {
		return ExpressOutcome{Obsid: obsid, Status: "error: " + err.Error()}
	}
	if open {
		return ExpressOutcome{Obsid: obsid, Status: "open revision"}
	}

	data, err := s.Catalog.ObsidData(r.Context(), obsid)
	if err != nil {
		var noResult ocat.ErrNoResult
		if errors.As(err, &noResult) {
			return ExpressOutcome{Obsid: obsid, Status: "unknown obsid"}
		}
		return ExpressOutcome{Obsid: obsid, Status: "error: " + err.Error()}
	}

	plan, err := revision.PlanSignoff(model.KindAsis, nil)
	if err != nil {
		return ExpressOutcome{Obsid: obsid, Status: "error: " + err.Error()}
	}

	now := time.Now()
	notes := revision.BuildNotes(data, nil, nil, s.ObsSS.OnORList(obsid), now)

	rev, err := s.Revisions.CreateSubmission(submission(obsid, model.KindAsis, data, id.UserID, now, notes, plan, nil, nil))
	if err != nil {
		return ExpressOutcome{Obsid: obsid, Status: "error: " + err.Error()}
	}

	msg := notify.ApprovalStateMessage(data, rev.ObsidRev(), model.KindAsis, id.User, s.Config.HTTPAddress)
	if err := s.Notifier.Send(msg); err != nil {
		s.Notifier.SendError(id.Username, err.Error())
	}

	return ExpressOutcome{Obsid: obsid, Status: "approved", ObsidRev: rev.ObsidRev()}
}
