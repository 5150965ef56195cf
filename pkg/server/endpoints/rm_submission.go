package endpoints

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/cxcds/usint-in-go/pkg/model"
	"github.com/cxcds/usint-in-go/pkg/server"
	"github.com/cxcds/usint-in-go/pkg/server/middleware"
	"github.com/cxcds/usint-in-go/pkg/server/store"
)

// ReversibleRow lists what the current user can still take back on one
// revision: their own signoff columns, and the whole revision while nothing
// on it is signed.
type ReversibleRow struct {
	ObsidRev   string   `json:"obsidrev"`
	RevisionID int64    `json:"revision_id"`
	SignoffID  int64    `json:"signoff_id"`
	Removable  bool     `json:"removable"`
	Columns    []string `json:"columns"`
}

func RegisterRmSubmissionEndpoints(s *server.Server) {
	auth := middleware.NewRemoteUserAuthenticator(s.Users)

	router := s.Router.PathPrefix("/rm_submission").Subrouter()
	router.Use(auth.Middleware)

	router.HandleFunc("", handleListReversible(s)).Methods("GET")
	router.HandleFunc("/revision/{revisionID}", handleRemoveRevision(s)).Methods("POST")
	router.HandleFunc("/signoff/{signoffID}/{column}", handleUndoSignoff(s)).Methods("POST")
}

func handleListReversible(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		pairs, err := s.Signoffs.PullStatus(store.StatusOrder{})
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		cutoff := time.Now().Add(-reversibleWindow).Unix()
		rows := []ReversibleRow{}
		for _, pair := range pairs {
			row := reversibleRow(pair, id.UserID, cutoff)
			if row.Removable || len(row.Columns) > 0 {
				rows = append(rows, row)
			}
		}

		respondWithJSON(w, http.StatusOK, rows)
	}
}

func reversibleRow(pair store.RevisionSignoff, userID, cutoff int64) ReversibleRow {
	row := ReversibleRow{
		ObsidRev:   pair.Revision.ObsidRev(),
		RevisionID: pair.Revision.ID,
		SignoffID:  pair.Signoff.ID,
		Columns:    []string{},
	}

	// The submitter may withdraw the revision while it is fresh and
	// nothing on it has been signed
	if pair.Revision.UserID == userID &&
		pair.Revision.Time >= cutoff &&
		!pair.Signoff.HasSigned() {
		row.Removable = true
	}

	for _, column := range model.SignoffColumns {
		if pair.Signoff.Status(column) != model.StatusSigned {
			continue
		}
		signer := pair.Signoff.Signer(column)
		signedAt := pair.Signoff.SignedAt(column)
		if signer != nil && *signer == userID && signedAt != nil && *signedAt >= cutoff {
			row.Columns = append(row.Columns, column)
		}
	}
	return row
}

func handleRemoveRevision(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		revisionID, err := strconv.ParseInt(mux.Vars(r)["revisionID"], 10, 64)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Malformed revision id")
			return
		}

		cutoff := time.Now().Add(-reversibleWindow).Unix()
		if err := s.Signoffs.RemoveRevision(revisionID, id.UserID, cutoff); err != nil {
			switch err {
			case store.ErrRevisionNotFound:
				respondWithError(w, http.StatusNotFound, err.Error())
			case store.ErrNotReversible:
				respondWithError(w, http.StatusForbidden, err.Error())
			default:
				respondWithError(w, http.StatusInternalServerError, err.Error())
			}
			return
		}

		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"revision_id": revisionID,
			"removed":     true,
		})
	}
}

func handleUndoSignoff(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		vars := mux.Vars(r)
		signoffID, err := strconv.ParseInt(vars["signoffID"], 10, 64)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Malformed signoff id")
			return
		}
		column := vars["column"]

		cutoff := time.Now().Add(-reversibleWindow).Unix()
		if err := s.Signoffs.UndoSignoff(signoffID, column, id.UserID, cutoff); err != nil {
			switch err {
			case store.ErrSignoffNotFound:
				respondWithError(w, http.StatusNotFound, err.Error())
			case store.ErrNotReversible:
				respondWithError(w, http.StatusForbidden, err.Error())
			default:
				respondWithError(w, http.StatusBadRequest, err.Error())
			}
			return
		}

		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"signoff_id": signoffID,
			"column":     column,
			"undone":     true,
		})
	}
}
