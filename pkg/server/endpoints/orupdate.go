package endpoints

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/cxcds/usint-in-go/pkg/identity"
	"github.com/cxcds/usint-in-go/pkg/notify"
	"github.com/cxcds/usint-in-go/pkg/params"
	"github.com/cxcds/usint-in-go/pkg/revision"
	"github.com/cxcds/usint-in-go/pkg/server"
	"github.com/cxcds/usint-in-go/pkg/server/middleware"
	"github.com/cxcds/usint-in-go/pkg/server/store"
)

// Closed revisions stay on the status page for this long, matching the
// window during which a signoff can still be undone.
const reversibleWindow = 36 * time.Hour

// StatusRow is one entry of the parameter status page.
type StatusRow struct {
	ObsidRev       string         `json:"obsidrev"`
	Obsid          int64          `json:"obsid"`
	RevisionNumber int64          `json:"revision_number"`
	Kind           string         `json:"kind"`
	SequenceNumber int64          `json:"sequence_number"`
	Username       string         `json:"username"`
	Time           int64          `json:"time"`
	Notes          revision.Notes `json:"notes"`
	Signoff        SignoffColumns `json:"signoff"`
	Color          string         `json:"color,omitempty"`
}

// SignoffColumns is the per-desk signature state of a status row.
type SignoffColumns struct {
	General string `json:"general"`
	Acis    string `json:"acis"`
	AcisSI  string `json:"acis_si"`
	HrcSI   string `json:"hrc_si"`
	Usint   string `json:"usint"`
}

// StatusResponse splits the status page into open and recently closed rows.
type StatusResponse struct {
	Open   []StatusRow `json:"open"`
	Closed []StatusRow `json:"closed"`
}

func RegisterOrupdateEndpoints(s *server.Server) {
	auth := middleware.NewRemoteUserAuthenticator(s.Users)

	router := s.Router.PathPrefix("/orupdate").Subrouter()
	router.Use(auth.Middleware)

	router.HandleFunc("", handleStatusPage(s)).Methods("GET")
	router.HandleFunc("/{signoffID}/{kind}", handlePerformSignoff(s)).Methods("POST")
}

func handleStatusPage(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		order := store.StatusOrder{}
		if limit := r.URL.Query().Get("limit"); limit != "" {
			n, err := strconv.Atoi(limit)
			if err != nil || n <= 0 {
				respondWithError(w, http.StatusBadRequest, "Malformed limit")
				return
			}
			order.Limit = n
		}

		switch r.URL.Query().Get("order") {
		case "", "submission":
		case "obsid":
			order.ByObsid = true
		case "user":
			userID := id.UserID
			if username := r.URL.Query().Get("username"); username != "" {
				user, err := s.Users.ByUsername(username)
				if err != nil {
					respondWithError(w, http.StatusNotFound, "Unknown user")
					return
				}
				userID = user.ID
			}
			order.UserFirst = userID
		default:
			respondWithError(w, http.StatusBadRequest, "Unknown ordering")
			return
		}

		pairs, err := s.Signoffs.PullStatus(order)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		respondWithJSON(w, http.StatusOK, statusResponse(pairs, time.Now()))
	}
}

// statusResponse splits the pairs into open and recently closed rows and
// assigns a color to every obsid carrying more than one open revision.
func statusResponse(pairs []store.RevisionSignoff, now time.Time) StatusResponse {
	cutoff := now.Add(-reversibleWindow).Unix()

	resp := StatusResponse{
		Open:   []StatusRow{},
		Closed: []StatusRow{},
	}

	openCount := make(map[int64]int)
	colors := make(map[int64]string)
	nextColor := 0

	for _, pair := range pairs {
		if !pair.Signoff.IsOpen() {
			continue
		}
		openCount[pair.Revision.Obsid]++
		// The color appears once an obsid's second open revision shows up
		if openCount[pair.Revision.Obsid] == 2 {
			colors[pair.Revision.Obsid] = params.ColorByIndex(nextColor)
			nextColor++
		}
	}

	for _, pair := range pairs {
		row := statusRow(pair)
		if pair.Signoff.IsOpen() {
			row.Color = colors[pair.Revision.Obsid]
			resp.Open = append(resp.Open, row)
			continue
		}
		if pair.Revision.Time >= cutoff {
			resp.Closed = append(resp.Closed, row)
		}
	}
	return resp
}

func statusRow(pair store.RevisionSignoff) StatusRow {
	rev := pair.Revision
	row := StatusRow{
		ObsidRev:       rev.ObsidRev(),
		Obsid:          rev.Obsid,
		RevisionNumber: rev.RevisionNumber,
		Kind:           rev.Kind,
		SequenceNumber: rev.SequenceNumber,
		Time:           rev.Time,
		Notes:          revision.DecodeNotes(rev.Notes),
		Signoff: SignoffColumns{
			General: pair.Signoff.GeneralStatus,
			Acis:    pair.Signoff.AcisStatus,
			AcisSI:  pair.Signoff.AcisSiStatus,
			HrcSI:   pair.Signoff.HrcSiStatus,
			Usint:   pair.Signoff.UsintStatus,
		},
	}
	if rev.User != nil {
		row.Username = rev.User.Username
	}
	return row
}

func handlePerformSignoff(s *server.Server) http.HandlerFunc {
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
		kind := vars["kind"]
		switch kind {
		case store.SignGeneral, store.SignAcis, store.SignAcisSI, store.SignHrcSI,
			store.SignUsint, store.SignApprove:
		default:
			respondWithError(w, http.StatusBadRequest, "Unknown signoff kind")
			return
		}

		if err := s.Signoffs.PerformSignoff(signoffID, kind, id.UserID); err != nil {
			if err == store.ErrSignoffNotFound {
				respondWithError(w, http.StatusNotFound, err.Error())
				return
			}
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		sendSignoffMail(s, r, signoffID, id)

		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"signoff_id": signoffID,
			"kind":       kind,
			"signed_by":  id.Username,
		})
	}
}

// sendSignoffMail routes the TOO/DDT notification chain after a signoff.
// Mail trouble is reported to the admins without failing the request.
func sendSignoffMail(s *server.Server, r *http.Request, signoffID int64, id *identity.Identity) {
	pair, err := s.Signoffs.ByID(signoffID)
	if err != nil {
		s.Notifier.SendError(id.Username, err.Error())
		return
	}

	data, err := s.Catalog.ObsidData(r.Context(), pair.Revision.Obsid)
	if err != nil {
		s.Notifier.SendError(id.Username, err.Error())
		return
	}

	msg := notify.SignoffMessage(data, &pair.Revision, &pair.Signoff, id.User, s.Config.HTTPAddress)
	if err := s.Notifier.Send(msg); err != nil {
		s.Notifier.SendError(id.Username, err.Error())
	}
}
