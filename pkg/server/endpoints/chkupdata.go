package endpoints

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/cxcds/usint-in-go/pkg/params"
	"github.com/cxcds/usint-in-go/pkg/revision"
	"github.com/cxcds/usint-in-go/pkg/server"
	"github.com/cxcds/usint-in-go/pkg/server/middleware"
	"github.com/cxcds/usint-in-go/pkg/server/store"
)

// ParameterChange is one original/requested pair of a revision detail.
type ParameterChange struct {
	Name      string      `json:"name"`
	Label     string      `json:"label"`
	Original  interface{} `json:"original"`
	Requested interface{} `json:"requested"`
}

// RevisionDetail is the full record of one stored revision.
type RevisionDetail struct {
	ObsidRev       string            `json:"obsidrev"`
	Obsid          int64             `json:"obsid"`
	RevisionNumber int64             `json:"revision_number"`
	Kind           string            `json:"kind"`
	SequenceNumber int64             `json:"sequence_number"`
	Username       string            `json:"username"`
	Time           int64             `json:"time"`
	Notes          revision.Notes    `json:"notes"`
	Signoff        SignoffColumns    `json:"signoff"`
	Parameters     []ParameterChange `json:"parameters"`
}

func RegisterChkupdataEndpoints(s *server.Server) {
	auth := middleware.NewRemoteUserAuthenticator(s.Users)

	router := s.Router.PathPrefix("/chkupdata").Subrouter()
	router.Use(auth.Middleware)

	router.HandleFunc("/{obsidrev}", handleRevisionDetail(s)).Methods("GET")
}

func handleRevisionDetail(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		obsid, revNo, ok := parseObsidRev(mux.Vars(r)["obsidrev"])
		if !ok {
			respondWithError(w, http.StatusBadRequest, "Malformed obsid.rev identifier")
			return
		}

		rev, err := s.Revisions.ByObsidRev(obsid, revNo)
		if err != nil {
			if err == store.ErrRevisionNotFound {
				respondWithError(w, http.StatusNotFound, err.Error())
				return
			}
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		detail := RevisionDetail{
			ObsidRev:       rev.ObsidRev(),
			Obsid:          rev.Obsid,
			RevisionNumber: rev.RevisionNumber,
			Kind:           rev.Kind,
			SequenceNumber: rev.SequenceNumber,
			Time:           rev.Time,
			Notes:          revision.DecodeNotes(rev.Notes),
			Parameters:     []ParameterChange{},
		}
		if rev.User != nil {
			detail.Username = rev.User.Username
		}
		if rev.Signoff != nil {
			detail.Signoff = SignoffColumns{
				General: rev.Signoff.GeneralStatus,
				Acis:    rev.Signoff.AcisStatus,
				AcisSI:  rev.Signoff.AcisSiStatus,
				HrcSI:   rev.Signoff.HrcSiStatus,
				Usint:   rev.Signoff.UsintStatus,
			}
		}

		// Absent originals mean the catalog value was null
		originals := make(map[int64]*string, len(rev.Originals))
		for i := range rev.Originals {
			originals[rev.Originals[i].ParameterID] = rev.Originals[i].Value
		}

		for i := range rev.Requests {
			req := rev.Requests[i]
			if req.Parameter == nil {
				continue
			}
			detail.Parameters = append(detail.Parameters, ParameterChange{
				Name:      req.Parameter.Name,
				Label:     params.Label(req.Parameter.Name),
				Original:  params.DecodeJSON(originals[req.ParameterID]),
				Requested: params.DecodeJSON(req.Value),
			})
		}
		sort.Slice(detail.Parameters, func(i, j int) bool {
			return detail.Parameters[i].Name < detail.Parameters[j].Name
		})

		respondWithJSON(w, http.StatusOK, detail)
	}
}

func parseObsidRev(raw string) (obsid, revNo int64, ok bool) {
	parts := strings.SplitN(raw, ".", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	obsid, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || obsid <= 0 {
		return 0, 0, false
	}
	revNo, err = strconv.ParseInt(parts[1], 10, 64)
	if err != nil || revNo <= 0 {
		return 0, 0, false
	}
	return obsid, revNo, true
}
