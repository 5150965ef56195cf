package endpoints

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cxcds/usint-in-go/pkg/notify"
	"github.com/cxcds/usint-in-go/pkg/server"
	"github.com/cxcds/usint-in-go/pkg/server/middleware"
	"github.com/cxcds/usint-in-go/pkg/server/store"
)

// ScheduleRow is one period of the TOO duty sign-up sheet.
type ScheduleRow struct {
	ID       int64  `json:"id"`
	OrderID  int64  `json:"order_id"`
	Start    string `json:"start"`
	Stop     string `json:"stop"`
	Username string `json:"username,omitempty"`
	FullName string `json:"full_name,omitempty"`
}

// AssignRequest signs a user up for a period; a null user releases it.
type AssignRequest struct {
	EntryID int64  `json:"entry_id"`
	UserID  *int64 `json:"user_id"`
}

// SplitRequest divides a period in two at the given date.
type SplitRequest struct {
	EntryID int64  `json:"entry_id"`
	At      string `json:"at"`
}

// ExtendRequest appends unclaimed periods through the given date.
type ExtendRequest struct {
	Through string `json:"through"`
}

const scheduleDateFormat = "2006-01-02"

func RegisterSchedulerEndpoints(s *server.Server) {
	auth := middleware.NewRemoteUserAuthenticator(s.Users)

	router := s.Router.PathPrefix("/scheduler").Subrouter()
	router.Use(auth.Middleware)

	router.HandleFunc("", handleListSchedule(s)).Methods("GET")
	router.HandleFunc("/assign", handleAssignSchedule(s)).Methods("POST")
	router.HandleFunc("/split", handleSplitSchedule(s)).Methods("POST")
	router.HandleFunc("/extend", handleExtendSchedule(s)).Methods("POST")
}

func handleListSchedule(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := s.Schedules.List()
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		rows := make([]ScheduleRow, 0, len(entries))
		for i := range entries {
			row := ScheduleRow{
				ID:      entries[i].ID,
				OrderID: entries[i].OrderID,
				Start:   entries[i].Start.Format(scheduleDateFormat),
				Stop:    entries[i].Stop.Format(scheduleDateFormat),
			}
			if entries[i].User != nil {
				row.Username = entries[i].User.Username
				row.FullName = entries[i].User.FullName
			}
			rows = append(rows, row)
		}

		respondWithJSON(w, http.StatusOK, rows)
	}
}

func handleAssignSchedule(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		var req AssignRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Malformed request body")
			return
		}

		if err := s.Schedules.Assign(req.EntryID, req.UserID, id.UserID); err != nil {
			if err == store.ErrScheduleNotFound {
				respondWithError(w, http.StatusNotFound, err.Error())
				return
			}
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		if req.UserID != nil {
			notifyDutyAssignment(s, req.EntryID, *req.UserID, id.Username)
		}

		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"entry_id": req.EntryID,
			"user_id":  req.UserID,
		})
	}
}

// notifyDutyAssignment mails the newly signed-up duty officer. Lookup or
// delivery trouble goes to the admins without failing the request.
func notifyDutyAssignment(s *server.Server, entryID, userID int64, assigner string) {
	user, err := s.Users.ByID(userID)
	if err != nil {
		s.Notifier.SendError(assigner, err.Error())
		return
	}

	entries, err := s.Schedules.List()
	if err != nil {
		s.Notifier.SendError(assigner, err.Error())
		return
	}
	period := ""
	for i := range entries {
		if entries[i].ID == entryID {
			period = fmt.Sprintf("%s to %s",
				entries[i].Start.Format(scheduleDateFormat),
				entries[i].Stop.Format(scheduleDateFormat))
			break
		}
	}

	subject := "TOO Duty Sign-Up"
	body := fmt.Sprintf("You have been signed up for TOO duty (%s) by %s.\n", period, assigner)
	if err := s.Notifier.Send(notify.NewMessage(subject, body, []string{user.Email})); err != nil {
		s.Notifier.SendError(assigner, err.Error())
	}
}

func handleSplitSchedule(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireIdentity(w, r); !ok {
			return
		}

		var req SplitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Malformed request body")
			return
		}
		at, err := time.Parse(scheduleDateFormat, req.At)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Malformed split date")
			return
		}

		if err := s.Schedules.Split(req.EntryID, at); err != nil {
			if err == store.ErrScheduleNotFound {
				respondWithError(w, http.StatusNotFound, err.Error())
				return
			}
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"entry_id": req.EntryID,
			"split_at": req.At,
		})
	}
}

func handleExtendSchedule(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireIdentity(w, r); !ok {
			return
		}

		var req ExtendRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Malformed request body")
			return
		}
		through, err := time.Parse(scheduleDateFormat, req.Through)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Malformed date")
			return
		}

		if err := s.Schedules.Extend(through); err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"through": req.Through,
		})
	}
}
