package store

import (
	"errors"
	"time"

	"github.com/cxcds/usint-in-go/pkg/model"
)

// ErrScheduleNotFound is returned when a schedule lookup matches nothing
var ErrScheduleNotFound = errors.New("schedule entry not found")

// SchedulesStore abstracts the TOO duty sign-up sheet
type SchedulesStore interface {
	// List returns the sheet in period order with users preloaded
	List() ([]model.Schedule, error)

	// Assign signs a user up for a period. A nil userID releases the
	// period.
	Assign(entryID int64, userID *int64, assignerID int64) error

	// Split divides a period at the given instant into two adjacent
	// periods, renumbering the periods after it
	Split(entryID int64, at time.Time) error

	// Extend appends unclaimed week-long periods until the sheet covers
	// through the given date
	Extend(through time.Time) error
}
