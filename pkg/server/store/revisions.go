package store

import (
	"errors"

	"github.com/cxcds/usint-in-go/pkg/model"
)

// ErrRevisionNotFound is returned when a revision lookup matches nothing
var ErrRevisionNotFound = errors.New("revision not found")

// Submission is everything needed to record one revision: the revision
// fields themselves plus the changed-parameter dictionaries keyed by
// parameter name, already JSON-encoded for storage.
type Submission struct {
	Obsid          int64
	Kind           string
	SequenceNumber int64
	UserID         int64
	Time           int64
	Notes          *string

	// Signoff statuses for each column
	General string
	Acis    string
	AcisSI  string
	HrcSI   string
	Usint   string

	// AutoSign signs the usint column with the submitting user
	AutoSign bool

	// Requested and original values by parameter name. Nil original values
	// are dropped; absence means null.
	Requests  map[string]*string
	Originals map[string]*string
}

// PullFilter narrows and orders a revision listing. Zero values are
// ignored.
type PullFilter struct {
	Obsid  int64
	Kind   string
	UserID int64

	// Before and After bound the submission epoch, inclusive
	Before int64
	After  int64

	Limit int

	// OrderBy is a SQL ordering expression; defaults to "id desc"
	OrderBy string
}

// RevisionsStore abstracts revision storage operations
type RevisionsStore interface {
	// CreateSubmission records a revision with its signoff, requests, and
	// originals in one transaction
	CreateSubmission(sub Submission) (*model.Revision, error)

	// NextRevisionNumber returns max(revision_number)+1 for an obsid,
	// starting at 1
	NextRevisionNumber(obsid int64) (int64, error)

	// Pull lists revisions matching the filter
	Pull(filter PullFilter) ([]model.Revision, error)

	// ByObsidRev fetches one revision with its signoff, requests, and
	// originals, including parameter names
	ByObsidRev(obsid, revisionNumber int64) (*model.Revision, error)

	// IsApproved walks an obsid's revisions and reports its approval state
	IsApproved(obsid int64) (bool, error)

	// HasOpenRevision reports whether any revision of the obsid still has a
	// pending signoff column
	HasOpenRevision(obsid int64) (bool, error)
}
