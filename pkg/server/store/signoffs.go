package store

import (
	"errors"

	"github.com/cxcds/usint-in-go/pkg/model"
)

// ErrSignoffNotFound is returned when a signoff lookup matches nothing
var ErrSignoffNotFound = errors.New("signoff not found")

// ErrNotReversible is returned when an undo request falls outside the
// reversibility rules
var ErrNotReversible = errors.New("entry is not reversible")

// Signoff kinds accepted by PerformSignoff. "approve" signs usint and
// additionally records an auto-signed asis revision.
const (
	SignGeneral = "gen"
	SignAcis    = "acis"
	SignAcisSI  = "acis_si"
	SignHrcSI   = "hrc_si"
	SignUsint   = "usint"
	SignApprove = "approve"
)

// RevisionSignoff pairs a revision with its signoff for status listings
type RevisionSignoff struct {
	Revision model.Revision
	Signoff  model.Signoff
}

// StatusOrder selects the ordering of a status listing
type StatusOrder struct {
	// Limit bounds the listing; defaults to 200
	Limit int

	// UserFirst lists revisions by this user before the rest
	UserFirst int64

	// ByObsid orders the most recent Limit revisions by obsid and
	// descending revision number instead of submission order
	ByObsid bool
}

// SignoffsStore abstracts signature workflow operations
type SignoffsStore interface {
	// ByID fetches a signoff with its revision and the submitting user
	ByID(signoffID int64) (*RevisionSignoff, error)

	// PerformSignoff signs one column of a signoff entry. Kind "approve"
	// also creates an auto-signed asis revision for the obsid.
	PerformSignoff(signoffID int64, kind string, userID int64) error

	// PullStatus lists recent revision/signoff pairs in the requested order
	PullStatus(order StatusOrder) ([]RevisionSignoff, error)

	// UndoSignoff reverts a signed column to Pending. Only the signing user
	// may undo, within the reversibility window.
	UndoSignoff(signoffID int64, column string, userID int64, notBefore int64) error

	// RemoveRevision deletes a revision that has no signed columns. Only
	// the submitting user may remove, within the reversibility window.
	RemoveRevision(revisionID int64, userID int64, notBefore int64) error
}
