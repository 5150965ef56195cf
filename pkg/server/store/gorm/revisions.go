package gorm

import (
	"gorm.io/gorm"

	"github.com/cxcds/usint-in-go/pkg/model"
	"github.com/cxcds/usint-in-go/pkg/revision"
	"github.com/cxcds/usint-in-go/pkg/server/store"
)

// Ensure RevisionsStore implements store.RevisionsStore
var _ store.RevisionsStore = (*RevisionsStore)(nil)

// RevisionsStore implements store.RevisionsStore using GORM
type RevisionsStore struct {
	db *gorm.DB
}

// NewRevisionsStore creates a new RevisionsStore
func NewRevisionsStore(db *gorm.DB) *RevisionsStore {
	return &RevisionsStore{db: db}
}

// CreateSubmission records a revision with its signoff, requests, and
// originals in one transaction.
func (s *RevisionsStore) CreateSubmission(sub store.Submission) (*model.Revision, error) {
	var created *model.Revision
	err := s.db.Transaction(func(tx *gorm.DB) error {
		revNo, err := nextRevisionNumber(tx, sub.Obsid)
		if err != nil {
			return err
		}

		rev := &model.Revision{
			Obsid:          sub.Obsid,
			RevisionNumber: revNo,
			Kind:           sub.Kind,
			SequenceNumber: sub.SequenceNumber,
			Time:           sub.Time,
			UserID:         sub.UserID,
			Notes:          sub.Notes,
		}
		if err := tx.Create(rev).Error; err != nil {
			return err
		}

		signoff := &model.Signoff{
			RevisionID:    rev.ID,
			GeneralStatus: sub.General,
			AcisStatus:    sub.Acis,
			AcisSiStatus:  sub.AcisSI,
			HrcSiStatus:   sub.HrcSI,
			UsintStatus:   sub.Usint,
		}
		if sub.AutoSign {
			signoff.SetSigned("usint", sub.UserID, sub.Time)
		}
		if err := tx.Create(signoff).Error; err != nil {
			return err
		}

		for name, value := range sub.Requests {
			param, err := parameterByName(tx, name)
			if err != nil {
				return err
			}
			req := &model.Request{
				RevisionID:  rev.ID,
				ParameterID: param.ID,
				Value:       value,
			}
			if err := tx.Create(req).Error; err != nil {
				return err
			}
		}

		// Null originals are not stored; absence means null.
		for name, value := range sub.Originals {
			if value == nil {
				continue
			}
			param, err := parameterByName(tx, name)
			if err != nil {
				return err
			}
			org := &model.Original{
				RevisionID:  rev.ID,
				ParameterID: param.ID,
				Value:       value,
			}
			if err := tx.Create(org).Error; err != nil {
				return err
			}
		}

		rev.Signoff = signoff
		created = rev
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// NextRevisionNumber returns max(revision_number)+1 for an obsid, starting
// at 1.
func (s *RevisionsStore) NextRevisionNumber(obsid int64) (int64, error) {
	return nextRevisionNumber(s.db, obsid)
}

func nextRevisionNumber(db *gorm.DB, obsid int64) (int64, error) {
	var max *int64
	tx := db.Model(&model.Revision{}).
		Where("obsid = ?", obsid).
		Select("max(revision_number)").
		Scan(&max)
	if tx.Error != nil {
		return 0, tx.Error
	}
	if max == nil {
		return 1, nil
	}
	return *max + 1, nil
}

// Pull lists revisions matching the filter.
func (s *RevisionsStore) Pull(filter store.PullFilter) ([]model.Revision, error) {
	query := s.db.Model(&model.Revision{})
	if filter.Obsid != 0 {
		query = query.Where("obsid = ?", filter.Obsid)
	}
	if filter.Kind != "" {
		query = query.Where("kind = ?", filter.Kind)
	}
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Before != 0 {
		query = query.Where("time <= ?", filter.Before)
	}
	if filter.After != 0 {
		query = query.Where("time >= ?", filter.After)
	}
	if filter.Limit != 0 {
		query = query.Limit(filter.Limit)
	}
	orderBy := filter.OrderBy
	if orderBy == "" {
		// Most recently made revisions first
		orderBy = "id desc"
	}

	var revisions []model.Revision
	tx := query.Order(orderBy).Find(&revisions)
	return revisions, tx.Error
}

// ByObsidRev fetches one revision with its signoff, requests, and originals.
func (s *RevisionsStore) ByObsidRev(obsid, revisionNumber int64) (*model.Revision, error) {
	var rev model.Revision
	tx := s.db.
		Preload("User").
		Preload("Signoff").
		Preload("Requests.Parameter").
		Preload("Originals.Parameter").
		Where("obsid = ? AND revision_number = ?", obsid, revisionNumber).
		First(&rev)
	if tx.Error != nil {
		if tx.Error == gorm.ErrRecordNotFound {
			return nil, store.ErrRevisionNotFound
		}
		return nil, tx.Error
	}
	return &rev, nil
}

// IsApproved walks an obsid's revisions in number order; the last asis or
// remove wins.
func (s *RevisionsStore) IsApproved(obsid int64) (bool, error) {
	var revisions []model.Revision
	tx := s.db.
		Where("obsid = ?", obsid).
		Order("revision_number").
		Find(&revisions)
	if tx.Error != nil {
		return false, tx.Error
	}
	return revision.IsApproved(revisions), nil
}

// HasOpenRevision reports whether any revision of the obsid still has a
// pending signoff column.
func (s *RevisionsStore) HasOpenRevision(obsid int64) (bool, error) {
	var signoffs []model.Signoff
	tx := s.db.
		Joins("JOIN revisions ON revisions.id = signoffs.revision_id").
		Where("revisions.obsid = ?", obsid).
		Find(&signoffs)
	if tx.Error != nil {
		return false, tx.Error
	}
	for i := range signoffs {
		if signoffs[i].IsOpen() {
			return true, nil
		}
	}
	return false, nil
}
