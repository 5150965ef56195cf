package gorm

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/cxcds/usint-in-go/pkg/model"
	"github.com/cxcds/usint-in-go/pkg/server/store"
)

// Ensure SignoffsStore implements store.SignoffsStore
var _ store.SignoffsStore = (*SignoffsStore)(nil)

// SignoffsStore implements store.SignoffsStore using GORM
type SignoffsStore struct {
	db *gorm.DB

	// now is swappable for tests
	now func() time.Time
}

// NewSignoffsStore creates a new SignoffsStore
func NewSignoffsStore(db *gorm.DB) *SignoffsStore {
	return &SignoffsStore{db: db, now: time.Now}
}

// ByID fetches a signoff with its revision and the submitting user.
func (s *SignoffsStore) ByID(signoffID int64) (*store.RevisionSignoff, error) {
	var signoff model.Signoff
	if err := s.db.First(&signoff, signoffID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, store.ErrSignoffNotFound
		}
		return nil, err
	}

	var rev model.Revision
	if err := s.db.Preload("User").First(&rev, signoff.RevisionID).Error; err != nil {
		return nil, err
	}
	rev.Signoff = &signoff

	return &store.RevisionSignoff{Revision: rev, Signoff: signoff}, nil
}

func signColumn(kind string) (string, error) {
	switch kind {
	case store.SignGeneral:
		return "general", nil
	case store.SignAcis:
		return "acis", nil
	case store.SignAcisSI:
		return "acis_si", nil
	case store.SignHrcSI:
		return "hrc_si", nil
	case store.SignUsint, store.SignApprove:
		return "usint", nil
	}
	return "", fmt.Errorf("unknown signoff kind %q", kind)
}

// PerformSignoff signs one column of a signoff entry. Kind "approve" also
// records an auto-signed asis revision for the obsid.
func (s *SignoffsStore) PerformSignoff(signoffID int64, kind string, userID int64) error {
	column, err := signColumn(kind)
	if err != nil {
		return err
	}
	epoch := s.now().Unix()

	return s.db.Transaction(func(tx *gorm.DB) error {
		var signoff model.Signoff
		if err := tx.First(&signoff, signoffID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return store.ErrSignoffNotFound
			}
			return err
		}

		signoff.SetSigned(column, userID, epoch)
		if err := tx.Save(&signoff).Error; err != nil {
			return err
		}

		if kind != store.SignApprove {
			return nil
		}

		// Approval also puts the obsid on the approved list via an asis
		// revision signed by the approving user.
		var rev model.Revision
		if err := tx.First(&rev, signoff.RevisionID).Error; err != nil {
			return err
		}
		revNo, err := nextRevisionNumber(tx, rev.Obsid)
		if err != nil {
			return err
		}
		asis := &model.Revision{
			Obsid:          rev.Obsid,
			RevisionNumber: revNo,
			Kind:           model.KindAsis,
			SequenceNumber: rev.SequenceNumber,
			Time:           epoch,
			UserID:         userID,
		}
		if err := tx.Create(asis).Error; err != nil {
			return err
		}
		auto := &model.Signoff{
			RevisionID:    asis.ID,
			GeneralStatus: model.StatusNotRequired,
			AcisStatus:    model.StatusNotRequired,
			AcisSiStatus:  model.StatusNotRequired,
			HrcSiStatus:   model.StatusNotRequired,
			UsintStatus:   model.StatusNotRequired,
		}
		auto.SetSigned("usint", userID, epoch)
		return tx.Create(auto).Error
	})
}

// PullStatus lists recent revision/signoff pairs in the requested order.
func (s *SignoffsStore) PullStatus(order store.StatusOrder) ([]store.RevisionSignoff, error) {
	limit := order.Limit
	if limit == 0 {
		limit = 200
	}

	query := s.db.Model(&model.Revision{}).
		Preload("User").
		Preload("Signoff")

	switch {
	case order.UserFirst != 0:
		// List the target user's revisions first, then the rest in
		// submission order
		query = query.
			Order(fmt.Sprintf("case when user_id = %d then 0 else 1 end", order.UserFirst)).
			Order("id desc").
			Limit(limit)
	case order.ByObsid:
		// Take the most recent LIMIT revisions, then sort those by obsid
		recent := s.db.Model(&model.Revision{}).
			Select("id").
			Order("id desc").
			Limit(limit)
		query = query.
			Where("id IN (?)", recent).
			Order("obsid").
			Order("revision_number desc")
	default:
		query = query.Order("id desc").Limit(limit)
	}

	var revisions []model.Revision
	if tx := query.Find(&revisions); tx.Error != nil {
		return nil, tx.Error
	}

	pairs := make([]store.RevisionSignoff, 0, len(revisions))
	for i := range revisions {
		if revisions[i].Signoff == nil {
			continue
		}
		pairs = append(pairs, store.RevisionSignoff{
			Revision: revisions[i],
			Signoff:  *revisions[i].Signoff,
		})
	}
	return pairs, nil
}

// UndoSignoff reverts a signed column to Pending. Only the signing user may
// undo, within the reversibility window.
func (s *SignoffsStore) UndoSignoff(signoffID int64, column string, userID int64, notBefore int64) error {
	valid := false
	for _, c := range model.SignoffColumns {
		if c == column {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("unknown signoff column %q", column)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var signoff model.Signoff
		if err := tx.First(&signoff, signoffID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return store.ErrSignoffNotFound
			}
			return err
		}

		signer := signoff.Signer(column)
		signedAt := signoff.SignedAt(column)
		if signer == nil || *signer != userID {
			return store.ErrNotReversible
		}
		if signedAt == nil || *signedAt < notBefore {
			return store.ErrNotReversible
		}

		signoff.SetUnsigned(column, model.StatusPending)
		return tx.Save(&signoff).Error
	})
}

// RemoveRevision deletes a revision that has no signed columns. Only the
// submitting user may remove, within the reversibility window.
func (s *SignoffsStore) RemoveRevision(revisionID int64, userID int64, notBefore int64) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var rev model.Revision
		if err := tx.Preload("Signoff").First(&rev, revisionID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return store.ErrRevisionNotFound
			}
			return err
		}

		if rev.UserID != userID || rev.Time < notBefore {
			return store.ErrNotReversible
		}
		if rev.Signoff != nil && rev.Signoff.HasSigned() {
			return store.ErrNotReversible
		}

		if err := tx.Where("revision_id = ?", rev.ID).Delete(&model.Request{}).Error; err != nil {
			return err
		}
		if err := tx.Where("revision_id = ?", rev.ID).Delete(&model.Original{}).Error; err != nil {
			return err
		}
		if err := tx.Where("revision_id = ?", rev.ID).Delete(&model.Signoff{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Revision{}, rev.ID).Error
	})
}
