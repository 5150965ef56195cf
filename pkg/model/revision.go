package model

import "fmt"

// Revision kinds. A "norm" revision carries parameter change requests; the
// others adjust the approval state of an obsid without editing parameters.
const (
	KindNorm   = "norm"
	KindAsis   = "asis"
	KindRemove = "remove"
	KindClone  = "clone"
)

// Revision is one submitted edit of an observation, identified by
// obsid.revision_number. Revision numbers count up from one per obsid.
type Revision struct {
	ID             int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Obsid          int64  `gorm:"column:obsid;not null;index:idx_revisions_obsid_rev,unique"`
	RevisionNumber int64  `gorm:"column:revision_number;not null;index:idx_revisions_obsid_rev,unique"`
	Kind           string `gorm:"column:kind;not null"`
	SequenceNumber int64  `gorm:"column:sequence_number;not null"`
	// Time is the epoch second at which the revision was submitted.
	Time   int64 `gorm:"column:time;not null"`
	UserID int64 `gorm:"column:user_id;not null"`
	// Notes holds JSON-encoded submission warnings (target name change,
	// large coordinate shift, and so on). Nil when nothing was flagged.
	Notes *string `gorm:"column:notes"`

	User      *User      `gorm:"foreignKey:UserID"`
	Signoff   *Signoff   `gorm:"foreignKey:RevisionID;constraint:OnDelete:CASCADE"`
	Requests  []Request  `gorm:"foreignKey:RevisionID;constraint:OnDelete:CASCADE"`
	Originals []Original `gorm:"foreignKey:RevisionID;constraint:OnDelete:CASCADE"`
}

func (Revision) TableName() string {
	return "revisions"
}

// ObsidRev renders the canonical "<obsid>.<revision>" identifier.
func (r Revision) ObsidRev() string {
	return fmt.Sprintf("%d.%d", r.Obsid, r.RevisionNumber)
}
