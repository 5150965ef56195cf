package model

// Signoff statuses. "Not Required" columns never need a signature; an
// undone signature goes back to "Pending".
const (
	StatusSigned      = "Signed"
	StatusNotRequired = "Not Required"
	StatusPending     = "Pending"
)

// SignoffColumns lists the signature columns in review order.
var SignoffColumns = []string{"general", "acis", "acis_si", "hrc_si", "usint"}

// Signoff tracks the per-desk signature state of one revision. Each column
// holds a status, the signing user (nil until signed), and the epoch second
// of the signature.
type Signoff struct {
	ID         int64 `gorm:"column:id;primaryKey;autoIncrement"`
	RevisionID int64 `gorm:"column:revision_id;uniqueIndex;not null"`

	GeneralStatus string `gorm:"column:general_status;not null"`
	GeneralUserID *int64 `gorm:"column:general_signoff_id"`
	GeneralTime   *int64 `gorm:"column:general_time"`

	AcisStatus string `gorm:"column:acis_status;not null"`
	AcisUserID *int64 `gorm:"column:acis_signoff_id"`
	AcisTime   *int64 `gorm:"column:acis_time"`

	AcisSiStatus string `gorm:"column:acis_si_status;not null"`
	AcisSiUserID *int64 `gorm:"column:acis_si_signoff_id"`
	AcisSiTime   *int64 `gorm:"column:acis_si_time"`

	HrcSiStatus string `gorm:"column:hrc_si_status;not null"`
	HrcSiUserID *int64 `gorm:"column:hrc_si_signoff_id"`
	HrcSiTime   *int64 `gorm:"column:hrc_si_time"`

	UsintStatus string `gorm:"column:usint_status;not null"`
	UsintUserID *int64 `gorm:"column:usint_signoff_id"`
	UsintTime   *int64 `gorm:"column:usint_time"`
}

func (Signoff) TableName() string {
	return "signoffs"
}

// Status returns the status of the named signoff column.
func (s *Signoff) Status(column string) string {
	switch column {
	case "general":
		return s.GeneralStatus
	case "acis":
		return s.AcisStatus
	case "acis_si":
		return s.AcisSiStatus
	case "hrc_si":
		return s.HrcSiStatus
	case "usint":
		return s.UsintStatus
	}
	return ""
}

// Signer returns the signing user of the named column, or nil.
func (s *Signoff) Signer(column string) *int64 {
	switch column {
	case "general":
		return s.GeneralUserID
	case "acis":
		return s.AcisUserID
	case "acis_si":
		return s.AcisSiUserID
	case "hrc_si":
		return s.HrcSiUserID
	case "usint":
		return s.UsintUserID
	}
	return nil
}

// SignedAt returns the signature epoch of the named column, or nil.
func (s *Signoff) SignedAt(column string) *int64 {
	switch column {
	case "general":
		return s.GeneralTime
	case "acis":
		return s.AcisTime
	case "acis_si":
		return s.AcisSiTime
	case "hrc_si":
		return s.HrcSiTime
	case "usint":
		return s.UsintTime
	}
	return nil
}

// SetSigned marks the named column as signed by the given user at the given
// epoch second.
func (s *Signoff) SetSigned(column string, userID int64, epoch int64) {
	switch column {
	case "general":
		s.GeneralStatus, s.GeneralUserID, s.GeneralTime = StatusSigned, &userID, &epoch
	case "acis":
		s.AcisStatus, s.AcisUserID, s.AcisTime = StatusSigned, &userID, &epoch
	case "acis_si":
		s.AcisSiStatus, s.AcisSiUserID, s.AcisSiTime = StatusSigned, &userID, &epoch
	case "hrc_si":
		s.HrcSiStatus, s.HrcSiUserID, s.HrcSiTime = StatusSigned, &userID, &epoch
	case "usint":
		s.UsintStatus, s.UsintUserID, s.UsintTime = StatusSigned, &userID, &epoch
	}
}

// SetUnsigned reverts the named column to the given status and drops the
// recorded signature.
func (s *Signoff) SetUnsigned(column, status string) {
	switch column {
	case "general":
		s.GeneralStatus, s.GeneralUserID, s.GeneralTime = status, nil, nil
	case "acis":
		s.AcisStatus, s.AcisUserID, s.AcisTime = status, nil, nil
	case "acis_si":
		s.AcisSiStatus, s.AcisSiUserID, s.AcisSiTime = status, nil, nil
	case "hrc_si":
		s.HrcSiStatus, s.HrcSiUserID, s.HrcSiTime = status, nil, nil
	case "usint":
		s.UsintStatus, s.UsintUserID, s.UsintTime = status, nil, nil
	}
}

// IsOpen reports whether any signoff column still needs a signature.
func (s *Signoff) IsOpen() bool {
	for _, column := range SignoffColumns {
		if s.Status(column) == StatusPending {
			return true
		}
	}
	return false
}

// HasSigned reports whether any signoff column has been signed.
func (s *Signoff) HasSigned() bool {
	for _, column := range SignoffColumns {
		if s.Status(column) == StatusSigned {
			return true
		}
	}
	return false
}
