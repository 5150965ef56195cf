package model

// Original records the catalog value of a parameter at the moment a revision
// was submitted. Null originals are not stored; absence of a parameter for a
// revision means its original value was null.
type Original struct {
	ID          int64   `gorm:"column:id;primaryKey;autoIncrement"`
	RevisionID  int64   `gorm:"column:revision_id;not null"`
	ParameterID int64   `gorm:"column:parameter_id;not null"`
	Value       *string `gorm:"column:value"`

	Parameter *Parameter `gorm:"foreignKey:ParameterID"`
}

func (Original) TableName() string {
	return "originals"
}
