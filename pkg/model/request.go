package model

// Request is one requested parameter change attached to a revision. Values
// are stored JSON-encoded; a nil value requests clearing the parameter.
type Request struct {
	ID          int64   `gorm:"column:id;primaryKey;autoIncrement"`
	RevisionID  int64   `gorm:"column:revision_id;not null"`
	ParameterID int64   `gorm:"column:parameter_id;not null"`
	Value       *string `gorm:"column:value"`

	Parameter *Parameter `gorm:"foreignKey:ParameterID"`
}

func (Request) TableName() string {
	return "requests"
}
