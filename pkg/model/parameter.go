package model

// Parameter is one entry of the parameter catalog: the set of observation
// parameters the application knows how to store and display.
type Parameter struct {
	ID           int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Name         string `gorm:"column:name;uniqueIndex;not null"`
	IsModifiable bool   `gorm:"column:is_modifiable;not null"`
	DataType     string `gorm:"column:data_type;not null"`
	Description  string `gorm:"column:description;not null"`
}

func (Parameter) TableName() string {
	return "parameters"
}
