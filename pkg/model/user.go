package model

// User represents a Usint staff member. Accounts are provisioned out of band
// and matched against the REMOTE_USER identity supplied by the front server.
type User struct {
	ID       int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Username string `gorm:"column:username;uniqueIndex;not null"`
	IsActive bool   `gorm:"column:is_active;not null"`
	Email    string `gorm:"column:email"`
	Groups   string `gorm:"column:groups"`
	FullName string `gorm:"column:full_name"`
}

func (User) TableName() string {
	return "users"
}
