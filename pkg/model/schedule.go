package model

import "time"

// Schedule is one period of the TOO duty sign-up sheet. OrderID is a mutable
// ordering key so adjacent periods can be fetched and re-stitched when a
// period is split or reassigned. UserID is nil for an unclaimed period.
type Schedule struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID    int64     `gorm:"column:order_id"`
	UserID     *int64    `gorm:"column:user_id"`
	Start      time.Time `gorm:"column:start;not null"`
	Stop       time.Time `gorm:"column:stop;not null"`
	AssignerID *int64    `gorm:"column:assigner_id"`

	User *User `gorm:"foreignKey:UserID"`
}

func (Schedule) TableName() string {
	return "schedules"
}
