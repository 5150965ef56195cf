package gorm

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/cxcds/usint-in-go/pkg/model"
	"github.com/cxcds/usint-in-go/pkg/server/store"
)

// Ensure SchedulesStore implements store.SchedulesStore
var _ store.SchedulesStore = (*SchedulesStore)(nil)

// SchedulesStore implements store.SchedulesStore using GORM
type SchedulesStore struct {
	db *gorm.DB
}

// NewSchedulesStore creates a new SchedulesStore
func NewSchedulesStore(db *gorm.DB) *SchedulesStore {
	return &SchedulesStore{db: db}
}

// List returns the sign-up sheet in period order with users preloaded.
func (s *SchedulesStore) List() ([]model.Schedule, error) {
	var entries []model.Schedule
	tx := s.db.Preload("User").Order("order_id").Find(&entries)
	return entries, tx.Error
}

// Assign signs a user up for a period. A nil userID releases the period.
func (s *SchedulesStore) Assign(entryID int64, userID *int64, assignerID int64) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var entry model.Schedule
		if err := tx.First(&entry, entryID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return store.ErrScheduleNotFound
			}
			return err
		}
		entry.UserID = userID
		entry.AssignerID = &assignerID
		return tx.Save(&entry).Error
	})
}

// Split divides a period at the given instant into two adjacent periods,
// renumbering the periods after it.
func (s *SchedulesStore) Split(entryID int64, at time.Time) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var entry model.Schedule
		if err := tx.First(&entry, entryID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return store.ErrScheduleNotFound
			}
			return err
		}
		if !at.After(entry.Start) || !at.Before(entry.Stop) {
			return fmt.Errorf("split instant %s outside period", at.Format("2006-01-02"))
		}

		// Make room in the ordering for the second half
		if err := tx.Model(&model.Schedule{}).
			Where("order_id > ?", entry.OrderID).
			Update("order_id", gorm.Expr("order_id + 1")).Error; err != nil {
			return err
		}

		second := model.Schedule{
			OrderID:    entry.OrderID + 1,
			UserID:     entry.UserID,
			Start:      at,
			Stop:       entry.Stop,
			AssignerID: entry.AssignerID,
		}
		if err := tx.Create(&second).Error; err != nil {
			return err
		}

		entry.Stop = at
		return tx.Save(&entry).Error
	})
}

// Extend appends unclaimed week-long periods until the sheet covers through
// the given date.
func (s *SchedulesStore) Extend(through time.Time) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var last model.Schedule
		err := tx.Order("order_id desc").First(&last).Error
		if err != nil && err != gorm.ErrRecordNotFound {
			return err
		}

		start := last.Stop
		orderID := last.OrderID
		if err == gorm.ErrRecordNotFound {
			// Seed the sheet from the coming Monday
			start = nextWeekday(time.Now().UTC(), time.Monday)
			orderID = 0
		}

		for start.Before(through) {
			stop := start.AddDate(0, 0, 7)
			orderID++
			entry := model.Schedule{
				OrderID: orderID,
				Start:   start,
				Stop:    stop,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
			start = stop
		}
		return nil
	})
}

// nextWeekday returns the next occurrence of the given weekday at midnight,
// today included.
func nextWeekday(t time.Time, day time.Weekday) time.Time {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(day) - int(t.Weekday()) + 7) % 7
	return t.AddDate(0, 0, offset)
}
