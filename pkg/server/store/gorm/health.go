package gorm

import (
	"gorm.io/gorm"

	"github.com/cxcds/usint-in-go/pkg/server/store"
)

// HealthStore checks connectivity of the revision database.
type HealthStore struct {
	db *gorm.DB
}

var _ store.HealthStore = (*HealthStore)(nil)

func NewHealthStore(db *gorm.DB) *HealthStore {
	return &HealthStore{db: db}
}

// CheckConnectivity runs a trivial query against the revision database.
func (s *HealthStore) CheckConnectivity() error {
	return s.db.Exec("SELECT 1").Error
}
