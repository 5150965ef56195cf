package gorm

import (
	"gorm.io/gorm"

	"github.com/cxcds/usint-in-go/pkg/model"
	"github.com/cxcds/usint-in-go/pkg/server/store"
)

// Ensure ParametersStore implements store.ParametersStore
var _ store.ParametersStore = (*ParametersStore)(nil)

// ParametersStore implements store.ParametersStore using GORM
type ParametersStore struct {
	db *gorm.DB
}

// NewParametersStore creates a new ParametersStore
func NewParametersStore(db *gorm.DB) *ParametersStore {
	return &ParametersStore{db: db}
}

// ByName retrieves a parameter by name.
func (s *ParametersStore) ByName(name string) (*model.Parameter, error) {
	return parameterByName(s.db, name)
}

func parameterByName(db *gorm.DB, name string) (*model.Parameter, error) {
	var param model.Parameter
	tx := db.Where("name = ?", name).First(&param)
	if tx.Error != nil {
		if tx.Error == gorm.ErrRecordNotFound {
			return nil, store.ErrParameterNotFound
		}
		return nil, tx.Error
	}
	return &param, nil
}

// Seed inserts any missing catalog entries.
func (s *ParametersStore) Seed(parameters []model.Parameter) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for i := range parameters {
			var existing model.Parameter
			err := tx.Where("name = ?", parameters[i].Name).First(&existing).Error
			if err == nil {
				continue
			}
			if err != gorm.ErrRecordNotFound {
				return err
			}
			if err := tx.Create(&parameters[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
