package gorm

import (
	"gorm.io/gorm"

	"github.com/cxcds/usint-in-go/pkg/model"
	"github.com/cxcds/usint-in-go/pkg/server/store"
)

// Ensure UsersStore implements store.UsersStore
var _ store.UsersStore = (*UsersStore)(nil)

// UsersStore implements store.UsersStore using GORM
type UsersStore struct {
	db *gorm.DB
}

// NewUsersStore creates a new UsersStore
func NewUsersStore(db *gorm.DB) *UsersStore {
	return &UsersStore{db: db}
}

// ByUsername retrieves a user by login name.
func (s *UsersStore) ByUsername(username string) (*model.User, error) {
	var user model.User
	tx := s.db.Where("username = ?", username).First(&user)
	if tx.Error != nil {
		if tx.Error == gorm.ErrRecordNotFound {
			return nil, store.ErrUserNotFound
		}
		return nil, tx.Error
	}
	return &user, nil
}

// ByID retrieves a user by primary key.
func (s *UsersStore) ByID(id int64) (*model.User, error) {
	var user model.User
	tx := s.db.First(&user, id)
	if tx.Error != nil {
		if tx.Error == gorm.ErrRecordNotFound {
			return nil, store.ErrUserNotFound
		}
		return nil, tx.Error
	}
	return &user, nil
}

// Create provisions a new account.
func (s *UsersStore) Create(user *model.User) error {
	return s.db.Create(user).Error
}

// List returns all accounts, active first, then by username.
func (s *UsersStore) List() ([]model.User, error) {
	var users []model.User
	tx := s.db.Order("is_active desc, username").Find(&users)
	return users, tx.Error
}
