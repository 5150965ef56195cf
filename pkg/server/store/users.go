package store

import (
	"errors"

	"github.com/cxcds/usint-in-go/pkg/model"
)

// ErrUserNotFound is returned when a user lookup matches nothing
var ErrUserNotFound = errors.New("user not found")

// UsersStore abstracts staff account storage operations
type UsersStore interface {
	// ByUsername retrieves a user by login name
	ByUsername(username string) (*model.User, error)

	// ByID retrieves a user by primary key
	ByID(id int64) (*model.User, error)

	// Create provisions a new account
	Create(user *model.User) error

	// List returns all accounts, active first
	List() ([]model.User, error)
}
