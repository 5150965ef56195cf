package store

import (
	"errors"

	"github.com/cxcds/usint-in-go/pkg/model"
)

// ErrParameterNotFound is returned when a parameter name is not in the
// catalog
var ErrParameterNotFound = errors.New("parameter not found")

// ParametersStore abstracts the parameter catalog
type ParametersStore interface {
	// ByName retrieves a parameter by name
	ByName(name string) (*model.Parameter, error)

	// Seed inserts any missing catalog entries
	Seed(parameters []model.Parameter) error
}
