// Package store provides storage abstractions for the Usint server.
//
// This package defines interfaces for revision database operations, allowing
// the server endpoints to be decoupled from the specific database
// implementation. This enables easier testing with mocks and potential
// support for different storage backends.
//
// # Available Stores
//
//   - UsersStore: staff account lookup and provisioning
//   - RevisionsStore: revision submission and retrieval
//   - SignoffsStore: signature workflow operations
//   - SchedulesStore: TOO duty sign-up sheet
//   - ParametersStore: the parameter catalog
//   - HealthStore: connectivity checks
//
// # Usage
//
//	users := gorm.NewUsersStore(db)
//	user, err := users.ByUsername("mta")
//	if err != nil {
//	    if errors.Is(err, store.ErrUserNotFound) {
//	        // Handle not found
//	    }
//	}
package store
