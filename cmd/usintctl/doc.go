// Package main implements usintctl, the operator CLI for the Usint service.
//
// Usint lets science staff review, edit, approve, and schedule observation
// parameter records against the read-only observation catalog, keeping a
// full revision history of every change in a local database.
//
// # Architecture
//
// The code is organized into several packages:
//
//   - pkg/server: HTTP server and routing
//   - pkg/server/endpoints: REST API endpoint handlers
//   - pkg/server/store: Revision database access
//   - pkg/revision: Revision diffing, notes, and signoff planning
//   - pkg/params: Parameter selections, coercion, and comparison
//   - pkg/ocat: Read-only observation catalog access
//   - pkg/obsss: Supplemental schedule support files
//   - pkg/notify: Signoff and approval notifications
//   - pkg/model: Database models
//   - pkg/db: Database connection utilities
//   - pkg/config: Configuration management
//
// # Quick Start
//
//	# Run database migrations
//	usintctl db migrate
//
//	# Seed the parameter catalog
//	usintctl parameter seed
//
//	# Create a staff account
//	usintctl user create --username jdoe --email jdoe@example.edu
//
//	# Start the server
//	usintctl server
//
// # Environment Variables
//
//   - DATABASE_URL: PostgreSQL connection string for the revision database
//   - USINT_CATALOG_URL: PostgreSQL connection string for the observation catalog
//   - USINT_OBS_SS_DIR: Directory holding the OR list and planned roll files
//   - USINT_TEST_NOTIFICATIONS: When true, print mail to stdout instead of sending
//   - USINT_LOG_LEVEL: Log level (debug enables SQL logging)
package main
