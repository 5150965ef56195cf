// Package config provides configuration management for the Usint service.
//
// This package handles loading application configuration from a YAML file
// and environment variables.
//
// # Configuration Sources
//
//   - Environment variables (primary)
//   - usint.yml (optional, located via USINT_CONFIG_PATH)
//   - Built-in defaults
//
// # Key Configuration Options
//
//   - DATABASE_URL: Revision database connection
//   - USINT_CATALOG_URL: Read-only catalog connection
//   - USINT_BIND_ADDRESS: Server listen address
//   - USINT_OBS_SS_DIR: Observation support file directory
//   - USINT_TEST_NOTIFICATIONS: Log mail instead of sending it
package config
