// Package model defines the GORM models for the local usint revision
// database: users, revisions, signoffs, the parameter catalog, requested and
// original values, and the TOO duty schedule.
package model
