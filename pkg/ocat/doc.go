// Package ocat reads observation parameter records from the remote catalog
// database. The catalog is read only; every write in the application goes to
// the local revision store instead.
package ocat
