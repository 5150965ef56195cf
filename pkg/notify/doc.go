// Package notify sends Usint notification mail through the local sendmail
// binary. In test mode messages are printed instead of sent.
package notify
