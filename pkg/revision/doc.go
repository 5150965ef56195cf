// Package revision holds the submission business rules: which parameter
// changes count as a change, what warnings a revision carries, and which
// signoff columns a submission opens.
package revision
