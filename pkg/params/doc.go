// Package params holds the value-shaping helpers shared across the
// application: null and datetime coercion, approximate comparison for
// revision diffing, rank table reorientation, obsid list parsing, RA/Dec
// format conversion, and the embedded parameter selection sets.
package params
