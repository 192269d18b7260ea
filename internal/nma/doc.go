// Package nma reads and rewrites normal-mode analysis reports (.nma) written by
// vibAnalysis. A report is plain text where each mode starts with a header
//
//	Mode 7:  1594.83 cm-1 (IR: 0.00)
//
// followed by contribution lines such as
//
//	+0.612 ( 61.2%) BOND O1 H2
//
// Everything else is passed through untouched.
package nma
