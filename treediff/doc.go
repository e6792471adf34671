// Package treediff compares two serialization trees and lists their
// differences as changes at element paths.
//
// Children are aligned the way a text diff aligns lines: each child is
// summarized by its name and name attribute and the two summary sequences
// are diffed, so inserting a layout in front of others reports one added
// layout rather than a change to every layout after it.
package treediff
