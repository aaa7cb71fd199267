// Package op defines the catalog of text operations.
//
// Every operation kind pairs a typed configuration with a pure text
// transform. A Registry holds the known kinds; the built-in set covers
// trimming, deduplication, case conversion, sorting, find & replace and
// expression-based line filtering. New kinds are added by registering
// another Operation, nothing else in the module needs to change.
package op
