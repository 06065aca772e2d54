// Package storage defines the persistence interface for index entries and
// the byte-level serialization used by its implementations.
//
// The badger subpackage provides the BadgerDB-backed implementation.
package storage
