// Package badger implements the storage interfaces on BadgerDB, an embedded
// key-value store requiring no external database server.
package badger
