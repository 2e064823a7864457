// Package store provides persistent storage for the authentication audit trail.
package store

import "sync"

// DBType identifies the database engine behind the store.
type DBType int

// supported database types
const (
	DBTypeSQLite DBType = iota
	DBTypePostgres
)

// RWLocker is a lock used to serialize access where the engine requires it.
// SQLite gets a real mutex (single writer), PostgreSQL a no-op.
type RWLocker interface {
	sync.Locker
	RLock()
	RUnlock()
}

// noopLocker satisfies RWLocker without locking.
type noopLocker struct{}

func (noopLocker) Lock()    {}
func (noopLocker) Unlock()  {}
func (noopLocker) RLock()   {}
func (noopLocker) RUnlock() {}
