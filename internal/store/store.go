// internal/store/store.go
//
// Persistence collaborators for the pantry cache.
//
// Context
// -------
// The cache only needs five verbs: fetch-all, insert, update, delete,
// and delete-all.  Three backends implement them: MySQL (hosted
// database), Badger (embedded key-value), and a CSV flat file (the
// simplest thing that survives a restart).  The backend is chosen by
// config at boot; the cache never knows which one it is talking to.
//
// Every backend maps driver failures onto pantry.ErrUnavailable and
// missing rows onto pantry.ErrNotFound, so error handling upstream is
// uniform.
package store

import (
	"fmt"

	"github.com/yanizio/larder/internal/config"
	"github.com/yanizio/larder/internal/pantry"
)

// Store extends the cache's collaborator contract with lifecycle
// management.  Callers Close() at shutdown.
type Store interface {
	pantry.Store
	Close() error
}

// Open constructs the backend named by cfg.Store.Driver.
func Open(cfg *config.Config) (Store, error) {
	switch cfg.Store.Driver {
	case "mysql":
		return OpenMySQL(cfg.Store.DSN)
	case "badger":
		return OpenBadger(cfg.Store.Path)
	case "csv":
		return OpenCSV(cfg.Store.Path)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
