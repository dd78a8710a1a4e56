package storage

import (
	"fmt"

	"github.com/obliviraorg/edumentor/internal/models"
	"github.com/obliviraorg/edumentor/internal/storage/sqlite"
)

var _ Provider = (*sqlite.Store)(nil)

// OpenSession creates and initializes an in-memory store seeded with defaults.
func OpenSession(defaults models.Settings) (Provider, error) {
	store := sqlite.NewStore(sqlite.SessionDSN(), defaults)
	if err := store.Init(); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}
	return store, nil
}
