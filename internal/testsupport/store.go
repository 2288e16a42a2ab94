package testsupport

import (
	"testing"

	"coverfinder/internal/catalogstore"
	"coverfinder/internal/config"
)

// MustOpenStore opens the catalog store at cfg.Cache.Path and registers
// cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *catalogstore.Store {
	t.Helper()

	store, err := catalogstore.Open(cfg.Cache.Path)
	if err != nil {
		t.Fatalf("catalogstore.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}
