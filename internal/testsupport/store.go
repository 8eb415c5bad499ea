package testsupport

import (
	"context"
	"testing"

	"spdxgen/internal/config"
	"spdxgen/internal/docstore"
)

// MustOpenStore opens a docstore.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *docstore.Store {
	t.Helper()

	store, err := docstore.Open(cfg)
	if err != nil {
		t.Fatalf("docstore.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// NewDocument creates a document row for tests using the provided store.
func NewDocument(t testing.TB, store *docstore.Store, name, namespace, spdxRef string) *docstore.Document {
	t.Helper()

	doc, err := store.CreateDocument(context.Background(), name, namespace, spdxRef)
	if err != nil {
		t.Fatalf("store.CreateDocument: %v", err)
	}
	return doc
}
