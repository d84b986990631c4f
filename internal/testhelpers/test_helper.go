// Package testhelpers builds fixtures and drives HTTP handlers in tests. It
// works against any repositories.Store, the in-memory one or Postgres.
package testhelpers

import (
	"context"
	"testing"

	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/repositories"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/repositories/memstore"
)

type TestHelper struct {
	T     *testing.T
	Ctx   context.Context
	Store *repositories.Store
}

func NewTestHelper(t *testing.T, store *repositories.Store) *TestHelper {
	t.Helper()
	return &TestHelper{T: t, Ctx: context.Background(), Store: store}
}

// NewMemoryHelper is the common case: a fresh in-memory store per test.
func NewMemoryHelper(t *testing.T) *TestHelper {
	return NewTestHelper(t, memstore.New().Repositories())
}
