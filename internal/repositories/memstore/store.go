// Package memstore is an in-process implementation of every repository
// interface. Transactions work on a cloned state that replaces the committed
// state only when the callback succeeds.
package memstore

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"

	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/models"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/repositories"
)

type table[T any] struct {
	rows  map[uuid.UUID]T
	order []uuid.UUID
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: map[uuid.UUID]T{}}
}

func (t *table[T]) get(id uuid.UUID) (T, bool) {
	v, ok := t.rows[id]
	return v, ok
}

func (t *table[T]) put(id uuid.UUID, v T) {
	if _, ok := t.rows[id]; !ok {
		t.order = append(t.order, id)
	}
	t.rows[id] = v
}

func (t *table[T]) remove(id uuid.UUID) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	for i, v := range t.order {
		if v == id {
			t.order = append(t.order[:i:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

// all returns rows in insertion order.
func (t *table[T]) all() []T {
	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.rows[id])
	}
	return out
}

func (t *table[T]) clone() *table[T] {
	c := &table[T]{rows: make(map[uuid.UUID]T, len(t.rows)), order: append([]uuid.UUID(nil), t.order...)}
	for k, v := range t.rows {
		c.rows[k] = v
	}
	return c
}

type state struct {
	buildings   *table[models.Building]
	units       *table[models.Unit]
	tenants     *table[models.Tenant]
	staff       *table[models.Staff]
	requests    *table[models.Request]
	assignments map[uuid.UUID][]models.Assignment
	notes       map[uuid.UUID][]models.Note
}

func newState() state {
	return state{
		buildings:   newTable[models.Building](),
		units:       newTable[models.Unit](),
		tenants:     newTable[models.Tenant](),
		staff:       newTable[models.Staff](),
		requests:    newTable[models.Request](),
		assignments: map[uuid.UUID][]models.Assignment{},
		notes:       map[uuid.UUID][]models.Note{},
	}
}

func (s state) clone() state {
	c := state{
		buildings:   s.buildings.clone(),
		units:       s.units.clone(),
		tenants:     s.tenants.clone(),
		staff:       s.staff.clone(),
		requests:    s.requests.clone(),
		assignments: make(map[uuid.UUID][]models.Assignment, len(s.assignments)),
		notes:       make(map[uuid.UUID][]models.Note, len(s.notes)),
	}
	for k, v := range s.assignments {
		c.assignments[k] = append([]models.Assignment(nil), v...)
	}
	for k, v := range s.notes {
		c.notes[k] = append([]models.Note(nil), v...)
	}
	return c
}

// Store guards the committed state. mu protects reads and writes of state;
// txMu serializes writers so a committing transaction never overwrites a
// concurrent single-statement write.
type Store struct {
	mu    sync.RWMutex
	txMu  sync.Mutex
	state state
}

func New() *Store {
	return &Store{state: newState()}
}

type txKey struct{}

type txState struct {
	owner *Store
	st    *state
}

func (s *Store) txFrom(ctx context.Context) *state {
	if tx, ok := ctx.Value(txKey{}).(*txState); ok && tx.owner == s {
		return tx.st
	}
	return nil
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.txFrom(ctx) != nil {
		return fn(ctx)
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	working := s.state.clone()
	s.mu.RUnlock()

	if err := fn(context.WithValue(ctx, txKey{}, &txState{owner: s, st: &working})); err != nil {
		return err
	}

	s.mu.Lock()
	s.state = working
	s.mu.Unlock()
	return nil
}

func (s *Store) read(ctx context.Context, fn func(st *state) error) error {
	if st := s.txFrom(ctx); st != nil {
		return fn(st)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(&s.state)
}

func (s *Store) write(ctx context.Context, fn func(st *state) error) error {
	if st := s.txFrom(ctx); st != nil {
		return fn(st)
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&s.state)
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Repositories exposes the store through the repository interfaces.
func (s *Store) Repositories() *repositories.Store {
	return &repositories.Store{
		Tx:          s,
		Buildings:   &buildingRepo{s},
		Units:       &unitRepo{s},
		Tenants:     &tenantRepo{s},
		Staff:       &staffRepo{s},
		Requests:    &requestRepo{s},
		Assignments: &assignmentRepo{s},
		Notes:       &noteRepo{s},
		Metrics:     &metricsRepo{s},
		Ping:        s.Ping,
	}
}

func page[T any](list []T, opts repositories.ListOptions) []T {
	opts = opts.Normalized()
	if opts.Skip >= len(list) {
		return []T{}
	}
	end := opts.Skip + opts.Limit
	if end > len(list) {
		end = len(list)
	}
	return list[opts.Skip:end]
}

func tag(n int) pgconn.CommandTag {
	if n == 1 {
		return pgconn.CommandTag("UPDATE 1")
	}
	return pgconn.CommandTag("UPDATE 0")
}
