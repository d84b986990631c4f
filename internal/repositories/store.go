package repositories

import "context"

// Store bundles every repository behind one transaction boundary.
type Store struct {
	Tx          Transactor
	Buildings   BuildingRepository
	Units       UnitRepository
	Tenants     TenantRepository
	Staff       StaffRepository
	Requests    RequestRepository
	Assignments AssignmentRepository
	Notes       NoteRepository
	Metrics     MetricsRepository

	// Ping reports whether the backing store is reachable.
	Ping func(ctx context.Context) error
}

// Pinger is implemented by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

func NewPostgresStore(db DB, pinger Pinger) *Store {
	assignments := NewAssignmentRepository(db)
	notes := NewNoteRepository(db)
	return &Store{
		Tx:          NewTransactor(db),
		Buildings:   NewBuildingRepository(db),
		Units:       NewUnitRepository(db),
		Tenants:     NewTenantRepository(db),
		Staff:       NewStaffRepository(db),
		Requests:    NewRequestRepository(db, assignments, notes),
		Assignments: assignments,
		Notes:       notes,
		Metrics:     NewMetricsRepository(db),
		Ping:        pinger.Ping,
	}
}
