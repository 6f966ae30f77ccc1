// Package testutil holds test doubles shared by the handler and router tests.
package testutil

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/trentd187/ticklist/internal/models"
)

// MemoryRepo is an in-memory handlers.Repository. It is safe for concurrent use.
// Rows are stored with the id passed to Insert, the same way database.Table
// binds the generated id instead of the entity's own.
type MemoryRepo[T models.Entity] struct {
	mu   sync.Mutex
	rows []T
	ids  []uuid.UUID

	// setID writes id into a copy of the entity before it is stored.
	setID func(T, uuid.UUID) T

	// Err, when set, is returned by every List and Insert call.
	Err error
}

// NewMemoryRepo returns an empty repository. setID stamps the generated id onto
// stored rows so List returns them the way the database would.
func NewMemoryRepo[T models.Entity](setID func(T, uuid.UUID) T) *MemoryRepo[T] {
	return &MemoryRepo[T]{setID: setID}
}

// NewCrags, NewRoutes and NewAscents are ready-made repositories for the three entities.
func NewCrags() *MemoryRepo[models.Crag] {
	return NewMemoryRepo(func(c models.Crag, id uuid.UUID) models.Crag { c.ID = id; return c })
}

func NewRoutes() *MemoryRepo[models.Route] {
	return NewMemoryRepo(func(r models.Route, id uuid.UUID) models.Route { r.ID = id; return r })
}

func NewAscents() *MemoryRepo[models.Ascent] {
	return NewMemoryRepo(func(a models.Ascent, id uuid.UUID) models.Ascent { a.ID = id; return a })
}

func (m *MemoryRepo[T]) List(ctx context.Context) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]T, len(m.rows))
	copy(out, m.rows)
	return out, nil
}

func (m *MemoryRepo[T]) Insert(ctx context.Context, id uuid.UUID, entity T) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	m.rows = append(m.rows, m.setID(entity, id))
	m.ids = append(m.ids, id)
	return nil
}

// IDs returns the ids passed to Insert, in call order.
func (m *MemoryRepo[T]) IDs() []uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]uuid.UUID, len(m.ids))
	copy(out, m.ids)
	return out
}

// Len returns the number of stored rows.
func (m *MemoryRepo[T]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}
