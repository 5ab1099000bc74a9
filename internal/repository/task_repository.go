package repository

import (
	"context"
	"errors"
	"math"

	"github.com/Tomlord1122/todo-app/internal/domain"
)

// ErrNotFound is returned when no row matches the requested id.
var ErrNotFound = errors.New("task not found")

// TaskRepository defines the data operations on the todos table.
// Every method maps to exactly one statement against the store.
type TaskRepository interface {
	// Create inserts task and fills in the values generated by the store.
	Create(ctx context.Context, task *domain.Task) error
	FindByID(ctx context.Context, id uint) (*domain.Task, error)
	// FindAll returns every task ordered by ascending id.
	FindAll(ctx context.Context) ([]domain.Task, error)
	// Update applies changes to the row and returns it as stored.
	Update(ctx context.Context, id uint, changes domain.TaskChanges) (*domain.Task, error)
	Delete(ctx context.Context, id uint) error
}

// storable reports whether id fits the bigint primary key. Larger ids can
// never match a row.
func storable(id uint) bool {
	return uint64(id) <= math.MaxInt64
}
