package adapter

import "context"

// UnitOfWork runs a group of repository calls atomically.
type UnitOfWork interface {
	// Do calls fn inside a database transaction. Repository calls made with the
	// context passed to fn join that transaction. The transaction commits when fn
	// returns nil and rolls back otherwise. Nested calls use savepoints.
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
