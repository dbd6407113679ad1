package repositories

import "context"

// Store groups the repositories that take part in one unit of work.
type Store interface {
	Tasks() TaskRepository
	Projects() ProjectRepository
	// Transaction runs fn against a Store bound to a single transaction.
	// fn returning an error rolls the whole unit back.
	Transaction(ctx context.Context, fn func(tx Store) error) error
}
