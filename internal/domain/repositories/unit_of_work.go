package repositories

import "context"

// UnitOfWork runs fn inside one transaction. Repositories called with the
// context handed to fn join that transaction.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
