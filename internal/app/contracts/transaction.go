package contracts

import "context"

// TransactionManager runs fn as one unit of work. Repositories must use the
// context passed to fn so their writes join the transaction.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
