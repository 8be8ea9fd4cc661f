package port

import "context"

// Repositories are bound to a single transaction.
type Repositories struct {
	Users     UserRepository
	Products  ProductRepository
	CartItems CartItemRepository
	Orders    OrderRepository
}

// Transactor runs fn in one database transaction, committing when fn returns nil.
type Transactor interface {
	ReadWrite(ctx context.Context, fn func(r Repositories) error) error
	ReadOnly(ctx context.Context, fn func(r Repositories) error) error
}
