package ports

import "context"

// TxManager serializes read-modify-write cycles on a store.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
