package memory

import "context"

// TxManager satisfies ports.TxManager without transactional semantics:
// repository methods already lock individually, and the demo store offers no
// rollback.
type TxManager struct{}

func NewTxManager() TxManager {
	return TxManager{}
}

func (TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
