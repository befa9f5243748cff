package export

import (
	"context"

	"fintrack/internal/core"
)

// TransactionExporter pushes a transaction to an external destination and
// returns an opaque reference to where it landed.
type TransactionExporter interface {
	AppendTransaction(ctx context.Context, t core.Transaction) (string, error)
}
