package port

import (
	"context"

	"github.com/rl1809/stock-gen/internal/core/domain"
)

type StockRepository interface {
	// Load reads the durable stock document. A missing document bootstraps
	// and persists an empty store.
	Load(ctx context.Context) (domain.Store, error)

	// Save durably replaces the whole document. The write is all-or-nothing:
	// a failed Save must leave the previous document intact.
	Save(ctx context.Context, store domain.Store) error
}
