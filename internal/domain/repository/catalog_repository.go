package repository

import (
	"context"
	"time"

	"github.com/yourusername/groupbuy-backend/internal/domain/entity"
)

// CatalogRepository holds the merged last-known-good state between sync
// cycles. Replacements are wholesale; there is no diffing. A failed cycle
// leaves the previous snapshot in place and records a user-facing error.
type CatalogRepository interface {
	ReplaceOrders(ctx context.Context, orders []entity.RecentOrder) error
	ReplaceProducts(ctx context.Context, products []entity.Product) error
	ReplaceGroups(ctx context.Context, groups []entity.GroupSession) error

	// PushOrderFront unshifts a locally-synthesized order so it shows up in
	// the ticker before the next resync confirms it.
	PushOrderFront(ctx context.Context, order entity.RecentOrder) error

	// Orders returns up to limit recent orders, feed order preserved.
	// limit <= 0 means all.
	Orders(ctx context.Context, limit int) ([]entity.RecentOrder, error)
	Products(ctx context.Context) ([]entity.Product, error)
	Groups(ctx context.Context) ([]entity.GroupSession, error)

	// SetSyncError records (or clears, with "") the message shown while the
	// in-memory data is stale.
	SetSyncError(ctx context.Context, message string) error

	// SyncStatus reports the stale-data message, whether at least one full
	// orders fetch ever landed, and when the last cycle finished.
	SyncStatus(ctx context.Context) (message string, synced bool, lastSync time.Time, err error)
}

// OrderArchive is an optional durable side channel for submitted orders
// (the sheet stays authoritative). A nil archive disables it.
type OrderArchive interface {
	SaveOrder(ctx context.Context, order entity.RecentOrder) error
	Close() error
}
