package usecase

import (
	"context"
	"time"

	"github.com/yourusername/groupbuy-backend/internal/domain/constants"
	"github.com/yourusername/groupbuy-backend/internal/domain/entity"
	"github.com/yourusername/groupbuy-backend/internal/domain/repository"
)

// GroupListing bundles the group sessions with the sync banner so the
// storefront can render both from one call.
type GroupListing struct {
	Groups      []entity.GroupSession `json:"groups"`
	SyncMessage string                `json:"syncMessage,omitempty"`
	Synced      bool                  `json:"synced"`
	LastSync    time.Time             `json:"lastSync,omitempty"`
}

// CatalogUseCase serves the read side of the storefront from the in-memory
// snapshots. It never talks to the sheet directly.
type CatalogUseCase struct {
	catalog repository.CatalogRepository
	now     func() time.Time
}

func NewCatalogUseCase(catalog repository.CatalogRepository) *CatalogUseCase {
	return &CatalogUseCase{catalog: catalog, now: time.Now}
}

// GroupList returns all group sessions plus the current sync status.
func (uc *CatalogUseCase) GroupList(ctx context.Context) (GroupListing, error) {
	groups, err := uc.catalog.Groups(ctx)
	if err != nil {
		return GroupListing{}, err
	}
	message, synced, lastSync, err := uc.catalog.SyncStatus(ctx)
	if err != nil {
		return GroupListing{}, err
	}
	return GroupListing{
		Groups:      groups,
		SyncMessage: message,
		Synced:      synced,
		LastSync:    lastSync,
	}, nil
}

// ProductsForGroup returns the products belonging to one group session.
// Without a group there is no storefront, so an empty groupID yields an
// empty list rather than the whole catalog.
func (uc *CatalogUseCase) ProductsForGroup(ctx context.Context, groupID string) ([]entity.Product, error) {
	if groupID == "" {
		return []entity.Product{}, nil
	}
	products, err := uc.catalog.Products(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if p.GroupID == groupID {
			out = append(out, p)
		}
	}
	return out, nil
}

// Ticker returns the most recent orders with their relative-time labels
// refreshed against the current clock. limit <= 0 falls back to the
// default ticker depth.
func (uc *CatalogUseCase) Ticker(ctx context.Context, limit int) ([]entity.RecentOrder, error) {
	if limit <= 0 {
		limit = constants.DefaultTickerLimit
	}
	orders, err := uc.catalog.Orders(ctx, limit)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	for i := range orders {
		if !orders[i].Timestamp.IsZero() {
			orders[i].Time = RelativeTime(now, orders[i].Timestamp)
		}
	}
	return orders, nil
}

// TickerWindow slices a rotating window of size constants.TickerWindowSize
// out of orders, wrapping around the end. offset advances one entry per
// rotation step.
func TickerWindow(orders []entity.RecentOrder, offset int) []entity.RecentOrder {
	n := len(orders)
	if n == 0 {
		return nil
	}
	size := constants.TickerWindowSize
	if size > n {
		size = n
	}
	offset = ((offset % n) + n) % n
	window := make([]entity.RecentOrder, 0, size)
	for i := 0; i < size; i++ {
		window = append(window, orders[(offset+i)%n])
	}
	return window
}

// Trends returns the category popularity chart data.
func (uc *CatalogUseCase) Trends(ctx context.Context) ([]entity.ChartData, error) {
	return SeedTrends(), nil
}
