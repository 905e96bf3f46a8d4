package storage

import (
	"context"
	"sync"
	"time"

	"github.com/yourusername/groupbuy-backend/internal/domain/entity"
	"github.com/yourusername/groupbuy-backend/internal/domain/repository"
)

type memoryCatalog struct {
	mu       sync.RWMutex
	orders   []entity.RecentOrder
	products []entity.Product
	groups   []entity.GroupSession
	syncMsg  string
	synced   bool
	lastSync time.Time
}

// NewMemoryCatalog creates the in-memory snapshot store. seed products are
// served until the first successful products fetch replaces them.
func NewMemoryCatalog(seed []entity.Product) repository.CatalogRepository {
	products := make([]entity.Product, len(seed))
	copy(products, seed)
	return &memoryCatalog{products: products}
}

// ReplaceOrders swaps in a freshly-formatted orders snapshot.
func (m *memoryCatalog) ReplaceOrders(ctx context.Context, orders []entity.RecentOrder) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.orders = make([]entity.RecentOrder, len(orders))
	copy(m.orders, orders)
	m.synced = true
	m.lastSync = time.Now()
	return nil
}

// ReplaceProducts swaps in the product catalog wholesale.
func (m *memoryCatalog) ReplaceProducts(ctx context.Context, products []entity.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.products = make([]entity.Product, len(products))
	copy(m.products, products)
	return nil
}

// ReplaceGroups swaps in the group sessions wholesale.
func (m *memoryCatalog) ReplaceGroups(ctx context.Context, groups []entity.GroupSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.groups = make([]entity.GroupSession, len(groups))
	copy(m.groups, groups)
	return nil
}

// PushOrderFront unshifts a provisional local order. The next resync may
// replace it with the authoritative row.
func (m *memoryCatalog) PushOrderFront(ctx context.Context, order entity.RecentOrder) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.orders = append([]entity.RecentOrder{order}, m.orders...)
	return nil
}

// Orders returns up to limit orders in feed order. limit <= 0 returns all.
func (m *memoryCatalog) Orders(ctx context.Context, limit int) ([]entity.RecentOrder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := len(m.orders)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]entity.RecentOrder, n)
	copy(out, m.orders[:n])
	return out, nil
}

func (m *memoryCatalog) Products(ctx context.Context) ([]entity.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]entity.Product, len(m.products))
	copy(out, m.products)
	return out, nil
}

func (m *memoryCatalog) Groups(ctx context.Context) ([]entity.GroupSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]entity.GroupSession, len(m.groups))
	copy(out, m.groups)
	return out, nil
}

// SetSyncError records the stale-data banner message; "" clears it.
// The snapshots themselves are left alone either way.
func (m *memoryCatalog) SetSyncError(ctx context.Context, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.syncMsg = message
	m.lastSync = time.Now()
	return nil
}

func (m *memoryCatalog) SyncStatus(ctx context.Context) (string, bool, time.Time, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.syncMsg, m.synced, m.lastSync, nil
}
