package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yourusername/groupbuy-backend/internal/domain/constants"
	"github.com/yourusername/groupbuy-backend/internal/domain/entity"
	"github.com/yourusername/groupbuy-backend/internal/domain/repository"
	"github.com/yourusername/groupbuy-backend/internal/metrics"
	"github.com/yourusername/groupbuy-backend/pkg/logger"
)

// Shown in the sync status banner when the spreadsheet cannot be reached.
const msgSheetUnreachable = "無法連線至 Google Sheet，顯示為最後更新資料。"

// SyncUseCase keeps the in-memory catalog in step with the spreadsheet.
// A ticker drives periodic refreshes and RequestResync squeezes in an
// extra cycle, for example right after an order lands. Overlapping cycles
// never run: a tick that arrives while a cycle is in flight is dropped.
type SyncUseCase struct {
	sheets   repository.SheetRepository
	catalog  repository.CatalogRepository
	interval time.Duration

	trigger  chan struct{}
	inFlight atomic.Bool
	now      func() time.Time
}

func NewSyncUseCase(sheets repository.SheetRepository, catalog repository.CatalogRepository, interval time.Duration) *SyncUseCase {
	if interval <= 0 {
		interval = constants.DefaultSyncIntervalSeconds * time.Second
	}
	return &SyncUseCase{
		sheets:   sheets,
		catalog:  catalog,
		interval: interval,
		trigger:  make(chan struct{}, 1),
		now:      time.Now,
	}
}

// Start runs an immediate sync and then loops until ctx is cancelled.
func (uc *SyncUseCase) Start(ctx context.Context) {
	uc.SyncOnce(ctx)

	ticker := time.NewTicker(uc.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.InfoLogger.Println("Sync loop stopped")
			return
		case <-ticker.C:
			uc.SyncOnce(ctx)
		case <-uc.trigger:
			uc.SyncOnce(ctx)
		}
	}
}

// RequestResync asks the loop for an extra cycle without blocking the caller.
func (uc *SyncUseCase) RequestResync() {
	select {
	case uc.trigger <- struct{}{}:
	default:
	}
}

// RequestResyncAfter schedules a resync once d has elapsed. The spreadsheet
// script needs a moment to append a submitted row before it shows up in reads.
func (uc *SyncUseCase) RequestResyncAfter(d time.Duration) {
	time.AfterFunc(d, uc.RequestResync)
}

// SyncOnce fetches orders, products and groups concurrently and applies
// whichever collections succeeded. A failed collection keeps its previous
// snapshot so one bad fetch never blanks the storefront. The status banner
// follows the orders fetch: it clears on success and carries a user-facing
// message on failure.
func (uc *SyncUseCase) SyncOnce(ctx context.Context) {
	if !uc.inFlight.CompareAndSwap(false, true) {
		logger.InfoLogger.Println("Sync cycle skipped, previous cycle still in flight")
		return
	}
	defer uc.inFlight.Store(false)

	metrics.SyncCycles.Inc()

	var g errgroup.Group
	g.Go(func() error { return uc.syncOrders(ctx) })
	g.Go(func() error { return uc.syncProducts(ctx) })
	g.Go(func() error { return uc.syncGroups(ctx) })
	// Every branch reports its own outcome and returns nil, so Wait is
	// only a join point here.
	_ = g.Wait()
}

func (uc *SyncUseCase) syncOrders(ctx context.Context) error {
	rows, err := uc.sheets.FetchOrders(ctx)
	if err != nil {
		uc.recordFetchFailure(ctx, "orders", err)
		return nil
	}

	now := uc.now()
	orders := make([]entity.RecentOrder, 0, len(rows))
	for i, row := range rows {
		order, ok := FormatOrder(row, i, now)
		if !ok {
			continue
		}
		orders = append(orders, order)
	}

	if err := uc.catalog.ReplaceOrders(ctx, orders); err != nil {
		logger.ErrorLogger.Printf("Failed to store orders: %v", err)
		metrics.FetchResults.WithLabelValues("orders", metrics.FetchFailed).Inc()
		return nil
	}
	if err := uc.catalog.SetSyncError(ctx, ""); err != nil {
		logger.ErrorLogger.Printf("Failed to clear sync error: %v", err)
	}
	metrics.FetchResults.WithLabelValues("orders", metrics.FetchOK).Inc()
	return nil
}

func (uc *SyncUseCase) syncProducts(ctx context.Context) error {
	products, err := uc.sheets.FetchProducts(ctx)
	if err != nil {
		uc.recordFetchFailure(ctx, "products", err)
		return nil
	}
	if err := uc.catalog.ReplaceProducts(ctx, products); err != nil {
		logger.ErrorLogger.Printf("Failed to store products: %v", err)
		metrics.FetchResults.WithLabelValues("products", metrics.FetchFailed).Inc()
		return nil
	}
	metrics.FetchResults.WithLabelValues("products", metrics.FetchOK).Inc()
	return nil
}

func (uc *SyncUseCase) syncGroups(ctx context.Context) error {
	groups, err := uc.sheets.FetchGroups(ctx)
	if err != nil {
		uc.recordFetchFailure(ctx, "groups", err)
		return nil
	}
	now := uc.now()
	for i := range groups {
		groups[i] = DeriveGroupStatus(groups[i], now)
	}
	if err := uc.catalog.ReplaceGroups(ctx, groups); err != nil {
		logger.ErrorLogger.Printf("Failed to store groups: %v", err)
		metrics.FetchResults.WithLabelValues("groups", metrics.FetchFailed).Inc()
		return nil
	}
	metrics.FetchResults.WithLabelValues("groups", metrics.FetchOK).Inc()
	return nil
}

// recordFetchFailure classifies a fetch error, bumps the matching metric and,
// for the orders collection, updates the status banner. A non-array response
// is treated as "no update" and skipped quietly.
func (uc *SyncUseCase) recordFetchFailure(ctx context.Context, collection string, err error) {
	if errors.Is(err, repository.ErrNoUpdate) {
		logger.InfoLogger.Printf("Sync %s: response was not a data array, keeping previous snapshot", collection)
		metrics.FetchResults.WithLabelValues(collection, metrics.FetchSkipped).Inc()
		return
	}

	metrics.FetchResults.WithLabelValues(collection, metrics.FetchFailed).Inc()
	logger.ErrorLogger.Printf("Sync %s failed: %v", collection, err)

	if collection != "orders" {
		return
	}

	message := msgSheetUnreachable
	var backendErr *repository.BackendError
	if errors.As(err, &backendErr) {
		message = backendErr.Message
	}
	if setErr := uc.catalog.SetSyncError(ctx, message); setErr != nil {
		logger.ErrorLogger.Printf("Failed to record sync error: %v", setErr)
	}
}

// DeriveGroupStatus closes an open group whose end date has passed. A group
// stays open through the whole of its final day and flips at midnight after.
func DeriveGroupStatus(g entity.GroupSession, now time.Time) entity.GroupSession {
	if g.Status != entity.GroupStatusOpen || g.EndDate == "" {
		return g
	}
	end, err := time.ParseInLocation("2006-01-02", g.EndDate, now.Location())
	if err != nil {
		end, err = time.ParseInLocation("2006/01/02", g.EndDate, now.Location())
	}
	if err != nil {
		return g
	}
	if !now.Before(end.Add(24 * time.Hour)) {
		g.Status = entity.GroupStatusClosed
	}
	return g
}
