package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/yourusername/groupbuy-backend/internal/domain/entity"
	"github.com/yourusername/groupbuy-backend/internal/infrastructure/storage"
)

func TestTicker_RefreshesRelativeTimes(t *testing.T) {
	ctx := context.Background()
	catalog := storage.NewMemoryCatalog(nil)

	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	if err := catalog.ReplaceOrders(ctx, []entity.RecentOrder{
		{ID: "o1", Buyer: "陳*華", Time: "剛剛", Timestamp: now.Add(-2 * time.Hour)},
	}); err != nil {
		t.Fatalf("ReplaceOrders: %v", err)
	}

	uc := NewCatalogUseCase(catalog)
	uc.now = func() time.Time { return now }

	orders, err := uc.Ticker(ctx, 0)
	if err != nil {
		t.Fatalf("Ticker: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("expected one order, got %d", len(orders))
	}
	if orders[0].Time != "2 小時前" {
		t.Fatalf("relative time should be refreshed, got %q", orders[0].Time)
	}
}

func TestTicker_LimitAndDefault(t *testing.T) {
	ctx := context.Background()
	catalog := storage.NewMemoryCatalog(nil)

	orders := make([]entity.RecentOrder, 40)
	for i := range orders {
		orders[i] = entity.RecentOrder{ID: "o", Buyer: "王*明"}
	}
	if err := catalog.ReplaceOrders(ctx, orders); err != nil {
		t.Fatalf("ReplaceOrders: %v", err)
	}

	uc := NewCatalogUseCase(catalog)

	got, err := uc.Ticker(ctx, 0)
	if err != nil {
		t.Fatalf("Ticker: %v", err)
	}
	if len(got) != 30 {
		t.Fatalf("default limit should cap at 30, got %d", len(got))
	}

	got, err = uc.Ticker(ctx, 5)
	if err != nil {
		t.Fatalf("Ticker: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("explicit limit should apply, got %d", len(got))
	}
}

func TestTickerWindow_WrapsAround(t *testing.T) {
	orders := []entity.RecentOrder{
		{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}, {ID: "e"},
	}

	window := TickerWindow(orders, 3)
	if len(window) != 4 {
		t.Fatalf("expected a window of 4, got %d", len(window))
	}
	want := []string{"d", "e", "a", "b"}
	for i, id := range want {
		if window[i].ID != id {
			t.Fatalf("window[%d] = %q, want %q", i, window[i].ID, id)
		}
	}
}

func TestTickerWindow_SmallInput(t *testing.T) {
	orders := []entity.RecentOrder{{ID: "a"}, {ID: "b"}}

	window := TickerWindow(orders, 5)
	if len(window) != 2 {
		t.Fatalf("window should shrink to the input size, got %d", len(window))
	}

	if got := TickerWindow(nil, 0); got != nil {
		t.Fatalf("empty input should yield nil, got %+v", got)
	}
}

func TestProductsForGroup(t *testing.T) {
	ctx := context.Background()
	catalog := storage.NewMemoryCatalog([]entity.Product{
		{ID: "p1", Name: "蔥油餅", GroupID: "g1"},
		{ID: "p2", Name: "海苔脆片", GroupID: "g2"},
	})
	uc := NewCatalogUseCase(catalog)

	products, err := uc.ProductsForGroup(ctx, "g1")
	if err != nil {
		t.Fatalf("ProductsForGroup: %v", err)
	}
	if len(products) != 1 || products[0].ID != "p1" {
		t.Fatalf("unexpected products: %+v", products)
	}

	products, err = uc.ProductsForGroup(ctx, "")
	if err != nil {
		t.Fatalf("ProductsForGroup: %v", err)
	}
	if len(products) != 0 {
		t.Fatalf("no group selected should mean no products, got %d", len(products))
	}
}
