package usecase

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/yourusername/groupbuy-backend/internal/domain/entity"
	"github.com/yourusername/groupbuy-backend/internal/infrastructure/storage"
)

func leaderFixture(t *testing.T) (*LeaderUseCase, *stubSheetRepo, context.Context) {
	t.Helper()
	ctx := context.Background()
	catalog := storage.NewMemoryCatalog(nil)

	if err := catalog.ReplaceGroups(ctx, []entity.GroupSession{
		{ID: "g1", Title: "秋季日貨團", Status: entity.GroupStatusOpen},
		{ID: "g2", Title: "韓國零食團", Status: entity.GroupStatusOpen},
	}); err != nil {
		t.Fatalf("ReplaceGroups: %v", err)
	}
	if err := catalog.ReplaceProducts(ctx, []entity.Product{
		{ID: "p1", Name: "蔥油餅", Category: "美食", PriceEstimate: "$120", GroupID: "g1"},
		{ID: "p2", Name: "珍珠奶茶", Category: "飲品", PriceEstimate: "$60", GroupID: "g1"},
		{ID: "p3", Name: "海苔脆片", Category: "零食", PriceEstimate: "$80", GroupID: "g2"},
	}); err != nil {
		t.Fatalf("ReplaceProducts: %v", err)
	}

	sheets := &stubSheetRepo{}
	return NewLeaderUseCase(sheets, catalog, nil), sheets, ctx
}

func TestOrdersForGroup_StrictIDWins(t *testing.T) {
	uc, _, ctx := leaderFixture(t)
	catalogSeed(t, uc, ctx, []entity.RecentOrder{
		{ID: "o1", Buyer: "陳*華", Product: "蔥油餅 x3", GroupID: "g1"},
		{ID: "o2", Buyer: "王*明", Product: "海苔脆片 x1", GroupID: "g2"},
		{ID: "o3", Buyer: "林*如", Product: "蔥油餅 x1"},
	})

	orders, err := uc.OrdersForGroup(ctx, "g1")
	if err != nil {
		t.Fatalf("OrdersForGroup: %v", err)
	}
	if len(orders) != 1 || orders[0].ID != "o1" {
		t.Fatalf("strict groupId match should win, got %+v", orders)
	}
}

func TestOrdersForGroup_SubstringFallbackForLegacyRows(t *testing.T) {
	uc, _, ctx := leaderFixture(t)
	catalogSeed(t, uc, ctx, []entity.RecentOrder{
		{ID: "o1", Buyer: "陳*華", Product: "蔥油餅 x3, 珍珠奶茶 x2"},
		{ID: "o2", Buyer: "王*明", Product: "海苔脆片 x1"},
	})

	orders, err := uc.OrdersForGroup(ctx, "g1")
	if err != nil {
		t.Fatalf("OrdersForGroup: %v", err)
	}
	if len(orders) != 1 || orders[0].ID != "o1" {
		t.Fatalf("legacy rows should match by product name, got %+v", orders)
	}
}

func TestPurchasingSummary_AggregatesAndKeepsExtras(t *testing.T) {
	uc, _, ctx := leaderFixture(t)
	catalogSeed(t, uc, ctx, []entity.RecentOrder{
		{ID: "o1", Product: "蔥油餅 x3, 珍珠奶茶 x2", GroupID: "g1"},
		{ID: "o2", Product: "蔥油餅 x1, 手寫加購品 x4", GroupID: "g1"},
	})

	summary, err := uc.PurchasingSummary(ctx, "g1")
	if err != nil {
		t.Fatalf("PurchasingSummary: %v", err)
	}

	byName := map[string]SummaryItem{}
	for _, item := range summary {
		byName[item.Name] = item
	}
	if got := byName["蔥油餅"].Total; got != 4 {
		t.Fatalf("蔥油餅 total should be 4, got %d", got)
	}
	if got := byName["珍珠奶茶"].Total; got != 2 {
		t.Fatalf("珍珠奶茶 total should be 2, got %d", got)
	}
	extra, ok := byName["手寫加購品"]
	if !ok {
		t.Fatalf("hand-typed item should appear in the summary")
	}
	if extra.Category != "額外項目" || extra.Total != 4 {
		t.Fatalf("unexpected extra item: %+v", extra)
	}
	// Defined products with no orders are dropped.
	if _, ok := byName["海苔脆片"]; ok {
		t.Fatalf("other group's product leaked into the summary")
	}
}

func TestSaveGroupProducts_MergesOtherGroups(t *testing.T) {
	uc, sheets, ctx := leaderFixture(t)

	edited := []entity.Product{
		{ID: "p1", Name: "蔥油餅（改）", Category: "美食", PriceEstimate: "$130"},
		{ID: "p9", Name: "新品麻糬", Category: "甜點", PriceEstimate: "$90"},
	}
	if err := uc.SaveGroupProducts(ctx, "g1", edited); err != nil {
		t.Fatalf("SaveGroupProducts: %v", err)
	}

	if len(sheets.savedProducts) != 1 {
		t.Fatalf("expected one overwrite call, got %d", len(sheets.savedProducts))
	}
	saved := sheets.savedProducts[0]
	if len(saved) != 3 {
		t.Fatalf("overwrite should carry edited plus other groups' rows, got %d", len(saved))
	}
	for _, p := range saved[:2] {
		if p.GroupID != "g1" {
			t.Fatalf("edited products should be stamped with the group, got %+v", p)
		}
	}
	if saved[2].ID != "p3" || saved[2].GroupID != "g2" {
		t.Fatalf("other group's product should be preserved, got %+v", saved[2])
	}
}

func TestSaveGroup_RejectsMissingTitle(t *testing.T) {
	uc, sheets, ctx := leaderFixture(t)

	err := uc.SaveGroup(ctx, entity.GroupSession{ID: "g9"})
	if err == nil {
		t.Fatalf("expected a validation error")
	}
	if len(sheets.savedGroups) != 0 {
		t.Fatalf("invalid group must not reach the sheet")
	}
}

func TestExport_OrdersCSVHasBOMAndHeaders(t *testing.T) {
	uc, _, ctx := leaderFixture(t)
	catalogSeed(t, uc, ctx, []entity.RecentOrder{
		{ID: "o1", Buyer: "陳*華", RealName: "陳大華", Email: "chen@example.com", Address: "台北市", Product: "蔥油餅 x3", Quantity: 3, Time: "剛剛", GroupID: "g1"},
	})

	filename, data, err := uc.Export(ctx, "g1", ExportViewOrders, ExportFormatCSV)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if filename != "秋季日貨團_名單.csv" {
		t.Fatalf("unexpected filename: %q", filename)
	}
	if !bytes.HasPrefix(data, []byte("\ufeff")) {
		t.Fatalf("CSV should start with a UTF-8 BOM")
	}
	content := string(data)
	if !strings.Contains(content, "時間,姓名,Email,地址,商品內容,總數量,備註") {
		t.Fatalf("missing orders header row: %q", content)
	}
	if !strings.Contains(content, "陳大華") {
		t.Fatalf("CSV should use the real name, got: %q", content)
	}
}

func TestExport_SummaryCSVHeaders(t *testing.T) {
	uc, _, ctx := leaderFixture(t)
	catalogSeed(t, uc, ctx, []entity.RecentOrder{
		{ID: "o1", Product: "蔥油餅 x3", GroupID: "g1"},
	})

	filename, data, err := uc.Export(ctx, "g1", ExportViewSummary, ExportFormatCSV)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if filename != "秋季日貨團_採購.csv" {
		t.Fatalf("unexpected filename: %q", filename)
	}
	if !strings.Contains(string(data), "分類,商品名稱,單價,採購總量") {
		t.Fatalf("missing summary header row: %q", string(data))
	}
}

func TestExport_XLSXIsNonEmptyWorkbook(t *testing.T) {
	uc, _, ctx := leaderFixture(t)
	catalogSeed(t, uc, ctx, []entity.RecentOrder{
		{ID: "o1", Product: "蔥油餅 x3", GroupID: "g1"},
	})

	filename, data, err := uc.Export(ctx, "g1", ExportViewSummary, ExportFormatXLSX)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !strings.HasSuffix(filename, ".xlsx") {
		t.Fatalf("unexpected filename: %q", filename)
	}
	// XLSX files are zip archives.
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Fatalf("export does not look like an xlsx file")
	}
}

func TestExport_UnknownGroup(t *testing.T) {
	uc, _, ctx := leaderFixture(t)

	if _, _, err := uc.Export(ctx, "missing", ExportViewOrders, ExportFormatCSV); err == nil {
		t.Fatalf("unknown group should fail")
	}
}

func catalogSeed(t *testing.T, uc *LeaderUseCase, ctx context.Context, orders []entity.RecentOrder) {
	t.Helper()
	if err := uc.catalog.ReplaceOrders(ctx, orders); err != nil {
		t.Fatalf("ReplaceOrders: %v", err)
	}
}
