package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/groupbuy-backend/internal/domain/entity"
	"github.com/yourusername/groupbuy-backend/internal/infrastructure/storage"
	"github.com/yourusername/groupbuy-backend/internal/usecase"
)

type fakeSheets struct {
	submitted []entity.OrderSubmission
}

func (f *fakeSheets) FetchOrders(ctx context.Context) ([]entity.SheetRow, error) {
	return nil, nil
}

func (f *fakeSheets) FetchProducts(ctx context.Context) ([]entity.Product, error) {
	return nil, nil
}

func (f *fakeSheets) FetchGroups(ctx context.Context) ([]entity.GroupSession, error) {
	return nil, nil
}

func (f *fakeSheets) SubmitOrder(ctx context.Context, order entity.OrderSubmission) error {
	f.submitted = append(f.submitted, order)
	return nil
}

func (f *fakeSheets) SaveProducts(ctx context.Context, products []entity.Product) error { return nil }
func (f *fakeSheets) SaveGroup(ctx context.Context, group entity.GroupSession) error    { return nil }

func testRouter(t *testing.T, adminToken string) (*gin.Engine, *fakeSheets) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx := context.Background()
	sheets := &fakeSheets{}
	catalog := storage.NewMemoryCatalog(nil)
	if err := catalog.ReplaceGroups(ctx, []entity.GroupSession{
		{ID: "g1", Title: "秋季日貨團", Status: entity.GroupStatusOpen},
	}); err != nil {
		t.Fatalf("ReplaceGroups: %v", err)
	}
	if err := catalog.ReplaceProducts(ctx, []entity.Product{
		{ID: "p1", Name: "蔥油餅", PriceEstimate: "$120", GroupID: "g1"},
		{ID: "p2", Name: "海苔脆片", PriceEstimate: "$80", GroupID: "g2"},
	}); err != nil {
		t.Fatalf("ReplaceProducts: %v", err)
	}
	if err := catalog.ReplaceOrders(ctx, []entity.RecentOrder{
		{ID: "o1", Buyer: "陳*華", Product: "蔥油餅", Quantity: 2},
		{ID: "o2", Buyer: "林*明", Product: "海苔脆片", Quantity: 1},
		{ID: "o3", Buyer: "張*美", Product: "蔥油餅", Quantity: 3},
		{ID: "o4", Buyer: "王*安", Product: "海苔脆片", Quantity: 2},
		{ID: "o5", Buyer: "李*文", Product: "蔥油餅", Quantity: 1},
	}); err != nil {
		t.Fatalf("ReplaceOrders: %v", err)
	}

	syncUC := usecase.NewSyncUseCase(sheets, catalog, time.Minute)
	catalogUC := usecase.NewCatalogUseCase(catalog)
	orderUC := usecase.NewOrderUseCase(sheets, catalog, nil, nil, syncUC)
	leaderUC := usecase.NewLeaderUseCase(sheets, catalog, syncUC)
	aiUC := usecase.NewAIUseCase(nil)

	server := NewServer(catalogUC, orderUC, leaderUC, aiUC, syncUC, adminToken)
	return server.Router(nil), sheets
}

func TestGetGroups(t *testing.T) {
	router, _ := testRouter(t, "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/groups", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Groups []entity.GroupSession `json:"groups"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Groups) != 1 || resp.Groups[0].ID != "g1" {
		t.Fatalf("unexpected groups: %+v", resp.Groups)
	}
}

func TestGetProducts_FiltersByGroup(t *testing.T) {
	router, _ := testRouter(t, "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/products?groupId=g1", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Products []entity.Product `json:"products"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Products) != 1 || resp.Products[0].ID != "p1" {
		t.Fatalf("unexpected products: %+v", resp.Products)
	}
}

func TestGetProducts_EmptyWithoutGroup(t *testing.T) {
	router, _ := testRouter(t, "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"products":[]`) {
		t.Fatalf("expected empty product list, got %s", w.Body.String())
	}
}

func TestGetOrders_OffsetRotatesWindow(t *testing.T) {
	router, _ := testRouter(t, "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/orders?offset=2", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Orders []entity.RecentOrder `json:"orders"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Orders) != 4 {
		t.Fatalf("expected a window of 4, got %d", len(resp.Orders))
	}
	// Window starts two entries in and wraps past the end.
	want := []string{"o3", "o4", "o5", "o1"}
	for i, id := range want {
		if resp.Orders[i].ID != id {
			t.Fatalf("entry %d: expected %s, got %s", i, id, resp.Orders[i].ID)
		}
	}
}

func TestPostOrder_ValidationError(t *testing.T) {
	router, sheets := testRouter(t, "")

	body := `{"name":"","email":"a@b.c","address":"x","items":[{"id":"p1","name":"蔥油餅","quantity":1,"priceEstimate":"$120"}]}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "請輸入姓名") {
		t.Fatalf("expected the name validation message, got %s", w.Body.String())
	}
	if len(sheets.submitted) != 0 {
		t.Fatalf("invalid order must not reach the sheet")
	}
}

func TestPostOrder_Success(t *testing.T) {
	router, sheets := testRouter(t, "")

	body := `{"name":"陳大華","email":"chen@example.com","address":"台北市","items":[{"id":"p1","name":"蔥油餅","quantity":2,"priceEstimate":"$120"}]}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if len(sheets.submitted) != 1 {
		t.Fatalf("expected one submission, got %d", len(sheets.submitted))
	}
	if !strings.Contains(w.Body.String(), "陳*華") {
		t.Fatalf("response order should be masked, got %s", w.Body.String())
	}
}

func TestAdminRoutes_RequireToken(t *testing.T) {
	router, _ := testRouter(t, "secret")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/orders?groupId=g1", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/admin/orders?groupId=g1", nil)
	req.Header.Set("X-Admin-Token", "secret")
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d: %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/admin/orders?groupId=g1", nil)
	req.Header.Set("Authorization", "Bearer secret")
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with bearer token, got %d", w.Code)
	}
}

func TestResyncEndpoint(t *testing.T) {
	router, _ := testRouter(t, "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/sync", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", w.Code)
	}
}
