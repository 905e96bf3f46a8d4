package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/yourusername/groupbuy-backend/internal/domain/entity"
	"github.com/yourusername/groupbuy-backend/internal/domain/repository"
	"github.com/yourusername/groupbuy-backend/pkg/logger"
)

// Export views and formats accepted by the leader export endpoint.
const (
	ExportViewOrders  = "orders"
	ExportViewSummary = "summary"
	ExportFormatCSV   = "csv"
	ExportFormatXLSX  = "xlsx"
)

// extraItemCategory labels summary lines parsed out of orders but missing
// from the group's product sheet, typically hand-typed entries.
const extraItemCategory = "額外項目"

// SummaryItem is one line of the purchasing summary: a product and the
// quantity to buy across every order of the group.
type SummaryItem struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Image    string `json:"image,omitempty"`
	Price    string `json:"price"`
	Total    int    `json:"total"`
}

// LeaderUseCase backs the group-leader console: order lists per group,
// purchasing summaries, catalog edits and file exports.
type LeaderUseCase struct {
	sheets  repository.SheetRepository
	catalog repository.CatalogRepository
	sync    *SyncUseCase
}

func NewLeaderUseCase(sheets repository.SheetRepository, catalog repository.CatalogRepository, sync *SyncUseCase) *LeaderUseCase {
	return &LeaderUseCase{sheets: sheets, catalog: catalog, sync: sync}
}

// OrdersForGroup returns the orders attributed to one group. Rows carrying
// the group's ID win; when none do, older rows without a groupId column are
// matched by product-name substring against the group's own products.
func (uc *LeaderUseCase) OrdersForGroup(ctx context.Context, groupID string) ([]entity.RecentOrder, error) {
	orders, err := uc.catalog.Orders(ctx, 0)
	if err != nil {
		return nil, err
	}

	strict := make([]entity.RecentOrder, 0, len(orders))
	for _, o := range orders {
		if o.GroupID == groupID {
			strict = append(strict, o)
		}
	}
	if len(strict) > 0 {
		return strict, nil
	}

	names, err := uc.groupProductNames(ctx, groupID)
	if err != nil {
		return nil, err
	}
	fallback := make([]entity.RecentOrder, 0)
	for _, o := range orders {
		for _, name := range names {
			if name != "" && strings.Contains(o.Product, name) {
				fallback = append(fallback, o)
				break
			}
		}
	}
	return fallback, nil
}

// PurchasingSummary aggregates the group's orders into per-product purchase
// totals. Products defined for the group seed the list at zero; order lines
// naming anything else are kept under the extra-items category. Lines that
// never accumulate a quantity are dropped.
func (uc *LeaderUseCase) PurchasingSummary(ctx context.Context, groupID string) ([]SummaryItem, error) {
	orders, err := uc.OrdersForGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	products, err := uc.catalog.Products(ctx)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int)
	items := make([]SummaryItem, 0)
	for _, p := range products {
		if p.GroupID != groupID {
			continue
		}
		index[p.Name] = len(items)
		items = append(items, SummaryItem{
			Name:     p.Name,
			Category: p.Category,
			Image:    p.Image,
			Price:    p.PriceEstimate,
		})
	}

	for _, order := range orders {
		for _, part := range strings.Split(order.Product, ",") {
			part = strings.TrimSpace(part)
			xIdx := strings.LastIndex(part, " x")
			if xIdx < 0 {
				continue
			}
			name := strings.TrimSpace(part[:xIdx])
			qty, _ := strconv.Atoi(strings.TrimSpace(part[xIdx+2:]))
			if i, ok := index[name]; ok {
				items[i].Total += qty
			} else if name != "" {
				index[name] = len(items)
				items = append(items, SummaryItem{
					Name:     name,
					Category: extraItemCategory,
					Price:    "-",
					Total:    qty,
				})
			}
		}
	}

	out := make([]SummaryItem, 0, len(items))
	for _, item := range items {
		if item.Total > 0 {
			out = append(out, item)
		}
	}
	return out, nil
}

// SaveGroup upserts one group session on the sheet and schedules a resync
// so the storefront picks the change up.
func (uc *LeaderUseCase) SaveGroup(ctx context.Context, group entity.GroupSession) error {
	if strings.TrimSpace(group.ID) == "" {
		return &ValidationError{Field: "id", Message: "缺少團購編號"}
	}
	if strings.TrimSpace(group.Title) == "" {
		return &ValidationError{Field: "title", Message: "請輸入團購名稱"}
	}
	if err := uc.sheets.SaveGroup(ctx, group); err != nil {
		return err
	}
	if uc.sync != nil {
		uc.sync.RequestResync()
	}
	return nil
}

// SaveGroupProducts replaces the product list of one group. The products
// sheet is overwritten wholesale, so the edited set is merged with every
// other group's products first, otherwise their rows would be lost.
func (uc *LeaderUseCase) SaveGroupProducts(ctx context.Context, groupID string, edited []entity.Product) error {
	if strings.TrimSpace(groupID) == "" {
		return &ValidationError{Field: "groupId", Message: "缺少團購編號"}
	}
	for i := range edited {
		edited[i].GroupID = groupID
	}

	existing, err := uc.catalog.Products(ctx)
	if err != nil {
		return err
	}
	merged := make([]entity.Product, 0, len(edited)+len(existing))
	merged = append(merged, edited...)
	for _, p := range existing {
		if p.GroupID != groupID {
			merged = append(merged, p)
		}
	}

	if err := uc.sheets.SaveProducts(ctx, merged); err != nil {
		return err
	}
	logger.InfoLogger.Printf("Saved %d products for group %s (%d total rows)", len(edited), groupID, len(merged))
	if uc.sync != nil {
		uc.sync.RequestResync()
	}
	return nil
}

// Export renders the group's orders list or purchasing summary as a CSV or
// XLSX file and returns the bytes with a suggested filename.
func (uc *LeaderUseCase) Export(ctx context.Context, groupID, view, format string) (filename string, data []byte, err error) {
	group, err := uc.findGroup(ctx, groupID)
	if err != nil {
		return "", nil, err
	}

	var headers []string
	var rows [][]string
	switch view {
	case ExportViewSummary:
		summary, err := uc.PurchasingSummary(ctx, groupID)
		if err != nil {
			return "", nil, err
		}
		headers = []string{"分類", "商品名稱", "單價", "採購總量"}
		for _, item := range summary {
			rows = append(rows, []string{item.Category, item.Name, item.Price, strconv.Itoa(item.Total)})
		}
	case ExportViewOrders:
		orders, err := uc.OrdersForGroup(ctx, groupID)
		if err != nil {
			return "", nil, err
		}
		headers = []string{"時間", "姓名", "Email", "地址", "商品內容", "總數量", "備註"}
		for _, o := range orders {
			name := o.RealName
			if name == "" {
				name = o.Buyer
			}
			rows = append(rows, []string{o.Time, name, o.Email, o.Address, o.Product, strconv.Itoa(o.Quantity), o.Notes})
		}
	default:
		return "", nil, &ValidationError{Field: "view", Message: fmt.Sprintf("不支援的檢視：%s", view)}
	}

	label := "名單"
	if view == ExportViewSummary {
		label = "採購"
	}

	switch format {
	case ExportFormatXLSX:
		data, err = buildExportXLSX(headers, rows)
		if err != nil {
			return "", nil, err
		}
		return fmt.Sprintf("%s_%s.xlsx", group.Title, label), data, nil
	case ExportFormatCSV, "":
		data, err = buildExportCSV(headers, rows)
		if err != nil {
			return "", nil, err
		}
		return fmt.Sprintf("%s_%s.csv", group.Title, label), data, nil
	default:
		return "", nil, &ValidationError{Field: "format", Message: fmt.Sprintf("不支援的格式：%s", format)}
	}
}

func (uc *LeaderUseCase) findGroup(ctx context.Context, groupID string) (entity.GroupSession, error) {
	groups, err := uc.catalog.Groups(ctx)
	if err != nil {
		return entity.GroupSession{}, err
	}
	for _, g := range groups {
		if g.ID == groupID {
			return g, nil
		}
	}
	return entity.GroupSession{}, &ValidationError{Field: "groupId", Message: "找不到這個團購場次"}
}

func (uc *LeaderUseCase) groupProductNames(ctx context.Context, groupID string) ([]string, error) {
	products, err := uc.catalog.Products(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(products))
	for _, p := range products {
		if p.GroupID == groupID {
			names = append(names, p.Name)
		}
	}
	return names, nil
}

// buildExportCSV writes a UTF-8 CSV prefixed with a BOM so spreadsheet
// applications pick up the Chinese headers correctly.
func buildExportCSV(headers []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("\ufeff")

	w := csv.NewWriter(&buf)
	if err := w.Write(headers); err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func buildExportXLSX(headers []string, rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
