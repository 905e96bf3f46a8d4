package usecase

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/yourusername/groupbuy-backend/internal/domain/constants"
	"github.com/yourusername/groupbuy-backend/internal/domain/entity"
)

// Candidate column names per field. The sheet's headers depend on which form
// wrote them, so every known synonym is tried in order.
var (
	buyerKeys     = []string{"name", "buyer", "姓名", "暱稱", "訂購人"}
	emailKeys     = []string{"email", "mail", "信箱", "電子郵件"}
	addressKeys   = []string{"address", "地址", "取貨方式"}
	notesKeys     = []string{"notes", "note", "備註"}
	productKeys   = []string{"product", "products", "商品", "品項", "商品內容"}
	quantityKeys  = []string{"quantity", "qty", "數量", "總數量"}
	timestampKeys = []string{"timestamp", "time", "時間", "日期", "登記時間"}
	groupIDKeys   = []string{"groupId", "groupid", "group", "團購編號"}
	idKeys        = []string{"id", "orderId"}
)

// headerKeywords are column titles the feed sometimes echoes back as a data
// row. Matching is case-insensitive on the unmasked name.
var headerKeywords = []string{"name", "buyer", "姓名", "訂購人", "timestamp", "時間"}

// avatarPalette are the CSS color tokens the frontend renders avatars with.
var avatarPalette = []string{
	"bg-blue-500", "bg-pink-500", "bg-green-500", "bg-purple-500",
	"bg-yellow-500", "bg-indigo-500", "bg-red-500",
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
	"2006/01/02 15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02 下午 3:04:05",
	"2006/01/02",
	"2006-01-02",
}

// FormatOrder converts one raw sheet row into a display-ready RecentOrder.
// The second return value is false for rows that must be discarded: missing
// buyer name or a header-row echo. Filtering happens on the unmasked name;
// masking is applied exactly once afterwards.
func FormatOrder(row entity.SheetRow, index int, now time.Time) (entity.RecentOrder, bool) {
	name, found := FieldValue(row, buyerKeys...)
	if !found {
		name = constants.PlaceholderBuyer
	}
	if name == "" || name == constants.PlaceholderBuyer || isHeaderEcho(name) {
		return entity.RecentOrder{}, false
	}

	product, _ := FieldValue(row, productKeys...)
	quantity := parseQuantity(row)
	ts := parseTimestamp(row, now)

	order := entity.RecentOrder{
		ID:          orderID(row, index),
		Buyer:       MaskName(name),
		RealName:    name,
		Product:     product,
		Quantity:    quantity,
		Time:        RelativeTime(now, ts),
		Timestamp:   ts,
		AvatarColor: AvatarColor(name),
	}
	if email, ok := FieldValue(row, emailKeys...); ok {
		order.Email = email
	}
	if address, ok := FieldValue(row, addressKeys...); ok {
		order.Address = address
	}
	if notes, ok := FieldValue(row, notesKeys...); ok {
		order.Notes = notes
	}
	if groupID, ok := FieldValue(row, groupIDKeys...); ok {
		order.GroupID = groupID
	}
	return order, true
}

func isHeaderEcho(name string) bool {
	for _, kw := range headerKeywords {
		if strings.EqualFold(name, kw) {
			return true
		}
	}
	return false
}

func orderID(row entity.SheetRow, index int) string {
	if id, ok := FieldValue(row, idKeys...); ok {
		return id
	}
	return fmt.Sprintf("order-%d", index)
}

func parseQuantity(row entity.SheetRow) int {
	raw, ok := FieldValue(row, quantityKeys...)
	if !ok {
		return 1
	}
	qty, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || qty < 1 {
		return 1
	}
	return qty
}

func parseTimestamp(row entity.SheetRow, now time.Time) time.Time {
	raw, ok := FieldValue(row, timestampKeys...)
	if !ok {
		return now
	}
	raw = strings.TrimSpace(raw)
	for _, layout := range timestampLayouts {
		if ts, err := time.ParseInLocation(layout, raw, now.Location()); err == nil {
			return ts
		}
	}
	return now
}

// MaskName hides the middle of a buyer name for the public ticker:
// identity for a single rune, first rune + "*" for two runes, and
// first + "*" + rest-from-index-2 beyond that (王小明 → 王*明).
func MaskName(name string) string {
	runes := []rune(name)
	switch {
	case len(runes) <= 1:
		return name
	case len(runes) == 2:
		return string(runes[0]) + "*"
	default:
		return string(runes[0]) + "*" + string(runes[2:])
	}
}

// RelativeTime buckets the elapsed time into 年/月/天/小時/分鐘 against fixed
// second thresholds. The first bucket whose ratio exceeds 1 wins and is
// floored, otherwise "剛剛". The ratio is compared before flooring, so 90
// seconds is "1 分鐘前", not 剛剛.
func RelativeTime(now, ts time.Time) string {
	seconds := now.Sub(ts).Seconds()

	buckets := []struct {
		threshold float64
		label     string
	}{
		{constants.SecondsPerYear, "年前"},
		{constants.SecondsPerMonth, "個月前"},
		{constants.SecondsPerDay, "天前"},
		{constants.SecondsPerHour, "小時前"},
		{constants.SecondsPerMinute, "分鐘前"},
	}
	for _, b := range buckets {
		if ratio := seconds / b.threshold; ratio > 1 {
			return fmt.Sprintf("%d %s", int(ratio), b.label)
		}
	}
	return "剛剛"
}

// AvatarColor picks a palette token from a deterministic hash of the
// unmasked buyer name, so the same buyer keeps the same color across syncs.
func AvatarColor(name string) string {
	var h int32
	for _, r := range name {
		h = int32(r) + (h << 5) - h
	}
	idx := int(h) % len(avatarPalette)
	if idx < 0 {
		idx = -idx
	}
	return avatarPalette[idx]
}
