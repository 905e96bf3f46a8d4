package usecase

import (
	"testing"
	"time"

	"github.com/yourusername/groupbuy-backend/internal/domain/entity"
)

func TestFormatOrder_ChineseHeaders(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	row := entity.SheetRow{
		"姓名": "陳大華",
		"商品": "蔥油餅 x3",
		"數量": "3",
	}

	order, ok := FormatOrder(row, 0, now)
	if !ok {
		t.Fatalf("row should produce an order")
	}
	if order.Buyer != "陳*華" {
		t.Fatalf("buyer should be masked, got %q", order.Buyer)
	}
	if order.RealName != "陳大華" {
		t.Fatalf("real name should be kept, got %q", order.RealName)
	}
	if order.Quantity != 3 {
		t.Fatalf("quantity should be 3, got %d", order.Quantity)
	}
	if order.Product != "蔥油餅 x3" {
		t.Fatalf("unexpected product: %q", order.Product)
	}
	if order.AvatarColor == "" {
		t.Fatalf("avatar color should be assigned")
	}
}

func TestFormatOrder_DiscardsHeaderEcho(t *testing.T) {
	now := time.Now()
	row := entity.SheetRow{"name": "Name", "product": "product"}

	if _, ok := FormatOrder(row, 0, now); ok {
		t.Fatalf("header echo row should be discarded")
	}
}

func TestFormatOrder_DiscardsNamelessRow(t *testing.T) {
	now := time.Now()
	row := entity.SheetRow{"product": "蔥油餅 x1", "quantity": "1"}

	if _, ok := FormatOrder(row, 0, now); ok {
		t.Fatalf("row without a buyer name should be discarded")
	}
}

func TestFormatOrder_SyntheticIDFromIndex(t *testing.T) {
	now := time.Now()
	row := entity.SheetRow{"姓名": "王小明", "商品": "珍珠奶茶 x2", "數量": 2}

	order, ok := FormatOrder(row, 7, now)
	if !ok {
		t.Fatalf("row should produce an order")
	}
	if order.ID != "order-7" {
		t.Fatalf("expected synthetic id order-7, got %q", order.ID)
	}
}

func TestMaskName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"王", "王"},
		{"小明", "小*"},
		{"王小明", "王*明"},
		{"歐陽大大", "歐*大大"},
	}
	for _, c := range cases {
		if got := MaskName(c.in); got != c.want {
			t.Fatalf("MaskName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestMaskName_AlreadyMaskedStaysStable(t *testing.T) {
	once := MaskName("王小明")
	twice := MaskName(once)
	if twice != "王*明" {
		t.Fatalf("masking a masked name changed it to %q", twice)
	}
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		ago  time.Duration
		want string
	}{
		{30 * time.Second, "剛剛"},
		{90 * time.Second, "1 分鐘前"},
		{2 * time.Hour, "2 小時前"},
		{49 * time.Hour, "2 天前"},
		{40 * 24 * time.Hour, "1 個月前"},
		{800 * 24 * time.Hour, "2 年前"},
	}
	for _, c := range cases {
		if got := RelativeTime(now, now.Add(-c.ago)); got != c.want {
			t.Fatalf("RelativeTime(-%v) = %q, want %q", c.ago, got, c.want)
		}
	}
}

func TestAvatarColor_DeterministicAndInPalette(t *testing.T) {
	first := AvatarColor("陳大華")
	second := AvatarColor("陳大華")
	if first != second {
		t.Fatalf("same name gave different colors: %q vs %q", first, second)
	}

	found := false
	for _, color := range avatarPalette {
		if color == first {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("color %q is not in the palette", first)
	}
}
