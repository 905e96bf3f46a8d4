package usecase

import "github.com/yourusername/groupbuy-backend/internal/domain/entity"

// SeedProducts is the built-in catalog served before the first products
// fetch lands, and the fallback when the Products sheet is empty.
func SeedProducts() []entity.Product {
	return []entity.Product{
		{ID: "p1", Name: "日本專櫃化妝品組", Category: "美妝保養", PriceEstimate: "$1,500-2,500"},
		{ID: "p2", Name: "限量款球鞋", Category: "時尚潮流", PriceEstimate: "$6,000+"},
		{ID: "p3", Name: "韓國人氣零食箱", Category: "異國美食", PriceEstimate: "$900-1,500"},
		{ID: "p4", Name: "遊戲主機 (PS5/Xbox)", Category: "3C 電子", PriceEstimate: "$15,000"},
		{ID: "p5", Name: "精品手提包", Category: "時尚潮流", PriceEstimate: "$30,000+"},
		{ID: "p6", Name: "綜合維他命", Category: "健康保健", PriceEstimate: "$600-1,200"},
		{ID: "p7", Name: "機械式鍵盤", Category: "3C 電子", PriceEstimate: "$3,000-6,000"},
	}
}

// SeedTrends is the static category popularity breakdown behind the
// trends chart. Live aggregation is an open follow-up.
func SeedTrends() []entity.ChartData {
	return []entity.ChartData{
		{Name: "美妝保養", Value: 35},
		{Name: "3C 電子", Value: 25},
		{Name: "時尚潮流", Value: 20},
		{Name: "異國美食", Value: 15},
		{Name: "其他", Value: 5},
	}
}
