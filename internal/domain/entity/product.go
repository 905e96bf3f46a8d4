package entity

// Product is one purchasable item offered inside a group session.
// The price estimate is a display string straight from the sheet
// ("$1,500-2,500", "$100/個"), never a parsed number.
type Product struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Category      string `json:"category"`
	PriceEstimate string `json:"priceEstimate"`
	Image         string `json:"image"`
	Description   string `json:"description,omitempty"`

	// GroupID links the product to a GroupSession. Empty means the product
	// is global or orphaned; it then never shows up in a group storefront.
	GroupID string `json:"groupId,omitempty"`
}

// ChartData is one slice of the category trend chart.
type ChartData struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}
