package entity

import "time"

// SheetRow is one raw row from the orders sheet. Column headers are not
// guaranteed to match any fixed schema or casing, so values are looked up
// through the field normalizer rather than struct tags.
type SheetRow map[string]any

// RecentOrder is a display-ready order for the live ticker and the
// leader views. Buyer is always masked; the contact fields are only
// populated for leader sessions.
type RecentOrder struct {
	ID          string    `json:"id"`
	Buyer       string    `json:"buyer"`
	RealName    string    `json:"realName,omitempty"`
	Email       string    `json:"email,omitempty"`
	Address     string    `json:"address,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	Product     string    `json:"product"`
	Quantity    int       `json:"quantity"`
	Time        string    `json:"time"`
	Timestamp   time.Time `json:"timestamp,omitempty"`
	AvatarColor string    `json:"avatarColor"`
	GroupID     string    `json:"groupId,omitempty"`
	GroupTitle  string    `json:"groupTitle,omitempty"`
}

// CartItem is one line of an in-progress order form. Quantity is always
// at least 1; a line that would drop to 0 is removed instead.
type CartItem struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Quantity      int    `json:"quantity"`
	PriceEstimate string `json:"priceEstimate"`
}

// OrderDraft holds the contact fields of the order form.
type OrderDraft struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

// OrderSubmission is the flattened newOrder payload written to the sheet:
// contact fields plus the human-readable product summary
// ("蔥油餅 x3, 珍珠奶茶 x2") and the total quantity.
type OrderSubmission struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	Notes    string `json:"notes"`
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}
