package entity

// Group session lifecycle statuses as stored in the Groups sheet.
const (
	GroupStatusOpen       = "open"
	GroupStatusComingSoon = "coming_soon"
	GroupStatusClosed     = "closed"
)

// GroupSession is a time-boxed group-purchase campaign with its own
// product subset.
type GroupSession struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Image       string `json:"image"`

	// EndDate is a date-only string (YYYY/MM/DD or YYYY-MM-DD). A session
	// whose stored status is "open" but whose end date has passed is
	// presented as closed; the sheet value stays untouched.
	EndDate          string `json:"endDate,omitempty"`
	ParticipantCount int    `json:"participantCount,omitempty"`
}
