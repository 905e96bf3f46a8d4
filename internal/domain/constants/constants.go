package constants

// Sync constants
const (
	// DefaultSyncIntervalSeconds is the polling period of the data sync loop.
	DefaultSyncIntervalSeconds = 12

	// ResyncDelaySeconds is the wait between a successful order submission
	// and the reconciling resync against the sheet.
	ResyncDelaySeconds = 2

	// MaxResponseBytes caps how much of a sheet response is read.
	MaxResponseBytes = 10 << 20

	// SheetRequestTimeoutSeconds is the per-request timeout against the
	// Apps Script endpoint.
	SheetRequestTimeoutSeconds = 20
)

// Ticker constants
const (
	// DefaultTickerLimit is how many recent orders the public ticker returns.
	DefaultTickerLimit = 30

	// TickerWindowSize is how many entries the rotating ticker shows at once.
	TickerWindowSize = 4

	// PlaceholderBuyer is the sentinel used when an order row carries no
	// resolvable buyer name. Rows resolving to it are discarded.
	PlaceholderBuyer = "匿名團友"
)

// Relative-time bucket thresholds, in seconds. Integer division by these is
// an intentional approximation: not leap-aware, not calendar-aware.
const (
	SecondsPerYear   = 31536000
	SecondsPerMonth  = 2592000
	SecondsPerDay    = 86400
	SecondsPerHour   = 3600
	SecondsPerMinute = 60
)

// AI constants
const (
	// GeminiModelName Gemini AI model name
	GeminiModelName = "gemini-2.5-flash"

	// AITemperature response determinism (0.0-1.0)
	AITemperature = 0.3

	// AIMaxRetries attempts per Gemini call
	AIMaxRetries = 2

	// AIRetryDelaySeconds wait between Gemini attempts
	AIRetryDelaySeconds = 2

	// RecommendationCount how many product suggestions to ask for
	RecommendationCount = 5
)
