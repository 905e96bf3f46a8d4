package repository

import "context"

// AIRepository is the generative text helper behind the storefront's
// suggestion box and the leader editor's copywriting button. Every method
// is best-effort: callers fall back to empty lists or static strings and
// never block the order flow on it.
type AIRepository interface {
	// RecommendProducts returns trending product-name suggestions for a
	// free-text shopper query.
	RecommendProducts(ctx context.Context, query string) ([]string, error)

	// GenerateDescription writes a short sales blurb for a product.
	GenerateDescription(ctx context.Context, name, priceEstimate string) (string, error)

	// BuyingTip returns a one-sentence fun fact or buying tip.
	BuyingTip(ctx context.Context, productName string) (string, error)

	// Enabled reports whether an API key was configured.
	Enabled() bool
}
