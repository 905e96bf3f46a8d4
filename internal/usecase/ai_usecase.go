package usecase

import (
	"context"
	"strings"

	"github.com/yourusername/groupbuy-backend/internal/domain/repository"
	"github.com/yourusername/groupbuy-backend/pkg/logger"
)

// AIUseCase fronts the generative helpers. Failures degrade to empty
// results; nothing in the storefront depends on this working.
type AIUseCase struct {
	ai repository.AIRepository
}

func NewAIUseCase(ai repository.AIRepository) *AIUseCase {
	return &AIUseCase{ai: ai}
}

func (uc *AIUseCase) Enabled() bool {
	return uc.ai != nil && uc.ai.Enabled()
}

// Recommend returns product-name suggestions for a shopper's free-text query.
func (uc *AIUseCase) Recommend(ctx context.Context, query string) ([]string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, &ValidationError{Field: "query", Message: "請輸入想搜尋的商品"}
	}
	if uc.ai == nil {
		return []string{}, nil
	}
	suggestions, err := uc.ai.RecommendProducts(ctx, query)
	if err != nil {
		logger.ErrorLogger.Printf("Recommendation failed for %q: %v", query, err)
		return []string{}, nil
	}
	return suggestions, nil
}

// DescribeProduct writes a short sales blurb for the leader editor.
func (uc *AIUseCase) DescribeProduct(ctx context.Context, name, priceEstimate string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", &ValidationError{Field: "name", Message: "請先輸入商品名稱"}
	}
	if uc.ai == nil {
		return "", nil
	}
	description, err := uc.ai.GenerateDescription(ctx, name, priceEstimate)
	if err != nil {
		logger.ErrorLogger.Printf("Description generation failed for %q: %v", name, err)
		return "", nil
	}
	return description, nil
}
