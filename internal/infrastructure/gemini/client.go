package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/yourusername/groupbuy-backend/internal/domain/constants"
	"github.com/yourusername/groupbuy-backend/internal/domain/repository"
)

// Static fallbacks when the AI path is disabled or fails mid-call.
const (
	fallbackTip      = "非常棒的商品選擇。"
	fallbackTipEmpty = "不錯的選擇！"
)

type geminiClient struct {
	client    *genai.Client
	textModel *genai.GenerativeModel
	jsonModel *genai.GenerativeModel
}

// NewClient creates the Gemini helper. An empty API key returns a disabled
// client that answers with fallbacks and never makes a network call.
func NewClient(ctx context.Context, apiKey string) (repository.AIRepository, error) {
	if strings.TrimSpace(apiKey) == "" {
		return disabledClient{}, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	textModel := client.GenerativeModel(constants.GeminiModelName)
	textModel.SetTemperature(constants.AITemperature)

	// Recommendations come back as a schema-constrained JSON string array.
	jsonModel := client.GenerativeModel(constants.GeminiModelName)
	jsonModel.SetTemperature(constants.AITemperature)
	jsonModel.ResponseMIMEType = "application/json"
	jsonModel.ResponseSchema = &genai.Schema{
		Type:  genai.TypeArray,
		Items: &genai.Schema{Type: genai.TypeString},
	}

	return &geminiClient{
		client:    client,
		textModel: textModel,
		jsonModel: jsonModel,
	}, nil
}

func (g *geminiClient) Enabled() bool { return true }

// RecommendProducts asks for trending product-name suggestions for a
// shopper's free-text query.
func (g *geminiClient) RecommendProducts(ctx context.Context, query string) ([]string, error) {
	prompt := fmt.Sprintf(RecommendationInstruction, constants.RecommendationCount, query)

	text, err := g.generate(ctx, g.jsonModel, prompt)
	if err != nil {
		return nil, err
	}

	var names []string
	if err := json.Unmarshal([]byte(text), &names); err != nil {
		return nil, fmt.Errorf("gemini: suggestions decode failed: %w", err)
	}
	return names, nil
}

// GenerateDescription writes the leader editor's product blurb.
func (g *geminiClient) GenerateDescription(ctx context.Context, name, priceEstimate string) (string, error) {
	prompt := fmt.Sprintf(DescriptionInstruction, name, priceEstimate)
	return g.generate(ctx, g.textModel, prompt)
}

// BuyingTip returns a one-sentence tip. Failures degrade to a static
// placeholder rather than an error; this path must never block an order.
func (g *geminiClient) BuyingTip(ctx context.Context, productName string) (string, error) {
	prompt := fmt.Sprintf(BuyingTipInstruction, productName)

	text, err := g.generate(ctx, g.textModel, prompt)
	if err != nil {
		log.Printf("⚠️ Gemini buying tip error: %v", err)
		return fallbackTip, nil
	}
	if strings.TrimSpace(text) == "" {
		return fallbackTipEmpty, nil
	}
	return text, nil
}

// generate runs one prompt with retries.
func (g *geminiClient) generate(ctx context.Context, model *genai.GenerativeModel, prompt string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= constants.AIMaxRetries; attempt++ {
		resp, err := model.GenerateContent(ctx, genai.Text(prompt))
		if err == nil {
			if text := extractText(resp); strings.TrimSpace(text) != "" {
				return text, nil
			}
			lastErr = fmt.Errorf("empty response")
		} else {
			lastErr = err
		}

		log.Printf("⚠️ Gemini attempt %d/%d failed: %v", attempt, constants.AIMaxRetries, lastErr)
		if attempt < constants.AIMaxRetries {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(constants.AIRetryDelaySeconds * time.Second):
			}
		}
	}
	return "", fmt.Errorf("gemini: no response after %d attempts: %w", constants.AIMaxRetries, lastErr)
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return strings.TrimSpace(b.String())
}

// disabledClient is the no-credentials stand-in: empty suggestions, empty
// blurbs, static tip, no network calls.
type disabledClient struct{}

func (disabledClient) Enabled() bool { return false }

func (disabledClient) RecommendProducts(ctx context.Context, query string) ([]string, error) {
	return []string{}, nil
}

func (disabledClient) GenerateDescription(ctx context.Context, name, priceEstimate string) (string, error) {
	return "", nil
}

func (disabledClient) BuyingTip(ctx context.Context, productName string) (string, error) {
	return fallbackTip, nil
}
