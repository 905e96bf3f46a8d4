package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/yourusername/groupbuy-backend/internal/domain/constants"
)

// Config holds the server configuration, loaded from the environment.
type Config struct {
	// ScriptURL is the deployed Apps Script web-app endpoint backing the
	// spreadsheet. Required.
	ScriptURL string

	// SheetID identifies the spreadsheet, kept for logs and diagnostics.
	SheetID string

	// GeminiAPIKey enables the AI helpers. Empty disables them.
	GeminiAPIKey string

	// AdminToken guards the leader endpoints. Empty leaves them open,
	// which is only acceptable for local development.
	AdminToken string

	HTTPPort            string
	SyncIntervalSeconds int
	AllowedOrigins      []string
}

// Load reads the configuration from a .env file (if present) and the
// environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	config := &Config{
		ScriptURL:           strings.TrimSpace(os.Getenv("SHEETS_SCRIPT_URL")),
		SheetID:             strings.TrimSpace(os.Getenv("SHEETS_SHEET_ID")),
		GeminiAPIKey:        os.Getenv("GEMINI_API_KEY"),
		AdminToken:          os.Getenv("ADMIN_TOKEN"),
		HTTPPort:            getEnvString("HTTP_PORT", "8080"),
		SyncIntervalSeconds: getEnvInt("SYNC_INTERVAL_SECONDS", constants.DefaultSyncIntervalSeconds),
	}

	if raw := strings.TrimSpace(os.Getenv("ALLOWED_ORIGINS")); raw != "" {
		for _, origin := range strings.Split(raw, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				config.AllowedOrigins = append(config.AllowedOrigins, origin)
			}
		}
	}

	if config.ScriptURL == "" {
		return nil, fmt.Errorf("SHEETS_SCRIPT_URL environment variable is empty")
	}
	if config.SyncIntervalSeconds <= 0 {
		return nil, fmt.Errorf("SYNC_INTERVAL_SECONDS must be positive, got %d", config.SyncIntervalSeconds)
	}

	return config, nil
}

func getEnvString(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
