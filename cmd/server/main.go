package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yourusername/groupbuy-backend/config"
	"github.com/yourusername/groupbuy-backend/internal/delivery/httpapi"
	"github.com/yourusername/groupbuy-backend/internal/infrastructure/gemini"
	"github.com/yourusername/groupbuy-backend/internal/infrastructure/sheets"
	"github.com/yourusername/groupbuy-backend/internal/infrastructure/storage"
	"github.com/yourusername/groupbuy-backend/internal/usecase"
	"github.com/yourusername/groupbuy-backend/pkg/logger"
)

func main() {
	initDefaultTimezone()

	logger.Init()
	logger.InfoLogger.Println("🚀 Starting group-buy backend...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Dependencies (dependency injection)

	// 1. Spreadsheet script client
	sheetRepo := sheets.NewClient(cfg.ScriptURL, cfg.SheetID)
	logger.InfoLogger.Printf("✅ Sheet client ready (sheet %s)", cfg.SheetID)

	// 2. Gemini AI client (optional)
	aiRepo, err := gemini.NewClient(ctx, cfg.GeminiAPIKey)
	if err != nil {
		log.Fatalf("❌ Failed to create Gemini client: %v", err)
	}
	if aiRepo.Enabled() {
		logger.InfoLogger.Println("✅ Gemini AI client ready (gemini-2.5-flash)")
	} else {
		logger.InfoLogger.Println("⚠️ GEMINI_API_KEY empty, AI helpers disabled")
	}

	// 3. In-memory catalog, seeded until the first sync lands
	catalogRepo := storage.NewMemoryCatalog(usecase.SeedProducts())
	logger.InfoLogger.Println("✅ Catalog store ready (in-memory)")

	// 4. Optional Postgres order archive
	archive, err := storage.NewPostgresOrderArchive()
	if err != nil {
		log.Fatalf("❌ Failed to connect order archive: %v", err)
	}
	if archive != nil {
		defer archive.Close()
		logger.InfoLogger.Println("✅ Postgres order archive ready")
	}

	// 5. Use cases
	syncUseCase := usecase.NewSyncUseCase(sheetRepo, catalogRepo, time.Duration(cfg.SyncIntervalSeconds)*time.Second)
	catalogUseCase := usecase.NewCatalogUseCase(catalogRepo)
	orderUseCase := usecase.NewOrderUseCase(sheetRepo, catalogRepo, archive, aiRepo, syncUseCase)
	leaderUseCase := usecase.NewLeaderUseCase(sheetRepo, catalogRepo, syncUseCase)
	aiUseCase := usecase.NewAIUseCase(aiRepo)
	logger.InfoLogger.Println("✅ Use cases ready")

	// 6. HTTP server
	server := httpapi.NewServer(catalogUseCase, orderUseCase, leaderUseCase, aiUseCase, syncUseCase, cfg.AdminToken)
	httpServer := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: server.Router(cfg.AllowedOrigins),
	}

	go syncUseCase.Start(ctx)
	go func() {
		logger.InfoLogger.Printf("🌐 HTTP server listening on :%s", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorLogger.Printf("❌ HTTP server error: %v", err)
			cancel()
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigChan:
		logger.InfoLogger.Println("⏳ Shutdown signal received...")
	case <-ctx.Done():
	}

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.ErrorLogger.Printf("❌ HTTP shutdown error: %v", err)
	}
	logger.InfoLogger.Println("✅ Server stopped.")
}

func initDefaultTimezone() {
	const tzName = "Asia/Taipei"
	if loc, err := time.LoadLocation(tzName); err == nil {
		time.Local = loc
		return
	}
	time.Local = time.FixedZone(tzName, 8*60*60)
}
