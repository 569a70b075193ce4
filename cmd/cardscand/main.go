// Command cardscand serves the card extraction API over HTTP.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/meishiscan/cardscan/internal/common"
	"github.com/meishiscan/cardscan/internal/export"
	"github.com/meishiscan/cardscan/internal/extract"
	"github.com/meishiscan/cardscan/internal/extract/docai"
	"github.com/meishiscan/cardscan/internal/llm"
	"github.com/meishiscan/cardscan/internal/llm/gemini"
	"github.com/meishiscan/cardscan/internal/llm/openai"
	"github.com/meishiscan/cardscan/internal/pipeline"
	"github.com/meishiscan/cardscan/internal/server"
)

func main() {
	if err := godotenv.Load(); err == nil {
		slog.Info("loaded environment from .env")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		extractor  extract.TextExtractor
		structurer llm.Structurer
		sheets     server.SheetAppender
	)
	if !cfg.MockMode {
		dc, err := docai.NewClient(ctx, docai.Config{
			CredentialsJSON: []byte(cfg.OCR.CredentialsJSON),
			Location:        cfg.OCR.Location,
			ProcessorID:     cfg.OCR.ProcessorID,
		}, logger)
		if err != nil {
			logger.Error("document ai client", "error", err)
			os.Exit(1)
		}
		extractor = dc

		switch cfg.LLM.Provider {
		case "gemini":
			gc, err := gemini.NewClient(ctx, cfg.LLM.GeminiAPIKey, cfg.LLM.Model, logger)
			if err != nil {
				logger.Error("gemini client", "error", err)
				os.Exit(1)
			}
			defer func() { _ = gc.Close() }()
			structurer = gc
		default:
			structurer = openai.NewClient(openai.Config{
				APIKey:  cfg.LLM.APIKey,
				BaseURL: cfg.LLM.BaseURL,
				Model:   cfg.LLM.Model,
				Timeout: cfg.LLM.Timeout,
			}, logger)
		}
	}

	if cfg.OCR.CredentialsJSON != "" && cfg.Sheets.SpreadsheetID != "" {
		sa, err := export.NewSheetsAppender(ctx, []byte(cfg.OCR.CredentialsJSON), logger)
		if err != nil {
			logger.Error("sheets appender", "error", err)
			os.Exit(1)
		}
		sheets = sa
	}

	pipe := pipeline.New(pipeline.Config{
		OCRTimeout: cfg.OCR.Timeout,
		LLMTimeout: cfg.LLM.Timeout,
	}, extractor, structurer, logger)

	srv := server.New(cfg.Server, pipe, cfg.MockMode, sheets, cfg.Sheets.SpreadsheetID, logger)
	httpSrv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 3 * time.Minute, // covers OCR + LLM latency
	}

	go func() {
		logger.Info("http serving", "addr", cfg.Server.Addr, "mock_mode", cfg.MockMode)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
}
