// Command cardscan runs the extraction pipeline once on a local file and
// prints the {text, structured} result as JSON. Development tool.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/meishiscan/cardscan/internal/common"
	"github.com/meishiscan/cardscan/internal/extract"
	"github.com/meishiscan/cardscan/internal/extract/docai"
	"github.com/meishiscan/cardscan/internal/ingest"
	"github.com/meishiscan/cardscan/internal/llm"
	"github.com/meishiscan/cardscan/internal/llm/gemini"
	"github.com/meishiscan/cardscan/internal/llm/openai"
	"github.com/meishiscan/cardscan/internal/mockdata"
	"github.com/meishiscan/cardscan/internal/pipeline"
)

func main() {
	mock := flag.Bool("mock", false, "use mock data instead of live services")
	index := flag.Int("index", -1, "with -mock, pick a fixed sample instead of a random one")
	flag.Parse()

	_ = godotenv.Load()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if *mock && *index >= 0 {
		s := mockdata.ByIndex(*index)
		printResult(pipeline.Result{Text: s.Text, Structured: s.Card})
		return
	}

	cfg := common.LoadConfig()
	cfg.MockMode = cfg.MockMode || *mock

	ctx := context.Background()
	var (
		extractor  extract.TextExtractor
		structurer llm.Structurer
		doc        *ingest.Document
	)

	if !cfg.MockMode {
		if flag.NArg() != 1 {
			fmt.Fprintln(os.Stderr, "usage: cardscan [-mock] [-index n] <file>")
			os.Exit(2)
		}
		path := flag.Arg(0)
		b, err := os.ReadFile(path)
		if err != nil {
			logger.Error("read file", "path", path, "error", err)
			os.Exit(1)
		}
		doc = &ingest.Document{Bytes: b, FileName: filepath.Base(path)}

		if err := cfg.Validate(); err != nil {
			logger.Error("invalid configuration", "error", err)
			os.Exit(1)
		}
		extractor, err = docai.NewClient(ctx, docai.Config{
			CredentialsJSON: []byte(cfg.OCR.CredentialsJSON),
			Location:        cfg.OCR.Location,
			ProcessorID:     cfg.OCR.ProcessorID,
		}, logger)
		if err != nil {
			logger.Error("document ai client", "error", err)
			os.Exit(1)
		}
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

	pipe := pipeline.New(pipeline.Config{
		OCRTimeout: cfg.OCR.Timeout,
		LLMTimeout: cfg.LLM.Timeout,
	}, extractor, structurer, logger)

	res, err := pipe.Run(ctx, doc, cfg.MockMode)
	if err != nil {
		logger.Error("pipeline failed", "error", err)
		os.Exit(1)
	}
	printResult(res)
}

func printResult(res pipeline.Result) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		slog.Error("encode result", "error", err)
		os.Exit(1)
	}
}
