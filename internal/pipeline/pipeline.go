// Package pipeline sequences the extraction stages: MIME sniff, OCR, LLM
// structuring, schema validation and normalization. Each run is independent
// and stateless; failures halt the run immediately with the failing stage's
// kind, and success is all-or-nothing.
package pipeline

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/meishiscan/cardscan/internal/card"
	"github.com/meishiscan/cardscan/internal/extract"
	"github.com/meishiscan/cardscan/internal/ingest"
	"github.com/meishiscan/cardscan/internal/llm"
	"github.com/meishiscan/cardscan/internal/mockdata"
	"github.com/meishiscan/cardscan/internal/schema"
)

// Result is the success shape handed to consumers: the full OCR text plus the
// normalized record. This two-field contract is stable; do not extend it
// without a version bump.
type Result struct {
	Text       string    `json:"text"`
	Structured card.Card `json:"structured"`
}

// Config holds per-call timeouts for the two external services. Expiry is a
// transient failure, distinct from auth or validation errors.
type Config struct {
	OCRTimeout time.Duration
	LLMTimeout time.Duration
}

type Pipeline struct {
	cfg        Config
	extractor  extract.TextExtractor
	structurer llm.Structurer
	log        *slog.Logger
}

func New(cfg Config, extractor extract.TextExtractor, structurer llm.Structurer, logger *slog.Logger) *Pipeline {
	if cfg.OCRTimeout <= 0 {
		cfg.OCRTimeout = 60 * time.Second
	}
	if cfg.LLMTimeout <= 0 {
		cfg.LLMTimeout = 60 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{cfg: cfg, extractor: extractor, structurer: structurer, log: logger}
}

// Run executes one extraction. With mockMode the external services are never
// touched and a fixed sample is returned. In live mode a missing or empty
// document fails before any sniffing happens.
func (p *Pipeline) Run(ctx context.Context, doc *ingest.Document, mockMode bool) (Result, error) {
	rid := uuid.New().String()

	if mockMode {
		s := mockdata.Random()
		p.log.Info("pipeline.mock", "req_id", rid, "last_name", s.Card.BasicInfo.LastName)
		return Result{Text: s.Text, Structured: s.Card}, nil
	}

	if doc.Empty() {
		return Result{}, newFailure(FailNoInput, "ファイルがアップロードされていません", nil, nil)
	}

	mimeType := ingest.SniffMIMEType(doc.MIMEType, doc.FileName)
	resolved := &ingest.Document{Bytes: doc.Bytes, MIMEType: mimeType, FileName: doc.FileName}
	p.log.Info("pipeline.start", "req_id", rid, "mime_type", mimeType, "bytes", len(doc.Bytes))

	text, err := p.extractText(ctx, resolved)
	if err != nil {
		return Result{}, err
	}

	structured, err := p.StructureText(ctx, text)
	if err != nil {
		return Result{}, err
	}

	p.log.Info("pipeline.ok", "req_id", rid, "text_len", len(text))
	return Result{Text: text, Structured: structured}, nil
}

func (p *Pipeline) extractText(ctx context.Context, doc *ingest.Document) (string, error) {
	ectx, cancel := context.WithTimeout(ctx, p.cfg.OCRTimeout)
	defer cancel()

	text, err := p.extractor.Extract(ectx, doc)
	if err != nil {
		p.log.Error("pipeline.extract.failed", "error", err)
		return "", newFailure(FailExtraction, "OCR処理に失敗しました", nil, err)
	}
	// empty OCR output is useless downstream; surface it instead of structuring ""
	if strings.TrimSpace(text) == "" {
		p.log.Warn("pipeline.extract.empty")
		return "", newFailure(FailExtraction, "OCR結果が空です", nil, nil)
	}
	return text, nil
}

// StructureText runs the text-only tail of the pipeline: LLM structuring,
// schema validation, normalization. Also serves callers that already hold
// extracted text.
func (p *Pipeline) StructureText(ctx context.Context, text string) (card.Card, error) {
	sctx, cancel := context.WithTimeout(ctx, p.cfg.LLMTimeout)
	defer cancel()

	raw, err := p.structurer.Structure(sctx, text)
	if err != nil {
		p.log.Error("pipeline.structure.failed", "error", err)
		return card.Card{}, newFailure(FailStructuring, "名刺情報の構造化に失敗しました", nil, err)
	}

	partial, err := schema.Validate(raw)
	if err != nil {
		return card.Card{}, p.validationFailure(err)
	}
	return card.Normalize(partial), nil
}

func (p *Pipeline) validationFailure(err error) *Failure {
	switch e := err.(type) {
	case *schema.ParseError:
		p.log.Error("pipeline.validate.malformed", "error", e.Err, "raw", e.Raw)
		return newFailure(FailMalformedOutput,
			"LLMからの応答をJSONとして解析できませんでした",
			map[string]any{"rawContent": e.Raw, "parseError": e.Err.Error()},
			e)
	case *schema.ViolationError:
		p.log.Error("pipeline.validate.violation", "fields", e.Fields)
		return newFailure(FailSchemaViolation,
			"構造化データの形式が不正です",
			map[string]any{"rawContent": e.Raw, "fields": e.Fields},
			e)
	default:
		p.log.Error("pipeline.validate.failed", "error", err)
		return newFailure(FailSchemaViolation, "構造化データの検証に失敗しました", nil, err)
	}
}
