// Package server exposes the extraction pipeline over HTTP. Handlers are thin
// wrappers: they translate requests into pipeline calls and pipeline failures
// into the stable {error, details?} contract.
package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/meishiscan/cardscan/internal/card"
	"github.com/meishiscan/cardscan/internal/common"
	"github.com/meishiscan/cardscan/internal/pipeline"
)

// SheetAppender is the persistence integration consumed at its interface
// boundary; nil disables the save-to-sheets route.
type SheetAppender interface {
	Append(ctx context.Context, spreadsheetID string, c card.Card) (string, error)
}

type Server struct {
	cfg      common.ServerConfig
	pipe     *pipeline.Pipeline
	mockMode bool
	sheets   SheetAppender
	sheetsID string
	log      *slog.Logger
}

func New(cfg common.ServerConfig, pipe *pipeline.Pipeline, mockMode bool, sheets SheetAppender, sheetsID string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		cfg:      cfg,
		pipe:     pipe,
		mockMode: mockMode,
		sheets:   sheets,
		sheetsID: sheetsID,
		log:      logger,
	}
}

// Routes builds the router. Everything under /api sits behind basic auth;
// the liveness probe does not.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(BasicAuth(s.cfg.BasicAuthUser, s.cfg.BasicAuthPass))
		r.Route("/api", func(r chi.Router) {
			r.Post("/ocr", s.handleOCR)
			r.Post("/parse-card", s.handleParseCard)
			r.Post("/save-to-sheets", s.handleSaveToSheets)
			r.Post("/export-xlsx", s.handleExportXLSX)
		})
	})

	return r
}
