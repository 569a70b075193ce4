package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/meishiscan/cardscan/internal/card"
	"github.com/meishiscan/cardscan/internal/export"
	"github.com/meishiscan/cardscan/internal/ingest"
	"github.com/meishiscan/cardscan/internal/mockdata"
	"github.com/meishiscan/cardscan/internal/pipeline"
)

const maxUploadBytes = 10 << 20

// errorResponse is the stable failure shape: a short message plus optional
// opaque diagnostics.
type errorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func (s *Server) handleOCR(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	var doc *ingest.Document
	if err := r.ParseMultipartForm(maxUploadBytes); err == nil {
		if file, header, err := r.FormFile("file"); err == nil {
			defer func() { _ = file.Close() }()
			b, err := io.ReadAll(file)
			if err != nil {
				s.writeError(w, http.StatusInternalServerError, errorResponse{Error: "ファイルの読み込みに失敗しました"})
				return
			}
			doc = &ingest.Document{
				Bytes:    b,
				MIMEType: header.Header.Get("Content-Type"),
				FileName: header.Filename,
			}
		}
	}
	// a nil doc reaches the pipeline as the no-input case (unless mocked)

	res, err := s.pipe.Run(r.Context(), doc, s.mockMode)
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleParseCard(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
		s.writeError(w, http.StatusBadRequest, errorResponse{Error: "テキストが指定されていません"})
		return
	}

	if s.mockMode {
		sample := mockdata.Random()
		s.writeJSON(w, http.StatusOK, pipeline.Result{Text: req.Text, Structured: sample.Card})
		return
	}

	structured, err := s.pipe.StructureText(r.Context(), req.Text)
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, pipeline.Result{Text: req.Text, Structured: structured})
}

type saveToSheetsRequest struct {
	BusinessCard  *card.Card `json:"businessCard"`
	SpreadsheetID string     `json:"spreadsheetId"`
}

type saveToSheetsResponse struct {
	Success        bool   `json:"success"`
	SpreadsheetURL string `json:"spreadsheetUrl,omitempty"`
	Message        string `json:"message"`
}

func (s *Server) handleSaveToSheets(w http.ResponseWriter, r *http.Request) {
	var req saveToSheetsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.BusinessCard == nil {
		s.writeJSON(w, http.StatusBadRequest, saveToSheetsResponse{Message: "名刺データが提供されていません"})
		return
	}
	if s.sheets == nil {
		s.writeJSON(w, http.StatusServiceUnavailable, saveToSheetsResponse{Message: "スプレッドシート連携が設定されていません"})
		return
	}

	spreadsheetID := req.SpreadsheetID
	if spreadsheetID == "" {
		spreadsheetID = s.sheetsID
	}
	if spreadsheetID == "" {
		s.writeJSON(w, http.StatusBadRequest, saveToSheetsResponse{Message: "スプレッドシートIDが設定されていません"})
		return
	}

	url, err := s.sheets.Append(r.Context(), spreadsheetID, *req.BusinessCard)
	if err != nil {
		s.log.Error("server.save_to_sheets.failed", "error", err)
		s.writeJSON(w, http.StatusInternalServerError, saveToSheetsResponse{Message: "スプレッドシートへの保存中にエラーが発生しました"})
		return
	}
	s.writeJSON(w, http.StatusOK, saveToSheetsResponse{
		Success:        true,
		SpreadsheetURL: url,
		Message:        "名刺情報をスプレッドシートに保存しました",
	})
}

func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BusinessCard *card.Card `json:"businessCard"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.BusinessCard == nil {
		s.writeError(w, http.StatusBadRequest, errorResponse{Error: "名刺データが提供されていません"})
		return
	}

	b, err := export.CardsXLSX([]card.Card{*req.BusinessCard})
	if err != nil {
		s.log.Error("server.export_xlsx.failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, errorResponse{Error: "エクスポートに失敗しました"})
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="cards.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

// writeFailure maps pipeline failures onto the {error, details?} contract.
// Upstream service failures read as bad gateway; everything else is a client
// visible processing error.
func (s *Server) writeFailure(w http.ResponseWriter, err error) {
	var f *pipeline.Failure
	if !errors.As(err, &f) {
		s.log.Error("server.pipeline.unexpected_error", "error", err)
		s.writeError(w, http.StatusInternalServerError, errorResponse{Error: "処理中にエラーが発生しました"})
		return
	}

	status := http.StatusBadRequest
	switch f.Kind {
	case pipeline.FailExtraction, pipeline.FailStructuring:
		if f.Cause != nil {
			status = http.StatusBadGateway
		}
	}
	s.writeError(w, status, errorResponse{Error: f.Message, Details: f.Details})
}

func (s *Server) writeError(w http.ResponseWriter, status int, resp errorResponse) {
	s.writeJSON(w, status, resp)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("server.write_json.failed", "error", err)
	}
}
