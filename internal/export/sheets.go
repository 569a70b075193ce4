package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/meishiscan/cardscan/internal/card"
)

// SheetsAppender appends card rows to an existing Google Sheet.
type SheetsAppender struct {
	svc *sheets.Service
	log *slog.Logger
}

func NewSheetsAppender(ctx context.Context, credentialsJSON []byte, logger *slog.Logger) (*SheetsAppender, error) {
	if logger == nil {
		logger = slog.Default()
	}
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return &SheetsAppender{svc: svc, log: logger}, nil
}

// Append writes one card below the last occupied row of the spreadsheet and
// returns its URL. The next row is derived from column A, matching how the
// sheet is read by its human owners.
func (a *SheetsAppender) Append(ctx context.Context, spreadsheetID string, c card.Card) (string, error) {
	start := time.Now()

	existing, err := a.svc.Spreadsheets.Values.Get(spreadsheetID, "A:A").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("read sheet: %w", err)
	}
	nextRow := len(existing.Values) + 1
	rng := fmt.Sprintf("A%d:T%d", nextRow, nextRow)

	_, err = a.svc.Spreadsheets.Values.
		Update(spreadsheetID, rng, &sheets.ValueRange{Values: [][]any{Row(c)}}).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("append row: %w", err)
	}

	a.log.Info("export.sheets.ok",
		"spreadsheet_id", spreadsheetID,
		"row", nextRow,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return "https://docs.google.com/spreadsheets/d/" + spreadsheetID, nil
}
