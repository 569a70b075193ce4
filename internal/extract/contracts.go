// Package extract defines the OCR boundary: document bytes in, plain text out.
package extract

import (
	"context"

	"github.com/meishiscan/cardscan/internal/ingest"
)

// TextExtractor converts a document into its full plain-text content.
// An empty result is valid at this boundary; the pipeline treats it as a
// failure condition because nothing downstream can work with it.
type TextExtractor interface {
	Extract(ctx context.Context, doc *ingest.Document) (string, error)
}
