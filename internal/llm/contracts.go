// Package llm defines the text-structuring boundary: extracted card text in,
// raw model output out. Parsing the output is the schema package's job, so
// structuring failures and validation failures stay distinguishable.
package llm

import "context"

// Structurer turns OCR text into the model's raw textual response.
// Implementations must not parse or repair the response.
type Structurer interface {
	Structure(ctx context.Context, text string) (string, error)
}
