package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/meishiscan/cardscan/internal/ingest"
)

type fakeExtractor struct {
	text string
	err  error
	doc  *ingest.Document
}

func (f *fakeExtractor) Extract(_ context.Context, doc *ingest.Document) (string, error) {
	f.doc = doc
	return f.text, f.err
}

type fakeStructurer struct {
	out    string
	err    error
	called bool
}

func (f *fakeStructurer) Structure(context.Context, string) (string, error) {
	f.called = true
	return f.out, f.err
}

const validOutput = `{"basicInfo":{"lastName":"田中","firstName":"太郎"},"contacts":{}}`

func testDoc() *ingest.Document {
	return &ingest.Document{Bytes: []byte("img"), FileName: "card.jpg"}
}

func kindOf(t *testing.T, err error) FailureKind {
	t.Helper()
	var f *Failure
	if !errors.As(err, &f) {
		t.Fatalf("want *Failure, got %T: %v", err, err)
	}
	return f.Kind
}

func TestRunHappyPath(t *testing.T) {
	ex := &fakeExtractor{text: "田中 太郎\n株式会社サンプル"}
	st := &fakeStructurer{out: validOutput}
	p := New(Config{}, ex, st, nil)

	res, err := p.Run(context.Background(), testDoc(), false)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Text != "田中 太郎\n株式会社サンプル" {
		t.Errorf("text = %q", res.Text)
	}
	if res.Structured.BasicInfo.LastName != "田中" {
		t.Errorf("structured = %+v", res.Structured)
	}
	// sections the model omitted come back normalized
	if res.Structured.EventInfo.EventDate != nil {
		t.Error("eventInfo should be normalized to nulls")
	}
	// sniffed type reaches the extractor
	if ex.doc.MIMEType != ingest.MIMEJPEG {
		t.Errorf("extractor saw mime %q, want image/jpeg", ex.doc.MIMEType)
	}
}

func TestRunNoInput(t *testing.T) {
	ex := &fakeExtractor{}
	p := New(Config{}, ex, &fakeStructurer{}, nil)

	for name, doc := range map[string]*ingest.Document{
		"nil document":   nil,
		"empty document": {FileName: "card.jpg"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := p.Run(context.Background(), doc, false)
			if got := kindOf(t, err); got != FailNoInput {
				t.Errorf("kind = %s, want no_input", got)
			}
		})
	}
	if ex.doc != nil {
		t.Error("no sniffing or extraction may happen without input")
	}
}

func TestRunEmptyOCRText(t *testing.T) {
	st := &fakeStructurer{out: validOutput}
	p := New(Config{}, &fakeExtractor{text: "  \n "}, st, nil)

	_, err := p.Run(context.Background(), testDoc(), false)
	if got := kindOf(t, err); got != FailExtraction {
		t.Errorf("kind = %s, want extraction_failure", got)
	}
	if st.called {
		t.Error("structuring must not run on empty OCR text")
	}
}

func TestRunExtractionError(t *testing.T) {
	p := New(Config{}, &fakeExtractor{err: errors.New("processor unreachable")}, &fakeStructurer{}, nil)
	_, err := p.Run(context.Background(), testDoc(), false)
	if got := kindOf(t, err); got != FailExtraction {
		t.Errorf("kind = %s, want extraction_failure", got)
	}
}

func TestRunStructuringError(t *testing.T) {
	p := New(Config{}, &fakeExtractor{text: "text"}, &fakeStructurer{err: errors.New("429")}, nil)
	_, err := p.Run(context.Background(), testDoc(), false)
	if got := kindOf(t, err); got != FailStructuring {
		t.Errorf("kind = %s, want structuring_failure", got)
	}
}

func TestRunMalformedOutput(t *testing.T) {
	p := New(Config{}, &fakeExtractor{text: "text"}, &fakeStructurer{out: "not json at all"}, nil)
	_, err := p.Run(context.Background(), testDoc(), false)

	var f *Failure
	if !errors.As(err, &f) {
		t.Fatalf("want *Failure, got %v", err)
	}
	if f.Kind != FailMalformedOutput {
		t.Errorf("kind = %s, want malformed_output", f.Kind)
	}
	if f.Details["rawContent"] != "not json at all" {
		t.Errorf("details.rawContent = %v, want the verbatim model output", f.Details["rawContent"])
	}
	if f.Details["parseError"] == nil {
		t.Error("details.parseError must be preserved")
	}
}

func TestRunSchemaViolation(t *testing.T) {
	p := New(Config{}, &fakeExtractor{text: "text"}, &fakeStructurer{out: `{"basicInfo":{"lastName":"田中"},"contacts":{}}`}, nil)
	_, err := p.Run(context.Background(), testDoc(), false)

	var f *Failure
	if !errors.As(err, &f) {
		t.Fatalf("want *Failure, got %v", err)
	}
	if f.Kind != FailSchemaViolation {
		t.Errorf("kind = %s, want schema_violation", f.Kind)
	}
	fields, ok := f.Details["fields"].(map[string]string)
	if !ok {
		t.Fatalf("details.fields = %T", f.Details["fields"])
	}
	if _, ok := fields["basicInfo.firstName"]; !ok {
		t.Errorf("violations should cite basicInfo.firstName: %v", fields)
	}
}

func TestRunMockMode(t *testing.T) {
	// external stages must never be touched in mock mode
	ex := &fakeExtractor{err: errors.New("must not be called")}
	st := &fakeStructurer{err: errors.New("must not be called")}
	p := New(Config{}, ex, st, nil)

	known := map[string]bool{"田中": true, "佐藤": true, "山田": true}
	for range 10 {
		res, err := p.Run(context.Background(), nil, true)
		if err != nil {
			t.Fatalf("Run(mock): %v", err)
		}
		if !known[res.Structured.BasicInfo.LastName] {
			t.Fatalf("mock lastName = %q, not in fixed set", res.Structured.BasicInfo.LastName)
		}
		if res.Text == "" {
			t.Fatal("mock result must carry extracted text")
		}
	}
	if st.called || ex.doc != nil {
		t.Error("mock mode must short-circuit before external stages")
	}
}

func TestStructureTextStandalone(t *testing.T) {
	p := New(Config{}, &fakeExtractor{}, &fakeStructurer{out: validOutput}, nil)
	c, err := p.StructureText(context.Background(), "田中 太郎")
	if err != nil {
		t.Fatalf("StructureText: %v", err)
	}
	if c.BasicInfo.FirstName != "太郎" {
		t.Errorf("card = %+v", c)
	}
}

func TestFailureError(t *testing.T) {
	f := newFailure(FailExtraction, "OCR処理に失敗しました", nil, errors.New("timeout"))
	want := "extraction_failure: OCR処理に失敗しました: timeout"
	if f.Error() != want {
		t.Errorf("Error() = %q, want %q", f.Error(), want)
	}
	if !errors.Is(f, f.Cause) {
		t.Error("Failure must unwrap to its cause")
	}
}
