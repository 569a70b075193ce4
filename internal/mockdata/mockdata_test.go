package mockdata

import (
	"encoding/json"
	"testing"

	"github.com/meishiscan/cardscan/internal/schema"
)

func TestByIndexClamps(t *testing.T) {
	tests := []struct {
		name     string
		index    int
		lastName string
	}{
		{"negative clamps to first", -5, "田中"},
		{"first", 0, "田中"},
		{"second", 1, "佐藤"},
		{"last", 2, "山田"},
		{"beyond clamps to last", 99, "山田"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ByIndex(tt.index).Card.BasicInfo.LastName; got != tt.lastName {
				t.Errorf("ByIndex(%d).lastName = %q, want %q", tt.index, got, tt.lastName)
			}
		})
	}
}

func TestRandomReturnsFixedSetMember(t *testing.T) {
	known := map[string]bool{"田中": true, "佐藤": true, "山田": true}
	for range 20 {
		s := Random()
		if !known[s.Card.BasicInfo.LastName] {
			t.Fatalf("Random() returned unknown record %q", s.Card.BasicInfo.LastName)
		}
		if s.Text == "" {
			t.Fatal("Random() sample has empty text")
		}
	}
}

// The fixtures stand in for real pipeline output, so each one must survive the
// serialize -> validate chain exactly like a live record.
func TestSamplesConformToSchema(t *testing.T) {
	for i := 0; i < Len(); i++ {
		s := ByIndex(i)
		b, err := json.Marshal(s.Card)
		if err != nil {
			t.Fatalf("sample %d: marshal: %v", i, err)
		}
		if _, err := schema.Validate(string(b)); err != nil {
			t.Errorf("sample %d does not conform to the card schema: %v", i, err)
		}
	}
}
