package schema

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/meishiscan/cardscan/internal/card"
)

const validFull = `{
	"basicInfo": {
		"lastName": "田中", "firstName": "太郎", "nameKana": "タナカ タロウ",
		"title": "部長", "email": "tanaka@sample.co.jp", "phone": "03-1234-5678",
		"mobile": "090-1234-5678", "businessCategory": "営業", "address": "東京都千代田区"
	},
	"contacts": {
		"website": "https://www.sample.co.jp",
		"socialMedia": {"linkedin": null, "twitter": "@tanaka", "instagram": null, "facebook": null}
	},
	"eventInfo": {"eventDate": "2025-10-11", "eventName": "異業種交流会 東京", "location": "東京"},
	"businessInfo": {"challenges": "営業効率化", "itAdoptionStatus": "クラウド利用", "aiInterestLevel": "medium"},
	"notes": "とても話しやすい"
}`

func TestValidateFullRecord(t *testing.T) {
	p, err := Validate(validFull)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if p.BasicInfo.LastName != "田中" || p.BasicInfo.FirstName != "太郎" {
		t.Errorf("basicInfo = %+v", p.BasicInfo)
	}
	if p.EventInfo == nil || p.EventInfo.EventName == nil || *p.EventInfo.EventName != "異業種交流会 東京" {
		t.Errorf("eventInfo = %+v", p.EventInfo)
	}
	if p.BusinessInfo == nil || *p.BusinessInfo.AIInterestLevel != card.InterestMedium {
		t.Errorf("businessInfo = %+v", p.BusinessInfo)
	}
}

func TestValidateMinimalRecord(t *testing.T) {
	p, err := Validate(`{"basicInfo":{"lastName":"佐藤","firstName":"花子"},"contacts":{}}`)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if p.EventInfo != nil || p.BusinessInfo != nil || p.Notes != nil {
		t.Errorf("absent sections should decode as nil: %+v", p)
	}
}

func TestValidateNonJSON(t *testing.T) {
	_, err := Validate("not json at all")
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("want *ParseError, got %T: %v", err, err)
	}
	if pe.Raw != "not json at all" {
		t.Errorf("Raw = %q, want the verbatim model output", pe.Raw)
	}
	if pe.Err == nil {
		t.Error("parser error must be preserved")
	}
}

func TestValidateMissingRequiredField(t *testing.T) {
	_, err := Validate(`{"basicInfo":{"lastName":"田中"},"contacts":{}}`)
	var ve *ViolationError
	if !errors.As(err, &ve) {
		t.Fatalf("want *ViolationError, got %T: %v", err, err)
	}
	if _, ok := ve.Fields["basicInfo.firstName"]; !ok {
		t.Errorf("violations should cite basicInfo.firstName, got %v", ve.Fields)
	}
}

func TestValidateCollectsAllViolations(t *testing.T) {
	_, err := Validate(`{"basicInfo":{"lastName":"","email":42},"contacts":{}}`)
	var ve *ViolationError
	if !errors.As(err, &ve) {
		t.Fatalf("want *ViolationError, got %T: %v", err, err)
	}
	for _, path := range []string{"basicInfo.firstName", "basicInfo.lastName", "basicInfo.email"} {
		if _, ok := ve.Fields[path]; !ok {
			t.Errorf("violations missing %s: %v", path, ve.Fields)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		ok    bool
	}{
		{"valid address", `"sato@tech.co.jp"`, true},
		{"empty string allowed", `""`, true},
		{"null allowed", `null`, true},
		{"garbage rejected", `"not-an-email"`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := `{"basicInfo":{"lastName":"佐藤","firstName":"花子","email":` + tt.email + `},"contacts":{}}`
			_, err := Validate(raw)
			if tt.ok && err != nil {
				t.Errorf("Validate: %v", err)
			}
			if !tt.ok {
				var ve *ViolationError
				if !errors.As(err, &ve) {
					t.Fatalf("want *ViolationError, got %v", err)
				}
				if _, ok := ve.Fields["basicInfo.email"]; !ok {
					t.Errorf("violations should cite basicInfo.email: %v", ve.Fields)
				}
			}
		})
	}
}

func TestValidateInterestLevelEnum(t *testing.T) {
	raw := `{"basicInfo":{"lastName":"山田","firstName":"次郎"},"contacts":{},` +
		`"businessInfo":{"aiInterestLevel":"enthusiastic"}}`
	_, err := Validate(raw)
	var ve *ViolationError
	if !errors.As(err, &ve) {
		t.Fatalf("want *ViolationError, got %v", err)
	}
	if _, ok := ve.Fields["businessInfo.aiInterestLevel"]; !ok {
		t.Errorf("violations should cite businessInfo.aiInterestLevel: %v", ve.Fields)
	}
}

func TestValidateIgnoresUnknownKeys(t *testing.T) {
	raw := `{"basicInfo":{"lastName":"田中","firstName":"太郎"},"contacts":{},"qr_code_url":"https://x.jp"}`
	if _, err := Validate(raw); err != nil {
		t.Errorf("unknown keys should be tolerated: %v", err)
	}
}

func TestValidateFencedOutput(t *testing.T) {
	raw := "```json\n{\"basicInfo\":{\"lastName\":\"田中\",\"firstName\":\"太郎\"},\"contacts\":{}}\n```"
	p, err := Validate(raw)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if p.BasicInfo.LastName != "田中" {
		t.Errorf("lastName = %q", p.BasicInfo.LastName)
	}
}

// Serialize -> validate -> normalize must be lossless for records that already
// conform to the schema.
func TestRoundTripLossless(t *testing.T) {
	p, err := Validate(validFull)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	c := card.Normalize(p)

	b, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	p2, err := Validate(string(b))
	if err != nil {
		t.Fatalf("re-validate: %v", err)
	}
	b2, _ := json.Marshal(card.Normalize(p2))
	if string(b) != string(b2) {
		t.Errorf("round trip not lossless:\n first  %s\n second %s", b, b2)
	}
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no fences", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"whitespace", "  \n {\"a\":1} \n ", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripCodeFences(tt.input); got != tt.want {
				t.Errorf("StripCodeFences(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestViolationErrorMessageListsPaths(t *testing.T) {
	err := &ViolationError{Fields: map[string]string{"basicInfo.firstName": "required field is missing"}}
	if !strings.Contains(err.Error(), "basicInfo.firstName") {
		t.Errorf("Error() = %q", err.Error())
	}
}
