// Package schema parses and validates raw model output against the canonical
// card record shape. Parsing and validation are two distinct phases so their
// failures stay distinguishable: ParseError means the model produced non-JSON,
// ViolationError means it produced JSON that breaks the contract.
package schema

import "github.com/meishiscan/cardscan/internal/card"

// BuildCardJSONSchema returns the card contract as a JSON-Schema
// (draft 2020-12 subset) generic map. It must stay in sync with the shape
// embedded in the structuring prompt.
func BuildCardJSONSchema() map[string]any {
	basicInfo := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"lastName":  map[string]any{"type": "string", "minLength": 1},
			"firstName": map[string]any{"type": "string", "minLength": 1},
			"nameKana":  nullableString(),
			"title":     nullableString(),
			// valid address, empty string, or null
			"email": map[string]any{"anyOf": []any{
				map[string]any{"type": "string", "format": "email"},
				map[string]any{"const": ""},
				map[string]any{"type": "null"},
			}},
			"phone":            nullableString(),
			"mobile":           nullableString(),
			"businessCategory": nullableString(),
			"address":          nullableString(),
		},
		"required": []any{"lastName", "firstName"},
	}

	socialMedia := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"linkedin":  nullableString(),
			"twitter":   nullableString(),
			"instagram": nullableString(),
			"facebook":  nullableString(),
		},
	}

	contacts := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"website":     nullableString(),
			"socialMedia": socialMedia,
		},
	}

	eventInfo := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"eventDate": nullableString(),
			"eventName": nullableString(),
			"location":  nullableString(),
		},
	}

	levels := make([]any, 0, len(card.InterestLevels))
	for _, l := range card.InterestLevels {
		levels = append(levels, l)
	}
	businessInfo := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"challenges":       nullableString(),
			"itAdoptionStatus": nullableString(),
			"aiInterestLevel": map[string]any{"anyOf": []any{
				map[string]any{"enum": levels},
				map[string]any{"type": "null"},
			}},
		},
	}

	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"basicInfo":    basicInfo,
			"contacts":     contacts,
			"eventInfo":    eventInfo,
			"businessInfo": businessInfo,
			"notes":        nullableString(),
		},
		// The model is only obliged to produce identity and contact sections;
		// normalization supplies the rest. Unknown extra keys are tolerated.
		"required": []any{"basicInfo", "contacts"},
	}
}

func nullableString() map[string]any {
	return map[string]any{"type": []any{"string", "null"}}
}
