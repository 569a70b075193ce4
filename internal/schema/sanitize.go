package schema

import "strings"

// StripCodeFences removes markdown code block markers some models wrap around
// their JSON output (```json ... ```).
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimSpace(strings.TrimPrefix(s, "```"))
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
