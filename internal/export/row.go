// Package export flattens normalized card records into tabular form for the
// spreadsheet-append integration and XLSX downloads.
package export

import (
	"regexp"
	"strings"

	"github.com/meishiscan/cardscan/internal/card"
)

// Headers is the column layout shared by the Sheets append and the XLSX
// export. Order matters: consumers reference columns by position.
var Headers = []string{
	"Name", "Name (Kana)", "Title", "Email", "Phone", "Mobile",
	"Business Category", "Address",
	"Website", "LinkedIn", "Twitter", "Instagram", "Facebook",
	"Event Date", "Event Name", "Event Location",
	"Challenges", "IT Adoption", "AI Interest",
	"Notes",
}

var controlChars = regexp.MustCompile(`[\x00-\x1F\x7F]`)

// safeString renders a nullable field as a spreadsheet-safe cell: nil becomes
// empty, line breaks and tabs collapse to spaces, control characters go away.
func safeString(p *string) string {
	if p == nil {
		return ""
	}
	s := strings.NewReplacer("\r", " ", "\n", " ", "\t", " ").Replace(*p)
	return controlChars.ReplaceAllString(s, "")
}

// Row flattens a card into one spreadsheet row matching Headers.
func Row(c card.Card) []any {
	name := strings.TrimSpace(c.BasicInfo.LastName + " " + c.BasicInfo.FirstName)
	return []any{
		controlChars.ReplaceAllString(name, ""),
		safeString(c.BasicInfo.NameKana),
		safeString(c.BasicInfo.Title),
		safeString(c.BasicInfo.Email),
		safeString(c.BasicInfo.Phone),
		safeString(c.BasicInfo.Mobile),
		safeString(c.BasicInfo.BusinessCategory),
		safeString(c.BasicInfo.Address),
		safeString(c.Contacts.Website),
		safeString(c.Contacts.SocialMedia.LinkedIn),
		safeString(c.Contacts.SocialMedia.Twitter),
		safeString(c.Contacts.SocialMedia.Instagram),
		safeString(c.Contacts.SocialMedia.Facebook),
		safeString(c.EventInfo.EventDate),
		safeString(c.EventInfo.EventName),
		safeString(c.EventInfo.Location),
		safeString(c.BusinessInfo.Challenges),
		safeString(c.BusinessInfo.ITAdoptionStatus),
		safeString(c.BusinessInfo.AIInterestLevel),
		safeString(c.Notes),
	}
}
