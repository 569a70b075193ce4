// Package card defines the canonical business-card record shape shared by the
// extraction pipeline and its consumers.
package card

// AI interest levels accepted in businessInfo.aiInterestLevel.
const (
	InterestHigh   = "high"
	InterestMedium = "medium"
	InterestLow    = "low"
	InterestNone   = "none"
)

// InterestLevels lists the allowed aiInterestLevel values in schema order.
var InterestLevels = []string{InterestHigh, InterestMedium, InterestLow, InterestNone}

// BasicInfo holds the identity fields of a card. LastName and FirstName are the
// only required fields in the whole record; every other leaf is nullable.
type BasicInfo struct {
	LastName         string  `json:"lastName"`
	FirstName        string  `json:"firstName"`
	NameKana         *string `json:"nameKana"`
	Title            *string `json:"title"`
	Email            *string `json:"email"`
	Phone            *string `json:"phone"`
	Mobile           *string `json:"mobile"`
	BusinessCategory *string `json:"businessCategory"`
	Address          *string `json:"address"`
}

// SocialMedia carries per-network handles or URLs.
type SocialMedia struct {
	LinkedIn  *string `json:"linkedin"`
	Twitter   *string `json:"twitter"`
	Instagram *string `json:"instagram"`
	Facebook  *string `json:"facebook"`
}

// Contacts groups web presence fields. In a normalized Card the SocialMedia
// sub-object is always present.
type Contacts struct {
	Website     *string     `json:"website"`
	SocialMedia SocialMedia `json:"socialMedia"`
}

// PartialContacts is Contacts as produced by the structuring model, where the
// socialMedia sub-object may be absent.
type PartialContacts struct {
	Website     *string      `json:"website"`
	SocialMedia *SocialMedia `json:"socialMedia"`
}

// EventInfo records where the card was collected.
type EventInfo struct {
	EventDate *string `json:"eventDate"`
	EventName *string `json:"eventName"`
	Location  *string `json:"location"`
}

// BusinessInfo captures sales-context notes about the contact.
type BusinessInfo struct {
	Challenges       *string `json:"challenges"`
	ITAdoptionStatus *string `json:"itAdoptionStatus"`
	AIInterestLevel  *string `json:"aiInterestLevel"`
}

// Card is the complete record. Every section and leaf key is present in its
// JSON form; optional values marshal as explicit null, never as a missing key.
// Only Normalize produces a Card, so anything downstream can rely on that.
type Card struct {
	BasicInfo    BasicInfo    `json:"basicInfo"`
	Contacts     Contacts     `json:"contacts"`
	EventInfo    EventInfo    `json:"eventInfo"`
	BusinessInfo BusinessInfo `json:"businessInfo"`
	Notes        *string      `json:"notes"`
}

// Partial is the record as validated from model output: basicInfo and contacts
// are guaranteed by the schema, the remaining sections may be absent.
type Partial struct {
	BasicInfo    BasicInfo       `json:"basicInfo"`
	Contacts     PartialContacts `json:"contacts"`
	EventInfo    *EventInfo      `json:"eventInfo"`
	BusinessInfo *BusinessInfo   `json:"businessInfo"`
	Notes        *string         `json:"notes"`
}
