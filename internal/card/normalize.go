package card

// Normalize completes a validated partial record. Sections the model omitted
// come back as all-null objects so the output shape is identical regardless of
// source quality. Pure and total: any Partial yields a Card.
func Normalize(p Partial) Card {
	out := Card{
		BasicInfo: p.BasicInfo,
		Contacts:  Contacts{Website: p.Contacts.Website},
		Notes:     p.Notes,
	}
	if p.Contacts.SocialMedia != nil {
		out.Contacts.SocialMedia = *p.Contacts.SocialMedia
	}
	if p.EventInfo != nil {
		out.EventInfo = *p.EventInfo
	}
	if p.BusinessInfo != nil {
		out.BusinessInfo = *p.BusinessInfo
	}
	return out
}

// Denormalize is the inverse embedding of a Card into the partial shape.
// Used by round-trip tests and the mock fixtures.
func Denormalize(c Card) Partial {
	sm := c.Contacts.SocialMedia
	ev := c.EventInfo
	bi := c.BusinessInfo
	return Partial{
		BasicInfo:    c.BasicInfo,
		Contacts:     PartialContacts{Website: c.Contacts.Website, SocialMedia: &sm},
		EventInfo:    &ev,
		BusinessInfo: &bi,
		Notes:        c.Notes,
	}
}
