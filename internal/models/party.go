package models

// PartyKind distinguishes the two sides of a conversation: the applicant
// ("user") and the hiring business ("business").
type PartyKind string

const (
	PartyUser     PartyKind = "user"
	PartyBusiness PartyKind = "business"
)

// Valid reports whether k is one of the two known party kinds.
func (k PartyKind) Valid() bool {
	return k == PartyUser || k == PartyBusiness
}

// Other returns the opposite party kind.
func (k PartyKind) Other() PartyKind {
	if k == PartyUser {
		return PartyBusiness
	}
	return PartyUser
}
