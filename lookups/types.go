package lookups

// since there are no joins in MongoDB, the legal values of enumerated fields are kept here
// and sent to the client as a map (GET /lookups)

// there's no real good solution in GO :-/
// https://www.reddit.com/r/golang/comments/kh305t/restrict_allowed_values_for_strings/

// showcase section layouts
const (
	SectionTypeGrid     = "grid"
	SectionTypeCarousel = "carousel"
)

// card styles of a section (presentation only)
const (
	CardStyleDefault  = "default"
	CardStyleMinimal  = "minimal"
	CardStyleBordered = "bordered"
	CardStyleElevated = "elevated"
)

// derived countdown state of a section, never persisted
const (
	TimerNone    = "no-timer"
	TimerActive  = "active"
	TimerExpired = "expired"
)

// review moderation states
const (
	ReviewPending  = "pending"
	ReviewApproved = "approved"
	ReviewRejected = "rejected"
)

// LookupType is one enumerated domain and its legal values
type LookupType struct {
	Name    string   `json:"lookupType"`
	Values  []string `json:"values"`
	Default string   `json:"default,omitempty"`
}

// SectionTypes lists the legal section layouts
func SectionTypes() []string {
	return []string{SectionTypeGrid, SectionTypeCarousel}
}

// CardStyles lists the legal card styles
func CardStyles() []string {
	return []string{CardStyleDefault, CardStyleMinimal, CardStyleBordered, CardStyleElevated}
}

// ReviewStatuses lists the legal review states
func ReviewStatuses() []string {
	return []string{ReviewPending, ReviewApproved, ReviewRejected}
}

// IsValid checks if value is one of the legal values
func IsValid(value string, legal []string) bool {
	for _, v := range legal {
		if v == value {
			return true
		}
	}
	return false
}

// All returns the registry of code types
func All() []LookupType {
	return []LookupType{
		{Name: "section type", Values: SectionTypes(), Default: SectionTypeGrid},
		{Name: "card style", Values: CardStyles(), Default: CardStyleDefault},
		{Name: "timer status", Values: []string{TimerNone, TimerActive, TimerExpired}},
		{Name: "review status", Values: ReviewStatuses(), Default: ReviewPending},
		{Name: "user role", Values: []string{UserRole(URguest), UserRole(URmember), UserRole(URadmin)}},
	}
}
