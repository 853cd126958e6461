package domain

import "strings"

// NoStateLabel groups campuses that carry no state.
const NoStateLabel = "Sin estado"

// Campus is the stable client-side shape of an exam-delivery site.
type Campus struct {
	ID               *int64  `json:"id"`
	Name             *string `json:"name"`
	PartnerID        *int64  `json:"partner_id"`
	PartnerName      *string `json:"partner_name"`
	StateName        *string `json:"state_name"`
	City             *string `json:"city"`
	Country          *string `json:"country"`
	Address          *string `json:"address"`
	Location         *string `json:"location"`
	IsActive         bool    `json:"is_active"`
	ActivationStatus *string `json:"activation_status"`
}

// CampusStateGroup holds the campuses that share a state.
type CampusStateGroup struct {
	StateName string   `json:"state_name"`
	Total     int      `json:"total"`
	Campuses  []Campus `json:"campuses"`
}

// ListingSource documents which strategy produced a campus listing.
type ListingSource string

const (
	SourceCampuses ListingSource = "campuses"
	SourcePartners ListingSource = "partners"
	SourcePreview  ListingSource = "preview"
)

// CampusListing is the response of the campus listing accessor.
type CampusListing struct {
	Message  string             `json:"message"`
	Source   ListingSource      `json:"source"`
	Total    int                `json:"total"`
	Campuses []Campus           `json:"campuses"`
	States   []CampusStateGroup `json:"states"`
}

// ActiveFilter selects campuses by their active flag.
type ActiveFilter int

const (
	// ActiveUnspecified omits the filter entirely.
	ActiveUnspecified ActiveFilter = iota
	ActiveAll
	ActiveOnly
	InactiveOnly
)

// ParseActiveFilter accepts "all", "true"/"false" and their common spellings.
func ParseActiveFilter(raw string) (ActiveFilter, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return ActiveUnspecified, true
	case "all", "todos":
		return ActiveAll, true
	case "true", "1", "active":
		return ActiveOnly, true
	case "false", "0", "inactive":
		return InactiveOnly, true
	default:
		return ActiveUnspecified, false
	}
}

// QueryValue renders the filter as the backend's active_only parameter.
// The empty string means the parameter is omitted.
func (f ActiveFilter) QueryValue() string {
	switch f {
	case ActiveAll:
		return "all"
	case ActiveOnly:
		return "true"
	case InactiveOnly:
		return "false"
	default:
		return ""
	}
}

// Matches reports whether a campus with the given flag passes the filter.
func (f ActiveFilter) Matches(isActive bool) bool {
	switch f {
	case ActiveOnly:
		return isActive
	case InactiveOnly:
		return !isActive
	default:
		return true
	}
}

func (f ActiveFilter) String() string {
	if v := f.QueryValue(); v != "" {
		return v
	}
	return "unspecified"
}

// CampusFilter narrows a campus listing.
type CampusFilter struct {
	State  string
	Active ActiveFilter
}

// DirectorInput is the contact responsible for a campus.
type DirectorInput struct {
	Name          string `json:"name"`
	FirstSurname  string `json:"first_surname"`
	SecondSurname string `json:"second_surname,omitempty"`
	Email         string `json:"email"`
	Phone         string `json:"phone,omitempty"`
	Gender        string `json:"gender,omitempty"`
	CURP          string `json:"curp,omitempty"`
	DateOfBirth   string `json:"date_of_birth,omitempty"`
}

// CampusCreateInput is the payload for creating a campus.
type CampusCreateInput struct {
	PartnerID  int64          `json:"partner_id"`
	Name       string         `json:"name"`
	Code       string         `json:"code,omitempty"`
	StateName  string         `json:"state_name"`
	City       string         `json:"city,omitempty"`
	Country    string         `json:"country,omitempty"`
	Address    string         `json:"address,omitempty"`
	PostalCode string         `json:"postal_code,omitempty"`
	Email      string         `json:"email,omitempty"`
	Phone      string         `json:"phone,omitempty"`
	IsActive   *bool          `json:"is_active,omitempty"`
	Director   *DirectorInput `json:"director,omitempty"`
}

// PartnerOption is read-only partner reference data.
type PartnerOption struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
