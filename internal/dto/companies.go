package dto

// CompanyInput carries the fields a client supplies when creating or editing
// a company. The service validates and normalizes it before anything reaches
// the store.
type CompanyInput struct {
	Name         string   `json:"name"`
	Location     string   `json:"location"`
	LinkedInURL  *string  `json:"linkedin_url,omitempty"`
	Emails       []string `json:"emails"`
	PhoneNumbers []string `json:"phone_numbers"`
	Comments     string   `json:"comments"`
	Periodicity  int      `json:"communication_periodicity"`
}
