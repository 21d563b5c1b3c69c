package entity

import (
	"time"

	"github.com/google/uuid"
)

// UnknownLabel is rendered whenever a communication references a company or
// method that no longer exists. Deletions do not cascade, so dangling
// references are expected and must never surface as a missing value.
const UnknownLabel = "unknown"

// Company represents an organisation the team keeps in touch with.
type Company struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Location     string    `json:"location"`
	LinkedInURL  *string   `json:"linkedin_url,omitempty"`
	Emails       []string  `json:"emails"`
	PhoneNumbers []string  `json:"phone_numbers"`
	Comments     string    `json:"comments"`
	// Periodicity is the target number of days between contacts. Always > 0.
	Periodicity int       `json:"communication_periodicity"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
