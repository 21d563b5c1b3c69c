package entity

import (
	"time"

	"github.com/google/uuid"
)

// CommunicationStatus tracks the lifecycle of a logged contact.
type CommunicationStatus string

const (
	StatusScheduled CommunicationStatus = "SCHEDULED"
	StatusCompleted CommunicationStatus = "COMPLETED"
	StatusCancelled CommunicationStatus = "CANCELLED"
)

// Valid reports whether the status is one of the known lifecycle values.
func (s CommunicationStatus) Valid() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Communication is a single contact event between the team and a company.
// Date is a calendar date; it may lie in the future for scheduled contacts.
type Communication struct {
	ID        uuid.UUID           `json:"id"`
	CompanyID uuid.UUID           `json:"company_id"`
	MethodID  uuid.UUID           `json:"method_id"`
	Date      time.Time           `json:"date"`
	Notes     string              `json:"notes"`
	Status    CommunicationStatus `json:"status"`
}
