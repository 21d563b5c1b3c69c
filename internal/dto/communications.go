package dto

import (
	"time"

	"github.com/google/uuid"
)

// LogCommunicationRequest records one contact action against one or more
// companies. The service fans it out into one Communication per company,
// sharing method, date, notes and status.
type LogCommunicationRequest struct {
	CompanyIDs []uuid.UUID `json:"company_ids"`
	MethodID   uuid.UUID   `json:"method_id"`
	Date       string      `json:"date"`
	Notes      string      `json:"notes"`
	Status     string      `json:"status"`
}

// UpdateCommunicationRequest edits a single existing communication.
type UpdateCommunicationRequest struct {
	CompanyID uuid.UUID `json:"company_id"`
	MethodID  uuid.UUID `json:"method_id"`
	Date      string    `json:"date"`
	Notes     string    `json:"notes"`
	Status    string    `json:"status"`
}

// CommunicationView is a communication enriched with the resolved method
// name for display. MethodName falls back to the unknown sentinel when the
// method has been deleted.
type CommunicationView struct {
	ID         uuid.UUID `json:"id"`
	CompanyID  uuid.UUID `json:"company_id"`
	MethodID   uuid.UUID `json:"method_id"`
	MethodName string    `json:"method_name"`
	Date       time.Time `json:"date"`
	Notes      string    `json:"notes"`
	Status     string    `json:"status"`
}
