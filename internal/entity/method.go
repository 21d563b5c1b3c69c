package entity

import "github.com/google/uuid"

// CommunicationMethod is a channel for reaching a company (email, call, ...).
// Sequence defines the presentation order; after any structural change the
// store re-densifies it to a contiguous 1..N ranking.
type CommunicationMethod struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Sequence    int       `json:"sequence"`
	Mandatory   bool      `json:"mandatory"`
}
