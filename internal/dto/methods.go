package dto

import "github.com/google/uuid"

// MethodInput creates a new communication method; the store assigns its
// position at the end of the current ordering.
type MethodInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Mandatory   bool   `json:"mandatory"`
}

// ReorderMethodsRequest carries the full ordered id list after a drag
// reorder. The sequence is recomputed as a dense 1..N ranking from it.
type ReorderMethodsRequest struct {
	MethodIDs []uuid.UUID `json:"method_ids"`
}
