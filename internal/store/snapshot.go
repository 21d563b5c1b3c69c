// Package store holds the three outreach collections and applies one mutation
// at a time. Every mutation goes through Apply, which returns a fresh snapshot
// and never touches the one it was given; callers own persistence and
// propagation of the result.
package store

import (
	"github.com/google/uuid"

	"github.com/octobees/outreach-tracker/internal/entity"
)

// Snapshot is the full application state at a point in time. Once produced it
// is treated as immutable. Slice order is insertion order, which downstream
// code relies on for deterministic tie-breaks.
type Snapshot struct {
	Companies      []entity.Company
	Communications []entity.Communication
	Methods        []entity.CommunicationMethod
	// Version increments on every applied command. Useful as a cheap
	// memoization key for derived computations.
	Version uint64
}

// Company returns the company with the given id, if present.
func (s Snapshot) Company(id uuid.UUID) (entity.Company, bool) {
	for _, c := range s.Companies {
		if c.ID == id {
			return c, true
		}
	}
	return entity.Company{}, false
}

// Method returns the communication method with the given id, if present.
func (s Snapshot) Method(id uuid.UUID) (entity.CommunicationMethod, bool) {
	for _, m := range s.Methods {
		if m.ID == id {
			return m, true
		}
	}
	return entity.CommunicationMethod{}, false
}

// Communication returns the communication with the given id, if present.
func (s Snapshot) Communication(id uuid.UUID) (entity.Communication, bool) {
	for _, c := range s.Communications {
		if c.ID == id {
			return c, true
		}
	}
	return entity.Communication{}, false
}

// MethodName resolves a method id to its display name, falling back to the
// unknown sentinel for dangling references.
func (s Snapshot) MethodName(id uuid.UUID) string {
	if m, ok := s.Method(id); ok {
		return m.Name
	}
	return entity.UnknownLabel
}

func cloneCompanies(in []entity.Company) []entity.Company {
	out := make([]entity.Company, len(in))
	copy(out, in)
	return out
}

func cloneCommunications(in []entity.Communication) []entity.Communication {
	out := make([]entity.Communication, len(in))
	copy(out, in)
	return out
}

func cloneMethods(in []entity.CommunicationMethod) []entity.CommunicationMethod {
	out := make([]entity.CommunicationMethod, len(in))
	copy(out, in)
	return out
}
