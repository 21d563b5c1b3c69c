package store

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/octobees/outreach-tracker/internal/entity"
)

var (
	// ErrNotFound is returned when a command references an unknown id.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateID is returned when an add command reuses an existing id.
	ErrDuplicateID = errors.New("duplicate id")
	// ErrInvalidPeriodicity is returned when a company carries a
	// non-positive communication periodicity.
	ErrInvalidPeriodicity = errors.New("communication periodicity must be positive")
)

// Command is a tagged mutation applied to a snapshot. The set of variants is
// closed; Apply matches on all of them.
type Command interface {
	isCommand()
}

// AddCompany appends a new company. The id must be caller supplied and unique.
type AddCompany struct{ Company entity.Company }

// UpdateCompany replaces the company with the matching id.
type UpdateCompany struct{ Company entity.Company }

// DeleteCompany removes a company. Its communications are kept; history stays
// available for audit and resolves to the unknown sentinel when rendered.
type DeleteCompany struct{ ID uuid.UUID }

// AddCommunication appends a contact event.
type AddCommunication struct{ Communication entity.Communication }

// UpdateCommunication replaces the communication with the matching id.
type UpdateCommunication struct{ Communication entity.Communication }

// DeleteCommunication removes a communication by id.
type DeleteCommunication struct{ ID uuid.UUID }

// SetMethods replaces the whole method list, typically after a reorder.
// Sequence is recomputed from the given order.
type SetMethods struct{ Methods []entity.CommunicationMethod }

// AddMethod appends a method at the end of the ordering.
type AddMethod struct{ Method entity.CommunicationMethod }

// DeleteMethod removes a method and re-densifies the remaining sequence.
type DeleteMethod struct{ ID uuid.UUID }

func (AddCompany) isCommand()          {}
func (UpdateCompany) isCommand()       {}
func (DeleteCompany) isCommand()       {}
func (AddCommunication) isCommand()    {}
func (UpdateCommunication) isCommand() {}
func (DeleteCommunication) isCommand() {}
func (SetMethods) isCommand()          {}
func (AddMethod) isCommand()           {}
func (DeleteMethod) isCommand()        {}

// Apply executes one command against the snapshot and returns the successor
// state. The input snapshot is never modified. Commands referencing unknown
// ids fail with ErrNotFound; nothing here is fatal, the caller can re-issue a
// corrected mutation against the unchanged snapshot.
func Apply(s Snapshot, cmd Command) (Snapshot, error) {
	next := s
	next.Version = s.Version + 1

	switch c := cmd.(type) {
	case AddCompany:
		if c.Company.Periodicity <= 0 {
			return s, fmt.Errorf("add company %s: %w", c.Company.ID, ErrInvalidPeriodicity)
		}
		if _, ok := s.Company(c.Company.ID); ok {
			return s, fmt.Errorf("add company %s: %w", c.Company.ID, ErrDuplicateID)
		}
		next.Companies = append(cloneCompanies(s.Companies), c.Company)
		return next, nil

	case UpdateCompany:
		if c.Company.Periodicity <= 0 {
			return s, fmt.Errorf("update company %s: %w", c.Company.ID, ErrInvalidPeriodicity)
		}
		companies := cloneCompanies(s.Companies)
		for i := range companies {
			if companies[i].ID == c.Company.ID {
				companies[i] = c.Company
				next.Companies = companies
				return next, nil
			}
		}
		return s, fmt.Errorf("update company %s: %w", c.Company.ID, ErrNotFound)

	case DeleteCompany:
		companies, removed := removeCompany(s.Companies, c.ID)
		if !removed {
			return s, fmt.Errorf("delete company %s: %w", c.ID, ErrNotFound)
		}
		next.Companies = companies
		return next, nil

	case AddCommunication:
		if _, ok := s.Communication(c.Communication.ID); ok {
			return s, fmt.Errorf("add communication %s: %w", c.Communication.ID, ErrDuplicateID)
		}
		next.Communications = append(cloneCommunications(s.Communications), c.Communication)
		return next, nil

	case UpdateCommunication:
		comms := cloneCommunications(s.Communications)
		for i := range comms {
			if comms[i].ID == c.Communication.ID {
				comms[i] = c.Communication
				next.Communications = comms
				return next, nil
			}
		}
		return s, fmt.Errorf("update communication %s: %w", c.Communication.ID, ErrNotFound)

	case DeleteCommunication:
		comms := make([]entity.Communication, 0, len(s.Communications))
		removed := false
		for _, comm := range s.Communications {
			if comm.ID == c.ID {
				removed = true
				continue
			}
			comms = append(comms, comm)
		}
		if !removed {
			return s, fmt.Errorf("delete communication %s: %w", c.ID, ErrNotFound)
		}
		next.Communications = comms
		return next, nil

	case SetMethods:
		methods := cloneMethods(c.Methods)
		for i := range methods {
			methods[i].Sequence = i + 1
		}
		next.Methods = methods
		return next, nil

	case AddMethod:
		if _, ok := s.Method(c.Method.ID); ok {
			return s, fmt.Errorf("add method %s: %w", c.Method.ID, ErrDuplicateID)
		}
		method := c.Method
		method.Sequence = len(s.Methods) + 1
		next.Methods = append(cloneMethods(s.Methods), method)
		return next, nil

	case DeleteMethod:
		methods := make([]entity.CommunicationMethod, 0, len(s.Methods))
		removed := false
		for _, m := range s.Methods {
			if m.ID == c.ID {
				removed = true
				continue
			}
			methods = append(methods, m)
		}
		if !removed {
			return s, fmt.Errorf("delete method %s: %w", c.ID, ErrNotFound)
		}
		next.Methods = resequence(methods)
		return next, nil

	default:
		return s, fmt.Errorf("unsupported command %T", cmd)
	}
}

// resequence restores a dense 1..N ranking, keeping the existing relative
// order of the surviving methods.
func resequence(methods []entity.CommunicationMethod) []entity.CommunicationMethod {
	sort.SliceStable(methods, func(i, j int) bool {
		return methods[i].Sequence < methods[j].Sequence
	})
	for i := range methods {
		methods[i].Sequence = i + 1
	}
	return methods
}

func removeCompany(companies []entity.Company, id uuid.UUID) ([]entity.Company, bool) {
	out := make([]entity.Company, 0, len(companies))
	removed := false
	for _, c := range companies {
		if c.ID == id {
			removed = true
			continue
		}
		out = append(out, c)
	}
	return out, removed
}
