package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/octobees/outreach-tracker/internal/dto"
	"github.com/octobees/outreach-tracker/internal/entity"
	"github.com/octobees/outreach-tracker/internal/notification"
	"github.com/octobees/outreach-tracker/internal/schedule"
	"github.com/octobees/outreach-tracker/internal/store"
)

// OutreachService owns the current snapshot and is the single writer to it.
// Every mutation is validated, applied through store.Apply, persisted (when a
// repository is configured) and only then committed as the new snapshot, so a
// read issued after a mutation always observes it. Reads copy the snapshot
// reference under the lock and compute against one captured "now", keeping
// status, due dates and notifications coherent within an evaluation pass.
type OutreachService struct {
	mu        sync.Mutex
	snap      store.Snapshot
	repo      Persistence // nil disables persistence
	validator *CompanyValidator
	now       func() time.Time
}

// Persistence is the seam the service propagates mutations to. It mirrors
// repository.OutreachRepository; declared locally so the service tests can
// stub it without touching pgx.
type Persistence interface {
	SaveCompany(ctx context.Context, company entity.Company) error
	DeleteCompany(ctx context.Context, id uuid.UUID) error
	SaveCommunications(ctx context.Context, comms []entity.Communication) error
	DeleteCommunication(ctx context.Context, id uuid.UUID) error
	SaveMethod(ctx context.Context, method entity.CommunicationMethod) error
	DeleteMethod(ctx context.Context, id uuid.UUID) error
	ReplaceMethods(ctx context.Context, methods []entity.CommunicationMethod) error
}

// NewOutreachService builds the service around a boot snapshot. repo may be
// nil, in which case state lives only in memory for the process lifetime.
func NewOutreachService(snap store.Snapshot, repo Persistence, validator *CompanyValidator) *OutreachService {
	if validator == nil {
		validator = NewCompanyValidator("")
	}
	return &OutreachService{
		snap:      snap,
		repo:      repo,
		validator: validator,
		now:       time.Now,
	}
}

// Snapshot returns the current state. The snapshot is immutable; callers may
// hold it for as long as they like.
func (s *OutreachService) Snapshot() store.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

// Companies lists all companies in insertion order.
func (s *OutreachService) Companies() []entity.Company {
	return s.Snapshot().Companies
}

// CompanyByID fetches one company.
func (s *OutreachService) CompanyByID(id uuid.UUID) (entity.Company, error) {
	if company, ok := s.Snapshot().Company(id); ok {
		return company, nil
	}
	return entity.Company{}, fmt.Errorf("company %s: %w", id, store.ErrNotFound)
}

// CreateCompany validates the payload and appends a new company.
func (s *OutreachService) CreateCompany(ctx context.Context, input dto.CompanyInput) (entity.Company, error) {
	clean, err := s.validator.Validate(input)
	if err != nil {
		return entity.Company{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	company := entity.Company{
		ID:           uuid.New(),
		Name:         clean.Name,
		Location:     clean.Location,
		LinkedInURL:  clean.LinkedInURL,
		Emails:       clean.Emails,
		PhoneNumbers: clean.PhoneNumbers,
		Comments:     clean.Comments,
		Periodicity:  clean.Periodicity,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	next, err := store.Apply(s.snap, store.AddCompany{Company: company})
	if err != nil {
		return entity.Company{}, err
	}
	if s.repo != nil {
		if err := s.repo.SaveCompany(ctx, company); err != nil {
			return entity.Company{}, fmt.Errorf("persist company: %w", err)
		}
	}
	s.snap = next
	return company, nil
}

// UpdateCompany validates the payload and replaces the company in place.
func (s *OutreachService) UpdateCompany(ctx context.Context, id uuid.UUID, input dto.CompanyInput) (entity.Company, error) {
	clean, err := s.validator.Validate(input)
	if err != nil {
		return entity.Company{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.snap.Company(id)
	if !ok {
		return entity.Company{}, fmt.Errorf("company %s: %w", id, store.ErrNotFound)
	}

	company := existing
	company.Name = clean.Name
	company.Location = clean.Location
	company.LinkedInURL = clean.LinkedInURL
	company.Emails = clean.Emails
	company.PhoneNumbers = clean.PhoneNumbers
	company.Comments = clean.Comments
	company.Periodicity = clean.Periodicity
	company.UpdatedAt = s.now()

	next, err := store.Apply(s.snap, store.UpdateCompany{Company: company})
	if err != nil {
		return entity.Company{}, err
	}
	if s.repo != nil {
		if err := s.repo.SaveCompany(ctx, company); err != nil {
			return entity.Company{}, fmt.Errorf("persist company: %w", err)
		}
	}
	s.snap = next
	return company, nil
}

// DeleteCompany removes the company. Its communications stay behind; history
// remains queryable and renders with the unknown sentinel.
func (s *OutreachService) DeleteCompany(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := store.Apply(s.snap, store.DeleteCompany{ID: id})
	if err != nil {
		return err
	}
	if s.repo != nil {
		if err := s.repo.DeleteCompany(ctx, id); err != nil {
			return fmt.Errorf("persist company delete: %w", err)
		}
	}
	s.snap = next
	return nil
}

// LogCommunication fans one logging action out to every selected company:
// one Communication per company, sharing method, date, notes and status but
// carrying distinct ids. All of them land in one turn, and with a repository
// configured, in one transaction.
func (s *OutreachService) LogCommunication(ctx context.Context, req dto.LogCommunicationRequest) ([]entity.Communication, error) {
	if len(req.CompanyIDs) == 0 {
		return nil, ValidationError{Message: "at least one company_id is required"}
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	status, err := parseStatus(req.Status)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.snap.Method(req.MethodID); !ok {
		return nil, fmt.Errorf("method %s: %w", req.MethodID, store.ErrNotFound)
	}

	next := s.snap
	comms := make([]entity.Communication, 0, len(req.CompanyIDs))
	for _, companyID := range req.CompanyIDs {
		if _, ok := s.snap.Company(companyID); !ok {
			return nil, fmt.Errorf("company %s: %w", companyID, store.ErrNotFound)
		}
		comm := entity.Communication{
			ID:        uuid.New(),
			CompanyID: companyID,
			MethodID:  req.MethodID,
			Date:      date,
			Notes:     strings.TrimSpace(req.Notes),
			Status:    status,
		}
		next, err = store.Apply(next, store.AddCommunication{Communication: comm})
		if err != nil {
			return nil, err
		}
		comms = append(comms, comm)
	}

	if s.repo != nil {
		if err := s.repo.SaveCommunications(ctx, comms); err != nil {
			return nil, fmt.Errorf("persist communications: %w", err)
		}
	}
	s.snap = next
	return comms, nil
}

// UpdateCommunication replaces a single communication.
func (s *OutreachService) UpdateCommunication(ctx context.Context, id uuid.UUID, req dto.UpdateCommunicationRequest) (entity.Communication, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return entity.Communication{}, err
	}
	status, err := parseStatus(req.Status)
	if err != nil {
		return entity.Communication{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	comm := entity.Communication{
		ID:        id,
		CompanyID: req.CompanyID,
		MethodID:  req.MethodID,
		Date:      date,
		Notes:     strings.TrimSpace(req.Notes),
		Status:    status,
	}
	next, err := store.Apply(s.snap, store.UpdateCommunication{Communication: comm})
	if err != nil {
		return entity.Communication{}, err
	}
	if s.repo != nil {
		if err := s.repo.SaveCommunications(ctx, []entity.Communication{comm}); err != nil {
			return entity.Communication{}, fmt.Errorf("persist communication: %w", err)
		}
	}
	s.snap = next
	return comm, nil
}

// DeleteCommunication removes a communication by id.
func (s *OutreachService) DeleteCommunication(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := store.Apply(s.snap, store.DeleteCommunication{ID: id})
	if err != nil {
		return err
	}
	if s.repo != nil {
		if err := s.repo.DeleteCommunication(ctx, id); err != nil {
			return fmt.Errorf("persist communication delete: %w", err)
		}
	}
	s.snap = next
	return nil
}

// Methods lists the communication methods in presentation order.
func (s *OutreachService) Methods() []entity.CommunicationMethod {
	return s.Snapshot().Methods
}

// CreateMethod appends a method at the end of the ordering.
func (s *OutreachService) CreateMethod(ctx context.Context, input dto.MethodInput) (entity.CommunicationMethod, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return entity.CommunicationMethod{}, ValidationError{Message: "method name is required"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	method := entity.CommunicationMethod{
		ID:          uuid.New(),
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Mandatory:   input.Mandatory,
	}
	next, err := store.Apply(s.snap, store.AddMethod{Method: method})
	if err != nil {
		return entity.CommunicationMethod{}, err
	}
	applied := next.Methods[len(next.Methods)-1]
	if s.repo != nil {
		if err := s.repo.SaveMethod(ctx, applied); err != nil {
			return entity.CommunicationMethod{}, fmt.Errorf("persist method: %w", err)
		}
	}
	s.snap = next
	return applied, nil
}

// DeleteMethod removes a method and re-densifies the remaining ordering.
func (s *OutreachService) DeleteMethod(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := store.Apply(s.snap, store.DeleteMethod{ID: id})
	if err != nil {
		return err
	}
	if s.repo != nil {
		// the delete renumbers surviving rows, so rewrite them all
		if err := s.repo.ReplaceMethods(ctx, next.Methods); err != nil {
			return fmt.Errorf("persist method delete: %w", err)
		}
	}
	s.snap = next
	return nil
}

// ReorderMethods applies a drag-reorder result. The id list must be a
// permutation of the existing methods; sequence becomes the dense 1..N
// ranking of the given order.
func (s *OutreachService) ReorderMethods(ctx context.Context, orderedIDs []uuid.UUID) ([]entity.CommunicationMethod, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(orderedIDs) != len(s.snap.Methods) {
		return nil, ValidationError{Message: "method_ids must list every existing method exactly once"}
	}
	seen := make(map[uuid.UUID]struct{}, len(orderedIDs))
	ordered := make([]entity.CommunicationMethod, 0, len(orderedIDs))
	for _, id := range orderedIDs {
		if _, dup := seen[id]; dup {
			return nil, ValidationError{Message: fmt.Sprintf("method id %s listed twice", id)}
		}
		seen[id] = struct{}{}
		method, ok := s.snap.Method(id)
		if !ok {
			return nil, fmt.Errorf("method %s: %w", id, store.ErrNotFound)
		}
		ordered = append(ordered, method)
	}

	next, err := store.Apply(s.snap, store.SetMethods{Methods: ordered})
	if err != nil {
		return nil, err
	}
	if s.repo != nil {
		if err := s.repo.ReplaceMethods(ctx, next.Methods); err != nil {
			return nil, fmt.Errorf("persist method order: %w", err)
		}
	}
	s.snap = next
	return next.Methods, nil
}

// CompanyStatus classifies one company against its periodicity.
func (s *OutreachService) CompanyStatus(id uuid.UUID) (schedule.Status, error) {
	snap := s.Snapshot()
	company, ok := snap.Company(id)
	if !ok {
		return "", fmt.Errorf("company %s: %w", id, store.ErrNotFound)
	}
	return schedule.CompanyStatus(company, snap.Communications, s.now()), nil
}

// NextDueDate computes the next scheduled contact for one company.
func (s *OutreachService) NextDueDate(id uuid.UUID) (time.Time, error) {
	snap := s.Snapshot()
	company, ok := snap.Company(id)
	if !ok {
		return time.Time{}, fmt.Errorf("company %s: %w", id, store.ErrNotFound)
	}
	return schedule.NextDueDate(company, snap.Communications, s.now()), nil
}

// RecentHistory returns the most recent communications for one company with
// method names resolved for display.
func (s *OutreachService) RecentHistory(id uuid.UUID, limit int) ([]dto.CommunicationView, error) {
	snap := s.Snapshot()
	if _, ok := snap.Company(id); !ok {
		return nil, fmt.Errorf("company %s: %w", id, store.ErrNotFound)
	}
	return communicationViews(snap, schedule.RecentHistory(id, snap.Communications, limit)), nil
}

// Notifications classifies the whole snapshot into the reminder feed.
func (s *OutreachService) Notifications() []notification.Notification {
	return notification.Classify(s.Snapshot(), s.now())
}

// Dashboard assembles the status grid: one row per company with its recent
// history, next due date and status, all derived from one snapshot and one
// captured "now".
func (s *OutreachService) Dashboard() []dto.DashboardRow {
	snap := s.Snapshot()
	now := s.now()

	rows := make([]dto.DashboardRow, 0, len(snap.Companies))
	for _, company := range snap.Companies {
		rows = append(rows, dto.DashboardRow{
			Company:  company,
			Status:   string(schedule.CompanyStatus(company, snap.Communications, now)),
			NextDue:  schedule.NextDueDate(company, snap.Communications, now),
			LastFive: communicationViews(snap, schedule.RecentHistory(company.ID, snap.Communications, schedule.DefaultHistoryLimit)),
		})
	}
	return rows
}

func communicationViews(snap store.Snapshot, comms []entity.Communication) []dto.CommunicationView {
	views := make([]dto.CommunicationView, 0, len(comms))
	for _, c := range comms {
		views = append(views, dto.CommunicationView{
			ID:         c.ID,
			CompanyID:  c.CompanyID,
			MethodID:   c.MethodID,
			MethodName: snap.MethodName(c.MethodID),
			Date:       c.Date,
			Notes:      c.Notes,
			Status:     string(c.Status),
		})
	}
	return views
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, ValidationError{Message: "date is required"}
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Time{}, ValidationError{Message: fmt.Sprintf("invalid date %q (use YYYY-MM-DD or RFC3339)", raw)}
}

func parseStatus(raw string) (entity.CommunicationStatus, error) {
	raw = strings.ToUpper(strings.TrimSpace(raw))
	if raw == "" {
		return entity.StatusCompleted, nil
	}
	status := entity.CommunicationStatus(raw)
	if !status.Valid() {
		return "", ValidationError{Message: fmt.Sprintf("invalid status %q", raw)}
	}
	return status, nil
}
