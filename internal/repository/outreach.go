package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/octobees/outreach-tracker/internal/entity"
	"github.com/octobees/outreach-tracker/internal/store"
)

// OutreachRepository is the persistence seam behind the in-memory store. Load
// rebuilds the boot snapshot; the write methods mirror applied commands so the
// database follows the snapshot, never the other way round.
type OutreachRepository interface {
	LoadSnapshot(ctx context.Context) (store.Snapshot, error)
	SaveCompany(ctx context.Context, company entity.Company) error
	DeleteCompany(ctx context.Context, id uuid.UUID) error
	SaveCommunications(ctx context.Context, comms []entity.Communication) error
	DeleteCommunication(ctx context.Context, id uuid.UUID) error
	SaveMethod(ctx context.Context, method entity.CommunicationMethod) error
	DeleteMethod(ctx context.Context, id uuid.UUID) error
	ReplaceMethods(ctx context.Context, methods []entity.CommunicationMethod) error
}

// PGXOutreachRepository implements OutreachRepository with pgx.
type PGXOutreachRepository struct {
	pool pgxPool
}

// NewPGXOutreachRepository wires a pgx backed repository.
func NewPGXOutreachRepository(pool *pgxpool.Pool) *PGXOutreachRepository {
	return &PGXOutreachRepository{pool: pool}
}

// LoadSnapshot reads all three collections. Communications come back in
// insertion order, which the scheduling engine uses as its tie-break.
func (r *PGXOutreachRepository) LoadSnapshot(ctx context.Context) (store.Snapshot, error) {
	var snap store.Snapshot

	companies, err := r.loadCompanies(ctx)
	if err != nil {
		return snap, err
	}
	comms, err := r.loadCommunications(ctx)
	if err != nil {
		return snap, err
	}
	methods, err := r.loadMethods(ctx)
	if err != nil {
		return snap, err
	}

	snap.Companies = companies
	snap.Communications = comms
	snap.Methods = methods
	return snap, nil
}

func (r *PGXOutreachRepository) loadCompanies(ctx context.Context) ([]entity.Company, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT id, name, location, linkedin_url, emails, phone_numbers, comments, periodicity, created_at, updated_at
        FROM companies
        ORDER BY created_at, id
    `)
	if err != nil {
		return nil, fmt.Errorf("load companies: %w", err)
	}
	defer rows.Close()

	return scanCompanies(rows)
}

func scanCompanies(rows pgx.Rows) ([]entity.Company, error) {
	var companies []entity.Company
	for rows.Next() {
		var (
			c           entity.Company
			linkedinURL *string
		)
		err := rows.Scan(
			&c.ID,
			&c.Name,
			&c.Location,
			&linkedinURL,
			&c.Emails,
			&c.PhoneNumbers,
			&c.Comments,
			&c.Periodicity,
			&c.CreatedAt,
			&c.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		c.LinkedInURL = linkedinURL
		companies = append(companies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate companies: %w", err)
	}
	return companies, nil
}

func (r *PGXOutreachRepository) loadCommunications(ctx context.Context) ([]entity.Communication, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT id, company_id, method_id, date, notes, status
        FROM communications
        ORDER BY inserted_at, id
    `)
	if err != nil {
		return nil, fmt.Errorf("load communications: %w", err)
	}
	defer rows.Close()

	var comms []entity.Communication
	for rows.Next() {
		var c entity.Communication
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.MethodID, &c.Date, &c.Notes, &c.Status); err != nil {
			return nil, fmt.Errorf("scan communication: %w", err)
		}
		comms = append(comms, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate communications: %w", err)
	}
	return comms, nil
}

func (r *PGXOutreachRepository) loadMethods(ctx context.Context) ([]entity.CommunicationMethod, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT id, name, description, sequence, mandatory
        FROM communication_methods
        ORDER BY sequence
    `)
	if err != nil {
		return nil, fmt.Errorf("load methods: %w", err)
	}
	defer rows.Close()

	var methods []entity.CommunicationMethod
	for rows.Next() {
		var m entity.CommunicationMethod
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.Sequence, &m.Mandatory); err != nil {
			return nil, fmt.Errorf("scan method: %w", err)
		}
		methods = append(methods, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate methods: %w", err)
	}
	return methods, nil
}

// SaveCompany upserts a company row keyed by id.
func (r *PGXOutreachRepository) SaveCompany(ctx context.Context, company entity.Company) error {
	_, err := r.pool.Exec(ctx, `
        INSERT INTO companies (id, name, location, linkedin_url, emails, phone_numbers, comments, periodicity, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        ON CONFLICT (id) DO UPDATE SET
            name = EXCLUDED.name,
            location = EXCLUDED.location,
            linkedin_url = EXCLUDED.linkedin_url,
            emails = EXCLUDED.emails,
            phone_numbers = EXCLUDED.phone_numbers,
            comments = EXCLUDED.comments,
            periodicity = EXCLUDED.periodicity,
            updated_at = EXCLUDED.updated_at
    `,
		company.ID,
		company.Name,
		company.Location,
		company.LinkedInURL,
		stringSliceOrEmpty(company.Emails),
		stringSliceOrEmpty(company.PhoneNumbers),
		company.Comments,
		company.Periodicity,
		company.CreatedAt,
		company.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save company %s: %w", company.ID, err)
	}
	return nil
}

// DeleteCompany removes the company row. Communications are intentionally
// left in place, matching the store's no-cascade semantics.
func (r *PGXOutreachRepository) DeleteCompany(ctx context.Context, id uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete company %s: %w", id, err)
	}
	return nil
}

const saveCommunicationSQL = `
        INSERT INTO communications (id, company_id, method_id, date, notes, status)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (id) DO UPDATE SET
            company_id = EXCLUDED.company_id,
            method_id = EXCLUDED.method_id,
            date = EXCLUDED.date,
            notes = EXCLUDED.notes,
            status = EXCLUDED.status
    `

// SaveCommunications upserts a batch in one transaction, so a fanned-out
// logging action lands atomically.
func (r *PGXOutreachRepository) SaveCommunications(ctx context.Context, comms []entity.Communication) error {
	if len(comms) == 0 {
		return nil
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("start communications tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, c := range comms {
		if _, err := tx.Exec(ctx, saveCommunicationSQL, c.ID, c.CompanyID, c.MethodID, c.Date, c.Notes, c.Status); err != nil {
			return fmt.Errorf("save communication %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit communications tx: %w", err)
	}
	return nil
}

// DeleteCommunication removes a communication row.
func (r *PGXOutreachRepository) DeleteCommunication(ctx context.Context, id uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM communications WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete communication %s: %w", id, err)
	}
	return nil
}

const saveMethodSQL = `
        INSERT INTO communication_methods (id, name, description, sequence, mandatory)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (id) DO UPDATE SET
            name = EXCLUDED.name,
            description = EXCLUDED.description,
            sequence = EXCLUDED.sequence,
            mandatory = EXCLUDED.mandatory
    `

// SaveMethod upserts a communication method row.
func (r *PGXOutreachRepository) SaveMethod(ctx context.Context, method entity.CommunicationMethod) error {
	_, err := r.pool.Exec(ctx, saveMethodSQL, method.ID, method.Name, method.Description, method.Sequence, method.Mandatory)
	if err != nil {
		return fmt.Errorf("save method %s: %w", method.ID, err)
	}
	return nil
}

// DeleteMethod removes a method row.
func (r *PGXOutreachRepository) DeleteMethod(ctx context.Context, id uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM communication_methods WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete method %s: %w", id, err)
	}
	return nil
}

// ReplaceMethods rewrites the whole method table to match a reordered list.
func (r *PGXOutreachRepository) ReplaceMethods(ctx context.Context, methods []entity.CommunicationMethod) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("start methods tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM communication_methods`); err != nil {
		return fmt.Errorf("clear methods: %w", err)
	}
	for _, m := range methods {
		if _, err := tx.Exec(ctx, saveMethodSQL, m.ID, m.Name, m.Description, m.Sequence, m.Mandatory); err != nil {
			return fmt.Errorf("replace method %s: %w", m.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit methods tx: %w", err)
	}
	return nil
}

func stringSliceOrEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
