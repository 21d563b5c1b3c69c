package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/octobees/outreach-tracker/internal/entity"
)

type recordingTx struct {
	pgx.Tx
	execs     []string
	committed bool
	execErr   error
}

func (t *recordingTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	t.execs = append(t.execs, sql)
	if t.execErr != nil {
		return pgconn.CommandTag{}, t.execErr
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (t *recordingTx) Commit(ctx context.Context) error {
	t.committed = true
	return nil
}

func (t *recordingTx) Rollback(ctx context.Context) error { return nil }

func TestPGXOutreachRepository_LoadSnapshot(t *testing.T) {
	companyID := uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")
	methodID := uuid.MustParse("bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb")
	commID := uuid.MustParse("cccccccc-cccc-cccc-cccc-cccccccccccc")
	now := time.Now()

	calls := 0
	repo := &PGXOutreachRepository{pool: &stubPool{
		queryFunc: func(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
			calls++
			switch calls {
			case 1: // companies
				return &stubRows{scans: []func(dest ...any) error{
					func(dest ...any) error {
						linkedin := "https://linkedin.com/company/acme"
						*dest[0].(*uuid.UUID) = companyID
						*dest[1].(*string) = "Acme"
						*dest[2].(*string) = "Gotham"
						*dest[3].(**string) = &linkedin
						*dest[4].(*[]string) = []string{"sales@acme.com"}
						*dest[5].(*[]string) = []string{"+15550100"}
						*dest[6].(*string) = "key account"
						*dest[7].(*int) = 14
						*dest[8].(*time.Time) = now
						*dest[9].(*time.Time) = now
						return nil
					},
				}}, nil
			case 2: // communications
				return &stubRows{scans: []func(dest ...any) error{
					func(dest ...any) error {
						*dest[0].(*uuid.UUID) = commID
						*dest[1].(*uuid.UUID) = companyID
						*dest[2].(*uuid.UUID) = methodID
						*dest[3].(*time.Time) = now
						*dest[4].(*string) = "intro call"
						*dest[5].(*entity.CommunicationStatus) = entity.StatusCompleted
						return nil
					},
				}}, nil
			default: // methods
				return &stubRows{scans: []func(dest ...any) error{
					func(dest ...any) error {
						*dest[0].(*uuid.UUID) = methodID
						*dest[1].(*string) = "Email"
						*dest[2].(*string) = "Direct email"
						*dest[3].(*int) = 1
						*dest[4].(*bool) = true
						return nil
					},
				}}, nil
			}
		},
	}}

	snap, err := repo.LoadSnapshot(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snap.Companies) != 1 || snap.Companies[0].Name != "Acme" {
		t.Fatalf("unexpected companies: %+v", snap.Companies)
	}
	if len(snap.Communications) != 1 || snap.Communications[0].Status != entity.StatusCompleted {
		t.Fatalf("unexpected communications: %+v", snap.Communications)
	}
	if len(snap.Methods) != 1 || snap.Methods[0].Sequence != 1 {
		t.Fatalf("unexpected methods: %+v", snap.Methods)
	}
}

func TestPGXOutreachRepository_LoadSnapshot_PropagatesError(t *testing.T) {
	boom := errors.New("connection refused")
	repo := &PGXOutreachRepository{pool: &stubPool{
		queryFunc: func(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
			return nil, boom
		},
	}}

	if _, err := repo.LoadSnapshot(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected load error, got %v", err)
	}
}

func TestPGXOutreachRepository_SaveCommunications(t *testing.T) {
	tx := &recordingTx{}
	repo := &PGXOutreachRepository{pool: &stubPool{
		beginTxFunc: func(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error) {
			return tx, nil
		},
	}}

	comms := []entity.Communication{
		{ID: uuid.New(), CompanyID: uuid.New(), MethodID: uuid.New(), Date: time.Now(), Status: entity.StatusCompleted},
		{ID: uuid.New(), CompanyID: uuid.New(), MethodID: uuid.New(), Date: time.Now(), Status: entity.StatusScheduled},
	}
	if err := repo.SaveCommunications(context.Background(), comms); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tx.execs) != 2 {
		t.Fatalf("expected one exec per communication, got %d", len(tx.execs))
	}
	if !tx.committed {
		t.Fatalf("expected transaction committed")
	}
}

func TestPGXOutreachRepository_SaveCommunications_Empty(t *testing.T) {
	repo := &PGXOutreachRepository{pool: &stubPool{}}
	if err := repo.SaveCommunications(context.Background(), nil); err != nil {
		t.Fatalf("expected no-op for empty batch, got %v", err)
	}
}

func TestPGXOutreachRepository_ReplaceMethods(t *testing.T) {
	tx := &recordingTx{}
	repo := &PGXOutreachRepository{pool: &stubPool{
		beginTxFunc: func(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error) {
			return tx, nil
		},
	}}

	methods := []entity.CommunicationMethod{
		{ID: uuid.New(), Name: "Email", Sequence: 1},
		{ID: uuid.New(), Name: "Phone Call", Sequence: 2},
	}
	if err := repo.ReplaceMethods(context.Background(), methods); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// one delete plus one insert per method
	if len(tx.execs) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(tx.execs))
	}
	if !tx.committed {
		t.Fatalf("expected transaction committed")
	}
}

func TestMemoryUsersRepository(t *testing.T) {
	repo := NewMemoryUsersRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, "admin@example.com", "hash", "admin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := repo.Create(ctx, "admin@example.com", "hash2", "user"); !errors.Is(err, ErrEmailDuplicate) {
		t.Fatalf("expected duplicate email error, got %v", err)
	}

	found, err := repo.FindByEmail(ctx, "admin@example.com")
	if err != nil || found.ID != created.ID {
		t.Fatalf("expected lookup to succeed, got %v / %+v", err, found)
	}

	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repo.FindByID(ctx, created.ID); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}
