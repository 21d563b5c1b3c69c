package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/octobees/outreach-tracker/internal/dto"
	"github.com/octobees/outreach-tracker/internal/entity"
	"github.com/octobees/outreach-tracker/internal/store"
)

type fakeRepo struct {
	savedCompanies []entity.Company
	savedComms     [][]entity.Communication
	replacedOrder  [][]entity.CommunicationMethod
	failNext       error
}

func (f *fakeRepo) SaveCompany(_ context.Context, company entity.Company) error {
	if f.failNext != nil {
		return f.failNext
	}
	f.savedCompanies = append(f.savedCompanies, company)
	return nil
}

func (f *fakeRepo) DeleteCompany(_ context.Context, _ uuid.UUID) error { return f.failNext }

func (f *fakeRepo) SaveCommunications(_ context.Context, comms []entity.Communication) error {
	if f.failNext != nil {
		return f.failNext
	}
	f.savedComms = append(f.savedComms, comms)
	return nil
}

func (f *fakeRepo) DeleteCommunication(_ context.Context, _ uuid.UUID) error { return f.failNext }

func (f *fakeRepo) SaveMethod(_ context.Context, _ entity.CommunicationMethod) error {
	return f.failNext
}

func (f *fakeRepo) DeleteMethod(_ context.Context, _ uuid.UUID) error { return f.failNext }

func (f *fakeRepo) ReplaceMethods(_ context.Context, methods []entity.CommunicationMethod) error {
	if f.failNext != nil {
		return f.failNext
	}
	f.replacedOrder = append(f.replacedOrder, methods)
	return nil
}

var (
	companyA = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	companyB = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	companyC = uuid.MustParse("33333333-3333-3333-3333-333333333333")
	methodA  = uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")
	methodB  = uuid.MustParse("bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb")
)

func fixtureSnapshot() store.Snapshot {
	return store.Snapshot{
		Companies: []entity.Company{
			{ID: companyA, Name: "Acme", Periodicity: 14},
			{ID: companyB, Name: "Globex", Periodicity: 30},
			{ID: companyC, Name: "Initech", Periodicity: 7},
		},
		Methods: []entity.CommunicationMethod{
			{ID: methodA, Name: "Email", Sequence: 1},
			{ID: methodB, Name: "Phone Call", Sequence: 2},
		},
	}
}

func newTestService(repo Persistence) *OutreachService {
	svc := NewOutreachService(fixtureSnapshot(), repo, nil)
	svc.now = func() time.Time { return time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC) }
	return svc
}

func TestLogCommunicationFansOut(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	comms, err := svc.LogCommunication(context.Background(), dto.LogCommunicationRequest{
		CompanyIDs: []uuid.UUID{companyA, companyB, companyC},
		MethodID:   methodA,
		Date:       "2024-03-09",
		Notes:      "  quarterly check-in  ",
	})
	if err != nil {
		t.Fatalf("LogCommunication returned error: %v", err)
	}
	if len(comms) != 3 {
		t.Fatalf("expected 3 communications, got %d", len(comms))
	}

	ids := make(map[uuid.UUID]struct{})
	for i, c := range comms {
		if c.MethodID != methodA {
			t.Errorf("comm %d method = %s, want %s", i, c.MethodID, methodA)
		}
		if c.Notes != "quarterly check-in" {
			t.Errorf("comm %d notes = %q, want trimmed value", i, c.Notes)
		}
		if c.Status != entity.StatusCompleted {
			t.Errorf("comm %d status = %s, want default COMPLETED", i, c.Status)
		}
		ids[c.ID] = struct{}{}
	}
	if len(ids) != 3 {
		t.Errorf("expected 3 distinct ids, got %d", len(ids))
	}

	if got := len(svc.Snapshot().Communications); got != 3 {
		t.Errorf("snapshot holds %d communications after write, want 3", got)
	}
	if len(repo.savedComms) != 1 || len(repo.savedComms[0]) != 3 {
		t.Errorf("expected one persisted batch of 3, got %+v", repo.savedComms)
	}
}

func TestLogCommunicationUnknownCompanyLeavesStateUntouched(t *testing.T) {
	svc := newTestService(nil)

	_, err := svc.LogCommunication(context.Background(), dto.LogCommunicationRequest{
		CompanyIDs: []uuid.UUID{companyA, uuid.New()},
		MethodID:   methodA,
		Date:       "2024-03-09",
	})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if got := len(svc.Snapshot().Communications); got != 0 {
		t.Errorf("snapshot holds %d communications after failed fan-out, want 0", got)
	}
}

func TestLogCommunicationValidation(t *testing.T) {
	svc := newTestService(nil)

	cases := map[string]dto.LogCommunicationRequest{
		"no companies": {MethodID: methodA, Date: "2024-03-09"},
		"missing date": {CompanyIDs: []uuid.UUID{companyA}, MethodID: methodA},
		"bad date":     {CompanyIDs: []uuid.UUID{companyA}, MethodID: methodA, Date: "09/03/2024"},
		"bogus status": {CompanyIDs: []uuid.UUID{companyA}, MethodID: methodA, Date: "2024-03-09", Status: "DONE"},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.LogCommunication(context.Background(), req)
			var verr ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestPersistenceFailureKeepsSnapshot(t *testing.T) {
	repo := &fakeRepo{failNext: errors.New("connection reset")}
	svc := newTestService(repo)
	before := svc.Snapshot()

	_, err := svc.LogCommunication(context.Background(), dto.LogCommunicationRequest{
		CompanyIDs: []uuid.UUID{companyA},
		MethodID:   methodA,
		Date:       "2024-03-09",
	})
	if err == nil {
		t.Fatal("expected persistence error")
	}
	after := svc.Snapshot()
	if after.Version != before.Version || len(after.Communications) != 0 {
		t.Errorf("snapshot advanced despite persistence failure: %+v", after)
	}
}

func TestCreateCompanyReadAfterWrite(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	created, err := svc.CreateCompany(context.Background(), dto.CompanyInput{
		Name:        "Umbrella",
		Periodicity: 21,
		Emails:      []string{"Contact@Umbrella.example "},
	})
	if err != nil {
		t.Fatalf("CreateCompany returned error: %v", err)
	}
	if created.Emails[0] != "contact@umbrella.example" {
		t.Errorf("email not normalized: %q", created.Emails[0])
	}

	got, err := svc.CompanyByID(created.ID)
	if err != nil {
		t.Fatalf("read after write failed: %v", err)
	}
	if got.Name != "Umbrella" {
		t.Errorf("got company %q", got.Name)
	}
	if len(repo.savedCompanies) != 1 {
		t.Errorf("expected 1 persisted company, got %d", len(repo.savedCompanies))
	}
}

func TestCreateCompanyRejectsInvalidPayload(t *testing.T) {
	svc := newTestService(nil)

	_, err := svc.CreateCompany(context.Background(), dto.CompanyInput{Name: "NoPeriod", Periodicity: 0})
	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if got := len(svc.Companies()); got != 3 {
		t.Errorf("company count changed to %d after rejected create", got)
	}
}

func TestReorderMethods(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	methods, err := svc.ReorderMethods(context.Background(), []uuid.UUID{methodB, methodA})
	if err != nil {
		t.Fatalf("ReorderMethods returned error: %v", err)
	}
	if methods[0].ID != methodB || methods[0].Sequence != 1 {
		t.Errorf("first method = %s seq %d, want %s seq 1", methods[0].ID, methods[0].Sequence, methodB)
	}
	if methods[1].ID != methodA || methods[1].Sequence != 2 {
		t.Errorf("second method = %s seq %d, want %s seq 2", methods[1].ID, methods[1].Sequence, methodA)
	}
	if len(repo.replacedOrder) != 1 {
		t.Errorf("expected one persisted order rewrite, got %d", len(repo.replacedOrder))
	}
}

func TestReorderMethodsRejectsPartialOrDuplicateLists(t *testing.T) {
	svc := newTestService(nil)

	cases := map[string][]uuid.UUID{
		"missing id":   {methodA},
		"duplicate id": {methodA, methodA},
		"unknown id":   {methodA, uuid.New()},
	}
	for name, ids := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := svc.ReorderMethods(context.Background(), ids); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestDashboardDerivesFromOneInstant(t *testing.T) {
	svc := newTestService(nil)

	if _, err := svc.LogCommunication(context.Background(), dto.LogCommunicationRequest{
		CompanyIDs: []uuid.UUID{companyA},
		MethodID:   methodA,
		Date:       "2024-02-20",
	}); err != nil {
		t.Fatalf("seed communication: %v", err)
	}

	rows := svc.Dashboard()
	if len(rows) != 3 {
		t.Fatalf("expected 3 dashboard rows, got %d", len(rows))
	}

	// Acme: last contact 2024-02-20, periodicity 14, now 2024-03-10 => 19 days => overdue.
	acme := rows[0]
	if acme.Company.ID != companyA {
		t.Fatalf("row order changed, first row is %s", acme.Company.Name)
	}
	if acme.Status != "overdue" {
		t.Errorf("Acme status = %q, want overdue", acme.Status)
	}
	wantDue := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	if !acme.NextDue.Equal(wantDue) {
		t.Errorf("Acme next due = %s, want %s", acme.NextDue, wantDue)
	}
	if len(acme.LastFive) != 1 || acme.LastFive[0].MethodName != "Email" {
		t.Errorf("Acme history = %+v, want one Email entry", acme.LastFive)
	}

	// Globex has no history and is overdue by definition.
	if rows[1].Status != "overdue" {
		t.Errorf("Globex status = %q, want overdue", rows[1].Status)
	}
}

func TestDeleteCompanyKeepsHistoryVisible(t *testing.T) {
	svc := newTestService(nil)

	comms, err := svc.LogCommunication(context.Background(), dto.LogCommunicationRequest{
		CompanyIDs: []uuid.UUID{companyC},
		MethodID:   methodB,
		Date:       "2024-03-01",
	})
	if err != nil {
		t.Fatalf("seed communication: %v", err)
	}
	if err := svc.DeleteCompany(context.Background(), companyC); err != nil {
		t.Fatalf("DeleteCompany returned error: %v", err)
	}

	snap := svc.Snapshot()
	if _, ok := snap.Company(companyC); ok {
		t.Error("company still present after delete")
	}
	if _, ok := snap.Communication(comms[0].ID); !ok {
		t.Error("communication dropped with its company")
	}
}

func TestNotificationsAfterWrite(t *testing.T) {
	svc := newTestService(nil)

	// All three companies start without history, so all three are overdue.
	feed := svc.Notifications()
	if len(feed) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(feed))
	}
	for _, n := range feed {
		if n.Type != "overdue" {
			t.Errorf("notification %s type = %s, want overdue", n.ID, n.Type)
		}
	}

	// Contacting Initech today moves it out of the feed entirely
	// (periodicity 7 puts the next due date inside the upcoming window).
	if _, err := svc.LogCommunication(context.Background(), dto.LogCommunicationRequest{
		CompanyIDs: []uuid.UUID{companyC},
		MethodID:   methodA,
		Date:       "2024-03-10",
	}); err != nil {
		t.Fatalf("log communication: %v", err)
	}

	feed = svc.Notifications()
	var initech int
	for _, n := range feed {
		if n.CompanyID == companyC {
			initech++
			if n.Type != "upcoming" {
				t.Errorf("Initech type = %s, want upcoming", n.Type)
			}
		}
	}
	if initech != 1 {
		t.Errorf("expected exactly one Initech notification, got %d", initech)
	}
}
