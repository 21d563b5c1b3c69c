// Package schedule derives temporal outreach status for a company from its
// communication history. Everything here is a pure function of its inputs;
// callers capture "now" once per evaluation pass so that status, due dates
// and notifications computed together agree on the clock.
package schedule

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/octobees/outreach-tracker/internal/entity"
)

// Status classifies how a company stands against its periodicity.
type Status string

const (
	StatusOverdue Status = "overdue"
	StatusDue     Status = "due"
	StatusNormal  Status = "normal"
)

// DefaultHistoryLimit is the number of communications shown in previews.
const DefaultHistoryLimit = 5

// LastCommunication returns the most recent communication for the company.
// When two communications share a date the earliest inserted one wins; the
// input order is insertion order and the scan only advances on a strictly
// later date.
func LastCommunication(companyID uuid.UUID, comms []entity.Communication) (entity.Communication, bool) {
	var (
		last  entity.Communication
		found bool
	)
	for _, c := range comms {
		if c.CompanyID != companyID {
			continue
		}
		if !found || c.Date.After(last.Date) {
			last = c
			found = true
		}
	}
	return last, found
}

// NextDueDate computes when the company should next be contacted. Without any
// history the clock starts at evaluation time, not company creation time.
func NextDueDate(company entity.Company, comms []entity.Communication, now time.Time) time.Time {
	last, ok := LastCommunication(company.ID, comms)
	if !ok {
		return startOfDay(now).AddDate(0, 0, company.Periodicity)
	}
	return startOfDay(last.Date).AddDate(0, 0, company.Periodicity)
}

// CompanyStatus classifies the company as overdue, due or normal. A company
// with no communications at all is overdue.
func CompanyStatus(company entity.Company, comms []entity.Communication, now time.Time) Status {
	last, ok := LastCommunication(company.ID, comms)
	if !ok {
		return StatusOverdue
	}

	daysSinceLast := DaysBetween(last.Date, now)
	switch {
	case daysSinceLast > company.Periodicity:
		return StatusOverdue
	case daysSinceLast == company.Periodicity:
		return StatusDue
	default:
		return StatusNormal
	}
}

// RecentHistory returns the limit most recent communications for the company,
// descending by date. Ties keep insertion order. A non-positive limit falls
// back to DefaultHistoryLimit.
func RecentHistory(companyID uuid.UUID, comms []entity.Communication, limit int) []entity.Communication {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	history := make([]entity.Communication, 0, limit)
	for _, c := range comms {
		if c.CompanyID == companyID {
			history = append(history, c)
		}
	}
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].Date.After(history[j].Date)
	})
	if len(history) > limit {
		history = history[:limit]
	}
	return history
}

// DaysBetween counts whole days from one calendar date to another. Both
// timestamps are midnight-normalized first so partial days never flap the
// result. The count is negative when to precedes from.
func DaysBetween(from, to time.Time) int {
	return int(startOfDay(to).Sub(startOfDay(from)).Hours() / 24)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
