// Package notification turns the current snapshot into a flat, cross-company
// feed of outreach reminders. The classifier holds no state and no cache; it
// is recomputed from scratch on every evaluation, which keeps it immune to
// staleness at the small in-memory scale this tracker operates at.
package notification

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/octobees/outreach-tracker/internal/schedule"
	"github.com/octobees/outreach-tracker/internal/store"
)

// UpcomingWindowDays bounds how far ahead an upcoming reminder is raised.
const UpcomingWindowDays = 7

// Type discriminates the urgency of a notification.
type Type string

const (
	TypeOverdue  Type = "overdue"
	TypeDue      Type = "due"
	TypeUpcoming Type = "upcoming"
)

// Valid reports whether t names a known notification type.
func (t Type) Valid() bool {
	switch t {
	case TypeOverdue, TypeDue, TypeUpcoming:
		return true
	}
	return false
}

// Notification is one entry in the feed. CompanyName is a denormalized copy
// taken at classification time, not a live reference.
type Notification struct {
	ID          string    `json:"id"`
	Type        Type      `json:"type"`
	CompanyID   uuid.UUID `json:"company_id"`
	CompanyName string    `json:"company_name"`
	Date        time.Time `json:"date"`
	DaysOverdue int       `json:"days_overdue,omitempty"`
}

// Classify walks every company and emits at most one notification each, in
// input company order so repeated evaluations over an unchanged snapshot are
// reproducible. Companies comfortably on schedule emit nothing.
func Classify(snap store.Snapshot, now time.Time) []Notification {
	feed := make([]Notification, 0, len(snap.Companies))

	for _, company := range snap.Companies {
		_, hasHistory := schedule.LastCommunication(company.ID, snap.Communications)
		if !hasHistory {
			// Never contacted: maximally overdue regardless of date
			// math, with the periodicity standing in for days overdue.
			feed = append(feed, Notification{
				ID:          feedID(TypeOverdue, company.ID),
				Type:        TypeOverdue,
				CompanyID:   company.ID,
				CompanyName: company.Name,
				Date:        now,
				DaysOverdue: company.Periodicity,
			})
			continue
		}

		nextDue := schedule.NextDueDate(company, snap.Communications, now)
		daysUntilDue := schedule.DaysBetween(now, nextDue)

		switch {
		case daysUntilDue < 0:
			feed = append(feed, Notification{
				ID:          feedID(TypeOverdue, company.ID),
				Type:        TypeOverdue,
				CompanyID:   company.ID,
				CompanyName: company.Name,
				Date:        nextDue,
				DaysOverdue: -daysUntilDue,
			})
		case daysUntilDue == 0:
			feed = append(feed, Notification{
				ID:          feedID(TypeDue, company.ID),
				Type:        TypeDue,
				CompanyID:   company.ID,
				CompanyName: company.Name,
				Date:        nextDue,
			})
		case daysUntilDue <= UpcomingWindowDays:
			feed = append(feed, Notification{
				ID:          feedID(TypeUpcoming, company.ID),
				Type:        TypeUpcoming,
				CompanyID:   company.ID,
				CompanyName: company.Name,
				Date:        nextDue,
			})
		}
	}

	return feed
}

// Filter keeps notifications of one type, preserving relative order.
func Filter(feed []Notification, t Type) []Notification {
	out := make([]Notification, 0, len(feed))
	for _, n := range feed {
		if n.Type == t {
			out = append(out, n)
		}
	}
	return out
}

func feedID(t Type, companyID uuid.UUID) string {
	return fmt.Sprintf("%s-%s", t, companyID)
}
