package service

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/octobees/outreach-tracker/internal/entity"
	"github.com/octobees/outreach-tracker/internal/schedule"
)

// MethodFrequency counts completed and total communications per method.
type MethodFrequency struct {
	MethodID   uuid.UUID `json:"method_id"`
	MethodName string    `json:"method_name"`
	Total      int       `json:"total"`
	Completed  int       `json:"completed"`
}

// TrendPoint is the communication volume for one calendar day.
type TrendPoint struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}

// CompanyEngagement summarizes one company's outreach posture.
type CompanyEngagement struct {
	CompanyID   uuid.UUID `json:"company_id"`
	CompanyName string    `json:"company_name"`
	Status      string    `json:"status"`
	Total       int       `json:"total"`
	LastContact time.Time `json:"last_contact,omitzero"`
}

// MethodFrequencyReport aggregates communications by method, ordered by the
// method sequence. Deleted methods are excluded; their communications still
// count toward company totals elsewhere.
func (s *OutreachService) MethodFrequencyReport() []MethodFrequency {
	snap := s.Snapshot()

	byMethod := make(map[uuid.UUID]*MethodFrequency, len(snap.Methods))
	report := make([]MethodFrequency, 0, len(snap.Methods))
	for _, m := range snap.Methods {
		report = append(report, MethodFrequency{MethodID: m.ID, MethodName: m.Name})
		byMethod[m.ID] = &report[len(report)-1]
	}
	for _, c := range snap.Communications {
		freq, ok := byMethod[c.MethodID]
		if !ok {
			continue
		}
		freq.Total++
		if c.Status == entity.StatusCompleted {
			freq.Completed++
		}
	}
	return report
}

// TrendsReport buckets communications per calendar day across the inclusive
// [from, to] range. Days with no activity are emitted with a zero count so
// the series plots without gaps.
func (s *OutreachService) TrendsReport(from, to time.Time) []TrendPoint {
	snap := s.Snapshot()

	from = startOfDayUTC(from)
	to = startOfDayUTC(to)
	if to.Before(from) {
		return nil
	}

	counts := make(map[time.Time]int)
	for _, c := range snap.Communications {
		day := startOfDayUTC(c.Date)
		if day.Before(from) || day.After(to) {
			continue
		}
		counts[day]++
	}

	var points []TrendPoint
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		points = append(points, TrendPoint{Date: day, Count: counts[day]})
	}
	return points
}

// EngagementReport ranks companies by communication volume, most active
// first, with their current status for context.
func (s *OutreachService) EngagementReport() []CompanyEngagement {
	snap := s.Snapshot()
	now := s.now()

	report := make([]CompanyEngagement, 0, len(snap.Companies))
	for _, company := range snap.Companies {
		row := CompanyEngagement{
			CompanyID:   company.ID,
			CompanyName: company.Name,
			Status:      string(schedule.CompanyStatus(company, snap.Communications, now)),
		}
		for _, c := range snap.Communications {
			if c.CompanyID != company.ID {
				continue
			}
			row.Total++
		}
		if last, ok := schedule.LastCommunication(company.ID, snap.Communications); ok {
			row.LastContact = last.Date
		}
		report = append(report, row)
	}
	sort.SliceStable(report, func(i, j int) bool {
		return report[i].Total > report[j].Total
	})
	return report
}

func startOfDayUTC(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
