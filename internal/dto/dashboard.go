package dto

import (
	"time"

	"github.com/octobees/outreach-tracker/internal/entity"
)

// DashboardRow is one line of the status grid: the company, its recent
// history, the next scheduled contact and the derived status tag.
type DashboardRow struct {
	Company  entity.Company      `json:"company"`
	Status   string              `json:"status"`
	NextDue  time.Time           `json:"next_due"`
	LastFive []CommunicationView `json:"last_five"`
}
