// Package seed provides the fixture snapshot the service boots from when no
// database is configured. State is transient in that mode; every process run
// starts from this data.
package seed

import (
	"time"

	"github.com/google/uuid"

	"github.com/octobees/outreach-tracker/internal/entity"
	"github.com/octobees/outreach-tracker/internal/store"
)

var (
	techCorpID  = uuid.MustParse("6f1d7d0a-91b4-4a7e-9a6e-2f1cf6f0a001")
	globalSolID = uuid.MustParse("6f1d7d0a-91b4-4a7e-9a6e-2f1cf6f0a002")

	linkedInMethodID = uuid.MustParse("8c4a5bb2-3e6d-4f0c-8d2a-aa10c0d0b001")
	emailMethodID    = uuid.MustParse("8c4a5bb2-3e6d-4f0c-8d2a-aa10c0d0b002")
	phoneMethodID    = uuid.MustParse("8c4a5bb2-3e6d-4f0c-8d2a-aa10c0d0b003")
)

func ptr(s string) *string { return &s }

// Snapshot returns the demo dataset: two companies, three ordered methods and
// a short history for the first company.
func Snapshot() store.Snapshot {
	created := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)

	return store.Snapshot{
		Companies: []entity.Company{
			{
				ID:           techCorpID,
				Name:         "Tech Corp",
				Location:     "San Francisco, CA",
				LinkedInURL:  ptr("https://linkedin.com/company/techcorp"),
				Emails:       []string{"contact@techcorp.com", "support@techcorp.com"},
				PhoneNumbers: []string{"+15550123001", "+15550123002"},
				Comments:     "Key technology partner",
				Periodicity:  14,
				CreatedAt:    created,
				UpdatedAt:    created,
			},
			{
				ID:           globalSolID,
				Name:         "Global Solutions",
				Location:     "London, UK",
				LinkedInURL:  ptr("https://linkedin.com/company/globalsolutions"),
				Emails:       []string{"info@globalsolutions.com"},
				PhoneNumbers: []string{"+442071234567"},
				Comments:     "International client",
				Periodicity:  30,
				CreatedAt:    created.AddDate(0, 0, 1),
				UpdatedAt:    created.AddDate(0, 0, 1),
			},
		},
		Methods: []entity.CommunicationMethod{
			{ID: linkedInMethodID, Name: "LinkedIn Post", Description: "Share content on LinkedIn", Sequence: 1, Mandatory: true},
			{ID: emailMethodID, Name: "Email", Description: "Direct email communication", Sequence: 2, Mandatory: true},
			{ID: phoneMethodID, Name: "Phone Call", Description: "Direct phone communication", Sequence: 3, Mandatory: false},
		},
		Communications: []entity.Communication{
			{
				ID:        uuid.MustParse("2b9f4c1e-5d3a-4c8b-9e7f-cc20e0f0c001"),
				CompanyID: techCorpID,
				MethodID:  linkedInMethodID,
				Date:      time.Date(2023, time.November, 1, 0, 0, 0, 0, time.UTC),
				Notes:     "Shared company update",
				Status:    entity.StatusCompleted,
			},
			{
				ID:        uuid.MustParse("2b9f4c1e-5d3a-4c8b-9e7f-cc20e0f0c002"),
				CompanyID: techCorpID,
				MethodID:  emailMethodID,
				Date:      time.Date(2023, time.November, 15, 0, 0, 0, 0, time.UTC),
				Notes:     "Follow-up email sent",
				Status:    entity.StatusCompleted,
			},
		},
	}
}
