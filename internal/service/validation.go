package service

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/net/idna"

	"github.com/octobees/outreach-tracker/internal/dto"
)

var (
	emailPattern = regexp.MustCompile(`^[a-z0-9._%+\-']+@[a-z0-9.-]+\.[a-z]{2,}$`)
	idnaProfile  = idna.Lookup
)

const defaultPhoneRegion = "US"

// ValidationError indicates that a client supplied payload is invalid.
type ValidationError struct {
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return e.Message
}

// CompanyValidator normalizes and validates company payloads before they
// reach the store: email syntax and domain, phone numbers to E.164, the
// LinkedIn profile URL and the outreach periodicity.
type CompanyValidator struct {
	DefaultRegion string
}

// NewCompanyValidator builds a validator with the given default phone region.
func NewCompanyValidator(region string) *CompanyValidator {
	region = strings.ToUpper(strings.TrimSpace(region))
	if region == "" {
		region = defaultPhoneRegion
	}
	return &CompanyValidator{DefaultRegion: region}
}

// Validate checks the payload and returns a cleaned copy of it.
func (v *CompanyValidator) Validate(input dto.CompanyInput) (dto.CompanyInput, error) {
	clean := input

	clean.Name = strings.TrimSpace(input.Name)
	if clean.Name == "" {
		return dto.CompanyInput{}, ValidationError{Message: "company name is required"}
	}
	clean.Location = strings.TrimSpace(input.Location)
	clean.Comments = strings.TrimSpace(input.Comments)

	if input.Periodicity <= 0 {
		return dto.CompanyInput{}, ValidationError{Message: "communication_periodicity must be a positive number of days"}
	}

	emails, err := v.cleanEmails(input.Emails)
	if err != nil {
		return dto.CompanyInput{}, err
	}
	clean.Emails = emails

	phones, err := v.normalizePhones(input.PhoneNumbers)
	if err != nil {
		return dto.CompanyInput{}, err
	}
	clean.PhoneNumbers = phones

	linkedIn, err := sanitizeLinkedInURL(input.LinkedInURL)
	if err != nil {
		return dto.CompanyInput{}, err
	}
	clean.LinkedInURL = linkedIn

	return clean, nil
}

func (v *CompanyValidator) cleanEmails(emails []string) ([]string, error) {
	if len(emails) == 0 {
		return nil, nil
	}

	seen := make(map[string]struct{}, len(emails))
	valid := make([]string, 0, len(emails))

	for _, raw := range emails {
		email := strings.ToLower(strings.TrimSpace(raw))
		if email == "" {
			continue
		}
		if !emailPattern.MatchString(email) {
			return nil, ValidationError{Message: fmt.Sprintf("invalid email address %q", raw)}
		}
		parts := strings.SplitN(email, "@", 2)
		asciiDomain, err := idnaProfile.ToASCII(parts[1])
		if err != nil || asciiDomain == "" {
			return nil, ValidationError{Message: fmt.Sprintf("invalid email domain in %q", raw)}
		}
		if _, dup := seen[email]; dup {
			continue
		}
		seen[email] = struct{}{}
		valid = append(valid, email)
	}
	if len(valid) == 0 {
		return nil, nil
	}
	return valid, nil
}

func (v *CompanyValidator) normalizePhones(phones []string) ([]string, error) {
	if len(phones) == 0 {
		return nil, nil
	}

	seen := make(map[string]struct{}, len(phones))
	valid := make([]string, 0, len(phones))

	for _, raw := range phones {
		candidate := strings.TrimSpace(raw)
		if candidate == "" {
			continue
		}
		parsed, err := phonenumbers.Parse(candidate, v.DefaultRegion)
		if err != nil || !phonenumbers.IsValidNumber(parsed) {
			return nil, ValidationError{Message: fmt.Sprintf("invalid phone number %q", raw)}
		}
		formatted := phonenumbers.Format(parsed, phonenumbers.E164)
		if _, dup := seen[formatted]; dup {
			continue
		}
		seen[formatted] = struct{}{}
		valid = append(valid, formatted)
	}
	if len(valid) == 0 {
		return nil, nil
	}
	return valid, nil
}

func sanitizeLinkedInURL(raw *string) (*string, error) {
	if raw == nil {
		return nil, nil
	}
	candidate := strings.TrimSpace(*raw)
	if candidate == "" {
		return nil, nil
	}

	parsed, err := url.Parse(candidate)
	if err != nil || parsed.Host == "" {
		return nil, ValidationError{Message: fmt.Sprintf("invalid linkedin_url %q", *raw)}
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, ValidationError{Message: fmt.Sprintf("invalid linkedin_url %q", *raw)}
	}
	host := strings.ToLower(strings.TrimPrefix(parsed.Host, "www."))
	if host != "linkedin.com" && !strings.HasSuffix(host, ".linkedin.com") {
		return nil, ValidationError{Message: fmt.Sprintf("linkedin_url must point at linkedin.com, got %q", *raw)}
	}

	normalized := parsed.String()
	return &normalized, nil
}
