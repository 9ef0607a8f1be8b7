// ABOUTME: Company form handler
// ABOUTME: Implements the add-company form: required fields, blank filtering and default periodicity
package handlers

import (
	"context"
	"fmt"
	"net/url"

	"github.com/google/uuid"
	"github.com/harperreed/touchbase/db"
	"github.com/harperreed/touchbase/models"
)

type CompanyHandlers struct {
	store              *db.Store
	defaultPeriodicity int
}

// NewCompanyHandlers falls back to models.DefaultPeriodicity when
// defaultPeriodicity is not positive.
func NewCompanyHandlers(store *db.Store, defaultPeriodicity int) *CompanyHandlers {
	if defaultPeriodicity <= 0 {
		defaultPeriodicity = models.DefaultPeriodicity
	}
	return &CompanyHandlers{store: store, defaultPeriodicity: defaultPeriodicity}
}

// DefaultPeriodicity is applied when the form leaves periodicity empty.
func (h *CompanyHandlers) DefaultPeriodicity() int {
	return h.defaultPeriodicity
}

type AddCompanyInput struct {
	Name         string   `json:"name"`
	Location     string   `json:"location"`
	ProfileURL   string   `json:"profile_url"`
	Emails       []string `json:"emails,omitempty"`
	PhoneNumbers []string `json:"phone_numbers,omitempty"`
	Comments     string   `json:"comments,omitempty"`
	// Periodicity in days; zero means the default.
	Periodicity int `json:"communication_periodicity,omitempty"`
}

// BuildCompany validates input and returns a new company without storing it.
func (h *CompanyHandlers) BuildCompany(input AddCompanyInput) (*models.Company, error) {
	name, err := required("name", input.Name)
	if err != nil {
		return nil, err
	}
	location, err := required("location", input.Location)
	if err != nil {
		return nil, err
	}
	profile, err := required("profile URL", input.ProfileURL)
	if err != nil {
		return nil, err
	}
	if u, err := url.Parse(profile); err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, validationErrorf("profile URL must be an http(s) URL")
	}

	emails := nonBlank(input.Emails)
	for _, e := range emails {
		if len(e) > 320 || !emailRx.MatchString(e) {
			return nil, validationErrorf("invalid email %q", e)
		}
	}

	periodicity := input.Periodicity
	switch {
	case periodicity == 0:
		periodicity = h.defaultPeriodicity
	case periodicity < 1:
		return nil, validationErrorf("communication periodicity must be at least 1 day")
	}

	return &models.Company{
		ID:                       uuid.New(),
		Name:                     name,
		Location:                 location,
		ProfileURL:               profile,
		Emails:                   emails,
		PhoneNumbers:             nonBlank(input.PhoneNumbers),
		Comments:                 input.Comments,
		CommunicationPeriodicity: periodicity,
	}, nil
}

// AddCompany validates input and appends the company to the store.
func (h *CompanyHandlers) AddCompany(ctx context.Context, input AddCompanyInput) (*models.Company, error) {
	company, err := h.BuildCompany(input)
	if err != nil {
		return nil, err
	}

	if err := h.store.AddCompany(ctx, company); err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	return company, nil
}
