// ABOUTME: Tests for the add-company form handler
// ABOUTME: Validates required fields, blank filtering and periodicity defaults
package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/harperreed/touchbase/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCompanyInput() AddCompanyInput {
	return AddCompanyInput{
		Name:         "Acme Corp",
		Location:     "Chicago, IL",
		ProfileURL:   "https://www.linkedin.com/company/acme",
		Emails:       []string{"hello@acme.com", "", "  ", "sales@acme.com"},
		PhoneNumbers: []string{"", "+1 312 555 0100"},
		Comments:     "Met at the expo",
	}
}

func TestAddCompanyHandler(t *testing.T) {
	store := setupTestStore(t)
	handler := NewCompanyHandlers(store, 0)
	ctx := context.Background()

	company, err := handler.AddCompany(ctx, validCompanyInput())
	require.NoError(t, err)

	assert.Equal(t, "Acme Corp", company.Name)
	assert.Equal(t, []string{"hello@acme.com", "sales@acme.com"}, company.Emails)
	assert.Equal(t, []string{"+1 312 555 0100"}, company.PhoneNumbers)
	assert.Equal(t, models.DefaultPeriodicity, company.CommunicationPeriodicity)

	companies, err := store.Companies(ctx)
	require.NoError(t, err)
	require.Len(t, companies, 1)
	assert.Equal(t, *company, companies[0])
}

func TestAddCompanyAllBlankLists(t *testing.T) {
	handler := NewCompanyHandlers(setupTestStore(t), 0)

	input := validCompanyInput()
	input.Emails = []string{""}
	input.PhoneNumbers = []string{""}

	company, err := handler.AddCompany(context.Background(), input)
	require.NoError(t, err)
	assert.Empty(t, company.Emails)
	assert.NotNil(t, company.Emails)
	assert.Empty(t, company.PhoneNumbers)
}

func TestAddCompanyPeriodicity(t *testing.T) {
	handler := NewCompanyHandlers(setupTestStore(t), 30)

	input := validCompanyInput()
	company, err := handler.AddCompany(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, 30, company.CommunicationPeriodicity, "zero falls back to the configured default")

	input.Periodicity = 7
	company, err = handler.AddCompany(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, 7, company.CommunicationPeriodicity)

	input.Periodicity = -1
	_, err = handler.AddCompany(context.Background(), input)
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestAddCompanyValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AddCompanyInput)
	}{
		{"missing name", func(in *AddCompanyInput) { in.Name = "  " }},
		{"missing location", func(in *AddCompanyInput) { in.Location = "" }},
		{"missing profile", func(in *AddCompanyInput) { in.ProfileURL = "" }},
		{"relative profile", func(in *AddCompanyInput) { in.ProfileURL = "linkedin.com/company/acme" }},
		{"ftp profile", func(in *AddCompanyInput) { in.ProfileURL = "ftp://example.com/acme" }},
		{"bad email", func(in *AddCompanyInput) { in.Emails = []string{"not-an-email"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := setupTestStore(t)
			handler := NewCompanyHandlers(store, 0)

			input := validCompanyInput()
			tt.mutate(&input)

			_, err := handler.AddCompany(context.Background(), input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation), "got %v", err)

			companies, err := store.Companies(context.Background())
			require.NoError(t, err)
			assert.Empty(t, companies, "invalid input must not reach the store")
		})
	}
}

func TestAddCompanyTrimsFields(t *testing.T) {
	handler := NewCompanyHandlers(setupTestStore(t), 0)

	input := validCompanyInput()
	input.Name = "  Acme Corp  "
	company, err := handler.AddCompany(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", company.Name)
}
