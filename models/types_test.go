// ABOUTME: Tests for touchbase data models
// ABOUTME: Validates seeded methods, status helpers and company accessors
package models

import (
	"testing"

	"github.com/google/uuid"
)

func TestDefaultCommunicationMethods(t *testing.T) {
	methods := DefaultCommunicationMethods()
	if len(methods) != 5 {
		t.Fatalf("expected 5 methods, got %d", len(methods))
	}

	seen := make(map[string]bool)
	for _, m := range methods {
		if m.ID == "" || m.Name == "" {
			t.Errorf("method has empty field: %+v", m)
		}
		if seen[m.ID] {
			t.Errorf("duplicate method id %s", m.ID)
		}
		seen[m.ID] = true
	}

	if !seen[MethodEmail] {
		t.Error("expected email method to be seeded")
	}
}

func TestDefaultCommunicationMethodsReturnsFreshSlice(t *testing.T) {
	a := DefaultCommunicationMethods()
	a[0].Name = "changed"

	b := DefaultCommunicationMethods()
	if b[0].Name == "changed" {
		t.Error("callers must not be able to mutate the seed data")
	}
}

func TestStatusNeedsAttention(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusOverdue, true},
		{StatusDueToday, true},
		{StatusUpcoming, false},
		{Status(""), false},
	}

	for _, tt := range tests {
		if got := tt.status.NeedsAttention(); got != tt.want {
			t.Errorf("%q.NeedsAttention() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestStatusLabel(t *testing.T) {
	if StatusDueToday.Label() != "Due today" {
		t.Errorf("unexpected label %q", StatusDueToday.Label())
	}
	if Status("bogus").Label() != "" {
		t.Error("unknown status should have an empty label")
	}
}

func TestCompanyPrimaryContact(t *testing.T) {
	company := &Company{
		ID:           uuid.New(),
		Name:         "Acme",
		Emails:       []string{"a@acme.com", "b@acme.com"},
		PhoneNumbers: nil,
	}

	if company.PrimaryEmail() != "a@acme.com" {
		t.Errorf("expected first email, got %q", company.PrimaryEmail())
	}
	if company.PrimaryPhone() != "" {
		t.Errorf("expected empty phone, got %q", company.PrimaryPhone())
	}
}
