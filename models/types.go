// ABOUTME: Data models for touchbase entities
// ABOUTME: Defines Company, Communication, CommunicationMethod and status constants
package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultPeriodicity is the contact cadence, in days, for a new company.
const DefaultPeriodicity = 14

type Company struct {
	ID                       uuid.UUID `json:"id"`
	Name                     string    `json:"name"`
	Location                 string    `json:"location"`
	ProfileURL               string    `json:"profile_url"`
	Emails                   []string  `json:"emails"`
	PhoneNumbers             []string  `json:"phone_numbers"`
	Comments                 string    `json:"comments,omitempty"`
	CommunicationPeriodicity int       `json:"communication_periodicity"`
}

type CommunicationMethod struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Communication is either a contact that already happened (Completed) or a
// planned one that drives due status.
type Communication struct {
	ID        string    `json:"id"`
	CompanyID uuid.UUID `json:"company_id"`
	MethodID  string    `json:"method_id"`
	Date      time.Time `json:"date"`
	Notes     string    `json:"notes,omitempty"`
	Completed bool      `json:"completed"`
}

// Communication method IDs.
const (
	MethodLinkedInPost    = "linkedin-post"
	MethodLinkedInMessage = "linkedin-message"
	MethodEmail           = "email"
	MethodPhoneCall       = "phone-call"
	MethodOther           = "other"
)

// DefaultCommunicationMethods is the reference data seeded into every store.
func DefaultCommunicationMethods() []CommunicationMethod {
	return []CommunicationMethod{
		{ID: MethodLinkedInPost, Name: "LinkedIn Post"},
		{ID: MethodLinkedInMessage, Name: "LinkedIn Message"},
		{ID: MethodEmail, Name: "Email"},
		{ID: MethodPhoneCall, Name: "Phone Call"},
		{ID: MethodOther, Name: "Other"},
	}
}

// Status classifies a pending communication against today's date.
type Status string

const (
	StatusOverdue  Status = "overdue"
	StatusDueToday Status = "due_today"
	StatusUpcoming Status = "upcoming"
)

// NeedsAttention reports whether the status counts toward notifications.
func (s Status) NeedsAttention() bool {
	return s == StatusOverdue || s == StatusDueToday
}

// Label is the human-readable form used by the views.
func (s Status) Label() string {
	switch s {
	case StatusOverdue:
		return "Overdue"
	case StatusDueToday:
		return "Due today"
	case StatusUpcoming:
		return "Upcoming"
	}
	return ""
}

// PrimaryEmail returns the first email or "".
func (c *Company) PrimaryEmail() string {
	if len(c.Emails) == 0 {
		return ""
	}
	return c.Emails[0]
}

// PrimaryPhone returns the first phone number or "".
func (c *Company) PrimaryPhone() string {
	if len(c.PhoneNumbers) == 0 {
		return ""
	}
	return c.PhoneNumbers[0]
}
