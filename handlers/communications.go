// ABOUTME: Communication form handlers
// ABOUTME: Implements logging completed contacts, planning future ones and scheduling the next by periodicity
package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/touchbase/db"
	"github.com/harperreed/touchbase/followups"
	"github.com/harperreed/touchbase/models"
	"github.com/oklog/ulid/v2"
)

type CommunicationHandlers struct {
	store      *db.Store
	classifier *followups.Classifier
}

func NewCommunicationHandlers(store *db.Store, classifier *followups.Classifier) *CommunicationHandlers {
	return &CommunicationHandlers{store: store, classifier: classifier}
}

type LogCommunicationInput struct {
	CompanyID string `json:"company_id"`
	MethodID  string `json:"method_id"`
	// Date is YYYY-MM-DD in the configured location; empty means today.
	Date  string `json:"date,omitempty"`
	Notes string `json:"notes"`
	// ScheduleNext also plans the following contact at Date + periodicity.
	ScheduleNext bool `json:"schedule_next,omitempty"`
}

type LogCommunicationResult struct {
	Logged    models.Communication  `json:"logged"`
	Scheduled *models.Communication `json:"scheduled,omitempty"`
}

// LogCommunication records a contact that already happened.
func (h *CommunicationHandlers) LogCommunication(ctx context.Context, input LogCommunicationInput) (*LogCommunicationResult, error) {
	company, method, date, err := h.resolve(ctx, input.CompanyID, input.MethodID, input.Date)
	if err != nil {
		return nil, err
	}
	notes, err := required("notes", input.Notes)
	if err != nil {
		return nil, err
	}

	logged := &models.Communication{
		ID:        newCommunicationID(),
		CompanyID: company.ID,
		MethodID:  method.ID,
		Date:      date,
		Notes:     notes,
		Completed: true,
	}
	if err := h.store.AddCommunication(ctx, logged); err != nil {
		return nil, fmt.Errorf("failed to log communication: %w", err)
	}

	result := &LogCommunicationResult{Logged: *logged}
	if input.ScheduleNext {
		next, err := h.ScheduleFollowup(ctx, *company, *logged)
		if err != nil {
			return nil, err
		}
		result.Scheduled = next
	}

	return result, nil
}

type PlanCommunicationInput struct {
	CompanyID string `json:"company_id"`
	MethodID  string `json:"method_id"`
	Date      string `json:"date"`
	Notes     string `json:"notes,omitempty"`
}

// PlanCommunication records a pending contact that drives due status.
func (h *CommunicationHandlers) PlanCommunication(ctx context.Context, input PlanCommunicationInput) (*models.Communication, error) {
	if _, err := required("date", input.Date); err != nil {
		return nil, err
	}
	company, method, date, err := h.resolve(ctx, input.CompanyID, input.MethodID, input.Date)
	if err != nil {
		return nil, err
	}

	planned := &models.Communication{
		ID:        newCommunicationID(),
		CompanyID: company.ID,
		MethodID:  method.ID,
		Date:      date,
		Notes:     input.Notes,
		Completed: false,
	}
	if err := h.store.AddCommunication(ctx, planned); err != nil {
		return nil, fmt.Errorf("failed to plan communication: %w", err)
	}

	return planned, nil
}

// ScheduleFollowup plans the next contact with the company one periodicity
// after from, using the same method.
func (h *CommunicationHandlers) ScheduleFollowup(ctx context.Context, company models.Company, from models.Communication) (*models.Communication, error) {
	days := company.CommunicationPeriodicity
	if days <= 0 {
		days = models.DefaultPeriodicity
	}

	next := &models.Communication{
		ID:        newCommunicationID(),
		CompanyID: company.ID,
		MethodID:  from.MethodID,
		Date:      from.Date.AddDate(0, 0, days),
		Notes:     fmt.Sprintf("Follow up (every %d days)", days),
		Completed: false,
	}
	if err := h.store.AddCommunication(ctx, next); err != nil {
		return nil, fmt.Errorf("failed to schedule follow-up: %w", err)
	}

	return next, nil
}

func (h *CommunicationHandlers) resolve(ctx context.Context, companyIDStr, methodID, dateStr string) (*models.Company, *models.CommunicationMethod, time.Time, error) {
	if _, err := required("company_id", companyIDStr); err != nil {
		return nil, nil, time.Time{}, err
	}
	companyID, err := uuid.Parse(companyIDStr)
	if err != nil {
		return nil, nil, time.Time{}, validationErrorf("invalid company_id: %v", err)
	}
	company, err := h.store.Company(ctx, companyID)
	if err != nil {
		return nil, nil, time.Time{}, fmt.Errorf("failed to look up company: %w", err)
	}
	if company == nil {
		return nil, nil, time.Time{}, fmt.Errorf("%w: company %s", ErrNotFound, companyID)
	}

	if _, err := required("communication type", methodID); err != nil {
		return nil, nil, time.Time{}, err
	}
	method, err := h.store.CommunicationMethod(ctx, methodID)
	if err != nil {
		return nil, nil, time.Time{}, fmt.Errorf("failed to look up communication method: %w", err)
	}
	if method == nil {
		return nil, nil, time.Time{}, validationErrorf("unknown communication type %q", methodID)
	}

	date, err := h.parseDate(dateStr)
	if err != nil {
		return nil, nil, time.Time{}, err
	}

	return company, method, date, nil
}

func (h *CommunicationHandlers) parseDate(s string) (time.Time, error) {
	if s == "" {
		return h.classifier.Today(), nil
	}
	date, err := time.ParseInLocation(dateLayout, s, h.classifier.Location)
	if err != nil {
		return time.Time{}, validationErrorf("date must be YYYY-MM-DD")
	}
	return date, nil
}

func newCommunicationID() string {
	return ulid.Make().String()
}
