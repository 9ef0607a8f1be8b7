// ABOUTME: Pure derivations over the communication log
// ABOUTME: Computes recent history, next pending contact, due classification and notification counts
package followups

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/touchbase/models"
)

// LastCompleted returns up to n completed communications for the company,
// newest first. Communications sharing a date keep their input order.
func LastCompleted(comms []models.Communication, companyID uuid.UUID, n int) []models.Communication {
	if n <= 0 {
		return nil
	}

	var done []models.Communication
	for _, c := range comms {
		if c.CompanyID == companyID && c.Completed {
			done = append(done, c)
		}
	}

	sort.SliceStable(done, func(i, j int) bool {
		return done[i].Date.After(done[j].Date)
	})

	if len(done) > n {
		done = done[:n]
	}
	return done
}

// NextPending returns the earliest incomplete communication for the
// company, or nil when there is none.
func NextPending(comms []models.Communication, companyID uuid.UUID) *models.Communication {
	var next *models.Communication
	for i := range comms {
		c := &comms[i]
		if c.CompanyID != companyID || c.Completed {
			continue
		}
		// Strictly-before keeps the first of equal dates.
		if next == nil || c.Date.Before(next.Date) {
			next = c
		}
	}
	if next == nil {
		return nil
	}
	result := *next
	return &result
}

// Classify compares calendar days in loc, ignoring time of day.
func Classify(date, now time.Time, loc *time.Location) models.Status {
	if loc == nil {
		loc = time.Local
	}

	d := calendarDay(date, loc)
	today := calendarDay(now, loc)

	switch {
	case d.Before(today):
		return models.StatusOverdue
	case d.Equal(today):
		return models.StatusDueToday
	default:
		return models.StatusUpcoming
	}
}

func calendarDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CadenceDue is the date the company should next be contacted according to
// its periodicity: last completed contact plus periodicity days. It returns
// nil when nothing has been logged yet.
func CadenceDue(company models.Company, comms []models.Communication) *time.Time {
	last := LastCompleted(comms, company.ID, 1)
	if len(last) == 0 {
		return nil
	}

	days := company.CommunicationPeriodicity
	if days <= 0 {
		days = models.DefaultPeriodicity
	}
	due := last[0].Date.AddDate(0, 0, days)
	return &due
}
