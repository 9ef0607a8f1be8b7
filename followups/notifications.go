// ABOUTME: Notification derivations for the navigation badge and notifications view
// ABOUTME: Counts companies, not communications, whose next pending contact needs attention
package followups

import (
	"sort"
	"time"

	"github.com/harperreed/touchbase/models"
)

// Notification is one company whose next pending communication is overdue
// or due today.
type Notification struct {
	Company       models.Company
	Communication models.Communication
	Status        models.Status
}

// Notifications lists at most one entry per company, overdue first, then by
// date, then by company input order.
func Notifications(companies []models.Company, comms []models.Communication, now time.Time, loc *time.Location) []Notification {
	var out []Notification
	for _, company := range companies {
		next := NextPending(comms, company.ID)
		if next == nil {
			continue
		}
		status := Classify(next.Date, now, loc)
		if !status.NeedsAttention() {
			continue
		}
		out = append(out, Notification{
			Company:       company,
			Communication: *next,
			Status:        status,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Status != out[j].Status {
			return out[i].Status == models.StatusOverdue
		}
		return out[i].Communication.Date.Before(out[j].Communication.Date)
	})

	return out
}

// NotificationCount is the number of distinct companies needing attention.
func NotificationCount(companies []models.Company, comms []models.Communication, now time.Time, loc *time.Location) int {
	return len(Notifications(companies, comms, now, loc))
}
