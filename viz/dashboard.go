// ABOUTME: Dashboard view model and terminal rendering
// ABOUTME: Combines recent completed contacts, next pending contact and status per company
package viz

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/touchbase/db"
	"github.com/harperreed/touchbase/followups"
	"github.com/harperreed/touchbase/models"
)

// DateLayout is how every view prints communication dates.
const DateLayout = "Jan 2, 2006"

// Source is anything that can hand out a consistent view of the store.
type Source interface {
	Snapshot(ctx context.Context) (*db.Snapshot, error)
}

type Dashboard struct {
	Rows []DashboardRow

	// Overall stats
	TotalCompanies      int
	TotalCommunications int
	ByStatus            map[models.Status]int
	NotificationCount   int

	GeneratedAt time.Time
}

type DashboardRow struct {
	Company models.Company

	// Recent holds the last completed communications, newest first.
	Recent []CommunicationItem

	// Next is nil when nothing is planned.
	Next *CommunicationItem

	// CadenceDue is last completed + periodicity, nil before the first contact.
	CadenceDue *time.Time
}

// Status of the next pending communication, or "" when there is none.
func (r DashboardRow) Status() models.Status {
	if r.Next == nil {
		return ""
	}
	return r.Next.Status
}

type CommunicationItem struct {
	ID     string
	Date   time.Time
	Method string
	Notes  string
	// Status is only set for pending communications.
	Status models.Status
}

func (i CommunicationItem) FormattedDate() string {
	return i.Date.Format(DateLayout)
}

// BuildDashboard derives one row per company, in insertion order.
func BuildDashboard(ctx context.Context, src Source, classifier *followups.Classifier, recent int) (*Dashboard, error) {
	snap, err := src.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load dashboard data: %w", err)
	}

	dash := &Dashboard{
		TotalCompanies:      len(snap.Companies),
		TotalCommunications: len(snap.Communications),
		ByStatus:            make(map[models.Status]int),
		GeneratedAt:         classifier.Now(),
	}

	for _, company := range snap.Companies {
		row := DashboardRow{
			Company:    company,
			CadenceDue: followups.CadenceDue(company, snap.Communications),
		}

		for _, comm := range followups.LastCompleted(snap.Communications, company.ID, recent) {
			row.Recent = append(row.Recent, item(snap, comm))
		}

		if next := followups.NextPending(snap.Communications, company.ID); next != nil {
			it := item(snap, *next)
			it.Status = classifier.Classify(next.Date)
			row.Next = &it
			dash.ByStatus[it.Status]++
			if it.Status.NeedsAttention() {
				dash.NotificationCount++
			}
		}

		dash.Rows = append(dash.Rows, row)
	}

	return dash, nil
}

func item(snap *db.Snapshot, comm models.Communication) CommunicationItem {
	return CommunicationItem{
		ID:     comm.ID,
		Date:   comm.Date,
		Method: snap.MethodName(comm.MethodID),
		Notes:  comm.Notes,
	}
}

func RenderDashboard(dash *Dashboard) string {
	var out strings.Builder

	// Header
	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	out.WriteString("  TOUCHBASE COMMUNICATION DASHBOARD\n")
	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")

	if len(dash.Rows) == 0 {
		out.WriteString("No companies registered yet. Add one from the Companies page.\n")
		return out.String()
	}

	out.WriteString("STATS\n")
	out.WriteString(fmt.Sprintf("  %d companies  %d communications\n", dash.TotalCompanies, dash.TotalCommunications))
	out.WriteString(fmt.Sprintf("  %d overdue  %d due today  %d upcoming\n\n",
		dash.ByStatus[models.StatusOverdue], dash.ByStatus[models.StatusDueToday], dash.ByStatus[models.StatusUpcoming]))

	out.WriteString("COMPANIES\n")
	for _, row := range dash.Rows {
		out.WriteString(fmt.Sprintf("  %s (%s)\n", row.Company.Name, row.Company.Location))

		if len(row.Recent) == 0 {
			out.WriteString("    last:  none\n")
		}
		for i, recent := range row.Recent {
			label := "      "
			if i == 0 {
				label = "last: "
			}
			out.WriteString(fmt.Sprintf("    %s %s  %-16s %s\n", label, recent.FormattedDate(), recent.Method, recent.Notes))
		}

		if row.Next == nil {
			out.WriteString("    next:  nothing planned\n")
		} else {
			out.WriteString(fmt.Sprintf("    next:  %s  %-16s [%s]\n", row.Next.FormattedDate(), row.Next.Method, row.Next.Status.Label()))
		}

		if row.CadenceDue != nil {
			out.WriteString(fmt.Sprintf("    cadence: due %s (every %d days)\n",
				row.CadenceDue.Format(DateLayout), row.Company.CommunicationPeriodicity))
		}
	}

	if dash.NotificationCount > 0 {
		out.WriteString("\nNEEDS ATTENTION\n")
		out.WriteString(fmt.Sprintf("  ⚠️  %d companies overdue or due today\n", dash.NotificationCount))
	}

	return out.String()
}
