// ABOUTME: Notifications view model and navigation badge
// ABOUTME: Lists companies whose next planned contact is overdue or due today
package viz

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/harperreed/touchbase/followups"
	"github.com/harperreed/touchbase/models"
)

type NotificationRow struct {
	CompanyID   uuid.UUID
	CompanyName string
	Item        CommunicationItem
}

func (r NotificationRow) Status() models.Status {
	return r.Item.Status
}

// BuildNotifications returns overdue rows first, then due-today rows.
func BuildNotifications(ctx context.Context, src Source, classifier *followups.Classifier) ([]NotificationRow, error) {
	snap, err := src.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load notifications: %w", err)
	}

	notes := classifier.Notifications(snap.Companies, snap.Communications)
	rows := make([]NotificationRow, 0, len(notes))
	for _, n := range notes {
		it := item(snap, n.Communication)
		it.Status = n.Status
		rows = append(rows, NotificationRow{
			CompanyID:   n.Company.ID,
			CompanyName: n.Company.Name,
			Item:        it,
		})
	}
	return rows, nil
}

// NotificationCount is the number shown on the navigation badge.
func NotificationCount(ctx context.Context, src Source, classifier *followups.Classifier) (int, error) {
	snap, err := src.Snapshot(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count notifications: %w", err)
	}
	return classifier.NotificationCount(snap.Companies, snap.Communications), nil
}

// Badge renders the count, or "" so the badge is hidden when nothing needs attention.
func Badge(count int) string {
	if count <= 0 {
		return ""
	}
	return strconv.Itoa(count)
}
