package followups

import (
	"time"

	"github.com/harperreed/touchbase/models"
)

// Classifier binds a clock and a location so views can classify without
// threading both through every call.
type Classifier struct {
	Now      func() time.Time
	Location *time.Location
}

// NewClassifier uses the wall clock. A nil loc means time.Local.
func NewClassifier(loc *time.Location) *Classifier {
	if loc == nil {
		loc = time.Local
	}
	return &Classifier{Now: time.Now, Location: loc}
}

func (c *Classifier) Classify(date time.Time) models.Status {
	return Classify(date, c.Now(), c.Location)
}

// Today is midnight of the current calendar day in the classifier's location.
func (c *Classifier) Today() time.Time {
	y, m, d := c.Now().In(c.Location).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, c.Location)
}

func (c *Classifier) Notifications(companies []models.Company, comms []models.Communication) []Notification {
	return Notifications(companies, comms, c.Now(), c.Location)
}

func (c *Classifier) NotificationCount(companies []models.Company, comms []models.Communication) int {
	return NotificationCount(companies, comms, c.Now(), c.Location)
}
