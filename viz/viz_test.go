// ABOUTME: Tests for dashboard, companies and notifications view models
// ABOUTME: Uses an in-memory store and a classifier pinned to a fixed clock
package viz

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/touchbase/db"
	"github.com/harperreed/touchbase/followups"
	"github.com/harperreed/touchbase/models"
)

var fixedNow = time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)

func day(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

func testClassifier() *followups.Classifier {
	return &followups.Classifier{
		Now:      func() time.Time { return fixedNow },
		Location: time.UTC,
	}
}

func setupTestStore(t *testing.T) *db.Store {
	t.Helper()
	store, err := db.NewStore(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func addCompany(t *testing.T, store *db.Store, name string) models.Company {
	t.Helper()
	company := models.Company{
		ID:                       uuid.New(),
		Name:                     name,
		Location:                 "Chicago",
		ProfileURL:               "https://www.linkedin.com/company/" + strings.ToLower(name),
		Emails:                   []string{strings.ToLower(name) + "@example.com"},
		PhoneNumbers:             []string{},
		CommunicationPeriodicity: 10,
	}
	require.NoError(t, store.AddCompany(context.Background(), &company))
	return company
}

func addComm(t *testing.T, store *db.Store, company models.Company, method string, date time.Time, completed bool) {
	t.Helper()
	comm := models.Communication{
		ID:        uuid.NewString(),
		CompanyID: company.ID,
		MethodID:  method,
		Date:      date,
		Notes:     "note " + date.Format("0102"),
		Completed: completed,
	}
	require.NoError(t, store.AddCommunication(context.Background(), &comm))
}

type failingSource struct{}

func (failingSource) Snapshot(context.Context) (*db.Snapshot, error) {
	return nil, errors.New("backend down")
}

func TestBuildDashboardEmpty(t *testing.T) {
	dash, err := BuildDashboard(context.Background(), setupTestStore(t), testClassifier(), 5)
	require.NoError(t, err)
	assert.Empty(t, dash.Rows)
	assert.Zero(t, dash.NotificationCount)
	assert.Contains(t, RenderDashboard(dash), "No companies registered yet")
}

func TestBuildDashboard(t *testing.T) {
	store := setupTestStore(t)
	acme := addCompany(t, store, "Acme")
	globex := addCompany(t, store, "Globex")
	initech := addCompany(t, store, "Initech")

	for d := 1; d <= 7; d++ {
		addComm(t, store, acme, models.MethodEmail, day(d), true)
	}
	addComm(t, store, acme, models.MethodPhoneCall, day(14), false)
	addComm(t, store, acme, models.MethodPhoneCall, day(20), false)

	addComm(t, store, globex, "retired-method", day(2), true)
	addComm(t, store, globex, models.MethodEmail, day(15), false)

	addComm(t, store, initech, models.MethodOther, day(30), false)

	dash, err := BuildDashboard(context.Background(), store, testClassifier(), 5)
	require.NoError(t, err)
	require.Len(t, dash.Rows, 3)

	assert.Equal(t, 3, dash.TotalCompanies)
	assert.Equal(t, 12, dash.TotalCommunications)
	assert.Equal(t, 2, dash.NotificationCount)
	assert.Equal(t, 1, dash.ByStatus[models.StatusOverdue])
	assert.Equal(t, 1, dash.ByStatus[models.StatusDueToday])
	assert.Equal(t, 1, dash.ByStatus[models.StatusUpcoming])

	row := dash.Rows[0]
	assert.Equal(t, "Acme", row.Company.Name)
	require.Len(t, row.Recent, 5)
	assert.True(t, row.Recent[0].Date.Equal(day(7)))
	assert.True(t, row.Recent[4].Date.Equal(day(3)))
	assert.Equal(t, "Email", row.Recent[0].Method)
	require.NotNil(t, row.Next)
	assert.True(t, row.Next.Date.Equal(day(14)))
	assert.Equal(t, "Phone Call", row.Next.Method)
	assert.Equal(t, models.StatusOverdue, row.Status())
	require.NotNil(t, row.CadenceDue)
	assert.True(t, row.CadenceDue.Equal(day(17)))

	row = dash.Rows[1]
	require.Len(t, row.Recent, 1)
	assert.Equal(t, "", row.Recent[0].Method, "unknown methods render empty")
	assert.Equal(t, models.StatusDueToday, row.Status())

	row = dash.Rows[2]
	assert.Empty(t, row.Recent)
	assert.Nil(t, row.CadenceDue)
	assert.Equal(t, models.StatusUpcoming, row.Status())
}

func TestBuildDashboardNoPending(t *testing.T) {
	store := setupTestStore(t)
	acme := addCompany(t, store, "Acme")
	addComm(t, store, acme, models.MethodEmail, day(1), true)

	dash, err := BuildDashboard(context.Background(), store, testClassifier(), 5)
	require.NoError(t, err)
	require.Len(t, dash.Rows, 1)
	assert.Nil(t, dash.Rows[0].Next)
	assert.Equal(t, models.Status(""), dash.Rows[0].Status())
}

func TestBuildDashboardSourceError(t *testing.T) {
	_, err := BuildDashboard(context.Background(), failingSource{}, testClassifier(), 5)
	assert.Error(t, err)
}

func TestRenderDashboard(t *testing.T) {
	store := setupTestStore(t)
	acme := addCompany(t, store, "Acme")
	addComm(t, store, acme, models.MethodEmail, day(10), true)
	addComm(t, store, acme, models.MethodEmail, day(12), false)
	addCompany(t, store, "Globex")

	dash, err := BuildDashboard(context.Background(), store, testClassifier(), 5)
	require.NoError(t, err)

	out := RenderDashboard(dash)
	assert.Contains(t, out, "TOUCHBASE COMMUNICATION DASHBOARD")
	assert.Contains(t, out, "Acme (Chicago)")
	assert.Contains(t, out, "Mar 10, 2024")
	assert.Contains(t, out, "[Overdue]")
	assert.Contains(t, out, "cadence: due Mar 20, 2024 (every 10 days)")
	assert.Contains(t, out, "nothing planned")
	assert.Contains(t, out, "1 companies overdue or due today")
}

func TestBuildCompanies(t *testing.T) {
	store := setupTestStore(t)
	addCompany(t, store, "Acme")
	addCompany(t, store, "Globex")

	rows, err := BuildCompanies(context.Background(), store)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Acme", rows[0].Name)
	assert.Equal(t, "acme@example.com", rows[0].Email)
	assert.Equal(t, "", rows[0].Phone)
	assert.Equal(t, "Every 10 days", rows[0].Periodicity)
	assert.Equal(t, "Globex", rows[1].Name)
}

func TestBuildNotifications(t *testing.T) {
	store := setupTestStore(t)
	acme := addCompany(t, store, "Acme")
	globex := addCompany(t, store, "Globex")
	initech := addCompany(t, store, "Initech")

	addComm(t, store, acme, models.MethodEmail, day(15), false)
	addComm(t, store, globex, models.MethodPhoneCall, day(11), false)
	addComm(t, store, globex, models.MethodPhoneCall, day(13), false)
	addComm(t, store, initech, models.MethodEmail, day(16), false)

	ctx := context.Background()
	rows, err := BuildNotifications(ctx, store, testClassifier())
	require.NoError(t, err)
	require.Len(t, rows, 2, "one row per company")

	assert.Equal(t, "Globex", rows[0].CompanyName)
	assert.Equal(t, models.StatusOverdue, rows[0].Status())
	assert.True(t, rows[0].Item.Date.Equal(day(11)))
	assert.Equal(t, "Acme", rows[1].CompanyName)
	assert.Equal(t, models.StatusDueToday, rows[1].Status())

	count, err := NotificationCount(ctx, store, testClassifier())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestBadge(t *testing.T) {
	assert.Equal(t, "", Badge(0))
	assert.Equal(t, "", Badge(-1))
	assert.Equal(t, "3", Badge(3))
}
