// ABOUTME: Tests for CLI commands
// ABOUTME: Runs commands against an in-memory store with captured output
package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/touchbase/config"
	"github.com/harperreed/touchbase/db"
	"github.com/harperreed/touchbase/followups"
)

var fixedNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func setupTestCLI(t *testing.T) (*Runtime, *bytes.Buffer) {
	t.Helper()

	store, err := db.NewStore(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	var out bytes.Buffer
	return &Runtime{
		Store:  store,
		Config: config.DefaultConfig(),
		Classifier: &followups.Classifier{
			Now:      func() time.Time { return fixedNow },
			Location: time.UTC,
		},
		Out: &out,
	}, &out
}

func TestMethodsCommand(t *testing.T) {
	rt, out := setupTestCLI(t)

	require.NoError(t, MethodsCommand(context.Background(), rt, nil))
	assert.Contains(t, out.String(), "ID")
	assert.Contains(t, out.String(), "linkedin-post")
	assert.Contains(t, out.String(), "Phone Call")
}

func TestDashboardCommandEmpty(t *testing.T) {
	rt, out := setupTestCLI(t)

	require.NoError(t, DashboardCommand(context.Background(), rt, nil))
	assert.Contains(t, out.String(), "No companies registered yet")
}

func TestDashboardCommandDemo(t *testing.T) {
	rt, out := setupTestCLI(t)

	require.NoError(t, DashboardCommand(context.Background(), rt, []string{"--demo"}))

	text := out.String()
	assert.Contains(t, text, "Acme Robotics")
	assert.Contains(t, text, "Globex Analytics")
	assert.Contains(t, text, "1 overdue  1 due today  1 upcoming")
	assert.Contains(t, text, "2 companies overdue or due today")
}

func TestSeedDemoData(t *testing.T) {
	rt, _ := setupTestCLI(t)
	ctx := context.Background()

	require.NoError(t, SeedDemoData(ctx, rt))

	snap, err := rt.Store.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Companies, len(demoCompanies))
	assert.Equal(t, 2, rt.Classifier.NotificationCount(snap.Companies, snap.Communications))

	initech := snap.Companies[2]
	assert.Equal(t, rt.Config.DefaultPeriodicity, initech.CommunicationPeriodicity)
}

func TestConfigCommand(t *testing.T) {
	rt, out := setupTestCLI(t)
	rt.ConfigPath = filepath.Join(t.TempDir(), "config.json")

	require.NoError(t, ConfigCommand(context.Background(), rt, []string{"--write"}))

	var printed config.Config
	require.NoError(t, json.NewDecoder(bytes.NewReader(out.Bytes())).Decode(&printed))
	assert.Equal(t, *rt.Config, printed)
	assert.Contains(t, out.String(), "Config written to")
	assert.FileExists(t, rt.ConfigPath)
}

func TestServeCommandInvalidPort(t *testing.T) {
	rt, _ := setupTestCLI(t)

	err := ServeCommand(context.Background(), rt, []string{"--port", "70000"})
	assert.Error(t, err)
}

func TestServeCommandUnknownFlag(t *testing.T) {
	rt, _ := setupTestCLI(t)

	err := ServeCommand(context.Background(), rt, []string{"--bogus"})
	assert.Error(t, err)
}

func TestServeCommandStopsOnCancel(t *testing.T) {
	rt, _ := setupTestCLI(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- ServeCommand(ctx, rt, []string{"--port", "0", "--demo"}) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop")
	}

	companies, err := rt.Store.Companies(context.Background())
	require.NoError(t, err)
	assert.Len(t, companies, len(demoCompanies))
}
