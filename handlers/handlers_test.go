// ABOUTME: Shared fixtures for handler tests
// ABOUTME: Provides an in-memory store and a classifier pinned to a fixed clock
package handlers

import (
	"context"
	"testing"
	"time"

	"github.com/harperreed/touchbase/db"
	"github.com/harperreed/touchbase/followups"
	"github.com/stretchr/testify/require"
)

var testLocation = time.FixedZone("EST", -5*60*60)

// 2024-01-12 10:00 EST.
var testNow = time.Date(2024, 1, 12, 10, 0, 0, 0, testLocation)

func setupTestStore(t *testing.T) *db.Store {
	t.Helper()
	store, err := db.NewStore(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testClassifier() *followups.Classifier {
	return &followups.Classifier{
		Now:      func() time.Time { return testNow },
		Location: testLocation,
	}
}
