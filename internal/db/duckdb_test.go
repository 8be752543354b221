package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	dir := t.TempDir()
	db, err := New(filepath.Join(dir, "report.db"))
	require.NoError(t, err, "creating test db")
	t.Cleanup(func() { db.Close() })
	return db
}

func TestLatestRun_Empty(t *testing.T) {
	db := testDB(t)

	run, err := db.LatestRun()
	require.NoError(t, err)
	assert.Nil(t, run)
}

func TestRunLifecycle(t *testing.T) {
	db := testDB(t)

	first, err := db.BeginRun()
	require.NoError(t, err)
	second, err := db.BeginRun()
	require.NoError(t, err)
	require.Greater(t, second.ID, first.ID, "run ids not increasing")
	require.NoError(t, db.FinishRun(second.ID, 3))

	latest, err := db.LatestRun()
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, second.ID, latest.ID)
	assert.Equal(t, 3, latest.Pages)
	assert.NotNil(t, latest.FinishedAt)
}

func TestPlaceholdersAndSummary(t *testing.T) {
	db := testDB(t)

	run, err := db.BeginRun()
	require.NoError(t, err)
	other, err := db.BeginRun()
	require.NoError(t, err)

	records := []TabRecord{
		{RunID: run.ID, Page: "trading", Block: 1, Label: "Rust", Symbol: "place_order", Placeholder: true, Reason: "symbol not found: place_order"},
		{RunID: run.ID, Page: "trading", Block: 0, Label: "Rust", Symbol: "DriftClient", Heading: "Struct drift_rs::DriftClient", Link: "https://docs.rs/x"},
		{RunID: run.ID, Page: "deposits", Block: 0, Label: "API", Symbol: "deposit", Placeholder: true, Reason: "api docs not configured"},
		{RunID: other.ID, Page: "deposits", Block: 0, Label: "Python", Symbol: "deposit", Placeholder: true},
	}
	for i := range records {
		require.NoError(t, db.InsertTab(&records[i]))
	}

	got, err := db.Placeholders(run.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "deposits", got[0].Page, "placeholders in page order")
	assert.Equal(t, "place_order", got[1].Symbol)
	assert.Equal(t, "symbol not found: place_order", got[1].Reason)
	assert.Empty(t, got[1].Heading)

	summary, err := db.Summary(run.ID)
	require.NoError(t, err)
	assert.Equal(t, []LabelCount{
		{Label: "API", Tabs: 1, Placeholders: 1},
		{Label: "Rust", Tabs: 2, Placeholders: 1},
	}, summary)
}
