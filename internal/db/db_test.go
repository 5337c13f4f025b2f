package db_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgienger/worklog/internal/db"
	"github.com/tgienger/worklog/internal/models"
)

// newTestDB opens a migrated database in a per-test temp directory.
func newTestDB(t *testing.T) *db.DB {
	t.Helper()
	database, err := db.Open(context.Background(), filepath.Join(t.TempDir(), "worklog.db"))
	require.NoError(t, err, "open test database")
	t.Cleanup(func() { database.Close() })
	return database
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := models.ParseDate(s)
	require.NoError(t, err)
	return d
}

// seed inserts the two fixture entries used across the store tests.
func seed(t *testing.T, database *db.DB) (models.Entry, models.Entry) {
	t.Helper()
	ctx := context.Background()
	first, err := database.CreateEntry(ctx, models.Entry{
		Task:     "Beau test",
		Date:     mustDate(t, "24-08-1992"),
		Employee: "Ben Employee test",
		Duration: 20,
		Notes:    "Some test notes",
	})
	require.NoError(t, err)
	second, err := database.CreateEntry(ctx, models.Entry{
		Task:     "Task two",
		Date:     mustDate(t, "23-06-2001"),
		Employee: "Second employee",
		Duration: 110,
		Notes:    "Notes test",
	})
	require.NoError(t, err)
	return *first, *second
}

func ids(entries []models.Entry) []uuid.UUID {
	out := make([]uuid.UUID, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func TestOpen_reopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "worklog.db")
	ctx := context.Background()

	first, err := db.Open(ctx, path)
	require.NoError(t, err)
	_, err = first.CreateEntry(ctx, models.Entry{Task: "t", Date: mustDate(t, "01-01-2020"), Employee: "e"})
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := db.Open(ctx, path)
	require.NoError(t, err)
	defer second.Close()

	count, err := second.EntryCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCreateEntry(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()

	got, err := database.CreateEntry(ctx, models.Entry{
		Task:     "Beau test",
		Date:     mustDate(t, "24-08-1992"),
		Employee: "Ben Employee test",
		Duration: 20,
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, "Beau test", got.Task)
	assert.Equal(t, "24-08-1992", got.DateString())
	assert.Equal(t, "", got.Notes)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestCreateEntry_validation(t *testing.T) {
	database := newTestDB(t)

	_, err := database.CreateEntry(context.Background(), models.Entry{
		Task:     "",
		Date:     mustDate(t, "24-08-1992"),
		Employee: "Ben",
	})

	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestGetEntry_notFound(t *testing.T) {
	database := newTestDB(t)

	_, err := database.GetEntry(context.Background(), uuid.New())

	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestListEntries_dateDescending(t *testing.T) {
	database := newTestDB(t)
	first, second := seed(t, database)
	ctx := context.Background()

	// Same date as the first fixture: ties keep insertion order.
	third, err := database.CreateEntry(ctx, models.Entry{
		Task: "Third", Date: mustDate(t, "24-08-1992"), Employee: "Terry", Duration: 5,
	})
	require.NoError(t, err)

	got, err := database.ListEntries(ctx)

	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{second.ID, first.ID, third.ID}, ids(got))
}

func TestListEntries_empty(t *testing.T) {
	database := newTestDB(t)

	got, err := database.ListEntries(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListEntriesFiltered(t *testing.T) {
	database := newTestDB(t)
	first, second := seed(t, database)

	exact := "Ben Employee test"
	prefix := "Ben"
	twenty := 20
	from, to := mustDate(t, "24-08-1991"), mustDate(t, "24-08-1997")
	lo, hi := mustDate(t, "24-08-1992"), mustDate(t, "23-06-2001")

	tests := []struct {
		name   string
		filter models.EntryFilter
		want   []uuid.UUID
	}{
		{"employee substring", models.EntryFilter{EmployeeContains: "Ben"}, []uuid.UUID{first.ID}},
		{"employee substring shared", models.EntryFilter{EmployeeContains: "mployee"}, []uuid.UUID{second.ID, first.ID}},
		{"employee substring case-sensitive", models.EntryFilter{EmployeeContains: "Employee"}, []uuid.UUID{first.ID}},
		{"employee exact", models.EntryFilter{Employee: &exact}, []uuid.UUID{first.ID}},
		{"employee exact rejects prefix", models.EntryFilter{Employee: &prefix}, []uuid.UUID{}},
		{"term in task", models.EntryFilter{Term: "Beau"}, []uuid.UUID{first.ID}},
		{"term in notes", models.EntryFilter{Term: "Notes test"}, []uuid.UUID{second.ID}},
		{"term in both", models.EntryFilter{Term: "test"}, []uuid.UUID{second.ID, first.ID}},
		{"date", models.EntryFilter{Date: "24-08-1992"}, []uuid.UUID{first.ID}},
		{"date without match", models.EntryFilter{Date: "01-01-1900"}, []uuid.UUID{}},
		{"range", models.EntryFilter{From: &from, To: &to}, []uuid.UUID{first.ID}},
		{"range inclusive bounds", models.EntryFilter{From: &lo, To: &hi}, []uuid.UUID{second.ID, first.ID}},
		{"duration", models.EntryFilter{Duration: &twenty}, []uuid.UUID{first.ID}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := database.ListEntriesFiltered(context.Background(), tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

// TestListEntriesFiltered_matchesInMemory checks that the SQL translation of a
// filter agrees with EntryFilter.Match over the same rows.
func TestListEntriesFiltered_matchesInMemory(t *testing.T) {
	database := newTestDB(t)
	seed(t, database)
	ctx := context.Background()

	all, err := database.ListEntries(ctx)
	require.NoError(t, err)

	hundredTen := 110
	from := mustDate(t, "01-01-2000")
	for _, f := range []models.EntryFilter{
		{EmployeeContains: "employee"},
		{Term: "test"},
		{Term: "Task"},
		{Date: "23-06-2001"},
		{From: &from},
		{Duration: &hundredTen},
	} {
		got, err := database.ListEntriesFiltered(ctx, f)
		require.NoError(t, err)
		assert.Equal(t, ids(f.Apply(all)), ids(got), "filter %+v", f)
	}
}

func TestUpdateEntry(t *testing.T) {
	database := newTestDB(t)
	first, _ := seed(t, database)
	ctx := context.Background()

	first.Employee = "Renamed"
	first.Duration = 45
	require.NoError(t, database.UpdateEntry(ctx, first))

	got, err := database.GetEntry(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Employee)
	assert.Equal(t, 45, got.Duration)
}

func TestUpdateEntry_notFound(t *testing.T) {
	database := newTestDB(t)

	err := database.UpdateEntry(context.Background(), models.Entry{
		ID: uuid.New(), Task: "t", Date: mustDate(t, "01-01-2020"), Employee: "e",
	})

	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestDeleteEntry(t *testing.T) {
	database := newTestDB(t)
	first, _ := seed(t, database)
	ctx := context.Background()

	require.NoError(t, database.DeleteEntry(ctx, first.ID))

	count, err := database.EntryCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	assert.ErrorIs(t, database.DeleteEntry(ctx, first.ID), models.ErrNotFound)
}

func TestSettings(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()

	v, err := database.GetSetting(ctx, "last_search")
	require.NoError(t, err)
	assert.Equal(t, "", v)

	require.NoError(t, database.SetSetting(ctx, "last_search", "b"))
	require.NoError(t, database.SetSetting(ctx, "last_search", "c"))

	v, err = database.GetSetting(ctx, "last_search")
	require.NoError(t, err)
	assert.Equal(t, "c", v)
}
