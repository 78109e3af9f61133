package sqlite

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poyulin/tally/internal/apperrors"
	"github.com/poyulin/tally/internal/models"
)

func setupStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "tally-test-*.db")
	require.NoError(t, err)
	tmpFile.Close()
	t.Cleanup(func() { os.Remove(tmpFile.Name()) })

	store, err := New(tmpFile.Name())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func TestCreateAndGetProject(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	p := models.NewProject("", "Road Trip", "summer 2025")
	require.NoError(t, store.CreateProject(ctx, p))
	assert.NotEmpty(t, p.ID)

	got, err := store.GetProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Road Trip", got.Name)
	assert.Equal(t, "summer 2025", got.Description)
	assert.Equal(t, models.StatusActive, got.Status)
	assert.Equal(t, models.DefaultCategories(), got.Categories)
	assert.NotNil(t, got.Members)
	assert.NotNil(t, got.Transactions)
}

func TestGetProjectNotFound(t *testing.T) {
	store := setupStore(t)

	_, err := store.GetProject(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDuplicateProjectName(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateProject(ctx, models.NewProject("p1", "Trip", "")))

	// Case-insensitive collision.
	err := store.CreateProject(ctx, models.NewProject("p2", "TRIP", ""))
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
}

func TestSaveProjectRoundTrip(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	p := models.NewProject("p1", "Trip", "")
	require.NoError(t, store.CreateProject(ctx, p))

	p.AddMember(models.Member{ID: "m1", Name: "Alice", Avatar: "🐱"})
	p.AddTransaction(models.Transaction{
		ID: "t1", Title: "Lunch", Date: "2025-06-01", Amount: 12.5,
		PayerID: "m1", Category: "Food",
		Participants: []string{"m1"}, PaidMembers: []string{},
	})
	require.NoError(t, store.SaveProject(ctx, p))

	got, err := store.GetProject(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, got.Members, 1)
	assert.Equal(t, "Alice", got.Members[0].Name)
	require.Len(t, got.Transactions, 1)
	assert.Equal(t, models.Amount(12.5), got.Transactions[0].Amount)
	assert.Equal(t, []string{"m1"}, got.Transactions[0].Participants)
	assert.Empty(t, got.Transactions[0].PaidMembers)
}

func TestSaveProjectNotFound(t *testing.T) {
	store := setupStore(t)

	err := store.SaveProject(context.Background(), models.NewProject("ghost", "Nope", ""))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestListProjectsOrder(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	first := models.NewProject("p1", "First", "")
	second := models.NewProject("p2", "Second", "")
	second.LastUpdated = first.LastUpdated.Add(time.Second)
	require.NoError(t, store.CreateProject(ctx, first))
	require.NoError(t, store.CreateProject(ctx, second))

	projects, err := store.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "p2", projects[0].ID, "most recently updated first")
	assert.Equal(t, "p1", projects[1].ID)
}

func TestDeleteProject(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateProject(ctx, models.NewProject("p1", "Trip", "")))
	require.NoError(t, store.DeleteProject(ctx, "p1"))

	_, err := store.GetProject(ctx, "p1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.ErrorIs(t, store.DeleteProject(ctx, "p1"), apperrors.ErrNotFound)
}

func TestLegacySnapshotDecoding(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	// Simulate an older snapshot: string amount, no participant or
	// confirmation sets, no categories.
	legacy := `{
		"id": "p1", "name": "Old Trip", "status": "active",
		"members": [{"id":"m1","name":"Alice","avatar":"😊"}],
		"transactions": [{"id":"t1","title":"Lunch","date":"2024-01-01","amount":"15.50","payerId":"m1","category":"Food"}]
	}`
	_, err := store.db.ExecContext(ctx,
		"INSERT INTO projects (id, name, name_key, snapshot, updated_at) VALUES (?, ?, ?, ?, ?)",
		"p1", "Old Trip", "old trip", legacy, 0,
	)
	require.NoError(t, err)

	got, err := store.GetProject(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, got.Transactions, 1)
	assert.Equal(t, models.Amount(15.5), got.Transactions[0].Amount)
	assert.NotNil(t, got.Transactions[0].Participants)
	assert.Empty(t, got.Transactions[0].Participants)
	assert.NotNil(t, got.Transactions[0].PaidMembers)
	assert.Equal(t, models.DefaultCategories(), got.Categories)
}
