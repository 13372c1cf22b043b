package entries_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"impulselog/internal/common"
	"impulselog/internal/server/models"
	"impulselog/internal/server/repositories/entries"
	"impulselog/internal/server/repositories/repomanager"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var seq int

func newTestRepo(t *testing.T) (entries.Repository, int64) {
	t.Helper()

	seq++
	dsn := fmt.Sprintf("file:entries_test_%d?mode=memory&cache=shared", seq)
	m, err := repomanager.NewSQLiteRepositoryManager(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })

	ctx := context.Background()
	require.NoError(t, m.RunMigrations(ctx))

	// Entries reference a user row.
	now := time.Now().UTC().Truncate(time.Second)
	owner, err := m.Users(m.Conn()).Create(ctx, &models.User{
		Username: "owner", Email: "owner@example.com", PasswordHash: "h",
		CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)

	return m.Entries(m.Conn()), owner.ID
}

func testEntry(userID int64, createdAt time.Time) *models.ImpulseEntry {
	return &models.ImpulseEntry{
		ID:          uuid.New().String(),
		UserID:      userID,
		ImpulseText: "buy a synthesizer",
		Trigger:     "late night browsing",
		Emotion:     "excitement",
		DidAct:      models.OutcomeUnknown,
		Notes:       "",
		CreatedAt:   createdAt,
	}
}

func TestCreateAndGet(t *testing.T) {
	repo, userID := newTestRepo(t)
	ctx := context.Background()

	entry := testEntry(userID, time.Now().UTC().Truncate(time.Second))
	_, err := repo.Create(ctx, entry)
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, userID, entry.ID)
	require.NoError(t, err)
	require.Equal(t, entry.ImpulseText, got.ImpulseText)
	require.Equal(t, models.OutcomeUnknown, got.DidAct)
	require.Nil(t, got.UpdatedAt)
}

func TestGet_WrongOwner(t *testing.T) {
	repo, userID := newTestRepo(t)
	ctx := context.Background()

	entry := testEntry(userID, time.Now().UTC())
	_, err := repo.Create(ctx, entry)
	require.NoError(t, err)

	_, err = repo.GetByID(ctx, userID+1, entry.ID)
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestList_NewestFirst(t *testing.T) {
	repo, userID := newTestRepo(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var ids []string
	for i := 0; i < 3; i++ {
		e := testEntry(userID, base.Add(time.Duration(i)*time.Hour))
		_, err := repo.Create(ctx, e)
		require.NoError(t, err)
		ids = append(ids, e.ID)
	}

	got, err := repo.List(ctx, userID, models.EntryFilter{})
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, ids[2], got[0].ID)
	require.Equal(t, ids[0], got[2].ID)
}

func TestList_Empty(t *testing.T) {
	repo, userID := newTestRepo(t)

	got, err := repo.List(context.Background(), userID, models.EntryFilter{})
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got, 0)
}

func TestList_Filters(t *testing.T) {
	repo, userID := newTestRepo(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	early := testEntry(userID, base)
	early.DidAct = models.OutcomeYes
	mid := testEntry(userID, base.AddDate(0, 0, 5))
	mid.DidAct = models.OutcomeNo
	late := testEntry(userID, base.AddDate(0, 0, 10))
	late.DidAct = models.OutcomeNo

	for _, e := range []*models.ImpulseEntry{early, mid, late} {
		_, err := repo.Create(ctx, e)
		require.NoError(t, err)
	}

	from := base.AddDate(0, 0, 1)
	got, err := repo.List(ctx, userID, models.EntryFilter{StartDate: &from})
	require.NoError(t, err)
	require.Len(t, got, 2)

	to := base.AddDate(0, 0, 6)
	got, err = repo.List(ctx, userID, models.EntryFilter{StartDate: &from, EndDate: &to})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, mid.ID, got[0].ID)

	got, err = repo.List(ctx, userID, models.EntryFilter{DidAct: models.OutcomeNo})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, late.ID, got[0].ID)
}

func TestUpdate(t *testing.T) {
	repo, userID := newTestRepo(t)
	ctx := context.Background()

	entry := testEntry(userID, time.Now().UTC().Truncate(time.Second))
	_, err := repo.Create(ctx, entry)
	require.NoError(t, err)

	now := entry.CreatedAt.Add(time.Minute)
	entry.ImpulseText = "skip the gym"
	entry.DidAct = models.OutcomeYes
	entry.UpdatedAt = &now

	_, err = repo.Update(ctx, entry)
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, userID, entry.ID)
	require.NoError(t, err)
	require.Equal(t, "skip the gym", got.ImpulseText)
	require.Equal(t, models.OutcomeYes, got.DidAct)
	require.NotNil(t, got.UpdatedAt)
}

func TestUpdate_WrongOwner(t *testing.T) {
	repo, userID := newTestRepo(t)
	ctx := context.Background()

	entry := testEntry(userID, time.Now().UTC())
	_, err := repo.Create(ctx, entry)
	require.NoError(t, err)

	entry.UserID = userID + 1
	_, err = repo.Update(ctx, entry)
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestDelete(t *testing.T) {
	repo, userID := newTestRepo(t)
	ctx := context.Background()

	entry := testEntry(userID, time.Now().UTC())
	_, err := repo.Create(ctx, entry)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, userID, entry.ID))

	_, err = repo.GetByID(ctx, userID, entry.ID)
	require.ErrorIs(t, err, common.ErrorNotFound)

	require.ErrorIs(t, repo.Delete(ctx, userID, entry.ID), common.ErrorNotFound)
}
