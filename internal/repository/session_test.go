package repository

import (
	"context"
	"testing"
	"time"

	"fitnessfinder/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepository_CreateAssignsID(t *testing.T) {
	db := newTestDB(t)
	repo := NewSessionRepository(db)
	ctx := context.Background()

	session := &models.Session{Title: "Morning Run"}
	require.NoError(t, repo.Create(ctx, session))
	require.NotEmpty(t, session.ID)

	got, err := repo.GetByID(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, "Morning Run", got.Title)

	_, err = repo.GetByID(ctx, "no-such-id")
	assert.True(t, models.IsNotFound(err))
}

func TestSessionRepository_ListOrdersByDate(t *testing.T) {
	db := newTestDB(t)
	repo := NewSessionRepository(db)
	ctx := context.Background()

	later := &models.Session{Title: "Later", Date: time.Date(2026, 10, 2, 9, 0, 0, 0, time.UTC)}
	earlier := &models.Session{Title: "Earlier", Date: time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)}
	require.NoError(t, repo.Create(ctx, later))
	require.NoError(t, repo.Create(ctx, earlier))

	sessions, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "Earlier", sessions[0].Title)
	assert.Equal(t, "Later", sessions[1].Title)
}

func TestSessionRepository_InterestTags(t *testing.T) {
	db := newTestDB(t)
	repo := NewSessionRepository(db)
	ctx := context.Background()

	session := &models.Session{Title: "Morning Run"}
	require.NoError(t, repo.Create(ctx, session))
	require.NoError(t, repo.ReplaceInterests(ctx, session.ID, []string{"Running", "Trail"}))

	names, err := repo.GetInterests(ctx, session.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Running", "Trail"}, names)

	ids, err := repo.FindIDsByInterests(ctx, []string{"Running", "Trail"})
	require.NoError(t, err)
	assert.Equal(t, []string{session.ID}, ids, "a session matching several interests appears once")

	require.NoError(t, repo.DeleteInterests(ctx, session.ID))
	names, err = repo.GetInterests(ctx, session.ID)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestInterestRepository_UpsertIsIdempotentAndSorted(t *testing.T) {
	db := newTestDB(t)
	repo := NewInterestRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, "Yoga", "Running"))
	require.NoError(t, repo.Upsert(ctx, "Running", "Climbing"))

	names, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Climbing", "Running", "Yoga"}, names)
}
