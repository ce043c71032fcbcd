package repository

import (
	"context"
	"testing"

	"fitnessfinder/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Profile{
		Email: "ada@example.com", FirstName: "Ada", LastName: "Lovelace",
	}))

	profile, err := repo.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", profile.FullName())

	_, err = repo.GetByEmail(ctx, "missing@example.com")
	assert.True(t, models.IsNotFound(err))
}

func TestProfileRepository_DuplicateEmailIsConflict(t *testing.T) {
	db := newTestDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Profile{Email: "ada@example.com"}))
	err := repo.Create(ctx, &models.Profile{Email: "ada@example.com"})
	require.Error(t, err)
	assert.True(t, models.IsConflict(err))
}

func TestProfileRepository_ReplaceInterests(t *testing.T) {
	db := newTestDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Profile{Email: "ada@example.com"}))
	require.NoError(t, repo.ReplaceInterests(ctx, "ada@example.com", []string{"Running", "Yoga"}))

	names, err := repo.GetInterests(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Running", "Yoga"}, names)

	// The set is replaced wholesale, never merged.
	require.NoError(t, repo.ReplaceInterests(ctx, "ada@example.com", []string{"Climbing"}))
	names, err = repo.GetInterests(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"Climbing"}, names)

	require.NoError(t, repo.ReplaceInterests(ctx, "ada@example.com", nil))
	names, err = repo.GetInterests(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestProfileRepository_FindEmailsByInterests(t *testing.T) {
	db := newTestDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Profile{Email: "ada@example.com"}))
	require.NoError(t, repo.Create(ctx, &models.Profile{Email: "bob@example.com"}))
	require.NoError(t, repo.ReplaceInterests(ctx, "ada@example.com", []string{"Running", "Yoga"}))
	require.NoError(t, repo.ReplaceInterests(ctx, "bob@example.com", []string{"Yoga"}))

	emails, err := repo.FindEmailsByInterests(ctx, []string{"Running"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ada@example.com"}, emails)

	// A profile matching several requested interests appears once.
	emails, err = repo.FindEmailsByInterests(ctx, []string{"Running", "Yoga"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"ada@example.com", "bob@example.com"}, emails)

	emails, err = repo.FindEmailsByInterests(ctx, []string{"Chess"})
	require.NoError(t, err)
	assert.Empty(t, emails)
}
