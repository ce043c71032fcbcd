package repository

import (
	"context"
	"testing"

	"fitnessfinder/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParticipationRepository_DuplicatePairIsConflict(t *testing.T) {
	db := newTestDB(t)
	repo := NewParticipationRepository(db)
	ctx := context.Background()

	first := &models.ProfileParticipation{Profile: "ada@example.com", SessionID: "sess-1", Session: "Morning Run"}
	require.NoError(t, repo.CreateParticipation(ctx, first))

	dup := &models.ProfileParticipation{Profile: "ada@example.com", SessionID: "sess-1", Session: "Morning Run"}
	err := repo.CreateParticipation(ctx, dup)
	require.Error(t, err)
	assert.True(t, models.IsConflict(err), "unique (profile, session_id) must surface as conflict, got %v", err)
}

func TestParticipationRepository_DuplicateOwnerRowIsConflict(t *testing.T) {
	db := newTestDB(t)
	repo := NewParticipationRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.CreateOwner(ctx, &models.ProfileSession{
		Profile: "ada@example.com", SessionID: "sess-1", Session: "Morning Run",
	}))
	err := repo.CreateOwner(ctx, &models.ProfileSession{
		Profile: "bob@example.com", SessionID: "sess-1", Session: "Morning Run",
	})
	require.Error(t, err)
	assert.True(t, models.IsConflict(err), "a session can only ever have one owner row")
}

func TestParticipationRepository_GetOwnerMissingIsNil(t *testing.T) {
	db := newTestDB(t)
	repo := NewParticipationRepository(db)

	owner, err := repo.GetOwner(context.Background(), "no-such-session")
	require.NoError(t, err)
	assert.Nil(t, owner)
}

func TestParticipationRepository_RefreshParticipantNames(t *testing.T) {
	db := newTestDB(t)
	repo := NewParticipationRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.AddParticipantName(ctx, &models.SessionParticipant{
		SessionID: "sess-1", Profile: "ada@example.com", Participant: "Ada Lovelace",
	}))
	require.NoError(t, repo.AddParticipantName(ctx, &models.SessionParticipant{
		SessionID: "sess-2", Profile: "ada@example.com", Participant: "Ada Lovelace",
	}))
	require.NoError(t, repo.AddParticipantName(ctx, &models.SessionParticipant{
		SessionID: "sess-1", Profile: "bob@example.com", Participant: "Bob Builder",
	}))

	require.NoError(t, repo.RefreshParticipantNames(ctx, "ada@example.com", "Ada King"))

	names, err := repo.GetParticipantNames(ctx, "sess-1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Ada King", "Bob Builder"}, names)

	names, err = repo.GetParticipantNames(ctx, "sess-2")
	require.NoError(t, err)
	assert.Equal(t, []string{"Ada King"}, names)
}

func TestParticipationRepository_DeleteBySessionScopesToSession(t *testing.T) {
	db := newTestDB(t)
	repo := NewParticipationRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.CreateParticipation(ctx, &models.ProfileParticipation{
		Profile: "ada@example.com", SessionID: "sess-1", Session: "Morning Run",
	}))
	require.NoError(t, repo.CreateParticipation(ctx, &models.ProfileParticipation{
		Profile: "ada@example.com", SessionID: "sess-2", Session: "Evening Swim",
	}))

	require.NoError(t, repo.DeleteParticipationsBySession(ctx, "sess-1"))

	remaining, err := repo.GetParticipationsByProfile(ctx, "ada@example.com")
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "sess-2", remaining[0].SessionID)
}
