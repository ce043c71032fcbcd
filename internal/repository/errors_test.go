package repository

import (
	"context"
	"errors"
	"testing"

	"fitnessfinder/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestWrapWriteError(t *testing.T) {
	t.Parallel()

	assert.NoError(t, wrapWriteError(nil))

	err := wrapWriteError(&pgconn.PgError{Code: pgUniqueViolation})
	assert.True(t, models.IsConflict(err))

	err = wrapWriteError(gorm.ErrDuplicatedKey)
	assert.True(t, models.IsConflict(err))

	err = wrapWriteError(errors.New("connection reset"))
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "INTERNAL_ERROR", appErr.Code)
}

// newMockDB opens a GORM connection backed by sqlmock, for driving the
// Postgres error paths that sqlite cannot produce.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestCreateParticipation_PostgresUniqueViolationIsConflict(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewParticipationRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "profile_participations"`).
		WillReturnError(&pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "idx_participation_pair"})
	mock.ExpectRollback()

	err := repo.CreateParticipation(context.Background(), &models.ProfileParticipation{
		Profile: "ada@example.com", SessionID: "sess-1", Session: "Morning Run",
	})
	require.Error(t, err)
	assert.True(t, models.IsConflict(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
