package sqlite_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/startuplab/landing-api/internal/metrics"
	"github.com/startuplab/landing-api/internal/models"
	sqliterepo "github.com/startuplab/landing-api/internal/repository/sqlite"
	"github.com/startuplab/landing-api/internal/storage"
)

const opTimeout = 5 * time.Second

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := storage.OpenSqlite("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})

	require.NoError(t, storage.MigrateSqlite(db, "../../../migrations"))
	return db
}

func TestSubscriberCreate(t *testing.T) {
	db := newTestDB(t)
	repo := sqliterepo.NewSubscriberRepository(db, zerolog.Nop(), metrics.New("test_sub_create"), opTimeout)

	sub, err := repo.Create(context.Background(), "test@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, sub.ID)
	assert.Equal(t, "test@example.com", sub.Email)
	assert.False(t, sub.CreatedAt.IsZero())

	var count int
	require.NoError(t, db.QueryRow(
		`SELECT COUNT(*) FROM subscribers WHERE email = ?`, "test@example.com",
	).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestSubscriberCreateDuplicate(t *testing.T) {
	db := newTestDB(t)
	repo := sqliterepo.NewSubscriberRepository(db, zerolog.Nop(), metrics.New("test_sub_dup"), opTimeout)

	_, err := repo.Create(context.Background(), "test@example.com")
	require.NoError(t, err)

	_, err = repo.Create(context.Background(), "test@example.com")
	assert.ErrorIs(t, err, models.ErrDuplicateEmail)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM subscribers`).Scan(&count))
	assert.Equal(t, 1, count, "the constraint keeps exactly one record")
}

func TestSubscriberCreateDistinct(t *testing.T) {
	db := newTestDB(t)
	repo := sqliterepo.NewSubscriberRepository(db, zerolog.Nop(), metrics.New("test_sub_distinct"), opTimeout)

	_, err := repo.Create(context.Background(), "one@example.com")
	require.NoError(t, err)
	_, err = repo.Create(context.Background(), "two@example.com")
	require.NoError(t, err)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM subscribers`).Scan(&count))
	assert.Equal(t, 2, count)
}

func TestContactCreateAllowsDuplicates(t *testing.T) {
	db := newTestDB(t)
	repo := sqliterepo.NewContactRepository(db, zerolog.Nop(), metrics.New("test_contact"), opTimeout)

	msg := models.ContactMessage{Name: "Ann", Email: "ann@x.com", Message: "hi"}
	first, err := repo.Create(context.Background(), msg)
	require.NoError(t, err)
	second, err := repo.Create(context.Background(), msg)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM contact_messages`).Scan(&count))
	assert.Equal(t, 2, count)
}

func TestSubscriberCreateTechnicalError(t *testing.T) {
	// A driver failure that is not a constraint violation must not look
	// like a duplicate.
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close() //nolint:errcheck

	mock.ExpectExec("INSERT INTO subscribers").
		WillReturnError(errors.New("database is locked"))

	repo := sqliterepo.NewSubscriberRepository(db, zerolog.Nop(), metrics.New("test_sub_err"), opTimeout)

	_, err = repo.Create(context.Background(), "test@example.com")
	require.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrDuplicateEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}
