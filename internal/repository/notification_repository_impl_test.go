package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteReadOlderThanTouchesOnlyReadRows(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewNotificationRepository()
	cutoff := time.Date(2026, 2, 7, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(`DELETE FROM "notifications"`).
		WithArgs(true, cutoff).
		WillReturnResult(sqlmock.NewResult(0, 17))

	deleted, err := repo.DeleteReadOlderThan(db, cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(17), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkReadIsIdempotentOnMissingRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewNotificationRepository()

	mock.ExpectExec(`UPDATE "notifications" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	rows, err := repo.MarkRead(db, 42)
	require.NoError(t, err)
	assert.Zero(t, rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
