package usecase

import (
	"context"
	"testing"
	"time"

	"dental-clinic-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRequestIsSilentForUnknownEmail(t *testing.T) {
	db, mock := newTestDB(t)
	users := &fakeUserRepo{}
	resets := &fakeResetRepo{}
	mailer := &fakeMailer{}

	uc := NewPasswordResetUsecase(db, testLogger(), time.Hour, users, resets, mailer)

	err := uc.Request(context.Background(), "nobody@example.com")
	require.NoError(t, err, "unknown addresses must not be distinguishable")

	assert.Empty(t, resets.created)
	assert.Empty(t, mailer.resetTokens)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestIssuesSingleToken(t *testing.T) {
	db, mock := newTestDB(t)
	userID := uuid.New()
	users := &fakeUserRepo{user: &entity.User{ID: userID, Email: "pat@example.com"}}
	resets := &fakeResetRepo{}
	mailer := &fakeMailer{}

	uc := NewPasswordResetUsecase(db, testLogger(), time.Hour, users, resets, mailer).(*passwordResetUsecase)
	now := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return now }

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := uc.Request(context.Background(), "pat@example.com")
	require.NoError(t, err)

	// Older tokens for the address are dropped before the new one lands
	assert.Equal(t, []string{"pat@example.com"}, resets.deletedEmails)

	require.Len(t, resets.created, 1)
	created := resets.created[0]
	assert.Equal(t, userID, created.UserID)
	assert.Len(t, created.Token, 64, "token is 32 random bytes hex-encoded")
	assert.Equal(t, now.Add(time.Hour), created.ExpiresAt)

	require.Len(t, mailer.resetTokens, 1)
	assert.Equal(t, created.Token, mailer.resetTokens[0])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestValidateRejectsUnknownToken(t *testing.T) {
	db, _ := newTestDB(t)
	uc := NewPasswordResetUsecase(db, testLogger(), time.Hour, &fakeUserRepo{}, &fakeResetRepo{}, &fakeMailer{})

	err := uc.Validate(context.Background(), "no-such-token")
	assert.ErrorIs(t, err, ErrResetTokenNotFound)
}

func TestValidateRejectsExpiredAndUsedTokens(t *testing.T) {
	db, _ := newTestDB(t)
	now := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	used := now.Add(-time.Minute)

	resets := &fakeResetRepo{}
	tokens := map[string]*entity.PasswordReset{
		"expired": {ID: 1, Token: "expired", ExpiresAt: now.Add(-time.Second)},
		"used":    {ID: 2, Token: "used", ExpiresAt: now.Add(time.Hour), UsedAt: &used},
		"live":    {ID: 3, Token: "live", ExpiresAt: now.Add(time.Hour)},
	}
	resets.findByTokenFn = func(token string) (*entity.PasswordReset, error) {
		return tokens[token], nil
	}

	uc := NewPasswordResetUsecase(db, testLogger(), time.Hour, &fakeUserRepo{}, resets, &fakeMailer{}).(*passwordResetUsecase)
	uc.now = func() time.Time { return now }

	assert.ErrorIs(t, uc.Validate(context.Background(), "expired"), ErrResetTokenNotFound)
	assert.ErrorIs(t, uc.Validate(context.Background(), "used"), ErrResetTokenNotFound)
	assert.NoError(t, uc.Validate(context.Background(), "live"))
}

func TestConsumeSetsPasswordAndBurnsToken(t *testing.T) {
	db, mock := newTestDB(t)
	userID := uuid.New()
	now := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)

	users := &fakeUserRepo{}
	resets := &fakeResetRepo{}
	resets.findByTokenFn = func(token string) (*entity.PasswordReset, error) {
		return &entity.PasswordReset{
			ID: 5, UserID: userID, Email: "pat@example.com",
			Token: token, ExpiresAt: now.Add(time.Hour),
		}, nil
	}
	mailer := &fakeMailer{}

	uc := NewPasswordResetUsecase(db, testLogger(), time.Hour, users, resets, mailer).(*passwordResetUsecase)
	uc.now = func() time.Time { return now }

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := uc.Consume(context.Background(), "sometoken", "new-secret-1")
	require.NoError(t, err)

	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(users.lastPasswordHash), []byte("new-secret-1")))
	assert.Equal(t, []int64{5}, resets.usedIDs)
	assert.Equal(t, []string{"pat@example.com"}, mailer.changedEmails)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConsumeRollsBackWhenTokenIsGone(t *testing.T) {
	db, mock := newTestDB(t)

	uc := NewPasswordResetUsecase(db, testLogger(), time.Hour, &fakeUserRepo{}, &fakeResetRepo{}, &fakeMailer{})

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := uc.Consume(context.Background(), "gone", "new-secret-1")
	assert.ErrorIs(t, err, ErrResetTokenNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConsumeDetectsConcurrentUse(t *testing.T) {
	db, mock := newTestDB(t)
	userID := uuid.New()
	now := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)

	resets := &fakeResetRepo{}
	resets.findByTokenFn = func(token string) (*entity.PasswordReset, error) {
		return &entity.PasswordReset{ID: 5, UserID: userID, Token: token, ExpiresAt: now.Add(time.Hour)}, nil
	}
	// Another request burned the token between find and update
	resets.markUsedFn = func(id int64, usedAt time.Time) (int64, error) {
		return 0, nil
	}

	uc := NewPasswordResetUsecase(db, testLogger(), time.Hour, &fakeUserRepo{}, resets, &fakeMailer{}).(*passwordResetUsecase)
	uc.now = func() time.Time { return now }

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := uc.Consume(context.Background(), "sometoken", "new-secret-1")
	assert.ErrorIs(t, err, ErrResetTokenNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
