package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"dental-clinic-api/internal/domain/entity"
	"dental-clinic-api/internal/domain/repository"
	"dental-clinic-api/internal/service"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrResetTokenNotFound = errors.New("reset token is invalid or expired")
)

type PasswordResetUsecase interface {
	// Request issues a reset token and emails the link. The response is
	// identical whether or not the email belongs to an account, so the
	// endpoint cannot be used to enumerate registered addresses.
	Request(ctx context.Context, email string) error

	Validate(ctx context.Context, token string) error

	// Consume atomically sets the new password hash and marks the token
	// used. Either both writes land or neither does.
	Consume(ctx context.Context, token, newPassword string) error

	// CleanupExpired removes expired and used tokens, returning the count
	// for the job runner's summary.
	CleanupExpired(ctx context.Context) (int64, error)
}

type passwordResetUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	tokenExpiry time.Duration
	userRepo    repository.UserRepository
	resetRepo   repository.PasswordResetRepository
	mailer      service.Mailer
	now         func() time.Time
}

func NewPasswordResetUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	tokenExpiry time.Duration,
	userRepo repository.UserRepository,
	resetRepo repository.PasswordResetRepository,
	mailer service.Mailer,
) PasswordResetUsecase {
	return &passwordResetUsecase{
		db:          db,
		log:         log,
		tokenExpiry: tokenExpiry,
		userRepo:    userRepo,
		resetRepo:   resetRepo,
		mailer:      mailer,
		now:         time.Now,
	}
}

func generateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func (u *passwordResetUsecase) Request(ctx context.Context, email string) error {
	user, err := u.userRepo.FindByEmail(u.db.WithContext(ctx), email)
	if err != nil {
		u.log.Warnf("Failed to look up user for password reset: %+v", err)
		return err
	}
	if user == nil {
		// Unknown address: do nothing, respond the same as for a known one
		return nil
	}

	token, err := generateResetToken()
	if err != nil {
		u.log.Warnf("Failed to generate reset token: %+v", err)
		return err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	// Only one authoritative token per email: drop the older ones first
	if _, err := u.resetRepo.DeleteByEmail(tx, email); err != nil {
		u.log.Warnf("Failed to delete prior reset tokens: %+v", err)
		return err
	}

	reset := &entity.PasswordReset{
		UserID:    user.ID,
		Email:     email,
		Token:     token,
		ExpiresAt: u.now().Add(u.tokenExpiry),
	}
	if err := u.resetRepo.Create(tx, reset); err != nil {
		u.log.Warnf("Failed to create reset token: %+v", err)
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	// The token stands even when delivery fails; the failure is only logged
	if err := u.mailer.SendResetPasswordEmail(email, token); err != nil {
		u.log.Warnf("Reset email delivery failed for %s: %+v", email, err)
	}

	u.log.Infof("Password reset token issued for %s", email)
	return nil
}

func (u *passwordResetUsecase) findUsable(db *gorm.DB, token string) (*entity.PasswordReset, error) {
	reset, err := u.resetRepo.FindByToken(db, token)
	if err != nil {
		return nil, err
	}
	if reset == nil || !reset.IsUsable(u.now()) {
		return nil, ErrResetTokenNotFound
	}
	return reset, nil
}

func (u *passwordResetUsecase) Validate(ctx context.Context, token string) error {
	_, err := u.findUsable(u.db.WithContext(ctx), token)
	return err
}

func (u *passwordResetUsecase) Consume(ctx context.Context, token, newPassword string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	reset, err := u.findUsable(tx, token)
	if err != nil {
		return err
	}

	rows, err := u.userRepo.UpdatePassword(tx, reset.UserID, string(hashed))
	if err != nil {
		u.log.Warnf("Failed to update password for %s: %+v", reset.UserID, err)
		return err
	}
	if rows == 0 {
		return ErrUserNotFound
	}

	rows, err = u.resetRepo.MarkUsed(tx, reset.ID, u.now())
	if err != nil {
		u.log.Warnf("Failed to mark reset token used: %+v", err)
		return err
	}
	if rows == 0 {
		// Token consumed by a concurrent request between find and update
		return ErrResetTokenNotFound
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	if err := u.mailer.SendPasswordChangedEmail(reset.Email); err != nil {
		u.log.Warnf("Password-changed email delivery failed for %s: %+v", reset.Email, err)
	}

	u.log.Infof("Password reset completed for user %s", reset.UserID)
	return nil
}

func (u *passwordResetUsecase) CleanupExpired(ctx context.Context) (int64, error) {
	deleted, err := u.resetRepo.DeleteExpiredOrUsed(u.db.WithContext(ctx), u.now())
	if err != nil {
		u.log.Warnf("Failed to clean up reset tokens: %+v", err)
		return 0, err
	}
	return deleted, nil
}
