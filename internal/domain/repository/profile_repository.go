package repository

import (
	"context"

	"dental-clinic-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DentistProfileRepository interface {
	Create(ctx context.Context, db *gorm.DB, profile *entity.DentistProfile) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.DentistProfile, error)
	FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.DentistProfile, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]entity.DentistProfile, error)
}

type PatientProfileRepository interface {
	Create(ctx context.Context, db *gorm.DB, profile *entity.PatientProfile) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.PatientProfile, error)
	FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.PatientProfile, error)
}
