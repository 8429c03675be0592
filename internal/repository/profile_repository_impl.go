package repository

import (
	"context"
	"errors"

	"dental-clinic-api/internal/domain/entity"
	domainRepo "dental-clinic-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Dentist Profile Repository

type dentistProfileRepository struct{}

func NewDentistProfileRepository() domainRepo.DentistProfileRepository {
	return &dentistProfileRepository{}
}

func (r *dentistProfileRepository) Create(ctx context.Context, db *gorm.DB, profile *entity.DentistProfile) error {
	return db.WithContext(ctx).Create(profile).Error
}

func (r *dentistProfileRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.DentistProfile, error) {
	var profile entity.DentistProfile
	err := db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *dentistProfileRepository) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.DentistProfile, error) {
	var profile entity.DentistProfile
	err := db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *dentistProfileRepository) FindAll(ctx context.Context, db *gorm.DB) ([]entity.DentistProfile, error) {
	var profiles []entity.DentistProfile
	err := db.WithContext(ctx).
		Preload("User").
		Joins("JOIN users ON users.id = dentist_profiles.user_id").
		Where("users.is_active = ?", true).
		Order("users.full_name").
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

// Patient Profile Repository

type patientProfileRepository struct{}

func NewPatientProfileRepository() domainRepo.PatientProfileRepository {
	return &patientProfileRepository{}
}

func (r *patientProfileRepository) Create(ctx context.Context, db *gorm.DB, profile *entity.PatientProfile) error {
	return db.WithContext(ctx).Create(profile).Error
}

func (r *patientProfileRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.PatientProfile, error) {
	var profile entity.PatientProfile
	err := db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *patientProfileRepository) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.PatientProfile, error) {
	var profile entity.PatientProfile
	err := db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}
