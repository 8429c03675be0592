package usecase

import (
	"context"
	"errors"

	"dental-clinic-api/internal/converter"
	"dental-clinic-api/internal/delivery/dto"
	"dental-clinic-api/internal/domain/entity"
	"dental-clinic-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrTreatmentNameExists = errors.New("a treatment with this name already exists")

type TreatmentUsecase interface {
	Create(ctx context.Context, req *dto.CreateTreatmentRequest) (*dto.TreatmentResponse, error)
	Get(ctx context.Context, id int) (*dto.TreatmentResponse, error)
	List(ctx context.Context) (*dto.TreatmentListResponse, error)
	Update(ctx context.Context, id int, req *dto.UpdateTreatmentRequest) (*dto.TreatmentResponse, error)
	Delete(ctx context.Context, id int) error
}

type treatmentUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	treatmentRepo repository.TreatmentRepository
}

func NewTreatmentUsecase(db *gorm.DB, log *logrus.Logger, treatmentRepo repository.TreatmentRepository) TreatmentUsecase {
	return &treatmentUsecase{
		db:            db,
		log:           log,
		treatmentRepo: treatmentRepo,
	}
}

func (u *treatmentUsecase) Create(ctx context.Context, req *dto.CreateTreatmentRequest) (*dto.TreatmentResponse, error) {
	treatment := &entity.Treatment{
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
	}

	if err := u.treatmentRepo.Create(u.db.WithContext(ctx), treatment); err != nil {
		if isDuplicateKeyError(err, "name") {
			return nil, ErrTreatmentNameExists
		}
		u.log.Warnf("Failed to create treatment: %+v", err)
		return nil, err
	}

	return converter.TreatmentToResponse(treatment), nil
}

func (u *treatmentUsecase) Get(ctx context.Context, id int) (*dto.TreatmentResponse, error) {
	treatment, err := u.treatmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	if treatment == nil {
		return nil, ErrTreatmentNotFound
	}
	return converter.TreatmentToResponse(treatment), nil
}

func (u *treatmentUsecase) List(ctx context.Context) (*dto.TreatmentListResponse, error) {
	treatments, err := u.treatmentRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list treatments: %+v", err)
		return nil, err
	}

	return &dto.TreatmentListResponse{
		Treatments: converter.TreatmentsToResponses(treatments),
		Total:      len(treatments),
	}, nil
}

func (u *treatmentUsecase) Update(ctx context.Context, id int, req *dto.UpdateTreatmentRequest) (*dto.TreatmentResponse, error) {
	treatment, err := u.treatmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	if treatment == nil {
		return nil, ErrTreatmentNotFound
	}

	treatment.Name = req.Name
	treatment.Description = req.Description
	treatment.Price = req.Price
	treatment.DurationMinutes = req.DurationMinutes

	if err := u.treatmentRepo.Update(u.db.WithContext(ctx), treatment); err != nil {
		if isDuplicateKeyError(err, "name") {
			return nil, ErrTreatmentNameExists
		}
		u.log.Warnf("Failed to update treatment %d: %+v", id, err)
		return nil, err
	}

	return converter.TreatmentToResponse(treatment), nil
}

func (u *treatmentUsecase) Delete(ctx context.Context, id int) error {
	rows, err := u.treatmentRepo.Delete(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to delete treatment %d: %+v", id, err)
		return err
	}
	if rows == 0 {
		return ErrTreatmentNotFound
	}
	return nil
}
