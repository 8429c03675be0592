package usecase

import (
	"context"
	"errors"

	"dental-clinic-api/internal/converter"
	"dental-clinic-api/internal/delivery/dto"
	"dental-clinic-api/internal/domain/entity"
	"dental-clinic-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDentistNotFound  = errors.New("dentist not found")
	ErrScheduleNotFound = errors.New("schedule entry not found")
	ErrInvalidWeekday   = errors.New("weekday must be between 0 (Sunday) and 6 (Saturday)")
)

type DentistUsecase interface {
	ListDentists(ctx context.Context) (*dto.DentistListResponse, error)
	UpsertSchedule(ctx context.Context, req *dto.UpsertDentistScheduleRequest) (*dto.DentistScheduleResponse, error)
	GetSchedules(ctx context.Context, dentistID uuid.UUID) (*dto.DentistScheduleListResponse, error)
	DeleteSchedule(ctx context.Context, id int) error
}

type dentistUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	dentistProfileRepo repository.DentistProfileRepository
	scheduleRepo       repository.DentistScheduleRepository
}

func NewDentistUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	dentistProfileRepo repository.DentistProfileRepository,
	scheduleRepo repository.DentistScheduleRepository,
) DentistUsecase {
	return &dentistUsecase{
		db:                 db,
		log:                log,
		dentistProfileRepo: dentistProfileRepo,
		scheduleRepo:       scheduleRepo,
	}
}

func (u *dentistUsecase) ListDentists(ctx context.Context) (*dto.DentistListResponse, error) {
	profiles, err := u.dentistProfileRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to list dentists: %+v", err)
		return nil, err
	}

	return &dto.DentistListResponse{
		Dentists: converter.DentistsToResponses(profiles),
		Total:    len(profiles),
	}, nil
}

func (u *dentistUsecase) UpsertSchedule(ctx context.Context, req *dto.UpsertDentistScheduleRequest) (*dto.DentistScheduleResponse, error) {
	if req.Weekday < 0 || req.Weekday > 6 {
		return nil, ErrInvalidWeekday
	}

	dentist, err := u.dentistProfileRepo.FindByID(ctx, u.db, req.DentistID)
	if err != nil {
		return nil, err
	}
	if dentist == nil {
		return nil, ErrDentistNotFound
	}

	startTime, err := normalizeTime(req.StartTime)
	if err != nil {
		return nil, ErrInvalidSlotTime
	}
	endTime, err := normalizeTime(req.EndTime)
	if err != nil {
		return nil, ErrInvalidSlotTime
	}

	schedule := &entity.DentistSchedule{
		DentistID: req.DentistID,
		Weekday:   req.Weekday,
		StartTime: startTime,
		EndTime:   endTime,
		IsWorking: req.IsWorking,
	}

	if err := u.scheduleRepo.Upsert(u.db.WithContext(ctx), schedule); err != nil {
		u.log.Warnf("Failed to upsert dentist schedule: %+v", err)
		return nil, err
	}

	return converter.DentistScheduleToResponse(schedule), nil
}

func (u *dentistUsecase) GetSchedules(ctx context.Context, dentistID uuid.UUID) (*dto.DentistScheduleListResponse, error) {
	schedules, err := u.scheduleRepo.FindByDentistID(u.db.WithContext(ctx), dentistID)
	if err != nil {
		u.log.Warnf("Failed to list schedules for dentist %s: %+v", dentistID, err)
		return nil, err
	}

	responses := make([]dto.DentistScheduleResponse, len(schedules))
	for i, schedule := range schedules {
		responses[i] = *converter.DentistScheduleToResponse(&schedule)
	}

	return &dto.DentistScheduleListResponse{
		Schedules: responses,
		Total:     len(responses),
	}, nil
}

func (u *dentistUsecase) DeleteSchedule(ctx context.Context, id int) error {
	rows, err := u.scheduleRepo.Delete(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to delete schedule %d: %+v", id, err)
		return err
	}
	if rows == 0 {
		return ErrScheduleNotFound
	}
	return nil
}
