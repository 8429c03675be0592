package usecase

import (
	"context"
	"errors"
	"time"

	"dental-clinic-api/config"
	"dental-clinic-api/internal/converter"
	"dental-clinic-api/internal/delivery/dto"
	"dental-clinic-api/internal/domain/entity"
	"dental-clinic-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrSlotNotFound     = errors.New("slot not found")
	ErrSlotExists       = errors.New("a slot already exists for this dentist, date and time")
	ErrSlotBooked       = errors.New("slot has an active appointment and cannot be deleted")
	ErrInvalidDateRange = errors.New("start date must not be after end date")
	ErrInvalidSlotDate  = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidSlotTime  = errors.New("invalid time format, use HH:MM")
)

type SlotUsecase interface {
	Generate(ctx context.Context, req *dto.GenerateSlotsRequest) (*dto.GenerateSlotsResponse, error)
	Create(ctx context.Context, req *dto.CreateSlotRequest) (*dto.SlotResponse, error)
	Delete(ctx context.Context, id int) error
	SetAvailability(ctx context.Context, id int, available bool) error
	DentistSlots(ctx context.Context, dentistID uuid.UUID, date time.Time) (*dto.SlotListResponse, error)

	// PurgePast removes slots dated before today. Past slots carry no
	// booking state, so this is always safe. Invoked by the job runner.
	PurgePast(ctx context.Context) (int64, error)
}

type slotUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	clinic          config.ClinicConfig
	location        *time.Location
	slotRepo        repository.SlotRepository
	scheduleRepo    repository.DentistScheduleRepository
	appointmentRepo repository.AppointmentRepository
	now             func() time.Time
}

func NewSlotUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	clinic config.ClinicConfig,
	slotRepo repository.SlotRepository,
	scheduleRepo repository.DentistScheduleRepository,
	appointmentRepo repository.AppointmentRepository,
) SlotUsecase {
	loc, err := time.LoadLocation(clinic.Timezone)
	if err != nil {
		log.Warnf("Unknown clinic timezone %q, falling back to UTC", clinic.Timezone)
		loc = time.UTC
	}
	return &slotUsecase{
		db:              db,
		log:             log,
		clinic:          clinic,
		location:        loc,
		slotRepo:        slotRepo,
		scheduleRepo:    scheduleRepo,
		appointmentRepo: appointmentRepo,
		now:             time.Now,
	}
}

// Generate materializes bookable slots for every working dentist across a
// date range. Re-invocation over the same range is idempotent: existing
// (dentist, date, start_time) rows are skipped at insert time.
func (u *slotUsecase) Generate(ctx context.Context, req *dto.GenerateSlotsRequest) (*dto.GenerateSlotsResponse, error) {
	start, err := time.ParseInLocation("2006-01-02", req.StartDate, u.location)
	if err != nil {
		return nil, ErrInvalidSlotDate
	}
	end, err := time.ParseInLocation("2006-01-02", req.EndDate, u.location)
	if err != nil {
		return nil, ErrInvalidSlotDate
	}
	if start.After(end) {
		return nil, ErrInvalidDateRange
	}

	var slots []entity.Slot
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if day.Weekday() == time.Sunday {
			continue
		}

		schedules, err := u.scheduleRepo.FindWorkingByWeekday(u.db.WithContext(ctx), int(day.Weekday()))
		if err != nil {
			u.log.Warnf("Failed to load schedules for weekday %d: %+v", day.Weekday(), err)
			return nil, err
		}

		for _, schedule := range schedules {
			daySlots, err := buildDaySlots(schedule, day, u.clinic.SlotMinutes)
			if err != nil {
				u.log.Warnf("Skipping malformed schedule %d: %+v", schedule.ID, err)
				continue
			}
			slots = append(slots, daySlots...)
		}
	}

	created, err := u.slotRepo.CreateSkipExisting(u.db.WithContext(ctx), slots)
	if err != nil {
		u.log.Warnf("Failed to insert generated slots: %+v", err)
		return nil, err
	}

	u.log.Infof("Slot generation complete: range=%s..%s, candidates=%d, created=%d",
		req.StartDate, req.EndDate, len(slots), created)

	return &dto.GenerateSlotsResponse{Created: created}, nil
}

// buildDaySlots cuts one dentist-day working window into fixed-size slots
func buildDaySlots(schedule entity.DentistSchedule, day time.Time, slotMinutes int) ([]entity.Slot, error) {
	start, err := parseClockTime(schedule.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := parseClockTime(schedule.EndTime)
	if err != nil {
		return nil, err
	}

	step := time.Duration(slotMinutes) * time.Minute
	available := true

	var slots []entity.Slot
	for t := start; !t.Add(step).After(end); t = t.Add(step) {
		slots = append(slots, entity.Slot{
			DentistID:   schedule.DentistID,
			SlotDate:    day,
			StartTime:   t.Format("15:04:05"),
			EndTime:     t.Add(step).Format("15:04:05"),
			IsAvailable: &available,
		})
	}
	return slots, nil
}

func parseClockTime(s string) (time.Time, error) {
	if t, err := time.Parse("15:04:05", s); err == nil {
		return t, nil
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return time.Time{}, ErrInvalidSlotTime
	}
	return t, nil
}

func (u *slotUsecase) Create(ctx context.Context, req *dto.CreateSlotRequest) (*dto.SlotResponse, error) {
	date, err := time.ParseInLocation("2006-01-02", req.Date, u.location)
	if err != nil {
		return nil, ErrInvalidSlotDate
	}
	startTime, err := normalizeTime(req.StartTime)
	if err != nil {
		return nil, ErrInvalidSlotTime
	}
	endTime, err := normalizeTime(req.EndTime)
	if err != nil {
		return nil, ErrInvalidSlotTime
	}

	existing, err := u.slotRepo.FindByKey(u.db.WithContext(ctx), req.DentistID, date, startTime)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrSlotExists
	}

	available := true
	slot := &entity.Slot{
		DentistID:   req.DentistID,
		SlotDate:    date,
		StartTime:   startTime,
		EndTime:     endTime,
		IsAvailable: &available,
		TreatmentID: req.TreatmentID,
	}

	if err := u.slotRepo.Create(u.db.WithContext(ctx), slot); err != nil {
		u.log.Warnf("Failed to create slot: %+v", err)
		return nil, err
	}

	return converter.SlotToResponse(slot, entity.SlotStatusAvailable), nil
}

// Delete refuses to remove a slot whose time is held by a pending or
// confirmed appointment; availability toggling is the way to retire those.
func (u *slotUsecase) Delete(ctx context.Context, id int) error {
	slot, err := u.slotRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		return err
	}
	if slot == nil {
		return ErrSlotNotFound
	}

	occupant, err := u.appointmentRepo.FindActiveBySlot(u.db.WithContext(ctx), slot.DentistID, slot.SlotDate, slot.StartTime)
	if err != nil {
		return err
	}
	if occupant != nil &&
		(occupant.Status == entity.StatusPending || occupant.Status == entity.StatusConfirm) {
		return ErrSlotBooked
	}

	rows, err := u.slotRepo.Delete(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to delete slot %d: %+v", id, err)
		return err
	}
	if rows == 0 {
		return ErrSlotNotFound
	}
	return nil
}

func (u *slotUsecase) SetAvailability(ctx context.Context, id int, available bool) error {
	rows, err := u.slotRepo.SetAvailability(u.db.WithContext(ctx), id, available)
	if err != nil {
		u.log.Warnf("Failed to set slot %d availability: %+v", id, err)
		return err
	}
	if rows == 0 {
		return ErrSlotNotFound
	}
	return nil
}

// DentistSlots returns the dentist's slots for one day annotated with the
// derived status. A slot is booked only when an appointment with status
// pending or confirm matches its dentist, date and start_time exactly.
func (u *slotUsecase) DentistSlots(ctx context.Context, dentistID uuid.UUID, date time.Time) (*dto.SlotListResponse, error) {
	slots, err := u.slotRepo.FindByDentistAndDate(u.db.WithContext(ctx), dentistID, date)
	if err != nil {
		u.log.Warnf("Failed to list slots for dentist %s: %+v", dentistID, err)
		return nil, err
	}

	appointments, err := u.appointmentRepo.FindByDentistAndDate(u.db.WithContext(ctx), dentistID, date)
	if err != nil {
		return nil, err
	}

	booked := make(map[string]bool, len(appointments))
	for _, appointment := range appointments {
		if appointment.Status == entity.StatusPending || appointment.Status == entity.StatusConfirm {
			booked[appointment.StartTime] = true
		}
	}

	responses := make([]dto.SlotResponse, len(slots))
	for i, slot := range slots {
		responses[i] = *converter.SlotToResponse(&slot, deriveSlotStatus(&slot, booked))
	}

	return &dto.SlotListResponse{
		Slots: responses,
		Total: len(responses),
	}, nil
}

func deriveSlotStatus(slot *entity.Slot, booked map[string]bool) entity.SlotStatus {
	switch {
	case booked[slot.StartTime]:
		return entity.SlotStatusBooked
	case slot.IsAvailable != nil && *slot.IsAvailable:
		return entity.SlotStatusAvailable
	default:
		return entity.SlotStatusUnavailable
	}
}

func (u *slotUsecase) PurgePast(ctx context.Context) (int64, error) {
	today := u.now().In(u.location)
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, u.location)

	deleted, err := u.slotRepo.DeleteBefore(u.db.WithContext(ctx), today)
	if err != nil {
		u.log.Warnf("Failed to purge past slots: %+v", err)
		return 0, err
	}
	return deleted, nil
}
