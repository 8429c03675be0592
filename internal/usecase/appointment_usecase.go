package usecase

import (
	"context"
	"errors"
	"time"

	"dental-clinic-api/config"
	"dental-clinic-api/internal/converter"
	"dental-clinic-api/internal/delivery/dto"
	"dental-clinic-api/internal/delivery/http/middleware"
	"dental-clinic-api/internal/domain/entity"
	"dental-clinic-api/internal/domain/repository"
	"dental-clinic-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound        = errors.New("appointment not found")
	ErrAppointmentNotOwned        = errors.New("appointment does not belong to you")
	ErrInvalidTransition          = errors.New("appointment status does not allow this transition")
	ErrBookingTooSoon             = errors.New("appointments must be booked at least 24 hours in advance")
	ErrClinicClosedSunday         = errors.New("the clinic is closed on Sundays")
	ErrBookingRateLimited         = errors.New("too many booking attempts, please wait a few minutes")
	ErrSlotTaken                  = errors.New("this slot is already booked")
	ErrSlotUnavailable            = errors.New("this slot is not open for booking")
	ErrSlotTreatmentMismatch      = errors.New("this slot is reserved for a different treatment")
	ErrTreatmentNotFound          = errors.New("treatment not found")
	ErrTreatmentHistoryMissing    = errors.New("appointment has no treatment history record")
	ErrTreatmentHistoryExists     = errors.New("treatment history already recorded for this appointment")
	ErrPatientProfileNotFound     = errors.New("patient profile not found")
	ErrDentistProfileNotFound     = errors.New("dentist profile not found")
	ErrInvalidAppointmentDate     = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidAppointmentTime     = errors.New("invalid time format, use HH:MM")
	ErrInvalidNextVisitDate       = errors.New("invalid next visit date format, use YYYY-MM-DD")
	ErrCancelNotAllowedFromStatus = errors.New("appointment can only be cancelled while pending or confirmed")
)

// SweepSummary reports one auto-cancel run for observability
type SweepSummary struct {
	Processed int
	Failed    int
}

type AppointmentUsecase interface {
	Book(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	Confirm(ctx context.Context, id uuid.UUID) error
	CheckIn(ctx context.Context, id uuid.UUID) error
	RecordTreatment(ctx context.Context, id uuid.UUID, req *dto.RecordTreatmentRequest) (*dto.TreatmentHistoryResponse, error)
	Complete(ctx context.Context, id uuid.UUID) error
	Cancel(ctx context.Context, id uuid.UUID, req *dto.CancelAppointmentRequest) error
	GetMyAppointments(ctx context.Context) (*dto.AppointmentListResponse, error)
	GetDentistDay(ctx context.Context, date time.Time) (*dto.AppointmentListResponse, error)
	ListAll(ctx context.Context, limit, offset int) (*dto.AppointmentListResponse, error)

	// AutoCancelSweep applies the no-show safeguard: every appointment in
	// waiting_for_treatment whose scheduled time is more than two hours in
	// the past and which has no treatment-history row is moved to
	// auto_cancelled, with a notification to the patient. Invoked by the
	// scheduled job runner.
	AutoCancelSweep(ctx context.Context) (SweepSummary, error)
}

type appointmentUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	clinic             config.ClinicConfig
	location           *time.Location
	appointmentRepo    repository.AppointmentRepository
	slotRepo           repository.SlotRepository
	treatmentRepo      repository.TreatmentRepository
	historyRepo        repository.TreatmentHistoryRepository
	patientProfileRepo repository.PatientProfileRepository
	dentistProfileRepo repository.DentistProfileRepository
	notifier           NotificationUsecase
	limiter            service.RateLimiter
	now                func() time.Time
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	clinic config.ClinicConfig,
	appointmentRepo repository.AppointmentRepository,
	slotRepo repository.SlotRepository,
	treatmentRepo repository.TreatmentRepository,
	historyRepo repository.TreatmentHistoryRepository,
	patientProfileRepo repository.PatientProfileRepository,
	dentistProfileRepo repository.DentistProfileRepository,
	notifier NotificationUsecase,
	limiter service.RateLimiter,
) AppointmentUsecase {
	loc, err := time.LoadLocation(clinic.Timezone)
	if err != nil {
		log.Warnf("Unknown clinic timezone %q, falling back to UTC", clinic.Timezone)
		loc = time.UTC
	}
	return &appointmentUsecase{
		db:                 db,
		log:                log,
		clinic:             clinic,
		location:           loc,
		appointmentRepo:    appointmentRepo,
		slotRepo:           slotRepo,
		treatmentRepo:      treatmentRepo,
		historyRepo:        historyRepo,
		patientProfileRepo: patientProfileRepo,
		dentistProfileRepo: dentistProfileRepo,
		notifier:           notifier,
		limiter:            limiter,
		now:                time.Now,
	}
}

// normalizeTime canonicalizes HH:MM or HH:MM:SS into HH:MM:SS so that the
// exact-match joins between slots and appointments always compare equal
// representations.
func normalizeTime(s string) (string, error) {
	if t, err := time.Parse("15:04:05", s); err == nil {
		return t.Format("15:04:05"), nil
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return "", ErrInvalidAppointmentTime
	}
	return t.Format("15:04:05"), nil
}

func (u *appointmentUsecase) Book(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	patient, err := u.patientProfileRepo.FindByUserID(ctx, u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to find patient profile for %s: %+v", userID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientProfileNotFound
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, u.location)
	if err != nil {
		return nil, ErrInvalidAppointmentDate
	}
	startTime, err := normalizeTime(req.StartTime)
	if err != nil {
		return nil, err
	}

	// Booking rules checked at creation time: Sunday closure and the
	// advance-booking lead time.
	if date.Weekday() == time.Sunday {
		return nil, ErrClinicClosedSunday
	}
	scheduledAt := combineDateTime(date, startTime, u.location)
	if scheduledAt.Sub(u.now()) < u.clinic.MinLeadTime {
		return nil, ErrBookingTooSoon
	}

	allowed, err := u.limiter.Allow(ctx, userID.String())
	if err != nil {
		// A broken counter must not block bookings
		u.log.Warnf("Booking rate limiter unavailable: %+v", err)
	} else if !allowed {
		return nil, ErrBookingRateLimited
	}

	treatment, err := u.treatmentRepo.FindByID(u.db.WithContext(ctx), req.TreatmentID)
	if err != nil {
		return nil, err
	}
	if treatment == nil {
		return nil, ErrTreatmentNotFound
	}

	slot, err := u.slotRepo.FindByKey(u.db.WithContext(ctx), req.DentistID, date, startTime)
	if err != nil {
		u.log.Warnf("Failed to find slot: %+v", err)
		return nil, err
	}
	if slot == nil {
		return nil, ErrSlotUnavailable
	}
	if slot.IsAvailable == nil || !*slot.IsAvailable {
		return nil, ErrSlotUnavailable
	}
	if slot.TreatmentID != nil && *slot.TreatmentID != req.TreatmentID {
		return nil, ErrSlotTreatmentMismatch
	}

	// One active appointment per (dentist, date, start_time). The database
	// remains the serialization point for two simultaneous attempts.
	existing, err := u.appointmentRepo.FindActiveBySlot(u.db.WithContext(ctx), req.DentistID, date, startTime)
	if err != nil {
		u.log.Warnf("Failed to check slot occupancy: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrSlotTaken
	}

	appointment := &entity.Appointment{
		PatientID:   patient.ID,
		DentistID:   req.DentistID,
		TreatmentID: req.TreatmentID,
		Date:        date,
		StartTime:   startTime,
		Status:      entity.StatusPending,
	}

	if err := u.appointmentRepo.Create(u.db.WithContext(ctx), appointment); err != nil {
		// A concurrent booking that slipped past the occupancy check lands
		// on the partial unique index instead
		if isDuplicateKeyError(err, "uniq_active_appointment_slot") {
			return nil, ErrSlotTaken
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	u.notifier.NotifyNewBooking(ctx, appointment)

	u.log.Infof("Appointment created: id=%s, dentist=%s, date=%s %s",
		appointment.ID, req.DentistID, req.Date, startTime)

	full, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointment.ID)
	if err != nil || full == nil {
		u.log.Warnf("Failed to reload appointment %s: %+v", appointment.ID, err)
		return converter.AppointmentToResponse(appointment), nil
	}
	return converter.AppointmentToResponse(full), nil
}

// transition performs one guarded status move. The entity-level transition
// table rejects illegal moves before touching the database; the guarded
// UPDATE catches races where the row changed underneath us.
func (u *appointmentUsecase) transition(ctx context.Context, id uuid.UUID, to entity.AppointmentStatus) (*entity.Appointment, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if !appointment.Status.CanTransitionTo(to) {
		return nil, ErrInvalidTransition
	}

	rows, err := u.appointmentRepo.UpdateStatus(u.db.WithContext(ctx), id, appointment.Status, to)
	if err != nil {
		u.log.Warnf("Failed to update appointment %s to %s: %+v", id, to, err)
		return nil, err
	}
	if rows == 0 {
		return nil, ErrInvalidTransition
	}

	appointment.Status = to
	return appointment, nil
}

func (u *appointmentUsecase) Confirm(ctx context.Context, id uuid.UUID) error {
	appointment, err := u.transition(ctx, id, entity.StatusConfirm)
	if err != nil {
		return err
	}
	u.notifier.NotifyConfirmed(ctx, appointment)
	return nil
}

func (u *appointmentUsecase) CheckIn(ctx context.Context, id uuid.UUID) error {
	_, err := u.transition(ctx, id, entity.StatusWaitingForTreatment)
	return err
}

func (u *appointmentUsecase) RecordTreatment(ctx context.Context, id uuid.UUID, req *dto.RecordTreatmentRequest) (*dto.TreatmentHistoryResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	dentist, err := u.dentistProfileRepo.FindByUserID(ctx, u.db, userID)
	if err != nil {
		return nil, err
	}
	if dentist == nil {
		return nil, ErrDentistProfileNotFound
	}

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	exists, err := u.historyRepo.ExistsForAppointment(u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrTreatmentHistoryExists
	}

	var nextVisit *time.Time
	if req.NextVisitDate != "" {
		parsed, err := time.ParseInLocation("2006-01-02", req.NextVisitDate, u.location)
		if err != nil {
			return nil, ErrInvalidNextVisitDate
		}
		nextVisit = &parsed
	}

	history := &entity.TreatmentHistory{
		AppointmentID: id,
		DentistID:     dentist.ID,
		Diagnosis:     req.Diagnosis,
		Notes:         req.Notes,
		NextVisitDate: nextVisit,
	}

	if err := u.historyRepo.Create(u.db.WithContext(ctx), history); err != nil {
		u.log.Warnf("Failed to create treatment history for %s: %+v", id, err)
		return nil, err
	}

	u.notifier.NotifyTreatmentRecorded(ctx, appointment)

	return converter.TreatmentHistoryToResponse(history), nil
}

// Complete requires a treatment-history record: without the clinical
// evidence the visit happened, the appointment cannot be closed as done.
func (u *appointmentUsecase) Complete(ctx context.Context, id uuid.UUID) error {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}
	if !appointment.Status.CanTransitionTo(entity.StatusCompleted) {
		return ErrInvalidTransition
	}

	exists, err := u.historyRepo.ExistsForAppointment(u.db.WithContext(ctx), id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrTreatmentHistoryMissing
	}

	rows, err := u.appointmentRepo.UpdateStatus(u.db.WithContext(ctx), id, appointment.Status, entity.StatusCompleted)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrInvalidTransition
	}
	return nil
}

func (u *appointmentUsecase) Cancel(ctx context.Context, id uuid.UUID, req *dto.CancelAppointmentRequest) error {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return errors.New("user not found in context")
	}
	roleID, _ := middleware.GetRoleIDFromContext(ctx)

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}

	byPatient := roleID == entity.RoleIDPatient
	if byPatient {
		patient, err := u.patientProfileRepo.FindByUserID(ctx, u.db, userID)
		if err != nil {
			return err
		}
		if patient == nil || appointment.PatientID != patient.ID {
			return ErrAppointmentNotOwned
		}
	}

	if !appointment.Status.CanTransitionTo(entity.StatusCancel) {
		if appointment.Status.IsTerminal() {
			return ErrInvalidTransition
		}
		return ErrCancelNotAllowedFromStatus
	}

	rows, err := u.appointmentRepo.UpdateStatusWithReason(u.db.WithContext(ctx), id, appointment.Status, entity.StatusCancel, req.Reason)
	if err != nil {
		u.log.Warnf("Failed to cancel appointment %s: %+v", id, err)
		return err
	}
	if rows == 0 {
		return ErrInvalidTransition
	}

	u.notifier.NotifyCancelled(ctx, appointment, byPatient, req.Reason)

	u.log.Infof("Appointment cancelled: id=%s, by_patient=%t", id, byPatient)
	return nil
}

func (u *appointmentUsecase) GetMyAppointments(ctx context.Context) (*dto.AppointmentListResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	patient, err := u.patientProfileRepo.FindByUserID(ctx, u.db, userID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientProfileNotFound
	}

	appointments, err := u.appointmentRepo.FindByPatientID(u.db.WithContext(ctx), patient.ID)
	if err != nil {
		u.log.Warnf("Failed to find appointments for patient %s: %+v", patient.ID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        int64(len(appointments)),
	}, nil
}

func (u *appointmentUsecase) GetDentistDay(ctx context.Context, date time.Time) (*dto.AppointmentListResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	dentist, err := u.dentistProfileRepo.FindByUserID(ctx, u.db, userID)
	if err != nil {
		return nil, err
	}
	if dentist == nil {
		return nil, ErrDentistProfileNotFound
	}

	appointments, err := u.appointmentRepo.FindByDentistAndDate(u.db.WithContext(ctx), dentist.ID, date)
	if err != nil {
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        int64(len(appointments)),
	}, nil
}

func (u *appointmentUsecase) ListAll(ctx context.Context, limit, offset int) (*dto.AppointmentListResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	appointments, total, err := u.appointmentRepo.FindAll(u.db.WithContext(ctx), limit, offset)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        total,
	}, nil
}

func (u *appointmentUsecase) AutoCancelSweep(ctx context.Context) (SweepSummary, error) {
	cutoff := u.now().Add(-2 * time.Hour)

	overdue, err := u.appointmentRepo.FindOverdueWaiting(u.db.WithContext(ctx), cutoff)
	if err != nil {
		return SweepSummary{}, err
	}

	var summary SweepSummary
	for i := range overdue {
		appointment := &overdue[i]

		rows, err := u.appointmentRepo.UpdateStatus(u.db.WithContext(ctx),
			appointment.ID, entity.StatusWaitingForTreatment, entity.StatusAutoCancelled)
		if err != nil {
			u.log.Warnf("Auto-cancel failed for %s: %+v", appointment.ID, err)
			summary.Failed++
			continue
		}
		if rows == 0 {
			// Another writer moved it first; nothing to do
			continue
		}

		if err := u.notifier.NotifyAutoCancelled(ctx, appointment); err != nil {
			summary.Failed++
			continue
		}
		summary.Processed++
	}

	return summary, nil
}

// combineDateTime builds the wall-clock instant of a date + HH:MM:SS pair
func combineDateTime(date time.Time, startTime string, loc *time.Location) time.Time {
	t, err := time.Parse("15:04:05", startTime)
	if err != nil {
		return date
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc)
}
