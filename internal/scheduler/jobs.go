package scheduler

import (
	"context"
	"time"

	"dental-clinic-api/internal/domain/entity"
	"dental-clinic-api/internal/domain/repository"
	"dental-clinic-api/internal/usecase"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	notificationRetention = 30 * 24 * time.Hour
	upcomingHorizon       = 2 * time.Hour
	missedLookback        = time.Hour
)

// ClinicJobs bundles the recurring maintenance work of the clinic:
// reminders, the no-show safeguard and retention sweeps.
type ClinicJobs struct {
	db                 *gorm.DB
	log                *logrus.Logger
	location           *time.Location
	appointmentRepo    repository.AppointmentRepository
	notificationRepo   repository.NotificationRepository
	appointmentUsecase usecase.AppointmentUsecase
	slotUsecase        usecase.SlotUsecase
	resetUsecase       usecase.PasswordResetUsecase
	notifier           usecase.NotificationUsecase
}

func NewClinicJobs(
	db *gorm.DB,
	log *logrus.Logger,
	location *time.Location,
	appointmentRepo repository.AppointmentRepository,
	notificationRepo repository.NotificationRepository,
	appointmentUsecase usecase.AppointmentUsecase,
	slotUsecase usecase.SlotUsecase,
	resetUsecase usecase.PasswordResetUsecase,
	notifier usecase.NotificationUsecase,
) *ClinicJobs {
	return &ClinicJobs{
		db:                 db,
		log:                log,
		location:           location,
		appointmentRepo:    appointmentRepo,
		notificationRepo:   notificationRepo,
		appointmentUsecase: appointmentUsecase,
		slotUsecase:        slotUsecase,
		resetUsecase:       resetUsecase,
		notifier:           notifier,
	}
}

// RegisterAll attaches every clinic job to the runner
func (c *ClinicJobs) RegisterAll(r *Runner) {
	r.Register("daily_reminder", DailyAt{Hour: 9, Location: c.location}, c.DailyReminder)
	r.Register("upcoming_alert", Every{Interval: 30 * time.Minute, FromHour: 8, ToHour: 18, Location: c.location}, c.UpcomingAlert)
	r.Register("missed_check", Every{Interval: time.Hour, Location: c.location}, c.MissedCheck)
	r.Register("auto_cancel_sweep", Every{Interval: 30 * time.Minute, Location: c.location}, c.AutoCancelSweep)
	r.Register("notification_retention", DailyAt{Hour: 2, Location: c.location}, c.NotificationRetention)
	r.Register("token_cleanup", Every{Interval: time.Hour, Location: c.location}, c.TokenCleanup)
	r.Register("slot_cleanup", DailyAt{Hour: 2, Location: c.location}, c.SlotCleanup)
}

// DailyReminder sends every patient with a pending or confirmed appointment
// tomorrow a reminder notification.
func (c *ClinicJobs) DailyReminder(ctx context.Context) (Summary, error) {
	tomorrow := time.Now().In(c.location).AddDate(0, 0, 1)

	appointments, err := c.appointmentRepo.FindForDate(c.db.WithContext(ctx), tomorrow,
		[]entity.AppointmentStatus{entity.StatusPending, entity.StatusConfirm})
	if err != nil {
		return Summary{}, err
	}

	return c.notifyEach(ctx, appointments, c.notifier.NotifyReminder), nil
}

// UpcomingAlert warns dentists about appointments starting within the next
// two hours.
func (c *ClinicJobs) UpcomingAlert(ctx context.Context) (Summary, error) {
	now := time.Now().In(c.location)

	appointments, err := c.appointmentRepo.FindStartingBetween(c.db.WithContext(ctx), now, now.Add(upcomingHorizon),
		[]entity.AppointmentStatus{entity.StatusPending, entity.StatusConfirm})
	if err != nil {
		return Summary{}, err
	}

	return c.notifyEach(ctx, appointments, c.notifier.NotifyUpcoming), nil
}

// MissedCheck flags appointments that reached their start time in the past
// hour while still pending: the patient never got confirmed and is likely
// not coming.
func (c *ClinicJobs) MissedCheck(ctx context.Context) (Summary, error) {
	now := time.Now().In(c.location)

	appointments, err := c.appointmentRepo.FindStartingBetween(c.db.WithContext(ctx), now.Add(-missedLookback), now,
		[]entity.AppointmentStatus{entity.StatusPending})
	if err != nil {
		return Summary{}, err
	}

	return c.notifyEach(ctx, appointments, c.notifier.NotifyPossibleNoShow), nil
}

func (c *ClinicJobs) AutoCancelSweep(ctx context.Context) (Summary, error) {
	summary, err := c.appointmentUsecase.AutoCancelSweep(ctx)
	return Summary{Processed: summary.Processed, Failed: summary.Failed}, err
}

// NotificationRetention purges read notifications older than 30 days.
// Unread notifications are never purged.
func (c *ClinicJobs) NotificationRetention(ctx context.Context) (Summary, error) {
	cutoff := time.Now().Add(-notificationRetention)

	deleted, err := c.notificationRepo.DeleteReadOlderThan(c.db.WithContext(ctx), cutoff)
	if err != nil {
		return Summary{}, err
	}

	return Summary{Processed: int(deleted)}, nil
}

func (c *ClinicJobs) TokenCleanup(ctx context.Context) (Summary, error) {
	deleted, err := c.resetUsecase.CleanupExpired(ctx)
	if err != nil {
		return Summary{}, err
	}

	return Summary{Processed: int(deleted)}, nil
}

func (c *ClinicJobs) SlotCleanup(ctx context.Context) (Summary, error) {
	deleted, err := c.slotUsecase.PurgePast(ctx)
	if err != nil {
		return Summary{}, err
	}

	return Summary{Processed: int(deleted)}, nil
}

func (c *ClinicJobs) notifyEach(ctx context.Context, appointments []entity.Appointment, notify func(context.Context, *entity.Appointment) error) Summary {
	var summary Summary
	for i := range appointments {
		if err := notify(ctx, &appointments[i]); err != nil {
			c.log.WithError(err).WithField("appointment_id", appointments[i].ID).Warn("Failed to send notification")
			summary.Failed++
			continue
		}
		summary.Processed++
	}
	return summary
}
