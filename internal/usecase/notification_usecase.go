package usecase

import (
	"context"
	"errors"
	"fmt"

	"dental-clinic-api/internal/converter"
	"dental-clinic-api/internal/delivery/dto"
	"dental-clinic-api/internal/domain/entity"
	"dental-clinic-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrNotificationNotOwned = errors.New("notification does not belong to you")
	ErrProfileNotFound      = errors.New("profile not found for user")
)

// ListNotificationsQuery carries the pagination and filter params from the
// HTTP layer. Limit is clamped in the usecase, not trusted from the caller.
type ListNotificationsQuery struct {
	Limit      int
	Offset     int
	UnreadOnly bool
	Type       string
}

const (
	defaultNotificationLimit = 20
	maxNotificationLimit     = 100
)

type NotificationUsecase interface {
	List(ctx context.Context, userID uuid.UUID, roleID int, query ListNotificationsQuery) (*dto.NotificationListResponse, error)
	MarkRead(ctx context.Context, userID uuid.UUID, roleID int, id int64) error
	MarkAllRead(ctx context.Context, userID uuid.UUID, roleID int) error
	UnreadCount(ctx context.Context, userID uuid.UUID, roleID int) (int64, error)
	Delete(ctx context.Context, userID uuid.UUID, roleID int, id int64) error

	// Dispatch creates one notification record. Callers treat failure as
	// non-fatal: a lost notification never rolls back a booking.
	Dispatch(ctx context.Context, notification *entity.Notification) error

	// Lifecycle event helpers. Each addresses the audiences interested in
	// the event and stamps the matching title tag.
	NotifyNewBooking(ctx context.Context, appointment *entity.Appointment)
	NotifyConfirmed(ctx context.Context, appointment *entity.Appointment)
	NotifyCancelled(ctx context.Context, appointment *entity.Appointment, cancelledByPatient bool, reason string)
	NotifyReminder(ctx context.Context, appointment *entity.Appointment) error
	NotifyUpcoming(ctx context.Context, appointment *entity.Appointment) error
	NotifyPossibleNoShow(ctx context.Context, appointment *entity.Appointment) error
	NotifyAutoCancelled(ctx context.Context, appointment *entity.Appointment) error
	NotifyTreatmentRecorded(ctx context.Context, appointment *entity.Appointment)
}

type notificationUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	notificationRepo   repository.NotificationRepository
	patientProfileRepo repository.PatientProfileRepository
	dentistProfileRepo repository.DentistProfileRepository
}

func NewNotificationUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	notificationRepo repository.NotificationRepository,
	patientProfileRepo repository.PatientProfileRepository,
	dentistProfileRepo repository.DentistProfileRepository,
) NotificationUsecase {
	return &notificationUsecase{
		db:                 db,
		log:                log,
		notificationRepo:   notificationRepo,
		patientProfileRepo: patientProfileRepo,
		dentistProfileRepo: dentistProfileRepo,
	}
}

// resolveScope maps the session's user to the notification audience it owns.
// Admins see the broadcast rows; dentists and patients see rows addressed
// to their profile, which has to be looked up from the user id first.
func (u *notificationUsecase) resolveScope(ctx context.Context, userID uuid.UUID, roleID int) (entity.NotificationScope, error) {
	switch roleID {
	case entity.RoleIDAdmin:
		return entity.AdminScope(), nil
	case entity.RoleIDDentist:
		profile, err := u.dentistProfileRepo.FindByUserID(ctx, u.db, userID)
		if err != nil {
			return entity.NotificationScope{}, err
		}
		if profile == nil {
			return entity.NotificationScope{}, ErrProfileNotFound
		}
		return entity.DentistScope(profile.ID), nil
	default:
		profile, err := u.patientProfileRepo.FindByUserID(ctx, u.db, userID)
		if err != nil {
			return entity.NotificationScope{}, err
		}
		if profile == nil {
			return entity.NotificationScope{}, ErrProfileNotFound
		}
		return entity.PatientScope(profile.ID), nil
	}
}

func (u *notificationUsecase) List(ctx context.Context, userID uuid.UUID, roleID int, query ListNotificationsQuery) (*dto.NotificationListResponse, error) {
	scope, err := u.resolveScope(ctx, userID, roleID)
	if err != nil {
		return nil, err
	}

	limit := query.Limit
	if limit <= 0 {
		limit = defaultNotificationLimit
	}
	if limit > maxNotificationLimit {
		limit = maxNotificationLimit
	}
	offset := query.Offset
	if offset < 0 {
		offset = 0
	}

	filter := &entity.NotificationFilter{
		Scope:      scope,
		UnreadOnly: query.UnreadOnly,
		Type:       entity.NotificationType(query.Type),
		Limit:      limit,
		Offset:     offset,
	}

	notifications, total, err := u.notificationRepo.List(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list notifications: %+v", err)
		return nil, err
	}

	unread, err := u.notificationRepo.CountUnread(u.db.WithContext(ctx), scope)
	if err != nil {
		u.log.Warnf("Failed to count unread notifications: %+v", err)
		return nil, err
	}

	return &dto.NotificationListResponse{
		Notifications: converter.NotificationsToResponses(notifications),
		Total:         total,
		UnreadCount:   unread,
	}, nil
}

// ownsNotification checks the row is addressed to the caller's scope
func ownsNotification(n *entity.Notification, scope entity.NotificationScope) bool {
	switch {
	case scope.PatientID != nil:
		return n.PatientID != nil && *n.PatientID == *scope.PatientID
	case scope.DentistID != nil:
		return n.DentistID != nil && *n.DentistID == *scope.DentistID
	default:
		return n.IsAdmin()
	}
}

func (u *notificationUsecase) MarkRead(ctx context.Context, userID uuid.UUID, roleID int, id int64) error {
	scope, err := u.resolveScope(ctx, userID, roleID)
	if err != nil {
		return err
	}

	notification, err := u.notificationRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find notification %d: %+v", id, err)
		return err
	}
	if notification == nil {
		return ErrNotificationNotFound
	}
	if !ownsNotification(notification, scope) {
		return ErrNotificationNotOwned
	}

	if _, err := u.notificationRepo.MarkRead(u.db.WithContext(ctx), id); err != nil {
		u.log.Warnf("Failed to mark notification %d read: %+v", id, err)
		return err
	}
	return nil
}

func (u *notificationUsecase) MarkAllRead(ctx context.Context, userID uuid.UUID, roleID int) error {
	scope, err := u.resolveScope(ctx, userID, roleID)
	if err != nil {
		return err
	}

	if _, err := u.notificationRepo.MarkAllRead(u.db.WithContext(ctx), scope); err != nil {
		u.log.Warnf("Failed to mark all notifications read: %+v", err)
		return err
	}
	return nil
}

func (u *notificationUsecase) UnreadCount(ctx context.Context, userID uuid.UUID, roleID int) (int64, error) {
	scope, err := u.resolveScope(ctx, userID, roleID)
	if err != nil {
		return 0, err
	}
	return u.notificationRepo.CountUnread(u.db.WithContext(ctx), scope)
}

func (u *notificationUsecase) Delete(ctx context.Context, userID uuid.UUID, roleID int, id int64) error {
	scope, err := u.resolveScope(ctx, userID, roleID)
	if err != nil {
		return err
	}

	notification, err := u.notificationRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		return err
	}
	if notification == nil {
		return ErrNotificationNotFound
	}
	if !ownsNotification(notification, scope) {
		return ErrNotificationNotOwned
	}

	if _, err := u.notificationRepo.Delete(u.db.WithContext(ctx), id); err != nil {
		u.log.Warnf("Failed to delete notification %d: %+v", id, err)
		return err
	}
	return nil
}

func (u *notificationUsecase) Dispatch(ctx context.Context, notification *entity.Notification) error {
	notification.IsRead = false
	notification.IsNew = true
	if err := u.notificationRepo.Create(u.db.WithContext(ctx), notification); err != nil {
		u.log.Warnf("Failed to create %s notification: %+v", notification.Type, err)
		return err
	}
	return nil
}

func appointmentSummary(a *entity.Appointment) string {
	return fmt.Sprintf("%s at %s", a.Date.Format("2006-01-02"), a.StartTime)
}

func (u *notificationUsecase) NotifyNewBooking(ctx context.Context, a *entity.Appointment) {
	message := fmt.Sprintf("New appointment booked for %s.", appointmentSummary(a))

	// Admin desk first, then the dentist who owns the slot
	_ = u.Dispatch(ctx, &entity.Notification{
		Type:          entity.NotificationNewBooking,
		Title:         "🆕 New appointment",
		Message:       message,
		AppointmentID: &a.ID,
	})
	_ = u.Dispatch(ctx, &entity.Notification{
		Type:          entity.NotificationNewBooking,
		Title:         "🆕 New appointment",
		Message:       message,
		AppointmentID: &a.ID,
		DentistID:     &a.DentistID,
	})
}

func (u *notificationUsecase) NotifyConfirmed(ctx context.Context, a *entity.Appointment) {
	_ = u.Dispatch(ctx, &entity.Notification{
		Type:          entity.NotificationBookingConfirmed,
		Title:         "✅ Appointment confirmed",
		Message:       fmt.Sprintf("Your appointment on %s has been confirmed.", appointmentSummary(a)),
		AppointmentID: &a.ID,
		PatientID:     &a.PatientID,
	})
}

// NotifyCancelled notifies the counter-party of whoever cancelled: a patient
// cancellation alerts the admin desk and the dentist, a staff cancellation
// alerts the patient.
func (u *notificationUsecase) NotifyCancelled(ctx context.Context, a *entity.Appointment, cancelledByPatient bool, reason string) {
	message := fmt.Sprintf("Appointment on %s was cancelled.", appointmentSummary(a))
	if reason != "" {
		message = fmt.Sprintf("%s Reason: %s", message, reason)
	}

	if cancelledByPatient {
		_ = u.Dispatch(ctx, &entity.Notification{
			Type:          entity.NotificationBookingCancelled,
			Title:         "❌ Appointment cancelled",
			Message:       message,
			AppointmentID: &a.ID,
		})
		_ = u.Dispatch(ctx, &entity.Notification{
			Type:          entity.NotificationBookingCancelled,
			Title:         "❌ Appointment cancelled",
			Message:       message,
			AppointmentID: &a.ID,
			DentistID:     &a.DentistID,
		})
		return
	}

	_ = u.Dispatch(ctx, &entity.Notification{
		Type:          entity.NotificationBookingCancelled,
		Title:         "❌ Appointment cancelled",
		Message:       message,
		AppointmentID: &a.ID,
		PatientID:     &a.PatientID,
	})
}

func (u *notificationUsecase) NotifyReminder(ctx context.Context, a *entity.Appointment) error {
	return u.Dispatch(ctx, &entity.Notification{
		Type:          entity.NotificationReminder,
		Title:         "⏰ Appointment reminder",
		Message:       fmt.Sprintf("You have an appointment tomorrow, %s.", appointmentSummary(a)),
		AppointmentID: &a.ID,
		PatientID:     &a.PatientID,
	})
}

func (u *notificationUsecase) NotifyUpcoming(ctx context.Context, a *entity.Appointment) error {
	return u.Dispatch(ctx, &entity.Notification{
		Type:          entity.NotificationUpcoming,
		Title:         "⏰ Upcoming appointment",
		Message:       fmt.Sprintf("Appointment starting soon: %s.", appointmentSummary(a)),
		AppointmentID: &a.ID,
		DentistID:     &a.DentistID,
	})
}

func (u *notificationUsecase) NotifyPossibleNoShow(ctx context.Context, a *entity.Appointment) error {
	message := fmt.Sprintf("Appointment on %s is still pending past its start time.", appointmentSummary(a))

	if err := u.Dispatch(ctx, &entity.Notification{
		Type:          entity.NotificationPossibleNoShow,
		Title:         "⚠️ Possible no-show",
		Message:       message,
		AppointmentID: &a.ID,
	}); err != nil {
		return err
	}
	return u.Dispatch(ctx, &entity.Notification{
		Type:          entity.NotificationPossibleNoShow,
		Title:         "⚠️ Possible no-show",
		Message:       message,
		AppointmentID: &a.ID,
		DentistID:     &a.DentistID,
	})
}

func (u *notificationUsecase) NotifyAutoCancelled(ctx context.Context, a *entity.Appointment) error {
	return u.Dispatch(ctx, &entity.Notification{
		Type:          entity.NotificationBookingCancelled,
		Title:         "❌ Appointment cancelled",
		Message:       fmt.Sprintf("Your appointment on %s was automatically cancelled because no treatment was recorded.", appointmentSummary(a)),
		AppointmentID: &a.ID,
		PatientID:     &a.PatientID,
	})
}

func (u *notificationUsecase) NotifyTreatmentRecorded(ctx context.Context, a *entity.Appointment) {
	_ = u.Dispatch(ctx, &entity.Notification{
		Type:          entity.NotificationTreatmentRecord,
		Title:         "📝 Treatment record added",
		Message:       fmt.Sprintf("Your dentist recorded the treatment for your visit on %s.", appointmentSummary(a)),
		AppointmentID: &a.ID,
		PatientID:     &a.PatientID,
	})
}
